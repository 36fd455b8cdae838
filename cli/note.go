package cli

import (
	"fmt"
	"io"
	"strings"

	"note-cache/app"
	"note-cache/models"

	"github.com/spf13/cobra"
)

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "new <content|->",
		Short: "Create a note",
		Long: `Create a note with a generated key. The first line becomes the title.
Pass - to read the content from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := args[0]
			if content == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = strings.TrimRight(string(data), "\n")
			}

			return rootOpts.withApp(func(a *app.App) error {
				note, err := a.Notes.Create(content, tags)
				if err != nil {
					return err
				}
				return printNote(rootOpts, cmd, note)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag to attach (repeatable)")

	return cmd
}

// NewPinCommand creates the pin command.
func NewPinCommand(rootOpts *RootOptions) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "pin <key>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				note, err := a.Notes.SetPinned(args[0], !off)
				if err != nil {
					return err
				}
				return printNote(rootOpts, cmd, note)
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "unpin instead")

	return cmd
}

// NewTrashCommand creates the trash command.
func NewTrashCommand(rootOpts *RootOptions) *cobra.Command {
	return noteActionCommand(rootOpts, "trash <key>", "Move a note to the trash",
		func(a *app.App, key string) (*models.Note, error) { return a.Notes.Trash(key) })
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	return noteActionCommand(rootOpts, "restore <key>", "Bring a note back from the trash",
		func(a *app.App, key string) (*models.Note, error) { return a.Notes.Restore(key) })
}

func noteActionCommand(rootOpts *RootOptions, use, short string, action func(*app.App, string) (*models.Note, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				note, err := action(a, args[0])
				if err != nil {
					return err
				}
				return printNote(rootOpts, cmd, note)
			})
		},
	}
}

// NewPurgeCommand creates the purge command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <key>",
		Short: "Permanently delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				if err := a.Notes.Purge(args[0]); err != nil {
					return err
				}
				return rootOpts.printer(cmd).Message(map[string]string{"purged": args[0]}, "purged %s", args[0])
			})
		},
	}
}

// NewEmptyTrashCommand creates the empty-trash command.
func NewEmptyTrashCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "empty-trash",
		Short: "Permanently delete every note in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				removed, err := a.Notes.EmptyTrash()
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).Message(map[string]int{"removed": removed}, "removed %d note(s)", removed)
			})
		},
	}
}

func printNote(opts *RootOptions, cmd *cobra.Command, note *models.Note) error {
	return opts.printer(cmd).Print(note, func(w io.Writer) error {
		return writeNote(w, note)
	})
}
