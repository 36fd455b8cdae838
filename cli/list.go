package cli

import (
	"io"

	"note-cache/app"
	"note-cache/models"
	"note-cache/services"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Sort        string
	All         bool
	PinnedFirst bool
	Tag         string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Long: `List stored notes in the configured sort order.

Sort orders: modified-desc (0, default), created-desc (1), content-asc (2),
modified-asc (3), created-asc (4), content-desc (5).

Examples:
  note-cache list
  note-cache list --sort content-asc --pinned-first
  note-cache list --tag work --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				return runList(opts, a, cmd)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "sort order (name or 0-5)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "include notes in the trash")
	cmd.Flags().BoolVarP(&opts.PinnedFirst, "pinned-first", "p", false, "show pinned notes first")
	cmd.Flags().StringVarP(&opts.Tag, "tag", "t", "", "only notes with this tag")

	return cmd
}

func runList(opts *ListOptions, a *app.App, cmd *cobra.Command) error {
	listOpts, err := opts.listOptions(opts.Sort, opts.All)
	if err != nil {
		return err
	}

	var notes []models.Note
	if opts.Tag != "" {
		notes, err = a.Notes.WithTag(opts.Tag, listOpts)
	} else {
		notes, err = a.Notes.List(listOpts)
	}
	if err != nil {
		return err
	}

	if opts.PinnedFirst {
		notes = services.PinnedFirst(notes)
	}

	return opts.printer(cmd).Print(notes, func(w io.Writer) error {
		return writeNotes(w, notes)
	})
}
