package cli

import (
	"io"

	"note-cache/app"
	"note-cache/models"

	"github.com/spf13/cobra"
)

// NewTagsCommand creates the tags command and its subcommands.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				tags, err := a.Tags.List()
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).Print(tags, func(w io.Writer) error {
					return writeTags(w, tags)
				})
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag at the end of the order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				tag, err := a.Tags.Create(args[0])
				if err != nil {
					return err
				}
				return printTag(rootOpts, cmd, tag)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <key> <name>",
		Short: "Change a tag's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				tag, err := a.Tags.Rename(args[0], args[1])
				if err != nil {
					return err
				}
				return printTag(rootOpts, cmd, tag)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <key>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				if err := a.Tags.Delete(args[0]); err != nil {
					return err
				}
				return rootOpts.printer(cmd).Message(map[string]string{"deleted": args[0]}, "deleted tag %s", args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <key>...",
		Short: "Set the tag order to the given key sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				if err := a.Tags.Reorder(args); err != nil {
					return err
				}
				keys, err := a.Tags.Keys()
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).Print(keys, func(w io.Writer) error {
					for _, key := range keys {
						if _, err := io.WriteString(w, key+"\n"); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	})

	return cmd
}

func printTag(opts *RootOptions, cmd *cobra.Command, tag *models.Tag) error {
	return opts.printer(cmd).Print(tag, func(w io.Writer) error {
		return writeTags(w, []models.Tag{*tag})
	})
}
