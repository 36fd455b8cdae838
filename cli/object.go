package cli

import (
	"io"

	"note-cache/app"

	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <bucket> <key>",
		Short: "Show the attributes the sync engine sees for an object",
		Long: `Show the attribute mapping stored for an object, exactly as the sync
engine reads it. Buckets: note, tag.

Examples:
  note-cache get note 3f9a0c
  note-cache get tag work --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				attrs, err := a.SyncStore.GetObject(args[0], args[1])
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).Print(attrs, func(w io.Writer) error {
					return writeAttributes(w, attrs)
				})
			})
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <bucket> <key>",
		Short: "Remove an object the way the sync engine does",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, key := args[0], args[1]
			return rootOpts.withApp(func(a *app.App) error {
				if err := a.SyncStore.RemoveObject(bucket, key); err != nil {
					return err
				}
				return rootOpts.printer(cmd).Message(
					map[string]string{"bucket": bucket, "key": key},
					"removed %s/%s", bucket, key)
			})
		},
	}
}
