package cli

import (
	"io"

	"note-cache/app"

	"github.com/spf13/cobra"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Sort string
	All  bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find notes whose content contains a substring",
		Long: `Find notes whose content contains the query. Matching ignores case for
ASCII letters only; % and _ match themselves. Pinned notes are listed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				listOpts, err := opts.listOptions(opts.Sort, opts.All)
				if err != nil {
					return err
				}

				notes, err := a.Notes.Search(args[0], listOpts)
				if err != nil {
					return err
				}

				return opts.printer(cmd).Print(notes, func(w io.Writer) error {
					return writeNotes(w, notes)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "sort order (name or 0-5)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "include notes in the trash")

	return cmd
}
