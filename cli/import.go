package cli

import (
	"fmt"
	"os"

	"note-cache/app"
	"note-cache/storage"

	"github.com/spf13/cobra"
)

// ImportResult reports how much of an event log was applied.
type ImportResult struct {
	File    string `json:"file" yaml:"file"`
	Events  int    `json:"events" yaml:"events"`
	Applied int    `json:"applied" yaml:"applied"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <events.yaml>",
		Short: "Replay a recorded sync event log into the store",
		Long: `Replay add, update and remove events through the sync storage adapter.

The file holds a list of events:

  events:
    - op: add
      bucket: note
      key: 3f9a0c
      note:
        content: "Groceries\nmilk"
        tags: [home]
    - op: remove
      bucket: tag
      key: old

Replay stops at the first event that fails; earlier events stay applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			log, err := storage.ReadEventLog(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			return rootOpts.withApp(func(a *app.App) error {
				applied, err := storage.Replay(a.SyncStore, log.Events)
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}

				result := ImportResult{File: args[0], Events: len(log.Events), Applied: applied}
				return rootOpts.printer(cmd).Message(result, "applied %d of %d event(s) from %s",
					result.Applied, result.Events, result.File)
			})
		},
	}
}
