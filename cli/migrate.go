package cli

import (
	"note-cache/app"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(func(a *app.App) error {
				version, err := a.DB.SchemaVersion()
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).Message(
					map[string]any{"path": rootOpts.DBPath, "schemaVersion": version},
					"%s is at schema version %d", rootOpts.DBPath, version)
			})
		},
	}
}
