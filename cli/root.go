package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"note-cache/app"
	"note-cache/config"
	"note-cache/config/setup"
	"note-cache/models"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Output  string
	Verbose bool

	cfg    config.Config
	logger *slog.Logger
}

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the note-cache CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "note-cache",
		Short: "Local note and tag store for the sync engine",
		Long: `note-cache inspects and edits the local SQLite cache that backs note sync.

Configuration is read from the environment and an optional .env file
(ENV, LOG_LEVEL, DB_PATH, SORT_ORDER). Flags override the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			if err := config.Load(); err != nil {
				return err
			}

			opts.cfg = *config.AppConfig
			if opts.Verbose {
				opts.cfg.LogLevel = "debug"
			}
			if opts.DBPath == "" {
				opts.DBPath = opts.cfg.DBPath
			}

			opts.logger = setup.NewLogger(&opts.cfg, cmd.ErrOrStderr())
			slog.SetDefault(opts.logger)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (default $DB_PATH or ./data/notes.db)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewPinCommand(opts))
	cmd.AddCommand(NewTrashCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))
	cmd.AddCommand(NewEmptyTrashCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withApp opens the store for the duration of fn
func (o *RootOptions) withApp(fn func(*app.App) error) error {
	application, err := setup.InitApp(o.DBPath, o.logger)
	if err != nil {
		return err
	}
	defer setup.Shutdown(application, o.logger)

	return fn(application)
}

func (o *RootOptions) printer(cmd *cobra.Command) *Printer {
	return &Printer{Format: o.Output, Writer: cmd.OutOrStdout()}
}

// listOptions resolves the --sort flag against the configured default
func (o *RootOptions) listOptions(sort string, includeDeleted bool) (models.ListOptions, error) {
	order := o.cfg.SortOrder
	if sort != "" {
		var err error
		if order, err = models.ParseSortOrder(sort); err != nil {
			return models.ListOptions{}, err
		}
	}
	return models.ListOptions{Sort: order, IncludeDeleted: includeDeleted}, nil
}
