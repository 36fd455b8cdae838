package setup

import (
	"io"
	"log/slog"
	"strings"

	"note-cache/app"
	"note-cache/config"
	"note-cache/database"
)

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("database initialized", "path", dbPath)
	return db, nil
}

// InitApp opens the database at dbPath and wires all dependencies
func InitApp(dbPath string, logger *slog.Logger) (*app.App, error) {
	db, err := InitDatabase(dbPath, logger)
	if err != nil {
		return nil, err
	}

	application := app.New(db, logger)
	logger.Debug("application initialized with dependency injection")
	return application, nil
}

// Shutdown releases everything InitApp acquired
func Shutdown(application *app.App, logger *slog.Logger) {
	if application == nil {
		return
	}
	if err := application.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Debug("database closed")
}

// NewLogger builds the process logger from the loaded configuration.
// Logs go to w (stderr for the CLI) so stdout stays machine-readable.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     ParseLogLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development" && cfg.LogLevel == "debug",
	}

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
