package app

import (
	"log/slog"

	"note-cache/database"
	"note-cache/services"
	"note-cache/storage"
	"note-cache/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	DB        *database.DB
	Repo      *database.Repository
	SyncStore storage.Provider
	Notes     *services.NoteService
	Tags      *services.TagService
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(db *database.DB, logger *slog.Logger) *App {
	repo := database.NewRepository(db)
	validate := validator.New()

	return &App{
		DB:        db,
		Repo:      repo,
		SyncStore: storage.NewSyncStore(repo, logger),
		Notes:     services.NewNoteService(repo, validate),
		Tags:      services.NewTagService(repo, validate),
		Validator: validate,
		Logger:    logger,
	}
}

// Close releases the database
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
