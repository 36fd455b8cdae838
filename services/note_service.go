package services

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"note-cache/models"

	"github.com/google/uuid"
)

// NoteService handles local note edits made outside the sync engine
type NoteService struct {
	repo     NoteRepository
	validate Validator
	now      func() time.Time
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, validate Validator) *NoteService {
	return &NoteService{
		repo:     repo,
		validate: validate,
		now:      time.Now,
	}
}

// NewNoteKey generates a sync key for a locally created note
func NewNoteKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Create stores a new note with a generated key
func (ns *NoteService) Create(content string, tags []string) (*models.Note, error) {
	now := ns.now()
	note := &models.Note{
		Key:              NewNoteKey(),
		Content:          content,
		CreationDate:     now,
		ModificationDate: now,
		SystemTags:       []string{},
		Tags:             slices.Clone(tags),
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	note.UpdateTitleAndPreview()

	if err := ns.validate.Validate(note); err != nil {
		return nil, err
	}

	created, err := ns.repo.CreateNote(note)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: %s", ErrNoteAlreadyExists, note.Key)
	}

	return note, nil
}

// Get retrieves a note by key, including soft-deleted notes
func (ns *NoteService) Get(key string) (*models.Note, error) {
	note, err := ns.repo.GetNote(key)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Save writes an edited note, refreshing its title, preview and
// modification date
func (ns *NoteService) Save(note *models.Note) error {
	note.UpdateTitleAndPreview()
	note.ModificationDate = ns.now()

	if err := ns.validate.Validate(note); err != nil {
		return err
	}

	updated, err := ns.repo.UpdateNote(note)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNoteNotFound
	}
	return nil
}

// modify loads a note, applies change and saves it
func (ns *NoteService) modify(key string, change func(*models.Note)) (*models.Note, error) {
	note, err := ns.Get(key)
	if err != nil {
		return nil, err
	}

	change(note)

	if err := ns.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

// SetPinned pins or unpins a note
func (ns *NoteService) SetPinned(key string, pinned bool) (*models.Note, error) {
	return ns.modify(key, func(n *models.Note) { n.SetPinned(pinned) })
}

// SetTags replaces the note's user tags
func (ns *NoteService) SetTags(key string, tags []string) (*models.Note, error) {
	return ns.modify(key, func(n *models.Note) { n.Tags = slices.Clone(tags) })
}

// Trash marks a note as deleted without removing it
func (ns *NoteService) Trash(key string) (*models.Note, error) {
	return ns.modify(key, func(n *models.Note) { n.Deleted = true })
}

// Restore brings a trashed note back
func (ns *NoteService) Restore(key string) (*models.Note, error) {
	return ns.modify(key, func(n *models.Note) { n.Deleted = false })
}

// Purge permanently removes a note
func (ns *NoteService) Purge(key string) error {
	deleted, err := ns.repo.DeleteNote(key)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

// EmptyTrash permanently removes every soft-deleted note and returns how
// many were removed
func (ns *NoteService) EmptyTrash() (int, error) {
	var trashed []string
	for note, err := range ns.repo.ListNotes(models.ListOptions{IncludeDeleted: true}) {
		if err != nil {
			return 0, err
		}
		if note.Deleted {
			trashed = append(trashed, note.Key)
		}
	}

	removed := 0
	for _, key := range trashed {
		deleted, err := ns.repo.DeleteNote(key)
		if err != nil {
			return removed, err
		}
		if deleted {
			removed++
		}
	}
	return removed, nil
}

// List returns notes in the given order
func (ns *NoteService) List(opts models.ListOptions) ([]models.Note, error) {
	return collect(ns.repo.ListNotes(opts))
}

// Search returns notes whose content contains query
func (ns *NoteService) Search(query string, opts models.ListOptions) ([]models.Note, error) {
	return collect(ns.repo.SearchNotes(query, opts))
}

// WithTag returns notes carrying the given user tag, in the given order
func (ns *NoteService) WithTag(name string, opts models.ListOptions) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	for note, err := range ns.repo.ListNotes(opts) {
		if err != nil {
			return nil, err
		}
		if note.HasTag(name) {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

// PinnedFirst moves pinned notes ahead of the rest, keeping the relative
// order within each group
func PinnedFirst(notes []models.Note) []models.Note {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b models.Note) int {
		switch {
		case a.Pinned == b.Pinned:
			return 0
		case a.Pinned:
			return -1
		default:
			return 1
		}
	})
	return sorted
}

func collect(seq iter.Seq2[models.Note, error]) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	for note, err := range seq {
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}
