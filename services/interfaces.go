package services

import (
	"iter"

	"note-cache/models"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	GetNote(key string) (*models.Note, error)
	CreateNote(note *models.Note) (bool, error)
	UpdateNote(note *models.Note) (bool, error)
	DeleteNote(key string) (bool, error)
	ListNotes(opts models.ListOptions) iter.Seq2[models.Note, error]
	SearchNotes(query string, opts models.ListOptions) iter.Seq2[models.Note, error]
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	GetTag(key string) (*models.Tag, error)
	CreateTag(tag *models.Tag) (bool, error)
	UpdateTag(tag *models.Tag) (bool, error)
	DeleteTag(key string) (bool, error)
	ListTags() ([]models.Tag, error)
	ListTagKeys() ([]string, error)
	NextTagIndex() (int, error)
	ReorderTags(keys []string) (bool, error)
}

// Validator validates records before they are written
type Validator interface {
	Validate(i interface{}) error
}
