package database

import (
	"note-cache/models"
)

// GetAttributes returns the attribute mapping for the object stored under key
// in the given bucket. Returns nil, nil when the bucket is unknown or the key
// is absent.
func (r *Repository) GetAttributes(bucket, key string) (models.Attributes, error) {
	switch bucket {
	case models.NoteBucket:
		note, err := r.GetNote(key)
		if err != nil || note == nil {
			return nil, err
		}
		return models.NoteAttributes(note), nil

	case models.TagBucket:
		tag, err := r.GetTag(key)
		if err != nil || tag == nil {
			return nil, err
		}
		return models.TagAttributes(tag), nil
	}

	return nil, nil
}
