package storage

import (
	"errors"

	"note-cache/models"
)

// ErrObjectNotFound is returned by GetObject when the bucket is unknown or no
// object is stored under the key
var ErrObjectNotFound = errors.New("object not found")

// Syncable is an object the sync engine hands to the store.
// *models.Note and *models.Tag implement it.
type Syncable interface {
	SyncKey() string
	BucketName() string
}

// Provider is the storage contract the sync engine calls into.
// The engine owns transport, conflict resolution and object identity; a
// Provider only persists and reconstructs objects by bucket and key.
type Provider interface {
	// AddObject stores a new object received from the sync engine
	AddObject(bucket, key string, object Syncable) error

	// UpdateObject stores changes to an existing object
	UpdateObject(bucket, key string, object Syncable) error

	// RemoveObject deletes the object stored under key
	RemoveObject(bucket, key string) error

	// GetObject reconstructs the attribute mapping for key
	GetObject(bucket, key string) (models.Attributes, error)
}
