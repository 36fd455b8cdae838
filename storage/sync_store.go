package storage

import (
	"fmt"
	"log/slog"

	"note-cache/database"
	"note-cache/models"
)

// SyncStore implements Provider on top of the local record store.
// It keeps no state of its own; every call is translated into repository
// operations.
type SyncStore struct {
	repo   *database.Repository
	logger *slog.Logger
}

// Ensure SyncStore implements Provider interface
var _ Provider = (*SyncStore)(nil)

// NewSyncStore creates a sync storage provider backed by repo
func NewSyncStore(repo *database.Repository, logger *slog.Logger) *SyncStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncStore{
		repo:   repo,
		logger: logger.With("component", "sync_store"),
	}
}

// ==================== WRITE OPERATIONS ====================

// AddObject persists a new note or tag. The key argument is the object's
// identity and overrides any key set on the object. If an object with the
// same key already exists it is updated instead, in the same transaction.
func (s *SyncStore) AddObject(bucket, key string, object Syncable) error {
	s.logger.Debug("adding object", "bucket", bucket, "key", key)
	return s.write(bucket, key, object, true)
}

// UpdateObject persists changes to a note or tag. An update for a key that
// is not stored yet creates the object.
func (s *SyncStore) UpdateObject(bucket, key string, object Syncable) error {
	s.logger.Debug("updating object", "bucket", bucket, "key", key)
	return s.write(bucket, key, object, false)
}

func (s *SyncStore) write(bucket, key string, object Syncable, createFirst bool) error {
	switch obj := object.(type) {
	case *models.Note:
		if obj == nil {
			break
		}
		note := *obj
		if key != "" {
			note.Key = key
		}
		s.checkBucket(bucket, &note)
		return s.upsert(bucket, note.Key, createFirst,
			func(tx *database.Repository) (bool, error) { return tx.CreateNote(&note) },
			func(tx *database.Repository) (bool, error) { return tx.UpdateNote(&note) },
		)

	case *models.Tag:
		if obj == nil {
			break
		}
		tag := *obj
		if key != "" {
			tag.Key = key
		}
		s.checkBucket(bucket, &tag)
		return s.upsert(bucket, tag.Key, createFirst,
			func(tx *database.Repository) (bool, error) { return tx.CreateTag(&tag) },
			func(tx *database.Repository) (bool, error) { return tx.UpdateTag(&tag) },
		)
	}

	s.logger.Warn("ignoring unsupported object", "bucket", bucket, "key", key, "type", fmt.Sprintf("%T", object))
	return nil
}

// upsert runs the primary write and, if it matched nothing, the fallback,
// inside one transaction
func (s *SyncStore) upsert(bucket, key string, createFirst bool, create, update func(*database.Repository) (bool, error)) error {
	first, second := update, create
	if createFirst {
		first, second = create, update
	}

	var stored, fellBack bool
	err := s.repo.WithTx(func(tx *database.Repository) error {
		ok, err := first(tx)
		if err != nil || ok {
			stored = ok
			return err
		}

		fellBack = true
		stored, err = second(tx)
		return err
	})
	if err != nil {
		return fmt.Errorf("store %s/%s: %w", bucket, key, err)
	}

	switch {
	case !stored:
		s.logger.Warn("object not stored", "bucket", bucket, "key", key)
	case fellBack && createFirst:
		s.logger.Info("object already existed, updated instead", "bucket", bucket, "key", key)
	case fellBack:
		s.logger.Info("object was missing, created instead", "bucket", bucket, "key", key)
	}

	return nil
}

func (s *SyncStore) checkBucket(bucket string, object Syncable) {
	if bucket != object.BucketName() {
		s.logger.Warn("bucket does not match object kind",
			"bucket", bucket, "kind", object.BucketName(), "key", object.SyncKey())
	}
}

// RemoveObject hard-deletes the object stored under key. Removing a key that
// is not stored is not an error.
func (s *SyncStore) RemoveObject(bucket, key string) error {
	s.logger.Debug("removing object", "bucket", bucket, "key", key)

	var removed bool
	var err error
	switch bucket {
	case models.NoteBucket:
		removed, err = s.repo.DeleteNote(key)
	case models.TagBucket:
		removed, err = s.repo.DeleteTag(key)
	default:
		s.logger.Warn("ignoring remove for unknown bucket", "bucket", bucket, "key", key)
		return nil
	}

	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, key, err)
	}
	if !removed {
		s.logger.Debug("nothing to remove", "bucket", bucket, "key", key)
	}
	return nil
}

// ==================== READ OPERATIONS ====================

// GetObject returns the attribute mapping for key, or ErrObjectNotFound
func (s *SyncStore) GetObject(bucket, key string) (models.Attributes, error) {
	attrs, err := s.repo.GetAttributes(bucket, key)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	if attrs == nil {
		s.logger.Debug("object not found", "bucket", bucket, "key", key)
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, ErrObjectNotFound)
	}
	return attrs, nil
}
