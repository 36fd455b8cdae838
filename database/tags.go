package database

import (
	"database/sql"
	"errors"
	"fmt"

	"note-cache/models"
)

// ==================== TAG OPERATIONS ====================

// errReorderAborted rolls back a reorder that referenced a missing tag
var errReorderAborted = errors.New("reorder aborted")

func scanTag(row rowScanner) (*models.Tag, error) {
	var tag models.Tag
	var key, name sql.NullString
	var index sql.NullInt64

	if err := row.Scan(&tag.ID, &key, &name, &index); err != nil {
		return nil, err
	}

	tag.Key = key.String
	tag.Name = name.String
	tag.Index = int(index.Int64)
	return &tag, nil
}

// CreateTag inserts a new tag row.
// Returns false without error when tag is nil, has no key, or the key exists.
func (r *Repository) CreateTag(tag *models.Tag) (bool, error) {
	if tag == nil || tag.Key == "" {
		return false, nil
	}

	res, err := r.db.Exec(`
		INSERT INTO tags (simperiumKey, name, tagIndex)
		VALUES (?, ?, ?)
		ON CONFLICT(simperiumKey) DO NOTHING
	`, tag.Key, tag.Name, tag.Index)
	if err != nil {
		return false, fmt.Errorf("create tag %s: %w", tag.Key, err)
	}

	ok, err := changed(res)
	if err != nil || !ok {
		return false, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	tag.ID = id
	return id > 0, nil
}

// UpdateTag overwrites the name and index of the tag matching tag.Key
func (r *Repository) UpdateTag(tag *models.Tag) (bool, error) {
	if tag == nil || tag.Key == "" {
		return false, nil
	}

	res, err := r.db.Exec(`
		UPDATE tags SET
			name = ?,
			tagIndex = ?
		WHERE simperiumKey = ?
	`, tag.Name, tag.Index, tag.Key)
	if err != nil {
		return false, fmt.Errorf("update tag %s: %w", tag.Key, err)
	}

	return changed(res)
}

// DeleteTag permanently removes the tag with the given key.
// Notes that reference the tag by name are left untouched.
func (r *Repository) DeleteTag(key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	res, err := r.db.Exec(`DELETE FROM tags WHERE simperiumKey = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete tag %s: %w", key, err)
	}

	return changed(res)
}

// GetTag retrieves a tag by sync key
func (r *Repository) GetTag(key string) (*models.Tag, error) {
	tag, err := scanTag(r.db.QueryRow(`
		SELECT id, simperiumKey, name, tagIndex
		FROM tags
		WHERE simperiumKey = ?
	`, key))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return tag, nil
}

// ListTags returns all tags ordered by index, then key
func (r *Repository) ListTags() ([]models.Tag, error) {
	rows, err := r.db.Query(`
		SELECT id, simperiumKey, name, tagIndex
		FROM tags
		ORDER BY tagIndex ASC, simperiumKey ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	tags := make([]models.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}

	return tags, rows.Err()
}

// ListTagKeys returns every tag key ordered by index, then key
func (r *Repository) ListTagKeys() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT simperiumKey
		FROM tags
		ORDER BY tagIndex ASC, simperiumKey ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key sql.NullString
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key.String)
	}

	return keys, rows.Err()
}

// NextTagIndex returns the index one past the highest stored tag index
func (r *Repository) NextTagIndex() (int, error) {
	var next int
	if err := r.db.QueryRow(`SELECT IFNULL(MAX(tagIndex) + 1, 0) FROM tags`).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// ReorderTags assigns indexes 0..n-1 to the given keys in one transaction.
// Returns false if any key is not stored, leaving every index unchanged.
func (r *Repository) ReorderTags(keys []string) (bool, error) {
	err := r.WithTx(func(tx *Repository) error {
		for i, key := range keys {
			res, err := tx.db.Exec(`UPDATE tags SET tagIndex = ? WHERE simperiumKey = ?`, i, key)
			if err != nil {
				return fmt.Errorf("reorder tag %s: %w", key, err)
			}
			ok, err := changed(res)
			if err != nil {
				return err
			}
			if !ok {
				return errReorderAborted
			}
		}
		return nil
	})

	if errors.Is(err, errReorderAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
