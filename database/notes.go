package database

import (
	"database/sql"
	"fmt"
	"iter"

	"note-cache/models"
)

// ==================== NOTE OPERATIONS ====================

const noteColumns = `id, simperiumKey, title, content, contentPreview,
	creationDate, modificationDate, deleted, lastPosition, pinned,
	shareURL, systemTags, tags`

// notDeleted filters out soft-deleted rows, treating NULL as not deleted
const notDeleted = `IFNULL(deleted, 0) = 0`

// noteOrderBy maps sort orders to ORDER BY clauses. Only these constants are
// ever placed into query text.
var noteOrderBy = map[models.SortOrder]string{
	models.SortModifiedDesc: "modificationDate DESC",
	models.SortCreatedDesc:  "creationDate DESC",
	models.SortContentAsc:   "content ASC",
	models.SortModifiedAsc:  "modificationDate ASC",
	models.SortCreatedAsc:   "creationDate ASC",
	models.SortContentDesc:  "content DESC",
}

func orderClause(order models.SortOrder) string {
	clause, ok := noteOrderBy[order]
	if !ok {
		clause = noteOrderBy[models.SortModifiedDesc]
	}
	return clause + ", id ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var key, title, content, preview, shareURL, systemTags, tags sql.NullString
	var created, modified, lastPosition sql.NullInt64
	var deleted, pinned sql.NullBool

	if err := row.Scan(
		&note.ID, &key, &title, &content, &preview,
		&created, &modified, &deleted, &lastPosition, &pinned,
		&shareURL, &systemTags, &tags,
	); err != nil {
		return nil, err
	}

	note.Key = key.String
	note.Title = title.String
	note.Content = content.String
	note.ContentPreview = preview.String
	note.CreationDate = fromMillis(created)
	note.ModificationDate = fromMillis(modified)
	note.Deleted = deleted.Bool
	note.LastPosition = int(lastPosition.Int64)
	note.Pinned = pinned.Bool
	note.ShareURL = shareURL.String

	var err error
	if note.SystemTags, err = decodeTags(systemTags); err != nil {
		return nil, err
	}
	if note.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}

	return &note, nil
}

// noteValues returns the mutable column values in noteColumns order, minus id
func noteValues(note *models.Note) ([]any, error) {
	systemTags, err := encodeTags(note.SystemTags)
	if err != nil {
		return nil, err
	}
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return nil, err
	}

	return []any{
		note.Key, note.Title, note.Content, note.ContentPreview,
		models.UnixMillis(note.CreationDate), models.UnixMillis(note.ModificationDate),
		note.Deleted, note.LastPosition, note.Pinned,
		nullString(note.ShareURL), systemTags, tags,
	}, nil
}

// CreateNote inserts a new note row.
// Returns false without error when note is nil, has no key, or a note with
// the same key already exists.
func (r *Repository) CreateNote(note *models.Note) (bool, error) {
	if note == nil || note.Key == "" {
		return false, nil
	}

	values, err := noteValues(note)
	if err != nil {
		return false, err
	}

	res, err := r.db.Exec(`
		INSERT INTO notes (simperiumKey, title, content, contentPreview,
			creationDate, modificationDate, deleted, lastPosition, pinned,
			shareURL, systemTags, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(simperiumKey) DO NOTHING
	`, values...)
	if err != nil {
		return false, fmt.Errorf("create note %s: %w", note.Key, err)
	}

	ok, err := changed(res)
	if err != nil || !ok {
		return false, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	note.ID = id
	return id > 0, nil
}

// UpdateNote overwrites every mutable column of the note matching note.Key
func (r *Repository) UpdateNote(note *models.Note) (bool, error) {
	if note == nil || note.Key == "" {
		return false, nil
	}

	values, err := noteValues(note)
	if err != nil {
		return false, err
	}

	res, err := r.db.Exec(`
		UPDATE notes SET
			simperiumKey = ?,
			title = ?,
			content = ?,
			contentPreview = ?,
			creationDate = ?,
			modificationDate = ?,
			deleted = ?,
			lastPosition = ?,
			pinned = ?,
			shareURL = ?,
			systemTags = ?,
			tags = ?
		WHERE simperiumKey = ?
	`, append(values, note.Key)...)
	if err != nil {
		return false, fmt.Errorf("update note %s: %w", note.Key, err)
	}

	return changed(res)
}

// DeleteNote permanently removes the note with the given key.
// Soft deletion is done by setting Note.Deleted and calling UpdateNote.
func (r *Repository) DeleteNote(key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	res, err := r.db.Exec(`DELETE FROM notes WHERE simperiumKey = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete note %s: %w", key, err)
	}

	return changed(res)
}

// GetNote retrieves a note by sync key, soft-deleted or not
func (r *Repository) GetNote(key string) (*models.Note, error) {
	note, err := scanNote(r.db.QueryRow(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE simperiumKey = ?
	`, key))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return note, nil
}

// ListNotes returns a lazy sequence of notes in the requested order.
// The query runs when iteration starts and the underlying rows are released
// when the loop ends.
func (r *Repository) ListNotes(opts models.ListOptions) iter.Seq2[models.Note, error] {
	query := `SELECT ` + noteColumns + ` FROM notes`
	if !opts.IncludeDeleted {
		query += ` WHERE ` + notDeleted
	}
	query += ` ORDER BY ` + orderClause(opts.Sort)

	return r.queryNotes(query)
}

// SearchNotes returns notes whose content contains query, pinned notes first
// and then in the requested order. Matching uses SQLite LIKE, so it ignores
// case for ASCII letters only. Wildcard characters in query match literally.
func (r *Repository) SearchNotes(query string, opts models.ListOptions) iter.Seq2[models.Note, error] {
	stmt := `SELECT ` + noteColumns + ` FROM notes WHERE content LIKE ? ESCAPE '\'`
	if !opts.IncludeDeleted {
		stmt += ` AND ` + notDeleted
	}
	stmt += ` ORDER BY pinned DESC, ` + orderClause(opts.Sort)

	return r.queryNotes(stmt, likePattern(query))
}

func (r *Repository) queryNotes(query string, args ...any) iter.Seq2[models.Note, error] {
	return func(yield func(models.Note, error) bool) {
		rows, err := r.db.Query(query, args...)
		if err != nil {
			yield(models.Note{}, fmt.Errorf("query notes: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			note, err := scanNote(rows)
			if err != nil {
				yield(models.Note{}, err)
				return
			}
			if !yield(*note, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(models.Note{}, err)
		}
	}
}

// CollectNotes drains a note sequence into a slice
func CollectNotes(seq iter.Seq2[models.Note, error]) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	for note, err := range seq {
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// CountNotes returns the number of note rows
func (r *Repository) CountNotes(includeDeleted bool) (int, error) {
	query := `SELECT COUNT(*) FROM notes`
	if !includeDeleted {
		query += ` WHERE ` + notDeleted
	}

	var count int
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
