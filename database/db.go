package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Schema version tracking (PRAGMA user_version):
// 1 - notes and tags tables with plain sync-key indexes
// 2 - unique sync-key indexes, tagIndex index
const currentSchemaVersion = 2

type DB struct {
	*sql.DB
}

type migration struct {
	version    int
	name       string
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create notes and tags",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				simperiumKey TEXT,
				title TEXT,
				content TEXT,
				contentPreview TEXT,
				creationDate INTEGER,
				modificationDate INTEGER,
				deleted BOOLEAN,
				lastPosition INTEGER,
				pinned BOOLEAN,
				shareURL TEXT,
				systemTags TEXT,
				tags TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS tags (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				tagIndex INTEGER,
				simperiumKey TEXT,
				name TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS simperiumKeyNotesIndex ON notes(simperiumKey)`,
			`CREATE INDEX IF NOT EXISTS simperiumKeyTagsIndex ON tags(simperiumKey)`,
		},
	},
	{
		version: 2,
		name:    "unique sync keys",
		statements: []string{
			// Keep the most recently inserted row for any duplicated key
			`DELETE FROM notes WHERE id NOT IN (SELECT MAX(id) FROM notes GROUP BY simperiumKey)`,
			`DELETE FROM tags WHERE id NOT IN (SELECT MAX(id) FROM tags GROUP BY simperiumKey)`,
			`DROP INDEX IF EXISTS simperiumKeyNotesIndex`,
			`DROP INDEX IF EXISTS simperiumKeyTagsIndex`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_notes_simperium_key ON notes(simperiumKey)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_simperium_key ON tags(simperiumKey)`,
			`CREATE INDEX IF NOT EXISTS idx_tags_index ON tags(tagIndex)`,
		},
	},
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite serializes writers; a small pool is enough for concurrent readers
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(2)

	return &DB{db}, nil
}

// Migrate brings the schema up to the current version.
// Safe to call on every start.
func (db *DB) Migrate() error {
	return db.migrateTo(currentSchemaVersion)
}

// SchemaVersion returns the applied schema version
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

func (db *DB) migrateTo(target int) error {
	version, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= version || m.version > target {
			continue
		}
		if err := db.apply(m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
	}

	return nil
}

// apply runs one migration and records its version in the same transaction
func (db *DB) apply(m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return tx.Commit()
}

func (db *DB) Close() error {
	return db.DB.Close()
}
