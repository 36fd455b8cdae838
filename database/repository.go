package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNestedTx is returned when WithTx is called on a repository that is
// already bound to a transaction
var ErrNestedTx = errors.New("transaction already in progress")

// querier is the subset of *sql.DB and *sql.Tx the repository needs
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Repository struct {
	db   querier
	conn *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, conn: db}
}

// WithTx runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	if r.conn == nil {
		return ErrNestedTx
	}

	tx, err := r.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// changed reports whether a write statement touched at least one row
func changed(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
