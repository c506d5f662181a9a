package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Transactor wraps a function in a database transaction. Services depend on
// this interface rather than *sqlx.DB directly so that a relationship write
// and its counter adjustment commit or roll back as one unit, and so that
// unit tests can substitute an in-memory implementation.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type sqlxTransactor struct {
	db *sqlx.DB
}

// NewTransactor creates a Transactor backed by the given connection pool.
func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlxTransactor{db: db}
}

func (t *sqlxTransactor) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
