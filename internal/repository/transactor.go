package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type sqlTransactor struct {
	db *sqlx.DB
}

func newTransactor(db *sqlx.DB) *sqlTransactor {
	return &sqlTransactor{
		db: db,
	}
}

func (t *sqlTransactor) WithinTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction failed: %w", err)
	}

	return nil
}
