package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type tagRepository struct {
	db *sqlx.DB
}

func newTagRepository(db *sqlx.DB) *tagRepository {
	return &tagRepository{
		db: db,
	}
}

func (r *tagRepository) UpsertByNameWithTx(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error) {
	return upsertNamedRow(ctx, tx, "task_tags", name)
}

func (r *tagRepository) PruneOrphansWithTx(ctx context.Context, tx *sqlx.Tx) error {
	const op = "repository.tag.PruneOrphansWithTx"

	const query = `DELETE FROM task_tags WHERE id NOT IN (SELECT tag_id FROM tasks_detail_tags)`

	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: prune tags failed: %w", op, err)
	}

	return nil
}

type requirementRepository struct {
	db *sqlx.DB
}

func newRequirementRepository(db *sqlx.DB) *requirementRepository {
	return &requirementRepository{
		db: db,
	}
}

func (r *requirementRepository) UpsertByNameWithTx(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error) {
	return upsertNamedRow(ctx, tx, "task_requirements", name)
}

func (r *requirementRepository) PruneOrphansWithTx(ctx context.Context, tx *sqlx.Tx) error {
	const op = "repository.requirement.PruneOrphansWithTx"

	const query = `DELETE FROM task_requirements WHERE id NOT IN (SELECT requirement_id FROM tasks_detail_requirements)`

	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: prune requirements failed: %w", op, err)
	}

	return nil
}

// upsertNamedRow creates the row for name if missing and returns its id.
// Name carries a unique key, the insert is a no-op on conflict.
func upsertNamedRow(ctx context.Context, tx *sqlx.Tx, table string, name string) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate id failed: %w", err)
	}

	//nolint:gosec // table names are compile-time constants
	insertQuery := fmt.Sprintf(`INSERT INTO %s (id, name) VALUES (uuid_to_bin(?), ?) ON DUPLICATE KEY UPDATE id = id`, table)
	if _, err := tx.ExecContext(ctx, insertQuery, id, name); err != nil {
		return uuid.Nil, fmt.Errorf("upsert into %s failed: %w", table, err)
	}

	selectQuery := fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, table)
	var existing uuid.UUID
	if err := tx.GetContext(ctx, &existing, selectQuery, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("row vanished after upsert into %s", table)
		}
		return uuid.Nil, fmt.Errorf("select from %s failed: %w", table, err)
	}

	return existing, nil
}
