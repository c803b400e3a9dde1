package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taskhive/backend/internal/domain"
)

type specialtyRepository struct {
	db *sqlx.DB
}

func newSpecialtyRepository(db *sqlx.DB) *specialtyRepository {
	return &specialtyRepository{
		db: db,
	}
}

func (r *specialtyRepository) UpsertByNameWithTx(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error) {
	return upsertNamedRow(ctx, tx, "specialties", name)
}

func (r *specialtyRepository) ReplaceForUserWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, specialtyIDs []uuid.UUID) error {
	const op = "repository.specialty.ReplaceForUserWithTx"

	const deleteQuery = `DELETE FROM user_specialties WHERE user_id = uuid_to_bin(?)`
	if _, err := tx.ExecContext(ctx, deleteQuery, userID); err != nil {
		return fmt.Errorf("%s: clear user specialties failed: %w", op, err)
	}

	const insertQuery = `INSERT INTO user_specialties (user_id, specialty_id) VALUES (uuid_to_bin(?), uuid_to_bin(?))`
	for _, id := range specialtyIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, userID, id); err != nil {
			return fmt.Errorf("%s: insert user specialty failed: %w", op, err)
		}
	}

	return nil
}

func (r *specialtyRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Specialty, error) {
	const op = "repository.specialty.GetByUser"

	const query = `
	SELECT s.id, s.name
	FROM specialties s
	JOIN user_specialties us ON us.specialty_id = s.id
	WHERE us.user_id = uuid_to_bin(?)
	ORDER BY s.name
	`

	var specialties []domain.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query, userID); err != nil {
		return nil, fmt.Errorf("%s: select user specialties failed: %w", op, err)
	}

	return specialties, nil
}

func (r *specialtyRepository) PruneOrphansWithTx(ctx context.Context, tx *sqlx.Tx) error {
	const op = "repository.specialty.PruneOrphansWithTx"

	const query = `DELETE FROM specialties WHERE id NOT IN (SELECT specialty_id FROM user_specialties)`

	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: prune specialties failed: %w", op, err)
	}

	return nil
}
