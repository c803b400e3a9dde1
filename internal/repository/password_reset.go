package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taskhive/backend/internal/domain"
)

type passwordResetRepository struct {
	db *sqlx.DB
}

func newPasswordResetRepository(db *sqlx.DB) *passwordResetRepository {
	return &passwordResetRepository{
		db: db,
	}
}

// UpsertWithTx keeps a single reset row per user, the latest request
// overwrites a previous unused one.
func (r *passwordResetRepository) UpsertWithTx(ctx context.Context, tx *sqlx.Tx, reset *domain.PasswordReset) error {
	const op = "repository.passwordReset.UpsertWithTx"

	const query = `
	INSERT INTO password_reset (id, user_id, otp, expires_at)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :otp, :expires_at)
	ON DUPLICATE KEY UPDATE otp = VALUES(otp), expires_at = VALUES(expires_at), is_used = false
	`

	if _, err := tx.NamedExecContext(ctx, query, reset); err != nil {
		return fmt.Errorf("%s: upsert password reset failed: %w", op, err)
	}

	return nil
}

func (r *passwordResetRepository) GetUnusedByUserAndOTP(ctx context.Context, userID uuid.UUID, otp string) (*domain.PasswordReset, error) {
	const op = "repository.passwordReset.GetUnusedByUserAndOTP"

	const query = `
	SELECT id, user_id, otp, is_used, expires_at, created_at, updated_at
	FROM password_reset
	WHERE user_id = uuid_to_bin(?) AND otp = ? AND is_used = false
	LIMIT 1
	`

	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, userID, otp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select password reset failed: %w", op, err)
	}

	return &reset, nil
}

func (r *passwordResetRepository) MarkUsedWithTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	const op = "repository.passwordReset.MarkUsedWithTx"

	const query = `UPDATE password_reset SET is_used = true WHERE id = uuid_to_bin(?) AND is_used = false`

	res, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update password reset failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}
	if rows != 1 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
