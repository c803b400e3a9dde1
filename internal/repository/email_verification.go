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

type emailVerificationRepository struct {
	db *sqlx.DB
}

func newEmailVerificationRepository(db *sqlx.DB) *emailVerificationRepository {
	return &emailVerificationRepository{
		db: db,
	}
}

func (r *emailVerificationRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, verification *domain.EmailVerification) error {
	const op = "repository.emailVerification.CreateWithTx"

	const query = `
	INSERT INTO email_verification (id, user_id, otp, expires_at)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :otp, :expires_at)
	`

	res, err := tx.NamedExecContext(ctx, query, verification)
	if err != nil {
		return fmt.Errorf("%s: insert email verification failed: %w", op, err)
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

func (r *emailVerificationRepository) GetUnusedByUserAndOTP(ctx context.Context, userID uuid.UUID, otp string) (*domain.EmailVerification, error) {
	const op = "repository.emailVerification.GetUnusedByUserAndOTP"

	const query = `
	SELECT id, user_id, otp, is_used, expires_at, created_at, updated_at
	FROM email_verification
	WHERE user_id = uuid_to_bin(?) AND otp = ? AND is_used = false
	ORDER BY expires_at DESC
	LIMIT 1
	`

	var verification domain.EmailVerification
	if err := r.db.GetContext(ctx, &verification, query, userID, otp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select email verification failed: %w", op, err)
	}

	return &verification, nil
}

func (r *emailVerificationRepository) GetLatestUnused(ctx context.Context, userID uuid.UUID) (*domain.EmailVerification, error) {
	const op = "repository.emailVerification.GetLatestUnused"

	const query = `
	SELECT id, user_id, otp, is_used, expires_at, created_at, updated_at
	FROM email_verification
	WHERE user_id = uuid_to_bin(?) AND is_used = false
	ORDER BY expires_at DESC
	LIMIT 1
	`

	var verification domain.EmailVerification
	if err := r.db.GetContext(ctx, &verification, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select latest email verification failed: %w", op, err)
	}

	return &verification, nil
}

func (r *emailVerificationRepository) MarkUsedWithTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	const op = "repository.emailVerification.MarkUsedWithTx"

	const query = `UPDATE email_verification SET is_used = true WHERE id = uuid_to_bin(?) AND is_used = false`

	res, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update email verification failed: %w", op, err)
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
