package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskhive/backend/internal/db"
	"github.com/taskhive/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, username, email, password_hash, phone_number, account_type, is_verified, is_active,
	full_name, first_name, last_name, bio, location, country, state, postal_code, image, website, company,
	is_paid, payment_status, wallet_balance, created_at, updated_at, deleted_at, deleted_by`

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	const op = "repository.user.CreateWithTx"

	const query = `
	INSERT INTO users (id, username, email, password_hash, phone_number, account_type)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?)
	`

	res, err := tx.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		user.AccountType,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert user failed: %w", op, err)
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

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "repository.user.GetByEmail"

	const query = `SELECT ` + userColumns + ` FROM users WHERE email = ? AND deleted_at IS NULL`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by email failed: %w", op, err)
	}

	return &user, nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "repository.user.GetOneByID"

	const query = `SELECT ` + userColumns + ` FROM users WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by id failed: %w", op, err)
	}

	return &user, nil
}

func (r *userRepository) SetVerifiedWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	const op = "repository.user.SetVerifiedWithTx"

	const query = `UPDATE users SET is_verified = true WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	res, err := tx.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("%s: update user failed: %w", op, err)
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

func (r *userRepository) UpdatePasswordWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, passwordHash string) error {
	const op = "repository.user.UpdatePasswordWithTx"

	const query = `UPDATE users SET password_hash = ? WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	if _, err := tx.ExecContext(ctx, query, passwordHash, userID); err != nil {
		return fmt.Errorf("%s: update password failed: %w", op, err)
	}

	return nil
}

func (r *userRepository) UpdateProfileWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	const op = "repository.user.UpdateProfileWithTx"

	const query = `
	UPDATE users SET
		username = :username,
		full_name = :full_name,
		first_name = :first_name,
		last_name = :last_name,
		phone_number = :phone_number,
		bio = :bio,
		location = :location,
		country = :country,
		state = :state,
		postal_code = :postal_code,
		image = :image,
		website = :website,
		company = :company
	WHERE id = uuid_to_bin(:id) AND deleted_at IS NULL
	`

	if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("%s: update profile failed: %w", op, err)
	}

	return nil
}

func (r *userRepository) DeleteAll(ctx context.Context) (int64, error) {
	const op = "repository.user.DeleteAll"

	res, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, fmt.Errorf("%s: delete users failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
