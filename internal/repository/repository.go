package repository

import (
	"context"

	"github.com/taskhive/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users              Users
	EmailVerifications EmailVerifications
	PasswordResets     PasswordResets
	Tasks              Tasks
	Tags               Tags
	Requirements       Requirements
	Specialties        Specialties
	RefreshSessions    RefreshSessions
	Transactor         Transactor
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:              newUserRepository(db),
		EmailVerifications: newEmailVerificationRepository(db),
		PasswordResets:     newPasswordResetRepository(db),
		Tasks:              newTaskRepository(db),
		Tags:               newTagRepository(db),
		Requirements:       newRequirementRepository(db),
		Specialties:        newSpecialtyRepository(db),
		RefreshSessions:    newRefreshSessionRepository(db),
		Transactor:         newTransactor(db),
	}
}

// Transactor runs a function inside a database transaction, committing on nil
// and rolling back on error or panic.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type Users interface {
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetVerifiedWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error
	UpdatePasswordWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, passwordHash string) error
	UpdateProfileWithTx(ctx context.Context, tx *sqlx.Tx, user *domain.User) error
	DeleteAll(ctx context.Context) (int64, error)
}

type EmailVerifications interface {
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, verification *domain.EmailVerification) error
	GetUnusedByUserAndOTP(ctx context.Context, userID uuid.UUID, otp string) (*domain.EmailVerification, error)
	GetLatestUnused(ctx context.Context, userID uuid.UUID) (*domain.EmailVerification, error)
	MarkUsedWithTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error
}

type PasswordResets interface {
	UpsertWithTx(ctx context.Context, tx *sqlx.Tx, reset *domain.PasswordReset) error
	GetUnusedByUserAndOTP(ctx context.Context, userID uuid.UUID, otp string) (*domain.PasswordReset, error)
	MarkUsedWithTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error
}

type Tasks interface {
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetOneByUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Task, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	UpdateWithTx(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error)
	ReplaceTagsWithTx(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, tagIDs []uuid.UUID) error
	ReplaceRequirementsWithTx(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, requirementIDs []uuid.UUID) error
	GetTagsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error)
	GetRequirementsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]domain.Requirement, error)
}

type Tags interface {
	UpsertByNameWithTx(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error)
	PruneOrphansWithTx(ctx context.Context, tx *sqlx.Tx) error
}

type Requirements interface {
	UpsertByNameWithTx(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error)
	PruneOrphansWithTx(ctx context.Context, tx *sqlx.Tx) error
}

type Specialties interface {
	UpsertByNameWithTx(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error)
	ReplaceForUserWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, specialtyIDs []uuid.UUID) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Specialty, error)
	PruneOrphansWithTx(ctx context.Context, tx *sqlx.Tx) error
}

type RefreshSessions interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
}
