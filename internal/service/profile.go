package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/repository"
	"github.com/taskhive/backend/pkg/hash"
	"github.com/taskhive/backend/pkg/upload"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type profileService struct {
	userRepository      repository.Users
	specialtyRepository repository.Specialties
	transactor          repository.Transactor
	hasher              hash.PasswordHasher
	uploader            upload.Uploader
}

func newProfileService(
	userRepository repository.Users,
	specialtyRepository repository.Specialties,
	transactor repository.Transactor,
	hasher hash.PasswordHasher,
	uploader upload.Uploader,
) *profileService {
	return &profileService{
		userRepository:      userRepository,
		specialtyRepository: specialtyRepository,
		transactor:          transactor,
		hasher:              hasher,
		uploader:            uploader,
	}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}

	specialties, err := s.specialtyRepository.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user specialties failed: %w", err)
	}
	if specialties == nil {
		specialties = []domain.Specialty{}
	}
	user.Specialties = specialties

	return user, nil
}

// Update edits a user's own profile. Only the account owner may edit it; an
// image replaces the stored URL via the upload collaborator, and a specialty
// list replaces the user's set by name, pruning orphans.
func (s *profileService) Update(ctx context.Context, requester *domain.User, targetID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if requester.ID != targetID {
		return nil, ErrForbidden
	}

	user, err := s.userRepository.GetOneByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}

	if input.Image != nil {
		url, err := s.uploader.Upload(input.ImageFileName, input.Image)
		if err != nil {
			return nil, fmt.Errorf("upload profile image failed: %w", err)
		}
		user.Image = sql.NullString{String: url, Valid: true}
	}

	applyProfileInput(user, input)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepository.UpdateProfileWithTx(ctx, tx, user); err != nil {
			return fmt.Errorf("update profile failed: %w", err)
		}

		if input.Specialties != nil {
			ids := make([]uuid.UUID, 0, len(*input.Specialties))
			seen := make(map[string]struct{})
			for _, name := range *input.Specialties {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				if _, ok := seen[name]; ok {
					continue
				}
				seen[name] = struct{}{}

				id, err := s.specialtyRepository.UpsertByNameWithTx(ctx, tx, name)
				if err != nil {
					return fmt.Errorf("upsert specialty failed: %w", err)
				}
				ids = append(ids, id)
			}

			if err := s.specialtyRepository.ReplaceForUserWithTx(ctx, tx, user.ID, ids); err != nil {
				return fmt.Errorf("replace user specialties failed: %w", err)
			}
			if err := s.specialtyRepository.PruneOrphansWithTx(ctx, tx); err != nil {
				return fmt.Errorf("prune specialties failed: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	specialties, err := s.specialtyRepository.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user specialties failed: %w", err)
	}
	if specialties == nil {
		specialties = []domain.Specialty{}
	}
	user.Specialties = specialties

	return user, nil
}

func applyProfileInput(user *domain.User, input UpdateProfileInput) {
	if input.Username != nil {
		user.Username = *input.Username
	}
	setNullString := func(dst *sql.NullString, src *string) {
		if src != nil {
			*dst = sql.NullString{String: *src, Valid: *src != ""}
		}
	}
	setNullString(&user.FullName, input.FullName)
	setNullString(&user.FirstName, input.FirstName)
	setNullString(&user.LastName, input.LastName)
	setNullString(&user.PhoneNumber, input.PhoneNumber)
	setNullString(&user.Bio, input.Bio)
	setNullString(&user.Location, input.Location)
	setNullString(&user.Country, input.Country)
	setNullString(&user.State, input.State)
	setNullString(&user.PostalCode, input.PostalCode)
	setNullString(&user.Website, input.Website)
	setNullString(&user.Company, input.Company)
}

// ChangePassword rejects a wrong current password, mismatched confirmation,
// and a new password equal to the current one.
func (s *profileService) ChangePassword(ctx context.Context, user *domain.User, current string, newPassword string, confirm string) error {
	if !s.hasher.Equal(current, user.PasswordHash) {
		return ErrWrongPassword
	}
	if newPassword != confirm {
		return ErrPasswordConfirmMismatch
	}
	if newPassword == current {
		return ErrPasswordUnchanged
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	return s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepository.UpdatePasswordWithTx(ctx, tx, user.ID, passwordHash); err != nil {
			return fmt.Errorf("update password failed: %w", err)
		}
		return nil
	})
}
