package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/domain"
	queueClient "github.com/taskhive/backend/internal/queue/client"
	queueTask "github.com/taskhive/backend/internal/queue/task"
	"github.com/taskhive/backend/internal/repository"
	"github.com/taskhive/backend/pkg/auth"
	"github.com/taskhive/backend/pkg/hash"
	"github.com/taskhive/backend/pkg/logger"
	"github.com/taskhive/backend/pkg/otp"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type userService struct {
	userRepository         repository.Users
	verificationRepository repository.EmailVerifications
	resetRepository        repository.PasswordResets
	sessionRepository      repository.RefreshSessions
	transactor             repository.Transactor
	hasher                 hash.PasswordHasher
	tokenManager           auth.TokenManager
	otpGenerator           otp.Generator
	emails                 Emails
	authConfig             config.AuthConfig
}

func newUserService(
	userRepository repository.Users,
	verificationRepository repository.EmailVerifications,
	resetRepository repository.PasswordResets,
	sessionRepository repository.RefreshSessions,
	transactor repository.Transactor,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	emails Emails,
	authConfig config.AuthConfig,
) *userService {
	return &userService{
		userRepository:         userRepository,
		verificationRepository: verificationRepository,
		resetRepository:        resetRepository,
		sessionRepository:      sessionRepository,
		transactor:             transactor,
		hasher:                 hasher,
		tokenManager:           tokenManager,
		otpGenerator:           otpGenerator,
		emails:                 emails,
		authConfig:             authConfig,
	}
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

// SignUp creates the user, its first verification code, and dispatches the
// verification email within a single transaction. A failed dispatch rolls
// back the user row.
func (s *userService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	if _, err := s.userRepository.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	accountType := input.AccountType
	if accountType == "" {
		accountType = domain.AccountTypeUser
	}

	user := &domain.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		AccountType:  accountType,
		PhoneNumber: sql.NullString{
			String: input.PhoneNumber,
			Valid:  input.PhoneNumber != "",
		},
	}

	code := s.otpGenerator.RandomCode(s.authConfig.OTPCodeLength)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepository.CreateWithTx(ctx, tx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateEntry) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("create user failed: %w", err)
		}

		verification, err := s.newVerification(user.ID, code)
		if err != nil {
			return err
		}
		if err := s.verificationRepository.CreateWithTx(ctx, tx, verification); err != nil {
			return fmt.Errorf("create email verification failed: %w", err)
		}

		if err := s.emails.SendVerificationEmail(user.Email, code); err != nil {
			return fmt.Errorf("send verification email failed: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail consumes the code and flips the user's verified flag
// atomically. Checks run in a fixed order: user exists, not yet verified,
// code matches an unused row, code not expired.
func (s *userService) VerifyEmail(ctx context.Context, email string, otpCode string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if user.IsVerified {
		return ErrUserAlreadyVerified
	}

	verification, err := s.verificationRepository.GetUnusedByUserAndOTP(ctx, user.ID, otpCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("get email verification failed: %w", err)
	}

	if verification.IsExpired() {
		return ErrOTPExpired
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.verificationRepository.MarkUsedWithTx(ctx, tx, verification.ID); err != nil {
			return fmt.Errorf("mark verification used failed: %w", err)
		}
		if err := s.userRepository.SetVerifiedWithTx(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("set user verified failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.enqueueWelcomeEmail(ctx, user)

	return nil
}

// enqueueWelcomeEmail schedules the post-verification welcome email. The
// email is best-effort, enqueue failures are logged and swallowed.
func (s *userService) enqueueWelcomeEmail(ctx context.Context, user *domain.User) {
	client := queueClient.GetClient(ctx)
	if client == nil {
		return
	}

	welcomeTask, err := queueTask.NewSendWelcomeEmailTask(user.Email, user.Username)
	if err != nil {
		logger.Error("build welcome email task failed", zap.Error(err))
		return
	}

	if _, err := client.EnqueueContext(ctx, welcomeTask); err != nil {
		logger.Error("enqueue welcome email failed", zap.Error(err))
	}
}

// RegenerateOTP issues a fresh verification code unless an unused, unexpired
// one is still active. The check-then-create sequence is best-effort under
// concurrency, see DESIGN.md.
func (s *userService) RegenerateOTP(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	existing, err := s.verificationRepository.GetLatestUnused(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get latest verification failed: %w", err)
	}
	if existing != nil && !existing.IsExpired() {
		return ErrActiveOTPExists
	}

	code := s.otpGenerator.RandomCode(s.authConfig.OTPCodeLength)

	return s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		verification, err := s.newVerification(user.ID, code)
		if err != nil {
			return err
		}
		if err := s.verificationRepository.CreateWithTx(ctx, tx, verification); err != nil {
			return fmt.Errorf("create email verification failed: %w", err)
		}

		if err := s.emails.SendVerificationEmail(user.Email, code); err != nil {
			return fmt.Errorf("send verification email failed: %w", err)
		}

		return nil
	})
}

func (s *userService) newVerification(userID uuid.UUID, code string) (*domain.EmailVerification, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate verification id failed: %w", err)
	}

	return &domain.EmailVerification{
		ID:        id,
		UserID:    userID,
		OTP:       code,
		ExpiresAt: time.Now().Add(s.authConfig.OTPCodeTTL),
	}, nil
}

// SignIn authenticates by email and password. Missing user, wrong password
// and unverified email each fail distinctly, in that order.
func (s *userService) SignIn(ctx context.Context, input SignInInput) (*Tokens, *domain.User, error) {
	user, err := s.userRepository.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if !s.hasher.Equal(input.Password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, nil, ErrUserNotVerified
	}

	tokens, err := s.createSession(ctx, user.ID, input.UserAgent, input.IP)
	if err != nil {
		return nil, nil, fmt.Errorf("create session failed: %w", err)
	}

	return tokens, user, nil
}

func (s *userService) createSession(ctx context.Context, userID uuid.UUID, userAgent string, userIP string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(&userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	session := &domain.RefreshSession{
		ID:           sessionID,
		UserID:       userID,
		RefreshToken: res.RefreshToken,
		UserAgent:    userAgent,
		IP:           userIP,
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := s.sessionRepository.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}

// PasswordResetRequest upserts the user's single reset row and emails the
// code; the latest request overwrites a previous unused one.
func (s *userService) PasswordResetRequest(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	code := s.otpGenerator.RandomCode(s.authConfig.OTPCodeLength)

	return s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		resetID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate reset id failed: %w", err)
		}

		reset := &domain.PasswordReset{
			ID:        resetID,
			UserID:    user.ID,
			OTP:       code,
			ExpiresAt: time.Now().Add(s.authConfig.OTPCodeTTL),
		}
		if err := s.resetRepository.UpsertWithTx(ctx, tx, reset); err != nil {
			return fmt.Errorf("upsert password reset failed: %w", err)
		}

		if err := s.emails.SendPasswordResetEmail(user.Email, code); err != nil {
			return fmt.Errorf("send password reset email failed: %w", err)
		}

		return nil
	})
}

// PasswordResetConfirm stores the new password hash and consumes the code
// atomically.
func (s *userService) PasswordResetConfirm(ctx context.Context, email string, otpCode string, newPassword string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	reset, err := s.resetRepository.GetUnusedByUserAndOTP(ctx, user.ID, otpCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("get password reset failed: %w", err)
	}

	if reset.IsExpired() {
		return ErrOTPExpired
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	return s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepository.UpdatePasswordWithTx(ctx, tx, user.ID, passwordHash); err != nil {
			return fmt.Errorf("update password failed: %w", err)
		}
		if err := s.resetRepository.MarkUsedWithTx(ctx, tx, reset.ID); err != nil {
			return fmt.Errorf("mark reset used failed: %w", err)
		}
		return nil
	})
}

func (s *userService) DeleteAllUsers(ctx context.Context) (int64, error) {
	return s.userRepository.DeleteAll(ctx)
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
