package service

import (
	"context"
	"io"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/repository"
	"github.com/taskhive/backend/pkg/auth"
	"github.com/taskhive/backend/pkg/hash"
	"github.com/taskhive/backend/pkg/otp"
	emailProvider "github.com/taskhive/backend/pkg/email"
	"github.com/taskhive/backend/pkg/upload"

	"github.com/google/uuid"
)

type Services struct {
	Users    Users
	Tasks    Tasks
	Profiles Profiles
}

type Deps struct {
	Config         *config.Config
	Hasher         hash.PasswordHasher
	TokenManager   auth.TokenManager
	OtpGenerator   otp.Generator
	EmailSender    emailProvider.Sender
	Uploader       upload.Uploader
	DashboardCache DashboardCache
	Repos          *repository.Repositories
}

func NewServices(deps Deps) *Services {
	emails := newEmailService(deps.EmailSender, deps.Config.Email)

	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.EmailVerifications,
			deps.Repos.PasswordResets,
			deps.Repos.RefreshSessions,
			deps.Repos.Transactor,
			deps.Hasher,
			deps.TokenManager,
			deps.OtpGenerator,
			emails,
			deps.Config.Auth,
		),
		Tasks: newTaskService(
			deps.Repos.Tasks,
			deps.Repos.Tags,
			deps.Repos.Requirements,
			deps.Repos.Transactor,
			deps.DashboardCache,
		),
		Profiles: newProfileService(
			deps.Repos.Users,
			deps.Repos.Specialties,
			deps.Repos.Transactor,
			deps.Hasher,
			deps.Uploader,
		),
	}
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, email string, otpCode string) error
	RegenerateOTP(ctx context.Context, email string) error
	SignIn(ctx context.Context, input SignInInput) (*Tokens, *domain.User, error)
	PasswordResetRequest(ctx context.Context, email string) error
	PasswordResetConfirm(ctx context.Context, email string, otpCode string, newPassword string) error
	DeleteAllUsers(ctx context.Context) (int64, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Tasks interface {
	Upload(ctx context.Context, user *domain.User, input UploadTaskInput) (*domain.Task, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	Edit(ctx context.Context, user *domain.User, taskID uuid.UUID, input EditTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, user *domain.User, taskID uuid.UUID) error
	Dashboard(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error)
}

type Profiles interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, requester *domain.User, targetID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, user *domain.User, current string, newPassword string, confirm string) error
}

// Emails dispatches purpose-specific templated emails.
type Emails interface {
	SendVerificationEmail(to string, code string) error
	SendPasswordResetEmail(to string, code string) error
}

// DashboardCache holds per-user task counters, invalidated on task mutation.
type DashboardCache interface {
	Get(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error)
	Set(ctx context.Context, userID uuid.UUID, counts map[domain.TaskStatus]int64) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type SignUpInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	AccountType domain.AccountType
}

type SignInInput struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

type UploadTaskInput struct {
	Title               string
	Description         string
	Category            string
	RewardPerCompletion int64
	AssignmentType      domain.AssignmentType
	MaxCompletions      *int64
	Tags                []string
	Requirements        []string
}

type EditTaskInput struct {
	Title               *string
	Description         *string
	Category            *string
	RewardPerCompletion *int64
	AssignmentType      *domain.AssignmentType
	MaxCompletions      *int64
	Status              *domain.TaskStatus
	Tags                *[]string
	Requirements        *[]string
}

type UpdateProfileInput struct {
	Username    *string
	FullName    *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Bio         *string
	Location    *string
	Country     *string
	State       *string
	PostalCode  *string
	Website     *string
	Company     *string

	ImageFileName string
	Image         io.Reader

	Specialties *[]string
}
