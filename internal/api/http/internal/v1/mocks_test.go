package v1

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/service"
	"github.com/taskhive/backend/pkg/auth"
	"github.com/taskhive/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const testToken = "good-token"

func newTestRouter(t *testing.T, services *service.Services, tokenManager auth.TokenManager) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	router := gin.New()
	handler := NewHandler(services, tokenManager, &config.Config{})
	api := router.Group("/api")
	handler.Init(api)

	return router
}

func doJSON(router *gin.Engine, method string, target string, body string, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// stubTokenManager accepts only testToken and resolves it to a fixed user id.
type stubTokenManager struct {
	userID uuid.UUID
}

func (s stubTokenManager) NewJWT(_ *uuid.UUID) (string, time.Duration, error) {
	return "jwt-token", 15 * time.Minute, nil
}

func (s stubTokenManager) Parse(accessToken string) (string, error) {
	if accessToken != testToken {
		return "", errors.New("bad token")
	}
	return s.userID.String(), nil
}

func (s stubTokenManager) NewRefreshToken() (uuid.UUID, time.Duration, error) {
	return uuid.New(), 240 * time.Hour, nil
}

func (s stubTokenManager) ValidateRefreshToken(refreshToken string) (*uuid.UUID, error) {
	id, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type mockUsers struct {
	signUpUser *domain.User
	signUpErr  error

	verifyErr     error
	regenerateErr error

	signInTokens *service.Tokens
	signInUser   *domain.User
	signInErr    error

	resetRequestErr error
	resetConfirmErr error

	deleted int64

	byID map[uuid.UUID]*domain.User
}

func (m *mockUsers) SignUp(_ context.Context, _ service.SignUpInput) (*domain.User, error) {
	return m.signUpUser, m.signUpErr
}

func (m *mockUsers) VerifyEmail(_ context.Context, _ string, _ string) error {
	return m.verifyErr
}

func (m *mockUsers) RegenerateOTP(_ context.Context, _ string) error {
	return m.regenerateErr
}

func (m *mockUsers) SignIn(_ context.Context, _ service.SignInInput) (*service.Tokens, *domain.User, error) {
	return m.signInTokens, m.signInUser, m.signInErr
}

func (m *mockUsers) PasswordResetRequest(_ context.Context, _ string) error {
	return m.resetRequestErr
}

func (m *mockUsers) PasswordResetConfirm(_ context.Context, _ string, _ string, _ string) error {
	return m.resetConfirmErr
}

func (m *mockUsers) DeleteAllUsers(_ context.Context) (int64, error) {
	return m.deleted, nil
}

func (m *mockUsers) GetOneByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return user, nil
}

type mockTasks struct {
	uploaded  *domain.Task
	uploadErr error

	list    []domain.Task
	listErr error

	edited  *domain.Task
	editErr error

	deleteErr error

	counts map[domain.TaskStatus]int64

	lastUploadInput service.UploadTaskInput
	lastEditInput   service.EditTaskInput
	lastEditTaskID  uuid.UUID
}

func (m *mockTasks) Upload(_ context.Context, _ *domain.User, input service.UploadTaskInput) (*domain.Task, error) {
	m.lastUploadInput = input
	return m.uploaded, m.uploadErr
}

func (m *mockTasks) List(_ context.Context, _ uuid.UUID) ([]domain.Task, error) {
	return m.list, m.listErr
}

func (m *mockTasks) Edit(_ context.Context, _ *domain.User, taskID uuid.UUID, input service.EditTaskInput) (*domain.Task, error) {
	m.lastEditTaskID = taskID
	m.lastEditInput = input
	return m.edited, m.editErr
}

func (m *mockTasks) Delete(_ context.Context, _ *domain.User, _ uuid.UUID) error {
	return m.deleteErr
}

func (m *mockTasks) Dashboard(_ context.Context, _ uuid.UUID) (map[domain.TaskStatus]int64, error) {
	return m.counts, nil
}

type mockProfiles struct {
	profile *domain.User
	getErr  error

	updated   *domain.User
	updateErr error

	changePasswordErr error

	lastTargetID    uuid.UUID
	lastUpdateInput service.UpdateProfileInput
}

func (m *mockProfiles) Get(_ context.Context, _ uuid.UUID) (*domain.User, error) {
	return m.profile, m.getErr
}

func (m *mockProfiles) Update(_ context.Context, _ *domain.User, targetID uuid.UUID, input service.UpdateProfileInput) (*domain.User, error) {
	m.lastTargetID = targetID
	m.lastUpdateInput = input
	return m.updated, m.updateErr
}

func (m *mockProfiles) ChangePassword(_ context.Context, _ *domain.User, _ string, _ string, _ string) error {
	return m.changePasswordErr
}

func authedUser(accountType domain.AccountType, verified bool) *domain.User {
	return &domain.User{
		ID:          uuid.New(),
		Username:    "alice",
		Email:       "alice@example.com",
		AccountType: accountType,
		IsVerified:  verified,
	}
}

func fixtureServices(user *domain.User, tasks *mockTasks, profiles *mockProfiles) (*service.Services, stubTokenManager) {
	users := &mockUsers{byID: map[uuid.UUID]*domain.User{}}
	if user != nil {
		users.byID[user.ID] = user
	}
	if tasks == nil {
		tasks = &mockTasks{}
	}
	if profiles == nil {
		profiles = &mockProfiles{}
	}

	tm := stubTokenManager{}
	if user != nil {
		tm.userID = user.ID
	}

	return &service.Services{Users: users, Tasks: tasks, Profiles: profiles}, tm
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("unexpected status: got %d want %d, body: %s", rec.Code, want, rec.Body.String())
	}
}
