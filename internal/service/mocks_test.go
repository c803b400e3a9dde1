package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/taskhive/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// The transactor fake runs the closure with a nil tx; mock repositories
// ignore the tx argument. The snapshot hook is taken before the closure
// runs and restored when it fails, mirroring a rollback.
type fakeTransactor struct {
	err      error
	snapshot func() (restore func())
}

func (t *fakeTransactor) WithinTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	if t.err != nil {
		return t.err
	}
	var restore func()
	if t.snapshot != nil {
		restore = t.snapshot()
	}
	if err := fn(nil); err != nil {
		if restore != nil {
			restore()
		}
		return err
	}
	return nil
}

type mockUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User

	created         []*domain.User
	createErr       error
	verified        []uuid.UUID
	passwordUpdates map[uuid.UUID]string
	profileUpdates  []*domain.User
	deletedAll      int64
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	r := &mockUserRepo{
		byEmail:         make(map[string]*domain.User),
		byID:            make(map[uuid.UUID]*domain.User),
		passwordUpdates: make(map[uuid.UUID]string),
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

// snapshot copies the maps so a failed transaction can be undone.
func (r *mockUserRepo) snapshot() func() {
	byEmail := make(map[string]*domain.User, len(r.byEmail))
	for k, v := range r.byEmail {
		byEmail[k] = v
	}
	byID := make(map[uuid.UUID]*domain.User, len(r.byID))
	for k, v := range r.byID {
		byID[k] = v
	}
	created := append([]*domain.User(nil), r.created...)

	return func() {
		r.byEmail = byEmail
		r.byID = byID
		r.created = created
	}
}

func (r *mockUserRepo) CreateWithTx(_ context.Context, _ *sqlx.Tx, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEntry
	}
	r.created = append(r.created, user)
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetOneByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *mockUserRepo) SetVerifiedWithTx(_ context.Context, _ *sqlx.Tx, userID uuid.UUID) error {
	r.verified = append(r.verified, userID)
	if user, ok := r.byID[userID]; ok {
		user.IsVerified = true
	}
	return nil
}

func (r *mockUserRepo) UpdatePasswordWithTx(_ context.Context, _ *sqlx.Tx, userID uuid.UUID, passwordHash string) error {
	r.passwordUpdates[userID] = passwordHash
	return nil
}

func (r *mockUserRepo) UpdateProfileWithTx(_ context.Context, _ *sqlx.Tx, user *domain.User) error {
	r.profileUpdates = append(r.profileUpdates, user)
	return nil
}

func (r *mockUserRepo) DeleteAll(_ context.Context) (int64, error) {
	r.deletedAll = int64(len(r.byID))
	r.byEmail = make(map[string]*domain.User)
	r.byID = make(map[uuid.UUID]*domain.User)
	return r.deletedAll, nil
}

type mockVerificationRepo struct {
	byUserAndOTP map[string]*domain.EmailVerification
	latestUnused *domain.EmailVerification

	created    []*domain.EmailVerification
	markedUsed []uuid.UUID
}

func newMockVerificationRepo() *mockVerificationRepo {
	return &mockVerificationRepo{
		byUserAndOTP: make(map[string]*domain.EmailVerification),
	}
}

func (r *mockVerificationRepo) put(v *domain.EmailVerification) {
	r.byUserAndOTP[v.UserID.String()+"/"+v.OTP] = v
}

func (r *mockVerificationRepo) CreateWithTx(_ context.Context, _ *sqlx.Tx, verification *domain.EmailVerification) error {
	r.created = append(r.created, verification)
	r.put(verification)
	return nil
}

func (r *mockVerificationRepo) GetUnusedByUserAndOTP(_ context.Context, userID uuid.UUID, otp string) (*domain.EmailVerification, error) {
	v, ok := r.byUserAndOTP[userID.String()+"/"+otp]
	if !ok || v.IsUsed {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *mockVerificationRepo) GetLatestUnused(_ context.Context, _ uuid.UUID) (*domain.EmailVerification, error) {
	if r.latestUnused == nil {
		return nil, domain.ErrNotFound
	}
	return r.latestUnused, nil
}

func (r *mockVerificationRepo) MarkUsedWithTx(_ context.Context, _ *sqlx.Tx, id uuid.UUID) error {
	r.markedUsed = append(r.markedUsed, id)
	return nil
}

type mockResetRepo struct {
	byUserAndOTP map[string]*domain.PasswordReset

	upserted   []*domain.PasswordReset
	markedUsed []uuid.UUID
}

func newMockResetRepo() *mockResetRepo {
	return &mockResetRepo{
		byUserAndOTP: make(map[string]*domain.PasswordReset),
	}
}

func (r *mockResetRepo) put(reset *domain.PasswordReset) {
	r.byUserAndOTP[reset.UserID.String()+"/"+reset.OTP] = reset
}

func (r *mockResetRepo) UpsertWithTx(_ context.Context, _ *sqlx.Tx, reset *domain.PasswordReset) error {
	r.upserted = append(r.upserted, reset)
	r.put(reset)
	return nil
}

func (r *mockResetRepo) GetUnusedByUserAndOTP(_ context.Context, userID uuid.UUID, otp string) (*domain.PasswordReset, error) {
	reset, ok := r.byUserAndOTP[userID.String()+"/"+otp]
	if !ok || reset.IsUsed {
		return nil, domain.ErrNotFound
	}
	return reset, nil
}

func (r *mockResetRepo) MarkUsedWithTx(_ context.Context, _ *sqlx.Tx, id uuid.UUID) error {
	r.markedUsed = append(r.markedUsed, id)
	return nil
}

type mockSessionRepo struct {
	sessions []*domain.RefreshSession
	err      error
}

func (r *mockSessionRepo) Create(_ context.Context, session *domain.RefreshSession) error {
	if r.err != nil {
		return r.err
	}
	r.sessions = append(r.sessions, session)
	return nil
}

type mockTaskRepo struct {
	byID map[uuid.UUID]*domain.Task

	created     []*domain.Task
	updated     []*domain.Task
	softDeleted []uuid.UUID
	deletedBy   []string
	counts      map[domain.TaskStatus]int64

	tagLinks map[uuid.UUID][]uuid.UUID
	reqLinks map[uuid.UUID][]uuid.UUID

	tagsByTask map[uuid.UUID][]domain.Tag
	reqsByTask map[uuid.UUID][]domain.Requirement
}

func newMockTaskRepo(tasks ...*domain.Task) *mockTaskRepo {
	r := &mockTaskRepo{
		byID:       make(map[uuid.UUID]*domain.Task),
		counts:     make(map[domain.TaskStatus]int64),
		tagLinks:   make(map[uuid.UUID][]uuid.UUID),
		reqLinks:   make(map[uuid.UUID][]uuid.UUID),
		tagsByTask: make(map[uuid.UUID][]domain.Tag),
		reqsByTask: make(map[uuid.UUID][]domain.Requirement),
	}
	for _, t := range tasks {
		r.byID[t.ID] = t
	}
	return r
}

func (r *mockTaskRepo) CreateWithTx(_ context.Context, _ *sqlx.Tx, task *domain.Task) error {
	r.created = append(r.created, task)
	r.byID[task.ID] = task
	return nil
}

func (r *mockTaskRepo) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func (r *mockTaskRepo) GetOneByUser(_ context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Task, error) {
	task, ok := r.byID[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func (r *mockTaskRepo) GetAllByUser(_ context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	for _, t := range r.byID {
		if t.UserID == userID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (r *mockTaskRepo) UpdateWithTx(_ context.Context, _ *sqlx.Tx, task *domain.Task) error {
	r.updated = append(r.updated, task)
	r.byID[task.ID] = task
	return nil
}

func (r *mockTaskRepo) SoftDelete(_ context.Context, id uuid.UUID, deletedBy string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	r.softDeleted = append(r.softDeleted, id)
	r.deletedBy = append(r.deletedBy, deletedBy)
	return nil
}

func (r *mockTaskRepo) CountByStatus(_ context.Context, _ uuid.UUID) (map[domain.TaskStatus]int64, error) {
	return r.counts, nil
}

func (r *mockTaskRepo) ReplaceTagsWithTx(_ context.Context, _ *sqlx.Tx, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	r.tagLinks[taskID] = tagIDs
	return nil
}

func (r *mockTaskRepo) ReplaceRequirementsWithTx(_ context.Context, _ *sqlx.Tx, taskID uuid.UUID, requirementIDs []uuid.UUID) error {
	r.reqLinks[taskID] = requirementIDs
	return nil
}

func (r *mockTaskRepo) GetTagsByTaskIDs(_ context.Context, _ []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	return r.tagsByTask, nil
}

func (r *mockTaskRepo) GetRequirementsByTaskIDs(_ context.Context, _ []uuid.UUID) (map[uuid.UUID][]domain.Requirement, error) {
	return r.reqsByTask, nil
}

// mockNamedRepo serves both tag and requirement repositories, handing out a
// stable id per name.
type mockNamedRepo struct {
	ids    map[string]uuid.UUID
	pruned int
}

func newMockNamedRepo() *mockNamedRepo {
	return &mockNamedRepo{ids: make(map[string]uuid.UUID)}
}

func (r *mockNamedRepo) UpsertByNameWithTx(_ context.Context, _ *sqlx.Tx, name string) (uuid.UUID, error) {
	if id, ok := r.ids[name]; ok {
		return id, nil
	}
	id := uuid.New()
	r.ids[name] = id
	return id, nil
}

func (r *mockNamedRepo) PruneOrphansWithTx(_ context.Context, _ *sqlx.Tx) error {
	r.pruned++
	return nil
}

type mockSpecialtyRepo struct {
	mockNamedRepo
	byUser   map[uuid.UUID][]domain.Specialty
	replaced map[uuid.UUID][]uuid.UUID
}

func newMockSpecialtyRepo() *mockSpecialtyRepo {
	return &mockSpecialtyRepo{
		mockNamedRepo: mockNamedRepo{ids: make(map[string]uuid.UUID)},
		byUser:        make(map[uuid.UUID][]domain.Specialty),
		replaced:      make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *mockSpecialtyRepo) ReplaceForUserWithTx(_ context.Context, _ *sqlx.Tx, userID uuid.UUID, specialtyIDs []uuid.UUID) error {
	r.replaced[userID] = specialtyIDs

	var specialties []domain.Specialty
	for name, id := range r.ids {
		for _, want := range specialtyIDs {
			if id == want {
				specialties = append(specialties, domain.Specialty{ID: id, Name: name})
			}
		}
	}
	r.byUser[userID] = specialties
	return nil
}

func (r *mockSpecialtyRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]domain.Specialty, error) {
	return r.byUser[userID], nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Equal(password string, passwordHash string) bool {
	return "hashed:"+password == passwordHash
}

type stubTokenManager struct{}

func (stubTokenManager) NewJWT(_ *uuid.UUID) (string, time.Duration, error) {
	return "access-token", 15 * time.Minute, nil
}

func (stubTokenManager) Parse(_ string) (string, error) {
	return "", errors.New("not implemented")
}

func (stubTokenManager) NewRefreshToken() (uuid.UUID, time.Duration, error) {
	return uuid.New(), 240 * time.Hour, nil
}

func (stubTokenManager) ValidateRefreshToken(refreshToken string) (*uuid.UUID, error) {
	id, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type stubOTPGenerator struct {
	code string
}

func (g stubOTPGenerator) RandomCode(_ int) string {
	return g.code
}

type mockEmails struct {
	verificationTo    []string
	verificationCodes []string
	resetTo           []string
	resetCodes        []string
	err               error
}

func (m *mockEmails) SendVerificationEmail(to string, code string) error {
	if m.err != nil {
		return m.err
	}
	m.verificationTo = append(m.verificationTo, to)
	m.verificationCodes = append(m.verificationCodes, code)
	return nil
}

func (m *mockEmails) SendPasswordResetEmail(to string, code string) error {
	if m.err != nil {
		return m.err
	}
	m.resetTo = append(m.resetTo, to)
	m.resetCodes = append(m.resetCodes, code)
	return nil
}

type mockDashboardCache struct {
	store       map[uuid.UUID]map[domain.TaskStatus]int64
	invalidated []uuid.UUID
}

func newMockDashboardCache() *mockDashboardCache {
	return &mockDashboardCache{store: make(map[uuid.UUID]map[domain.TaskStatus]int64)}
}

func (c *mockDashboardCache) Get(_ context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error) {
	counts, ok := c.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return counts, nil
}

func (c *mockDashboardCache) Set(_ context.Context, userID uuid.UUID, counts map[domain.TaskStatus]int64) error {
	c.store[userID] = counts
	return nil
}

func (c *mockDashboardCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	delete(c.store, userID)
	return nil
}

type mockUploader struct {
	url      string
	err      error
	received []string
}

func (u *mockUploader) Upload(fileName string, _ io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.received = append(u.received, fileName)
	return u.url, nil
}
