package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/repository"
	"github.com/taskhive/backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type taskService struct {
	taskRepository        repository.Tasks
	tagRepository         repository.Tags
	requirementRepository repository.Requirements
	transactor            repository.Transactor
	dashboardCache        DashboardCache
}

func newTaskService(
	taskRepository repository.Tasks,
	tagRepository repository.Tags,
	requirementRepository repository.Requirements,
	transactor repository.Transactor,
	dashboardCache DashboardCache,
) *taskService {
	return &taskService{
		taskRepository:        taskRepository,
		tagRepository:         tagRepository,
		requirementRepository: requirementRepository,
		transactor:            transactor,
		dashboardCache:        dashboardCache,
	}
}

// Upload creates a task for a verified tasksmith with a phone number on
// file. Tag and requirement names are created or reused by unique name.
func (s *taskService) Upload(ctx context.Context, user *domain.User, input UploadTaskInput) (*domain.Task, error) {
	if !user.IsVerified {
		return nil, ErrUserNotVerified
	}
	if !user.PhoneNumber.Valid || user.PhoneNumber.String == "" {
		return nil, ErrPhoneNumberRequired
	}

	if err := validateAssignment(input.AssignmentType, input.MaxCompletions); err != nil {
		return nil, err
	}

	taskID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate task id failed: %w", err)
	}

	maxCompletions := input.MaxCompletions
	if maxCompletions == nil {
		one := int64(1)
		maxCompletions = &one
	}

	task := &domain.Task{
		ID:                  taskID,
		UserID:              user.ID,
		Title:               input.Title,
		Description:         input.Description,
		Category:            input.Category,
		RewardPerCompletion: input.RewardPerCompletion,
		AssignmentType:      input.AssignmentType,
		MaxCompletions:      maxCompletions,
		Status:              domain.TaskStatusPending,
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.taskRepository.CreateWithTx(ctx, tx, task); err != nil {
			return fmt.Errorf("create task failed: %w", err)
		}

		tags, err := s.linkNames(ctx, tx, task.ID, input.Tags, s.tagRepository.UpsertByNameWithTx, s.taskRepository.ReplaceTagsWithTx)
		if err != nil {
			return fmt.Errorf("link tags failed: %w", err)
		}
		for _, t := range tags {
			task.Tags = append(task.Tags, domain.Tag{ID: t.id, Name: t.name})
		}

		requirements, err := s.linkNames(ctx, tx, task.ID, input.Requirements, s.requirementRepository.UpsertByNameWithTx, s.taskRepository.ReplaceRequirementsWithTx)
		if err != nil {
			return fmt.Errorf("link requirements failed: %w", err)
		}
		for _, r := range requirements {
			task.Requirements = append(task.Requirements, domain.Requirement{ID: r.id, Name: r.name})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, user.ID)

	return task, nil
}

type namedRow struct {
	id   uuid.UUID
	name string
}

// linkNames upserts every distinct non-empty name and replaces the task's
// link rows with the resulting ids.
func (s *taskService) linkNames(
	ctx context.Context,
	tx *sqlx.Tx,
	taskID uuid.UUID,
	names []string,
	upsert func(ctx context.Context, tx *sqlx.Tx, name string) (uuid.UUID, error),
	replace func(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, ids []uuid.UUID) error,
) ([]namedRow, error) {
	var (
		rows []namedRow
		ids  []uuid.UUID
		seen = make(map[string]struct{})
	)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		id, err := upsert(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, namedRow{id: id, name: name})
		ids = append(ids, id)
	}

	if err := replace(ctx, tx, taskID, ids); err != nil {
		return nil, err
	}

	return rows, nil
}

// List returns the user's non-deleted tasks with tags and requirements
// resolved.
func (s *taskService) List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.taskRepository.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get tasks failed: %w", err)
	}
	if len(tasks) == 0 {
		return []domain.Task{}, nil
	}

	taskIDs := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}

	tags, err := s.taskRepository.GetTagsByTaskIDs(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("get task tags failed: %w", err)
	}
	requirements, err := s.taskRepository.GetRequirementsByTaskIDs(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("get task requirements failed: %w", err)
	}

	for i := range tasks {
		tasks[i].Tags = tags[tasks[i].ID]
		tasks[i].Requirements = requirements[tasks[i].ID]
		if tasks[i].Tags == nil {
			tasks[i].Tags = []domain.Tag{}
		}
		if tasks[i].Requirements == nil {
			tasks[i].Requirements = []domain.Requirement{}
		}
	}

	return tasks, nil
}

// Edit applies a partial update to a task owned by the user and re-validates
// the assignment-type coupling on the merged result.
func (s *taskService) Edit(ctx context.Context, user *domain.User, taskID uuid.UUID, input EditTaskInput) (*domain.Task, error) {
	task, err := s.taskRepository.GetOneByUser(ctx, taskID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task failed: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.RewardPerCompletion != nil {
		task.RewardPerCompletion = *input.RewardPerCompletion
	}
	if input.AssignmentType != nil {
		task.AssignmentType = *input.AssignmentType
	}
	if input.MaxCompletions != nil {
		task.MaxCompletions = input.MaxCompletions
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := validateAssignment(task.AssignmentType, task.MaxCompletions); err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.taskRepository.UpdateWithTx(ctx, tx, task); err != nil {
			return fmt.Errorf("update task failed: %w", err)
		}

		if input.Tags != nil {
			task.Tags = nil
			rows, err := s.linkNames(ctx, tx, task.ID, *input.Tags, s.tagRepository.UpsertByNameWithTx, s.taskRepository.ReplaceTagsWithTx)
			if err != nil {
				return fmt.Errorf("link tags failed: %w", err)
			}
			for _, r := range rows {
				task.Tags = append(task.Tags, domain.Tag{ID: r.id, Name: r.name})
			}
			if err := s.tagRepository.PruneOrphansWithTx(ctx, tx); err != nil {
				return fmt.Errorf("prune tags failed: %w", err)
			}
		}

		if input.Requirements != nil {
			task.Requirements = nil
			rows, err := s.linkNames(ctx, tx, task.ID, *input.Requirements, s.requirementRepository.UpsertByNameWithTx, s.taskRepository.ReplaceRequirementsWithTx)
			if err != nil {
				return fmt.Errorf("link requirements failed: %w", err)
			}
			for _, r := range rows {
				task.Requirements = append(task.Requirements, domain.Requirement{ID: r.id, Name: r.name})
			}
			if err := s.requirementRepository.PruneOrphansWithTx(ctx, tx); err != nil {
				return fmt.Errorf("prune requirements failed: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, user.ID)

	return task, nil
}

// Delete soft-deletes a task. Owners delete their own tasks, admins may
// delete anyone's.
func (s *taskService) Delete(ctx context.Context, user *domain.User, taskID uuid.UUID) error {
	var (
		task *domain.Task
		err  error
	)

	if user.IsAdmin() {
		task, err = s.taskRepository.GetOneByID(ctx, taskID)
	} else {
		task, err = s.taskRepository.GetOneByUser(ctx, taskID, user.ID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("get task failed: %w", err)
	}

	if err := s.taskRepository.SoftDelete(ctx, task.ID, user.Username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("soft delete task failed: %w", err)
	}

	s.invalidateDashboard(ctx, task.UserID)

	return nil
}

// Dashboard returns the user's non-deleted task counts per status with every
// status present, zero-filled. Counters are cached briefly in redis.
func (s *taskService) Dashboard(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error) {
	if s.dashboardCache != nil {
		if cached, err := s.dashboardCache.Get(ctx, userID); err == nil {
			return cached, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	counts, err := s.taskRepository.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tasks by status failed: %w", err)
	}

	result := make(map[domain.TaskStatus]int64, len(domain.TaskStatuses))
	for _, status := range domain.TaskStatuses {
		result[status] = counts[status]
	}

	if s.dashboardCache != nil {
		if err := s.dashboardCache.Set(ctx, userID, result); err != nil {
			logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

func (s *taskService) invalidateDashboard(ctx context.Context, userID uuid.UUID) {
	if s.dashboardCache == nil {
		return
	}
	if err := s.dashboardCache.Invalidate(ctx, userID); err != nil {
		logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

func validateAssignment(assignmentType domain.AssignmentType, maxCompletions *int64) error {
	if assignmentType == domain.AssignmentTypeMultiple {
		if maxCompletions == nil || *maxCompletions < 1 {
			return ErrMaxCompletionsRequired
		}
	}
	return nil
}
