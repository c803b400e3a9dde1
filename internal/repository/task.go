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

const taskColumns = `id, user_id, title, description, category, reward_per_completion,
	assignment_type, max_completions, status, created_at, updated_at, deleted_at, deleted_by`

type taskRepository struct {
	db *sqlx.DB
}

func newTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	const op = "repository.task.CreateWithTx"

	const query = `
	INSERT INTO tasks_detail (id, user_id, title, description, category, reward_per_completion, assignment_type, max_completions, status)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :title, :description, :category, :reward_per_completion, :assignment_type, :max_completions, :status)
	`

	res, err := tx.NamedExecContext(ctx, query, task)
	if err != nil {
		return fmt.Errorf("%s: insert task failed: %w", op, err)
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

func (r *taskRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	const op = "repository.task.GetOneByID"

	const query = `SELECT ` + taskColumns + ` FROM tasks_detail WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	var task domain.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select task failed: %w", op, err)
	}

	return &task, nil
}

func (r *taskRepository) GetOneByUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Task, error) {
	const op = "repository.task.GetOneByUser"

	const query = `SELECT ` + taskColumns + ` FROM tasks_detail
	WHERE id = uuid_to_bin(?) AND user_id = uuid_to_bin(?) AND deleted_at IS NULL`

	var task domain.Task
	if err := r.db.GetContext(ctx, &task, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select task failed: %w", op, err)
	}

	return &task, nil
}

func (r *taskRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	const op = "repository.task.GetAllByUser"

	const query = `SELECT ` + taskColumns + ` FROM tasks_detail
	WHERE user_id = uuid_to_bin(?) AND deleted_at IS NULL
	ORDER BY created_at DESC`

	var tasks []domain.Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("%s: select tasks failed: %w", op, err)
	}

	return tasks, nil
}

func (r *taskRepository) UpdateWithTx(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	const op = "repository.task.UpdateWithTx"

	const query = `
	UPDATE tasks_detail SET
		title = :title,
		description = :description,
		category = :category,
		reward_per_completion = :reward_per_completion,
		assignment_type = :assignment_type,
		max_completions = :max_completions,
		status = :status
	WHERE id = uuid_to_bin(:id) AND deleted_at IS NULL
	`

	if _, err := tx.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("%s: update task failed: %w", op, err)
	}

	return nil
}

func (r *taskRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	const op = "repository.task.SoftDelete"

	const query = `UPDATE tasks_detail SET deleted_at = now(), deleted_by = ?
	WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, deletedBy, id)
	if err != nil {
		return fmt.Errorf("%s: soft delete task failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int64, error) {
	const op = "repository.task.CountByStatus"

	const query = `
	SELECT status, COUNT(*) AS count
	FROM tasks_detail
	WHERE user_id = uuid_to_bin(?) AND deleted_at IS NULL
	GROUP BY status
	`

	type statusCount struct {
		Status domain.TaskStatus `db:"status"`
		Count  int64             `db:"count"`
	}

	var counts []statusCount
	if err := r.db.SelectContext(ctx, &counts, query, userID); err != nil {
		return nil, fmt.Errorf("%s: count tasks by status failed: %w", op, err)
	}

	result := make(map[domain.TaskStatus]int64, len(counts))
	for _, c := range counts {
		result[c.Status] = c.Count
	}

	return result, nil
}

func (r *taskRepository) ReplaceTagsWithTx(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	return r.replaceLinks(ctx, tx, "tasks_detail_tags", "tag_id", taskID, tagIDs)
}

func (r *taskRepository) ReplaceRequirementsWithTx(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, requirementIDs []uuid.UUID) error {
	return r.replaceLinks(ctx, tx, "tasks_detail_requirements", "requirement_id", taskID, requirementIDs)
}

func (r *taskRepository) replaceLinks(ctx context.Context, tx *sqlx.Tx, table string, column string, taskID uuid.UUID, ids []uuid.UUID) error {
	const op = "repository.task.replaceLinks"

	//nolint:gosec // table and column names are compile-time constants
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE task_id = uuid_to_bin(?)`, table)
	if _, err := tx.ExecContext(ctx, deleteQuery, taskID); err != nil {
		return fmt.Errorf("%s: clear %s failed: %w", op, table, err)
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (task_id, %s) VALUES (uuid_to_bin(?), uuid_to_bin(?))`, table, column)
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, insertQuery, taskID, id); err != nil {
			return fmt.Errorf("%s: insert into %s failed: %w", op, table, err)
		}
	}

	return nil
}

func (r *taskRepository) GetTagsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	const op = "repository.task.GetTagsByTaskIDs"

	const query = `
	SELECT link.task_id AS task_id, t.id AS id, t.name AS name
	FROM tasks_detail_tags link
	JOIN task_tags t ON t.id = link.tag_id
	WHERE link.task_id IN (?)
	`

	rows, err := r.selectLinked(ctx, query, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make(map[uuid.UUID][]domain.Tag)
	for _, row := range rows {
		result[row.TaskID] = append(result[row.TaskID], domain.Tag{ID: row.ID, Name: row.Name})
	}

	return result, nil
}

func (r *taskRepository) GetRequirementsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]domain.Requirement, error) {
	const op = "repository.task.GetRequirementsByTaskIDs"

	const query = `
	SELECT link.task_id AS task_id, req.id AS id, req.name AS name
	FROM tasks_detail_requirements link
	JOIN task_requirements req ON req.id = link.requirement_id
	WHERE link.task_id IN (?)
	`

	rows, err := r.selectLinked(ctx, query, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make(map[uuid.UUID][]domain.Requirement)
	for _, row := range rows {
		result[row.TaskID] = append(result[row.TaskID], domain.Requirement{ID: row.ID, Name: row.Name})
	}

	return result, nil
}

type linkedRow struct {
	TaskID uuid.UUID `db:"task_id"`
	ID     uuid.UUID `db:"id"`
	Name   string    `db:"name"`
}

func (r *taskRepository) selectLinked(ctx context.Context, query string, taskIDs []uuid.UUID) ([]linkedRow, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	// MySQL stores ids as binary(16), bind the raw bytes for the IN clause.
	binIDs := make([][]byte, 0, len(taskIDs))
	for _, id := range taskIDs {
		bin, err := id.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal task id failed: %w", err)
		}
		binIDs = append(binIDs, bin)
	}

	inQuery, args, err := sqlx.In(query, binIDs)
	if err != nil {
		return nil, fmt.Errorf("expand in clause failed: %w", err)
	}

	var rows []linkedRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(inQuery), args...); err != nil {
		return nil, fmt.Errorf("select linked rows failed: %w", err)
	}

	return rows, nil
}
