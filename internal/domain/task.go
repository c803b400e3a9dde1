package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusApproved   TaskStatus = "approved"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusSubmitted  TaskStatus = "submitted"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusRejected   TaskStatus = "rejected"
)

// TaskStatuses lists every status a task can be in, used for zero-filling
// dashboard counters.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusApproved,
	TaskStatusReview,
	TaskStatusInProgress,
	TaskStatusSubmitted,
	TaskStatusCompleted,
	TaskStatusRejected,
}

type AssignmentType string

const (
	AssignmentTypeSingle   AssignmentType = "single"
	AssignmentTypeMultiple AssignmentType = "multiple"
)

type Task struct {
	ID                  uuid.UUID      `db:"id" json:"id"`
	UserID              uuid.UUID      `db:"user_id" json:"user_id"`
	Title               string         `db:"title" json:"title"`
	Description         string         `db:"description" json:"description"`
	Category            string         `db:"category" json:"category"`
	RewardPerCompletion int64          `db:"reward_per_completion" json:"reward_per_completion"`
	AssignmentType      AssignmentType `db:"assignment_type" json:"assignment_type"`
	MaxCompletions      *int64         `db:"max_completions" json:"max_completions,omitempty"`
	Status              TaskStatus     `db:"status" json:"status"`

	// Tags and Requirements are loaded separately from the m2m tables.
	Tags         []Tag         `db:"-" json:"tags"`
	Requirements []Requirement `db:"-" json:"requirements"`

	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy sql.NullString `db:"deleted_by" json:"deleted_by,omitempty"`
}
