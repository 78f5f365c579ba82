package task

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotFound       = errors.New("task not found")
	ErrExternalIDUsed = errors.New("a task with this external id already exists")
)

// Task statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

type Task struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"user_id"`
	SubjectID   null.String `db:"subject_id" json:"subject_id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Status      string      `db:"status" json:"status"`
	DueAt       time.Time   `db:"due_at" json:"due_at"`           // UTC
	ExternalID  null.String `db:"external_id" json:"external_id"` // LMS assignment id
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`   // UTC
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`   // UTC
}

type Repository interface {
	CreateTask(ctx context.Context, tsk Task) (Task, error)
	GetTaskByExternalID(ctx context.Context, userID, externalID string) (Task, error)
	UpdateTask(ctx context.Context, tsk Task) (Task, error)
}
