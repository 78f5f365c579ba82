package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/task"
)

type taskRepository struct {
	db core.DBExecutor
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db core.DBExecutor) *taskRepository {
	return &taskRepository{db: db}
}

func (repo taskRepository) CreateTask(ctx context.Context, tsk task.Task) (task.Task, error) {
	tsk.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO task (id, user_id, subject_id, title, description, status, due_at, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tsk.ID, tsk.UserID, tsk.SubjectID, tsk.Title, tsk.Description, tsk.Status,
		tsk.DueAt.UTC(), tsk.ExternalID, tsk.CreatedAt.UTC(), tsk.UpdatedAt.UTC(),
	)
	if err != nil {
		return task.Task{}, trapUniqueErr(err, task.ErrExternalIDUsed, "inserting task")
	}
	return tsk, nil
}

func (repo taskRepository) GetTaskByExternalID(ctx context.Context, userID, externalID string) (task.Task, error) {
	var tsk task.Task
	err := repo.db.GetContext(ctx, &tsk, `
		SELECT * FROM task WHERE user_id = $1 AND external_id = $2 LIMIT 1`,
		userID, externalID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, errors.Wrap(err, "finding task by external id")
	}
	return tsk, nil
}

func (repo taskRepository) UpdateTask(ctx context.Context, tsk task.Task) (task.Task, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE task
		SET subject_id = $1, title = $2, description = $3, status = $4, due_at = $5, updated_at = $6
		WHERE id = $7`,
		tsk.SubjectID, tsk.Title, tsk.Description, tsk.Status, tsk.DueAt.UTC(), tsk.UpdatedAt.UTC(), tsk.ID,
	)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "updating task")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return tsk, nil
}
