package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/task"
)

type taskRepository struct {
	db *taskTable
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) *taskRepository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) CreateTask(ctx context.Context, tsk task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if tsk.ExternalID.Valid {
		for _, t := range repo.db.table {
			if t.UserID == tsk.UserID && t.ExternalID.Valid && t.ExternalID.String == tsk.ExternalID.String {
				return task.Task{}, task.ErrExternalIDUsed
			}
		}
	}
	tsk.ID = uuid.New().String()
	repo.db.table[tsk.ID] = &tsk
	return tsk, nil
}

func (repo *taskRepository) GetTaskByExternalID(ctx context.Context, userID, externalID string) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.db.table {
		if t.UserID == userID && t.ExternalID.Valid && t.ExternalID.String == externalID {
			return *t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) UpdateTask(ctx context.Context, tsk task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[tsk.ID]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	orig.SubjectID = tsk.SubjectID
	orig.Title = tsk.Title
	orig.Description = tsk.Description
	orig.Status = tsk.Status
	orig.DueAt = tsk.DueAt
	orig.UpdatedAt = tsk.UpdatedAt
	return *orig, nil
}
