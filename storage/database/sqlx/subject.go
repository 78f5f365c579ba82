package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/subject"
)

type subjectRepository struct {
	db core.DBExecutor
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db core.DBExecutor) *subjectRepository {
	return &subjectRepository{db: db}
}

func (repo subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	sub.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO subject (id, user_id, name, color, kind, day_of_week, period, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sub.ID, sub.UserID, sub.Name, sub.Color, sub.Kind, sub.DayOfWeek, sub.Period,
		sub.ExternalID, sub.CreatedAt.UTC(), sub.UpdatedAt.UTC(),
	)
	if err != nil {
		return subject.Subject{}, trapUniqueErr(err, subject.ErrExternalIDUsed, "inserting subject")
	}
	return sub, nil
}

func (repo subjectRepository) GetSubjectByExternalID(ctx context.Context, userID, externalID string) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.db.GetContext(ctx, &sub, `
		SELECT * FROM subject WHERE user_id = $1 AND external_id = $2 LIMIT 1`,
		userID, externalID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "finding subject by external id")
	}
	return sub, nil
}

func (repo subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE subject
		SET name = $1, color = $2, kind = $3, day_of_week = $4, period = $5, updated_at = $6
		WHERE id = $7`,
		sub.Name, sub.Color, sub.Kind, sub.DayOfWeek, sub.Period, sub.UpdatedAt.UTC(), sub.ID,
	)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}
