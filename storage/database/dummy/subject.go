package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/subject"
)

type subjectRepository struct {
	db *subjectTable
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) *subjectRepository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if sub.ExternalID.Valid {
		for _, s := range repo.db.table {
			if s.UserID == sub.UserID && s.ExternalID.Valid && s.ExternalID.String == sub.ExternalID.String {
				return subject.Subject{}, subject.ErrExternalIDUsed
			}
		}
	}
	sub.ID = uuid.New().String()
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subjectRepository) GetSubjectByExternalID(ctx context.Context, userID, externalID string) (subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.db.table {
		if s.UserID == userID && s.ExternalID.Valid && s.ExternalID.String == externalID {
			return *s, nil
		}
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[sub.ID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	orig.Name = sub.Name
	orig.Color = sub.Color
	orig.Kind = sub.Kind
	orig.DayOfWeek = sub.DayOfWeek
	orig.Period = sub.Period
	orig.UpdatedAt = sub.UpdatedAt
	return *orig, nil
}
