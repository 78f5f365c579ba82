package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/note"
)

type noteRepository struct {
	db *noteTable
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) *noteRepository {
	return &noteRepository{db: db.note}
}

func (repo *noteRepository) CreateNote(ctx context.Context, nte note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if nte.ExternalID.Valid {
		for _, n := range repo.db.table {
			if n.UserID == nte.UserID && n.ExternalID.Valid && n.ExternalID.String == nte.ExternalID.String {
				return note.Note{}, note.ErrExternalIDUsed
			}
		}
	}
	nte.ID = uuid.New().String()
	repo.db.table[nte.ID] = &nte
	return nte, nil
}

func (repo *noteRepository) GetNoteByExternalID(ctx context.Context, userID, externalID string) (note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, n := range repo.db.table {
		if n.UserID == userID && n.ExternalID.Valid && n.ExternalID.String == externalID {
			return *n, nil
		}
	}
	return note.Note{}, note.ErrNotFound
}

func (repo *noteRepository) UpdateNote(ctx context.Context, nte note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[nte.ID]
	if !ok {
		return note.Note{}, note.ErrNotFound
	}
	orig.SubjectID = nte.SubjectID
	orig.Title = nte.Title
	orig.Body = nte.Body
	orig.UpdatedAt = nte.UpdatedAt
	return *orig, nil
}
