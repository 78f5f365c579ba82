package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/note"
)

type noteRepository struct {
	db core.DBExecutor
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db core.DBExecutor) *noteRepository {
	return &noteRepository{db: db}
}

func (repo noteRepository) CreateNote(ctx context.Context, nte note.Note) (note.Note, error) {
	nte.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO note (id, user_id, subject_id, title, body, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		nte.ID, nte.UserID, nte.SubjectID, nte.Title, nte.Body, nte.ExternalID,
		nte.CreatedAt.UTC(), nte.UpdatedAt.UTC(),
	)
	if err != nil {
		return note.Note{}, trapUniqueErr(err, note.ErrExternalIDUsed, "inserting note")
	}
	return nte, nil
}

func (repo noteRepository) GetNoteByExternalID(ctx context.Context, userID, externalID string) (note.Note, error) {
	var nte note.Note
	err := repo.db.GetContext(ctx, &nte, `
		SELECT * FROM note WHERE user_id = $1 AND external_id = $2 LIMIT 1`,
		userID, externalID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return note.Note{}, note.ErrNotFound
		}
		return note.Note{}, errors.Wrap(err, "finding note by external id")
	}
	return nte, nil
}

func (repo noteRepository) UpdateNote(ctx context.Context, nte note.Note) (note.Note, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE note
		SET subject_id = $1, title = $2, body = $3, updated_at = $4
		WHERE id = $5`,
		nte.SubjectID, nte.Title, nte.Body, nte.UpdatedAt.UTC(), nte.ID,
	)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "updating note")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return note.Note{}, note.ErrNotFound
	}
	return nte, nil
}
