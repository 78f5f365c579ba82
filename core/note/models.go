package note

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotFound       = errors.New("note not found")
	ErrExternalIDUsed = errors.New("a note with this external id already exists")
)

// Note always belongs to a subject; SubjectID is never empty.
type Note struct {
	ID         string      `db:"id" json:"id"`
	UserID     string      `db:"user_id" json:"user_id"`
	SubjectID  string      `db:"subject_id" json:"subject_id"`
	Title      string      `db:"title" json:"title"`
	Body       string      `db:"body" json:"body"`
	ExternalID null.String `db:"external_id" json:"external_id"` // LMS announcement id
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`   // UTC
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`   // UTC
}

type Repository interface {
	CreateNote(ctx context.Context, nte Note) (Note, error)
	GetNoteByExternalID(ctx context.Context, userID, externalID string) (Note, error)
	UpdateNote(ctx context.Context, nte Note) (Note, error)
}
