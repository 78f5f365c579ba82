package subject

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotFound       = errors.New("subject not found")
	ErrExternalIDUsed = errors.New("a subject with this external id already exists")
)

// Subject kinds. Subjects pulled from the LMS are always KindOther;
// only manually entered subjects carry a day/period slot.
const (
	KindLecture = "lecture"
	KindSeminar = "seminar"
	KindOther   = "other"
)

// DefaultColor is assigned to subjects the LMS does not provide a color for.
const DefaultColor = "#94A3B8"

type Subject struct {
	ID         string      `db:"id" json:"id"`
	UserID     string      `db:"user_id" json:"user_id"`
	Name       string      `db:"name" json:"name"`
	Color      string      `db:"color" json:"color"`
	Kind       string      `db:"kind" json:"kind"`
	DayOfWeek  null.Int    `db:"day_of_week" json:"day_of_week"`
	Period     null.Int    `db:"period" json:"period"`
	ExternalID null.String `db:"external_id" json:"external_id"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

type Repository interface {
	CreateSubject(ctx context.Context, sub Subject) (Subject, error)
	// GetSubjectByExternalID returns at most one subject matching (userID, externalID);
	// uniqueness is enforced by the store.
	GetSubjectByExternalID(ctx context.Context, userID, externalID string) (Subject, error)
	UpdateSubject(ctx context.Context, sub Subject) (Subject, error)
}
