package lms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotConfigured = errors.New("LMS connection is not configured")
	ErrAuthFailed    = errors.New("LMS authentication failed: the session cookie may have expired")
	ErrUnknownUser   = errors.New("unknown user")
)

// APIError reports a non-success LMS response that is not an authentication failure.
type APIError struct {
	Status     int
	StatusText string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LMS API error: %d %s", e.Status, e.StatusText)
}

// Wire types of the LMS "direct" read API. All three collections are
// fetched whole; records only live long enough to be reconciled.
type (
	Site struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		Description     string `json:"description"`
		EntityReference string `json:"entityReference"`
	}

	// DueTime is the structured variant of an assignment deadline (epoch millis).
	DueTime struct {
		Time int64 `json:"time"`
	}

	Assignment struct {
		ID            string   `json:"id"`
		Title         string   `json:"title"`
		Instructions  string   `json:"instructions"`
		DueTimeString string   `json:"dueTimeString"`
		DueTime       *DueTime `json:"dueTime"`
		Context       string   `json:"context"` // owning site id
	}

	Announcement struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		SiteID string `json:"siteId"`
	}
)

// Client wraps the three read endpoints of the remote system. Implementations
// are stateless: the raw session cookie accompanies every call.
type Client interface {
	FetchSites(ctx context.Context, cookie string) ([]Site, error)
	FetchAssignments(ctx context.Context, cookie string) ([]Assignment, error)
	FetchAnnouncements(ctx context.Context, cookie string) ([]Announcement, error)
	// TestConnection attempts FetchSites and reports success/failure;
	// the LMS has no dedicated lightweight endpoint.
	TestConnection(ctx context.Context, cookie string) error
}

// Credential is the stored LMS session state of one user.
type Credential struct {
	Cookie       null.String `db:"lms_cookie"`
	LastSyncedAt null.Time   `db:"lms_synced_at"`
}

// CredentialStatus is what callers get to see; the cookie itself never leaves the store.
type CredentialStatus struct {
	HasCredential bool      `json:"has_credential"`
	LastSyncedAt  null.Time `json:"last_synced_at"`
}

type CredentialRepository interface {
	GetCredential(ctx context.Context, userID string) (Credential, error)
	SaveCookie(ctx context.Context, userID, cookie string) error
	// DeleteCredential clears the cookie and the last-sync timestamp as one update.
	DeleteCredential(ctx context.Context, userID string) error
	TouchLastSync(ctx context.Context, userID string, t time.Time) error
}

// SyncResult aggregates one sync run: per-collection synced counts plus the
// sum of isolated per-item reconciliation failures.
type SyncResult struct {
	Subjects      int `json:"subjects"`
	Tasks         int `json:"tasks"`
	Announcements int `json:"announcements"`
	Errors        int `json:"errors"`
}
