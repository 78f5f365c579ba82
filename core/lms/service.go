package lms

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/note"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/subject"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/task"
)

// Service owns the LMS credential lifecycle and the sync engine.
type Service struct {
	client   Client
	creds    CredentialRepository
	subjects subject.Repository
	tasks    task.Repository
	notes    note.Repository
	logger   core.Logger

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewService(
	client Client,
	creds CredentialRepository,
	subjects subject.Repository,
	tasks task.Repository,
	notes note.Repository,
	logger core.Logger,
) *Service {
	return &Service{
		client:    client,
		creds:     creds,
		subjects:  subjects,
		tasks:     tasks,
		notes:     notes,
		logger:    logger,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// lockUser serializes sync runs per user within this process; two concurrent
// runs would race on create-vs-update decisions for the same external id.
func (svc *Service) lockUser(userID string) (release func()) {
	svc.mu.Lock()
	lock, ok := svc.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		svc.userLocks[userID] = lock
	}
	svc.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// SaveCredential validates the cookie against the LMS before persisting it;
// a failed connection test leaves the stored credential untouched.
func (svc *Service) SaveCredential(ctx context.Context, userID, cookie string) error {
	cookie = core.CleanString(cookie)
	if cookie == "" {
		return core.NewValidationError(
			errors.New("cookie must not be blank"),
			core.FieldError{Field: "cookie", Error: "this field is required"},
		)
	}
	if err := svc.client.TestConnection(ctx, cookie); err != nil {
		return err
	}
	if err := svc.creds.SaveCookie(ctx, userID, cookie); err != nil {
		return errors.Wrap(err, "saving cookie")
	}
	return nil
}

// CredentialStatus reports whether a credential exists and when the last
// successful sync ran. The cookie itself is never returned.
func (svc *Service) CredentialStatus(ctx context.Context, userID string) (CredentialStatus, error) {
	cred, err := svc.creds.GetCredential(ctx, userID)
	if err != nil {
		return CredentialStatus{}, errors.Wrap(err, "getting credential")
	}
	return CredentialStatus{
		HasCredential: cred.Cookie.Valid && cred.Cookie.String != "",
		LastSyncedAt:  cred.LastSyncedAt,
	}, nil
}

// DeleteCredential clears the cookie and the last-sync timestamp atomically.
func (svc *Service) DeleteCredential(ctx context.Context, userID string) error {
	if err := svc.creds.DeleteCredential(ctx, userID); err != nil {
		return errors.Wrap(err, "deleting credential")
	}
	return nil
}

// Run executes one full sync for the user: concurrent fetch of the three
// collections (all must succeed), then strictly ordered reconciliation —
// subjects first, since tasks and announcements resolve subjects by site id.
func (svc *Service) Run(ctx context.Context, userID string) (SyncResult, error) {
	release := svc.lockUser(userID)
	defer release()

	cred, err := svc.creds.GetCredential(ctx, userID)
	if err != nil {
		return SyncResult{}, errors.Wrap(err, "getting credential")
	}
	if !cred.Cookie.Valid || cred.Cookie.String == "" {
		return SyncResult{}, ErrNotConfigured
	}
	cookie := cred.Cookie.String

	var (
		sites         []Site
		assignments   []Assignment
		announcements []Announcement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sites, err = svc.client.FetchSites(gctx, cookie)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = svc.client.FetchAssignments(gctx, cookie)
		return err
	})
	g.Go(func() (err error) {
		announcements, err = svc.client.FetchAnnouncements(gctx, cookie)
		return err
	})
	if err := g.Wait(); err != nil {
		// any failed collection fails the whole run; nothing is reconciled
		return SyncResult{}, err
	}

	var res SyncResult
	var errCount int

	res.Subjects, errCount = reconcileAll(ctx, sites, "site",
		func(ctx context.Context, s Site) (bool, error) { return svc.upsertSite(ctx, userID, s) },
		svc.logger)
	res.Errors += errCount

	res.Tasks, errCount = reconcileAll(ctx, assignments, "assignment",
		func(ctx context.Context, a Assignment) (bool, error) { return svc.upsertAssignment(ctx, userID, a) },
		svc.logger)
	res.Errors += errCount

	res.Announcements, errCount = reconcileAll(ctx, announcements, "announcement",
		func(ctx context.Context, a Announcement) (bool, error) { return svc.upsertAnnouncement(ctx, userID, a) },
		svc.logger)
	res.Errors += errCount

	if err := svc.creds.TouchLastSync(ctx, userID, nowFunc().UTC()); err != nil {
		return res, errors.Wrap(err, "recording last sync")
	}
	return res, nil
}
