package lms_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/note"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/subject"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/task"
	dummydb "github.com/HIKARU0627/Kadai-Manager-web-sub000/storage/database/dummy"
)

const testUserID = "u-1"

// fakeClient serves canned collections; a non-nil err fails that fetch.
type fakeClient struct {
	sites         []lms.Site
	assignments   []lms.Assignment
	announcements []lms.Announcement

	sitesErr         error
	assignmentsErr   error
	announcementsErr error
}

var _ lms.Client = (*fakeClient)(nil)

func (c *fakeClient) FetchSites(ctx context.Context, cookie string) ([]lms.Site, error) {
	return c.sites, c.sitesErr
}

func (c *fakeClient) FetchAssignments(ctx context.Context, cookie string) ([]lms.Assignment, error) {
	return c.assignments, c.assignmentsErr
}

func (c *fakeClient) FetchAnnouncements(ctx context.Context, cookie string) ([]lms.Announcement, error) {
	return c.announcements, c.announcementsErr
}

func (c *fakeClient) TestConnection(ctx context.Context, cookie string) error {
	_, err := c.FetchSites(ctx, cookie)
	return err
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type repos struct {
	creds    lms.CredentialRepository
	subjects subject.Repository
	tasks    task.Repository
	notes    note.Repository
}

func setup(t *testing.T, client lms.Client) (*lms.Service, repos) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	db.AddUser(testUserID)

	r := repos{
		creds:    dummydb.NewCredentialRepository(db),
		subjects: dummydb.NewSubjectRepository(db),
		tasks:    dummydb.NewTaskRepository(db),
		notes:    dummydb.NewNoteRepository(db),
	}
	svc := lms.NewService(client, r.creds, r.subjects, r.tasks, r.notes, nopLogger{})
	return svc, r
}

func saveCookie(t *testing.T, r repos, cookie string) {
	if err := r.creds.SaveCookie(context.Background(), testUserID, cookie); err != nil {
		t.Fatalf("saveCookie() failed: %v", err)
	}
}

func TestService_SaveCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("blank cookie rejected", func(t *testing.T) {
		svc, r := setup(t, &fakeClient{})
		err := svc.SaveCredential(ctx, testUserID, "   ")
		assert.Error(t, err)

		cred, err := r.creds.GetCredential(ctx, testUserID)
		assert.NoError(t, err)
		assert.False(t, cred.Cookie.Valid)
	})

	t.Run("connection test failure propagates and nothing is persisted", func(t *testing.T) {
		svc, r := setup(t, &fakeClient{sitesErr: lms.ErrAuthFailed})
		err := svc.SaveCredential(ctx, testUserID, "JSESSIONID=stale")
		assert.Equal(t, lms.ErrAuthFailed, errors.Cause(err))

		cred, _ := r.creds.GetCredential(ctx, testUserID)
		assert.False(t, cred.Cookie.Valid)
	})

	t.Run("valid cookie saved", func(t *testing.T) {
		svc, r := setup(t, &fakeClient{})
		err := svc.SaveCredential(ctx, testUserID, "JSESSIONID=abc123")
		assert.NoError(t, err)

		cred, _ := r.creds.GetCredential(ctx, testUserID)
		assert.True(t, cred.Cookie.Valid)
		assert.Equal(t, "JSESSIONID=abc123", cred.Cookie.String)
	})
}

func TestService_CredentialStatus(t *testing.T) {
	ctx := context.Background()
	svc, r := setup(t, &fakeClient{})

	status, err := svc.CredentialStatus(ctx, testUserID)
	assert.NoError(t, err)
	assert.False(t, status.HasCredential)
	assert.False(t, status.LastSyncedAt.Valid)

	saveCookie(t, r, "JSESSIONID=abc123")
	status, err = svc.CredentialStatus(ctx, testUserID)
	assert.NoError(t, err)
	assert.True(t, status.HasCredential)
}

func TestService_DeleteCredential(t *testing.T) {
	ctx := context.Background()
	svc, r := setup(t, &fakeClient{})
	saveCookie(t, r, "JSESSIONID=abc123")
	if err := r.creds.TouchLastSync(ctx, testUserID, time.Now()); err != nil {
		t.Fatalf("TouchLastSync() failed: %v", err)
	}

	assert.NoError(t, svc.DeleteCredential(ctx, testUserID))

	cred, _ := r.creds.GetCredential(ctx, testUserID)
	assert.False(t, cred.Cookie.Valid)
	assert.False(t, cred.LastSyncedAt.Valid)
}

func TestService_Run_NotConfigured(t *testing.T) {
	svc, _ := setup(t, &fakeClient{})

	_, err := svc.Run(context.Background(), testUserID)
	assert.Equal(t, lms.ErrNotConfigured, errors.Cause(err))
}

func TestService_Run_FetchFailFast(t *testing.T) {
	client := &fakeClient{
		sites:            []lms.Site{{ID: "X1", Title: "Math"}},
		assignments:      []lms.Assignment{{ID: "A1", Title: "HW1", Context: "X1"}},
		announcementsErr: lms.ErrAuthFailed,
	}
	svc, r := setup(t, client)
	saveCookie(t, r, "JSESSIONID=abc123")

	_, err := svc.Run(context.Background(), testUserID)
	assert.Equal(t, lms.ErrAuthFailed, errors.Cause(err))

	// nothing was reconciled even though sites/assignments fetches succeeded
	_, err = r.subjects.GetSubjectByExternalID(context.Background(), testUserID, "X1")
	assert.Equal(t, subject.ErrNotFound, err)
	_, err = r.tasks.GetTaskByExternalID(context.Background(), testUserID, "A1")
	assert.Equal(t, task.ErrNotFound, err)
}

func TestService_Run_SyncsAllCollections(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		sites: []lms.Site{{ID: "X1", Title: "Math"}},
		assignments: []lms.Assignment{
			{ID: "A1", Title: "HW1", Context: "X1", DueTime: &lms.DueTime{Time: 1700000000000}},
		},
		announcements: []lms.Announcement{{ID: "N1", Title: "Exam info", Body: "Room 101", SiteID: "X1"}},
	}
	svc, r := setup(t, client)
	saveCookie(t, r, "JSESSIONID=abc123")

	res, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, lms.SyncResult{Subjects: 1, Tasks: 1, Announcements: 1, Errors: 0}, res)

	sub, err := r.subjects.GetSubjectByExternalID(ctx, testUserID, "X1")
	assert.NoError(t, err)
	assert.Equal(t, "Math", sub.Name)
	assert.Equal(t, subject.KindOther, sub.Kind)
	assert.Equal(t, subject.DefaultColor, sub.Color)

	tsk, err := r.tasks.GetTaskByExternalID(ctx, testUserID, "A1")
	assert.NoError(t, err)
	assert.Equal(t, task.StatusNotStarted, tsk.Status)
	assert.True(t, tsk.SubjectID.Valid)
	assert.Equal(t, sub.ID, tsk.SubjectID.String)
	assert.True(t, tsk.DueAt.Equal(time.UnixMilli(1700000000000).UTC()))

	nte, err := r.notes.GetNoteByExternalID(ctx, testUserID, "N1")
	assert.NoError(t, err)
	assert.Equal(t, sub.ID, nte.SubjectID)

	cred, _ := r.creds.GetCredential(ctx, testUserID)
	assert.True(t, cred.LastSyncedAt.Valid)
}

func TestService_Run_Idempotent(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		sites:         []lms.Site{{ID: "X1", Title: "Math"}},
		assignments:   []lms.Assignment{{ID: "A1", Title: "HW1", Context: "X1"}},
		announcements: []lms.Announcement{{ID: "N1", Title: "Exam info", SiteID: "X1"}},
	}
	svc, r := setup(t, client)
	saveCookie(t, r, "JSESSIONID=abc123")

	first, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)
	subBefore, _ := r.subjects.GetSubjectByExternalID(ctx, testUserID, "X1")
	tskBefore, _ := r.tasks.GetTaskByExternalID(ctx, testUserID, "A1")

	second, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, second.Errors)

	// second run is all updates: same entities, no duplicates
	subAfter, _ := r.subjects.GetSubjectByExternalID(ctx, testUserID, "X1")
	assert.Equal(t, subBefore.ID, subAfter.ID)
	tskAfter, _ := r.tasks.GetTaskByExternalID(ctx, testUserID, "A1")
	assert.Equal(t, tskBefore.ID, tskAfter.ID)
}

func TestService_Run_ManualFieldsSurviveResync(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{sites: []lms.Site{{ID: "X1", Title: "Math"}}}
	svc, r := setup(t, client)
	saveCookie(t, r, "JSESSIONID=abc123")

	_, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)

	// the user repaints the subject by hand
	sub, _ := r.subjects.GetSubjectByExternalID(ctx, testUserID, "X1")
	sub.Color = "#FF0000"
	_, err = r.subjects.UpdateSubject(ctx, sub)
	assert.NoError(t, err)

	client.sites[0].Title = "Advanced Math"
	_, err = svc.Run(ctx, testUserID)
	assert.NoError(t, err)

	sub, _ = r.subjects.GetSubjectByExternalID(ctx, testUserID, "X1")
	assert.Equal(t, "Advanced Math", sub.Name)
	assert.Equal(t, "#FF0000", sub.Color)
}

func TestService_Run_OrphanTaskTolerated(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		assignments: []lms.Assignment{{ID: "A9", Title: "Stray", Context: "unknown-site"}},
	}
	svc, r := setup(t, client)
	saveCookie(t, r, "JSESSIONID=abc123")

	res, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Tasks)
	assert.Equal(t, 0, res.Errors)

	tsk, err := r.tasks.GetTaskByExternalID(ctx, testUserID, "A9")
	assert.NoError(t, err)
	assert.False(t, tsk.SubjectID.Valid)
}

func TestService_Run_OrphanAnnouncementDropped(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		announcements: []lms.Announcement{{ID: "N9", Title: "Stray", SiteID: "unknown-site"}},
	}
	svc, r := setup(t, client)
	saveCookie(t, r, "JSESSIONID=abc123")

	res, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Announcements)
	assert.Equal(t, 0, res.Errors)

	_, err = r.notes.GetNoteByExternalID(ctx, testUserID, "N9")
	assert.Equal(t, note.ErrNotFound, err)
}

// flakyTaskRepo fails creation of one designated assignment.
type flakyTaskRepo struct {
	task.Repository
	failOn string
}

func (r flakyTaskRepo) CreateTask(ctx context.Context, tsk task.Task) (task.Task, error) {
	if tsk.ExternalID.Valid && tsk.ExternalID.String == r.failOn {
		return task.Task{}, errors.New("boom")
	}
	return r.Repository.CreateTask(ctx, tsk)
}

func TestService_Run_PartialFailureIsolated(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		assignments: []lms.Assignment{
			{ID: "A1", Title: "HW1"},
			{ID: "A2", Title: "HW2"},
			{ID: "A3", Title: "HW3"},
		},
	}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	db.AddUser(testUserID)
	creds := dummydb.NewCredentialRepository(db)
	tasks := flakyTaskRepo{Repository: dummydb.NewTaskRepository(db), failOn: "A2"}
	svc := lms.NewService(client, creds, dummydb.NewSubjectRepository(db), tasks, dummydb.NewNoteRepository(db), nopLogger{})
	if err := creds.SaveCookie(ctx, testUserID, "JSESSIONID=abc123"); err != nil {
		t.Fatalf("SaveCookie() failed: %v", err)
	}

	res, err := svc.Run(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Tasks)
	assert.Equal(t, 1, res.Errors)

	_, err = tasks.GetTaskByExternalID(ctx, testUserID, "A1")
	assert.NoError(t, err)
	_, err = tasks.GetTaskByExternalID(ctx, testUserID, "A2")
	assert.Equal(t, task.ErrNotFound, err)
	_, err = tasks.GetTaskByExternalID(ctx, testUserID, "A3")
	assert.NoError(t, err)
}
