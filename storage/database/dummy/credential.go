package dummydb

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
)

type credentialRepository struct {
	db *userTable
}

var _ lms.CredentialRepository = (*credentialRepository)(nil) // interface compliance check

func NewCredentialRepository(db *DB) *credentialRepository {
	return &credentialRepository{db: db.user}
}

func (repo *credentialRepository) GetCredential(ctx context.Context, userID string) (lms.Credential, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	usr, ok := repo.db.table[userID]
	if !ok {
		return lms.Credential{}, lms.ErrUnknownUser
	}
	return lms.Credential{Cookie: usr.Cookie, LastSyncedAt: usr.LastSyncedAt}, nil
}

func (repo *credentialRepository) SaveCookie(ctx context.Context, userID, cookie string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[userID]
	if !ok {
		return lms.ErrUnknownUser
	}
	usr.Cookie = null.StringFrom(cookie)
	return nil
}

func (repo *credentialRepository) DeleteCredential(ctx context.Context, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[userID]
	if !ok {
		return lms.ErrUnknownUser
	}
	usr.Cookie = null.String{}
	usr.LastSyncedAt = null.Time{}
	return nil
}

func (repo *credentialRepository) TouchLastSync(ctx context.Context, userID string, t time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[userID]
	if !ok {
		return lms.ErrUnknownUser
	}
	usr.LastSyncedAt = null.TimeFrom(t.UTC())
	return nil
}
