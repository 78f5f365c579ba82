package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
)

// credentialRepository stores the LMS session state on the user record.
type credentialRepository struct {
	db core.DBExecutor
}

var _ lms.CredentialRepository = (*credentialRepository)(nil) // interface compliance check

func NewCredentialRepository(db core.DBExecutor) *credentialRepository {
	return &credentialRepository{db: db}
}

func (repo credentialRepository) GetCredential(ctx context.Context, userID string) (lms.Credential, error) {
	var cred lms.Credential
	err := repo.db.GetContext(ctx, &cred, `
		SELECT lms_cookie, lms_synced_at FROM "user" WHERE id = $1`,
		userID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return lms.Credential{}, lms.ErrUnknownUser
		}
		return lms.Credential{}, errors.Wrap(err, "finding credential")
	}
	return cred, nil
}

func (repo credentialRepository) SaveCookie(ctx context.Context, userID, cookie string) error {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE "user" SET lms_cookie = $1, updated_at = now() WHERE id = $2`,
		cookie, userID,
	)
	if err != nil {
		return errors.Wrap(err, "saving cookie")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lms.ErrUnknownUser
	}
	return nil
}

// DeleteCredential clears the cookie and the last-sync timestamp in one update.
func (repo credentialRepository) DeleteCredential(ctx context.Context, userID string) error {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE "user" SET lms_cookie = NULL, lms_synced_at = NULL, updated_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return errors.Wrap(err, "deleting credential")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lms.ErrUnknownUser
	}
	return nil
}

func (repo credentialRepository) TouchLastSync(ctx context.Context, userID string, t time.Time) error {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE "user" SET lms_synced_at = $1 WHERE id = $2`,
		t.UTC(), userID,
	)
	if err != nil {
		return errors.Wrap(err, "recording last sync")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lms.ErrUnknownUser
	}
	return nil
}
