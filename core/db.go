package core

import (
	"context"
	"database/sql"
)

// DBExecutor is the subset of *sqlx.DB the repositories rely on;
// it lets a transaction stand in for the root handle.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
