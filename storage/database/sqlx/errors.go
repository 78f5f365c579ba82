package sqlxrepos

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const pqUniqueViolation = "23505"

// trapUniqueErr maps a psql unique violation to the package sentinel so the
// sync engine can treat a create-vs-create race as an isolated item failure.
func trapUniqueErr(err error, sentinel error, msg string) error {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
		return sentinel
	}
	return errors.Wrap(err, msg)
}
