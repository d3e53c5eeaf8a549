// Package storage implements the Postgres persistence layer. The store is
// the single source of truth for dedup decisions; the spreadsheet mirror is
// never read back for that purpose.
package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrDuplicate marks a unique-constraint rejection. Callers treat it as
	// a benign no-op: a concurrent insert already recorded the item.
	ErrDuplicate = errors.New("record already exists")

	ErrNotFound = errors.New("record not found")
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
