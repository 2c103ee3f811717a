// Package store contains the PostgreSQL repositories backing the matching
// and alert packages. Each store satisfies the small interfaces declared by
// its consumers; wiring happens in cmd/main.go.
package store

import "errors"

// Sentinel errors returned on lookup misses. An unpublished offer is a miss:
// only PUBLISHED offers are visible to the matching paths.
var (
	ErrTalentNotFound = errors.New("talent not found")
	ErrOfferNotFound  = errors.New("offer not found")
	ErrAlertNotFound  = errors.New("alert not found")
)

// rowScanner abstracts pgx.Row and pgx.Rows for the shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}
