package catalog

import (
	"errors"
	"fmt"
)

// Common catalog errors.
var (
	// ErrNotFound is returned when no record has the requested book number.
	ErrNotFound = errors.New("book not found")
	// ErrAlreadyCheckedOut is returned when checking out an unavailable book.
	ErrAlreadyCheckedOut = errors.New("book is already checked out")
	// ErrAlreadyAvailable is returned when checking in a book that is on the shelf.
	ErrAlreadyAvailable = errors.New("book is already checked in")
	// ErrNoBackup is returned by Load when no file exists at the backup path.
	ErrNoBackup = errors.New("no backup file found")
)

// InvalidFieldError reports a rejected input field on Add or ReplaceAll.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CorruptSnapshotError reports a backup line that does not conform to the
// backup format. Line numbers are 1-based.
type CorruptSnapshotError struct {
	Line   int
	Reason string
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt backup at line %d: %s", e.Line, e.Reason)
}

// InvalidSnapshotError reports a snapshot that parsed cleanly but violates a
// catalog invariant, such as a duplicate book number.
type InvalidSnapshotError struct {
	Reason string
}

func (e *InvalidSnapshotError) Error() string {
	return "invalid snapshot: " + e.Reason
}
