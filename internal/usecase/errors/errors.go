package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden access")
)

// Transcript errors
var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrInvalidSegments    = errors.New("invalid transcript segments")
	ErrTranscriptNotReady = errors.New("transcript is not completed")
	ErrImportFailed       = errors.New("transcript import failed")
	ErrExternalIDConflict = errors.New("external transcript belongs to another meeting")
)

// Search errors
var (
	ErrInvalidFilter       = errors.New("invalid search filter")
	ErrSavedSearchNotFound = errors.New("saved search not found")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrExportFailed        = errors.New("export failed")
	ErrHistoryFailed       = errors.New("search history unavailable")
)

// Webhook errors
var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// QueryError reports a failed repository call. Op names the operation,
// e.g. "get transcript".
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Query wraps a repository error with the operation that failed
func Query(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}
