package entities

import "errors"

// Domain errors
var (
	// Transcript errors
	ErrTranscriptNotFound   = errors.New("transcript not found")
	ErrInvalidSegmentTiming = errors.New("segment must satisfy 0 <= start < end")
	ErrEmptySegmentText     = errors.New("segment text is empty")

	// Saved search errors
	ErrSavedSearchNotFound = errors.New("saved search not found")
)

// ErrDuplicateExternalID is returned when a provider transcript was already stored
var ErrDuplicateExternalID = errors.New("transcript with this external id already exists")
