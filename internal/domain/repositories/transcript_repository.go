package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/transcript-search/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access
type TranscriptRepository interface {
	// Create stores a transcript together with its utterances
	Create(ctx context.Context, transcript *entities.Transcript) error

	// FindByID retrieves a transcript with utterances in position order
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// FindByExternalID retrieves a transcript by its provider transcript ID
	FindByExternalID(ctx context.Context, externalID string) (*entities.Transcript, error)

	// List retrieves transcripts (without utterances) with filters and pagination
	List(ctx context.Context, filters TranscriptFilters) ([]*entities.Transcript, int64, error)

	// Delete removes a transcript and its utterances
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranscriptFilters represents filter options for listing transcripts
type TranscriptFilters struct {
	MeetingID *uuid.UUID
	CreatedBy *uuid.UUID
	Source    *entities.TranscriptSource
	Search    string // Search in title
	Limit     int
	Offset    int
	SortBy    string // "created_at", "title", "duration_seconds"
	SortOrder string // "asc", "desc"
}
