package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

// Service defines the interface for transcript search use case
type Service interface {
	// Search ranks a transcript's segments and records the query in the
	// caller's recent history
	Search(ctx context.Context, input SearchInput) (*SearchOutput, error)

	// Speakers lists the speakers and time bounds of a transcript
	Speakers(ctx context.Context, transcriptID uuid.UUID) (*SpeakersOutput, error)

	// RecentSearches returns the caller's most recent queries, newest first
	RecentSearches(ctx context.Context, userID uuid.UUID) ([]string, error)

	// ClearRecentSearches empties the caller's recent history
	ClearRecentSearches(ctx context.Context, userID uuid.UUID) error

	// SaveSearch stores a named query and filter
	SaveSearch(ctx context.Context, input SaveSearchInput) (*entities.SavedSearch, error)

	// ListSavedSearches lists the caller's saved searches
	ListSavedSearches(ctx context.Context, userID uuid.UUID, transcriptID *uuid.UUID) ([]*entities.SavedSearch, error)

	// DeleteSavedSearch removes a saved search owned by the caller
	DeleteSavedSearch(ctx context.Context, userID, searchID uuid.UUID) error

	// Export runs a search and uploads the results to object storage
	Export(ctx context.Context, input ExportInput) (*ExportOutput, error)
}

// TranscriptLoader loads transcripts with their utterances
type TranscriptLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
}

// ObjectStorage stores export files
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// SearchInput represents input for a search
type SearchInput struct {
	UserID       uuid.UUID
	TranscriptID uuid.UUID
	Query        string
	Filter       search.Filter
}

// SearchOutput is a ranked result list with timing. Filter is the filter
// as applied, after defaults.
type SearchOutput struct {
	Query    string
	Filter   search.Filter
	Results  []search.Result
	Total    int
	Duration time.Duration
}

// SpeakersOutput describes the filterable dimensions of a transcript
type SpeakersOutput struct {
	Speakers []string
	Bounds   search.TimeRange
}

// SaveSearchInput represents input for saving a search
type SaveSearchInput struct {
	UserID       uuid.UUID
	TranscriptID uuid.UUID
	Name         string
	Query        string
	Filter       search.Filter
}

// ExportFormat is the file format of an export
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
)

// ExportInput represents input for exporting search results
type ExportInput struct {
	SearchInput
	Format ExportFormat
}

// ExportOutput points at an uploaded export
type ExportOutput struct {
	URL        string
	ObjectName string
	Format     ExportFormat
	Count      int
	ExpiresAt  time.Time
}

// Ensure SearchService implements Service interface
var _ Service = (*SearchService)(nil)
