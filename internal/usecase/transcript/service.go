package transcript

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

// Service defines the interface for transcript use case
type Service interface {
	// Create validates segments and stores a transcript
	Create(ctx context.Context, input CreateInput) (*entities.Transcript, error)

	// Get retrieves a transcript with its utterances in order
	Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// List retrieves transcripts with filters
	List(ctx context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, int64, error)

	// Delete removes a transcript. Only its creator may delete it.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// Import fetches a completed AssemblyAI transcript. Importing the same
	// external ID twice returns the stored transcript with created=false.
	Import(ctx context.Context, input ImportInput) (transcript *entities.Transcript, created bool, err error)

	// HandleWebhook verifies and processes an AssemblyAI completion webhook
	HandleWebhook(ctx context.Context, input WebhookInput) (*entities.Transcript, error)
}

// Fetcher retrieves completed transcripts from the transcription provider
type Fetcher interface {
	Fetch(ctx context.Context, externalID string) (*assemblyai.Transcript, error)
}

// CreateInput represents input for creating a transcript
type CreateInput struct {
	MeetingID   uuid.UUID
	Title       string
	Language    string
	CreatedBy   uuid.UUID
	Segments    []search.Segment
	Confidences []float64
	Metadata    map[string]interface{}
}

// ImportInput represents input for importing a provider transcript
type ImportInput struct {
	MeetingID  uuid.UUID
	ExternalID string
	Title      string
	CreatedBy  uuid.UUID
}

// WebhookInput is the raw webhook request
type WebhookInput struct {
	Payload   []byte
	Signature string
	MeetingID uuid.UUID
}

// Ensure TranscriptService implements Service interface
var _ Service = (*TranscriptService)(nil)
