package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/external/assemblyai"
	usecaseErrors "github.com/johnquangdev/transcript-search/internal/usecase/errors"
	"github.com/johnquangdev/transcript-search/pkg/webhook"
)

// TranscriptService handles transcript business logic
type TranscriptService struct {
	transcriptRepo repositories.TranscriptRepository
	fetcher        Fetcher
	webhookSecret  string
	logger         *zap.Logger
}

// NewTranscriptService creates a new transcript service. fetcher may be nil
// when no AssemblyAI key is configured; Import then fails.
func NewTranscriptService(
	transcriptRepo repositories.TranscriptRepository,
	fetcher Fetcher,
	webhookSecret string,
	logger *zap.Logger,
) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{
		transcriptRepo: transcriptRepo,
		fetcher:        fetcher,
		webhookSecret:  webhookSecret,
		logger:         logger,
	}
}

// Create creates a new transcript
func (s *TranscriptService) Create(ctx context.Context, input CreateInput) (*entities.Transcript, error) {
	if input.MeetingID == uuid.Nil {
		return nil, fmt.Errorf("%w: meeting_id is required", usecaseErrors.ErrInvalidInput)
	}
	if len(input.Confidences) > 0 && len(input.Confidences) != len(input.Segments) {
		return nil, fmt.Errorf("%w: confidences must match segments", usecaseErrors.ErrInvalidSegments)
	}

	transcript := entities.NewTranscript(input.MeetingID, strings.TrimSpace(input.Title), entities.TranscriptSourceManual)
	transcript.Language = input.Language
	transcript.CreatedBy = input.CreatedBy
	if input.Metadata != nil {
		transcript.Metadata = datatypes.NewJSONType(input.Metadata)
	}

	if err := transcript.SetSegments(input.Segments, input.Confidences); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidSegments, err)
	}

	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		return nil, usecaseErrors.Query("create transcript", err)
	}

	s.logger.Info("✅ Transcript created",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("meeting_id", transcript.MeetingID.String()),
		zap.Int("segments", len(transcript.Utterances)),
	)
	return transcript, nil
}

// Get retrieves a transcript by ID
func (s *TranscriptService) Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	transcript, err := s.transcriptRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTranscriptNotFound) {
			return nil, usecaseErrors.ErrTranscriptNotFound
		}
		return nil, usecaseErrors.Query("get transcript", err)
	}
	return transcript, nil
}

// List retrieves transcripts with filters
func (s *TranscriptService) List(ctx context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, int64, error) {
	transcripts, total, err := s.transcriptRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, usecaseErrors.Query("list transcripts", err)
	}
	return transcripts, total, nil
}

// Delete deletes a transcript
func (s *TranscriptService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	transcript, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if transcript.CreatedBy != uuid.Nil && transcript.CreatedBy != userID {
		return usecaseErrors.ErrForbidden
	}

	if err := s.transcriptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrTranscriptNotFound) {
			return usecaseErrors.ErrTranscriptNotFound
		}
		return usecaseErrors.Query("delete transcript", err)
	}

	s.logger.Info("🗑️ Transcript deleted", zap.String("transcript_id", id.String()))
	return nil
}

// Import imports a completed AssemblyAI transcript
func (s *TranscriptService) Import(ctx context.Context, input ImportInput) (*entities.Transcript, bool, error) {
	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		return nil, false, fmt.Errorf("%w: external_id is required", usecaseErrors.ErrInvalidInput)
	}
	if input.MeetingID == uuid.Nil {
		return nil, false, fmt.Errorf("%w: meeting_id is required", usecaseErrors.ErrInvalidInput)
	}

	if existing, err := s.findExisting(ctx, externalID, input.MeetingID); err != nil || existing != nil {
		return existing, false, err
	}

	if s.fetcher == nil {
		return nil, false, fmt.Errorf("%w: AssemblyAI is not configured", usecaseErrors.ErrImportFailed)
	}

	fetched, err := s.fetcher.Fetch(ctx, externalID)
	if err != nil {
		if errors.Is(err, assemblyai.ErrNotCompleted) {
			return nil, false, fmt.Errorf("%w: %w", usecaseErrors.ErrTranscriptNotReady, err)
		}
		s.logger.Error("❌ Failed to fetch transcript from AssemblyAI",
			zap.String("external_id", externalID),
			zap.Error(err),
		)
		return nil, false, fmt.Errorf("%w: %w", usecaseErrors.ErrImportFailed, err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = fmt.Sprintf("AssemblyAI transcript %s", externalID)
	}

	transcript := entities.NewTranscript(input.MeetingID, title, entities.TranscriptSourceAssemblyAI)
	transcript.ExternalID = &externalID
	transcript.CreatedBy = input.CreatedBy
	transcript.Metadata = datatypes.NewJSONType(map[string]interface{}{
		"provider":   "assemblyai",
		"status":     fetched.Status,
		"confidence": fetched.Confidence,
	})

	if err := transcript.SetSegments(fetched.Segments, fetched.Confidences); err != nil {
		return nil, false, fmt.Errorf("%w: %v", usecaseErrors.ErrImportFailed, err)
	}
	if transcript.Text == "" {
		transcript.Text = fetched.Text
	}

	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		// Lost a race with a concurrent import of the same transcript.
		if errors.Is(err, entities.ErrDuplicateExternalID) {
			existing, findErr := s.findExisting(ctx, externalID, input.MeetingID)
			return existing, false, findErr
		}
		return nil, false, usecaseErrors.Query("store transcript", err)
	}

	s.logger.Info("✅ Transcript imported",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("external_id", externalID),
		zap.Int("segments", len(transcript.Utterances)),
	)
	return transcript, true, nil
}

// findExisting returns the stored transcript for externalID, or nil when
// none exists. A transcript imported under another meeting is a conflict.
func (s *TranscriptService) findExisting(ctx context.Context, externalID string, meetingID uuid.UUID) (*entities.Transcript, error) {
	existing, err := s.transcriptRepo.FindByExternalID(ctx, externalID)
	if err == nil {
		if existing.MeetingID != meetingID {
			return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrExternalIDConflict, existing.MeetingID)
		}
		return existing, nil
	}
	if errors.Is(err, entities.ErrTranscriptNotFound) {
		return nil, nil
	}
	return nil, usecaseErrors.Query("look up transcript", err)
}

// webhookPayload is the AssemblyAI transcript status notification
type webhookPayload struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
}

// HandleWebhook processes an AssemblyAI webhook. Notifications for failed
// transcripts are acknowledged and return a nil transcript.
func (s *TranscriptService) HandleWebhook(ctx context.Context, input WebhookInput) (*entities.Transcript, error) {
	if s.webhookSecret != "" && !webhook.VerifyHMAC(s.webhookSecret, input.Payload, input.Signature) {
		s.logger.Warn("⚠️ Rejected webhook with invalid signature")
		return nil, usecaseErrors.ErrInvalidSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(input.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidPayload, err)
	}
	if payload.TranscriptID == "" {
		return nil, fmt.Errorf("%w: transcript_id is required", usecaseErrors.ErrInvalidPayload)
	}

	switch aai.TranscriptStatus(payload.Status) {
	case aai.TranscriptStatusCompleted:
	case aai.TranscriptStatusError:
		s.logger.Warn("⚠️ AssemblyAI reported a failed transcript",
			zap.String("external_id", payload.TranscriptID),
		)
		return nil, nil
	default:
		s.logger.Info("⏳ Ignoring webhook for unfinished transcript",
			zap.String("external_id", payload.TranscriptID),
			zap.String("status", payload.Status),
		)
		return nil, nil
	}

	transcript, _, err := s.Import(ctx, ImportInput{
		MeetingID:  input.MeetingID,
		ExternalID: payload.TranscriptID,
	})
	return transcript, err
}
