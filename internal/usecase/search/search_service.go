package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/transcript-search/internal/usecase/errors"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

// Config holds search tunables
type Config struct {
	DefaultMinConfidence float64
	ExportURLExpiry      time.Duration
}

// SearchService handles search business logic around the ranking engine
type SearchService struct {
	transcripts TranscriptLoader
	savedRepo   repositories.SavedSearchRepository
	history     cache.HistoryStore
	storage     ObjectStorage
	cfg         Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewSearchService creates a new search service. storage may be nil, in
// which case Export fails.
func NewSearchService(
	transcripts TranscriptLoader,
	savedRepo repositories.SavedSearchRepository,
	history cache.HistoryStore,
	storage ObjectStorage,
	cfg Config,
	logger *zap.Logger,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ExportURLExpiry <= 0 {
		cfg.ExportURLExpiry = time.Hour
	}
	return &SearchService{
		transcripts: transcripts,
		savedRepo:   savedRepo,
		history:     history,
		storage:     storage,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Search runs a search over one transcript
func (s *SearchService) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	filter, err := s.normalizeFilter(input.Filter)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcripts.Get(ctx, input.TranscriptID)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(input.Query)
	results, stats := search.Timed(query, transcript.Segments(), filter)

	if query != "" && input.UserID != uuid.Nil {
		if err := s.history.Push(ctx, input.UserID, query); err != nil {
			// History is best effort; the search itself succeeded.
			s.logger.Warn("⚠️ Failed to record search history",
				zap.String("user_id", input.UserID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("🔍 Transcript searched",
		zap.String("transcript_id", input.TranscriptID.String()),
		zap.Int("results", len(results)),
		zap.Int("total", stats.Total),
		zap.Duration("duration", stats.Duration),
	)

	return &SearchOutput{
		Query:    query,
		Filter:   filter,
		Results:  results,
		Total:    stats.Total,
		Duration: stats.Duration,
	}, nil
}

// normalizeFilter checks the filter and applies the configured default
// threshold when none is given.
func (s *SearchService) normalizeFilter(filter search.Filter) (search.Filter, error) {
	if filter.MinConfidence == nil {
		threshold := s.cfg.DefaultMinConfidence
		filter.MinConfidence = &threshold
	}
	if threshold := *filter.MinConfidence; threshold < 0 || threshold > 1 {
		return filter, fmt.Errorf("%w: min_confidence must be within [0,1]", usecaseErrors.ErrInvalidFilter)
	}
	if filter.TimeRange != nil && (filter.TimeRange.Start < 0 || filter.TimeRange.End < 0) {
		return filter, fmt.Errorf("%w: time_range must not be negative", usecaseErrors.ErrInvalidFilter)
	}

	speakers := make([]string, 0, len(filter.Speakers))
	for _, sp := range filter.Speakers {
		if sp = strings.TrimSpace(sp); sp != "" {
			speakers = append(speakers, sp)
		}
	}
	if len(speakers) == 0 {
		speakers = nil
	}
	filter.Speakers = speakers
	return filter, nil
}

// Speakers lists the speakers of a transcript
func (s *SearchService) Speakers(ctx context.Context, transcriptID uuid.UUID) (*SpeakersOutput, error) {
	transcript, err := s.transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	segments := transcript.Segments()
	return &SpeakersOutput{
		Speakers: search.Speakers(segments),
		Bounds:   search.Bounds(segments),
	}, nil
}

// RecentSearches returns the user's recent queries
func (s *SearchService) RecentSearches(ctx context.Context, userID uuid.UUID) ([]string, error) {
	queries, err := s.history.Recent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrHistoryFailed, err)
	}
	return queries, nil
}

// ClearRecentSearches forgets the user's recent queries
func (s *SearchService) ClearRecentSearches(ctx context.Context, userID uuid.UUID) error {
	if err := s.history.Clear(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrHistoryFailed, err)
	}
	s.logger.Info("🧹 Search history cleared", zap.String("user_id", userID.String()))
	return nil
}

// SaveSearch saves a named search
func (s *SearchService) SaveSearch(ctx context.Context, input SaveSearchInput) (*entities.SavedSearch, error) {
	name := strings.TrimSpace(input.Name)
	query := strings.TrimSpace(input.Query)
	if name == "" || query == "" {
		return nil, fmt.Errorf("%w: name and query are required", usecaseErrors.ErrInvalidInput)
	}
	if input.Filter.MinConfidence != nil {
		if threshold := *input.Filter.MinConfidence; threshold < 0 || threshold > 1 {
			return nil, fmt.Errorf("%w: min_confidence must be within [0,1]", usecaseErrors.ErrInvalidFilter)
		}
	}

	// Make sure the transcript exists
	if _, err := s.transcripts.Get(ctx, input.TranscriptID); err != nil {
		return nil, err
	}

	saved := entities.NewSavedSearch(input.UserID, input.TranscriptID, name, query, input.Filter)
	if err := s.savedRepo.Create(ctx, saved); err != nil {
		return nil, usecaseErrors.Query("save search", err)
	}
	return saved, nil
}

// ListSavedSearches lists a user's saved searches
func (s *SearchService) ListSavedSearches(ctx context.Context, userID uuid.UUID, transcriptID *uuid.UUID) ([]*entities.SavedSearch, error) {
	searches, err := s.savedRepo.ListByUser(ctx, userID, transcriptID)
	if err != nil {
		return nil, usecaseErrors.Query("list saved searches", err)
	}
	return searches, nil
}

// DeleteSavedSearch deletes a saved search
func (s *SearchService) DeleteSavedSearch(ctx context.Context, userID, searchID uuid.UUID) error {
	saved, err := s.savedRepo.FindByID(ctx, searchID)
	if err != nil {
		if errors.Is(err, entities.ErrSavedSearchNotFound) {
			return usecaseErrors.ErrSavedSearchNotFound
		}
		return usecaseErrors.Query("get saved search", err)
	}
	if saved.UserID != userID {
		return usecaseErrors.ErrForbidden
	}

	if err := s.savedRepo.Delete(ctx, searchID); err != nil {
		if errors.Is(err, entities.ErrSavedSearchNotFound) {
			return usecaseErrors.ErrSavedSearchNotFound
		}
		return usecaseErrors.Query("delete saved search", err)
	}
	return nil
}
