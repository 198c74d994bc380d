package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/transcript-search/internal/domain/entities"
)

// SavedSearchRepository defines the interface for saved search data access
type SavedSearchRepository interface {
	Create(ctx context.Context, search *entities.SavedSearch) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.SavedSearch, error)

	// ListByUser returns a user's saved searches, newest first. A nil
	// transcriptID lists across all transcripts.
	ListByUser(ctx context.Context, userID uuid.UUID, transcriptID *uuid.UUID) ([]*entities.SavedSearch, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
