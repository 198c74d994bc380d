package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
)

type savedSearchRepository struct {
	db *gorm.DB
}

// NewSavedSearchRepository creates a new saved search repository
func NewSavedSearchRepository(db *gorm.DB) repositories.SavedSearchRepository {
	return &savedSearchRepository{db: db}
}

func (r *savedSearchRepository) Create(ctx context.Context, search *entities.SavedSearch) error {
	return r.db.WithContext(ctx).Create(search).Error
}

func (r *savedSearchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.SavedSearch, error) {
	var search entities.SavedSearch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&search).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSavedSearchNotFound
		}
		return nil, err
	}
	return &search, nil
}

func (r *savedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID, transcriptID *uuid.UUID) ([]*entities.SavedSearch, error) {
	var searches []*entities.SavedSearch
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if transcriptID != nil {
		query = query.Where("transcript_id = ?", *transcriptID)
	}
	err := query.Find(&searches).Error
	return searches, err
}

func (r *savedSearchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.SavedSearch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrSavedSearchNotFound
	}
	return nil
}
