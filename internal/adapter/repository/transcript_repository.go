package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
)

var transcriptSortColumns = map[string]bool{
	"created_at":       true,
	"title":            true,
	"duration_seconds": true,
}

// transcriptRepository implements the TranscriptRepository interface
type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) repositories.TranscriptRepository {
	return &transcriptRepository{db: db}
}

// Create creates a transcript and its utterances in one transaction
func (r *transcriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		utterances := transcript.Utterances
		if err := tx.Omit("Utterances").Create(transcript).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entities.ErrDuplicateExternalID
			}
			return err
		}
		if len(utterances) == 0 {
			return nil
		}
		for i := range utterances {
			utterances[i].TranscriptID = transcript.ID
		}
		return tx.CreateInBatches(utterances, 500).Error
	})
}

// FindByID retrieves a transcript by ID
func (r *transcriptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	err := r.db.WithContext(ctx).
		Preload("Utterances", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&transcript).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTranscriptNotFound
		}
		return nil, err
	}
	return &transcript, nil
}

// FindByExternalID retrieves a transcript by its provider ID
func (r *transcriptRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.Transcript, error) {
	var transcript entities.Transcript
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&transcript).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTranscriptNotFound
		}
		return nil, err
	}
	return &transcript, nil
}

// List retrieves transcripts with filters and pagination
func (r *transcriptRepository) List(ctx context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, int64, error) {
	var transcripts []*entities.Transcript
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Transcript{})

	// Apply filters
	if filters.MeetingID != nil {
		query = query.Where("meeting_id = ?", *filters.MeetingID)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.Source != nil {
		query = query.Where("source = ?", *filters.Source)
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("title ILIKE ?", searchPattern)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(transcriptOrder(filters.SortBy, filters.SortOrder))

	// Apply pagination
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&transcripts).Error
	return transcripts, total, err
}

// Delete deletes a transcript, utterances cascade
func (r *transcriptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Transcript{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrTranscriptNotFound
	}
	return nil
}

// transcriptOrder builds an ORDER BY clause from whitelisted input
func transcriptOrder(sortBy, sortOrder string) string {
	if !transcriptSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}
	return fmt.Sprintf("%s %s", sortBy, order)
}
