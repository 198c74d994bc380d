package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/transcript-search/pkg/search"
)

// SavedSearch is a named query a user keeps for a transcript
type SavedSearch struct {
	ID           uuid.UUID                         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID                         `json:"user_id" gorm:"type:uuid;not null;index"`
	TranscriptID uuid.UUID                         `json:"transcript_id" gorm:"type:uuid;not null;index"`
	Name         string                            `json:"name" gorm:"type:varchar(100);not null"`
	Query        string                            `json:"query" gorm:"type:text;not null"`
	Filter       datatypes.JSONType[search.Filter] `json:"filter" gorm:"type:jsonb"`
	CreatedAt    time.Time                         `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (SavedSearch) TableName() string {
	return "saved_searches"
}

// NewSavedSearch creates a new saved search
func NewSavedSearch(userID, transcriptID uuid.UUID, name, query string, filter search.Filter) *SavedSearch {
	return &SavedSearch{
		ID:           uuid.New(),
		UserID:       userID,
		TranscriptID: transcriptID,
		Name:         name,
		Query:        query,
		Filter:       datatypes.NewJSONType(filter),
		CreatedAt:    time.Now(),
	}
}
