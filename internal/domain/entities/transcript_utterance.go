package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-search/pkg/search"
)

// TranscriptUtterance represents a single speaker segment/turn in a conversation
type TranscriptUtterance struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptID uuid.UUID `json:"transcript_id" gorm:"type:uuid;not null;uniqueIndex:idx_utterance_position,priority:1"`
	Position     int       `json:"position" gorm:"not null;uniqueIndex:idx_utterance_position,priority:2"`
	Speaker      string    `json:"speaker" gorm:"type:varchar(50)"`
	Text         string    `json:"text" gorm:"type:text;not null"`
	StartTime    float64   `json:"start_time" gorm:"not null"`
	EndTime      float64   `json:"end_time" gorm:"not null"`
	Confidence   float64   `json:"confidence" gorm:"default:0.0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TranscriptUtterance) TableName() string {
	return "transcript_utterances"
}

// Segment converts the utterance into search input
func (u TranscriptUtterance) Segment() search.Segment {
	return search.Segment{
		StartTime: u.StartTime,
		EndTime:   u.EndTime,
		Text:      u.Text,
		Speaker:   u.Speaker,
	}
}
