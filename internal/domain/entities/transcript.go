package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/transcript-search/pkg/search"
)

// TranscriptSource tells how a transcript entered the system
type TranscriptSource string

const (
	TranscriptSourceManual     TranscriptSource = "manual"
	TranscriptSourceAssemblyAI TranscriptSource = "assemblyai"
)

// Transcript is the stored transcript model
type Transcript struct {
	ID              uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       uuid.UUID                                  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	ExternalID      *string                                    `json:"external_id,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	Source          TranscriptSource                           `json:"source" gorm:"type:varchar(20);not null;default:'manual'"`
	Title           string                                     `json:"title" gorm:"type:varchar(255)"`
	Language        string                                     `json:"language,omitempty" gorm:"type:varchar(20)"`
	Text            string                                     `json:"text" gorm:"type:text"`
	SpeakerCount    int                                        `json:"speaker_count"`
	DurationSeconds float64                                    `json:"duration_seconds"`
	CreatedBy       uuid.UUID                                  `json:"created_by" gorm:"type:uuid"`
	Metadata        datatypes.JSONType[map[string]interface{}] `json:"metadata,omitempty" gorm:"type:jsonb"`
	Utterances      []TranscriptUtterance                      `json:"utterances,omitempty" gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript
func NewTranscript(meetingID uuid.UUID, title string, source TranscriptSource) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Title:     title,
		Source:    source,
		Metadata:  datatypes.NewJSONType(map[string]interface{}{}),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SetSegments validates segments and replaces the transcript's utterances,
// full text, speaker count and duration with values derived from them.
func (t *Transcript) SetSegments(segments []search.Segment, confidences []float64) error {
	utterances := make([]TranscriptUtterance, 0, len(segments))
	texts := make([]string, 0, len(segments))
	for i, s := range segments {
		if err := ValidateSegment(s); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		u := TranscriptUtterance{
			ID:           uuid.New(),
			TranscriptID: t.ID,
			Position:     i,
			Speaker:      s.Speaker,
			Text:         s.Text,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
		}
		if i < len(confidences) {
			u.Confidence = confidences[i]
		}
		utterances = append(utterances, u)
		texts = append(texts, s.Text)
	}

	t.Utterances = utterances
	t.Text = strings.Join(texts, " ")
	t.SpeakerCount = len(search.Speakers(segments))
	t.DurationSeconds = search.Bounds(segments).End
	return nil
}

// Segments returns the utterances as search input, in transcript order
func (t *Transcript) Segments() []search.Segment {
	utterances := append([]TranscriptUtterance(nil), t.Utterances...)
	sort.SliceStable(utterances, func(i, j int) bool {
		return utterances[i].Position < utterances[j].Position
	})

	segments := make([]search.Segment, 0, len(utterances))
	for _, u := range utterances {
		segments = append(segments, u.Segment())
	}
	return segments
}

// ValidateSegment checks 0 <= start < end and non-empty text
func ValidateSegment(s search.Segment) error {
	if s.StartTime < 0 || s.StartTime >= s.EndTime {
		return ErrInvalidSegmentTiming
	}
	if strings.TrimSpace(s.Text) == "" {
		return ErrEmptySegmentText
	}
	return nil
}
