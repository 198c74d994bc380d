package transcript

import (
	"time"

	"github.com/johnquangdev/transcript-search/internal/adapter/dto/common"
)

// SegmentResponse is one stored segment
type SegmentResponse struct {
	Index      int     `json:"index"`
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Timestamp  string  `json:"timestamp" example:"1:05"`
	Speaker    string  `json:"speaker,omitempty"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TranscriptResponse represents a transcript in API responses
type TranscriptResponse struct {
	ID              string                 `json:"id"`
	MeetingID       string                 `json:"meeting_id"`
	ExternalID      *string                `json:"external_id,omitempty"`
	Source          string                 `json:"source"`
	Title           string                 `json:"title"`
	Language        string                 `json:"language,omitempty"`
	SpeakerCount    int                    `json:"speaker_count"`
	DurationSeconds float64                `json:"duration_seconds"`
	Duration        string                 `json:"duration" example:"1:02:05"`
	CreatedBy       string                 `json:"created_by,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	Segments        []SegmentResponse      `json:"segments,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// ListTranscriptsResponse is a page of transcripts
type ListTranscriptsResponse struct {
	Transcripts []*TranscriptResponse      `json:"transcripts"`
	Pagination  *common.PaginationResponse `json:"pagination"`
}

// ImportTranscriptResponse reports whether an import created a new transcript
type ImportTranscriptResponse struct {
	Transcript *TranscriptResponse `json:"transcript"`
	Created    bool                `json:"created"`
}
