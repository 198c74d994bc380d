package transcript

import "github.com/johnquangdev/transcript-search/internal/adapter/dto/common"

// SegmentRequest is one timed segment of a transcript
type SegmentRequest struct {
	StartTime  float64  `json:"start_time" validate:"gte=0"`
	EndTime    float64  `json:"end_time" validate:"gtfield=StartTime"`
	Text       string   `json:"text" validate:"required,max=20000"`
	Speaker    string   `json:"speaker,omitempty" validate:"max=50"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// CreateTranscriptRequest represents the request to create a transcript
type CreateTranscriptRequest struct {
	MeetingID string                 `json:"meeting_id" validate:"required,uuid"`
	Title     string                 `json:"title" validate:"max=255"`
	Language  string                 `json:"language,omitempty" validate:"max=20"`
	Segments  []SegmentRequest       `json:"segments" validate:"required,min=1,max=20000,dive"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ImportTranscriptRequest represents the request to import an AssemblyAI transcript
type ImportTranscriptRequest struct {
	MeetingID  string `json:"meeting_id" validate:"required,uuid"`
	ExternalID string `json:"external_id" validate:"required,max=255"`
	Title      string `json:"title" validate:"max=255"`
}

// ListTranscriptsRequest represents query parameters for listing transcripts
type ListTranscriptsRequest struct {
	common.PaginationRequest
	MeetingID string `query:"meeting_id" validate:"omitempty,uuid"`
	Source    string `query:"source" validate:"omitempty,oneof=manual assemblyai"`
	Mine      bool   `query:"mine"`
	Search    string `query:"search" validate:"max=255"`
	SortBy    string `query:"sort_by" validate:"omitempty,oneof=created_at title duration_seconds"`
	SortOrder string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
