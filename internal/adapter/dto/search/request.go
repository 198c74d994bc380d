package search

// TimeRangeRequest is an inclusive range in seconds. A missing start means
// 0 and a missing end leaves the range open.
type TimeRangeRequest struct {
	Start *float64 `json:"start,omitempty" validate:"omitempty,gte=0"`
	End   *float64 `json:"end,omitempty" validate:"omitempty,gte=0"`
}

// FilterRequest narrows which segments may match
type FilterRequest struct {
	Speakers      []string          `json:"speakers,omitempty" validate:"omitempty,max=50,dive,max=50"`
	TimeRange     *TimeRangeRequest `json:"time_range,omitempty"`
	MinConfidence *float64          `json:"min_confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// SearchRequest represents a search over one transcript
type SearchRequest struct {
	Query string `json:"query" validate:"max=500"`
	FilterRequest
}

// ExportRequest represents a search whose results are exported
type ExportRequest struct {
	SearchRequest
	Format string `json:"format" example:"csv"`
}

// SaveSearchRequest represents the request to save a search
type SaveSearchRequest struct {
	TranscriptID string `json:"transcript_id" validate:"required,uuid"`
	Name         string `json:"name" validate:"required,max=100"`
	Query        string `json:"query" validate:"required,max=500"`
	FilterRequest
}

// ListSavedSearchesRequest represents query parameters for listing saved searches
type ListSavedSearchesRequest struct {
	TranscriptID string `query:"transcript_id" validate:"omitempty,uuid"`
}
