package search

import "time"

// SpanResponse is a [start, end) character range in a segment's text
type SpanResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FragmentResponse is a piece of segment text, highlighted when it matched
type FragmentResponse struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// ResultResponse is one ranked match
type ResultResponse struct {
	SegmentIndex   int                `json:"segment_index"`
	StartTime      float64            `json:"start_time"`
	EndTime        float64            `json:"end_time"`
	Timestamp      string             `json:"timestamp" example:"0:04"`
	Speaker        string             `json:"speaker,omitempty"`
	Text           string             `json:"text"`
	RelevanceScore float64            `json:"relevance_score" example:"1"`
	MatchSpans     []SpanResponse     `json:"match_spans"`
	Highlights     []FragmentResponse `json:"highlights"`
	ContextBefore  string             `json:"context_before"`
	ContextAfter   string             `json:"context_after"`
}

// SearchResponse is the outcome of a search
type SearchResponse struct {
	Query      string           `json:"query"`
	Results    []ResultResponse `json:"results"`
	Total      int              `json:"total"`
	DurationMs float64          `json:"duration_ms"`
}

// TimeRangeResponse is an inclusive range in seconds
type TimeRangeResponse struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SpeakersResponse lists filter options for a transcript
type SpeakersResponse struct {
	Speakers []string          `json:"speakers"`
	Bounds   TimeRangeResponse `json:"bounds"`
}

// ExportResponse points at an uploaded export file
type ExportResponse struct {
	URL       string    `json:"url"`
	Format    string    `json:"format" example:"csv"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RecentSearchesResponse lists the caller's recent queries, newest first
type RecentSearchesResponse struct {
	Queries []string `json:"queries"`
}

// FilterTimeRangeResponse is a time filter; End is omitted when open
type FilterTimeRangeResponse struct {
	Start float64  `json:"start"`
	End   *float64 `json:"end,omitempty"`
}

// FilterResponse is a stored search filter
type FilterResponse struct {
	Speakers      []string                 `json:"speakers,omitempty"`
	TimeRange     *FilterTimeRangeResponse `json:"time_range,omitempty"`
	MinConfidence *float64                 `json:"min_confidence,omitempty"`
}

// SavedSearchResponse represents a saved search
type SavedSearchResponse struct {
	ID           string         `json:"id"`
	TranscriptID string         `json:"transcript_id"`
	Name         string         `json:"name"`
	Query        string         `json:"query"`
	Filter       FilterResponse `json:"filter"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ListSavedSearchesResponse lists saved searches
type ListSavedSearchesResponse struct {
	Searches []*SavedSearchResponse `json:"searches"`
}
