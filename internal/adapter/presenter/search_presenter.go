package presenter

import (
	"time"

	searchDTO "github.com/johnquangdev/transcript-search/internal/adapter/dto/search"
	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	searchUsecase "github.com/johnquangdev/transcript-search/internal/usecase/search"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

// ToSearchResponse converts search output to SearchResponse DTO
func ToSearchResponse(out *searchUsecase.SearchOutput) *searchDTO.SearchResponse {
	results := make([]searchDTO.ResultResponse, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, ToResultResponse(r))
	}
	return &searchDTO.SearchResponse{
		Query:      out.Query,
		Results:    results,
		Total:      out.Total,
		DurationMs: float64(out.Duration) / float64(time.Millisecond),
	}
}

// ToResultResponse converts one ranked match, adding highlight fragments
func ToResultResponse(r search.Result) searchDTO.ResultResponse {
	spans := make([]searchDTO.SpanResponse, 0, len(r.MatchSpans))
	for _, s := range r.MatchSpans {
		spans = append(spans, searchDTO.SpanResponse{Start: s.Start, End: s.End})
	}

	fragments := search.Highlight(r.Text, r.MatchSpans)
	highlights := make([]searchDTO.FragmentResponse, 0, len(fragments))
	for _, f := range fragments {
		highlights = append(highlights, searchDTO.FragmentResponse{Text: f.Text, Highlighted: f.Highlighted})
	}

	return searchDTO.ResultResponse{
		SegmentIndex:   r.SegmentIndex,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Timestamp:      search.FormatTimestamp(r.StartTime),
		Speaker:        r.Speaker,
		Text:           r.Text,
		RelevanceScore: r.RelevanceScore,
		MatchSpans:     spans,
		Highlights:     highlights,
		ContextBefore:  r.ContextBefore,
		ContextAfter:   r.ContextAfter,
	}
}

// ToFilter converts a filter request into an engine filter
func ToFilter(req searchDTO.FilterRequest) search.Filter {
	filter := search.Filter{
		Speakers:      req.Speakers,
		MinConfidence: req.MinConfidence,
	}
	if req.TimeRange != nil {
		r := search.TimeRange{End: search.OpenEnd}
		if req.TimeRange.Start != nil {
			r.Start = *req.TimeRange.Start
		}
		if req.TimeRange.End != nil {
			r.End = *req.TimeRange.End
		}
		filter.TimeRange = &r
	}
	return filter
}

// ToFilterResponse converts an engine filter to FilterResponse DTO
func ToFilterResponse(f search.Filter) searchDTO.FilterResponse {
	response := searchDTO.FilterResponse{
		Speakers:      f.Speakers,
		MinConfidence: f.MinConfidence,
	}
	if f.TimeRange != nil {
		response.TimeRange = &searchDTO.FilterTimeRangeResponse{Start: f.TimeRange.Start}
		if end := f.TimeRange.End; end != search.OpenEnd {
			response.TimeRange.End = &end
		}
	}
	return response
}

// ToSpeakersResponse converts speaker output to SpeakersResponse DTO
func ToSpeakersResponse(out *searchUsecase.SpeakersOutput) *searchDTO.SpeakersResponse {
	speakers := out.Speakers
	if speakers == nil {
		speakers = []string{}
	}
	return &searchDTO.SpeakersResponse{
		Speakers: speakers,
		Bounds:   searchDTO.TimeRangeResponse{Start: out.Bounds.Start, End: out.Bounds.End},
	}
}

// ToExportResponse converts export output to ExportResponse DTO
func ToExportResponse(out *searchUsecase.ExportOutput) *searchDTO.ExportResponse {
	return &searchDTO.ExportResponse{
		URL:       out.URL,
		Format:    string(out.Format),
		Count:     out.Count,
		ExpiresAt: out.ExpiresAt,
	}
}

// ToSavedSearchResponse converts a SavedSearch entity to SavedSearchResponse DTO
func ToSavedSearchResponse(s *entities.SavedSearch) *searchDTO.SavedSearchResponse {
	if s == nil {
		return nil
	}
	return &searchDTO.SavedSearchResponse{
		ID:           s.ID.String(),
		TranscriptID: s.TranscriptID.String(),
		Name:         s.Name,
		Query:        s.Query,
		Filter:       ToFilterResponse(s.Filter.Data()),
		CreatedAt:    s.CreatedAt,
	}
}

// ToSavedSearchListResponse converts saved searches to DTOs
func ToSavedSearchListResponse(items []*entities.SavedSearch) *searchDTO.ListSavedSearchesResponse {
	searches := make([]*searchDTO.SavedSearchResponse, 0, len(items))
	for _, s := range items {
		searches = append(searches, ToSavedSearchResponse(s))
	}
	return &searchDTO.ListSavedSearchesResponse{Searches: searches}
}
