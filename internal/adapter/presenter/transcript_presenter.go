package presenter

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-search/internal/adapter/dto/transcript"
	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

// ToTranscriptResponse converts a Transcript entity to TranscriptResponse DTO.
// Segments are included when withSegments is set and utterances are loaded.
func ToTranscriptResponse(t *entities.Transcript, withSegments bool) *transcript.TranscriptResponse {
	if t == nil {
		return nil
	}

	response := &transcript.TranscriptResponse{
		ID:              t.ID.String(),
		MeetingID:       t.MeetingID.String(),
		ExternalID:      t.ExternalID,
		Source:          string(t.Source),
		Title:           t.Title,
		Language:        t.Language,
		SpeakerCount:    t.SpeakerCount,
		DurationSeconds: t.DurationSeconds,
		Duration:        search.FormatTimestamp(t.DurationSeconds),
		Metadata:        t.Metadata.Data(),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.CreatedBy != uuid.Nil {
		response.CreatedBy = t.CreatedBy.String()
	}
	if len(response.Metadata) == 0 {
		response.Metadata = nil
	}

	if withSegments {
		response.Segments = make([]transcript.SegmentResponse, 0, len(t.Utterances))
		for _, u := range t.Utterances {
			response.Segments = append(response.Segments, transcript.SegmentResponse{
				Index:      u.Position,
				StartTime:  u.StartTime,
				EndTime:    u.EndTime,
				Timestamp:  search.FormatTimestamp(u.StartTime),
				Speaker:    u.Speaker,
				Text:       u.Text,
				Confidence: u.Confidence,
			})
		}
	}

	return response
}

// ToTranscriptListResponse converts a list of Transcript entities to DTOs
func ToTranscriptListResponse(items []*entities.Transcript) []*transcript.TranscriptResponse {
	responses := make([]*transcript.TranscriptResponse, 0, len(items))
	for _, t := range items {
		responses = append(responses, ToTranscriptResponse(t, false))
	}
	return responses
}
