package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-search/internal/adapter/dto/common"
	transcriptDTO "github.com/johnquangdev/transcript-search/internal/adapter/dto/transcript"
	"github.com/johnquangdev/transcript-search/internal/adapter/presenter"
	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
	transcriptUsecase "github.com/johnquangdev/transcript-search/internal/usecase/transcript"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

// Transcript handles transcript-related HTTP requests
type Transcript struct {
	transcriptService transcriptUsecase.Service
	logger            *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(transcriptService transcriptUsecase.Service, logger *zap.Logger) *Transcript {
	return &Transcript{
		transcriptService: transcriptService,
		logger:            logger,
	}
}

// CreateTranscript handles POST /transcripts
// @Summary      Create a transcript
// @Description  Stores a transcript from timed speaker segments
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcript.CreateTranscriptRequest  true  "Transcript segments"
// @Success      201      {object}  common.SuccessResponse{data=transcript.TranscriptResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      401      {object}  common.ErrorResponse
// @Router       /transcripts [post]
func (h *Transcript) CreateTranscript(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req transcriptDTO.CreateTranscriptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	segments := make([]search.Segment, 0, len(req.Segments))
	var confidences []float64
	for i, s := range req.Segments {
		segments = append(segments, search.Segment{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Text:      s.Text,
			Speaker:   s.Speaker,
		})
		if s.Confidence != nil {
			if confidences == nil {
				confidences = make([]float64, len(req.Segments))
			}
			confidences[i] = *s.Confidence
		}
	}

	created, err := h.transcriptService.Create(c.Request().Context(), transcriptUsecase.CreateInput{
		MeetingID:   uuid.MustParse(req.MeetingID),
		Title:       req.Title,
		Language:    req.Language,
		CreatedBy:   userID,
		Segments:    segments,
		Confidences: confidences,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleCreated(h.logger, c, presenter.ToTranscriptResponse(created, true))
}

// ListTranscripts handles GET /transcripts
// @Summary      List transcripts
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  query     string  false  "Meeting ID (UUID)"
// @Param        source      query     string  false  "manual or assemblyai"
// @Param        mine        query     bool    false  "Only transcripts created by the caller"
// @Param        search      query     string  false  "Title contains"
// @Param        page        query     int     false  "Page number"  default(1)
// @Param        page_size   query     int     false  "Page size"    default(20)
// @Param        sort_by     query     string  false  "created_at, title or duration_seconds"
// @Param        sort_order  query     string  false  "asc or desc"
// @Success      200  {object}  common.SuccessResponse{data=transcript.ListTranscriptsResponse}
// @Failure      400  {object}  common.ErrorResponse
// @Router       /transcripts [get]
func (h *Transcript) ListTranscripts(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req transcriptDTO.ListTranscriptsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	req.Normalize()

	filters := repositories.TranscriptFilters{
		Search:    req.Search,
		Limit:     req.PageSize,
		Offset:    req.Offset(),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.MeetingID != "" {
		meetingID := uuid.MustParse(req.MeetingID)
		filters.MeetingID = &meetingID
	}
	if req.Source != "" {
		source := entities.TranscriptSource(req.Source)
		filters.Source = &source
	}
	if req.Mine {
		filters.CreatedBy = &userID
	}

	items, total, err := h.transcriptService.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, &transcriptDTO.ListTranscriptsResponse{
		Transcripts: presenter.ToTranscriptListResponse(items),
		Pagination:  common.NewPagination(req.Page, req.PageSize, total),
	})
}

// GetTranscript handles GET /transcripts/:id
// @Summary      Get a transcript
// @Description  Returns a transcript with its segments in order
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=transcript.TranscriptResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /transcripts/{id} [get]
func (h *Transcript) GetTranscript(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.transcriptService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(t, true))
}

// DeleteTranscript handles DELETE /transcripts/:id
// @Summary      Delete a transcript
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  common.SuccessResponse
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /transcripts/{id} [delete]
func (h *Transcript) DeleteTranscript(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.transcriptService.Delete(c.Request().Context(), id, userID); err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// ImportTranscript handles POST /transcripts/import
// @Summary      Import an AssemblyAI transcript
// @Description  Fetches a completed AssemblyAI transcript. Importing the same external ID again returns the stored transcript.
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcript.ImportTranscriptRequest  true  "Import request"
// @Success      200      {object}  common.SuccessResponse{data=transcript.ImportTranscriptResponse}
// @Success      201      {object}  common.SuccessResponse{data=transcript.ImportTranscriptResponse}
// @Failure      409      {object}  common.ErrorResponse  "Transcript not completed"
// @Failure      502      {object}  common.ErrorResponse  "AssemblyAI unavailable"
// @Router       /transcripts/import [post]
func (h *Transcript) ImportTranscript(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req transcriptDTO.ImportTranscriptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, created, err := h.transcriptService.Import(c.Request().Context(), transcriptUsecase.ImportInput{
		MeetingID:  uuid.MustParse(req.MeetingID),
		ExternalID: req.ExternalID,
		Title:      req.Title,
		CreatedBy:  userID,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.ExternalID))
	}

	resp := &transcriptDTO.ImportTranscriptResponse{
		Transcript: presenter.ToTranscriptResponse(t, false),
		Created:    created,
	}
	if created {
		return HandleCreated(h.logger, c, resp)
	}
	return HandleSuccess(h.logger, c, resp)
}
