package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	searchDTO "github.com/johnquangdev/transcript-search/internal/adapter/dto/search"
	"github.com/johnquangdev/transcript-search/internal/adapter/presenter"
	searchUsecase "github.com/johnquangdev/transcript-search/internal/usecase/search"
)

// Search handles transcript search HTTP requests
type Search struct {
	searchService searchUsecase.Service
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService searchUsecase.Service, logger *zap.Logger) *Search {
	return &Search{
		searchService: searchService,
		logger:        logger,
	}
}

// searchInput binds the transcript path parameter and the request body
func (h *Search) searchInput(c echo.Context, req *searchDTO.SearchRequest) (searchUsecase.SearchInput, error) {
	userID, err := currentUser(c)
	if err != nil {
		return searchUsecase.SearchInput{}, err
	}
	transcriptID, err := uuidParam(c, "id")
	if err != nil {
		return searchUsecase.SearchInput{}, err
	}
	return searchUsecase.SearchInput{
		UserID:       userID,
		TranscriptID: transcriptID,
		Query:        req.Query,
		Filter:       presenter.ToFilter(req.FilterRequest),
	}, nil
}

// SearchTranscript handles POST /transcripts/:id/search
// @Summary      Search a transcript
// @Description  Ranks segments against the query. Exact phrase matches score 1.0; results are capped at 50.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Transcript ID (UUID)"
// @Param        request  body      search.SearchRequest  true  "Query and filters"
// @Success      200      {object}  common.SuccessResponse{data=search.SearchResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /transcripts/{id}/search [post]
func (h *Search) SearchTranscript(c echo.Context) error {
	var req searchDTO.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	input, err := h.searchInput(c, &req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.searchService.Search(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, input.TranscriptID.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToSearchResponse(out))
}

// Speakers handles GET /transcripts/:id/speakers
// @Summary      List transcript speakers
// @Description  Returns the distinct speakers and the time bounds usable as search filters
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=search.SpeakersResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /transcripts/{id}/speakers [get]
func (h *Search) Speakers(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.searchService.Speakers(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToSpeakersResponse(out))
}

// ExportSearch handles POST /transcripts/:id/search/export
// @Summary      Export search results
// @Description  Runs a search and uploads the results as JSON or CSV, returning a presigned download URL
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Transcript ID (UUID)"
// @Param        request  body      search.ExportRequest  true  "Query, filters and format"
// @Success      201      {object}  common.SuccessResponse{data=search.ExportResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /transcripts/{id}/search/export [post]
func (h *Search) ExportSearch(c echo.Context) error {
	var req searchDTO.ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	format, err := searchUsecase.ParseExportFormat(req.Format)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.Format))
	}
	input, err := h.searchInput(c, &req.SearchRequest)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.searchService.Export(c.Request().Context(), searchUsecase.ExportInput{
		SearchInput: input,
		Format:      format,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, input.TranscriptID.String()))
	}

	return HandleCreated(h.logger, c, presenter.ToExportResponse(out))
}

// RecentSearches handles GET /searches/recent
// @Summary      Recent search queries
// @Description  Returns the caller's most recent distinct queries, newest first
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=search.RecentSearchesResponse}
// @Failure      401  {object}  common.ErrorResponse
// @Router       /searches/recent [get]
func (h *Search) RecentSearches(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	queries, err := h.searchService.RecentSearches(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	if queries == nil {
		queries = []string{}
	}

	return HandleSuccess(h.logger, c, &searchDTO.RecentSearchesResponse{Queries: queries})
}

// ClearRecentSearches handles DELETE /searches/recent
// @Summary      Clear recent search queries
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=search.RecentSearchesResponse}
// @Failure      401  {object}  common.ErrorResponse
// @Router       /searches/recent [delete]
func (h *Search) ClearRecentSearches(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.searchService.ClearRecentSearches(c.Request().Context(), userID); err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, &searchDTO.RecentSearchesResponse{Queries: []string{}})
}

// SaveSearch handles POST /searches
// @Summary      Save a search
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      search.SaveSearchRequest  true  "Saved search"
// @Success      201      {object}  common.SuccessResponse{data=search.SavedSearchResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /searches [post]
func (h *Search) SaveSearch(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req searchDTO.SaveSearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	saved, err := h.searchService.SaveSearch(c.Request().Context(), searchUsecase.SaveSearchInput{
		UserID:       userID,
		TranscriptID: uuid.MustParse(req.TranscriptID),
		Name:         req.Name,
		Query:        req.Query,
		Filter:       presenter.ToFilter(req.FilterRequest),
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.TranscriptID))
	}

	return HandleCreated(h.logger, c, presenter.ToSavedSearchResponse(saved))
}

// ListSavedSearches handles GET /searches
// @Summary      List saved searches
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        transcript_id  query     string  false  "Only searches for this transcript"
// @Success      200            {object}  common.SuccessResponse{data=search.ListSavedSearchesResponse}
// @Router       /searches [get]
func (h *Search) ListSavedSearches(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req searchDTO.ListSavedSearchesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var transcriptID *uuid.UUID
	if req.TranscriptID != "" {
		id := uuid.MustParse(req.TranscriptID)
		transcriptID = &id
	}

	items, err := h.searchService.ListSavedSearches(c.Request().Context(), userID, transcriptID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToSavedSearchListResponse(items))
}

// DeleteSavedSearch handles DELETE /searches/:id
// @Summary      Delete a saved search
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Saved search ID (UUID)"
// @Success      200  {object}  common.SuccessResponse
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /searches/{id} [delete]
func (h *Search) DeleteSavedSearch(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.searchService.DeleteSavedSearch(c.Request().Context(), userID, id); err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}
