package handler

import (
	stdErrors "errors"

	"github.com/johnquangdev/transcript-search/errors"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/external/assemblyai"
	usecaseErrors "github.com/johnquangdev/transcript-search/internal/usecase/errors"
)

// toAppError translates usecase errors into API errors. resourceID names the
// transcript, saved search or external transcript the request targeted.
func toAppError(err error, resourceID string) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptNotFound):
		return errors.ErrTranscriptNotFound(resourceID)
	case stdErrors.Is(err, usecaseErrors.ErrSavedSearchNotFound):
		return errors.ErrSavedSearchNotFound(resourceID)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidSegments):
		return errors.ErrTranscriptInvalid(err)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput), stdErrors.Is(err, usecaseErrors.ErrInvalidFilter):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptNotReady):
		status := ""
		var statusErr *assemblyai.StatusError
		if stdErrors.As(err, &statusErr) {
			status = statusErr.Status
		}
		notReady := errors.ErrTranscriptNotReady(resourceID, status)
		notReady.Raw = err
		return notReady
	case stdErrors.Is(err, usecaseErrors.ErrExternalIDConflict):
		conflict := errors.ErrAlreadyExists("Transcript")
		if resourceID != "" {
			conflict = conflict.WithDetail("external_id", resourceID)
		}
		conflict.Raw = err
		return conflict
	case stdErrors.Is(err, usecaseErrors.ErrImportFailed):
		return errors.ErrTranscriptImportFailed(resourceID, err)
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedFormat):
		return errors.ErrExportFormatInvalid(resourceID)
	case stdErrors.Is(err, usecaseErrors.ErrExportFailed):
		return errors.ErrExportFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return errors.ErrPermissionDenied("only the owner may do this")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidSignature):
		return errors.ErrInvalidSignature()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidPayload):
		payload := errors.ErrInvalidPayload()
		payload.Raw = err
		return payload
	case stdErrors.Is(err, usecaseErrors.ErrHistoryFailed):
		return errors.ErrCacheFailed("search history", err)
	}

	var queryErr *usecaseErrors.QueryError
	if stdErrors.As(err, &queryErr) {
		return errors.ErrDBQueryFailed(queryErr.Op, queryErr.Err)
	}
	return errors.ErrInternal(err)
}
