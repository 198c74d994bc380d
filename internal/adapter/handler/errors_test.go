package handler

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-search/errors"
	usecaseErrors "github.com/johnquangdev/transcript-search/internal/usecase/errors"
)

func TestToAppError(t *testing.T) {
	cause := stdErrors.New("dial tcp 10.0.0.5:5432: connection refused")

	tests := []struct {
		name   string
		err    error
		id     string
		status int
		code   errors.ErrorCode
		detail map[string]string
	}{
		{"query failure", usecaseErrors.Query("list saved searches", cause), "", http.StatusInternalServerError, errors.ErrorCode_DB_QUERY_FAILED, map[string]string{"query": "list saved searches"}},
		{"history failure", fmt.Errorf("%w: %w", usecaseErrors.ErrHistoryFailed, cause), "", http.StatusInternalServerError, errors.ErrorCode_INTEGRATION_CACHE_FAILED, nil},
		{"external id conflict", fmt.Errorf("%w: meeting", usecaseErrors.ErrExternalIDConflict), "ext-1", http.StatusConflict, errors.ErrorCode_ALREADY_EXISTS, map[string]string{"external_id": "ext-1"}},
		{"conflict without id", usecaseErrors.ErrExternalIDConflict, "", http.StatusConflict, errors.ErrorCode_ALREADY_EXISTS, nil},
		{"transcript not found", fmt.Errorf("%w", usecaseErrors.ErrTranscriptNotFound), "abc", http.StatusNotFound, errors.ErrorCode_TRANSCRIPT_NOT_FOUND, map[string]string{"transcript_id": "abc"}},
		{"unknown", cause, "", http.StatusInternalServerError, errors.ErrorCode_INTERNAL, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr errors.AppError
			if !stdErrors.As(toAppError(tt.err, tt.id), &appErr) {
				t.Fatal("toAppError did not return an AppError")
			}
			if appErr.HTTPCode != tt.status || appErr.Code != tt.code {
				t.Errorf("got %d %v, want %d %v", appErr.HTTPCode, appErr.Code, tt.status, tt.code)
			}
			for k, v := range tt.detail {
				if appErr.Details[k] != v {
					t.Errorf("Details[%q] = %q, want %q", k, appErr.Details[k], v)
				}
			}
			if tt.detail == nil && len(appErr.Details) != 0 {
				t.Errorf("Details = %v, want none", appErr.Details)
			}
		})
	}
}

func TestHandleErrorInfo(t *testing.T) {
	leak := stdErrors.New(`ERROR: column "secret" does not exist (SQLSTATE 42703)`)

	tests := []struct {
		name     string
		err      error
		status   int
		wantInfo string
	}{
		{"plain error", leak, http.StatusInternalServerError, ""},
		{"internal app error", errors.ErrInternal(leak), http.StatusInternalServerError, ""},
		{"query app error", errors.ErrDBQueryFailed("get transcript", leak), http.StatusInternalServerError, ""},
		{"client error keeps cause", func() error {
			appErr := errors.ErrInvalidPayload()
			appErr.Raw = stdErrors.New("unexpected EOF")
			return appErr
		}(), http.StatusBadRequest, "unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			if err := HandleError(nil, c, tt.err); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body struct {
				Info string `json:"info"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Info != tt.wantInfo {
				t.Errorf("info = %q, want %q", body.Info, tt.wantInfo)
			}
		})
	}
}
