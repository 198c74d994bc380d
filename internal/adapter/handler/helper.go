package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-search/errors"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/transcript-search/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request or response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusCreated, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			log := logger.Error
			if appErr.HTTPCode < http.StatusInternalServerError {
				log = logger.Warn
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		// Server-side causes stay in the log
		info := ""
		if appErr.Raw != nil && appErr.HTTPCode < http.StatusInternalServerError {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// NewHTTPErrorHandler renders errors that escape handlers (middleware
// rejections, unknown routes) in the same envelope as HandleError
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			err = fromHTTPError(he)
		}
		if writeErr := HandleError(logger, c, err); writeErr != nil && logger != nil {
			logger.Error("http.response.write_failed", zap.Error(writeErr))
		}
	}
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	}

	appErr := errors.AppError{HTTPCode: he.Code, Message: message, Raw: he.Internal}
	switch he.Code {
	case http.StatusNotFound:
		appErr.Code = errors.ErrorCode_NOT_FOUND
	case http.StatusUnauthorized:
		appErr.Code = errors.ErrorCode_UNAUTHENTICATED
	case http.StatusForbidden:
		appErr.Code = errors.ErrorCode_FORBIDDEN
	case http.StatusInternalServerError:
		appErr.Code = errors.ErrorCode_INTERNAL
	default:
		appErr.Code = errors.ErrorCode_INVALID_ARGUMENT
	}
	return appErr
}

// bindAndValidate binds the request into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		appErr := errors.ErrInvalidPayload()
		appErr.Raw = err
		return appErr
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidArgument("Validation failed")
		for field, tag := range validator.Fields(err) {
			appErr = appErr.WithDetail(field, tag)
		}
		return appErr
	}
	return nil
}

// currentUser reads the authenticated user set by the auth middleware
func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, errors.ErrUnauthenticated()
	}
	return userID, nil
}

// uuidParam parses a UUID path parameter
func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("Invalid " + name).WithDetail(name, raw)
	}
	return id, nil
}
