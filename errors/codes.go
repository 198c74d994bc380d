package errors

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	ErrorCode_TRANSCRIPT_NOT_FOUND     ErrorCode = 3000
	ErrorCode_TRANSCRIPT_INVALID       ErrorCode = 3001
	ErrorCode_TRANSCRIPT_NOT_READY     ErrorCode = 3002
	ErrorCode_TRANSCRIPT_IMPORT_FAILED ErrorCode = 3003

	ErrorCode_SAVED_SEARCH_NOT_FOUND ErrorCode = 4001
	ErrorCode_EXPORT_FORMAT_INVALID  ErrorCode = 4002
	ErrorCode_EXPORT_FAILED          ErrorCode = 4003

	ErrorCode_WEBHOOK_INVALID_SIGNATURE ErrorCode = 5000

	ErrorCode_INTEGRATION_CACHE_FAILED ErrorCode = 6001

	ErrorCode_DB_QUERY_FAILED ErrorCode = 7000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "HTTP_OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                 "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:        "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:        "AUTH_TOKEN_EXPIRED",
	ErrorCode_TRANSCRIPT_NOT_FOUND:      "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_INVALID:        "TRANSCRIPT_INVALID",
	ErrorCode_TRANSCRIPT_NOT_READY:      "TRANSCRIPT_NOT_READY",
	ErrorCode_TRANSCRIPT_IMPORT_FAILED:  "TRANSCRIPT_IMPORT_FAILED",
	ErrorCode_SAVED_SEARCH_NOT_FOUND:    "SAVED_SEARCH_NOT_FOUND",
	ErrorCode_EXPORT_FORMAT_INVALID:     "EXPORT_FORMAT_INVALID",
	ErrorCode_EXPORT_FAILED:             "EXPORT_FAILED",
	ErrorCode_WEBHOOK_INVALID_SIGNATURE: "WEBHOOK_INVALID_SIGNATURE",
	ErrorCode_INTEGRATION_CACHE_FAILED:  "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:           "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
