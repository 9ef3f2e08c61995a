package errors

// ErrorCode is the numeric application code carried in every error response.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_UNAUTHENTICATED   ErrorCode = 10001
	ErrorCode_PERMISSION_DENIED ErrorCode = 10002

	ErrorCode_INTERNAL          ErrorCode = 20000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 20001
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 20002
	ErrorCode_VALIDATION        ErrorCode = 20003
	ErrorCode_NOT_FOUND         ErrorCode = 20004
	ErrorCode_ALREADY_EXISTS    ErrorCode = 20005
	ErrorCode_CONFLICT          ErrorCode = 20006
	ErrorCode_TOO_MANY_REQUESTS ErrorCode = 20007

	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = 30001
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = 30002
	ErrorCode_AUTH_INVALID_CREDENTIALS   ErrorCode = 30003
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = 30004
	ErrorCode_AUTH_OAUTH_FAILED          ErrorCode = 30005

	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 40001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 40002

	ErrorCode_DB_QUERY_FAILED       ErrorCode = 50001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 50002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_VALIDATION:                      "VALIDATION",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_CONFLICT:                        "CONFLICT",
	ErrorCode_TOO_MANY_REQUESTS:               "TOO_MANY_REQUESTS",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:        "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN:      "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_OAUTH_FAILED:               "AUTH_OAUTH_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
