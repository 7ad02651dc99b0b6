// Package errors provides structured error types for the token service.
// These error types wrap AWS errors with error codes and actionable
// guidance on how to resolve common backend failures.
package errors

// ServiceError provides additional context for error handling.
// It wraps underlying errors with error codes and actionable suggestions.
type ServiceError interface {
	error
	Unwrap() error              // Original error
	Code() string               // Error code (e.g., "DIRECTORY_LOOKUP_FAILED")
	Suggestion() string         // Actionable fix suggestion
	Context() map[string]string // Additional context (table, pool, function)
}

// Identity directory (Cognito) error codes.
const (
	ErrCodeDirectoryLookupFailed = "DIRECTORY_LOOKUP_FAILED"
	ErrCodeDirectoryAccessDenied = "DIRECTORY_ACCESS_DENIED"
	ErrCodeDirectoryPoolNotFound = "DIRECTORY_POOL_NOT_FOUND"
	ErrCodeDirectoryThrottled    = "DIRECTORY_THROTTLED"
	ErrCodeUserNotFound          = "DIRECTORY_USER_NOT_FOUND"
)

// Token store (DynamoDB) error codes.
const (
	ErrCodeStoreWriteFailed   = "TOKEN_STORE_WRITE_FAILED"
	ErrCodeStoreAccessDenied  = "TOKEN_STORE_ACCESS_DENIED"
	ErrCodeStoreTableNotFound = "TOKEN_STORE_TABLE_NOT_FOUND"
	ErrCodeStoreThrottled     = "TOKEN_STORE_THROTTLED"
)

// Downstream notification error codes.
const (
	ErrCodeNotifyDispatchFailed   = "NOTIFY_DISPATCH_FAILED"
	ErrCodeNotifyFunctionNotFound = "NOTIFY_FUNCTION_NOT_FOUND"
	ErrCodeNotifyAccessDenied     = "NOTIFY_ACCESS_DENIED"
	ErrCodeNotifyPayloadInvalid   = "NOTIFY_PAYLOAD_INVALID"
)

// Request contract error codes.
const (
	ErrCodeMalformedIdentity = "MALFORMED_IDENTITY"
	ErrCodeConfigMissing     = "CONFIG_MISSING"
)

// serviceError implements the ServiceError interface.
type serviceError struct {
	code       string
	message    string
	suggestion string
	context    map[string]string
	cause      error
}

// Error implements the error interface.
func (e *serviceError) Error() string {
	return e.message
}

// Unwrap returns the underlying cause error.
func (e *serviceError) Unwrap() error {
	return e.cause
}

// Code returns the error code.
func (e *serviceError) Code() string {
	return e.code
}

// Suggestion returns the actionable fix suggestion.
func (e *serviceError) Suggestion() string {
	return e.suggestion
}

// Context returns additional context about the error.
func (e *serviceError) Context() map[string]string {
	return e.context
}

// New creates a new ServiceError with the given code, message, suggestion, and cause.
func New(code, message, suggestion string, cause error) ServiceError {
	return &serviceError{
		code:       code,
		message:    message,
		suggestion: suggestion,
		context:    make(map[string]string),
		cause:      cause,
	}
}

// WithContext adds context to an error and returns a new ServiceError.
// The original error is not modified.
func WithContext(err ServiceError, key, value string) ServiceError {
	existingCtx := err.Context()
	newCtx := make(map[string]string, len(existingCtx)+1)
	for k, v := range existingCtx {
		newCtx[k] = v
	}
	newCtx[key] = value

	return &serviceError{
		code:       err.Code(),
		message:    err.Error(),
		suggestion: err.Suggestion(),
		context:    newCtx,
		cause:      err.Unwrap(),
	}
}

// IsServiceError checks if err is a ServiceError and returns it.
// If err is nil or not a ServiceError, returns (nil, false).
func IsServiceError(err error) (ServiceError, bool) {
	if err == nil {
		return nil, false
	}
	if se, ok := err.(ServiceError); ok {
		return se, true
	}
	return nil, false
}

// GetCode extracts the error code from an error.
// Returns empty string if err is not a ServiceError.
func GetCode(err error) string {
	if se, ok := IsServiceError(err); ok {
		return se.Code()
	}
	return ""
}
