// Package errs defines the error shape returned by every endpoint.
//
// Handlers and services return *HTTPError values; the global error
// handler serializes them as-is and converts anything else (echo
// errors, database errors) into the same shape.
package errs

// Domain-specific codes that clients are expected to branch on.
const (
	CodeEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeMissingToken           = "MISSING_TOKEN"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeInsufficientRole       = "INSUFFICIENT_ROLE"
	CodeNotOwner               = "NOT_OWNER"
	CodeInvalidStatus          = "INVALID_STATUS"
	CodeRateLimited            = "TOO_MANY_REQUESTS"
	CodeFileRequired           = "FILE_REQUIRED"
	CodeFileTooLarge           = "FILE_TOO_LARGE"
	CodeUnsupportedFileType    = "UNSUPPORTED_FILE_TYPE"
	CodeFileNotAvailable       = "FILE_NOT_AVAILABLE"
	CodeApplicationLocked      = "APPLICATION_LOCKED"
)

// Ptr returns a pointer to code, for constructors taking an optional code.
func Ptr(code string) *string {
	return &code
}
