// Package apperror carries errors from services to HTTP handlers together
// with the status code the API should answer with.
package apperror

// AppError pairs a user-facing message with an HTTP status. The wrapped
// error stays server-side for logging and never reaches the response body.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError for the given status and message. Feature packages
// declare their sentinels with it (see booking.ErrNotFound).
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a status and message to an underlying error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
