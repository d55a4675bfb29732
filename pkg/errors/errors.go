package errors

import (
	"net/http"

	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

// ApplicativeError carries the HTTP status code and machine-readable status
// alongside the message, so handlers can map errors without type switches.
type ApplicativeError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *ApplicativeError) Error() string {
	return e.Message
}

func New(httpStatusCode int, st string, message string) error {
	return &ApplicativeError{
		HTTPStatusCode: httpStatusCode,
		Status:         st,
		Message:        message,
	}
}

// Destruct unwraps err into its applicative parts; unknown error types are
// reported as internal server errors.
func Destruct(err error) ApplicativeError {
	if ae, ok := err.(*ApplicativeError); ok {
		return *ae
	}

	return ApplicativeError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}
