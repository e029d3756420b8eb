package todos

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultErrorMessage is shown when an error carries no text of its own.
const DefaultErrorMessage = "Oops an Error Occured"

var (
	ErrNotFound = errors.New("resource not found")
	ErrServer   = errors.New("internal server error")
	ErrDecode   = errors.New("cannot decode response")
)

// StatusError is a non-2xx API response.
type StatusError struct {
	Status int
	Method string
	URL    string
}

func (e *StatusError) Error() string {
	switch e.Status {
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return fmt.Sprintf("HTTP Error: %d", e.Status)
	}
}

// Unwrap lets errors.Is match ErrNotFound and ErrServer.
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}

// Message returns the user-visible text for err.
func Message(err error) string {
	if err == nil {
		return DefaultErrorMessage
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return DefaultErrorMessage
}
