package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("requested resource not found")
	// ErrFetch marks a failure of an external fetch collaborator
	// (network, auth, rate limit). Propagated as-is; any retry policy
	// belongs to the collaborator, not the engine.
	ErrFetch = errors.New("upstream fetch failed")
	// ErrUnknownUser means the handle resolved to zero submissions and
	// zero rating changes. Distinct from "user exists but inactive",
	// which is a valid (empty) result.
	ErrUnknownUser = errors.New("unknown user")
	// ErrDataInconsistency marks a submission referencing a problem
	// absent from the catalog even after a refresh attempt. Surfaced
	// through the normalizer's skipped tally, not as a request abort.
	ErrDataInconsistency  = errors.New("inconsistent upstream data")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnknownUser) || errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFetch) {
		return http.StatusBadGateway
	}
	if errors.Is(err, ErrServiceUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Kind returns the short error-kind label rendered to clients.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrFetch):
		return "fetch_error"
	case errors.Is(err, ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, ErrDataInconsistency):
		return "data_inconsistency"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
