package question

import (
	"errors"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

var (
	// ErrNotFound marks a missing resource or an empty result where emptiness is invalid.
	ErrNotFound = errors.New("not found")
	// ErrUnprocessable marks input or a store write that was rejected.
	ErrUnprocessable = errors.New("unprocessable")
	// ErrEmptyCategorySet is returned when the catalog holds no categories.
	ErrEmptyCategorySet = errors.New("category set is empty")
	// ErrMalformedQuizRequest is returned when the quiz filter or exclusion list cannot be parsed.
	ErrMalformedQuizRequest = errors.New("malformed quiz request")
)

// StatusFor maps an error returned by this package onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrEmptyCategorySet),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnprocessable),
		errors.Is(err, ErrMalformedQuizRequest):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
