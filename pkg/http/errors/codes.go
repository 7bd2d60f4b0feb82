package errors

import "net/http"

// Canonical messages for the error envelope.
const (
	MessageNotFound         = "Resource not found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageUnprocessable    = "Unprocessable"
	MessageInternalError    = "Internal server error"
)

// MessageFor returns the canonical envelope message for an HTTP status.
func MessageFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusMethodNotAllowed:
		return MessageMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MessageUnprocessable
	case http.StatusInternalServerError:
		return MessageInternalError
	default:
		return http.StatusText(status)
	}
}
