package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// errorDetail is the machine-readable error payload.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope for every error body.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeRequestError rejects a request before it reaches the service layer
// (malformed body, bad UUID, bad query parameter).
func writeRequestError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// writeServiceError maps a service-layer error onto the HTTP surface:
// ErrNotFound becomes 404 naming the looked-up resource, ErrValidation
// becomes 422 with the rule that failed, and anything else (storage
// failures included) becomes a generic 400 carrying the underlying message.
func writeServiceError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: resource + " not found"},
		})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	default:
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: errorDetail{Code: "request_failed", Message: err.Error()},
		})
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: end before
// start" becomes "end before start".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
