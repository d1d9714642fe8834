package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Result wraps list responses as {"data": [...]}.
type Result[T any] struct {
	Data T `json:"data"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondValidation(w http.ResponseWriter, errs []ValidationError) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Errors: errs})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotEnoughStock), errors.Is(err, domain.ErrAlreadyDelivered),
		errors.Is(err, domain.ErrAlreadyCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, r *http.Request, log logger.Logger, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(action, "Request failed", logger.RequestID(r.Context()), nil, err)
		respondJSON(w, status, ErrorResponse{Error: "Internal server error"})
		return
	}
	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, []ValidationError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, []ValidationError{{Field: "id", Message: "id must be a positive integer"}}
	}
	return id, nil
}
