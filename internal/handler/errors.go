package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"socialboard/internal/models"
)

type Result struct {
	Data interface{} `json:"data"`
}

// SuccessResponse is the envelope of every successful body.
type SuccessResponse struct {
	Status  int    `json:"status"`
	Result  Result `json:"result"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the envelope of every failed request. Fields is set only for 422.
type ErrorResponse struct {
	Status int               `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, body interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError sends the standard error envelope.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Status: statusCode, Error: message}, statusCode)
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, ErrorResponse{
		Status: http.StatusUnprocessableEntity,
		Error:  "the given data was invalid",
		Fields: fields,
	}, http.StatusUnprocessableEntity)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, SuccessResponse{Status: statusCode, Result: Result{Data: data}}, statusCode)
}

// writeList marks an empty collection with a message instead of an error.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}

	response := SuccessResponse{Status: http.StatusOK, Result: Result{Data: items}}
	if len(items) == 0 {
		response.Message = "no records"
	}
	writeJSON(w, response, http.StatusOK)
}

// writeServiceError maps domain errors to status codes. Anything unexpected is
// logged and reported without detail.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *models.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeValidationError(w, vErr.Fields)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, "resource not found", http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, "this action is unauthorized", http.StatusForbidden)
	case errors.Is(err, models.ErrAlreadyLiked):
		WriteError(w, "post already liked", http.StatusConflict)
	case errors.Is(err, models.ErrConflict):
		WriteError(w, "resource already exists", http.StatusConflict)
	case errors.Is(err, models.ErrInvalidCredentials):
		WriteError(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, models.ErrUnauthenticated):
		WriteError(w, "unauthenticated", http.StatusUnauthorized)
	default:
		h.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Bool("integrity", errors.Is(err, models.ErrIntegrity)),
			zap.Error(err),
		)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
