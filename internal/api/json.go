package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/quicktask/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps err to a status code and reports its message verbatim,
// so the caller sees which step failed and why.
func writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrInvalidInput), errors.Is(err, apperr.ErrPathEscape):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrConfigNotFound), errors.Is(err, apperr.ErrVaultNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConfigParse):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorBody(err.Error()))
}
