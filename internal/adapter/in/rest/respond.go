package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"myblog/internal/service"
	"myblog/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(ctx).Error("encode response", "error", err)
	}
}

// respondError maps service sentinels onto status codes. Anything unexpected
// is logged and hidden behind a 500.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		respondJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrCommentsDisabled):
		respondJSON(ctx, w, http.StatusConflict, errorResponse{Error: "comments disabled"})
	default:
		logger.FromContext(ctx).Error("request failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
