package web

import (
	"encoding/json"
	"net/http"

	"github.com/race50/race50-service-go/log"
	"github.com/race50/race50-service-go/pkg/model"
)

// ErrorResponse is the JSON envelope for failed requests. Errors
// carries the per-row rejections when an upload had no valid rows.
type ErrorResponse struct {
	Message string           `json:"message"`
	Errors  []model.RowError `json:"errors,omitempty"`
}

func (s *Server) writeError(
	w http.ResponseWriter,
	status int,
	message string,
	rowErrors []model.RowError,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(
		ErrorResponse{Message: message, Errors: rowErrors}); err != nil {
		s.logger.Error("writing error response", log.ErrorField(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("writing response", log.ErrorField(err))
	}
}
