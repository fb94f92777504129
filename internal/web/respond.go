package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/tastetrails/internal/archive"
	"github.com/vbonduro/tastetrails/internal/exporter"
	"github.com/vbonduro/tastetrails/internal/places"
	"github.com/vbonduro/tastetrails/internal/service"
)

const maxJSONBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Pending int    `json:"pending,omitempty"`
	Current int    `json:"current,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps err to a status code. Unclassified errors are logged
// and reported as "failed to <op>".
func (s *Server) writeServiceError(w http.ResponseWriter, op string, err error) {
	var decision *service.ImportDecisionError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &decision):
		s.writeJSON(w, http.StatusConflict, errorResponse{
			Error:   service.ErrImportDecisionRequired.Error(),
			Pending: decision.Pending,
			Current: decision.Current,
		})
	case errors.As(err, &tooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, "file too large")
	case errors.Is(err, places.ErrParse):
		s.writeError(w, http.StatusBadRequest, places.ErrParse.Error())
	case errors.Is(err, places.ErrEmptyImport):
		s.writeError(w, http.StatusUnprocessableEntity, places.ErrEmptyImport.Error())
	case errors.Is(err, service.ErrPlaceNotFound),
		errors.Is(err, archive.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConfirmationRequired):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, places.ErrInvalidRating),
		errors.Is(err, places.ErrInvalidPrice),
		errors.Is(err, places.ErrInvalidSort),
		errors.Is(err, places.ErrInvalidImportMode),
		errors.Is(err, archive.ErrInvalidKey),
		errors.Is(err, exporter.ErrInvalidFormat):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(op+" failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}

// decodeJSON reads a size-capped JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	return dec.Decode(v)
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
