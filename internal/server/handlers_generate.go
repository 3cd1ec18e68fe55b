package server

import (
	"net/http"

	"github.com/jonathan/resu/internal/pipeline"
)

// handleParse runs parse and select, returning the selection for review
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req pipeline.StartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err, msgParseFailed)
		return
	}

	review, err := s.generator.Start(r.Context(), req)
	if err != nil {
		s.writeError(w, err, msgParseFailed)
		return
	}
	s.jsonResponse(w, http.StatusOK, review)
}

// handleConfirm generates, scores and saves the résumé for a reviewed selection
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req pipeline.ConfirmRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err, msgConfirmFailed)
		return
	}

	result, err := s.generator.Confirm(r.Context(), req)
	if err != nil {
		s.writeError(w, err, msgConfirmFailed)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleStatus reports the pipeline stage and whether a run is in flight
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.generator.Status(r.Context())
	if err != nil {
		s.writeError(w, err, msgInternal)
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
}
