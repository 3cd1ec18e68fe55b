package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resu/internal/ats"
	"github.com/jonathan/resu/internal/pipeline"
	"github.com/jonathan/resu/internal/types"
)

// handleListResumes returns stored résumé summaries, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListResumes(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to list resumes")
		return
	}
	if summaries == nil {
		summaries = []types.ResumeSummary{}
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetResume returns a full record including its versions
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "Failed to load resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleUpdateResume applies a partial update
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	var update types.ResumeUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		s.writeError(w, err, "Failed to update resume")
		return
	}
	if err := pipeline.ValidateRequest(&update); err != nil {
		s.writeError(w, err, "Failed to update resume")
		return
	}
	if update.TemplateID != nil && !types.KnownTemplate(*update.TemplateID) {
		s.writeError(w, &pipeline.RequestError{Field: "templateId", Message: "unknown template"}, "Failed to update resume")
		return
	}

	if _, err := s.store.UpdateResume(r.Context(), r.PathValue("id"), &update); err != nil {
		s.writeError(w, err, "Failed to update resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDeleteResume removes a record and its versions
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteResume(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err, "Failed to delete resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// scoreRequest optionally carries edited content to score in place of the stored résumé
type scoreRequest struct {
	ResumeData *types.ResumeData `json:"resumeData"`
}

// handleScoreResume re-scores a record against its stored job description.
// The record is not modified.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil && !emptyBody(err) {
		s.writeError(w, err, "Failed to score resume")
		return
	}

	rec, err := s.store.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "Failed to score resume")
		return
	}

	resume := &rec.ResumeData
	if req.ResumeData != nil {
		resume = req.ResumeData
	}
	s.jsonResponse(w, http.StatusOK, ats.Score(resume, &rec.ParsedJD))
}

// emptyBody reports whether a decode failure only means no body was sent
func emptyBody(err error) bool {
	var reqErr *pipeline.RequestError
	return errors.As(err, &reqErr) && reqErr.Message == io.EOF.Error()
}
