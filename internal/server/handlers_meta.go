package server

import (
	"net/http"

	"github.com/jonathan/resu/internal/types"
)

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.Templates)
}

// handleProfile returns the candidate profile the pipeline selects from
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := s.profile.Profile(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to load profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, prof)
}
