package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/db"
	"github.com/jcabanilla/internhub/internal/server/middleware"
)

// handleGetDraft retrieves a saved draft so the wizard can resume from it.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	employerID, err := middleware.GetEmployerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	draftID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	draft, err := s.store.GetDraft(r.Context(), draftID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if draft == nil {
		s.errorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}
	if draft.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "You do not own this draft")
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}

// handleDeleteDraft handles DELETE /api/job-listings/actionsDraft?id=...
// Deletion is idempotent: deleting a missing draft succeeds.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	employerID, err := middleware.GetEmployerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	draftID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	draft, err := s.store.GetDraft(r.Context(), draftID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if draft != nil && draft.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "You do not own this draft")
		return
	}

	if draft != nil {
		if err := s.store.DeleteDraft(r.Context(), draftID); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListDrafts lists the authenticated employer's drafts.
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	employerID, err := middleware.GetEmployerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	drafts, err := s.store.ListDraftsByEmployer(r.Context(), employerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if drafts == nil {
		drafts = []db.Draft{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"drafts": drafts,
		"count":  len(drafts),
	})
}
