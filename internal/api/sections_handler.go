// File path: internal/api/sections_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
)

func (s *Server) handleRefineSection(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req refineSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, errors.New("prompt required"))
		return
	}

	// Same-section refinements are serialized here; the engine assumes at
	// most one in flight per section.
	lock := s.refineLocks.acquire(sectionID)
	lock.Lock()
	defer lock.Unlock()

	ctx := r.Context()
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	section, err := s.store.GetSection(ctx, projectID, sectionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	newContent, err := s.generator.RefineSection(ctx, project.Topic, section.Heading, section.Content, req.Prompt)
	if err != nil {
		// Persisted content and history stay untouched on failure.
		writeEngineError(w, err)
		return
	}

	section.ApplyRevision(req.Prompt, newContent)
	if err := s.store.UpdateSectionRevision(ctx, section); err != nil {
		writeEngineError(w, err)
		return
	}

	logger.Info("api: section refined", "project_id", projectID, "section_id", sectionID, "version", section.Version())
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleSectionFeedback(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req sectionFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	feedback := strings.TrimSpace(req.Feedback)
	if feedback != "like" && feedback != "dislike" {
		writeError(w, http.StatusBadRequest, errors.New(`feedback must be "like" or "dislike"`))
		return
	}
	if err := s.store.SetSectionFeedback(r.Context(), projectID, sectionID, feedback, strings.TrimSpace(req.Comment)); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
