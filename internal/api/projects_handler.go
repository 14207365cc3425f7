// File path: internal/api/projects_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/document"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/store"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, errors.New("topic required"))
		return
	}
	if req.Title == "" {
		req.Title = req.Topic
	}

	switch document.DocType(req.DocType) {
	case document.DocTypeDocx:
		s.createDocxProject(w, r, req)
	case document.DocTypePptx:
		s.createPptxProject(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("doc_type must be %q or %q", document.DocTypeDocx, document.DocTypePptx))
		return
	}
	logger.Debug("api: create project handled", "doc_type", req.DocType)
}

// createDocxProject runs the whole document pipeline: plan the requested
// sections, generate all bodies in one batch, then commit the project and
// its sections. A generation failure commits nothing.
func (s *Server) createDocxProject(w http.ResponseWriter, r *http.Request, req createProjectRequest) {
	logger := common.Logger()
	ctx := r.Context()

	plans, err := document.PlanSections(req.Sections, req.Pages)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	generated, err := s.generator.GenerateSections(ctx, req.Title, req.Topic, document.Headings(plans))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	project := &document.Project{
		OwnerID:  ownerID(r),
		Title:    req.Title,
		Topic:    req.Topic,
		DocType:  document.DocTypeDocx,
		NumPages: req.NumPages,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	sections := make([]document.Section, 0, len(plans))
	for i, plan := range plans {
		section := document.Section{
			ProjectID:    project.ID,
			Heading:      plan.Heading,
			OrderIndex:   plan.OrderIndex,
			PageNumber:   plan.PageNumber,
			SectionIndex: plan.SectionIndex,
		}
		section.ApplyRevision(document.InitialRevisionPrompt, generated[i].Content)
		sections = append(sections, section)
	}
	stored, err := s.store.InsertSections(ctx, sections)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	project.Sections = stored

	logger.Info("api: document project created", "project_id", project.ID, "sections", len(stored))
	writeJSON(w, http.StatusCreated, projectResponse{Project: project})
}

// createPptxProject generates a normalized deck of exactly the requested
// slide count and persists it alongside the project row.
func (s *Server) createPptxProject(w http.ResponseWriter, r *http.Request, req createProjectRequest) {
	logger := common.Logger()
	ctx := r.Context()

	if req.NumSlides < 1 {
		writeError(w, http.StatusBadRequest, errors.New("num_slides must be at least 1"))
		return
	}

	slides, err := s.generator.GenerateSlides(ctx, req.Topic, req.NumSlides)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	project := &document.Project{
		OwnerID:   ownerID(r),
		Title:     req.Title,
		Topic:     req.Topic,
		DocType:   document.DocTypePptx,
		NumSlides: req.NumSlides,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.SaveDeck(ctx, project.ID, slides); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("api: deck project created", "project_id", project.ID, "slides", len(slides))
	writeJSON(w, http.StatusCreated, projectResponse{Project: project, Slides: slides})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	project, err := s.store.GetProject(r.Context(), projectID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	resp := projectResponse{Project: project}
	if project.DocType == document.DocTypePptx {
		if slides, err := s.store.GetDeck(r.Context(), projectID); err == nil {
			resp.Slides = slides
		} else if !errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ownerID reads the opaque owner identifier; authentication is out of scope
// so an absent header maps to owner zero.
func ownerID(r *http.Request) int64 {
	raw := strings.TrimSpace(r.Header.Get("X-Owner-ID"))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
