// File path: internal/api/export_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/document"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handleExport reflows the project's current sections into the paginated
// layout and streams the written artifact. The layout is recomputed on every
// call so refinements made since the last export are always included.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
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

	if project.DocType == document.DocTypePptx {
		// Decks have no file-writer collaborator; export returns the
		// normalized deck itself.
		slides, err := s.store.GetDeck(r.Context(), projectID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, projectResponse{Project: project, Slides: slides})
		return
	}

	sections, err := s.store.ListSections(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(sections) == 0 {
		writeError(w, http.StatusConflict, errors.New("project has no sections"))
		return
	}

	pages := document.Reflow(sections)
	path, err := s.writer.Write(project.ID, project.Title, pages)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("api: project exported", "project_id", projectID, "pages", len(pages), "path", path)
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
