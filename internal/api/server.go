// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/content"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/docwriter"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/llm"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/store"
)

type Server struct {
	router    chi.Router
	store     *store.Store
	provider  llm.Provider
	generator *content.Generator
	writer    *docwriter.Writer

	refineLocks sectionLocks
}

// Config controls where exported artifacts land.
type Config struct {
	DocRoot string
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{DocRoot: filepath.Join("storage", "docs")}
}

// Merge overlays non-empty overrides onto the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.DocRoot) != "" {
		result.DocRoot = strings.TrimSpace(override.DocRoot)
	}
	return result
}

func NewServer(st *store.Store, provider llm.Provider, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if st == nil {
		return nil, fmt.Errorf("store required")
	}
	if provider == nil {
		return nil, fmt.Errorf("llm provider required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	writer, err := docwriter.New(configuration.DocRoot)
	if err != nil {
		return nil, err
	}
	logger.Info("api: building server", "provider", provider.Name(), "doc_root", writer.Root())
	srv := &Server{
		router:    chi.NewRouter(),
		store:     st,
		provider:  provider,
		generator: content.NewGenerator(provider),
		writer:    writer,
	}
	srv.routes()
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/v1/logs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, common.LogEntries())
	})

	s.router.Post("/v1/projects", s.handleCreateProject)
	s.router.Get("/v1/projects/{projectID}", s.handleGetProject)
	s.router.Post("/v1/projects/{projectID}/sections/{sectionID}/refine", s.handleRefineSection)
	s.router.Post("/v1/projects/{projectID}/sections/{sectionID}/feedback", s.handleSectionFeedback)
	s.router.Get("/v1/projects/{projectID}/export", s.handleExport)
}

// sectionLocks serializes refinements per section. The engine itself assumes
// at most one in-flight refinement per section; this boundary enforces it so
// interleaved requests yield last-writer-wins history instead of corruption.
type sectionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (l *sectionLocks) acquire(sectionID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[int64]*sync.Mutex)
	}
	lock, ok := l.locks[sectionID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[sectionID] = lock
	}
	return lock
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeEngineError maps engine failures to user-visible responses without
// leaking collaborator-internal error text.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, content.ErrGenerationFailed):
		writeError(w, http.StatusBadGateway, errors.New("generation failed"))
	case errors.Is(err, content.ErrRefinementFailed):
		writeError(w, http.StatusBadGateway, errors.New("refinement failed"))
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, errors.New("not found"))
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
