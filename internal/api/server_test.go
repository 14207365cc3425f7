// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/document"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/llm"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/store"
)

// mockProvider hands out queued responses and records every call.
type mockProvider struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.calls
	m.calls++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return "", m.errs[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return "", fmt.Errorf("unexpected call %d", idx)
}

func (m *mockProvider) Name() string { return "mock" }

func newTestServer(t *testing.T, provider llm.Provider) *Server {
	t.Helper()
	dir := t.TempDir()
	st, err := store.OpenWithConfig(store.Config{Path: filepath.Join(dir, "api.db"), MaxOpenConns: 4, MaxIdleConns: 4})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	cfg := Config{DocRoot: filepath.Join(dir, "docs")}
	srv, err := NewServer(st, provider, &cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func sectionsBatchResponse() string {
	return `[
          {"heading": "Introduction", "order_index": 1, "content": "Opening paragraph."},
          {"heading": "Context", "order_index": 2, "content": "Context paragraph."},
          {"heading": "Outlook", "order_index": 3, "content": "Closing paragraph."}
        ]`
}

func createDocxProject(t *testing.T, srv *Server) projectResponse {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{
		Title:    "EV Market 2025",
		Topic:    "EV Market 2025",
		DocType:  "docx",
		NumPages: 2,
		Pages: []document.PageSpec{
			{PageNumber: 1, Sections: []string{"Introduction", "Context"}},
			{PageNumber: 2, Sections: []string{"Outlook"}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project status %d: %s", rec.Code, rec.Body.String())
	}
	var resp projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestCreateDocxProjectFlow(t *testing.T) {
	provider := &mockProvider{responses: []string{sectionsBatchResponse()}}
	srv := newTestServer(t, provider)

	resp := createDocxProject(t, srv)
	if provider.calls != 1 {
		t.Fatalf("expected one batched generation call, got %d", provider.calls)
	}
	if resp.Project == nil || len(resp.Project.Sections) != 3 {
		t.Fatalf("unexpected project payload: %+v", resp.Project)
	}
	first := resp.Project.Sections[0]
	if first.Heading != "Introduction" || first.PageNumber != 1 || first.SectionIndex != 1 {
		t.Fatalf("unexpected first section: %+v", first)
	}
	if first.Version() != 1 || first.History[0].Prompt != document.InitialRevisionPrompt {
		t.Fatalf("sections must start at version 1: %+v", first.History)
	}

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/v1/projects/%d", resp.Project.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get project status %d", rec.Code)
	}
}

func TestCreateProjectGenerationFailure(t *testing.T) {
	provider := &mockProvider{errs: []error{errors.New("secret upstream detail")}}
	srv := newTestServer(t, provider)

	rec := doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{
		Topic:    "Topic",
		DocType:  "docx",
		Sections: []document.SectionSpec{{Heading: "Introduction", OrderIndex: 1}},
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("secret")) {
		t.Fatalf("collaborator error text leaked: %s", rec.Body.String())
	}
	// All-or-nothing: nothing was committed.
	if rec := doJSON(t, srv, http.MethodGet, "/v1/projects/1", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected no committed project, got status %d", rec.Code)
	}
}

func TestCreatePptxProjectFlow(t *testing.T) {
	deck := `[
          {"layout": "title", "title": "Opening"},
          {"layout": "bullet", "title": "Points", "bullets": ["one", "two"]}
        ]`
	provider := &mockProvider{responses: []string{deck}}
	srv := newTestServer(t, provider)

	rec := doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{
		Topic:     "Go Concurrency",
		DocType:   "pptx",
		NumSlides: 4,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create deck status %d: %s", rec.Code, rec.Body.String())
	}
	var resp projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Slides) != 4 {
		t.Fatalf("expected repaired deck of 4 slides, got %d", len(resp.Slides))
	}
	if resp.Slides[2].Title != "Slide 3" || resp.Slides[3].Title != "Slide 4" {
		t.Fatalf("expected padded tail, got %+v", resp.Slides[2:])
	}
}

func TestRefineSectionFlow(t *testing.T) {
	provider := &mockProvider{responses: []string{sectionsBatchResponse(), "A much more formal opening."}}
	srv := newTestServer(t, provider)
	resp := createDocxProject(t, srv)
	section := resp.Project.Sections[0]

	rec := doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/v1/projects/%d/sections/%d/refine", resp.Project.ID, section.ID),
		refineSectionRequest{Prompt: "make it formal"})
	if rec.Code != http.StatusOK {
		t.Fatalf("refine status %d: %s", rec.Code, rec.Body.String())
	}
	var refined document.Section
	if err := json.Unmarshal(rec.Body.Bytes(), &refined); err != nil {
		t.Fatalf("decode section: %v", err)
	}
	if refined.Version() != 2 || refined.Content != "A much more formal opening." {
		t.Fatalf("unexpected refined section: %+v", refined)
	}
	if refined.History[1].Prompt != "make it formal" {
		t.Fatalf("history must record the instruction: %+v", refined.History)
	}
	if refined.PageNumber != section.PageNumber || refined.OrderIndex != section.OrderIndex {
		t.Fatalf("refinement must not touch ordering or page assignment")
	}
}

func TestRefineFailureLeavesStateUntouched(t *testing.T) {
	provider := &mockProvider{
		responses: []string{sectionsBatchResponse(), ""},
		errs:      []error{nil, errors.New("provider down")},
	}
	srv := newTestServer(t, provider)
	resp := createDocxProject(t, srv)
	section := resp.Project.Sections[0]

	rec := doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/v1/projects/%d/sections/%d/refine", resp.Project.ID, section.ID),
		refineSectionRequest{Prompt: "make it formal"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/v1/projects/%d", resp.Project.ID), nil)
	var after projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	got := after.Project.Sections[0]
	if got.Version() != 1 || got.Content != "Opening paragraph." {
		t.Fatalf("failed refinement must not mutate state: %+v", got)
	}
}

func TestConcurrentRefinementsSerialize(t *testing.T) {
	provider := &mockProvider{
		responses: []string{sectionsBatchResponse(), "refined once", "refined twice"},
	}
	srv := newTestServer(t, provider)
	resp := createDocxProject(t, srv)
	section := resp.Project.Sections[0]
	path := fmt.Sprintf("/v1/projects/%d/sections/%d/refine", resp.Project.ID, section.ID)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := doJSON(t, srv, http.MethodPost, path, refineSectionRequest{Prompt: fmt.Sprintf("instruction %d", i)})
			if rec.Code != http.StatusOK {
				t.Errorf("refine %d status %d", i, rec.Code)
			}
		}(i)
	}
	wg.Wait()

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/v1/projects/%d", resp.Project.ID), nil)
	var after projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	got := after.Project.Sections[0]
	// Serialized last-writer-wins: v1 + both refinements, versions strictly
	// monotonic, content mirroring the final entry.
	if got.Version() != 3 {
		t.Fatalf("expected version 3, got %d (history %+v)", got.Version(), got.History)
	}
	for i, rev := range got.History {
		if rev.Version != i+1 {
			t.Fatalf("corrupted history versions: %+v", got.History)
		}
	}
	if got.Content != got.History[2].Content {
		t.Fatalf("content must equal last history entry: %+v", got)
	}
	if got.Content != "refined once" && got.Content != "refined twice" {
		t.Fatalf("unexpected final content: %q", got.Content)
	}
}

func TestSectionFeedbackFlow(t *testing.T) {
	provider := &mockProvider{responses: []string{sectionsBatchResponse()}}
	srv := newTestServer(t, provider)
	resp := createDocxProject(t, srv)
	section := resp.Project.Sections[0]
	path := fmt.Sprintf("/v1/projects/%d/sections/%d/feedback", resp.Project.ID, section.ID)

	rec := doJSON(t, srv, http.MethodPost, path, sectionFeedbackRequest{Feedback: "like", Comment: "good"})
	if rec.Code != http.StatusOK {
		t.Fatalf("feedback status %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, srv, http.MethodPost, path, sectionFeedbackRequest{Feedback: "meh"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid feedback, got %d", rec.Code)
	}
}

func TestExportDocxProject(t *testing.T) {
	provider := &mockProvider{responses: []string{sectionsBatchResponse()}}
	srv := newTestServer(t, provider)
	resp := createDocxProject(t, srv)

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/v1/projects/%d/export", resp.Project.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != docxContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("export returned no bytes")
	}
}

func TestCreateProjectValidation(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})

	rec := doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{DocType: "docx"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing topic, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{Topic: "T", DocType: "pdf"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown doc type, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{Topic: "T", DocType: "docx"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty section request, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/projects", createProjectRequest{Topic: "T", DocType: "pptx"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing num_slides, got %d", rec.Code)
	}
}
