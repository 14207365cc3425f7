// File path: internal/document/model.go
package document

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// DocType identifies the artifact a project produces.
type DocType string

const (
	DocTypeDocx DocType = "docx"
	DocTypePptx DocType = "pptx"
)

// InitialRevisionPrompt labels the first history entry of every section.
const InitialRevisionPrompt = "initial generation"

// MaxSectionsPerPage caps how many sections a page layout accepts.
const MaxSectionsPerPage = 3

// SlideLayout enumerates the closed set of slide shapes a deck may contain.
type SlideLayout string

const (
	SlideLayoutTitle     SlideLayout = "title"
	SlideLayoutBullet    SlideLayout = "bullet"
	SlideLayoutTwoColumn SlideLayout = "two_column"
	SlideLayoutImage     SlideLayout = "image"
)

// Slide is one normalized deck unit. Exactly the fields belonging to its
// layout are populated: title carries only Title, bullet adds Bullets,
// two_column adds Left/Right, image adds Caption and ImageURL.
type Slide struct {
	Layout   SlideLayout `json:"layout"`
	Title    string      `json:"title"`
	Bullets  []string    `json:"bullets,omitempty"`
	Left     string      `json:"left,omitempty"`
	Right    string      `json:"right,omitempty"`
	Caption  string      `json:"caption,omitempty"`
	ImageURL string      `json:"image_url,omitempty"`
}

// Revision is one append-only history entry of a section.
type Revision struct {
	Version int    `json:"version"`
	Prompt  string `json:"prompt"`
	Content string `json:"content"`
}

// Section is one addressable unit of a document project. OrderIndex is the
// 1-based global position, PageNumber/SectionIndex locate the section inside
// the paged layout. History records every content version ever applied.
type Section struct {
	ID           int64      `json:"id"`
	ProjectID    int64      `json:"project_id"`
	Heading      string     `json:"heading"`
	OrderIndex   int        `json:"order_index"`
	PageNumber   int        `json:"page_number"`
	SectionIndex int        `json:"section_index"`
	Content      string     `json:"content"`
	History      []Revision `json:"history"`
	Feedback     string     `json:"feedback,omitempty"`
	Comment      string     `json:"comment,omitempty"`
}

// Version reports the current content version, equal to the history length.
func (s *Section) Version() int {
	return len(s.History)
}

// ApplyRevision appends a new history entry and mirrors its content onto the
// section. History is never rewritten; ordering and page assignment stay
// untouched.
func (s *Section) ApplyRevision(prompt, content string) Revision {
	rev := Revision{
		Version: len(s.History) + 1,
		Prompt:  prompt,
		Content: content,
	}
	s.History = append(s.History, rev)
	s.Content = content
	return rev
}

// Project owns an ordered collection of sections (docx) or a slide deck (pptx).
type Project struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	DocType   DocType   `json:"doc_type"`
	NumPages  int       `json:"num_pages,omitempty"`
	NumSlides int       `json:"num_slides,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Sections  []Section `json:"sections,omitempty"`
}

// SectionSpec is a caller-supplied flat section request.
type SectionSpec struct {
	Heading    string `json:"heading"`
	OrderIndex int    `json:"order_index"`
}

// PageSpec is a caller-supplied page grouping of section headings.
type PageSpec struct {
	PageNumber int      `json:"page_number"`
	Sections   []string `json:"sections"`
}

// SectionPlan is the resolved position of one requested section: global
// order, page and intra-page slot.
type SectionPlan struct {
	Heading      string
	OrderIndex   int
	PageNumber   int
	SectionIndex int
}

// ErrNoSections reports a document request that names no sections at all.
var ErrNoSections = errors.New("document: no sections requested")

// PlanSections resolves a document request into positioned sections. Paged
// requests win over flat ones when both are present; pages are visited in
// ascending page number and each page keeps at most MaxSectionsPerPage
// headings. A flat request collapses to a single page-one group, preserving
// the caller's order_index ordering; the per-page cap does not apply there,
// so flat section_index values run 1..N on page one. Duplicate headings are
// kept; identity is resolved later by first-match lookup.
func PlanSections(flat []SectionSpec, pages []PageSpec) ([]SectionPlan, error) {
	if len(pages) > 0 {
		ordered := append([]PageSpec(nil), pages...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].PageNumber < ordered[j].PageNumber
		})
		var plans []SectionPlan
		order := 1
		for _, page := range ordered {
			headings := page.Sections
			if len(headings) > MaxSectionsPerPage {
				headings = headings[:MaxSectionsPerPage]
			}
			for idx, heading := range headings {
				heading = strings.TrimSpace(heading)
				if heading == "" {
					continue
				}
				plans = append(plans, SectionPlan{
					Heading:      heading,
					OrderIndex:   order,
					PageNumber:   page.PageNumber,
					SectionIndex: idx + 1,
				})
				order++
			}
		}
		if len(plans) == 0 {
			return nil, ErrNoSections
		}
		return plans, nil
	}

	if len(flat) == 0 {
		return nil, ErrNoSections
	}
	ordered := append([]SectionSpec(nil), flat...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})
	var plans []SectionPlan
	for _, spec := range ordered {
		heading := strings.TrimSpace(spec.Heading)
		if heading == "" {
			continue
		}
		plans = append(plans, SectionPlan{
			Heading:      heading,
			OrderIndex:   len(plans) + 1,
			PageNumber:   1,
			SectionIndex: len(plans) + 1,
		})
	}
	if len(plans) == 0 {
		return nil, ErrNoSections
	}
	return plans, nil
}

// Headings lists plan headings in order, the shape the batch generator wants.
func Headings(plans []SectionPlan) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.Heading)
	}
	return out
}
