// File path: internal/api/types.go
package api

import "github.com/MADDY123987/AI-presentation-doc-generator/internal/document"

type createProjectRequest struct {
	Title     string                 `json:"title"`
	Topic     string                 `json:"topic"`
	DocType   string                 `json:"doc_type"`
	NumPages  int                    `json:"num_pages,omitempty"`
	NumSlides int                    `json:"num_slides,omitempty"`
	Sections  []document.SectionSpec `json:"sections,omitempty"`
	Pages     []document.PageSpec    `json:"pages,omitempty"`
}

type projectResponse struct {
	Project *document.Project `json:"project"`
	Slides  []document.Slide  `json:"slides,omitempty"`
}

type refineSectionRequest struct {
	Prompt string `json:"prompt"`
}

type sectionFeedbackRequest struct {
	Feedback string `json:"feedback"`
	Comment  string `json:"comment,omitempty"`
}
