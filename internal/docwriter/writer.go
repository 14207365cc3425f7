// File path: internal/docwriter/writer.go
package docwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/document"
)

const titleFontSize = 20

// Writer renders reflowed page layouts into .docx artifacts on disk. The
// engine never inspects the produced bytes; it only hands the path on.
type Writer struct {
	root string
}

// New prepares a writer rooted at dir, creating it when absent.
func New(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join("storage", "docs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document root: %w", err)
	}
	return &Writer{root: dir}, nil
}

// Root returns the directory artifacts are written into.
func (w *Writer) Root() string {
	return w.root
}

// Write produces the .docx file for one project and returns its path. The
// first page follows the document title without a break; every later page is
// preceded by an explicit page break. Run sizes come from the layout's
// derived style parameters.
func (w *Writer) Write(projectID int64, title string, pages []document.PageLayout) (string, error) {
	logger := common.Logger()
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(title).Size(halfPoints(titleFontSize)).Bold()

	for _, page := range pages {
		if page.BreakBefore {
			doc.AddParagraph().AddPageBreaks()
		}
		headingSize := halfPoints(page.HeadingSize)
		bodySize := halfPoints(page.BodySize)
		for _, section := range page.Sections {
			if section.Heading != "" {
				doc.AddParagraph().AddText(section.Heading).Size(headingSize).Bold()
			}
			for _, para := range strings.Split(section.Content, "\n") {
				para = strings.TrimSpace(para)
				if para == "" {
					continue
				}
				doc.AddParagraph().AddText(para).Size(bodySize)
			}
		}
	}

	path := filepath.Join(w.root, fmt.Sprintf("project_%d.docx", projectID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create document file: %w", err)
	}
	defer f.Close()
	if _, err := doc.WriteTo(f); err != nil {
		return "", fmt.Errorf("write document file: %w", err)
	}
	logger.Info("docwriter: document written", "project_id", projectID, "path", path, "pages", len(pages))
	return path, nil
}

// Word run sizes are expressed in half-points.
func halfPoints(points int) string {
	return strconv.Itoa(points * 2)
}
