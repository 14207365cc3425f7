// File path: internal/document/reflow.go
package document

import "sort"

// PageSection is one heading/body pair positioned on an output page.
type PageSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// PageLayout is one emitted output page with its derived style parameters.
// Font sizes are points and depend only on how many sections share the page.
type PageLayout struct {
	PageNumber  int           `json:"page_number"`
	BreakBefore bool          `json:"break_before"`
	HeadingSize int           `json:"heading_size"`
	BodySize    int           `json:"body_size"`
	Sections    []PageSection `json:"sections"`
}

// Reflow arranges sections into the paginated export layout. Sections are
// bucketed by page number (missing page numbers land on page one), ordered
// within a page by section index with global order as tie-break, and pages
// are emitted ascending. Only pages after the first carry an explicit page
// break. The result is derived fresh from the current section state and is
// never cached, so refinements made since the last export always show up.
func Reflow(sections []Section) []PageLayout {
	buckets := make(map[int][]Section)
	for _, s := range sections {
		page := s.PageNumber
		if page < 1 {
			page = 1
		}
		buckets[page] = append(buckets[page], s)
	}

	pageNumbers := make([]int, 0, len(buckets))
	for page := range buckets {
		pageNumbers = append(pageNumbers, page)
	}
	sort.Ints(pageNumbers)

	layouts := make([]PageLayout, 0, len(pageNumbers))
	for i, page := range pageNumbers {
		bucket := buckets[page]
		sort.SliceStable(bucket, func(a, b int) bool {
			if bucket[a].SectionIndex != bucket[b].SectionIndex {
				return bucket[a].SectionIndex < bucket[b].SectionIndex
			}
			return bucket[a].OrderIndex < bucket[b].OrderIndex
		})
		headingSize, bodySize := pageFontSizes(len(bucket))
		layout := PageLayout{
			PageNumber:  page,
			BreakBefore: i > 0,
			HeadingSize: headingSize,
			BodySize:    bodySize,
			Sections:    make([]PageSection, 0, len(bucket)),
		}
		for _, s := range bucket {
			layout.Sections = append(layout.Sections, PageSection{
				Heading: s.Heading,
				Content: s.Content,
			})
		}
		layouts = append(layouts, layout)
	}
	return layouts
}

// pageFontSizes couples visual density to content quantity: the more
// sections share a page, the smaller the type.
func pageFontSizes(sections int) (heading, body int) {
	switch {
	case sections <= 1:
		return 16, 12
	case sections == 2:
		return 14, 11
	default:
		return 13, 10
	}
}
