// File path: internal/document/model_test.go
package document

import (
	"errors"
	"fmt"
	"testing"
)

func TestPlanSectionsPagedMode(t *testing.T) {
	pages := []PageSpec{
		{PageNumber: 2, Sections: []string{"Outlook"}},
		{PageNumber: 1, Sections: []string{"Introduction", "Context", "Scope", "Overflow"}},
	}
	plans, err := PlanSections(nil, pages)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if len(plans) != 4 {
		t.Fatalf("expected 4 planned sections (page cap applied), got %d", len(plans))
	}
	// Pages visit ascending regardless of input order; the fourth heading
	// on page one falls off the page.
	wantHeadings := []string{"Introduction", "Context", "Scope", "Outlook"}
	for i, want := range wantHeadings {
		if plans[i].Heading != want {
			t.Fatalf("plan %d heading %q, want %q", i, plans[i].Heading, want)
		}
		if plans[i].OrderIndex != i+1 {
			t.Fatalf("plan %d order_index %d, want %d", i, plans[i].OrderIndex, i+1)
		}
	}
	if plans[2].PageNumber != 1 || plans[2].SectionIndex != 3 {
		t.Fatalf("unexpected position for %q: %+v", plans[2].Heading, plans[2])
	}
	if plans[3].PageNumber != 2 || plans[3].SectionIndex != 1 {
		t.Fatalf("unexpected position for %q: %+v", plans[3].Heading, plans[3])
	}
}

func TestPlanSectionsFlatMode(t *testing.T) {
	flat := []SectionSpec{
		{Heading: "Conclusion", OrderIndex: 4},
		{Heading: "Introduction", OrderIndex: 1},
		{Heading: "Body", OrderIndex: 2},
		{Heading: "Details", OrderIndex: 3},
	}
	plans, err := PlanSections(flat, nil)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	// Flat mode is uncapped: all sections share page 1 with running indexes.
	if len(plans) != 4 {
		t.Fatalf("flat mode must keep every section, got %d", len(plans))
	}
	for i, want := range []string{"Introduction", "Body", "Details", "Conclusion"} {
		if plans[i].Heading != want {
			t.Fatalf("plan %d heading %q, want %q", i, plans[i].Heading, want)
		}
		if plans[i].PageNumber != 1 {
			t.Fatalf("flat mode must default to page 1, got %d", plans[i].PageNumber)
		}
		if plans[i].SectionIndex != i+1 {
			t.Fatalf("plan %d section_index %d, want %d", i, plans[i].SectionIndex, i+1)
		}
	}
}

func TestPlanSectionsPagedWinsOverFlat(t *testing.T) {
	flat := []SectionSpec{{Heading: "Flat", OrderIndex: 1}}
	pages := []PageSpec{{PageNumber: 1, Sections: []string{"Paged"}}}
	plans, err := PlanSections(flat, pages)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if len(plans) != 1 || plans[0].Heading != "Paged" {
		t.Fatalf("paged request should win: %+v", plans)
	}
}

func TestPlanSectionsEmpty(t *testing.T) {
	if _, err := PlanSections(nil, nil); !errors.Is(err, ErrNoSections) {
		t.Fatalf("expected ErrNoSections, got %v", err)
	}
	if _, err := PlanSections(nil, []PageSpec{{PageNumber: 1, Sections: []string{"  "}}}); !errors.Is(err, ErrNoSections) {
		t.Fatalf("expected ErrNoSections for blank headings, got %v", err)
	}
}

func TestApplyRevisionAppendOnly(t *testing.T) {
	section := Section{Heading: "Introduction"}
	section.ApplyRevision(InitialRevisionPrompt, "v1 body")

	const refinements = 4
	for k := 1; k <= refinements; k++ {
		section.ApplyRevision(fmt.Sprintf("instruction %d", k), fmt.Sprintf("v%d body", k+1))
	}

	if section.Version() != refinements+1 {
		t.Fatalf("expected version %d, got %d", refinements+1, section.Version())
	}
	if len(section.History) != refinements+1 {
		t.Fatalf("expected %d history entries, got %d", refinements+1, len(section.History))
	}
	for i, rev := range section.History {
		if rev.Version != i+1 {
			t.Fatalf("history entry %d has version %d", i, rev.Version)
		}
	}
	if section.History[0].Prompt != InitialRevisionPrompt {
		t.Fatalf("first entry must be the initial generation, got %q", section.History[0].Prompt)
	}
	last := section.History[len(section.History)-1]
	if section.Content != last.Content {
		t.Fatalf("content %q must mirror last history entry %q", section.Content, last.Content)
	}
}
