// File path: internal/content/sections.go
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/llm"
)

// backfillInstruction is the generic prompt used when the batch response
// left a heading without usable content.
const backfillInstruction = "Write a clear, professional section for this heading."

// SectionContent is one resolved heading/body pair, in request order.
type SectionContent struct {
	Heading string
	Content string
}

type generatedSection struct {
	Heading    string `json:"heading"`
	OrderIndex int    `json:"order_index"`
	Content    string `json:"content"`
}

// GenerateSections asks the collaborator once for the bodies of every
// requested heading and resolves each heading by exact text match,
// first match winning when headings repeat. Headings the batch missed or
// left blank are backfilled with a single-shot refinement call each; a
// failed backfill yields an empty body rather than failing the batch.
// Every resolved body passes through Sanitize before it is returned,
// stripping restatements of both the topic and the document title when
// the two differ.
func (g *Generator) GenerateSections(ctx context.Context, title, topic string, headings []string) ([]SectionContent, error) {
	logger := common.Logger()
	if len(headings) == 0 {
		return nil, fmt.Errorf("no headings requested")
	}

	raw, err := g.provider.Chat(ctx, []llm.Message{{Role: "user", Content: buildSectionsPrompt(topic, headings)}})
	if err != nil {
		logger.Error("content: section generation call failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("generate sections: %w", ErrGenerationFailed)
	}

	elements, err := parseArray(raw)
	if err != nil {
		logger.Error("content: section response not a JSON array", "topic", topic, "error", err)
		return nil, fmt.Errorf("generate sections: %w", ErrGenerationFailed)
	}

	generated := make([]generatedSection, 0, len(elements))
	for _, element := range elements {
		var gs generatedSection
		if err := json.Unmarshal(element, &gs); err != nil {
			continue
		}
		generated = append(generated, gs)
	}
	// Generators emit out of order often enough that the declared index is
	// only trusted after sorting.
	sort.SliceStable(generated, func(i, j int) bool {
		return generated[i].OrderIndex < generated[j].OrderIndex
	})

	byHeading := make(map[string]string, len(generated))
	for _, gs := range generated {
		if _, ok := byHeading[gs.Heading]; ok {
			continue
		}
		byHeading[gs.Heading] = gs.Content
	}

	out := make([]SectionContent, 0, len(headings))
	backfilled := 0
	for _, heading := range headings {
		content := byHeading[heading]
		if strings.TrimSpace(content) == "" {
			content = g.backfillSection(ctx, topic, heading)
			backfilled++
		}
		out = append(out, SectionContent{
			Heading: heading,
			Content: sanitize([]string{title, topic}, heading, content),
		})
	}
	if backfilled > 0 {
		logger.Warn("content: sections required fallback generation", "topic", topic, "backfilled", backfilled, "requested", len(headings))
	}
	return out, nil
}

// backfillSection covers exactly one heading the batch call missed. Its
// failure is local: the heading ends up empty and the batch survives.
func (g *Generator) backfillSection(ctx context.Context, topic, heading string) string {
	content, err := g.RefineSection(ctx, topic, heading, "", backfillInstruction)
	if err != nil {
		common.Logger().Warn("content: section backfill failed", "topic", topic, "heading", heading, "error", err)
		return ""
	}
	return content
}

// RefineSection applies one free-form instruction to one section body and
// returns the trimmed response verbatim. The result is intentionally not
// re-sanitized: aggressive stripping could destroy content the instruction
// explicitly asked for, such as a restated heading used as a subtitle.
func (g *Generator) RefineSection(ctx context.Context, topic, heading, current, instruction string) (string, error) {
	raw, err := g.provider.Chat(ctx, []llm.Message{{Role: "user", Content: buildRefinePrompt(topic, heading, current, instruction)}})
	if err != nil {
		common.Logger().Error("content: refinement call failed", "topic", topic, "heading", heading, "error", err)
		return "", fmt.Errorf("refine section: %w", ErrRefinementFailed)
	}
	return strings.TrimSpace(raw), nil
}
