// File path: internal/content/prompts.go
package content

import (
	"fmt"
	"strings"
)

func buildSlidesPrompt(topic string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert presentation designer and educator.\n\n")
	fmt.Fprintf(&sb, "Create a highly engaging, logically structured slide deck on the topic %q with EXACTLY %d slides.\n\n", topic, count)
	sb.WriteString(`Overall flow:
- Slide 1 MUST be a pure title slide introducing the topic (no bullets).
- The last slide MUST be a summary / conclusion / call-to-action slide.
- Other slides mix layouts intelligently:
  - "title" for big section headers or key messages.
  - "bullet" for concepts, lists, pros/cons, step-by-step flows (3-6 bullets, each an informative 12-25 word sentence).
  - "two_column" for comparisons: "left" holds explanation or theory, "right" holds examples or practical implications.
  - "image" when a diagram or chart would help; write a descriptive 10-30 word "caption", the backend picks the actual image.
- Avoid repeating the same idea across slides. Use simple, professional English.
- Never mention slides or presentations inside the content itself.

Output format:
Return ONLY a JSON array (no markdown, no backticks, no commentary).
Each element is ONE slide object in one of these shapes:
{"layout": "title", "title": "..."}
{"layout": "bullet", "title": "...", "bullets": ["...", "..."]}
{"layout": "two_column", "title": "...", "left": "...", "right": "..."}
{"layout": "image", "title": "...", "caption": "..."}

If you cannot follow this format exactly, you may instead return objects shaped like:
{"title": "...", "content": ["bullet one", "bullet two"], "image": "short description (optional)", "notes": "explanation (optional)"}

`)
	fmt.Fprintf(&sb, "STRICT: produce EXACTLY %d slide objects in the JSON array.\n", count)
	return sb.String()
}

func buildSectionsPrompt(topic string, headings []string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert business writer creating a professional document.\n\n")
	fmt.Fprintf(&sb, "MAIN TOPIC:\n%s\n\n", topic)
	sb.WriteString("The document has the following SECTIONS (each one subtopic), in this exact order:\n")
	for _, h := range headings {
		fmt.Fprintf(&sb, "- %s\n", h)
	}
	sb.WriteString(`
You only write the body text under each heading.

FORBIDDEN:
- No page or section labels ("Page 1 - Section 1", "Section 2: ...", "Chapter 1").
- Do not restate the document title or the section heading inside the body.
- Do not start any line with "Page", "Section", "Chapter" or "Part" followed by a number.
- Do not re-explain the same concept in multiple sections; refer back briefly instead.

STYLE:
- Professional, simple English. 2-4 compact, information-dense paragraphs per heading.
- Plain text only. Use "\n" inside the JSON string for paragraph breaks.
- No markdown, no bullets unless the heading clearly requires a list.

Output format (STRICT): return ONLY a JSON array, one object per heading:
{"heading": "exactly one of the provided headings", "order_index": <1-based position in the list above>, "content": "plain text with '\n' between paragraphs"}

Include ONE object for EVERY heading, in order.
`)
	return sb.String()
}

func buildRefinePrompt(topic, heading, current, instruction string) string {
	var sb strings.Builder
	sb.WriteString("You are revising ONE section of a professional document.\n\n")
	fmt.Fprintf(&sb, "Main topic: %s\nSection heading: %s\n\n", topic, heading)
	fmt.Fprintf(&sb, "Current section content:\n\"\"\"%s\"\"\"\n\n", current)
	fmt.Fprintf(&sb, "User refinement instruction:\n\"\"\"%s\"\"\"\n\n", instruction)
	sb.WriteString(`Rewrite ONLY this section according to the instruction.

Rules:
- Keep meaning and key information intact.
- Apply the user's style/length instructions carefully.
- Output plain text only, with '\n' for paragraph breaks.
- Do NOT add the heading, section numbers, or any meta commentary.
`)
	return sb.String()
}
