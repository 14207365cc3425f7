// File path: internal/content/slides.go
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/document"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/llm"
)

// Generator turns free-form collaborator responses into strictly shaped
// document units. All generation paths issue exactly one collaborator call.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

var (
	codeFenceReplacer = strings.NewReplacer("```json", "", "```", "")
	nonAlnumPattern   = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// rawSlide accepts both the tagged layout schema and the generic legacy
// shape. Fields that vary in type across generators stay loosely typed and
// are stringified during coercion.
type rawSlide struct {
	Layout  string        `json:"layout"`
	Title   string        `json:"title"`
	Bullets []interface{} `json:"bullets"`
	Left    string        `json:"left"`
	Right   string        `json:"right"`
	Caption string        `json:"caption"`
	Content interface{}   `json:"content"`
	Image   interface{}   `json:"image"`
	Notes   string        `json:"notes"`
}

// GenerateSlides asks the collaborator for a deck of exactly count slides
// and reconciles the response onto the fixed layout schema. Elements that do
// not deserialize as objects are dropped; a short deck is padded with
// numbered title slides and a long one truncated, so the result always has
// exactly count slides. Every image slide leaves with a non-empty caption
// where possible and a deterministic placeholder image reference.
func (g *Generator) GenerateSlides(ctx context.Context, topic string, count int) ([]document.Slide, error) {
	logger := common.Logger()
	if count < 1 {
		return nil, fmt.Errorf("slide count must be at least 1, got %d", count)
	}

	raw, err := g.provider.Chat(ctx, []llm.Message{{Role: "user", Content: buildSlidesPrompt(topic, count)}})
	if err != nil {
		logger.Error("content: slide generation call failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("generate slides: %w", ErrGenerationFailed)
	}

	elements, err := parseArray(raw)
	if err != nil {
		logger.Error("content: slide response not a JSON array", "topic", topic, "error", err)
		return nil, fmt.Errorf("generate slides: %w", ErrGenerationFailed)
	}

	slides := make([]document.Slide, 0, count)
	dropped := 0
	for _, element := range elements {
		var rs rawSlide
		if err := json.Unmarshal(element, &rs); err != nil {
			dropped++
			continue
		}
		slides = append(slides, coerceSlide(rs))
	}
	if dropped > 0 {
		logger.Warn("content: dropped malformed slide elements", "topic", topic, "dropped", dropped)
	}

	// Cardinality repair: pad the tail with numbered title slides or cut it.
	if len(slides) < count {
		logger.Warn("content: padding short deck", "topic", topic, "generated", len(slides), "requested", count)
		for i := len(slides); i < count; i++ {
			slides = append(slides, document.Slide{
				Layout: document.SlideLayoutTitle,
				Title:  fmt.Sprintf("Slide %d", i+1),
			})
		}
	} else if len(slides) > count {
		logger.Warn("content: truncating long deck", "topic", topic, "generated", len(slides), "requested", count)
		slides = slides[:count]
	}

	for i := range slides {
		if slides[i].Layout != document.SlideLayoutImage {
			continue
		}
		if strings.TrimSpace(slides[i].Caption) == "" {
			slides[i].Caption = truncateRunes(slides[i].Title, 120)
		}
		slides[i].ImageURL = placeholderImageURL(topic, i)
	}

	return slides, nil
}

// coerceSlide maps one parsed element onto the fixed layout schema. A
// declared layout tag wins; otherwise shape is inferred: list-valued content
// means bullets, an image field means an image slide, anything else is a
// title slide.
func coerceSlide(rs rawSlide) document.Slide {
	switch document.SlideLayout(rs.Layout) {
	case document.SlideLayoutTitle:
		return document.Slide{Layout: document.SlideLayoutTitle, Title: rs.Title}
	case document.SlideLayoutBullet:
		return document.Slide{
			Layout:  document.SlideLayoutBullet,
			Title:   rs.Title,
			Bullets: stringifyList(rs.Bullets),
		}
	case document.SlideLayoutTwoColumn:
		return document.Slide{
			Layout: document.SlideLayoutTwoColumn,
			Title:  rs.Title,
			Left:   rs.Left,
			Right:  rs.Right,
		}
	case document.SlideLayoutImage:
		// An empty caption is repaired in the image post-pass.
		return document.Slide{Layout: document.SlideLayoutImage, Title: rs.Title, Caption: rs.Caption}
	}

	if items, ok := rs.Content.([]interface{}); ok {
		return document.Slide{
			Layout:  document.SlideLayoutBullet,
			Title:   rs.Title,
			Bullets: stringifyList(items),
		}
	}
	if truthy(rs.Image) {
		caption := rs.Notes
		if caption == "" {
			caption = stringify(rs.Image)
		}
		return document.Slide{Layout: document.SlideLayoutImage, Title: rs.Title, Caption: caption}
	}
	return document.Slide{Layout: document.SlideLayoutTitle, Title: rs.Title}
}

// placeholderImageURL derives a stable per-call placeholder reference from
// the topic and slide position: non-alphanumerics are removed from
// "<topic>_<index>" to form the lookup seed.
func placeholderImageURL(topic string, index int) string {
	seed := nonAlnumPattern.ReplaceAllString(fmt.Sprintf("%s_%d", topic, index), "")
	if seed == "" {
		seed = fmt.Sprintf("slide_%d", index)
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", seed)
}

// parseArray strips markdown code fences and decodes the payload as a JSON
// array of raw elements.
func parseArray(raw string) ([]json.RawMessage, error) {
	clean := strings.TrimSpace(codeFenceReplacer.Replace(raw))
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &elements); err != nil {
		return nil, fmt.Errorf("expected JSON array: %w", err)
	}
	return elements, nil
}

func stringifyList(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(stringify(item))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

// truthy reports whether a loosely typed JSON value counts as present:
// empty strings, zero numbers, false, nil and empty lists do not.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
