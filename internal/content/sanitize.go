// File path: internal/content/sanitize.go
package content

import "strings"

// Sanitize strips generator-introduced structural noise from the top of a
// raw section body: a restated document title, "Page N – Section M" labels,
// "Section N" labels, a restated heading or "Heading:" prefix. Only leading
// lines are inspected; once a normal line is reached the rest of the body is
// kept verbatim, so a mid-body repeat of the title survives. Line endings
// are normalized, literal "\n" escapes become real breaks, runs of blank
// lines collapse to one. Safe to re-apply.
func Sanitize(docTitle, heading, raw string) string {
	return sanitize([]string{docTitle}, heading, raw)
}

// sanitize is the multi-title core: every string in titles is treated as a
// restatable document title. Used when the document title and the generation
// topic differ and both may be echoed at the top of a body.
func sanitize(titles []string, heading, raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	titleLows := make([]string, 0, len(titles))
	for _, title := range titles {
		if low := strings.ToLower(strings.TrimSpace(title)); low != "" {
			titleLows = append(titleLows, low)
		}
	}
	headingLow := strings.ToLower(strings.TrimSpace(heading))

	for len(lines) > 0 {
		first := lines[0]
		if first == "" {
			lines = lines[1:]
			continue
		}
		low := strings.ToLower(first)

		if headingLow != "" && strings.HasPrefix(low, headingLow+":") {
			// "Introduction: growth accelerated." keeps its tail.
			rest := strings.TrimSpace(first[strings.Index(first, ":")+1:])
			if rest == "" {
				lines = lines[1:]
				continue
			}
			lines[0] = rest
			break
		}

		if isLeadingNoise(low, titleLows, headingLow) {
			lines = lines[1:]
			continue
		}
		break
	}

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
				continue
			}
			cleaned = append(cleaned, "")
		} else {
			cleaned = append(cleaned, line)
		}
	}
	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, "\n")
}

func isLeadingNoise(low string, titleLows []string, headingLow string) bool {
	for _, titleLow := range titleLows {
		if low == titleLow {
			return true
		}
	}
	if strings.HasPrefix(low, "page ") && strings.Contains(low, "section") {
		return true
	}
	if strings.HasPrefix(low, "section ") {
		return true
	}
	if headingLow != "" && low == headingLow {
		return true
	}
	return false
}
