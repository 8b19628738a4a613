package md2blog

import (
	"fmt"
	"strings"
)

// Separator is the line that divides a source document into sections.
const Separator = "---"

// Document is a source file split into its sections.
type Document struct {
	Header     map[string]string
	Excerpt    string
	Body       string
	HasExcerpt bool
}

// ParseDocument splits text into header, optional excerpt, and body.
//
// The text must contain exactly one or two Separator lines. With one, the
// document has no excerpt and Excerpt equals Body. With two, the text between
// them is the excerpt. Line endings are normalized to "\n".
func ParseDocument(text string) (*Document, error) {
	sections := splitSections(normalizeNewlines(text))

	var doc Document
	switch len(sections) {
	case 2:
		doc.Body = sections[1]
		doc.Excerpt = doc.Body
	case 3:
		doc.Excerpt = sections[1]
		doc.Body = sections[2]
		doc.HasExcerpt = true
	default:
		return nil, fmt.Errorf("%w: found %d separator lines, want 1 or 2", ErrFormat, len(sections)-1)
	}

	header, err := ParseHeader(sections[0])
	if err != nil {
		return nil, err
	}
	doc.Header = header
	return &doc, nil
}

// ParseHeader reads "key: value" lines. Keys and values are trimmed, blank
// lines are skipped, and a repeated key keeps its last value.
func ParseHeader(header string) (map[string]string, error) {
	fields := make(map[string]string)
	for i, line := range strings.Split(header, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: header line %d has no \": \": %q", ErrFormat, i+1, line)
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields, nil
}

// splitSections cuts text at every line that is exactly Separator.
// The separator lines themselves are dropped.
func splitSections(text string) []string {
	var (
		sections []string
		current  strings.Builder
	)
	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		if strings.TrimSuffix(line, "\n") == Separator {
			sections = append(sections, current.String())
			current.Reset()
			continue
		}
		current.WriteString(line)
	}
	return append(sections, current.String())
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
