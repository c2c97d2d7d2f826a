package sections

import "strings"

// Map holds the body text of each detected section. Sections that never
// received content are absent.
type Map map[Key]string

// Get returns the body of a section and whether it has any content.
func (m Map) Get(k Key) (string, bool) {
	v, ok := m[k]
	return v, ok
}

// Segmenter assigns normalized lines to sections.
type Segmenter struct {
	table Table
}

func NewSegmenter(table Table) *Segmenter {
	return &Segmenter{table: table}
}

// Segment walks the lines of normalized text once. Header lines open a section
// and are consumed; other lines join the open section's body with single
// spaces. Lines before the first header are dropped.
func (s *Segmenter) Segment(text string) Map {
	bodies := make(map[Key][]string)
	var current Key

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if key, ok := s.table.Match(line); ok {
			current = key
			continue
		}

		if current != "" {
			bodies[current] = append(bodies[current], line)
		}
	}

	result := make(Map, len(bodies))
	for key, lines := range bodies {
		if body := strings.TrimSpace(strings.Join(lines, " ")); body != "" {
			result[key] = body
		}
	}

	return result
}
