package sections

import (
	"fmt"
	"strings"
)

// Key identifies a résumé section.
type Key string

const (
	Education      Key = "education"
	Skills         Key = "skills"
	Internships    Key = "internships"
	Projects       Key = "projects"
	Certifications Key = "certifications"
	Languages      Key = "languages"
	Hobbies        Key = "hobbies"
)

// Keys lists every section in declaration order.
var Keys = []Key{Education, Skills, Internships, Projects, Certifications, Languages, Hobbies}

// Valid reports whether k belongs to the fixed enumeration.
func (k Key) Valid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// Header binds a section to the keywords that open it.
type Header struct {
	Key      Key
	Keywords []string
}

// Table is an ordered header-keyword table. Lookups always walk it in order,
// so the earliest header wins when keyword lists overlap.
type Table []Header

// DefaultTable returns the built-in header keywords.
func DefaultTable() Table {
	return Table{
		{Key: Education, Keywords: []string{"education", "academic background", "qualification"}},
		{Key: Skills, Keywords: []string{"skills", "technical skills", "core competencies"}},
		{Key: Internships, Keywords: []string{"internships", "experience", "work experience", "professional experience"}},
		{Key: Projects, Keywords: []string{"projects", "academic projects", "personal projects"}},
		{Key: Certifications, Keywords: []string{"certifications", "courses", "licenses"}},
		{Key: Languages, Keywords: []string{"languages", "languages known"}},
		{Key: Hobbies, Keywords: []string{"hobbies", "interests", "extra curricular", "activities"}},
	}
}

// NewTable builds a table from configured headers, lower-casing and trimming
// keywords. Headers must use known keys, each at most once, and carry at
// least one keyword.
func NewTable(headers []Header) (Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("at least one section header is required")
	}

	seen := make(map[Key]bool, len(headers))
	table := make(Table, 0, len(headers))

	for _, h := range headers {
		key := Key(strings.ToLower(strings.TrimSpace(string(h.Key))))
		if !key.Valid() {
			return nil, fmt.Errorf("unknown section %q", h.Key)
		}
		if seen[key] {
			return nil, fmt.Errorf("section %q is declared twice", key)
		}
		seen[key] = true

		keywords := make([]string, 0, len(h.Keywords))
		for _, kw := range h.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("section %q has no keywords", key)
		}

		table = append(table, Header{Key: key, Keywords: keywords})
	}

	return table, nil
}

// Keywords flattens the table in declaration order.
func (t Table) Keywords() []string {
	var out []string
	for _, h := range t {
		out = append(out, h.Keywords...)
	}
	return out
}

// Match returns the first section whose keyword is a substring of the
// lower-cased line.
func (t Table) Match(line string) (Key, bool) {
	lower := strings.ToLower(line)
	for _, h := range t {
		for _, kw := range h.Keywords {
			if strings.Contains(lower, kw) {
				return h.Key, true
			}
		}
	}
	return "", false
}
