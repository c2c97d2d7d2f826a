// Package skills matches free text against a fixed skill vocabulary.
package skills

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultTerms returns the built-in vocabulary.
func DefaultTerms() []string {
	return []string{
		"python", "java", "c++", "c", "r", "sql", "mysql", "power bi", "tableau", "excel",
		"numpy", "pandas", "matplotlib", "seaborn", "scikit learn", "tensorflow", "pytorch",
		"keras", "flask", "django", "spark", "pyspark", "aws", "azure", "git", "github",
		"html", "css", "javascript", "react", "node", "express", "machine learning",
		"deep learning", "nlp", "data visualization", "data analysis", "cloud computing",
		"statistics", "docker", "kubernetes", "power query", "dax", "render",
	}
}

type term struct {
	name string
	re   *regexp.Regexp
}

// Vocabulary is an immutable ordered set of lower-case skill terms.
type Vocabulary struct {
	terms []term
}

// NewVocabulary lower-cases and de-duplicates terms, keeping first-seen order.
func NewVocabulary(terms []string) (*Vocabulary, error) {
	v := &Vocabulary{}
	seen := make(map[string]bool, len(terms))

	for _, t := range terms {
		name := strings.ToLower(strings.TrimSpace(t))
		if name == "" {
			return nil, fmt.Errorf("skill vocabulary contains an empty term")
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		// A term matches only when not glued to a letter, digit or underscore
		// of any script on either side.
		re, err := regexp.Compile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(name) + `(?:[^\p{L}\p{N}_]|$)`)
		if err != nil {
			return nil, fmt.Errorf("compile skill %q: %w", name, err)
		}
		v.terms = append(v.terms, term{name: name, re: re})
	}

	if len(v.terms) == 0 {
		return nil, fmt.Errorf("skill vocabulary is empty")
	}

	return v, nil
}

// MustDefault returns the built-in vocabulary.
func MustDefault() *Vocabulary {
	v, err := NewVocabulary(DefaultTerms())
	if err != nil {
		panic(err)
	}
	return v
}

// Terms returns a copy of the vocabulary in declaration order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, 0, len(v.terms))
	for _, t := range v.terms {
		out = append(out, t.name)
	}
	return out
}

func (v *Vocabulary) Len() int { return len(v.terms) }

// Extract returns the vocabulary terms found in text as whole words.
func (v *Vocabulary) Extract(text string) Set {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, t := range v.terms {
		if t.re.MatchString(lower) {
			found = append(found, t.name)
		}
	}
	return NewSet(found...)
}

// Set is a sorted, duplicate-free list of canonical skills.
type Set []string

func NewSet(items ...string) Set {
	uniq := make(map[string]bool, len(items))
	out := make(Set, 0, len(items))
	for _, item := range items {
		if uniq[item] {
			continue
		}
		uniq[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func (s Set) Len() int { return len(s) }

func (s Set) Contains(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

// Intersect returns the skills present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set, 0)
	for _, item := range s {
		if other.Contains(item) {
			out = append(out, item)
		}
	}
	return out
}

// String joins the skills with ", ".
func (s Set) String() string {
	return strings.Join(s, ", ")
}
