// Package textnorm turns extracted document text into one logical unit per line.
package textnorm

import (
	"regexp"
	"strings"
)

// Bullet is the glyph that starts a bulleted item.
const Bullet = "•"

var (
	lineEndings   = regexp.MustCompile(`\r\n?`)
	spaceRuns     = regexp.MustCompile(`[^\S\n]{2,}`)
	lineBreakRuns = regexp.MustCompile(`\n(?:[^\S\n]*\n)+`)
)

// Rule is a single rewrite applied by the Normalizer.
type Rule interface {
	Name() string
	Apply(text string) string
}

// Step records what a rule did to the text length.
type Step struct {
	Name    string
	Initial int
	Result  int
}

// Normalizer applies its rules in order; each rule sees the output of the previous one.
type Normalizer struct {
	rules []Rule
}

// New builds the standard rule chain for the given header keywords.
func New(keywords []string) *Normalizer {
	return NewWithRules(
		replaceRule{name: "line_endings", re: lineEndings, repl: "\n"},
		NewHeaderRule(keywords),
		bulletRule{},
		replaceRule{name: "collapse_spaces", re: spaceRuns, repl: " "},
		replaceRule{name: "collapse_line_breaks", re: lineBreakRuns, repl: "\n"},
		trimRule{},
	)
}

// NewWithRules returns a normalizer applying rules in the given order.
func NewWithRules(rules ...Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// Normalize returns the normalized text.
func (n *Normalizer) Normalize(raw string) string {
	text, _ := n.NormalizeWithTrace(raw)
	return text
}

// NormalizeWithTrace returns the normalized text and one Step per rule.
func (n *Normalizer) NormalizeWithTrace(raw string) (string, []Step) {
	steps := make([]Step, 0, len(n.rules))
	text := raw
	for _, rule := range n.rules {
		initial := len(text)
		text = rule.Apply(text)
		steps = append(steps, Step{Name: rule.Name(), Initial: initial, Result: len(text)})
	}
	return text, steps
}

// Rules returns the rule names in application order.
func (n *Normalizer) Rules() []string {
	names := make([]string, 0, len(n.rules))
	for _, rule := range n.rules {
		names = append(names, rule.Name())
	}
	return names
}

type headerPattern struct {
	re        *regexp.Regexp
	canonical string
}

type headerRule struct {
	patterns []headerPattern
}

// NewHeaderRule breaks the line before every case-insensitive occurrence of a
// keyword and upper-cases it. Each keyword gets one pass over the whole text,
// in the given order.
func NewHeaderRule(keywords []string) Rule {
	patterns := make([]headerPattern, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		patterns = append(patterns, headerPattern{
			re:        regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw)),
			canonical: "\n" + strings.ToUpper(kw),
		})
	}
	return headerRule{patterns: patterns}
}

func (headerRule) Name() string { return "headers" }

func (r headerRule) Apply(text string) string {
	for _, p := range r.patterns {
		text = p.re.ReplaceAllLiteralString(text, p.canonical)
	}
	return text
}

type bulletRule struct{}

func (bulletRule) Name() string { return "bullets" }

func (bulletRule) Apply(text string) string {
	return strings.ReplaceAll(text, Bullet, "\n"+Bullet)
}

type replaceRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

func (r replaceRule) Name() string { return r.name }

func (r replaceRule) Apply(text string) string {
	return r.re.ReplaceAllLiteralString(text, r.repl)
}

type trimRule struct{}

func (trimRule) Name() string { return "trim" }

func (trimRule) Apply(text string) string { return strings.TrimSpace(text) }
