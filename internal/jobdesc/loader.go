package jobdesc

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where the job description comes from.
type Source struct {
	// Value is the job description given inline via flags or forms.
	Value string
	// File points to a file holding the job description. When set it takes
	// precedence over Value.
	File string
}

// Configured reports whether the source names any input at all.
func (s Source) Configured() bool {
	return strings.TrimSpace(s.File) != "" || strings.TrimSpace(s.Value) != ""
}

// Load returns the trimmed job description. An empty description is valid:
// it simply yields no job skills. Only an unreadable file is an error.
func Load(src Source) (string, error) {
	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description from file %q: %w", file, err)
		}
		return strings.TrimSpace(strings.ToValidUTF8(string(data), "")), nil
	}

	return strings.TrimSpace(src.Value), nil
}
