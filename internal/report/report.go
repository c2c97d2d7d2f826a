// Package report assembles the screening report from a résumé text and a job
// description and renders it for the boundary layer.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/resume-screener/internal/sections"
	"github.com/spigell/resume-screener/internal/skills"
)

// NotAvailable is rendered for any field without content.
const NotAvailable = "N/A"

// Report is the result of screening one résumé against one job description.
type Report struct {
	Name            string       `json:"name"`
	Sections        sections.Map `json:"sections"`
	CandidateSkills skills.Set   `json:"candidate_skills"`
	JobSkills       skills.Set   `json:"job_description_skills"`
	Score           int          `json:"score"`
	Overlap         int          `json:"overlap"`
	Total           int          `json:"total"`
	// Fallback is set when Score was drawn instead of computed from overlap.
	Fallback      bool   `json:"fallback"`
	Justification string `json:"justification"`
}

type field struct {
	title string
	value string
}

func (r *Report) fields() []field {
	section := func(k sections.Key) string {
		v, _ := r.Sections.Get(k)
		return v
	}

	return []field{
		{"Name", r.Name},
		{"Education", section(sections.Education)},
		{"Detected Skills", r.CandidateSkills.String()},
		{"Certifications", section(sections.Certifications)},
		{"Internships", section(sections.Internships)},
		{"Projects", section(sections.Projects)},
		{"Languages", section(sections.Languages)},
		{"Hobbies", section(sections.Hobbies)},
		{"Job Description Skills", r.JobSkills.String()},
		{"Match Score", fmt.Sprintf("%d / 10", r.Score)},
		{"Justification", r.Justification},
	}
}

// Text renders the report as titled blocks in the order existing consumers expect.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("✅ Resume Screening Result\n")

	for _, f := range r.fields() {
		value := strings.TrimSpace(f.value)
		if value == "" {
			value = NotAvailable
		}
		fmt.Fprintf(&b, "\n%s:\n%s\n", f.title, value)
	}

	return b.String()
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// DumpToTmpFile writes the JSON report to a new temporary file and returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "resume_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
