package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/sections"
	"github.com/spigell/resume-screener/internal/skills"
)

func readConfig(t *testing.T, yaml string) (*Config, error) {
	t.Helper()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))

	return getConfig(v)
}

func TestGetConfigEmpty(t *testing.T) {
	config, err := readConfig(t, "")
	require.NoError(t, err)

	table, err := config.table()
	require.NoError(t, err)
	assert.Equal(t, sections.DefaultTable(), table)

	vocabulary, err := config.vocabulary()
	require.NoError(t, err)
	assert.Equal(t, skills.DefaultTerms(), vocabulary.Terms())

	assert.Nil(t, config.Fallback.Seed)
}

func TestGetConfigFull(t *testing.T) {
	config, err := readConfig(t, `
output: json
sections:
  - key: skills
    keywords: "stack, tools"
  - key: education
    keywords: [school]
skills: "Go, Rust , python"
fallback:
  seed: 42
serve:
  address: 0.0.0.0:9090
  max-upload-bytes: 1024
`)
	require.NoError(t, err)

	assert.Equal(t, outputJSON, config.Output)
	assert.Equal(t, []SectionConfig{
		{Key: "skills", Keywords: []string{"stack", " tools"}},
		{Key: "education", Keywords: []string{"school"}},
	}, config.Sections)
	assert.Equal(t, []string{"Go", " Rust ", " python"}, config.Skills)
	require.NotNil(t, config.Fallback.Seed)
	assert.Equal(t, uint64(42), *config.Fallback.Seed)
	assert.Equal(t, "0.0.0.0:9090", config.serverConfig().Address)
	assert.Equal(t, int64(1024), config.serverConfig().MaxUploadBytes)

	assembler, err := newAssembler(config, zap.NewNop())
	require.NoError(t, err)

	r := assembler.Assemble("Ann Lee\ntools\ngo and rust", "rust")
	assert.Equal(t, sections.Map{sections.Skills: "go and rust"}, r.Sections)
	assert.Equal(t, skills.Set{"go", "rust"}, r.CandidateSkills)
	assert.Equal(t, 10, r.Score)
}

func TestGetConfigInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown output", yaml: "output: yaml"},
		{name: "bad address", yaml: "serve:\n  address: not an address"},
		{name: "negative upload limit", yaml: "serve:\n  max-upload-bytes: -1"},
		{name: "empty skill", yaml: "skills: [go, '']"},
		{name: "section without keywords", yaml: "sections:\n  - key: skills"},
		{name: "section without key", yaml: "sections:\n  - keywords: [stack]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := readConfig(t, tt.yaml)
			require.Error(t, err)
		})
	}
}

func TestNewAssemblerRejectsUnknownSection(t *testing.T) {
	config, err := readConfig(t, "sections:\n  - key: awards\n    keywords: [awards]")
	require.NoError(t, err)

	_, err = newAssembler(config, nil)
	require.ErrorContains(t, err, "building section table")
}

func TestSeededFallbackIsReproducible(t *testing.T) {
	seed := uint64(7)
	config := &Config{Fallback: FallbackConfig{Seed: &seed}}

	first, second := config.fallback(), config.fallback()
	for range 20 {
		a, b := first(), second()
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, scoring.FallbackMin)
		assert.LessOrEqual(t, a, scoring.FallbackMax)
	}
}

func newTestReport() *report.Report {
	a := report.NewAssembler(report.Deps{Scorer: scoring.New(scoring.FixedFallback(5))})
	return a.Assemble("EDUCATION\nB.Tech CS\nSKILLS\nPython, SQL", "python")
}

func TestRender(t *testing.T) {
	r := newTestReport()

	var text bytes.Buffer
	require.NoError(t, render(&text, r, ""))
	assert.Equal(t, r.Text(), text.String())

	var out bytes.Buffer
	require.NoError(t, render(&out, r, outputJSON))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, float64(10), decoded["score"])

	require.Error(t, render(&out, r, "xml"))
}

func TestHandleAction(t *testing.T) {
	r := newTestReport()
	log := zap.NewNop()

	var out bytes.Buffer
	require.NoError(t, handleAction(PromptText, &out, log, r))
	assert.Contains(t, out.String(), "Match Score:\n10 / 10")

	require.NoError(t, handleAction(PromptDump, &out, log, r))

	assert.ErrorIs(t, handleAction(PromptExit, &out, log, r), errExit)
	assert.ErrorContains(t, handleAction("bogus", &out, log, r), "invalid action")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(os.Stdout) })

	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "resume-screener version: unknown\n", out.String())
}
