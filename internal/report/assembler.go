package report

import (
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/sections"
	"github.com/spigell/resume-screener/internal/skills"
	"github.com/spigell/resume-screener/internal/textnorm"
)

const previewLength = 120

// Deps are the read-only tables and collaborators shared by every request.
type Deps struct {
	Table      sections.Table
	Vocabulary *skills.Vocabulary
	Scorer     *scoring.Scorer
	Logger     *zap.Logger
}

// Assembler runs normalization, segmentation, skill extraction, name guessing
// and scoring for one request at a time. It holds no per-request state and is
// safe for concurrent use.
type Assembler struct {
	normalizer *textnorm.Normalizer
	segmenter  *sections.Segmenter
	vocabulary *skills.Vocabulary
	scorer     *scoring.Scorer
	logger     *zap.Logger
}

// NewAssembler fills missing deps with the built-in tables and a randomized scorer.
func NewAssembler(deps Deps) *Assembler {
	table := deps.Table
	if len(table) == 0 {
		table = sections.DefaultTable()
	}

	vocabulary := deps.Vocabulary
	if vocabulary == nil {
		vocabulary = skills.MustDefault()
	}

	scorer := deps.Scorer
	if scorer == nil {
		scorer = scoring.New(nil)
	}

	return &Assembler{
		normalizer: textnorm.New(table.Keywords()),
		segmenter:  sections.NewSegmenter(table),
		vocabulary: vocabulary,
		scorer:     scorer,
		logger:     logger.WithFields(deps.Logger),
	}
}

// Assemble builds the report. Any input is valid: empty text yields no
// sections, no skills and a placeholder name.
func (a *Assembler) Assemble(rawText, jobDescription string) *Report {
	return a.AssembleWithLogger(a.logger, rawText, jobDescription)
}

// AssembleWithLogger is Assemble with a request-scoped logger.
func (a *Assembler) AssembleWithLogger(log *zap.Logger, rawText, jobDescription string) *Report {
	log = logger.WithFields(log)

	normalized, steps := a.normalizer.NormalizeWithTrace(rawText)
	for _, step := range steps {
		log.Debug("normalization rule",
			zap.String("name", step.Name),
			zap.Int("initial", step.Initial),
			zap.Int("result", step.Result),
		)
	}

	name := candidate.GuessName(normalized)
	if name == "" {
		name = NotAvailable
	}

	candidateSkills := a.vocabulary.Extract(normalized)
	jobSkills := a.vocabulary.Extract(jobDescription)
	result := a.scorer.Score(candidateSkills, jobSkills)

	r := &Report{
		Name:            name,
		Sections:        a.segmenter.Segment(normalized),
		CandidateSkills: candidateSkills,
		JobSkills:       jobSkills,
		Score:           result.Score,
		Overlap:         result.Overlap,
		Total:           result.Total,
		Fallback:        result.Fallback,
		Justification:   result.Justification,
	}

	log.Debug("screening completed",
		zap.String("text_preview", logger.TruncateForLog(normalized, previewLength)),
		zap.String("name", r.Name),
		zap.Int("sections", len(r.Sections)),
		zap.Strings("candidate_skills", r.CandidateSkills),
		zap.Strings("job_skills", r.JobSkills),
		zap.Int("score", r.Score),
		zap.Bool("fallback", r.Fallback),
	)

	return r
}
