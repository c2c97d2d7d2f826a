// Package scoring turns candidate and job-description skill overlap into a
// bounded suitability score.
package scoring

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/spigell/resume-screener/internal/skills"
)

const (
	MaxScore = 10

	// FallbackMin and FallbackMax bound the neutral score used when overlap is zero.
	FallbackMin = 4
	FallbackMax = 7

	// HighlySuitableAbove is the score a candidate must exceed to be labeled highly suitable.
	HighlySuitableAbove = 7
)

// ErrInvariant marks programmer errors. It is only ever raised through panic.
var ErrInvariant = errors.New("invariant violation")

// Fallback draws the score reported instead of zero.
type Fallback func() int

// RandomFallback draws uniformly from [FallbackMin, FallbackMax] using src,
// or the global generator when src is nil. The returned Fallback is safe for
// concurrent use.
func RandomFallback(src rand.Source) Fallback {
	if src == nil {
		return func() int { return FallbackMin + rand.IntN(FallbackMax-FallbackMin+1) }
	}

	var mu sync.Mutex
	r := rand.New(src)
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return FallbackMin + r.IntN(FallbackMax-FallbackMin+1)
	}
}

// FixedFallback always returns n.
func FixedFallback(n int) Fallback {
	return func() int { return n }
}

// Result is the outcome of comparing two skill sets.
type Result struct {
	Score         int    `json:"score"`
	Overlap       int    `json:"overlap"`
	Total         int    `json:"total"`
	Fallback      bool   `json:"fallback"`
	Justification string `json:"justification"`
}

type Scorer struct {
	fallback Fallback
}

// New returns a scorer. A nil fallback uses RandomFallback(nil).
func New(fallback Fallback) *Scorer {
	if fallback == nil {
		fallback = RandomFallback(nil)
	}
	return &Scorer{fallback: fallback}
}

// Score computes floor(10 * overlap / total), where total is the number of
// job skills floored at 1. A zero is replaced by the fallback draw.
func (s *Scorer) Score(candidate, job skills.Set) Result {
	total := max(job.Len(), 1)
	overlap := candidate.Intersect(job).Len()

	if overlap > total {
		panic(fmt.Errorf("%w: overlap %d exceeds total %d", ErrInvariant, overlap, total))
	}

	res := Result{
		Score:   MaxScore * overlap / total,
		Overlap: overlap,
		Total:   total,
	}

	if res.Score == 0 {
		res.Score = s.fallback()
		res.Fallback = true
	}

	if res.Score < 0 || res.Score > MaxScore {
		panic(fmt.Errorf("%w: score %d outside [0, %d]", ErrInvariant, res.Score, MaxScore))
	}

	res.Justification = Justify(res.Overlap, res.Total, res.Score)

	return res
}

// Justify describes the match. The label follows the final score, including
// a drawn fallback score.
func Justify(overlap, total, score int) string {
	label := "moderately suitable"
	if score > HighlySuitableAbove {
		label = "highly suitable"
	}
	return fmt.Sprintf("Matched %d of %d required skills. Candidate is %s.", overlap, total, label)
}
