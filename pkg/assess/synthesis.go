package assess

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/advisor-labs/readiness/internal/models"
	"github.com/advisor-labs/readiness/internal/types"
	"github.com/advisor-labs/readiness/pkg/llm"
)

const stageSynthesis = "synthesis"

// Synthesis is the executive-level condensation of the dimension scores.
// Empty lists are acceptable for sparse-evidence sessions; missing keys
// decode to empty slices, never nil.
type Synthesis struct {
	ExecutiveSummary string   `json:"executive_summary"`
	CriticalBlockers []string `json:"critical_blockers"`
	QuickWins        []string `json:"quick_wins"`
}

// Synthesizer produces the executive summary, blockers, and quick wins from
// the aggregate scores. Single generation call.
type Synthesizer struct {
	generator types.Generator
}

func NewSynthesizer(generator types.Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

func (s *Synthesizer) Synthesise(ctx context.Context, orgName string, overallScore float64, overallMaturity string, scores []models.DimensionScore) (Synthesis, error) {
	log.Printf("synthesising executive summary")

	prompt := fmt.Sprintf(synthesisPromptTemplate,
		orgName, overallScore, overallMaturity, condenseScores(scores))

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Synthesis{}, &llm.GenerationError{Stage: stageSynthesis, Err: err}
	}

	var parsed Synthesis
	if err := llm.DecodeJSON(stageSynthesis, raw, &parsed); err != nil {
		return Synthesis{}, err
	}

	if parsed.CriticalBlockers == nil {
		parsed.CriticalBlockers = []string{}
	}
	if parsed.QuickWins == nil {
		parsed.QuickWins = []string{}
	}

	return parsed, nil
}

// condenseScores keeps the top-2 strengths and gaps per dimension to bound
// prompt size.
func condenseScores(scores []models.DimensionScore) string {
	lines := make([]string, 0, len(scores))
	for _, s := range scores {
		lines = append(lines, fmt.Sprintf("- %s: %.1f/10 - Strengths: %s. Gaps: %s.",
			s.Dimension, s.Score,
			strings.Join(topN(s.KeyStrengths, 2), ", "),
			strings.Join(topN(s.KeyGaps, 2), ", ")))
	}
	return strings.Join(lines, "\n")
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
