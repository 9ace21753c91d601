package assess

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/advisor-labs/readiness/internal/models"
	"github.com/advisor-labs/readiness/internal/types"
	"github.com/advisor-labs/readiness/pkg/llm"
)

const stageDimensionScoring = "dimension scoring"

// dimensionResponse is the strict schema for one scoring call.
type dimensionResponse struct {
	Score            *float64 `json:"score"`
	KeyStrengths     []string `json:"key_strengths"`
	KeyGaps          []string `json:"key_gaps"`
	EvidenceExcerpts []string `json:"evidence_excerpts"`
	Recommendations  []string `json:"recommendations"`
}

// Scorer runs the rubric-anchored scoring call for single dimensions. The
// six dimensions are independent; callers may score them concurrently.
type Scorer struct {
	generator types.Generator
	evidence  *EvidenceRetriever
}

func NewScorer(generator types.Generator, evidence *EvidenceRetriever) *Scorer {
	return &Scorer{
		generator: generator,
		evidence:  evidence,
	}
}

// ScoreDimension retrieves evidence for one dimension, prompts the
// generation service, and parses the structured score. An unparseable or
// schema-violating response is fatal for the dimension.
func (s *Scorer) ScoreDimension(ctx context.Context, sessionID string, dim models.Dimension, additionalContext string) (models.DimensionScore, error) {
	log.Printf("assessing dimension: %s", dim)

	evidence := s.evidence.DimensionEvidence(ctx, sessionID, dim)
	if additionalContext == "" {
		additionalContext = "No additional context provided."
	}

	prompt := fmt.Sprintf(dimensionPromptTemplate,
		dim, models.DimensionDescriptions[dim], evidence, additionalContext)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return models.DimensionScore{}, &llm.GenerationError{Stage: stageDimensionScoring, Err: err}
	}

	var parsed dimensionResponse
	if err := llm.DecodeJSON(stageDimensionScoring, raw, &parsed); err != nil {
		return models.DimensionScore{}, err
	}
	if parsed.Score == nil {
		return models.DimensionScore{}, &llm.SchemaError{
			Stage: stageDimensionScoring,
			Err:   fmt.Errorf("missing required field: score"),
		}
	}
	if *parsed.Score < 0 || *parsed.Score > 10 {
		return models.DimensionScore{}, &llm.SchemaError{
			Stage: stageDimensionScoring,
			Err:   fmt.Errorf("score %.2f outside [0,10]", *parsed.Score),
		}
	}

	score := RoundScore(*parsed.Score)
	maturity := models.Maturity(score)

	return models.DimensionScore{
		Dimension:        dim,
		Score:            score,
		MaturityLevel:    maturity.Label,
		MaturityColor:    maturity.Color,
		KeyStrengths:     clampList(parsed.KeyStrengths, 3),
		KeyGaps:          clampList(parsed.KeyGaps, 4),
		EvidenceExcerpts: clampList(parsed.EvidenceExcerpts, 2),
		Recommendations:  clampList(parsed.Recommendations, 4),
	}, nil
}

// RoundScore rounds to one decimal place.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// clampList bounds a list at max entries, normalising nil to an empty slice
// so reports never carry null fields.
func clampList(items []string, max int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}
