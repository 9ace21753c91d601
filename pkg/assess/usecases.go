package assess

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/advisor-labs/readiness/internal/models"
	"github.com/advisor-labs/readiness/internal/types"
	"github.com/advisor-labs/readiness/pkg/llm"
)

const (
	stageUseCases = "use case identification"
	maxUseCases   = 5
)

// UseCaseIdentifier ranks candidate AI initiatives from the dimension scores
// and broad business-process evidence. Single generation call.
type UseCaseIdentifier struct {
	generator types.Generator
	evidence  *EvidenceRetriever
}

func NewUseCaseIdentifier(generator types.Generator, evidence *EvidenceRetriever) *UseCaseIdentifier {
	return &UseCaseIdentifier{
		generator: generator,
		evidence:  evidence,
	}
}

// Identify returns exactly five candidates ranked 1..5 (1 = highest),
// sorted by priority. Responses with more candidates are truncated; missing
// ranks are re-derived from response order.
func (u *UseCaseIdentifier) Identify(ctx context.Context, sessionID string, scores []models.DimensionScore, additionalContext string) ([]models.UseCaseCandidate, error) {
	log.Printf("identifying use case candidates")

	businessContext := u.evidence.BusinessContext(ctx, sessionID)
	if additionalContext == "" {
		additionalContext = "General enterprise context."
	}

	prompt := fmt.Sprintf(useCasePromptTemplate,
		businessContext,
		summariseScores(scores),
		additionalContext,
		strings.Join(models.AIApproaches, ", "))

	raw, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &llm.GenerationError{Stage: stageUseCases, Err: err}
	}

	var parsed []models.UseCaseCandidate
	if err := llm.DecodeJSON(stageUseCases, raw, &parsed); err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, &llm.SchemaError{Stage: stageUseCases, Err: fmt.Errorf("empty use case array")}
	}

	if len(parsed) > maxUseCases {
		parsed = parsed[:maxUseCases]
	}

	for i := range parsed {
		if err := validateApproach(parsed[i].AIApproach); err != nil {
			return nil, &llm.SchemaError{Stage: stageUseCases, Err: err}
		}
		if parsed[i].Prerequisites == nil {
			parsed[i].Prerequisites = []string{}
		}
	}

	normaliseRanks(parsed)

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].PriorityRank < parsed[j].PriorityRank
	})

	return parsed, nil
}

// normaliseRanks re-derives priority ranks from response order whenever the
// returned ranks are missing, out of range, or duplicated.
func normaliseRanks(candidates []models.UseCaseCandidate) {
	seen := make(map[int]bool, len(candidates))
	valid := true
	for _, c := range candidates {
		if c.PriorityRank < 1 || c.PriorityRank > maxUseCases || seen[c.PriorityRank] {
			valid = false
			break
		}
		seen[c.PriorityRank] = true
	}
	if valid {
		return
	}
	for i := range candidates {
		candidates[i].PriorityRank = i + 1
	}
}

func validateApproach(approach string) error {
	for _, known := range models.AIApproaches {
		if approach == known {
			return nil
		}
	}
	return fmt.Errorf("unknown AI approach %q", approach)
}

// summariseScores renders the per-dimension score lines shared by several
// prompts.
func summariseScores(scores []models.DimensionScore) string {
	lines := make([]string, 0, len(scores))
	for _, s := range scores {
		lines = append(lines, fmt.Sprintf("- %s: %.1f/10 (%s)", s.Dimension, s.Score, s.MaturityLevel))
	}
	return strings.Join(lines, "\n")
}
