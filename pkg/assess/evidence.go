package assess

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/advisor-labs/readiness/internal/models"
	"github.com/advisor-labs/readiness/internal/types"
)

// NoEvidenceSentinel is what the prompt receives when retrieval comes back
// empty. It is distinguishable from real evidence and, combined with the
// rubric's "score conservatively" instruction, steers sparse sessions low.
const NoEvidenceSentinel = "No specific evidence found for this dimension."

// DimensionQueries maps each dimension to its hand-curated retrieval query.
var DimensionQueries = map[models.Dimension]string{
	models.DataReadiness:      "data quality data governance data pipeline data lake warehouse",
	models.TechnologyInfra:    "cloud infrastructure API microservices DevOps MLOps platform",
	models.TalentSkills:       "data scientist engineer AI skills training team capabilities",
	models.ProcessAutomation:  "automation workflow process efficiency RPA digital transformation",
	models.GovernanceRisk:     "risk compliance policy governance regulation ethics AI policy",
	models.StrategyLeadership: "strategy leadership vision budget executive roadmap priority",
}

// businessProcessQuery is the broad, non-dimension-specific query used when
// identifying use cases.
const businessProcessQuery = "business process operations workflow department"

// EvidenceRetriever turns a session's indexed chunks into bounded evidence
// blocks for the generation prompts.
type EvidenceRetriever struct {
	retriever     types.Retriever
	topK          int
	excerptLength int
}

func NewEvidenceRetriever(retriever types.Retriever, topK, excerptLength int) *EvidenceRetriever {
	if topK <= 0 {
		topK = 8
	}
	if excerptLength <= 0 {
		excerptLength = 600
	}

	return &EvidenceRetriever{
		retriever:     retriever,
		topK:          topK,
		excerptLength: excerptLength,
	}
}

// DimensionEvidence retrieves the top chunks for a dimension's query and
// formats them with source attribution. Retrieval failures degrade to the
// no-evidence sentinel rather than aborting the assessment.
func (er *EvidenceRetriever) DimensionEvidence(ctx context.Context, sessionID string, dim models.Dimension) string {
	query, ok := DimensionQueries[dim]
	if !ok {
		query = string(dim)
	}

	results, err := er.retriever.Query(ctx, sessionID, query, er.topK)
	if err != nil {
		log.Printf("retrieval error for %s: %v", dim, err)
		return NoEvidenceSentinel
	}
	if len(results) == 0 {
		return NoEvidenceSentinel
	}

	excerpts := make([]string, 0, len(results))
	for _, r := range results {
		excerpts = append(excerpts, fmt.Sprintf("[Source: %s]\n%s", r.Source, truncate(r.Content, er.excerptLength)))
	}
	return strings.Join(excerpts, "\n\n---\n\n")
}

// BusinessContext retrieves broad business-process evidence for the use-case
// stage.
func (er *EvidenceRetriever) BusinessContext(ctx context.Context, sessionID string) string {
	results, err := er.retriever.Query(ctx, sessionID, businessProcessQuery, er.topK)
	if err != nil {
		log.Printf("retrieval error for business context: %v", err)
		return "Limited process documentation available."
	}
	if len(results) == 0 {
		return "Limited process documentation available."
	}

	excerpts := make([]string, 0, len(results))
	for _, r := range results {
		excerpts = append(excerpts, truncate(r.Content, er.excerptLength))
	}
	return strings.Join(excerpts, "\n\n")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Never cut inside a multi-byte rune.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
