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
	stageRoadmap  = "roadmap"
	roadmapPhases = 3
)

// RoadmapBuilder produces the 3-phase adoption plan. It depends on the
// synthesiser's blockers, so it must run after synthesis. Maturity-aware
// phase durations are a prompt-level instruction, best-effort only.
type RoadmapBuilder struct {
	generator types.Generator
}

func NewRoadmapBuilder(generator types.Generator) *RoadmapBuilder {
	return &RoadmapBuilder{generator: generator}
}

// Build returns exactly three phases numbered 1..3, sorted by phase number.
func (r *RoadmapBuilder) Build(ctx context.Context, orgName string, overallScore float64, overallMaturity string, scores []models.DimensionScore, useCases []models.UseCaseCandidate, blockers []string) ([]models.RoadmapPhase, error) {
	log.Printf("building adoption roadmap")

	prompt := fmt.Sprintf(roadmapPromptTemplate,
		orgName, overallScore, overallMaturity,
		summariseScores(scores),
		summariseUseCases(useCases),
		summariseBlockers(blockers))

	raw, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &llm.GenerationError{Stage: stageRoadmap, Err: err}
	}

	var parsed []models.RoadmapPhase
	if err := llm.DecodeJSON(stageRoadmap, raw, &parsed); err != nil {
		return nil, err
	}

	if err := validatePhases(parsed); err != nil {
		return nil, &llm.SchemaError{Stage: stageRoadmap, Err: err}
	}

	for i := range parsed {
		if parsed[i].FocusAreas == nil {
			parsed[i].FocusAreas = []string{}
		}
		if parsed[i].KeyInitiatives == nil {
			parsed[i].KeyInitiatives = []string{}
		}
		if parsed[i].SuccessMetrics == nil {
			parsed[i].SuccessMetrics = []string{}
		}
		if parsed[i].Dependencies == nil {
			parsed[i].Dependencies = []string{}
		}
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].Phase < parsed[j].Phase
	})

	return parsed, nil
}

// validatePhases requires phase numbers {1,2,3}, each exactly once.
func validatePhases(phases []models.RoadmapPhase) error {
	if len(phases) != roadmapPhases {
		return fmt.Errorf("expected %d phases, got %d", roadmapPhases, len(phases))
	}
	seen := make(map[int]bool, roadmapPhases)
	for _, p := range phases {
		if p.Phase < 1 || p.Phase > roadmapPhases {
			return fmt.Errorf("phase number %d outside 1..%d", p.Phase, roadmapPhases)
		}
		if seen[p.Phase] {
			return fmt.Errorf("duplicate phase number %d", p.Phase)
		}
		seen[p.Phase] = true
	}
	return nil
}

func summariseUseCases(useCases []models.UseCaseCandidate) string {
	lines := make([]string, 0, len(useCases))
	for _, uc := range useCases {
		lines = append(lines, fmt.Sprintf("- [%d] %s (%s complexity, %s ROI)",
			uc.PriorityRank, uc.Title, uc.EstimatedComplexity, uc.EstimatedROIImpact))
	}
	return strings.Join(lines, "\n")
}

func summariseBlockers(blockers []string) string {
	if len(blockers) == 0 {
		return "- None identified."
	}
	lines := make([]string, 0, len(blockers))
	for _, b := range blockers {
		lines = append(lines, "- "+b)
	}
	return strings.Join(lines, "\n")
}
