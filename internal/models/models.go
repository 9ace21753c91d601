package models

import "time"

// Dimension is one of the six fixed axes of organisational AI readiness.
type Dimension string

const (
	DataReadiness      Dimension = "Data Readiness"
	TechnologyInfra    Dimension = "Technology Infrastructure"
	TalentSkills       Dimension = "Talent & Skills"
	ProcessAutomation  Dimension = "Process & Automation Maturity"
	GovernanceRisk     Dimension = "Governance & Risk Management"
	StrategyLeadership Dimension = "Strategy & Leadership Alignment"
)

// Dimensions lists every dimension in canonical report order.
var Dimensions = []Dimension{
	DataReadiness,
	TechnologyInfra,
	TalentSkills,
	ProcessAutomation,
	GovernanceRisk,
	StrategyLeadership,
}

// DimensionDescriptions holds the definition text included in scoring prompts.
var DimensionDescriptions = map[Dimension]string{
	DataReadiness: "Quality, availability, and governance of data assets. " +
		"Includes data pipelines, labelling, lineage, and accessibility.",
	TechnologyInfra: "Cloud adoption, MLOps maturity, API ecosystems, compute availability, " +
		"and integration capabilities.",
	TalentSkills: "Presence of data scientists, ML engineers, AI product managers, " +
		"and general AI literacy across the organisation.",
	ProcessAutomation: "Degree of existing process automation, RPA adoption, workflow digitisation, " +
		"and appetite for process redesign.",
	GovernanceRisk: "AI policy framework, model risk management, compliance posture, " +
		"bias monitoring, and responsible AI practices.",
	StrategyLeadership: "Executive sponsorship, AI vision clarity, budget commitment, " +
		"and organisational change management capability.",
}

// MaturityLevel is a qualitative bucket derived from a numeric score.
type MaturityLevel struct {
	Low         float64
	High        float64
	Label       string
	Color       string
	Description string
}

// MaturityLevels partitions [0,10]. Buckets are closed-left/open-right except
// the top bucket, which also closes at 10.0.
var MaturityLevels = []MaturityLevel{
	{0.0, 2.0, "Nascent", "red", "AI adoption has not meaningfully begun."},
	{2.0, 4.0, "Emerging", "orange", "Early experiments underway; significant gaps remain."},
	{4.0, 6.0, "Developing", "yellow", "Foundation in place; scaling requires targeted investment."},
	{6.0, 8.0, "Advanced", "green", "Strong capability; focus on optimisation and expansion."},
	{8.0, 10.0, "Leading", "blue", "Industry-leading AI capability; focus on innovation."},
}

// Maturity maps a score in [0,10] to its maturity bucket.
func Maturity(score float64) MaturityLevel {
	for i, lvl := range MaturityLevels {
		if score >= lvl.Low && score < lvl.High {
			return lvl
		}
		// The top bucket closes at its upper edge.
		if i == len(MaturityLevels)-1 && score >= lvl.Low && score <= lvl.High {
			return lvl
		}
	}
	return MaturityLevels[0]
}

// ExtractedDocument is the uniform representation of one source document.
// Immutable once produced.
type ExtractedDocument struct {
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	PageCount int    `json:"page_count"`
	FileType  string `json:"file_type"`
}

// Chunk is a bounded, overlap-linked excerpt of a source document, owned by
// the retrieval index for the lifetime of its session.
type Chunk struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	FileType   string `json:"file_type"`
	ChunkIndex int    `json:"chunk_index"`
	SessionID  string `json:"session_id"`
}

// SearchResult is one retrieval hit, most similar first by ascending distance.
type SearchResult struct {
	Content  string  `json:"content"`
	Source   string  `json:"source"`
	Distance float64 `json:"distance"`
}

// DimensionScore is the structured result of scoring one dimension.
type DimensionScore struct {
	Dimension        Dimension `json:"dimension"`
	Score            float64   `json:"score"`
	MaturityLevel    string    `json:"maturity_level"`
	MaturityColor    string    `json:"maturity_color"`
	KeyStrengths     []string  `json:"key_strengths"`
	KeyGaps          []string  `json:"key_gaps"`
	EvidenceExcerpts []string  `json:"evidence_excerpts"`
	Recommendations  []string  `json:"recommendations"`
}

// AIApproaches is the closed vocabulary a use case's approach must come from.
var AIApproaches = []string{
	"RAG",
	"Fine-tuned classifier",
	"Agentic workflow",
	"Predictive model",
	"Generative AI",
	"Computer vision",
	"NLP pipeline",
}

// UseCaseCandidate is one ranked AI initiative, priority 1 = highest.
type UseCaseCandidate struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	BusinessProcess     string   `json:"business_process"`
	AIApproach          string   `json:"ai_approach"`
	EstimatedComplexity string   `json:"estimated_complexity"`
	EstimatedROIImpact  string   `json:"estimated_roi_impact"`
	Prerequisites       []string `json:"prerequisites"`
	PriorityRank        int      `json:"priority_rank"`
}

// RoadmapPhase is one of the three phases of the adoption roadmap.
type RoadmapPhase struct {
	Phase          int      `json:"phase"`
	Title          string   `json:"title"`
	Timeline       string   `json:"timeline"`
	FocusAreas     []string `json:"focus_areas"`
	KeyInitiatives []string `json:"key_initiatives"`
	SuccessMetrics []string `json:"success_metrics"`
	Dependencies   []string `json:"dependencies"`
}

// AssessmentReport is the aggregate root produced once per session, immutable
// after assembly. It is the sole exported artifact of an assessment.
type AssessmentReport struct {
	ReportID         string    `json:"report_id"`
	OrganisationName string    `json:"organisation_name"`
	GeneratedAt      time.Time `json:"generated_at"`

	DocumentsAnalysed  []string `json:"documents_analysed"`
	TotalPagesAnalysed int      `json:"total_pages_analysed"`

	OverallScore         float64 `json:"overall_score"`
	OverallMaturity      string  `json:"overall_maturity"`
	OverallMaturityColor string  `json:"overall_maturity_color"`
	ExecutiveSummary     string  `json:"executive_summary"`

	DimensionScores   []DimensionScore   `json:"dimension_scores"`
	UseCaseCandidates []UseCaseCandidate `json:"use_case_candidates"`
	RoadmapPhases     []RoadmapPhase     `json:"roadmap_phases"`

	CriticalBlockers []string `json:"critical_blockers"`
	QuickWins        []string `json:"quick_wins"`
}
