package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/advisor-labs/readiness/internal/models"
)

// WriteJSON exports the report as an indented JSON document mirroring the
// AssessmentReport entity exactly.
func WriteJSON(report *models.AssessmentReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create reports dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Render produces the paginated plain-text rendering of the report: cover,
// executive summary, per-dimension detail, use-case table, roadmap. One
// string per page.
func Render(report *models.AssessmentReport) []string {
	pages := []string{
		renderCover(report),
		renderSummary(report),
	}
	for _, ds := range report.DimensionScores {
		pages = append(pages, renderDimension(ds))
	}
	pages = append(pages, renderUseCases(report))
	pages = append(pages, renderRoadmap(report))
	return pages
}

// RenderText joins all pages with form-feed separators for single-file
// export.
func RenderText(report *models.AssessmentReport) string {
	return strings.Join(Render(report), "\n\f\n")
}

func renderCover(report *models.AssessmentReport) string {
	var b strings.Builder
	rule := strings.Repeat("=", 64)

	b.WriteString(rule + "\n")
	b.WriteString("AI READINESS ASSESSMENT\n")
	b.WriteString(report.OrganisationName + "\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Report:    %s\n", report.ReportID)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2 January 2006"))
	fmt.Fprintf(&b, "Documents: %d analysed, %d pages\n\n", len(report.DocumentsAnalysed), report.TotalPagesAnalysed)
	fmt.Fprintf(&b, "OVERALL SCORE: %.1f / 10 (%s)\n", report.OverallScore, report.OverallMaturity)

	return b.String()
}

func renderSummary(report *models.AssessmentReport) string {
	var b strings.Builder

	b.WriteString("EXECUTIVE SUMMARY\n\n")
	b.WriteString(report.ExecutiveSummary + "\n")

	if len(report.QuickWins) > 0 {
		b.WriteString("\nQuick Wins\n")
		for _, qw := range report.QuickWins {
			b.WriteString("  + " + qw + "\n")
		}
	}
	if len(report.CriticalBlockers) > 0 {
		b.WriteString("\nCritical Blockers\n")
		for _, cb := range report.CriticalBlockers {
			b.WriteString("  - " + cb + "\n")
		}
	}

	return b.String()
}

func renderDimension(ds models.DimensionScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%.1f / 10  -  %s\n\n", strings.ToUpper(string(ds.Dimension)), ds.Score, ds.MaturityLevel)

	writeList(&b, "Strengths", ds.KeyStrengths)
	writeList(&b, "Gaps", ds.KeyGaps)
	writeList(&b, "Recommendations", ds.Recommendations)

	if len(ds.EvidenceExcerpts) > 0 {
		b.WriteString("Evidence\n")
		for _, ex := range ds.EvidenceExcerpts {
			fmt.Fprintf(&b, "  %q\n", ex)
		}
	}

	return b.String()
}

func renderUseCases(report *models.AssessmentReport) string {
	var b strings.Builder

	b.WriteString("AI USE CASE CANDIDATES\n\n")
	for _, uc := range report.UseCaseCandidates {
		fmt.Fprintf(&b, "#%d  %s\n", uc.PriorityRank, uc.Title)
		fmt.Fprintf(&b, "    %s\n", uc.Description)
		fmt.Fprintf(&b, "    Process: %s | Approach: %s | Complexity: %s | ROI: %s\n",
			uc.BusinessProcess, uc.AIApproach, uc.EstimatedComplexity, uc.EstimatedROIImpact)
		if len(uc.Prerequisites) > 0 {
			fmt.Fprintf(&b, "    Prerequisites: %s\n", strings.Join(uc.Prerequisites, "; "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderRoadmap(report *models.AssessmentReport) string {
	var b strings.Builder

	b.WriteString("PHASED ADOPTION ROADMAP\n\n")
	for _, phase := range report.RoadmapPhases {
		fmt.Fprintf(&b, "Phase %d: %s (%s)\n", phase.Phase, phase.Title, phase.Timeline)
		writeList(&b, "  Focus areas", phase.FocusAreas)
		writeList(&b, "  Initiatives", phase.KeyInitiatives)
		writeList(&b, "  Success metrics", phase.SuccessMetrics)
		writeList(&b, "  Dependencies", phase.Dependencies)
		b.WriteString("\n")
	}

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
}
