package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisor-labs/readiness/internal/models"
)

func TestMaturity_Buckets(t *testing.T) {
	tests := []struct {
		score float64
		label string
		color string
	}{
		{0.0, "Nascent", "red"},
		{1.5, "Nascent", "red"},
		{2.0, "Emerging", "orange"},
		{3.9, "Emerging", "orange"},
		{4.0, "Developing", "yellow"},
		{5.8, "Developing", "yellow"},
		{6.0, "Advanced", "green"},
		{7.99, "Advanced", "green"},
		{8.0, "Leading", "blue"},
		{9.5, "Leading", "blue"},
		{10.0, "Leading", "blue"},
	}

	for _, tt := range tests {
		lvl := models.Maturity(tt.score)
		assert.Equalf(t, tt.label, lvl.Label, "score %.2f", tt.score)
		assert.Equalf(t, tt.color, lvl.Color, "score %.2f", tt.score)
	}
}

func TestMaturity_EveryScoreHasExactlyOneBucket(t *testing.T) {
	for s := 0.0; s < 10.0; s += 0.1 {
		matches := 0
		for _, lvl := range models.MaturityLevels {
			if s >= lvl.Low && s < lvl.High {
				matches++
			}
		}
		assert.Equalf(t, 1, matches, "score %.1f", s)
	}
}

func TestMaturityLevels_TileZeroToTen(t *testing.T) {
	require.NotEmpty(t, models.MaturityLevels)
	assert.Equal(t, 0.0, models.MaturityLevels[0].Low)
	assert.Equal(t, 10.0, models.MaturityLevels[len(models.MaturityLevels)-1].High)
	for i := 1; i < len(models.MaturityLevels); i++ {
		assert.Equal(t, models.MaturityLevels[i-1].High, models.MaturityLevels[i].Low)
	}
}

func TestDimensions_Canonical(t *testing.T) {
	require.Len(t, models.Dimensions, 6)
	assert.Equal(t, models.DataReadiness, models.Dimensions[0])
	assert.Equal(t, models.StrategyLeadership, models.Dimensions[5])
}

func TestDimensionDescriptions_Exhaustive(t *testing.T) {
	for _, dim := range models.Dimensions {
		desc, ok := models.DimensionDescriptions[dim]
		require.Truef(t, ok, "missing description for %s", dim)
		assert.Greater(t, len(desc), 20)
	}
}

func TestAssessmentReport_Serialisable(t *testing.T) {
	report := models.AssessmentReport{
		ReportID:         "RPT-TEST0001",
		OrganisationName: "Test Corp",
		DocumentsAnalysed: []string{
			"strategy.pdf",
		},
		TotalPagesAnalysed: 10,
		OverallScore:       5.0,
		OverallMaturity:    "Developing",
		ExecutiveSummary:   "Test summary.",
		DimensionScores: []models.DimensionScore{
			{
				Dimension:     models.DataReadiness,
				Score:         5.0,
				MaturityLevel: "Developing",
				MaturityColor: "yellow",
			},
		},
		CriticalBlockers: []string{"Blocker 1"},
		QuickWins:        []string{"Quick win 1"},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Test Corp")
	assert.Contains(t, string(data), `"overall_score":5`)

	var round models.AssessmentReport
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Equal(t, report.ReportID, round.ReportID)
	assert.Equal(t, report.DimensionScores[0].Dimension, round.DimensionScores[0].Dimension)
}
