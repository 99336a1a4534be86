package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vimldn/vimnyc8/internal/domain"
)

func TestSummarizeRodents(t *testing.T) {
	recs := []domain.Record{
		{"result": "Passed", "inspection_date": "2024-02-01", "inspection_type": "Initial"},
		// "No evidence" mentions evidence but is a pass.
		{"result": "Passed (No Evidence of Rodent Activity)", "inspection_date": "2024-01-01"},
		{"result": "Rat Activity", "inspection_date": "2023-12-01"},
		{"result": "Active Rodent Signs", "inspection_date": "2023-11-01"},
		{"result": "Monitoring visit", "inspection_date": "2023-10-01"},
	}

	sum := summarizeRodents(recs)

	assert.Equal(t, 5, sum.section.TotalInspections)
	assert.Equal(t, 2, sum.section.Passed)
	assert.Equal(t, 2, sum.section.Failed)
	assert.Len(t, sum.failed, 2)
	assert.Len(t, sum.section.Recent, 5)
}

func TestSummarizeBedbugs(t *testing.T) {
	section := summarizeBedbugs([]domain.Record{
		{"filing_date": "2024-03-01", "infested_dwelling_unit_count": "2"},
		{"filing_date": "2023-03-01"},
	})

	assert.Equal(t, 2, section.Reports)
	assert.Equal(t, "2024-03-01", section.LastReportDate)

	assert.Zero(t, summarizeBedbugs(nil).Reports)
}

func TestSummarizeRestaurants(t *testing.T) {
	recs := []domain.Record{
		{"camis": "100", "grade": "A", "critical_flag": "Critical", "violation_code": "10F",
			"violation_description": "non-food contact surface improperly constructed"},
		{"camis": "100", "grade": "B", "violation_code": "04L",
			"violation_description": "evidence of mice or live mice present"},
		{"camis": "200", "grade": "C", "violation_code": "08A",
			"violation_description": "facility not vermin proof"},
	}

	sum := summarizeRestaurants(recs)

	assert.Equal(t, 2, sum.section.NearbyCount)
	// Critical flag plus the 04-prefixed code.
	assert.Equal(t, 2, sum.section.CriticalViolations)
	assert.Equal(t, 2, sum.section.PestViolations)
	// First grade per establishment: A (3) and C (1), avg 2.0.
	assert.Equal(t, "B", sum.section.AvgGrade)
	assert.NotEmpty(t, sum.section.Note)
}

func TestSummarizeCoolingTowers(t *testing.T) {
	section := summarizeCoolingTowers([]domain.Record{{"last_certification_date": "2024-05-01"}})
	assert.True(t, section.HasTower)
	assert.Equal(t, 1, section.Count)
	assert.Equal(t, "2024-05-01", section.LastCertification)

	assert.False(t, summarizeCoolingTowers(nil).HasTower)
}

func TestStreetOf(t *testing.T) {
	assert.Equal(t, "FIFTH AVENUE", streetOf("350 FIFTH AVENUE"))
	assert.Equal(t, "", streetOf("BROADWAY"))
	assert.Equal(t, "", streetOf(""))
}
