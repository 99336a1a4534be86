package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/scoring"
)

func TestAssessCleanBuilding(t *testing.T) {
	flags := scoring.Assess(scoring.FlagInputs{})
	assert.Empty(t, flags)
}

func TestAssessSeverityOrdering(t *testing.T) {
	flags := scoring.Assess(scoring.FlagInputs{
		HPDClassC:       2,
		TaxLienSale:     true,
		Evictions3Y:     6,
		CoolingTowers:   1,
		NoiseComplaints: 12,
	})
	require.Len(t, flags, 5)

	// Critical flags always lead, then warnings, then info.
	assert.Equal(t, scoring.SeverityCritical, flags[0].Severity)
	assert.Equal(t, scoring.SeverityCritical, flags[1].Severity)
	assert.Equal(t, scoring.SeverityWarning, flags[2].Severity)
	assert.Equal(t, scoring.SeverityInfo, flags[3].Severity)
	assert.Equal(t, scoring.SeverityInfo, flags[4].Severity)

	assert.Equal(t, "2 Class C Violations", flags[0].Title)
	assert.Equal(t, "Tax Lien Sale", flags[1].Title)
	assert.Equal(t, "6 Evictions (3yr)", flags[2].Title)
}

func TestAssessSingularTitle(t *testing.T) {
	flags := scoring.Assess(scoring.FlagInputs{HPDClassC: 1})
	require.Len(t, flags, 1)
	assert.Equal(t, "1 Class C Violation", flags[0].Title)
	assert.Equal(t, "Immediately hazardous. Must be corrected within 24 hours.", flags[0].Description)
}

func TestAssessThresholds(t *testing.T) {
	// Just below each threshold flags nothing.
	assert.Empty(t, scoring.Assess(scoring.FlagInputs{
		HeatComplaints:  4,
		BedbugReports:   1,
		Shootings:       2,
		Evictions3Y:     4,
		OpenLitigations: 1,
		HPDOpen:         14,
		NoiseComplaints: 9,
	}))

	flags := scoring.Assess(scoring.FlagInputs{
		HeatComplaints:  5,
		BedbugReports:   2,
		Shootings:       3,
		FatalShootings:  1,
		Evictions3Y:     5,
		OpenLitigations: 2,
		TotalPenalties:  1250,
		HPDOpen:         15,
		NoiseComplaints: 10,
	})
	titles := make([]string, len(flags))
	for i, f := range flags {
		titles[i] = f.Title
	}
	assert.Equal(t, []string{
		"5 Heat Complaints",
		"2 Bedbug Reports",
		"3 Shootings Nearby",
		"5 Evictions (3yr)",
		"2 Legal Cases",
		"15 Open Violations",
		"10 Noise Complaints",
	}, titles)

	for _, f := range flags {
		if f.Title == "2 Legal Cases" {
			assert.Equal(t, "HPD legal action. $1250 in penalties.", f.Description)
		}
		if f.Title == "3 Shootings Nearby" {
			assert.Equal(t, "1 fatal. High violent crime area.", f.Description)
		}
	}
}

func TestAssessFloodAndHurricane(t *testing.T) {
	flags := scoring.Assess(scoring.FlagInputs{FloodZone: "AE", HurricaneZone: "3"})
	require.Len(t, flags, 2)

	assert.Equal(t, scoring.SeverityWarning, flags[0].Severity)
	assert.Equal(t, "Flood Zone AE", flags[0].Title)
	assert.Equal(t, scoring.SeverityInfo, flags[1].Severity)
	assert.Equal(t, "Hurricane Zone 3", flags[1].Title)

	// Zone X is not a high-risk designation.
	assert.Empty(t, scoring.Assess(scoring.FlagInputs{FloodZone: "X"}))
}

func TestAssessExemptionTitles(t *testing.T) {
	flags := scoring.Assess(scoring.FlagInputs{ExemptionExpiration: "2029-06-30", Has421a: true})
	require.Len(t, flags, 1)
	assert.Equal(t, "421-a Tax Exemption", flags[0].Title)
	assert.Equal(t, "Expires: 2029-06-30. May affect rent stabilization.", flags[0].Description)

	flags = scoring.Assess(scoring.FlagInputs{ExemptionExpiration: "2027-01-01", HasJ51: true})
	require.Len(t, flags, 1)
	assert.Equal(t, "J-51 Tax Exemption", flags[0].Title)

	flags = scoring.Assess(scoring.FlagInputs{ExemptionExpiration: "2027-01-01"})
	require.Len(t, flags, 1)
	assert.Equal(t, "Tax Exemption", flags[0].Title)
}

func TestAssessCrimeLevelFlag(t *testing.T) {
	flags := scoring.Assess(scoring.FlagInputs{CrimeLevel: scoring.CrimeVeryHigh, CrimeTotal: 340})
	require.Len(t, flags, 1)
	assert.Equal(t, "High Crime Area", flags[0].Title)
	assert.Equal(t, "340 incidents nearby (1yr).", flags[0].Description)

	assert.Empty(t, scoring.Assess(scoring.FlagInputs{CrimeLevel: scoring.CrimeHigh, CrimeTotal: 340}))
}
