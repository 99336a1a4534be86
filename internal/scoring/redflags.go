package scoring

import (
	"fmt"
	"strings"
)

// Red flag severities, in decreasing order of urgency.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// RedFlag is one condition a prospective tenant should know about before
// signing.
type RedFlag struct {
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FlagInputs are the conditions the assessor checks. Zero values flag
// nothing.
type FlagInputs struct {
	HPDClassC      int
	ActiveAEP      bool
	ActiveVacate   bool
	HeatComplaints int // trailing year
	BedbugReports  int
	Shootings      int // nearby, trailing 3y
	FatalShootings int
	TaxLienSale    bool

	FloodZone     string // FEMA zone designation, "" when outside mapped zones
	HurricaneZone string // evacuation zone, "" when outside

	Evictions3Y      int
	OpenLitigations  int
	TotalPenalties   float64
	SpeculationWatch bool
	HPDOpen          int
	CrimeLevel       string
	CrimeTotal       int
	PedKilled        int

	CoolingTowers       int
	ExemptionExpiration string // expiration date of the leading exemption, "" if none
	Has421a             bool
	HasJ51              bool
	NoiseComplaints     int
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Assess evaluates every flag condition in a fixed order: critical flags
// first, then warnings, then informational notes. The order is stable so the
// worst problems always lead the list.
func Assess(in FlagInputs) []RedFlag {
	var flags []RedFlag
	add := func(severity, title, description string) {
		flags = append(flags, RedFlag{Severity: severity, Title: title, Description: description})
	}

	if in.HPDClassC > 0 {
		add(SeverityCritical, fmt.Sprintf("%d Class C Violation%s", in.HPDClassC, plural(in.HPDClassC)),
			"Immediately hazardous. Must be corrected within 24 hours.")
	}
	if in.ActiveAEP {
		add(SeverityCritical, "Alternative Enforcement Program",
			"Building is in HPD's worst buildings program.")
	}
	if in.ActiveVacate {
		add(SeverityCritical, "Vacate Order", "Building has/had a vacate order.")
	}
	if in.HeatComplaints >= 5 {
		add(SeverityCritical, fmt.Sprintf("%d Heat Complaints", in.HeatComplaints),
			"Very high heat/hot water complaints.")
	}
	if in.BedbugReports >= 2 {
		add(SeverityCritical, fmt.Sprintf("%d Bedbug Reports", in.BedbugReports),
			"Multiple bedbug reports filed.")
	}
	if in.Shootings >= 3 {
		add(SeverityCritical, fmt.Sprintf("%d Shootings Nearby", in.Shootings),
			fmt.Sprintf("%d fatal. High violent crime area.", in.FatalShootings))
	}
	if in.TaxLienSale {
		add(SeverityCritical, "Tax Lien Sale",
			"Building sold at tax lien sale - financial distress indicator.")
	}

	if strings.Contains(in.FloodZone, "AE") || strings.Contains(in.FloodZone, "VE") {
		add(SeverityWarning, fmt.Sprintf("Flood Zone %s", in.FloodZone),
			"High-risk FEMA flood zone. Consider flood insurance.")
	}
	if in.Evictions3Y >= 5 {
		add(SeverityWarning, fmt.Sprintf("%d Evictions (3yr)", in.Evictions3Y), "High eviction rate.")
	}
	if in.OpenLitigations >= 2 {
		add(SeverityWarning, fmt.Sprintf("%d Legal Cases", in.OpenLitigations),
			fmt.Sprintf("HPD legal action. $%.0f in penalties.", in.TotalPenalties))
	}
	if in.SpeculationWatch {
		add(SeverityWarning, "Speculation Watch", "Sold at price suggesting speculation.")
	}
	if in.HPDOpen >= 15 {
		add(SeverityWarning, fmt.Sprintf("%d Open Violations", in.HPDOpen), "High unresolved violations.")
	}
	if in.CrimeLevel == CrimeVeryHigh {
		add(SeverityWarning, "High Crime Area", fmt.Sprintf("%d incidents nearby (1yr).", in.CrimeTotal))
	}
	if in.PedKilled > 0 {
		add(SeverityWarning, fmt.Sprintf("%d Pedestrian Fatalities", in.PedKilled),
			"Pedestrian deaths nearby in last 2 years.")
	}

	if in.CoolingTowers > 0 {
		add(SeverityInfo, "Cooling Tower Present",
			fmt.Sprintf("Building has %d cooling tower(s). Legionella testing required.", in.CoolingTowers))
	}
	if in.ExemptionExpiration != "" {
		title := "Tax Exemption"
		if in.Has421a {
			title = "421-a Tax Exemption"
		} else if in.HasJ51 {
			title = "J-51 Tax Exemption"
		}
		add(SeverityInfo, title,
			fmt.Sprintf("Expires: %s. May affect rent stabilization.", in.ExemptionExpiration))
	}
	if in.HurricaneZone != "" {
		add(SeverityInfo, fmt.Sprintf("Hurricane Zone %s", in.HurricaneZone),
			"May require evacuation during hurricanes.")
	}
	if in.NoiseComplaints >= 10 {
		add(SeverityInfo, fmt.Sprintf("%d Noise Complaints", in.NoiseComplaints),
			"Frequent noise complaints in area.")
	}

	return flags
}
