// Package scoring turns aggregated counts into the building health score,
// letter grade, per-category scores, and risk level. All functions are pure;
// the constants are the scoring contract and must not drift.
package scoring

import (
	"fmt"
	"math"
)

// Inputs are the building-level counts the composite score is computed from.
// Violation counts are open violations only; windowed counts name their
// window in the field.
type Inputs struct {
	HPDClassA int // open HPD violations, hazard class A (non-hazardous)
	HPDClassB int // hazard class B (hazardous)
	HPDClassC int // hazard class C (immediately hazardous)

	HPDOpenViolations int
	DOBOpenViolations int
	ECBOpenViolations int

	HeatComplaints    int // heat/hot water complaints, trailing year
	HPDComplaintsYear int // all HPD complaints, trailing year

	OpenLitigations  int
	TotalLitigations int

	Evictions3Y    int
	RodentFailures int
	BedbugReports  int

	ActiveAEP        bool
	SpeculationWatch bool
	ActiveVacate     bool
	ERPCharges       float64 // emergency repair charges, dollars
}

// penalty applies a linear per-unit rate up to a cap, so a single chronic
// problem cannot zero the score on its own.
func penalty(n int, rate, cap float64) float64 {
	p := float64(n) * rate
	if p > cap {
		return cap
	}
	return p
}

func clampScore(s float64) int {
	r := math.Round(s)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}

// BuildingScore computes the 0-100 composite score. Every input at zero
// yields exactly 100.
func BuildingScore(in Inputs) int {
	s := 100.0
	s -= penalty(in.HPDClassC, 15, 45)
	s -= penalty(in.HPDClassB, 5, 25)
	s -= penalty(in.HPDClassA, 1, 10)
	s -= penalty(in.HPDOpenViolations, 1, 10)
	s -= penalty(in.DOBOpenViolations, 3, 15)
	s -= penalty(in.ECBOpenViolations, 2, 10)
	s -= penalty(in.HeatComplaints, 4, 16)
	s -= penalty(in.HPDComplaintsYear, 0.5, 8)
	s -= penalty(in.OpenLitigations, 6, 18)
	s -= penalty(in.TotalLitigations, 1, 10)
	s -= penalty(in.Evictions3Y, 4, 12)
	s -= penalty(in.RodentFailures, 3, 9)
	s -= penalty(in.BedbugReports, 5, 15)

	if in.ActiveAEP {
		s -= 20
	}
	if in.SpeculationWatch {
		s -= 8
	}
	if in.ActiveVacate {
		s -= 15
	}
	switch {
	case in.ERPCharges > 10000:
		s -= 10
	case in.ERPCharges > 5000:
		s -= 5
	}
	return clampScore(s)
}

// Grade is the letter grade with its plain-language label.
type Grade struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
}

// GradeFor maps a composite score to its grade band.
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return Grade{"A", "Excellent"}
	case score >= 80:
		return Grade{"B", "Good"}
	case score >= 70:
		return Grade{"C", "Fair"}
	case score >= 55:
		return Grade{"D", "Poor"}
	default:
		return Grade{"F", "Critical"}
	}
}

// Risk levels derived from the composite score.
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// RiskFor maps a composite score to a risk level.
func RiskFor(score int) string {
	switch {
	case score < 40:
		return RiskCritical
	case score < 60:
		return RiskHigh
	case score < 80:
		return RiskModerate
	default:
		return RiskLow
	}
}

// CrimeScore scores area crime on a log scale: doubling incident counts
// costs far less than the first handful, with a linear surcharge for violent
// incidents.
func CrimeScore(total, violent int) int {
	s := 100 - math.Log10(float64(total)+1)*25 - float64(violent)*3
	if s < 0 {
		return 0
	}
	return int(math.Round(s))
}

// Crime levels derived from the crime score.
const (
	CrimeLow      = "LOW"
	CrimeModerate = "MODERATE"
	CrimeHigh     = "HIGH"
	CrimeVeryHigh = "VERY HIGH"
)

// CrimeLevelFor maps a crime score to its band.
func CrimeLevelFor(score int) string {
	switch {
	case score >= 70:
		return CrimeLow
	case score >= 50:
		return CrimeModerate
	case score >= 30:
		return CrimeHigh
	default:
		return CrimeVeryHigh
	}
}

// ViolentCrimeScore scores nearby shooting incidents.
func ViolentCrimeScore(shootings, fatal int) int {
	s := 100 - shootings*15 - fatal*25
	if s < 0 {
		return 0
	}
	return s
}

// PedestrianSafetyScore scores nearby vehicle crashes, weighted by
// pedestrian injuries and deaths.
func PedestrianSafetyScore(crashes, pedInjured, pedKilled int) int {
	s := 100 - math.Log10(float64(crashes)+1)*20 - float64(pedInjured)*2 - float64(pedKilled)*20
	if s < 0 {
		return 0
	}
	return int(math.Round(s))
}

// TransitScore rewards subway entrances heavily and bike stations lightly.
func TransitScore(subwayEntrances, bikeStations int) int {
	s := subwayEntrances*15 + bikeStations*3
	if s > 100 {
		return 100
	}
	return s
}

// PestScore scores pest pressure from inspections and nearby restaurant
// violations.
func PestScore(rodentFailures, bedbugs, restaurantPest int) int {
	s := 100 - rodentFailures*10 - bedbugs*15 - restaurantPest*3
	if s < 0 {
		return 0
	}
	return s
}

// FinancialHealthScore scores distress signals: tax lien sales and unpaid
// emergency repair charges.
func FinancialHealthScore(onLienSale bool, lienCount int, erpCharges float64) int {
	s := 100
	if onLienSale {
		s -= 30
	}
	s -= lienCount * 10
	switch {
	case erpCharges > 10000:
		s -= 20
	case erpCharges > 5000:
		s -= 10
	}
	if s < 0 {
		return 0
	}
	return s
}

// NeighborhoodScore blends area signals into one 0-100 number.
func NeighborhoodScore(crimeScore, transitScore, schools, parks int, inFloodZone bool) int {
	flood := 100.0
	if inFloodZone {
		flood = 50.0
	}
	s := float64(crimeScore)*0.3 +
		math.Min(float64(transitScore), 100)*0.25 +
		math.Min(float64(schools)*10, 100)*0.15 +
		math.Min(float64(parks)*15, 100)*0.15 +
		flood*0.15
	return int(math.Round(s))
}

// SafetyLevelFor maps a shooting or traffic safety score to a band.
func SafetyLevelFor(score int) string {
	switch {
	case score >= 80:
		return "LOW"
	case score >= 60:
		return "MODERATE"
	case score >= 40:
		return "HIGH"
	default:
		return "VERY HIGH"
	}
}

// PestLevelFor maps a pest score to a band.
func PestLevelFor(score int) string {
	switch {
	case score >= 80:
		return "LOW"
	case score >= 60:
		return "MODERATE"
	case score >= 40:
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// FinancialLevelFor maps a financial health score to a band.
func FinancialLevelFor(score int) string {
	switch {
	case score >= 80:
		return "HEALTHY"
	case score >= 60:
		return "FAIR"
	case score >= 40:
		return "CONCERNING"
	default:
		return "DISTRESSED"
	}
}

// NoiseLevelFor maps a noise complaint count to a band.
func NoiseLevelFor(count int) string {
	switch {
	case count >= 15:
		return "HIGH"
	case count >= 5:
		return "MODERATE"
	default:
		return "LOW"
	}
}

// CategoryInputs extends the composite-score inputs with the area and
// categorized counts the per-category breakdown needs.
type CategoryInputs struct {
	Core Inputs

	HeatViolations int // HPD violations categorized heat/hot water
	FireViolations int // HPD violations categorized fire safety

	DOBSafetyViolations int
	RestaurantPest      int
	NoiseComplaints     int // 311 noise service requests

	CrimeTotal     int
	CrimeViolent   int
	Shootings      int
	FatalShootings int
	Crashes        int
	PedInjured     int
	PedKilled      int
	SubwayCount    int
	BikeStations   int
	TaxLienSale    bool
	TaxLienCount   int
}

// CategoryScore is one named slice of the breakdown.
type CategoryScore struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Detail string `json:"detail"`
}

func floorZero(s int) int {
	if s < 0 {
		return 0
	}
	return s
}

// CategoryScores computes the twelve-category breakdown in a fixed order.
func CategoryScores(in CategoryInputs) []CategoryScore {
	c := in.Core
	return []CategoryScore{
		{"Heat Reliability", floorZero(100 - c.HeatComplaints*12 - in.HeatViolations*3),
			fmt.Sprintf("%d heat complaints/yr", c.HeatComplaints)},
		{"Pest Control", PestScore(c.RodentFailures, c.BedbugReports, in.RestaurantPest),
			fmt.Sprintf("%d rodent fails, %d bedbugs, %d restaurant pests", c.RodentFailures, c.BedbugReports, in.RestaurantPest)},
		{"Maintenance", floorZero(100 - c.HPDOpenViolations*3 - c.DOBOpenViolations*4),
			fmt.Sprintf("%d open violations", c.HPDOpenViolations+c.DOBOpenViolations)},
		{"Safety", floorZero(100 - c.HPDClassC*20 - in.FireViolations*10 - in.DOBSafetyViolations*8),
			fmt.Sprintf("%d Class C violations", c.HPDClassC)},
		{"Landlord", floorZero(100 - c.OpenLitigations*15 - int(math.Min(c.ERPCharges/1000, 20))),
			fmt.Sprintf("%d legal cases", c.OpenLitigations)},
		{"Stability", floorZero(100 - c.Evictions3Y*12 - boolPenalty(c.SpeculationWatch, 15)),
			fmt.Sprintf("%d evictions (3yr)", c.Evictions3Y)},
		{"Crime", CrimeScore(in.CrimeTotal, in.CrimeViolent),
			fmt.Sprintf("%d incidents nearby", in.CrimeTotal)},
		{"Violent Crime", ViolentCrimeScore(in.Shootings, in.FatalShootings),
			fmt.Sprintf("%d shootings (3yr), %d fatal", in.Shootings, in.FatalShootings)},
		{"Pedestrian Safety", PedestrianSafetyScore(in.Crashes, in.PedInjured, in.PedKilled),
			fmt.Sprintf("%d crashes, %d ped injuries", in.Crashes, in.PedInjured)},
		{"Transit", TransitScore(in.SubwayCount, in.BikeStations),
			fmt.Sprintf("%d subways nearby", in.SubwayCount)},
		{"Financial Health", FinancialHealthScore(in.TaxLienSale, in.TaxLienCount, c.ERPCharges),
			lienDetail(in.TaxLienSale, in.TaxLienCount)},
		{"Noise", floorZero(100 - in.NoiseComplaints*3),
			fmt.Sprintf("%d noise complaints (3yr)", in.NoiseComplaints)},
	}
}

func lienDetail(hasLien bool, count int) string {
	if hasLien {
		return fmt.Sprintf("%d tax liens", count)
	}
	return "No tax liens"
}

func boolPenalty(b bool, n int) int {
	if b {
		return n
	}
	return 0
}

// CategoryRisk is a category score restated as a risk level.
type CategoryRisk struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Detail   string `json:"detail"`
	Level    string `json:"level"`
}

// RiskAssessment restates each category score as a risk level.
func RiskAssessment(scores []CategoryScore) []CategoryRisk {
	out := make([]CategoryRisk, 0, len(scores))
	for _, s := range scores {
		out = append(out, CategoryRisk{Category: s.Name, Score: s.Score, Detail: s.Detail, Level: RiskFor(s.Score)})
	}
	return out
}
