package aggregate

import (
	"strings"

	"github.com/vimldn/vimnyc8/internal/domain"
)

type rodentSummary struct {
	section RodentsSection
	failed  []domain.Record
}

func summarizeRodents(recs []domain.Record) rodentSummary {
	sum := rodentSummary{section: RodentsSection{TotalInspections: len(recs), Recent: []RodentItem{}}}
	for _, r := range recs {
		result := strings.ToLower(r.Str("result"))
		switch {
		case containsAny(result, "pass", "no evidence"):
			sum.section.Passed++
		case containsAny(result, "active", "rat", "mice", "evidence"):
			sum.failed = append(sum.failed, r)
		}
	}
	sum.section.Failed = len(sum.failed)
	for i, r := range recs {
		if i >= 10 {
			break
		}
		sum.section.Recent = append(sum.section.Recent, RodentItem{
			Date:   r.Str("inspection_date"),
			Result: r.Str("result"),
			Type:   r.Str("inspection_type"),
		})
	}
	return sum
}

func summarizeBedbugs(recs []domain.Record) BedbugsSection {
	section := BedbugsSection{Reports: len(recs)}
	if len(recs) > 0 {
		section.LastReportDate = recs[0].Str("filing_date")
	}
	return section
}

type restaurantSummary struct {
	section RestaurantsSection
}

func summarizeRestaurants(recs []domain.Record) restaurantSummary {
	camis := map[string]bool{}
	gradePoints := map[string]int{}
	var critical, pest int

	for _, r := range recs {
		id := r.Str("camis")
		camis[id] = true

		if r.Str("critical_flag") == "Critical" ||
			strings.HasPrefix(r.Str("violation_code"), "04") ||
			strings.HasPrefix(r.Str("violation_code"), "02") {
			critical++
		}
		if containsAny(strings.ToLower(r.Str("violation_description")), "mice", "roach", "rat", "pest", "vermin") {
			pest++
		}
		// Score the first grade seen per establishment.
		if _, seen := gradePoints[id]; !seen {
			switch r.Str("grade") {
			case "A":
				gradePoints[id] = 3
			case "B":
				gradePoints[id] = 2
			case "C":
				gradePoints[id] = 1
			default:
				gradePoints[id] = 0
			}
		}
	}

	section := RestaurantsSection{
		NearbyCount:        len(camis),
		CriticalViolations: critical,
		PestViolations:     pest,
	}
	if len(gradePoints) > 0 {
		total := 0
		for _, p := range gradePoints {
			total += p
		}
		avg := float64(total) / float64(len(gradePoints))
		switch {
		case avg >= 2.5:
			section.AvgGrade = "A"
		case avg >= 1.5:
			section.AvgGrade = "B"
		default:
			section.AvgGrade = "C"
		}
	}
	if pest > 0 {
		section.Note = "Pest violations at nearby restaurants - may affect building."
	}
	return restaurantSummary{section: section}
}

func summarizeCoolingTowers(recs []domain.Record) CoolingTowersSection {
	section := CoolingTowersSection{
		HasTower: len(recs) > 0,
		Count:    len(recs),
	}
	if len(recs) > 0 {
		section.LastCertification = recs[0].Str("last_certification_date", "certification_date")
		section.RiskNote = "Building has cooling tower(s). Legionella testing required by NYC law."
	}
	return section
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
