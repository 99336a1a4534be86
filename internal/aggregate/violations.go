package aggregate

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vimldn/vimnyc8/internal/domain"
)

// hpdViolationSummary carries the HPD section plus the intermediate counts
// the scorers need.
type hpdViolationSummary struct {
	stats      HPDViolationStats
	open       []domain.Record
	byCategory map[string]int
	recent     []ViolationItem
}

func summarizeHPDViolations(recs []domain.Record) hpdViolationSummary {
	sum := hpdViolationSummary{byCategory: map[string]int{}}
	byYear := map[string]YearBreakdown{}

	for _, v := range recs {
		open := isHPDViolationOpen(v)
		if open {
			sum.open = append(sum.open, v)
		}
		class := v.Str("class")
		if open {
			switch class {
			case "A":
				sum.stats.ClassA++
			case "B":
				sum.stats.ClassB++
			case "C":
				sum.stats.ClassC++
			}
		}

		// Four-digit year strings compare correctly without parsing.
		if yr := v.Year("inspectiondate", "novissueddate"); yr >= "2010" {
			b := byYear[yr]
			b.Total++
			switch class {
			case "A":
				b.ClassA++
			case "B":
				b.ClassB++
			case "C":
				b.ClassC++
			}
			byYear[yr] = b
		}

		sum.byCategory[domain.Categorize(v.Str("novdescription"))]++
	}

	for i, v := range recs {
		if i >= 40 {
			break
		}
		status := "Closed"
		if strings.Contains(strings.ToLower(v.Str("currentstatus")), "open") {
			status = "Open"
		}
		class := v.Str("class")
		if class == "" {
			class = "A"
		}
		desc := v.Str("novdescription")
		if desc == "" {
			desc = "No description"
		}
		sum.recent = append(sum.recent, ViolationItem{
			ID:          fallbackID(v.Str("violationid")),
			Source:      "HPD",
			Date:        v.Str("inspectiondate", "novissueddate"),
			Class:       class,
			Type:        v.Str("novtype"),
			Description: desc,
			Status:      status,
			Unit:        v.Str("apartment"),
			Story:       v.Str("story"),
			Category:    domain.Categorize(v.Str("novdescription")),
		})
	}

	sum.stats.Total = len(recs)
	sum.stats.Open = len(sum.open)
	sum.stats.ByYear = byYear
	sum.stats.ByCategory = sortedCategoryCounts(sum.byCategory)
	return sum
}

// isHPDViolationOpen treats a violation as open when its status says so, or
// when it has never had a status transition recorded.
func isHPDViolationOpen(v domain.Record) bool {
	if strings.Contains(strings.ToLower(v.Str("currentstatus")), "open") {
		return true
	}
	return v.Str("currentstatusdate") == ""
}

type dobViolationSummary struct {
	stats  DOBViolationStats
	open   []domain.Record
	recent []ViolationItem
}

func summarizeDOBViolations(recs []domain.Record) dobViolationSummary {
	sum := dobViolationSummary{}
	byYear := map[string]int{}

	for _, v := range recs {
		if isDOBViolationOpen(v) {
			sum.open = append(sum.open, v)
		}
		if yr := v.Year("issue_date"); yr != "" {
			byYear[yr]++
		}
	}

	for i, v := range recs {
		if i >= 25 {
			break
		}
		status := "Open"
		if v.Str("disposition_date") != "" {
			status = "Closed"
		}
		desc := v.Str("description", "violation_type_description")
		if desc == "" {
			desc = v.Str("violation_type")
		}
		sum.recent = append(sum.recent, ViolationItem{
			ID:          fallbackID(v.Str("isn_dob_bis_extract")),
			Source:      "DOB",
			Date:        v.Str("issue_date"),
			Type:        v.Str("violation_type"),
			Description: desc,
			Status:      status,
			Category:    domain.Categorize(v.Str("description")),
		})
	}

	sum.stats.Total = len(recs)
	sum.stats.Open = len(sum.open)
	sum.stats.ByYear = byYear
	return sum
}

// isDOBViolationOpen: issued but never dispositioned.
func isDOBViolationOpen(v domain.Record) bool {
	return v.Str("disposition_date") == "" && v.Str("issue_date") != ""
}

func summarizeECB(recs []domain.Record) ECBViolationStats {
	stats := ECBViolationStats{Total: len(recs)}
	for _, v := range recs {
		status := strings.ToLower(v.Str("ecb_violation_status"))
		if !strings.Contains(status, "resolve") && !strings.Contains(status, "dismiss") {
			stats.Open++
		}
		stats.PenaltiesOwed += v.Float("penalty_balance_due")
	}
	return stats
}

// mergeRecentViolations interleaves HPD and DOB items newest-first.
func mergeRecentViolations(hpd, dob []ViolationItem, limit int) []ViolationItem {
	merged := make([]ViolationItem, 0, len(hpd)+len(dob))
	merged = append(merged, hpd...)
	merged = append(merged, dob...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func sortedCategoryCounts(m map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(m))
	for c, n := range m {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// fallbackID keeps list items addressable even when the source omits its
// own identifier.
func fallbackID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
