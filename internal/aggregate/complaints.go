package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
)

type hpdComplaintSummary struct {
	stats          HPDComplaintStats
	recentYear     []domain.Record
	heatComplaints int
	byCategory     map[string]int
	recent         []ComplaintItem
}

func summarizeHPDComplaints(recs []domain.Record, yearAgo time.Time) hpdComplaintSummary {
	sum := hpdComplaintSummary{byCategory: map[string]int{}}
	byYear := map[string]int{}

	for _, c := range recs {
		if d, ok := c.Date("receiveddate"); ok && !d.Before(yearAgo) {
			sum.recentYear = append(sum.recentYear, c)
			kind := strings.ToLower(c.Str("complainttype", "majorcategory"))
			if strings.Contains(kind, "heat") || strings.Contains(kind, "hot water") {
				sum.heatComplaints++
			}
		}
		sum.byCategory[domain.Categorize(c.Str("complainttype", "majorcategory"))]++
		if yr := c.Year("receiveddate"); yr != "" {
			byYear[yr]++
		}
	}

	for i, c := range recs {
		if i >= 25 {
			break
		}
		kind := c.Str("complainttype", "majorcategory")
		if kind == "" {
			kind = "Unknown"
		}
		status := c.Str("status")
		if status == "" {
			status = "Unknown"
		}
		sum.recent = append(sum.recent, ComplaintItem{
			ID:     fallbackID(c.Str("complaintid")),
			Source: "HPD",
			Date:   c.Str("receiveddate"),
			Type:   kind,
			Status: status,
			Unit:   c.Str("apartment"),
		})
	}

	sum.stats = HPDComplaintStats{
		Total:        len(recs),
		RecentYear:   len(sum.recentYear),
		HeatHotWater: sum.heatComplaints,
		ByYear:       byYear,
	}
	return sum
}

type dobComplaintSummary struct {
	stats  DOBComplaintStats
	recent []ComplaintItem
}

func summarizeDOBComplaints(recs []domain.Record, yearAgo time.Time) dobComplaintSummary {
	sum := dobComplaintSummary{stats: DOBComplaintStats{Total: len(recs)}}
	for _, c := range recs {
		if d, ok := c.Date("date_entered"); ok && !d.Before(yearAgo) {
			sum.stats.RecentYear++
		}
	}
	for i, c := range recs {
		if i >= 15 {
			break
		}
		kind := c.Str("complaint_category")
		if kind == "" {
			kind = "DOB"
		}
		status := c.Str("status")
		if status == "" {
			status = "Unknown"
		}
		sum.recent = append(sum.recent, ComplaintItem{
			ID:     fallbackID(c.Str("complaint_number")),
			Source: "DOB",
			Date:   c.Str("date_entered"),
			Type:   kind,
			Status: status,
		})
	}
	return sum
}

type sr311Summary struct {
	stats  SR311Stats
	recent []ComplaintItem
	noise  NoiseSection
}

func summarize311(recs []domain.Record) sr311Summary {
	sum := sr311Summary{stats: SR311Stats{Total: len(recs), ByType: map[string]int{}}}

	noiseByType := map[string]int{}
	for _, r := range recs {
		t := r.Str("complaint_type")
		if t == "" {
			t = "Other"
		}
		sum.stats.ByType[t]++

		if strings.Contains(strings.ToLower(r.Str("complaint_type")), "noise") {
			sum.noise.Total++
			nt := r.Str("descriptor", "complaint_type")
			if nt == "" {
				nt = "Other"
			}
			noiseByType[nt]++
		}
	}

	for i, r := range recs {
		if i >= 15 {
			break
		}
		sum.recent = append(sum.recent, ComplaintItem{
			ID:         fallbackID(r.Str("unique_key")),
			Source:     "311",
			Date:       r.Str("created_date"),
			Type:       r.Str("complaint_type"),
			Descriptor: r.Str("descriptor"),
			Status:     r.Str("status"),
		})
	}

	sum.noise.ByType = topTypeCounts(noiseByType, 5)
	return sum
}

// complaintBreakdown turns category counts into top-8 shares of the total.
func complaintBreakdown(byCategory map[string]int) []CategoryShare {
	total := 0
	for _, n := range byCategory {
		total += n
	}
	counts := sortedCategoryCounts(byCategory)
	if len(counts) > 8 {
		counts = counts[:8]
	}
	out := make([]CategoryShare, 0, len(counts))
	for _, c := range counts {
		pct := 0
		if total > 0 {
			pct = int(float64(c.Count)/float64(total)*100 + 0.5)
		}
		out = append(out, CategoryShare{Category: c.Category, Count: c.Count, Pct: pct})
	}
	return out
}

// mergeRecentComplaints interleaves HPD, DOB, and 311 items newest-first.
func mergeRecentComplaints(limit int, lists ...[]ComplaintItem) []ComplaintItem {
	var merged []ComplaintItem
	for _, l := range lists {
		merged = append(merged, l...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func topTypeCounts(m map[string]int, limit int) []TypeCount {
	out := make([]TypeCount, 0, len(m))
	for t, n := range m {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
