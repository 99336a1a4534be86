package domain

import "strings"

// Violation/complaint categories assigned by keyword matching. First matching
// rule wins, so a description touching several categories lands in whichever
// is checked first ("heat exchanger pest station" is Heat/Hot Water, not
// Pests). That precedence is part of the scoring contract; do not reorder.
const (
	CategoryHeat       = "Heat/Hot Water"
	CategoryPests      = "Pests"
	CategoryLeadPaint  = "Lead Paint"
	CategoryMold       = "Mold"
	CategoryFireSafety = "Fire Safety"
	CategoryElectrical = "Electrical"
	CategoryPlumbing   = "Plumbing"
	CategorySecurity   = "Security"
	CategoryElevator   = "Elevator"
	CategoryGas        = "Gas"
	CategoryStructural = "Structural"
	CategorySanitation = "Sanitation"
	CategoryOther      = "Other"
)

// categoryRules pairs each category with its trigger substrings, in
// precedence order.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{CategoryHeat, []string{"heat", "hot water", "boiler"}},
	{CategoryPests, []string{"roach", "mice", "rat", "pest", "rodent", "bedbug"}},
	{CategoryLeadPaint, []string{"lead", "paint"}},
	{CategoryMold, []string{"mold", "mildew"}},
	{CategoryFireSafety, []string{"fire", "smoke", "detector", "sprinkler"}},
	{CategoryElectrical, []string{"electric", "outlet", "wiring"}},
	{CategoryPlumbing, []string{"plumb", "leak", "water", "toilet", "sink"}},
	{CategorySecurity, []string{"lock", "door", "window", "security"}},
	{CategoryElevator, []string{"elevator"}},
	{CategoryGas, []string{"gas"}},
	{CategoryStructural, []string{"roof", "structural", "wall", "floor", "ceiling"}},
	{CategorySanitation, []string{"garbage", "trash", "sanitary"}},
}

// Categorize maps a free-text violation or complaint description to exactly
// one category, case-insensitively. No match yields Other.
func Categorize(desc string) string {
	d := strings.ToLower(desc)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(d, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// SignalKind is the coarser taxonomy used for trend signals.
type SignalKind string

const (
	SignalHeat  SignalKind = "heat"
	SignalPests SignalKind = "pests"
	SignalNoise SignalKind = "noise"
	SignalOther SignalKind = "other"
)

// Classify311 classifies a 311 service request by its complaint type and
// descriptor. Noise keywords are checked first, then heat, then pests.
func Classify311(complaintType, descriptor string) SignalKind {
	t := strings.ToLower(complaintType)
	d := strings.ToLower(descriptor)
	if strings.Contains(t, "noise") || strings.Contains(d, "noise") || strings.Contains(t, "loud") {
		return SignalNoise
	}
	if strings.Contains(t, "heat") || strings.Contains(t, "hot water") ||
		strings.Contains(d, "heat") || strings.Contains(d, "hot water") {
		return SignalHeat
	}
	if containsAny(t, "rodent", "pest", "roaches", "rats") ||
		containsAny(d, "rodent", "roach", "mice", "rat", "bed bug") {
		return SignalPests
	}
	return SignalOther
}

// ClassifyHPDComplaint classifies an HPD complaint by its type, falling back
// to the major category when the type is empty.
func ClassifyHPDComplaint(complaintType, majorCategory string) SignalKind {
	t := strings.ToLower(complaintType)
	if t == "" {
		t = strings.ToLower(majorCategory)
	}
	if strings.Contains(t, "heat") || strings.Contains(t, "hot water") {
		return SignalHeat
	}
	if containsAny(t, "rodent", "roach", "mice", "rat", "pest", "bedbug") {
		return SignalPests
	}
	return SignalOther
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
