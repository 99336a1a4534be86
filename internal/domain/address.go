package domain

import (
	"regexp"
	"strings"

	"github.com/vimldn/vimnyc8/internal/refdata"
)

// streetAbbrevs maps whole words in a street name to the abbreviated forms
// the property datasets use, so "123 EAST 45TH STREET" and "123 e 45th st"
// normalize identically for fuzzy matching.
var streetAbbrevs = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\bstreet\b`), "st"},
	{regexp.MustCompile(`\bavenue\b`), "ave"},
	{regexp.MustCompile(`\bplace\b`), "pl"},
	{regexp.MustCompile(`\bboulevard\b`), "blvd"},
	{regexp.MustCompile(`\broad\b`), "rd"},
	{regexp.MustCompile(`\bdrive\b`), "dr"},
	{regexp.MustCompile(`\beast\b`), "e"},
	{regexp.MustCompile(`\bwest\b`), "w"},
	{regexp.MustCompile(`\bnorth\b`), "n"},
	{regexp.MustCompile(`\bsouth\b`), "s"},
}

var nonStreetChars = regexp.MustCompile(`[^a-z0-9\s]`)

// NormalizeStreet lowercases a street name, abbreviates common words and
// directionals, and strips punctuation.
func NormalizeStreet(street string) string {
	s := strings.ToLower(street)
	for _, a := range streetAbbrevs {
		s = a.re.ReplaceAllString(s, a.repl)
	}
	return strings.TrimSpace(nonStreetChars.ReplaceAllString(s, ""))
}

var houseNumberRe = regexp.MustCompile(`^(\d+[-\d]*)\s+(.+)$`)

// ParsedAddress is a user-entered address split into matchable components.
type ParsedAddress struct {
	HouseNumber string
	StreetName  string
	Borough     string // 1-digit code, "" when not recognized
}

// ParseAddress splits free-form input into house number, street name, and an
// optional borough code recognized from a trailing borough name.
func ParseAddress(input string) ParsedAddress {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	out := ParsedAddress{}

	for name, code := range refdata.BoroughNumbers {
		if idx := strings.Index(cleaned, name); idx >= 0 {
			out.Borough = code
			cleaned = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cleaned[:idx]), ","))
			break
		}
	}

	if m := houseNumberRe.FindStringSubmatch(cleaned); m != nil {
		out.HouseNumber = m[1]
		street := m[2]
		if comma := strings.Index(street, ","); comma >= 0 {
			street = street[:comma]
		}
		out.StreetName = strings.TrimSpace(street)
		return out
	}
	out.StreetName = cleaned
	return out
}

// MatchAddress scores candidate records against the query and returns the
// best one. Containment of the normalized street yields a length-ratio score
// in [0,100]; a bare house-number prefix match is worth 75.
func MatchAddress(records []Record, query string) (best Record, score float64) {
	if len(records) == 0 {
		return nil, 0
	}
	parsed := ParseAddress(query)
	target := parsed.StreetName
	if target == "" {
		target = query
	}
	normalized := NormalizeStreet(target)

	best = records[0]
	for _, rec := range records {
		addr := rec.Str("address")
		if addr == "" {
			continue
		}
		recNorm := NormalizeStreet(addr)
		if strings.Contains(recNorm, normalized) || strings.Contains(normalized, recNorm) {
			shorter, longer := len(recNorm), len(normalized)
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			if longer > 0 {
				if s := float64(shorter) / float64(longer) * 100; s > score {
					best, score = rec, s
				}
			}
		}
		if parsed.HouseNumber != "" && strings.HasPrefix(addr, parsed.HouseNumber) && score < 75 {
			best, score = rec, 75
		}
	}
	return best, score
}

// MatchConfidence buckets a match score into the label surfaced to callers.
func MatchConfidence(score float64) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 50:
		return "medium"
	default:
		return "low"
	}
}
