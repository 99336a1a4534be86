package aggregate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/refdata"
	"github.com/vimldn/vimnyc8/internal/socrata"
)

// LookupResult resolves a free-form address to a parcel.
type LookupResult struct {
	BBL        string `json:"bbl"`
	Address    string `json:"address"`
	Borough    string `json:"borough"`
	Zipcode    string `json:"zipcode"`
	Confidence string `json:"confidence"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	BBL          string `json:"bbl"`
	Address      string `json:"address"`
	Borough      string `json:"borough"`
	Zipcode      string `json:"zipcode"`
	Neighborhood string `json:"neighborhood"`
	Units        int    `json:"units"`
}

func escapeSoQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Lookup resolves an address to its best-matching parcel. A LIKE search on
// the address column runs first; the dataset's full-text index is the
// fallback for misspellings and partials.
func (s *Service) Lookup(ctx context.Context, address string) (*LookupResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.ErrInvalidParcel
	}

	q := url.Values{}
	q.Set("$where", fmt.Sprintf("address LIKE '%%%s%%'", escapeSoQL(strings.ToUpper(address))))
	q.Set("$limit", "10")
	res := s.client.Fetch(ctx, socrata.DatasetPLUTO, q)

	if len(res.Records) == 0 {
		fq := url.Values{}
		fq.Set("$q", address)
		fq.Set("$limit", "10")
		res = s.client.Fetch(ctx, socrata.DatasetPLUTO, fq)
	}
	if res.Degraded {
		return nil, fmt.Errorf("address search unavailable: %s", res.Reason)
	}
	if len(res.Records) == 0 {
		return nil, domain.ErrParcelNotFound
	}

	best, score := domain.MatchAddress(res.Records, address)
	id, err := domain.PadParcel(best.Str("bbl"))
	if err != nil {
		return nil, domain.ErrParcelNotFound
	}

	return &LookupResult{
		BBL:        string(id),
		Address:    best.Str("address"),
		Borough:    best.Str("borough"),
		Zipcode:    best.Str("zipcode"),
		Confidence: domain.MatchConfidence(score),
	}, nil
}

// Autocomplete returns up to eight address suggestions. Full-text search
// runs first; if it comes back empty, a LIKE search takes over, prefix-
// anchored when the query starts with a house number.
func (s *Service) Autocomplete(ctx context.Context, query string) []Suggestion {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []Suggestion{}
	}

	q := url.Values{}
	q.Set("$q", query)
	q.Set("$limit", "12")
	q.Set("$select", "bbl,address,borough,zipcode,unitsres")
	q.Set("$order", "unitsres DESC")
	res := s.client.Fetch(ctx, socrata.DatasetPLUTO, q)

	if len(res.Records) == 0 {
		upper := escapeSoQL(strings.ToUpper(query))
		pattern := "%" + upper + "%"
		if upper[0] >= '0' && upper[0] <= '9' {
			pattern = upper + "%"
		}
		fq := url.Values{}
		fq.Set("$where", fmt.Sprintf("upper(address) LIKE '%s'", pattern))
		fq.Set("$limit", "12")
		fq.Set("$select", "bbl,address,borough,zipcode,unitsres")
		fq.Set("$order", "unitsres DESC")
		res = s.client.Fetch(ctx, socrata.DatasetPLUTO, fq)
	}

	seen := map[string]bool{}
	suggestions := []Suggestion{}
	for _, item := range res.Records {
		address := item.Str("address")
		if address == "" || seen[address] {
			continue
		}
		id, err := domain.PadParcel(item.Str("bbl"))
		if err != nil {
			continue
		}
		seen[address] = true
		suggestions = append(suggestions, Suggestion{
			BBL:          string(id),
			Address:      address,
			Borough:      refdata.BoroughName(item.Str("borough")),
			Zipcode:      item.Str("zipcode"),
			Neighborhood: refdata.Neighborhood(item.Str("zipcode")),
			Units:        int(item.Float("unitsres")),
		})
		if len(suggestions) >= 8 {
			break
		}
	}
	return suggestions
}
