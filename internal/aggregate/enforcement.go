package aggregate

import (
	"strings"
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/refdata"
)

type litigationSummary struct {
	section LitigationsSection
	open    int
}

func summarizeLitigations(recs []domain.Record) litigationSummary {
	sum := litigationSummary{section: LitigationsSection{Total: len(recs), ByType: map[string]int{}}}
	for _, l := range recs {
		if !strings.Contains(strings.ToLower(l.Str("casestatus")), "closed") {
			sum.open++
		}
		t := l.Str("casetype")
		if t == "" {
			t = "Other"
		}
		sum.section.ByType[t]++
		sum.section.TotalPenalties += l.Float("penalty")
	}
	for i, l := range recs {
		if i >= 15 {
			break
		}
		item := LitigationItem{
			ID:           fallbackID(l.Str("litigationid")),
			CaseType:     l.Str("casetype"),
			CaseOpenDate: l.Str("caseopendate"),
			CaseStatus:   l.Str("casestatus"),
			FindingDate:  l.Str("findingdate"),
		}
		if p := l.Float("penalty"); p != 0 {
			item.Penalty = &p
		}
		sum.section.Recent = append(sum.section.Recent, item)
	}
	sum.section.Open = sum.open
	return sum
}

func summarizeCharges(recs []domain.Record) ChargesSection {
	section := ChargesSection{Total: len(recs)}
	for _, c := range recs {
		section.TotalAmount += c.Float("charge")
	}
	return section
}

type evictionSummary struct {
	section EvictionsSection
	last3Y  int
	byYear  map[string]int
}

func summarizeEvictions(evictions, courtFilings []domain.Record, threeYearsAgo time.Time) evictionSummary {
	sum := evictionSummary{byYear: map[string]int{}}
	for _, e := range evictions {
		if d, ok := e.Date("executed_date"); ok && !d.Before(threeYearsAgo) {
			sum.last3Y++
		}
		if yr := e.Year("executed_date"); yr != "" {
			sum.byYear[yr]++
		}
	}

	var recent []EvictionItem
	for i, e := range evictions {
		if i >= 15 {
			break
		}
		recent = append(recent, EvictionItem{
			ID:           fallbackID(e.Str("unique_id")),
			ExecutedDate: e.Str("executed_date"),
			Type:         e.Str("residential_commercial"),
			Marshal:      e.Str("marshal_last_name"),
		})
	}

	filings := CourtFilings{Total: len(courtFilings), ByYear: map[string]int{}}
	for _, f := range courtFilings {
		if d, ok := f.Date("fileddate"); ok && !d.Before(threeYearsAgo) {
			filings.Last3Years++
		}
		if yr := f.Year("fileddate"); yr != "" {
			filings.ByYear[yr]++
		}
	}
	for i, f := range courtFilings {
		if i >= 15 {
			break
		}
		court := f.Str("court")
		if court == "" {
			court = "Housing Court"
		}
		filings.Recent = append(filings.Recent, CourtFilingItem{
			ID:        fallbackID(f.Str("index_number")),
			FiledDate: f.Str("fileddate"),
			CaseType:  f.Str("casetype", "classification"),
			Status:    f.Str("status"),
			CourtType: court,
		})
	}

	sum.section = EvictionsSection{
		Total:      len(evictions),
		Last3Years: sum.last3Y,
		ByYear:     sum.byYear,
		Recent:     recent,
		Filings:    filings,
	}
	return sum
}

func buildPrograms(src *sourceSet) Programs {
	return Programs{
		AEP:              len(src.aep.Records) > 0,
		CONH:             len(src.conh.Records) > 0,
		SpeculationWatch: len(src.specWatch.Records) > 0,
		Subsidized:       len(src.subsidized.Records) > 0,
		NYCHA:            len(src.nycha.Records) > 0,
		VacateOrder:      len(src.hpdVacates.Records) > 0 || len(src.dobVacates.Records) > 0,
	}
}

func formatContact(c domain.Record) Contact {
	name := strings.TrimSpace(c.Str("firstname") + " " + c.Str("lastname"))
	if name == "" {
		name = c.Str("corporationname")
	}
	if name == "" {
		name = "Unknown"
	}
	address := ""
	if c.Str("businesshousenumber") != "" {
		parts := []string{
			c.Str("businesshousenumber"),
			c.Str("businessstreetname"),
			c.Str("businessapartment"),
			c.Str("businesscity"),
		}
		address = strings.Join(strings.Fields(strings.Join(parts, " ")), " ") +
			", " + strings.TrimSpace(c.Str("businessstate")+" "+c.Str("businesszip"))
	}
	return Contact{
		Name:        name,
		Title:       c.Str("type"),
		Corporation: c.Str("corporationname"),
		Address:     strings.TrimSpace(address),
	}
}

func contactsOfType(recs []domain.Record, keywords ...string) []Contact {
	var out []Contact
	for _, c := range recs {
		t := strings.ToLower(c.Str("type"))
		for _, kw := range keywords {
			if strings.Contains(t, kw) {
				out = append(out, formatContact(c))
				break
			}
		}
	}
	return out
}

// buildLandlord folds the registration and its contacts into the landlord
// profile. Portfolio fields are filled separately after the portfolio fetch.
func buildLandlord(registrations, contacts []domain.Record, plutoOwner string) Landlord {
	var reg domain.Record
	if len(registrations) > 0 {
		reg = registrations[0]
	}

	name := reg.Str("corporationname")
	kind := "corporation"
	if name == "" {
		name = strings.TrimSpace(reg.Str("ownerfirstname") + " " + reg.Str("ownerlastname"))
		kind = "individual"
	}
	if name == "" {
		name = plutoOwner
	}
	if name == "" {
		name = "Unknown"
	}

	agents := contactsOfType(contacts, "agent", "manag", "site")
	ll := Landlord{
		Name:           name,
		Type:           kind,
		RegistrationID: reg.Str("registrationid"),
		Owners:         contactsOfType(contacts, "owner", "head", "corporate"),
		Agents:         agents,
		SiteManagers:   contactsOfType(contacts, "site"),
		Portfolio:      []PortfolioBuilding{},
	}
	for _, c := range contacts {
		ll.AllContacts = append(ll.AllContacts, formatContact(c))
	}

	if reg.Str("registrationenddate") != "" {
		if d, ok := reg.Date("lastregistrationdate", "registrationenddate"); ok {
			ll.RegistrationDate = "Last registered: " + d.Format("Jan 2, 2006")
		}
		if d, ok := reg.Date("registrationenddate"); ok {
			ll.RegistrationExpires = "Expires: " + d.Format("Jan 2, 2006")
		}
	}

	if len(agents) > 0 && agents[0].Corporation != "" {
		ll.ManagementCompany = agents[0].Corporation
	} else {
		ll.ManagementCompany = reg.Str("managementagent")
	}
	return ll
}

// buildPortfolio maps sibling registrations into portfolio entries,
// excluding the subject parcel and capping the list.
func buildPortfolio(recs []domain.Record, subjectBBL string) (int, []PortfolioBuilding) {
	out := []PortfolioBuilding{}
	for _, b := range recs {
		if b.Str("bbl") == subjectBBL {
			continue
		}
		if len(out) >= 20 {
			break
		}
		out = append(out, PortfolioBuilding{
			BBL:     b.Str("bbl"),
			Address: strings.TrimSpace(b.Str("housenumber") + " " + b.Str("streetname")),
			Borough: refdata.BoroughName(b.Str("borough")),
			Zipcode: b.Str("zip"),
		})
	}
	return len(recs), out
}
