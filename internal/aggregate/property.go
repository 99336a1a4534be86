package aggregate

import (
	"math"
	"strings"
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/refdata"
)

// buildProfile folds the PLUTO record and regulatory lookups into the
// building identity section.
func buildProfile(id domain.ParcelID, p domain.Record, rentStab, subsidy, nycha []domain.Record) *BuildingProfile {
	profile := &BuildingProfile{
		BBL:          string(id),
		Address:      p.Str("address"),
		Borough:      refdata.BoroughName(p.Str("borough")),
		Zipcode:      p.Str("zipcode"),
		Neighborhood: refdata.Neighborhood(p.Str("zipcode")),

		BuildingClass: p.Str("bldgclass"),
		OwnerName:     p.Str("ownername"),
		OwnerType:     p.Str("ownertype"),
		ZoneDist1:     p.Str("zonedist1"),
		Landmark:      p.Str("landmark"),
		HistDistrict:  p.Str("histdist"),
	}
	if profile.Address == "" {
		profile.Address = "Unknown"
	}
	if profile.OwnerName == "" {
		profile.OwnerName = "Unknown"
	}
	if desc, ok := refdata.BuildingClasses[profile.BuildingClass]; ok {
		profile.BuildingClassDesc = desc
	} else {
		profile.BuildingClassDesc = profile.BuildingClass
	}

	profile.YearBuilt = int(p.Float("yearbuilt"))
	profile.UnitsRes = int(p.Float("unitsres"))
	if n := int(p.Float("unitstotal")); n > 0 {
		profile.UnitsTotal = n
	} else {
		profile.UnitsTotal = profile.UnitsRes
	}
	profile.Floors = int(p.Float("numfloors"))
	if lat, lng, ok := p.Coordinates(); ok {
		profile.Latitude = &lat
		profile.Longitude = &lng
	}
	if v := p.Float("lotarea"); v > 0 {
		profile.LotArea = &v
	}
	if v := p.Float("bldgarea"); v > 0 {
		profile.BuildingArea = &v
	}
	if v := p.Float("assesstot"); v > 0 {
		profile.AssessedValue = &v
	}
	profile.YearAltered1 = int(p.Float("yearalter1"))
	profile.YearAltered2 = int(p.Float("yearalter2"))

	// Rent stabilization: listed in the DHCR roll, or presumed by the
	// classic 6+ units pre-1974 rule.
	var rs domain.Record
	if len(rentStab) > 0 {
		rs = rentStab[0]
	}
	profile.IsRentStabilized = rs != nil ||
		(profile.UnitsRes >= 6 && profile.YearBuilt > 0 && profile.YearBuilt < 1974)
	if rs != nil {
		if units := rs.Float("uc2023", "uc2022", "uc2021"); units > 0 {
			u := int(units)
			profile.RentStabilizedUnits = &u
		}
		if rs.Str("uc2007") != "" && rs.Str("uc2023") != "" {
			lost := int(rs.Float("uc2007") - rs.Float("uc2023"))
			profile.RSLostUnits = &lost
		}
	}

	profile.IsSubsidized = len(subsidy) > 0
	profile.SubsidyPrograms = []string{}
	for _, s := range subsidy {
		if name := s.Str("program_name"); name != "" {
			profile.SubsidyPrograms = append(profile.SubsidyPrograms, name)
		}
	}
	profile.IsNYCHA = len(nycha) > 0 || p.Str("ownertype") == "P"
	if len(nycha) > 0 {
		profile.NYCHADevelopment = nycha[0].Str("development")
	}
	return profile
}

// buildRentFairness picks the HUD benchmark: ZIP-level Small Area FMR when
// published, metro average otherwise.
func buildRentFairness(zip string) RentFairnessSection {
	neighborhood := refdata.Neighborhood(zip)
	section := RentFairnessSection{
		Neighborhood: neighborhood,
		Tip:          "If asking rent exceeds FMR by 20%+, consider negotiating or comparing other units.",
	}
	if section.Neighborhood == "" {
		section.Neighborhood = "NYC"
	}

	if fmr, ok := refdata.FMRForZip(zip); ok {
		area := neighborhood
		if area == "" {
			area = zip
		}
		section.HUDFMR = FMRBenchmark{
			Studio: fmr.Studio, OneBr: fmr.OneBr, TwoBr: fmr.TwoBr, ThreeBr: fmr.ThreeBr, FourBr: fmr.FourBr,
			Year:       2025,
			Source:     "HUD Small Area FMR (ZIP " + zip + ")",
			IsZipLevel: true,
		}
		section.Note = "Fair Market Rents for " + area + " (40th percentile). Rents above these may be above market rate."
		return section
	}

	m := refdata.MetroFMR2025
	section.HUDFMR = FMRBenchmark{
		Studio: m.Studio, OneBr: m.OneBr, TwoBr: m.TwoBr, ThreeBr: m.ThreeBr, FourBr: m.FourBr,
		Year:   2025,
		Source: "HUD FMR (NYC Metro Average)",
	}
	section.Note = "NYC Metro Fair Market Rents (40th percentile). Compare your asking rent to these benchmarks."
	return section
}

func summarizeSales(rolling, acris []domain.Record) SalesSection {
	section := SalesSection{DeedRecords: len(acris), Recent: []SaleItem{}}
	for _, s := range rolling {
		price := s.Float("sale_price")
		if price <= 0 {
			continue
		}
		if len(section.Recent) >= 25 {
			break
		}
		section.Recent = append(section.Recent, SaleItem{
			ID:     fallbackID(s.Str("ease_ment")),
			Date:   s.Str("sale_date"),
			Amount: price,
		})
	}
	section.Total = len(section.Recent)
	if len(section.Recent) > 0 {
		section.LastSaleDate = section.Recent[0].Date
		section.LastSaleAmount = &section.Recent[0].Amount
	}
	return section
}

func summarizePermits(jobs, issued []domain.Record, threeYearsAgo time.Time) PermitsSection {
	section := PermitsSection{Total: len(jobs), Issued: len(issued)}
	for _, j := range jobs {
		jt := j.Str("job_type")
		if jt == "A1" || jt == "DM" {
			section.MajorAlterations++
		}
		if d, ok := j.Date("filing_date"); ok && !d.Before(threeYearsAgo) {
			section.RecentActivity++
		}
	}
	for i, j := range jobs {
		if i >= 25 {
			break
		}
		jt := j.Str("job_type")
		desc := jt
		if d, ok := refdata.JobTypes[jt]; ok {
			desc = d
		}
		item := PermitItem{
			JobNumber:     j.Str("job__", "job_number"),
			JobType:       jt,
			JobTypeDesc:   desc,
			FilingDate:    j.Str("filing_date", "pre_filing_date"),
			JobStatus:     j.Str("job_status"),
			JobStatusDesc: j.Str("job_status_descrp"),
			WorkType:      j.Str("work_type"),
		}
		if cost := j.Float("initial_cost"); cost != 0 {
			item.EstimatedCost = &cost
		}
		section.Recent = append(section.Recent, item)
	}
	return section
}

func summarizeExemptions(recs []domain.Record) TaxExemptionsSection {
	section := TaxExemptionsSection{Programs: []ExemptionItem{}}
	for _, e := range recs {
		code := strings.ToLower(e.Str("exemption_code", "program"))
		if strings.Contains(code, "j51") || strings.Contains(code, "j-51") {
			section.HasJ51 = true
		}
		if strings.Contains(code, "421") {
			section.Has421a = true
		}
		program := e.Str("exemption_code", "program")
		if program == "" {
			program = "Unknown"
		}
		status := e.Str("status")
		if status == "" {
			status = "Active"
		}
		section.Programs = append(section.Programs, ExemptionItem{
			Program:   program,
			StartDate: e.Str("benefit_start_date", "start_date"),
			EndDate:   e.Str("expiration_date", "benefit_end_date"),
			Status:    status,
		})
	}
	if len(recs) > 0 {
		section.ExemptionExpiration = recs[0].Str("expiration_date", "benefit_end_date")
	}
	section.RentStabilizedByExemption = section.Has421a || section.HasJ51
	switch {
	case section.Has421a:
		section.Note = "421-a exemption triggers rent stabilization requirements."
	case section.HasJ51:
		section.Note = "J-51 exemption may affect rent stabilization."
	}
	return section
}

func summarizeTaxLiens(recs []domain.Record) TaxLiensSection {
	section := TaxLiensSection{
		HasLien: len(recs) > 0,
		Count:   len(recs),
		History: []LienItem{},
	}
	if len(recs) > 0 {
		section.LastSaleDate = recs[0].Str("sale_date", "lien_sale_date")
		section.Warning = "Building has tax lien history - potential financial distress indicator."
	}
	for i, l := range recs {
		if i >= 5 {
			break
		}
		status := l.Str("status")
		if status == "" {
			status = "Sold"
		}
		section.History = append(section.History, LienItem{
			Date:   l.Str("sale_date", "lien_sale_date"),
			Amount: l.Str("amount", "lien_amount"),
			Status: status,
		})
	}
	return section
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
