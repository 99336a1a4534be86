package aggregate

import (
	"context"
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/scoring"
)

const reportDisclaimer = "Data from 45+ NYC Open Data sources including HUD Fair Market Rents. Scores are estimates. Always verify independently."

// assemble folds one fan-out's results into the report: per-source sections
// first, then the cross-source products (scores, flags, timeline, signals).
func (s *Service) assemble(ctx context.Context, id domain.ParcelID, primary domain.Record, center *domain.GeoPoint, src *sourceSet) *Report {
	now := s.clock.Now()
	yearAgo := time.Date(now.Year()-1, now.Month(), 1, 0, 0, 0, 0, now.Location())
	threeYearsAgo := time.Date(now.Year()-3, now.Month(), 1, 0, 0, 0, 0, now.Location())

	profile := buildProfile(id, primary, src.rentStab.Records, src.subsidized.Records, src.nycha.Records)

	hpd := summarizeHPDViolations(src.hpdViolations.Records)
	dob := summarizeDOBViolations(src.dobViolations.Records)
	ecb := summarizeECB(src.ecb.Records)

	hpdComp := summarizeHPDComplaints(src.hpdComplaints.Records, yearAgo)
	dobComp := summarizeDOBComplaints(src.dobComplaints.Records, yearAgo)
	sr := summarize311(src.sr311.Records)

	lits := summarizeLitigations(src.litigations.Records)
	charges := summarizeCharges(src.charges.Records)
	evictions := summarizeEvictions(src.evictions.Records, src.housingCourt.Records, threeYearsAgo)
	sales := summarizeSales(src.rollingSales.Records, src.acrisLegals.Records)
	permits := summarizePermits(src.jobFilings.Records, src.permits.Records, threeYearsAgo)

	rodents := summarizeRodents(src.rodents.Records)
	bedbugs := summarizeBedbugs(src.bedbugs.Records)
	restaurants := summarizeRestaurants(src.restaurants.Records)
	coolingTowers := summarizeCoolingTowers(src.coolingTowers.Records)
	exemptions := summarizeExemptions(src.exemptions.Records)
	taxLiens := summarizeTaxLiens(src.taxLiens.Records)

	programs := buildPrograms(src)

	landlord := buildLandlord(src.registrations.Records, src.contacts.Records, primary.Str("ownername"))
	if landlord.RegistrationID != "" {
		port := s.fetchPortfolio(ctx, landlord.RegistrationID)
		if !port.Degraded {
			landlord.PortfolioSize, landlord.Portfolio = buildPortfolio(port.Records, string(id))
		}
	}

	crime := summarizeCrime(src.crime.Records)
	shootings := summarizeShootings(src.shootings.Records)
	traffic := summarizeCrashes(src.crashes.Records)
	flood := summarizeFlood(src.flood.Records, src.hurricane.Records)
	transit := summarizeTransit(src.subway.Records, src.citibike.Records, center)
	schools := summarizeSchools(src.schools.Records, center)
	parks := summarizeParks(src.parks.Records, center)
	trees := summarizeTrees(src.trees.Records)
	amenities := summarizeAmenities(src.cafes.Records, src.wifi.Records, center)

	noise := sr.noise
	noise.Level = scoring.NoiseLevelFor(noise.Total)

	core := scoring.Inputs{
		HPDClassA:         hpd.stats.ClassA,
		HPDClassB:         hpd.stats.ClassB,
		HPDClassC:         hpd.stats.ClassC,
		HPDOpenViolations: hpd.stats.Open,
		DOBOpenViolations: dob.stats.Open,
		ECBOpenViolations: ecb.Open,
		HeatComplaints:    hpdComp.heatComplaints,
		HPDComplaintsYear: len(hpdComp.recentYear),
		OpenLitigations:   lits.open,
		TotalLitigations:  lits.section.Total,
		Evictions3Y:       evictions.last3Y,
		RodentFailures:    rodents.section.Failed,
		BedbugReports:     bedbugs.Reports,
		ActiveAEP:         programs.AEP,
		SpeculationWatch:  programs.SpeculationWatch,
		ActiveVacate:      programs.VacateOrder,
		ERPCharges:        charges.TotalAmount,
	}
	overall := scoring.BuildingScore(core)
	grade := scoring.GradeFor(overall)

	categories := scoring.CategoryScores(scoring.CategoryInputs{
		Core:                core,
		HeatViolations:      hpd.byCategory[domain.CategoryHeat],
		FireViolations:      hpd.byCategory[domain.CategoryFireSafety],
		DOBSafetyViolations: len(src.dobSafety.Records),
		RestaurantPest:      restaurants.section.PestViolations,
		NoiseComplaints:     noise.Total,
		CrimeTotal:          crime.section.Total,
		CrimeViolent:        crime.section.Violent,
		Shootings:           shootings.Total,
		FatalShootings:      shootings.Fatal,
		Crashes:             traffic.Crashes,
		PedInjured:          traffic.PedestrianInjuries,
		PedKilled:           traffic.PedestrianFatalities,
		SubwayCount:         transit.SubwayStations,
		BikeStations:        transit.CitiBikeStations,
		TaxLienSale:         taxLiens.HasLien,
		TaxLienCount:        taxLiens.Count,
	})

	flags := scoring.Assess(scoring.FlagInputs{
		HPDClassC:           hpd.stats.ClassC,
		ActiveAEP:           programs.AEP,
		ActiveVacate:        programs.VacateOrder,
		HeatComplaints:      hpdComp.heatComplaints,
		BedbugReports:       bedbugs.Reports,
		Shootings:           shootings.Total,
		FatalShootings:      shootings.Fatal,
		TaxLienSale:         taxLiens.HasLien,
		FloodZone:           flood.FloodZoneType,
		HurricaneZone:       flood.HurricaneZone,
		Evictions3Y:         evictions.last3Y,
		OpenLitigations:     lits.open,
		TotalPenalties:      lits.section.TotalPenalties,
		SpeculationWatch:    programs.SpeculationWatch,
		HPDOpen:             hpd.stats.Open,
		CrimeLevel:          crime.section.Level,
		CrimeTotal:          crime.section.Total,
		PedKilled:           traffic.PedestrianFatalities,
		CoolingTowers:       coolingTowers.Count,
		ExemptionExpiration: exemptions.ExemptionExpiration,
		Has421a:             exemptions.Has421a,
		HasJ51:              exemptions.HasJ51,
		NoiseComplaints:     noise.Total,
	})

	events := collectSignalEvents(src.hpdComplaints.Records, src.sr311.Records, rodents.failed, src.bedbugs.Records)

	pestScore := scoring.PestScore(rodents.section.Failed, bedbugs.Reports, restaurants.section.PestViolations)
	finScore := scoring.FinancialHealthScore(taxLiens.HasLien, taxLiens.Count, charges.TotalAmount)

	return &Report{
		Building: profile,
		Score: ScoreSummary{
			Overall: overall,
			Grade:   grade.Letter,
			Label:   grade.Label,
			Breakdown: ScoreBreakdown{
				HPDViolations: hpd.stats.Open,
				DOBViolations: dob.stats.Open,
				ECBViolations: ecb.Open,
				Complaints:    len(hpdComp.recentYear),
				Litigations:   lits.open,
				Evictions:     evictions.last3Y,
				Pests:         rodents.section.Failed + bedbugs.Reports,
			},
		},
		Category: categories,

		Violations: ViolationsSection{
			HPD:    hpd.stats,
			DOB:    dob.stats,
			ECB:    ecb,
			Safety: SafetyStats{Total: len(src.dobSafety.Records)},
			Recent: mergeRecentViolations(hpd.recent, dob.recent, 50),
		},
		Complaints: ComplaintsSection{
			HPD:        hpdComp.stats,
			DOB:        dobComp.stats,
			SR311:      sr.stats,
			Recent:     mergeRecentComplaints(40, hpdComp.recent, dobComp.recent, sr.recent),
			ByCategory: complaintBreakdown(hpdComp.byCategory),
		},
		Litigations: lits.section,
		Charges:     charges,
		Evictions:   evictions.section,
		Sales:       sales,
		Permits:     permits,
		Rodents:     rodents.section,
		Bedbugs:     bedbugs,
		Programs:    programs,
		Landlord:    landlord,

		RiskAssessment: scoring.RiskAssessment(categories),
		RedFlags:       flags,

		Timeline:     buildTimeline(hpd.recent, dob.recent, hpdComp.recent, sales.Recent, evictions.section.Recent, lits.section.Recent),
		MonthlyTrend: buildMonthlyTrend(src.hpdViolations.Records, src.dobViolations.Records, src.hpdComplaints.Records, now),
		YearlyStats:  buildYearlyStats(hpd.stats.ByYear, dob.stats.ByYear, hpdComp.stats.ByYear, evictions.section.ByYear, now),
		Signals:      buildSignals(events, now),

		Crime:         crime.section,
		Shootings:     shootings,
		TrafficSafety: traffic,
		CoolingTowers: coolingTowers,
		TaxExemptions: exemptions,
		TaxLiens:      taxLiens,
		Restaurants:   restaurants.section,
		Noise:         noise,
		RentFairness:  buildRentFairness(profile.Zipcode),
		Pests: PestsSection{
			Score:                    pestScore,
			RodentFails:              rodents.section.Failed,
			BedbugReports:            bedbugs.Reports,
			RestaurantPestViolations: restaurants.section.PestViolations,
			Level:                    scoring.PestLevelFor(pestScore),
		},
		Financial: FinancialSection{
			Score:            finScore,
			TaxLiens:         taxLiens.Count,
			EmergencyCharges: charges.TotalAmount,
			Level:            scoring.FinancialLevelFor(finScore),
		},

		Flood:     flood,
		Transit:   transit,
		Schools:   schools,
		Parks:     parks,
		Trees:     trees,
		Amenities: amenities,

		NeighborhoodScore: scoring.NeighborhoodScore(crime.section.Score, transit.Score, schools.Count, parks.Count, flood.InFloodZone),

		DegradedSources: src.degraded(),
		DataSources:     45,
		LastUpdated:     now,
		Disclaimer:      reportDisclaimer,
	}
}
