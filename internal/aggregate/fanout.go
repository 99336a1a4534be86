package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/observability"
	"github.com/vimldn/vimnyc8/internal/socrata"
)

// Service builds building health reports by fanning a parcel out across the
// open data sources and folding the results into one response.
type Service struct {
	client           *socrata.Client
	clock            clockwork.Clock
	logger           *slog.Logger
	metrics          *observability.Metrics
	portfolioTimeout time.Duration
}

// NewService wires a report builder. The clock is injected so trailing
// windows and trend buckets are reproducible in tests.
func NewService(client *socrata.Client, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, portfolioTimeout time.Duration) *Service {
	return &Service{
		client:           client,
		clock:            clock,
		logger:           logger,
		metrics:          metrics,
		portfolioTimeout: portfolioTimeout,
	}
}

// sourceSet holds one fan-out's worth of per-dataset results. Each goroutine
// writes exactly one slot, so no locking is needed.
type sourceSet struct {
	hpdViolations socrata.Result
	hpdComplaints socrata.Result
	registrations socrata.Result
	contacts      socrata.Result
	litigations   socrata.Result
	charges       socrata.Result
	hpdVacates    socrata.Result
	aep           socrata.Result
	conh          socrata.Result

	dobViolations socrata.Result
	dobComplaints socrata.Result
	jobFilings    socrata.Result
	permits       socrata.Result
	dobSafety     socrata.Result
	ecb           socrata.Result
	dobVacates    socrata.Result

	acrisLegals  socrata.Result
	rollingSales socrata.Result
	exemptions   socrata.Result
	taxLiens     socrata.Result

	evictions    socrata.Result
	housingCourt socrata.Result

	rodents socrata.Result
	bedbugs socrata.Result

	specWatch  socrata.Result
	rentStab   socrata.Result
	subsidized socrata.Result
	nycha      socrata.Result

	sr311 socrata.Result

	crime     socrata.Result
	shootings socrata.Result
	crashes   socrata.Result

	flood         socrata.Result
	hurricane     socrata.Result
	coolingTowers socrata.Result
	restaurants   socrata.Result

	subway   socrata.Result
	citibike socrata.Result
	schools  socrata.Result
	parks    socrata.Result
	trees    socrata.Result
	cafes    socrata.Result
	wifi     socrata.Result
}

// degraded lists the datasets that could not be queried, in a stable order.
func (src *sourceSet) degraded() []DegradedSource {
	named := []struct {
		dataset string
		result  socrata.Result
	}{
		{socrata.DatasetHPDViolations, src.hpdViolations},
		{socrata.DatasetHPDComplaints, src.hpdComplaints},
		{socrata.DatasetHPDRegistrations, src.registrations},
		{socrata.DatasetHPDContacts, src.contacts},
		{socrata.DatasetHPDLitigations, src.litigations},
		{socrata.DatasetHPDCharges, src.charges},
		{socrata.DatasetHPDVacateOrders, src.hpdVacates},
		{socrata.DatasetHPDAEP, src.aep},
		{socrata.DatasetHPDCONH, src.conh},
		{socrata.DatasetDOBViolations, src.dobViolations},
		{socrata.DatasetDOBComplaints, src.dobComplaints},
		{socrata.DatasetDOBJobFilings, src.jobFilings},
		{socrata.DatasetDOBPermits, src.permits},
		{socrata.DatasetDOBSafety, src.dobSafety},
		{socrata.DatasetECBViolations, src.ecb},
		{socrata.DatasetDOBVacates, src.dobVacates},
		{socrata.DatasetACRISLegals, src.acrisLegals},
		{socrata.DatasetRollingSales, src.rollingSales},
		{socrata.DatasetTaxExemptions, src.exemptions},
		{socrata.DatasetTaxLienSales, src.taxLiens},
		{socrata.DatasetEvictions, src.evictions},
		{socrata.DatasetHousingCourt, src.housingCourt},
		{socrata.DatasetRodents, src.rodents},
		{socrata.DatasetBedbugs, src.bedbugs},
		{socrata.DatasetSpeculationWatch, src.specWatch},
		{socrata.DatasetRentStabilized, src.rentStab},
		{socrata.DatasetSubsidizedHousing, src.subsidized},
		{socrata.DatasetNYCHA, src.nycha},
		{socrata.Dataset311, src.sr311},
		{socrata.DatasetNYPDComplaints, src.crime},
		{socrata.DatasetShootings, src.shootings},
		{socrata.DatasetCrashes, src.crashes},
		{socrata.DatasetFloodZones, src.flood},
		{socrata.DatasetHurricaneZones, src.hurricane},
		{socrata.DatasetCoolingTowers, src.coolingTowers},
		{socrata.DatasetRestaurantInspections, src.restaurants},
		{socrata.DatasetSubwayEntrances, src.subway},
		{socrata.DatasetCitiBikeStations, src.citibike},
		{socrata.DatasetSchoolLocations, src.schools},
		{socrata.DatasetParks, src.parks},
		{socrata.DatasetStreetTrees, src.trees},
		{socrata.DatasetSidewalkCafes, src.cafes},
		{socrata.DatasetWifiHotspots, src.wifi},
	}
	var out []DegradedSource
	for _, n := range named {
		if n.result.Degraded {
			out = append(out, DegradedSource{Dataset: n.dataset, Reason: n.result.Reason})
		}
	}
	return out
}

// monthAnchor returns the first of the current month, yearsBack years ago,
// formatted for SoQL date comparisons.
func monthAnchor(now time.Time, yearsBack int) string {
	return time.Date(now.Year()-yearsBack, now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// BuildReport resolves the parcel, fans out across every source, and folds
// the results into a report. It fails only when the primary property record
// cannot be fetched; individual source outages degrade to empty sections.
func (s *Service) BuildReport(ctx context.Context, id domain.ParcelID) (*Report, error) {
	start := s.clock.Now()

	q := url.Values{}
	q.Set("bbl", string(id))
	q.Set("$limit", "1")
	pluto := s.client.Fetch(ctx, socrata.DatasetPLUTO, q)
	if pluto.Degraded {
		if s.metrics != nil {
			s.metrics.ReportFailures.Inc()
		}
		return nil, fmt.Errorf("property lookup unavailable: %s", pluto.Reason)
	}
	if len(pluto.Records) == 0 {
		if s.metrics != nil {
			s.metrics.ReportFailures.Inc()
		}
		return nil, domain.ErrParcelNotFound
	}
	primary := pluto.Records[0]

	var center *domain.GeoPoint
	if lat, lng, ok := primary.Coordinates(); ok {
		center = &domain.GeoPoint{Lat: lat, Lng: lng}
	} else {
		s.logger.Info("parcel has no centroid, spatial sources skipped", "bbl", string(id))
	}

	src := s.fetchAll(ctx, id, primary, center)

	report := s.assemble(ctx, id, primary, center, src)

	if s.metrics != nil {
		s.metrics.FanOutDuration.Observe(s.clock.Since(start).Seconds())
		s.metrics.ReportsBuilt.Inc()
	}
	s.logger.Info("report built",
		"bbl", string(id),
		"score", report.Score.Overall,
		"degraded_sources", len(report.DegradedSources),
		"elapsed", s.clock.Since(start))
	return report, nil
}

// fetchAll runs the wide fan-out: one goroutine per dataset, each writing
// its own sourceSet slot.
func (s *Service) fetchAll(ctx context.Context, id domain.ParcelID, primary domain.Record, center *domain.GeoPoint) *sourceSet {
	bbl := string(id)
	borough := id.Borough()
	block := id.Block()
	lot := id.Lot()

	now := s.clock.Now()
	y1 := monthAnchor(now, 1)
	y2 := monthAnchor(now, 2)
	y3 := monthAnchor(now, 3)
	y5 := monthAnchor(now, 5)

	src := &sourceSet{}
	var wg sync.WaitGroup
	run := func(dst *socrata.Result, fn func() socrata.Result) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*dst = fn()
		}()
	}
	fetch := func(dataset string, pairs ...string) socrata.Result {
		v := url.Values{}
		for i := 0; i+1 < len(pairs); i += 2 {
			v.Set(pairs[i], pairs[i+1])
		}
		return s.client.Fetch(ctx, dataset, v)
	}
	spatial := func(dataset, where string, limit int, extra ...string) socrata.Result {
		if center == nil {
			return socrata.Skipped("no centroid")
		}
		pairs := append([]string{"$where", where, "$limit", fmt.Sprintf("%d", limit)}, extra...)
		return fetch(dataset, pairs...)
	}

	// Lot-level sources keyed by BBL.
	run(&src.hpdViolations, func() socrata.Result {
		return fetch(socrata.DatasetHPDViolations, "bbl", bbl, "$limit", "1500", "$order", "inspectiondate DESC")
	})
	run(&src.hpdComplaints, func() socrata.Result {
		return fetch(socrata.DatasetHPDComplaints,
			"bbl", bbl, "$where", fmt.Sprintf("receiveddate>='%s'", y5), "$limit", "800", "$order", "receiveddate DESC")
	})
	run(&src.registrations, func() socrata.Result {
		return fetch(socrata.DatasetHPDRegistrations, "bbl", bbl, "$limit", "1")
	})
	run(&src.contacts, func() socrata.Result {
		where := fmt.Sprintf("registrationid IN (SELECT registrationid FROM %s WHERE bbl='%s')", socrata.DatasetHPDRegistrations, bbl)
		return fetch(socrata.DatasetHPDContacts, "$where", where, "$limit", "30")
	})
	run(&src.litigations, func() socrata.Result {
		return fetch(socrata.DatasetHPDLitigations, "bbl", bbl, "$limit", "200", "$order", "caseopendate DESC")
	})
	run(&src.charges, func() socrata.Result {
		return fetch(socrata.DatasetHPDCharges, "bbl", bbl, "$limit", "200")
	})
	run(&src.hpdVacates, func() socrata.Result {
		return fetch(socrata.DatasetHPDVacateOrders, "bbl", bbl, "$limit", "50")
	})
	run(&src.aep, func() socrata.Result {
		return fetch(socrata.DatasetHPDAEP, "bbl", bbl, "$limit", "10")
	})
	run(&src.conh, func() socrata.Result {
		return fetch(socrata.DatasetHPDCONH, "bbl", bbl, "$limit", "10")
	})

	// DOB datasets key on separate borough/block/lot columns.
	bblWhere := fmt.Sprintf("boro='%s' AND block='%s' AND lot='%s'", borough, block, lot)
	run(&src.dobViolations, func() socrata.Result {
		return fetch(socrata.DatasetDOBViolations, "$where", bblWhere, "$limit", "800", "$order", "issue_date DESC")
	})
	run(&src.dobComplaints, func() socrata.Result {
		return fetch(socrata.DatasetDOBComplaints, "$where", bblWhere, "$limit", "400", "$order", "date_entered DESC")
	})
	run(&src.jobFilings, func() socrata.Result {
		return fetch(socrata.DatasetDOBJobFilings, "$where", bblWhere, "$limit", "300", "$order", "filing_date DESC")
	})
	run(&src.permits, func() socrata.Result {
		return fetch(socrata.DatasetDOBPermits, "$where", bblWhere, "$limit", "200")
	})
	run(&src.dobSafety, func() socrata.Result {
		return fetch(socrata.DatasetDOBSafety, "$where", bblWhere, "$limit", "150")
	})
	run(&src.ecb, func() socrata.Result {
		return fetch(socrata.DatasetECBViolations, "$where", bblWhere, "$limit", "300")
	})
	run(&src.dobVacates, func() socrata.Result {
		return fetch(socrata.DatasetDOBVacates, "$where", bblWhere, "$limit", "30")
	})

	// Finance datasets store block and lot as numbers.
	run(&src.acrisLegals, func() socrata.Result {
		where := fmt.Sprintf("borough='%s' AND block=%d AND lot=%d", borough, id.BlockNumber(), id.LotNumber())
		return fetch(socrata.DatasetACRISLegals, "$where", where, "$limit", "100", "$order", "good_through_date DESC")
	})
	run(&src.rollingSales, func() socrata.Result {
		where := fmt.Sprintf("borough=%s AND block=%d AND lot=%d", borough, id.BlockNumber(), id.LotNumber())
		return fetch(socrata.DatasetRollingSales, "$where", where, "$limit", "50", "$order", "sale_date DESC")
	})
	run(&src.exemptions, func() socrata.Result {
		return fetch(socrata.DatasetTaxExemptions, "$where", fmt.Sprintf("bbl='%s'", bbl), "$limit", "20")
	})
	run(&src.taxLiens, func() socrata.Result {
		return fetch(socrata.DatasetTaxLienSales, "$where", fmt.Sprintf("bbl='%s'", bbl), "$limit", "20")
	})

	run(&src.evictions, func() socrata.Result {
		return fetch(socrata.DatasetEvictions,
			"bbl", bbl, "$where", fmt.Sprintf("executed_date>='%s'", y5), "$limit", "150", "$order", "executed_date DESC")
	})
	run(&src.housingCourt, func() socrata.Result {
		return fetch(socrata.DatasetHousingCourt, "$where", fmt.Sprintf("bbl='%s'", bbl), "$limit", "200", "$order", "fileddate DESC")
	})

	run(&src.rodents, func() socrata.Result {
		return fetch(socrata.DatasetRodents, "bbl", bbl, "$limit", "80", "$order", "inspection_date DESC")
	})
	run(&src.bedbugs, func() socrata.Result {
		return fetch(socrata.DatasetBedbugs, "$where", fmt.Sprintf("building_id='%s'", bbl), "$limit", "50")
	})

	run(&src.specWatch, func() socrata.Result {
		return fetch(socrata.DatasetSpeculationWatch, "bbl", bbl, "$limit", "5")
	})
	run(&src.rentStab, func() socrata.Result {
		return fetch(socrata.DatasetRentStabilized, "$where", fmt.Sprintf("ucbbl='%s'", bbl), "$limit", "1")
	})
	run(&src.subsidized, func() socrata.Result {
		return fetch(socrata.DatasetSubsidizedHousing, "$where", fmt.Sprintf("bbl='%s'", bbl), "$limit", "5")
	})
	run(&src.nycha, func() socrata.Result {
		return fetch(socrata.DatasetNYCHA, "$where", fmt.Sprintf("bbl='%s'", bbl), "$limit", "3")
	})
	run(&src.sr311, func() socrata.Result {
		where := fmt.Sprintf("bbl='%s' AND created_date>='%s'", bbl, y3)
		return fetch(socrata.Dataset311, "$where", where, "$limit", "300", "$order", "created_date DESC")
	})

	// Spatial sources need the PLUTO centroid; without it they are skipped,
	// not degraded.
	run(&src.crime, func() socrata.Result {
		if center == nil {
			return socrata.Skipped("no centroid")
		}
		where := fmt.Sprintf("within_circle(lat_lon,%f,%f,500) AND cmplnt_fr_dt>='%s'", center.Lat, center.Lng, y1)
		return fetch(socrata.DatasetNYPDComplaints, "$where", where, "$limit", "500", "$order", "cmplnt_fr_dt DESC")
	})
	run(&src.shootings, func() socrata.Result {
		if center == nil {
			return socrata.Skipped("no centroid")
		}
		where := fmt.Sprintf("within_circle(the_geom,%f,%f,500) AND occur_date>='%s'", center.Lat, center.Lng, y3)
		return fetch(socrata.DatasetShootings, "$where", where, "$limit", "200")
	})
	run(&src.crashes, func() socrata.Result {
		if center == nil {
			return socrata.Skipped("no centroid")
		}
		where := fmt.Sprintf("within_circle(location,%f,%f,300) AND crash_date>='%s'", center.Lat, center.Lng, y2)
		return fetch(socrata.DatasetCrashes, "$where", where, "$limit", "300")
	})
	run(&src.flood, func() socrata.Result {
		return spatial(socrata.DatasetFloodZones, circleWhere("the_geom", center, 100), 5)
	})
	run(&src.hurricane, func() socrata.Result {
		return spatial(socrata.DatasetHurricaneZones, circleWhere("the_geom", center, 100), 5)
	})
	run(&src.subway, func() socrata.Result {
		return spatial(socrata.DatasetSubwayEntrances, circleWhere("the_geom", center, 1000), 50)
	})
	run(&src.citibike, func() socrata.Result {
		return spatial(socrata.DatasetCitiBikeStations, circleWhere("the_geom", center, 800), 30)
	})
	run(&src.trees, func() socrata.Result {
		return spatial(socrata.DatasetStreetTrees, circleWhere("the_geom", center, 150), 100)
	})
	run(&src.restaurants, func() socrata.Result {
		return spatial(socrata.DatasetRestaurantInspections, circleWhere("location", center, 100), 50,
			"$order", "inspection_date DESC")
	})

	// Point datasets with inconsistent geometry columns get the probing
	// fallback query.
	run(&src.schools, func() socrata.Result {
		return capped(s.client.FetchNearby(ctx, socrata.DatasetSchoolLocations, center, 1200,
			[]string{"location_1", "the_geom", "location", "lat_lon"}, limitQuery(2000), 200), 200)
	})
	run(&src.parks, func() socrata.Result {
		return capped(s.client.FetchNearby(ctx, socrata.DatasetParks, center, 1200,
			[]string{"the_geom", "location", "lat_lon"}, limitQuery(3000), 200), 200)
	})
	run(&src.cafes, func() socrata.Result {
		return capped(s.client.FetchNearby(ctx, socrata.DatasetSidewalkCafes, center, 600,
			[]string{"the_geom", "location", "lat_lon"}, limitQuery(3000), 200), 200)
	})
	run(&src.wifi, func() socrata.Result {
		return capped(s.client.FetchNearby(ctx, socrata.DatasetWifiHotspots, center, 600,
			[]string{"the_geom", "location", "lat_lon"}, limitQuery(3000), 200), 200)
	})

	// Cooling towers have no BBL column; match on the street name.
	run(&src.coolingTowers, func() socrata.Result {
		street := streetOf(primary.Str("address"))
		if street == "" {
			return socrata.Skipped("no street name")
		}
		where := fmt.Sprintf("upper(street_name) LIKE upper('%%%s%%')", strings.ReplaceAll(street, "'", "''"))
		return fetch(socrata.DatasetCoolingTowers, "$where", where, "$limit", "20")
	})

	wg.Wait()
	return src
}

// fetchPortfolio runs the third phase: other buildings under the same HPD
// registration. It has a tighter budget than the main fan-out because the
// report is already complete without it.
func (s *Service) fetchPortfolio(ctx context.Context, registrationID string) socrata.Result {
	q := url.Values{}
	q.Set("registrationid", registrationID)
	q.Set("$select", "bbl,housenumber,streetname,zip,borough")
	q.Set("$limit", "150")
	return s.client.FetchTimeout(ctx, socrata.DatasetHPDRegistrations, q, s.portfolioTimeout)
}

func circleWhere(field string, center *domain.GeoPoint, radiusMeters int) string {
	if center == nil {
		return ""
	}
	return fmt.Sprintf("within_circle(%s,%f,%f,%d)", field, center.Lat, center.Lng, radiusMeters)
}

func limitQuery(n int) url.Values {
	v := url.Values{}
	v.Set("$limit", fmt.Sprintf("%d", n))
	return v
}

func capped(r socrata.Result, n int) socrata.Result {
	if len(r.Records) > n {
		r.Records = r.Records[:n]
	}
	return r
}

// streetOf drops the house number from a PLUTO address.
func streetOf(address string) string {
	fields := strings.Fields(address)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
