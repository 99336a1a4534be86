package aggregate

import (
	"sort"
	"strings"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/scoring"
)

type crimeSummary struct {
	section CrimeSection
}

func summarizeCrime(recs []domain.Record) crimeSummary {
	byType := map[string]int{}
	violent := 0
	for _, c := range recs {
		t := c.Str("ofns_desc", "pd_desc")
		if t == "" {
			t = "Other"
		}
		byType[t]++
		if containsAny(strings.ToLower(c.Str("ofns_desc")), "assault", "robbery", "murder", "rape") {
			violent++
		}
	}
	score := scoring.CrimeScore(len(recs), violent)
	return crimeSummary{section: CrimeSection{
		Total:   len(recs),
		Violent: violent,
		Score:   score,
		Level:   scoring.CrimeLevelFor(score),
		ByType:  topTypeCounts(byType, 10),
	}}
}

func summarizeShootings(recs []domain.Record) ShootingsSection {
	byYear := map[string]int{}
	fatal := 0
	for _, s := range recs {
		if s.Bool("statistical_murder_flag") {
			fatal++
		}
		if yr := s.Year("occur_date"); yr != "" {
			byYear[yr]++
		}
	}
	score := scoring.ViolentCrimeScore(len(recs), fatal)
	return ShootingsSection{
		Total:  len(recs),
		Fatal:  fatal,
		ByYear: byYear,
		Score:  score,
		Level:  scoring.SafetyLevelFor(score),
	}
}

func summarizeCrashes(recs []domain.Record) TrafficSection {
	section := TrafficSection{Crashes: len(recs)}
	for _, c := range recs {
		if c.Float("number_of_pedestrians_injured") > 0 {
			section.PedestrianInjuries++
		}
		section.PedestrianFatalities += int(c.Float("number_of_pedestrians_killed"))
		if c.Float("number_of_cyclist_injured") > 0 {
			section.CyclistInjuries++
		}
		section.TotalInjuries += int(c.Float("number_of_persons_injured"))
		section.TotalFatalities += int(c.Float("number_of_persons_killed"))
	}
	section.Score = scoring.PedestrianSafetyScore(section.Crashes, section.PedestrianInjuries, section.PedestrianFatalities)
	section.Level = scoring.SafetyLevelFor(section.Score)
	return section
}

func summarizeFlood(flood, hurricane []domain.Record) FloodSection {
	section := FloodSection{
		InFloodZone:     len(flood) > 0,
		InHurricaneZone: len(hurricane) > 0,
		FloodRisk:       "LOW",
	}
	if len(flood) > 0 {
		section.FloodZoneType = flood[0].Str("fld_zone", "zone")
		if strings.Contains(section.FloodZoneType, "AE") || strings.Contains(section.FloodZoneType, "VE") {
			section.FloodRisk = "HIGH"
		} else {
			section.FloodRisk = "MODERATE"
		}
	}
	if len(hurricane) > 0 {
		section.HurricaneZone = hurricane[0].Str("hurricane_e", "zone")
	}
	return section
}

func summarizeTransit(subway, citibike []domain.Record, center *domain.GeoPoint) TransitSection {
	section := TransitSection{
		SubwayStations:   len(subway),
		CitiBikeStations: len(citibike),
		NearbySubways:    []SubwayStop{},
	}
	for i, s := range subway {
		if i >= 10 {
			break
		}
		name := s.Str("name", "station_name", "line", "entrance_type")
		if name == "" {
			name = "Subway"
		}
		stop := SubwayStop{
			Name: name,
			Line: s.Str("line", "routes", "daytime_routes"),
		}
		if center != nil {
			if lat, lng, ok := s.Coordinates(); ok {
				d := int(domain.Distance(*center, domain.GeoPoint{Lat: lat, Lng: lng}) + 0.5)
				stop.Distance = &d
			}
		}
		section.NearbySubways = append(section.NearbySubways, stop)
	}
	if len(section.NearbySubways) > 0 {
		section.NearestSubway = &section.NearbySubways[0]
	}
	section.Score = scoring.TransitScore(len(subway), len(citibike))
	return section
}

// placed is a record with its computed distance from the parcel centroid.
type placed struct {
	rec  domain.Record
	dist int
}

// filterByDistance keeps records within maxMeters of the centroid, sorted
// nearest-first. Records without usable coordinates are dropped.
func filterByDistance(recs []domain.Record, center *domain.GeoPoint, maxMeters float64) []placed {
	if center == nil {
		return nil
	}
	var out []placed
	for _, r := range recs {
		lat, lng, ok := r.Coordinates()
		if !ok {
			continue
		}
		d := domain.Distance(*center, domain.GeoPoint{Lat: lat, Lng: lng})
		if d <= maxMeters {
			out = append(out, placed{rec: r, dist: int(d + 0.5)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	return out
}

func summarizeSchools(recs []domain.Record, center *domain.GeoPoint) SchoolsSection {
	nearby := filterByDistance(recs, center, 1000)
	section := SchoolsSection{Count: len(nearby), Nearby: []School{}}
	for i, s := range nearby {
		if i >= 15 {
			break
		}
		name := s.rec.Str("school_name", "location_name", "name", "facility_name")
		if name == "" {
			name = "School"
		}
		grades := s.rec.Str("grades")
		if grades == "" && s.rec.Str("grade_span_min") != "" && s.rec.Str("grade_span_max") != "" {
			grades = s.rec.Str("grade_span_min") + "-" + s.rec.Str("grade_span_max")
		}
		section.Nearby = append(section.Nearby, School{
			Name:     name,
			Type:     s.rec.Str("location_type_description", "location_category_description", "school_type", "grades"),
			Grades:   grades,
			Address:  s.rec.Str("primary_address_line_1", "address"),
			Distance: s.dist,
		})
	}
	return section
}

func summarizeParks(recs []domain.Record, center *domain.GeoPoint) ParksSection {
	nearby := filterByDistance(recs, center, 800)

	// Without distance matches fall back to whatever the query returned, so
	// a missing centroid still yields a park picture.
	var pool []domain.Record
	if len(nearby) > 0 {
		for _, p := range nearby {
			pool = append(pool, p.rec)
		}
	} else {
		pool = recs
		if len(pool) > 20 {
			pool = pool[:20]
		}
	}

	section := ParksSection{Count: len(pool), Nearby: []Park{}}
	var acres float64
	for _, p := range pool {
		acres += p.Float("acres")
	}
	section.TotalAcres = roundTo(acres, 1)
	for i, p := range pool {
		if i >= 10 {
			break
		}
		name := p.Str("signname", "name311", "park_name", "name")
		if name == "" {
			name = "Park"
		}
		park := Park{Name: name, Type: p.Str("typecategory", "category")}
		if a := p.Float("acres"); a > 0 {
			park.Acres = &a
		}
		section.Nearby = append(section.Nearby, park)
	}
	return section
}

func summarizeTrees(recs []domain.Record) TreesSection {
	section := TreesSection{Count: len(recs), HealthBreakdown: map[string]int{}}
	for _, t := range recs {
		health := t.Str("health")
		if health == "" {
			health = "Unknown"
		}
		section.HealthBreakdown[health]++
	}
	section.HealthyCount = section.HealthBreakdown["Good"]
	return section
}

func summarizeAmenities(cafes, wifi []domain.Record, center *domain.GeoPoint) AmenitiesSection {
	return AmenitiesSection{
		SidewalkCafes: len(filterByDistance(cafes, center, 500)),
		WifiHotspots:  len(filterByDistance(wifi, center, 500)),
	}
}
