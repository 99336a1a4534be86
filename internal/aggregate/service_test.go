package aggregate_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/aggregate"
	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/observability"
	"github.com/vimldn/vimnyc8/internal/socrata"
)

const plutoRow = `[{
	"bbl": "1008350041",
	"address": "350 FIFTH AVENUE",
	"borough": "1",
	"zipcode": "10118",
	"latitude": "40.748444",
	"longitude": "-73.985664",
	"ownername": "EMPIRE STATE REALTY",
	"unitsres": "0",
	"unitstotal": "150",
	"numfloors": "102",
	"yearbuilt": "1931",
	"bldgclass": "O4"
}]`

// mockSocrata serves per-dataset JSON, defaulting every unlisted dataset to
// an empty result set.
func mockSocrata(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for dataset, body := range responses {
			if r.URL.Path == "/"+dataset+".json" {
				if body == "FAIL" {
					http.Error(w, "unavailable", http.StatusServiceUnavailable)
					return
				}
				w.Write([]byte(body))
				return
			}
		}
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, baseURL string) *aggregate.Service {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	metrics := observability.NewMetricsForTesting()
	client := socrata.NewClient(baseURL, "", 5*time.Second, slog.Default(), metrics)
	return aggregate.NewService(client, clock, slog.Default(), metrics, 2*time.Second)
}

func TestBuildReportHealthyBuilding(t *testing.T) {
	srv := mockSocrata(t, map[string]string{socrata.DatasetPLUTO: plutoRow})
	svc := newTestService(t, srv.URL)

	report, err := svc.BuildReport(context.Background(), "1008350041")
	require.NoError(t, err)

	require.NotNil(t, report.Building)
	assert.Equal(t, "1008350041", report.Building.BBL)
	assert.Equal(t, "350 FIFTH AVENUE", report.Building.Address)
	assert.Equal(t, "Manhattan", report.Building.Borough)
	assert.Equal(t, 1931, report.Building.YearBuilt)

	assert.Equal(t, 100, report.Score.Overall)
	assert.Equal(t, "A", report.Score.Grade)
	assert.Len(t, report.Category, 12)
	assert.Empty(t, report.RedFlags)
	assert.Empty(t, report.DegradedSources)
	assert.Equal(t, 45, report.DataSources)

	// Signal windows and series always carry their full shape.
	assert.Len(t, report.Signals.Windows, 4)
	assert.Len(t, report.Signals.Series.Daily30, 30)
	assert.Len(t, report.Signals.Series.Weekly90, 13)
	assert.Len(t, report.Signals.Series.Monthly36, 36)
}

func TestBuildReportNotFound(t *testing.T) {
	srv := mockSocrata(t, map[string]string{socrata.DatasetPLUTO: `[]`})
	svc := newTestService(t, srv.URL)

	_, err := svc.BuildReport(context.Background(), "1000000001")
	assert.ErrorIs(t, err, domain.ErrParcelNotFound)
}

func TestBuildReportPrimaryLookupDown(t *testing.T) {
	srv := mockSocrata(t, map[string]string{socrata.DatasetPLUTO: "FAIL"})
	svc := newTestService(t, srv.URL)

	_, err := svc.BuildReport(context.Background(), "1008350041")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrParcelNotFound)
	assert.Contains(t, err.Error(), "property lookup unavailable")
}

func TestBuildReportDegradedSourceStillSucceeds(t *testing.T) {
	srv := mockSocrata(t, map[string]string{
		socrata.DatasetPLUTO:         plutoRow,
		socrata.DatasetHPDViolations: "FAIL",
	})
	svc := newTestService(t, srv.URL)

	report, err := svc.BuildReport(context.Background(), "1008350041")
	require.NoError(t, err)

	require.Len(t, report.DegradedSources, 1)
	assert.Equal(t, socrata.DatasetHPDViolations, report.DegradedSources[0].Dataset)
	assert.Zero(t, report.Violations.HPD.Total)
	// A degraded source must not sink the score.
	assert.Equal(t, 100, report.Score.Overall)
}

func TestBuildReportViolationsAffectScore(t *testing.T) {
	srv := mockSocrata(t, map[string]string{
		socrata.DatasetPLUTO: plutoRow,
		socrata.DatasetHPDViolations: `[
			{"violationid": "1", "class": "C", "currentstatus": "VIOLATION OPEN", "currentstatusdate": "2024-01-02",
			 "inspectiondate": "2024-01-01T00:00:00.000", "novdescription": "NO HEAT"},
			{"violationid": "2", "class": "C", "currentstatus": "VIOLATION OPEN", "currentstatusdate": "2024-02-02",
			 "inspectiondate": "2024-02-01T00:00:00.000", "novdescription": "NO HOT WATER"}
		]`,
	})
	svc := newTestService(t, srv.URL)

	report, err := svc.BuildReport(context.Background(), "1008350041")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Violations.HPD.ClassC)
	// Two Class C at 15 each, plus two open violations at 1 each.
	assert.Equal(t, 68, report.Score.Overall)
	assert.Equal(t, "D", report.Score.Grade)

	require.NotEmpty(t, report.RedFlags)
	assert.Equal(t, "critical", report.RedFlags[0].Severity)
	assert.Equal(t, "2 Class C Violations", report.RedFlags[0].Title)
}

func TestBuildReportPortfolioExcludesSubject(t *testing.T) {
	// The registrations dataset serves two phases: the per-parcel lookup and
	// the portfolio query, which returns the subject plus one sibling.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/" + socrata.DatasetPLUTO + ".json":
			w.Write([]byte(plutoRow))
		case "/" + socrata.DatasetHPDRegistrations + ".json":
			if r.URL.Query().Get("registrationid") == "900100" {
				w.Write([]byte(`[
					{"bbl": "1008350041", "housenumber": "350", "streetname": "FIFTH AVENUE", "zip": "10118", "borough": "1"},
					{"bbl": "1008360001", "housenumber": "10", "streetname": "WEST 34 STREET", "zip": "10001", "borough": "1"}
				]`))
				return
			}
			w.Write([]byte(`[{"registrationid": "900100", "bbl": "1008350041", "lastregistrationdate": "2024-01-15T00:00:00.000"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	svc := newTestService(t, srv.URL)

	report, err := svc.BuildReport(context.Background(), "1008350041")
	require.NoError(t, err)

	assert.Equal(t, "900100", report.Landlord.RegistrationID)
	// Size counts every building under the registration, including this one.
	assert.Equal(t, 2, report.Landlord.PortfolioSize)
	require.Len(t, report.Landlord.Portfolio, 1)
	assert.Equal(t, "1008360001", report.Landlord.Portfolio[0].BBL)
}

func TestLookupResolvesAddress(t *testing.T) {
	srv := mockSocrata(t, map[string]string{
		socrata.DatasetPLUTO: `[
			{"bbl": "1008350041", "address": "350 FIFTH AVENUE", "borough": "1", "zipcode": "10118"},
			{"bbl": "1008350001", "address": "348 FIFTH AVENUE", "borough": "1", "zipcode": "10118"}
		]`,
	})
	svc := newTestService(t, srv.URL)

	result, err := svc.Lookup(context.Background(), "350 Fifth Avenue, Manhattan")
	require.NoError(t, err)
	assert.Equal(t, "1008350041", result.BBL)
	assert.Equal(t, "350 FIFTH AVENUE", result.Address)
	assert.NotEmpty(t, result.Confidence)
}

func TestLookupNotFound(t *testing.T) {
	srv := mockSocrata(t, nil)
	svc := newTestService(t, srv.URL)

	_, err := svc.Lookup(context.Background(), "1 NOWHERE LANE")
	assert.ErrorIs(t, err, domain.ErrParcelNotFound)
}

func TestLookupEmptyAddress(t *testing.T) {
	srv := mockSocrata(t, nil)
	svc := newTestService(t, srv.URL)

	_, err := svc.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidParcel)
}

func TestAutocomplete(t *testing.T) {
	srv := mockSocrata(t, map[string]string{
		socrata.DatasetPLUTO: `[
			{"bbl": "1008350041", "address": "350 FIFTH AVENUE", "borough": "1", "zipcode": "10118", "unitsres": "0"},
			{"bbl": "1008350041", "address": "350 FIFTH AVENUE", "borough": "1", "zipcode": "10118", "unitsres": "0"},
			{"bbl": "3012340056", "address": "35 FIFTH STREET", "borough": "3", "zipcode": "11215", "unitsres": "8"}
		]`,
	})
	svc := newTestService(t, srv.URL)

	suggestions := svc.Autocomplete(context.Background(), "350 fifth")

	require.Len(t, suggestions, 2) // duplicate address collapsed
	assert.Equal(t, "Manhattan", suggestions[0].Borough)
	assert.Equal(t, "Park Slope", suggestions[1].Neighborhood)
	assert.Equal(t, 8, suggestions[1].Units)
}

func TestAutocompleteShortQuery(t *testing.T) {
	srv := mockSocrata(t, nil)
	svc := newTestService(t, srv.URL)

	assert.Empty(t, svc.Autocomplete(context.Background(), "3"))
}
