package socrata_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/observability"
	"github.com/vimldn/vimnyc8/internal/socrata"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *socrata.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return socrata.NewClient(srv.URL, "test-token", 2*time.Second, slog.Default(), observability.NewMetricsForTesting())
}

func TestFetchDecodesRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/abcd-1234.json", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-App-Token"))
		assert.Equal(t, "1000477501", r.URL.Query().Get("$where"))
		w.Write([]byte(`[{"bbl":"1000477501","address":"350 FIFTH AVENUE"}]`))
	})

	q := url.Values{}
	q.Set("$where", "1000477501")
	res := client.Fetch(context.Background(), "abcd-1234", q)

	require.False(t, res.Degraded)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "350 FIFTH AVENUE", res.Records[0].Str("address"))
}

func TestFetchDegradesOnServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})

	res := client.Fetch(context.Background(), "abcd-1234", url.Values{})

	assert.True(t, res.Degraded)
	assert.Empty(t, res.Records)
	assert.Contains(t, res.Reason, "status 502")
}

func TestFetchDegradesOnMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not an array"}`))
	})

	res := client.Fetch(context.Background(), "abcd-1234", url.Values{})

	assert.True(t, res.Degraded)
	assert.Contains(t, res.Reason, "decode")
}

func TestFetchTimeoutDegrades(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	})

	res := client.FetchTimeout(context.Background(), "abcd-1234", url.Values{}, 20*time.Millisecond)

	assert.True(t, res.Degraded)
}

func TestFetchEmptyArrayIsHealthy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	res := client.Fetch(context.Background(), "abcd-1234", url.Values{})

	assert.False(t, res.Degraded)
	assert.Empty(t, res.Records)
}

func TestFetchNearbyProbesGeoFields(t *testing.T) {
	var wheres []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		where := r.URL.Query().Get("$where")
		wheres = append(wheres, where)
		// First geometry column name is wrong for this dataset.
		if len(wheres) == 1 {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"name":"nearby thing"}]`))
	})

	center := &domain.GeoPoint{Lat: 40.7, Lng: -73.9}
	res := client.FetchNearby(context.Background(), "abcd-1234", center, 500,
		[]string{"location_1", "the_geom"}, url.Values{}, 100)

	require.False(t, res.Degraded)
	require.Len(t, res.Records, 1)
	require.Len(t, wheres, 2)
	assert.Contains(t, wheres[0], "within_circle(location_1")
	assert.Contains(t, wheres[1], "within_circle(the_geom")
}

func TestFetchNearbyFallsBackWithoutCenter(t *testing.T) {
	var gotWhere, gotLimit string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotWhere = r.URL.Query().Get("$where")
		gotLimit = r.URL.Query().Get("$limit")
		w.Write([]byte(`[{"name":"citywide row"}]`))
	})

	fallback := url.Values{}
	fallback.Set("$limit", "2000")
	res := client.FetchNearby(context.Background(), "abcd-1234", nil, 500,
		[]string{"the_geom"}, fallback, 100)

	require.Len(t, res.Records, 1)
	assert.Empty(t, gotWhere)
	assert.Equal(t, "2000", gotLimit)
}

func TestFetchNearbyFallsBackWhenAllProbesEmpty(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("$where") != "" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"name":"fallback row"}]`))
	})

	center := &domain.GeoPoint{Lat: 40.7, Lng: -73.9}
	res := client.FetchNearby(context.Background(), "abcd-1234", center, 500,
		[]string{"the_geom"}, url.Values{}, 100)

	require.Len(t, res.Records, 1)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "fallback row", res.Records[0].Str("name"))
}
