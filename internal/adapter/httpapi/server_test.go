package httpapi_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/adapter/httpapi"
	"github.com/vimldn/vimnyc8/internal/aggregate"
	"github.com/vimldn/vimnyc8/internal/observability"
	"github.com/vimldn/vimnyc8/internal/review"
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
	"unitstotal": "150",
	"yearbuilt": "1931"
}]`

// newTestServer wires the full API against a Socrata stub that answers PLUTO
// queries and returns empty sets for everything else.
func newTestServer(t *testing.T, plutoBody string) *httpapi.Server {
	t.Helper()
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+socrata.DatasetPLUTO+".json" {
			w.Write([]byte(plutoBody))
			return
		}
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(stub.Close)

	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	client := socrata.NewClient(stub.URL, "", 5*time.Second, slog.Default(), metrics)
	svc := aggregate.NewService(client, clock, slog.Default(), metrics, 2*time.Second)

	store, err := review.Open(filepath.Join(t.TempDir(), "reviews.db"), clock)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return httpapi.NewServer(":0", svc, store, slog.Default(), metrics)
}

func doRequest(srv *httpapi.Server, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestBuildingEndpoint(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/api/building?bbl=1008350041", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	building := body["building"].(map[string]any)
	assert.Equal(t, "350 FIFTH AVENUE", building["address"])
	score := body["score"].(map[string]any)
	assert.Equal(t, float64(100), score["overall"])
}

func TestBuildingEndpointMissingBBL(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/api/building", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BBL parameter required", body["error"])
}

func TestBuildingEndpointNotFound(t *testing.T) {
	srv := newTestServer(t, `[]`)
	rec := doRequest(srv, http.MethodGet, "/api/building?bbl=1000000001", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildingEndpointInvalidBBL(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/api/building?bbl=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookupEndpoint(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/api/lookup?address=350+Fifth+Avenue,+Manhattan", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1008350041", body["bbl"])
}

func TestLookupEndpointNotFound(t *testing.T) {
	srv := newTestServer(t, `[]`)
	rec := doRequest(srv, http.MethodGet, "/api/lookup?address=1+nowhere+lane", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Try including borough name")
}

func TestLookupEndpointMissingAddress(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/api/lookup", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutocompleteEndpoint(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/api/autocomplete?q=350+fifth", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["suggestions"], 1)
	assert.Equal(t, "350 FIFTH AVENUE", body["suggestions"][0]["address"])
}

func TestReviewLifecycle(t *testing.T) {
	srv := newTestServer(t, plutoRow)

	rec := doRequest(srv, http.MethodPost, "/api/reviews", `{
		"bbl": "1008350041",
		"rating": 5,
		"review": "Great building, well maintained and quiet.",
		"email": "tenant@example.com",
		"phone": "555-0101"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool          `json:"success"`
		Review  review.Review `json:"review"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Review.ID)
	assert.Equal(t, "Anonymous", created.Review.AuthorName)

	rec = doRequest(srv, http.MethodGet, "/api/reviews?bbl=1008350041", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary review.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, 5.0, summary.AverageRating)

	rec = doRequest(srv, http.MethodPost, "/api/reviews/helpful", `{"reviewId":"`+created.Review.ID+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReviewValidationError(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodPost, "/api/reviews", `{"bbl":"1008350041","rating":5,"review":"short"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkHelpfulUnknownReview(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodPost, "/api/reviews/helpful", `{"reviewId":"missing"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, plutoRow)
	rec := doRequest(srv, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
