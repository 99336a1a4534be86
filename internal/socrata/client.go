package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/observability"
)

// DefaultBaseURL is the NYC Open Data Socrata endpoint root.
const DefaultBaseURL = "https://data.cityofnewyork.us/resource"

// Result is the outcome of one dataset query. A degraded result carries no
// records and a reason, so callers (and tests) can tell a source failure
// apart from legitimately empty data. Fetch never returns an error: with
// ~30 independent queries per request, one dataset's outage must degrade to
// "no data from this source" rather than failing the whole aggregation.
type Result struct {
	Records  []domain.Record
	Degraded bool
	Reason   string
}

// OK wraps records in a healthy result.
func OK(records []domain.Record) Result {
	return Result{Records: records}
}

// DegradedResult marks a source as unavailable for this request.
func DegradedResult(reason string) Result {
	return Result{Degraded: true, Reason: reason}
}

// Skipped marks a source branch that was never queried, e.g. a spatial query
// with no centroid. Not degraded: the absence is expected.
func Skipped(reason string) Result {
	return Result{Reason: reason}
}

// Client issues bounded-time JSON queries against Socrata datasets.
type Client struct {
	baseURL    string
	appToken   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Socrata client. timeout is the default per-call budget;
// individual calls can override it via FetchTimeout.
func NewClient(baseURL, appToken string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		appToken: appToken,
		timeout:  timeout,
		// Deadlines are enforced per request via context, not on the client.
		httpClient: &http.Client{},
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch runs one GET against a dataset with the default timeout.
func (c *Client) Fetch(ctx context.Context, dataset string, query url.Values) Result {
	return c.FetchTimeout(ctx, dataset, query, c.timeout)
}

// FetchTimeout runs one GET against a dataset with an explicit per-call
// budget. Any failure mode -- transport error, timeout, non-2xx status,
// malformed payload -- degrades to an empty result.
func (c *Client) FetchTimeout(ctx context.Context, dataset string, query url.Values, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := fmt.Sprintf("%s/%s.json?%s", c.baseURL, dataset, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return c.degrade(dataset, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.degrade(dataset, fmt.Sprintf("request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.degrade(dataset, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var records []domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return c.degrade(dataset, fmt.Sprintf("decode: %v", err))
	}

	if c.metrics != nil {
		c.metrics.SourceFetches.WithLabelValues(dataset, "ok").Inc()
	}
	return OK(records)
}

func (c *Client) degrade(dataset, reason string) Result {
	if c.metrics != nil {
		c.metrics.SourceFetches.WithLabelValues(dataset, "degraded").Inc()
	}
	c.logger.Warn("source degraded", "dataset", dataset, "reason", reason)
	return DegradedResult(reason)
}

// FetchNearby probes a sequence of candidate geometry field names with a
// within_circle predicate, accepting the first non-empty result. Datasets
// name their point column inconsistently; a short ordered probe is cheaper
// than a schema lookup and degrades to the fallback query when the center is
// unknown or every spatial attempt comes back empty.
func (c *Client) FetchNearby(ctx context.Context, dataset string, center *domain.GeoPoint, radiusMeters int, geoFields []string, fallback url.Values, limit int) Result {
	if center != nil {
		for _, field := range geoFields {
			q := url.Values{}
			q.Set("$where", fmt.Sprintf("within_circle(%s,%f,%f,%d)", field, center.Lat, center.Lng, radiusMeters))
			q.Set("$limit", fmt.Sprintf("%d", limit))
			r := c.Fetch(ctx, dataset, q)
			if !r.Degraded && len(r.Records) > 0 {
				return r
			}
		}
	}
	return c.Fetch(ctx, dataset, fallback)
}
