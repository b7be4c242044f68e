// Package datagov implements the data.gov.in upstream client for the live
// sourcing tier.
package datagov

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sejal-1604/MGNREGA/internal/domain"
	"github.com/sejal-1604/MGNREGA/internal/observability"
)

// ErrNoUsableRecords is returned when every candidate resource either failed
// or produced zero usable Madhya Pradesh records.
var ErrNoUsableRecords = errors.New("datagov: no usable records from any resource")

// recordLimit caps how many rows a single probe requests.
const recordLimit = 500

// Client fetches MGNREGA records from the data.gov.in resource API. The
// dataset's resource identifier is not stable across ministry re-publishes,
// so the client probes a configured candidate list in order and
// short-circuits on the first resource yielding at least one usable record.
type Client struct {
	baseURL     string
	apiKey      string
	resourceIDs []string
	stateCode   string
	timeout     time.Duration
	httpClient  *http.Client
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a data.gov.in client. The timeout bounds one whole
// FetchStateRecords call, across every candidate resource, so a hung
// upstream cannot stall a request past the caller's own deadlines.
func NewClient(baseURL, apiKey string, resourceIDs []string, stateCode string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		resourceIDs: resourceIDs,
		stateCode:   stateCode,
		timeout:     timeout,
		httpClient:  &http.Client{},
		metrics:     metrics,
		logger:      logger,
	}
}

// FetchStateRecords returns the reconciled records for the configured state.
// Candidate resources are probed sequentially under one shared deadline;
// failures are logged and the next candidate is tried. ErrNoUsableRecords is
// returned only when the whole candidate list is exhausted.
func (c *Client) FetchStateRecords(ctx context.Context) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	for _, rid := range c.resourceIDs {
		recs, err := c.fetchResource(ctx, rid)
		if err != nil {
			c.metrics.UpstreamRequests.WithLabelValues(rid, "error").Inc()
			c.logger.Warn("resource probe failed", "resource", rid, "error", err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if len(recs) == 0 {
			c.metrics.UpstreamRequests.WithLabelValues(rid, "empty").Inc()
			c.logger.Info("resource returned no usable records", "resource", rid)
			continue
		}
		c.metrics.UpstreamRequests.WithLabelValues(rid, "success").Inc()
		c.logger.Info("resource probe succeeded", "resource", rid, "records", len(recs))
		return recs, nil
	}
	return nil, ErrNoUsableRecords
}

func (c *Client) fetchResource(ctx context.Context, rid string) ([]domain.Record, error) {
	params := url.Values{
		"api-key": {c.apiKey},
		"format":  {"json"},
		"limit":   {fmt.Sprint(recordLimit)},
	}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(rid), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", rid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("resource %s: status %d: %s", rid, resp.StatusCode, body)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("resource %s: decode response: %w", rid, err)
	}

	rows, err := unwrapRecords(payload)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", rid, err)
	}

	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := domain.Reconcile(row)
		if err != nil {
			// Non-object rows inside an otherwise valid response are
			// skipped, not fatal.
			continue
		}
		if c.usable(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// unwrapRecords extracts the record array from the known top-level wrapper
// shapes: {"records": [...]}, {"data": [...]}, or a bare array.
func unwrapRecords(payload any) ([]any, error) {
	switch t := payload.(type) {
	case []any:
		return t, nil
	case map[string]any:
		for _, key := range []string{"records", "data"} {
			if arr, ok := t[key].([]any); ok {
				return arr, nil
			}
		}
		return nil, errors.New("response object carries no records or data array")
	default:
		return nil, fmt.Errorf("unrecognized response shape %T", payload)
	}
}

// usable keeps records that belong to the configured state and identify a
// district. State matching tolerates both the numeric code and name
// variants ("MADHYA PRADESH", "Madhya Pradesh", "MP").
func (c *Client) usable(rec domain.Record) bool {
	if !rec.Has(domain.FieldDistrictCode) && !rec.Has(domain.FieldDistrictName) {
		return false
	}
	if code := rec.Get(domain.FieldStateCode); code != "" {
		return code == c.stateCode
	}
	state := strings.ToUpper(rec.Get(domain.FieldStateName))
	return strings.Contains(state, "MADHYA") || state == "MP"
}
