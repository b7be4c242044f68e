// Package resolver orchestrates the tiered data-sourcing policy: live
// government API, then the bundled reference table, then synthetic
// pattern-based generation.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sejal-1604/MGNREGA/internal/domain"
	"github.com/sejal-1604/MGNREGA/internal/observability"
	"github.com/sejal-1604/MGNREGA/internal/reference"
)

// ErrRegionNotFound is returned when a district identifier is unknown to
// every tier, including the reference table.
var ErrRegionNotFound = errors.New("region not found")

// Upstream is the live-tier client. A nil Upstream disables the live tier
// entirely (live mode off or credential unconfigured).
type Upstream interface {
	FetchStateRecords(ctx context.Context) ([]domain.Record, error)
}

// Cache keys. Entries are always replaced wholesale, never mutated in place,
// so a concurrent reader observes either the old aggregate or the new one.
const (
	cacheKeyDistricts  = "districts"
	cacheKeyDistrictPr = "district:"
)

// Resolver resolves district queries through the sourcing tiers in strict
// order. Tier transitions are logged and counted but never surfaced as
// errors; only an identifier unknown to the reference table yields
// ErrRegionNotFound.
type Resolver struct {
	upstream Upstream
	table    *reference.Table
	cache    *gocache.Cache
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// New creates a Resolver. The cache is constructed by the caller and
// injected so its lifecycle is explicit; pass a nil upstream to run in
// offline mode.
func New(upstream Upstream, table *reference.Table, cache *gocache.Cache, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	return &Resolver{
		upstream: upstream,
		table:    table,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// Districts returns the region list, optionally filtered by a free-text
// search. Queries shorter than two characters return the first limit
// regions unfiltered. The live tier is tried first; on any failure the
// bundled reference table serves the list.
func (r *Resolver) Districts(ctx context.Context, search string, limit int) []domain.Region {
	start := time.Now()
	defer func() { r.metrics.ResolveDuration.Observe(time.Since(start).Seconds()) }()

	regions := r.liveRegions(ctx)
	if regions == nil {
		r.metrics.TierAttempts.WithLabelValues(domain.SourceReference, "success").Inc()
		return r.table.Search(search, limit)
	}
	return filterRegions(regions, search, limit)
}

// liveRegions returns the live-tier region list, from cache when fresh,
// or nil when the live tier is disabled or failed.
func (r *Resolver) liveRegions(ctx context.Context) []domain.Region {
	if r.upstream == nil {
		return nil
	}

	if v, ok := r.cache.Get(cacheKeyDistricts); ok {
		r.metrics.CacheLookups.WithLabelValues("districts", "hit").Inc()
		return v.([]domain.Region)
	}
	r.metrics.CacheLookups.WithLabelValues("districts", "miss").Inc()

	recs, err := r.upstream.FetchStateRecords(ctx)
	if err != nil {
		r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "failure").Inc()
		r.metrics.TierFallthroughs.Inc()
		r.logger.Warn("live tier failed for district list, falling back to reference table", "error", err)
		return nil
	}

	regions := r.regionsFromRecords(recs)
	if len(regions) == 0 {
		r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "failure").Inc()
		r.metrics.TierFallthroughs.Inc()
		r.logger.Warn("live tier produced no regions, falling back to reference table")
		return nil
	}

	r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "success").Inc()
	r.cache.SetDefault(cacheKeyDistricts, regions)
	return regions
}

// DistrictData resolves the detail view for one district identifier. The
// identifier is either the composite "17_1711" or a bare district code.
// Live data is preferred; a district unknown to the reference table is the
// only way to get ErrRegionNotFound; otherwise the synthetic tier
// guarantees a result.
func (r *Resolver) DistrictData(ctx context.Context, id string) (domain.DistrictData, error) {
	start := time.Now()
	defer func() { r.metrics.ResolveDuration.Observe(time.Since(start).Seconds()) }()

	code := DistrictCode(id)

	if v, ok := r.cache.Get(cacheKeyDistrictPr + code); ok {
		r.metrics.CacheLookups.WithLabelValues("district", "hit").Inc()
		return v.(domain.DistrictData), nil
	}
	r.metrics.CacheLookups.WithLabelValues("district", "miss").Inc()

	data, err := r.resolveDistrict(ctx, code)
	if err != nil {
		return domain.DistrictData{}, err
	}
	r.cache.SetDefault(cacheKeyDistrictPr+code, data)
	return data, nil
}

// resolveDistrict walks the tiers for one district, bypassing the cache.
func (r *Resolver) resolveDistrict(ctx context.Context, code string) (domain.DistrictData, error) {
	var recs []domain.Record
	if r.upstream != nil {
		var err error
		recs, err = r.upstream.FetchStateRecords(ctx)
		if err != nil {
			r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "failure").Inc()
			r.metrics.TierFallthroughs.Inc()
			r.logger.Warn("live tier failed for district data, falling through", "district", code, "error", err)
			recs = nil
		}
	}
	return r.districtDataFrom(recs, code)
}

// districtDataFrom walks the tiers for one district against an already
// fetched record set, so a refresh cycle can reuse one upstream fetch for
// every district instead of fetching per district.
func (r *Resolver) districtDataFrom(recs []domain.Record, code string) (domain.DistrictData, error) {
	if len(recs) > 0 {
		if data, ok := r.liveDistrictData(code, recs); ok {
			r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "success").Inc()
			return data, nil
		}
		r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "failure").Inc()
		r.metrics.TierFallthroughs.Inc()
		r.logger.Info("live tier carried no records for district, falling through", "district", code)
	}

	region, ok := r.table.ByCode(code)
	if !ok {
		// All tiers exhausted: the synthetic tier needs a region identity
		// to seed from, so an unknown code is a not-found, not a fault.
		return domain.DistrictData{}, ErrRegionNotFound
	}
	r.metrics.TierAttempts.WithLabelValues(domain.SourceReference, "success").Inc()

	r.logger.Info("serving pattern-based district data", "district", code, "name", region.Name)
	r.metrics.TierAttempts.WithLabelValues(domain.SourcePattern, "success").Inc()
	return domain.DistrictData{
		MetricRecord: domain.SyntheticRecord(region),
		MonthlyTrend: domain.MonthlyTrend(nil),
	}, nil
}

// liveDistrictData assembles the detail view from upstream records: the
// latest record feeds the metric snapshot and breakdowns, the full history
// feeds the monthly trend.
func (r *Resolver) liveDistrictData(code string, recs []domain.Record) (domain.DistrictData, bool) {
	history := make([]domain.Record, 0, 12)
	for _, rec := range recs {
		if rec.Get(domain.FieldDistrictCode) == code {
			history = append(history, rec)
		}
	}
	if len(history) == 0 {
		return domain.DistrictData{}, false
	}

	sortByPeriod(history)
	latest := history[len(history)-1]

	region := r.regionFromRecord(latest)
	region.DataSource = domain.SourceLive

	return domain.DistrictData{
		MetricRecord:   domain.BuildMetricRecord(region, latest, domain.SourceLive),
		MonthlyTrend:   domain.MonthlyTrend(history),
		WorkCategories: domain.BuildWorkCategories(latest),
		PaymentStatus:  domain.BuildPaymentStatus(latest),
	}, true
}

// Nearest returns the reference region closest to the coordinate.
func (r *Resolver) Nearest(lat, lon float64) (domain.Region, float64, error) {
	region, dist, ok := r.table.Nearest(lat, lon)
	if !ok {
		return domain.Region{}, 0, ErrRegionNotFound
	}
	return region, dist, nil
}

// Refresh re-runs resolution for the full region set and atomically replaces
// the cache entries. The upstream is fetched once for the whole cycle and
// the record set shared across every district, keeping a cycle at one API
// call rather than one per district. Idempotent and safe to call repeatedly;
// returns the refreshed detail records for optional export.
func (r *Resolver) Refresh(ctx context.Context) ([]domain.DistrictData, error) {
	start := time.Now()

	var recs []domain.Record
	if r.upstream != nil {
		var err error
		recs, err = r.upstream.FetchStateRecords(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.metrics.TierAttempts.WithLabelValues(domain.SourceLive, "failure").Inc()
			r.metrics.TierFallthroughs.Inc()
			r.logger.Warn("live tier failed for refresh cycle, serving lower tiers", "error", err)
			recs = nil
		}
	}

	regions := r.table.All()
	if live := r.regionsFromRecords(recs); len(live) > 0 {
		regions = live
		r.cache.SetDefault(cacheKeyDistricts, live)
	}

	out := make([]domain.DistrictData, 0, len(regions))
	for _, region := range regions {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		data, err := r.districtDataFrom(recs, region.DistrictCode)
		if err != nil {
			// Live-derived districts missing from the reference table
			// cannot be synthesized; skip rather than abort the cycle.
			r.logger.Warn("refresh skipped district", "district", region.DistrictCode, "error", err)
			continue
		}
		r.cache.SetDefault(cacheKeyDistrictPr+region.DistrictCode, data)
		out = append(out, data)
	}

	r.metrics.RefreshRuns.Inc()
	r.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	r.logger.Info("refresh complete", "districts", len(out), "took", time.Since(start))
	return out, nil
}

// LiveEnabled reports whether the live tier is wired in.
func (r *Resolver) LiveEnabled() bool { return r.upstream != nil }

// RegionCount returns the size of the reference table.
func (r *Resolver) RegionCount() int { return r.table.Len() }

// DistrictCode extracts the district code from a region identifier, which is
// either the composite "<state>_<district>" or a bare code.
func DistrictCode(id string) string {
	if _, code, ok := strings.Cut(id, "_"); ok {
		return code
	}
	return id
}

// regionsFromRecords collapses upstream records into unique regions in
// district-code order, enriching names and coordinates from the reference
// table when the code is known there.
func (r *Resolver) regionsFromRecords(recs []domain.Record) []domain.Region {
	seen := make(map[string]bool, len(recs))
	out := make([]domain.Region, 0, len(recs))
	for _, rec := range recs {
		code := rec.Get(domain.FieldDistrictCode)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		region := r.regionFromRecord(rec)
		region.DataSource = domain.SourceLive
		out = append(out, region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistrictCode < out[j].DistrictCode })
	return out
}

// regionFromRecord derives a Region from an upstream record, preferring the
// reference table's localized name and coordinates over upstream defaults.
func (r *Resolver) regionFromRecord(rec domain.Record) domain.Region {
	code := rec.Get(domain.FieldDistrictCode)
	if known, ok := r.table.ByCode(code); ok {
		if name := rec.Get(domain.FieldDistrictName); name != "" {
			known.Name = canonicalName(name, known.Name)
		}
		return known
	}

	stateCode := rec.Get(domain.FieldStateCode)
	if stateCode == "" {
		stateCode = reference.StateCode
	}
	return domain.Region{
		ID:           stateCode + "_" + code,
		Name:         canonicalName(rec.Get(domain.FieldDistrictName), code),
		StateName:    reference.StateName,
		StateCode:    stateCode,
		DistrictCode: code,
		// State centroid; upstream records carry no coordinates.
		Lat: 23.0,
		Lon: 77.0,
	}
}

// canonicalName title-cases the upstream ALL-CAPS district names, keeping
// the reference spelling when the upstream value is empty.
func canonicalName(upstream, fallback string) string {
	upstream = strings.TrimSpace(upstream)
	if upstream == "" {
		return fallback
	}
	words := strings.Fields(strings.ToLower(upstream))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// filterRegions applies the search semantics of the reference table to a
// live-derived region list.
func filterRegions(regions []domain.Region, query string, limit int) []domain.Region {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return truncate(regions, limit)
	}
	lower := strings.ToLower(query)
	out := make([]domain.Region, 0, 8)
	for _, r := range regions {
		if strings.Contains(strings.ToLower(r.Name), lower) ||
			strings.Contains(r.HindiName, query) ||
			strings.Contains(strings.ToLower(r.StateName), lower) {
			out = append(out, r)
		}
	}
	return truncate(out, limit)
}

func truncate(regions []domain.Region, limit int) []domain.Region {
	if limit > 0 && len(regions) > limit {
		return regions[:limit]
	}
	return regions
}

// sortByPeriod orders records by (financial year, fiscal month position).
// Indian financial years run April through March, so April sorts first
// within a year.
func sortByPeriod(recs []domain.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		yi, yj := recs[i].Get(domain.FieldFinYear), recs[j].Get(domain.FieldFinYear)
		if yi != yj {
			return yi < yj
		}
		return fiscalPosition(recs[i].Get(domain.FieldMonth)) < fiscalPosition(recs[j].Get(domain.FieldMonth))
	})
}

func fiscalPosition(month string) int {
	i, ok := domain.MonthPosition(month)
	if !ok {
		return -1
	}
	return (i + 9) % 12 // Apr=0 ... Mar=11
}
