package domain

import (
	"math"
	"strconv"
	"strings"
)

// parseIntOrZero parses a base-10 integer, returning 0 on failure or absence.
// Upstream occasionally publishes integer columns with a decimal tail; those
// are truncated rather than rejected.
func parseIntOrZero(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// parseFloatOrZero parses a decimal number, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// roundHalfUp rounds to the nearest integer with halves rounding up, matching
// the rounding the upstream dashboard applies to percentages.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// participationPct computes round(part/total*100) when total > 0, else 0.
// Never faults on a zero denominator.
func participationPct(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(total) * 100)
}

// BuildMetricRecord coerces a reconciled upstream record into a typed
// MetricRecord for the given region, tagged with its provenance. Missing or
// unparseable numeric fields coerce to 0; negative values are preserved
// as-is since correction rows legitimately carry them.
func BuildMetricRecord(region Region, rec Record, source string) MetricRecord {
	m := MetricRecord{
		Region: region,

		TotalJobCards:     parseIntOrZero(rec.Get(FieldTotalJobCards)),
		ActiveJobCards:    parseIntOrZero(rec.Get(FieldActiveJobCards)),
		TotalWorkers:      parseIntOrZero(rec.Get(FieldTotalWorkers)),
		ActiveWorkers:     parseIntOrZero(rec.Get(FieldActiveWorkers)),
		HouseholdsWorked:  parseIntOrZero(rec.Get(FieldHouseholdsWorked)),
		IndividualsWorked: parseIntOrZero(rec.Get(FieldIndividualsWorked)),

		WomenPersonDays: parseIntOrZero(rec.Get(FieldWomenPersonDays)),
		SCPersonDays:    parseIntOrZero(rec.Get(FieldSCPersonDays)),
		STPersonDays:    parseIntOrZero(rec.Get(FieldSTPersonDays)),

		Wages:            parseFloatOrZero(rec.Get(FieldWages)),
		TotalExpenditure: parseFloatOrZero(rec.Get(FieldTotalExpenditure)),
		AverageWageRate:  parseFloatOrZero(rec.Get(FieldAvgWageRate)),

		CompletedWorks:  parseIntOrZero(rec.Get(FieldCompletedWorks)),
		OngoingWorks:    parseIntOrZero(rec.Get(FieldOngoingWorks)),
		TotalWorksTaken: parseIntOrZero(rec.Get(FieldTotalWorksTaken)),

		Month:         rec.Get(FieldMonth),
		FinancialYear: rec.Get(FieldFinYear),
		FetchedAt:     clock.Now(),
	}
	m.Region.DataSource = source

	// Person-day totals: prefer the published total, else the sum of the
	// subgroup columns, which is what the at-a-glance export implies.
	if rec.Has(FieldTotalPersonDays) {
		m.TotalPersonDays = parseIntOrZero(rec.Get(FieldTotalPersonDays))
	} else {
		m.TotalPersonDays = m.SCPersonDays + m.STPersonDays + m.WomenPersonDays
	}

	// Average days per household comes from the record when published;
	// otherwise recompute from the aggregates, guarding the zero denominator.
	if rec.Has(FieldAvgDaysPerHH) {
		m.AverageDaysPerHousehold = parseFloatOrZero(rec.Get(FieldAvgDaysPerHH))
	} else if m.HouseholdsWorked > 0 {
		m.AverageDaysPerHousehold = float64(m.TotalPersonDays) / float64(m.HouseholdsWorked)
	}

	m.WomenParticipation = subgroupPct(m.WomenPersonDays, m.TotalPersonDays, rec, FieldWomenParticipationPct)
	m.SCParticipation = subgroupPct(m.SCPersonDays, m.TotalPersonDays, rec, FieldSCParticipationPct)
	m.STParticipation = subgroupPct(m.STPersonDays, m.TotalPersonDays, rec, FieldSTParticipationPct)

	return m
}

// subgroupPct derives a participation percentage from person-day counts,
// falling back to an explicitly published percentage column when the counts
// are not available.
func subgroupPct(part, total int64, rec Record, explicit Field) int {
	if total > 0 {
		return participationPct(part, total)
	}
	if rec.Has(explicit) {
		return roundHalfUp(parseFloatOrZero(rec.Get(explicit)))
	}
	return 0
}

// BuildWorkCategories derives the work-category expenditure breakdown from a
// reconciled record. The named percentage columns rarely sum to 100; the
// remainder is attributed to a rural-infrastructure bucket, floored at zero.
// Categories that round to zero are dropped from the output.
func BuildWorkCategories(rec Record) []WorkCategory {
	nrm := parseFloatOrZero(rec.Get(FieldNRMExpenditurePct))
	agri := parseFloatOrZero(rec.Get(FieldAgriExpenditurePct))
	categoryB := parseFloatOrZero(rec.Get(FieldCategoryBPct))
	infra := math.Max(0, 100-nrm-agri-categoryB)
	completed := parseIntOrZero(rec.Get(FieldCompletedWorks))

	all := []WorkCategory{
		{Name: "Natural Resource Management", Hindi: "प्राकृतिक संसाधन प्रबंधन", Value: roundHalfUp(nrm), Color: "#10b981"},
		{Name: "Agriculture & Allied Works", Hindi: "कृषि और संबद्ध कार्य", Value: roundHalfUp(agri), Color: "#f59e0b"},
		{Name: "Rural Infrastructure", Hindi: "ग्रामीण अवसंरचना", Value: roundHalfUp(infra), Color: "#3b82f6"},
		{Name: "Category B Works", Hindi: "श्रेणी बी कार्य", Value: roundHalfUp(math.Max(0, categoryB)), Color: "#ef4444"},
	}

	out := make([]WorkCategory, 0, len(all))
	for _, c := range all {
		if c.Value <= 0 {
			continue
		}
		c.Count = roundCount(float64(c.Value)/100, completed)
		out = append(out, c)
	}
	return out
}

func roundCount(fraction float64, total int64) int64 {
	return int64(roundHalfUp(fraction * float64(total)))
}

// BuildPaymentStatus derives the wage-payment timeliness breakdown. The
// upstream percentage occasionally exceeds 100 (delayed prior-month payments
// generated in the reporting month); the pending share is floored at zero.
func BuildPaymentStatus(rec Record) []PaymentStatus {
	within := parseFloatOrZero(rec.Get(FieldPaymentWithin15DPct))
	pending := math.Max(0, 100-within)

	return []PaymentStatus{
		{Name: "भुगतान हो गया (15 दिन में)", Value: roundHalfUp(within), Color: "#10b981"},
		{Name: "भुगतान बाकी", Value: roundHalfUp(pending), Color: "#f59e0b"},
	}
}
