// Package domain models MGNREGA (Mahatma Gandhi National Rural Employment
// Guarantee Act) district statistics for Madhya Pradesh.
//
// # Data Source
//
// District figures originate from the Ministry of Rural Development's
// "MGNREGA at a glance" dataset published on data.gov.in. The same data
// circulates in two shapes: a tab-separated export with human-readable
// column headings ("Total No Of Job Cards Issued", "Women Persondays") and
// a JSON resource API with snake_case keys (total_job_cards,
// women_persondays). Neither shape is stable, so every record passes through
// [Reconcile], which maps all known spellings onto the canonical [Field] set
// before any coercion happens.
//
// # Upstream Conventions
//
// Numeric columns:
//
//	Counts (job cards, workers, person-days, works) are base-10 integers,
//	sometimes with a stray decimal tail. Monetary columns (Wages, Total Exp)
//	are in lakh INR with long decimal fractions. Absent or unparseable
//	values coerce to 0, never to an error. Negative values pass through
//	uncapped: the ministry publishes correction rows.
//
// Months:
//
//	The "Month" column carries three-letter English abbreviations ("Dec");
//	some resource variants use full names or numeric months. Trend output
//	uses Hindi calendar labels in fixed January-December order.
//
// Percentages:
//
//	Participation percentages are derived as round-half-up(subgroup /
//	total * 100) over person-days, 0 when the denominator is 0. The
//	work-category percentage columns rarely sum to 100; the residual is
//	attributed to rural infrastructure, floored at zero. The payment
//	timeliness column can legitimately exceed 100.
//
// # Provenance
//
// Every Region and MetricRecord carries a DataSource tag naming the tier
// that produced it: "live" (government API), "reference" (bundled district
// table), or "pattern" (synthetic, non-authoritative). Consumers must be
// able to tell authoritative data from generated data, so the tag is never
// dropped.
package domain
