package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field is a canonical upstream field name. Upstream records spell these many
// ways ("District Code", district_code, districtCode); the reconciler maps
// them all onto this set.
type Field string

const (
	FieldStateCode    Field = "stateCode"
	FieldStateName    Field = "stateName"
	FieldDistrictCode Field = "districtCode"
	FieldDistrictName Field = "districtName"
	FieldMonth        Field = "month"
	FieldFinYear      Field = "finYear"

	FieldTotalJobCards     Field = "totalJobCards"
	FieldActiveJobCards    Field = "activeJobCards"
	FieldTotalWorkers      Field = "totalWorkers"
	FieldActiveWorkers     Field = "activeWorkers"
	FieldHouseholdsWorked  Field = "householdsWorked"
	FieldIndividualsWorked Field = "individualsWorked"

	FieldTotalPersonDays Field = "totalPersonDays"
	FieldWomenPersonDays Field = "womenPersonDays"
	FieldSCPersonDays    Field = "scPersonDays"
	FieldSTPersonDays    Field = "stPersonDays"

	FieldWages            Field = "wages"
	FieldTotalExpenditure Field = "totalExpenditure"
	FieldAvgWageRate      Field = "averageWageRate"
	FieldAvgDaysPerHH     Field = "averageDaysPerHousehold"

	FieldCompletedWorks  Field = "completedWorks"
	FieldOngoingWorks    Field = "ongoingWorks"
	FieldTotalWorksTaken Field = "totalWorksTaken"

	FieldWomenParticipationPct Field = "womenParticipationPct"
	FieldSCParticipationPct    Field = "scParticipationPct"
	FieldSTParticipationPct    Field = "stParticipationPct"

	FieldNRMExpenditurePct    Field = "nrmExpenditurePct"
	FieldAgriExpenditurePct   Field = "agriExpenditurePct"
	FieldCategoryBPct         Field = "categoryBPct"
	FieldPaymentWithin15DPct  Field = "paymentWithin15DaysPct"
)

// fieldDescriptor binds a canonical field to its accepted upstream aliases in
// probe priority order. Alias matching is case-insensitive and ignores
// whitespace, underscores, and hyphens, so one alias covers "District Code",
// district_code, and districtCode at once.
type fieldDescriptor struct {
	field   Field
	aliases []string
}

// fieldTable covers the column headings observed in data.gov.in MGNREGA
// exports (tab-separated "at a glance" files) and the snake_case keys of the
// JSON resource API. New upstream schema variants only need new aliases here.
var fieldTable = []fieldDescriptor{
	{FieldStateCode, []string{"state_code"}},
	{FieldStateName, []string{"state_name", "state"}},
	{FieldDistrictCode, []string{"district_code"}},
	{FieldDistrictName, []string{"district_name", "district"}},
	{FieldMonth, []string{"month"}},
	{FieldFinYear, []string{"fin_year", "financial_year"}},

	{FieldTotalJobCards, []string{"total_no_of_job_cards_issued", "total_job_cards"}},
	{FieldActiveJobCards, []string{"total_no_of_active_job_cards", "active_job_cards"}},
	{FieldTotalWorkers, []string{"total_no_of_workers", "total_workers"}},
	{FieldActiveWorkers, []string{"total_no_of_active_workers", "active_workers"}},
	{FieldHouseholdsWorked, []string{"total_households_worked", "households_worked"}},
	{FieldIndividualsWorked, []string{"total_individuals_worked", "individuals_worked"}},

	{FieldTotalPersonDays, []string{"persondays_of_central_liability_so_far", "total_person_days", "total_persondays", "person_days_generated"}},
	{FieldWomenPersonDays, []string{"women_persondays", "women_person_days"}},
	{FieldSCPersonDays, []string{"sc_persondays", "sc_person_days"}},
	{FieldSTPersonDays, []string{"st_persondays", "st_person_days"}},

	{FieldWages, []string{"wages", "total_wages_paid"}},
	{FieldTotalExpenditure, []string{"total_exp", "total_expenditure"}},
	{FieldAvgWageRate, []string{"average_wage_rate_per_day_per_person", "average_wage_rate"}},
	{FieldAvgDaysPerHH, []string{"average_days_of_employment_provided_per_household", "avg_days_employment"}},

	{FieldCompletedWorks, []string{"number_of_completed_works", "works_completed"}},
	{FieldOngoingWorks, []string{"number_of_ongoing_works", "works_ongoing"}},
	{FieldTotalWorksTaken, []string{"total_no_of_works_takenup", "total_works"}},

	{FieldWomenParticipationPct, []string{"women_participation_percent", "women_participation"}},
	{FieldSCParticipationPct, []string{"sc_participation_percent", "sc_participation"}},
	{FieldSTParticipationPct, []string{"st_participation_percent", "st_participation"}},

	{FieldNRMExpenditurePct, []string{"percent_of_nrm_expenditure"}},
	{FieldAgriExpenditurePct, []string{"percent_of_expenditure_on_agriculture_allied_works"}},
	{FieldCategoryBPct, []string{"percent_of_category_b_works"}},
	// "Gererated" is the upstream column's own spelling; keep both.
	{FieldPaymentWithin15DPct, []string{"percentage_payments_gererated_within_15_days", "percentage_payments_generated_within_15_days"}},
}

// Record is an upstream record keyed by canonical field names. Values are the
// raw upstream strings; numeric coercion happens downstream.
type Record map[Field]string

// Get returns the raw value for a canonical field, or "" when the field was
// absent from the upstream record. Absence is not an error.
func (r Record) Get(f Field) string { return r[f] }

// Has reports whether the upstream record carried a non-empty value for f.
func (r Record) Has(f Field) bool { return r[f] != "" }

// Reconcile maps an upstream record of unknown shape onto the canonical field
// set. For each canonical field the aliases are probed in priority order and
// the first present, non-empty value wins. Unknown keys are ignored and
// missing fields are simply absent from the result; the only error is a
// top-level input that is not an associative structure.
func Reconcile(raw any) (Record, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("reconcile: expected object record, got %T", raw)
	}

	byKey := make(map[string]string, len(obj))
	for k, v := range obj {
		s := stringifyValue(v)
		if s == "" {
			continue
		}
		nk := normalizeKey(k)
		if _, exists := byKey[nk]; !exists {
			byKey[nk] = s
		}
	}

	rec := make(Record, len(fieldTable))
	for _, d := range fieldTable {
		for _, alias := range d.aliases {
			if v, ok := byKey[normalizeKey(alias)]; ok {
				rec[d.field] = v
				break
			}
		}
	}
	return rec, nil
}

// normalizeKey folds case and strips separators so that "District Code",
// district_code, and districtCode collide.
func normalizeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for _, r := range strings.ToLower(k) {
		switch r {
		case ' ', '\t', '_', '-':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stringifyValue renders the scalar value of an upstream field as a string.
// JSON decoding yields float64 for numbers; government exports mix quoted and
// bare numerics freely.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return ""
	}
}
