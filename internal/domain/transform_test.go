package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegion = Region{
	ID:           "17_1711",
	Name:         "Damoh",
	HindiName:    "दमोह",
	StateName:    "Madhya Pradesh",
	StateCode:    "17",
	DistrictCode: "1711",
	Lat:          23.8315,
	Lon:          79.4422,
}

func TestBuildMetricRecord(t *testing.T) {
	fetchTime := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fetchTime))
	defer SetClock(nil)

	t.Run("full government record", func(t *testing.T) {
		raw := map[string]any{
			"Fin Year":                               "2022-2023",
			"Month":                                  "Dec",
			"State Code":                             "17",
			"District Code":                          "1711",
			"District Name":                          "DAMOH",
			"Total No Of Job Cards Issued":           "237032",
			"Total No Of Active Job Cards":           "134432",
			"Total No Of Workers":                    "476219",
			"Total No Of Active Workers":             "238392",
			"Total Households Worked":                "115492",
			"Total Individuals Worked":               "185696",
			"Persondays Of Central Liability So Far": "5706604",
			"SC Persondays":                          "869946",
			"ST Persondays":                          "946671",
			"Women Persondays":                       "2107566",
			"Wages":                                  "11257.6632178",
			"Total Exp":                              "18823.775516366",

			"Average Wage Rate Per Day Per Person":              "197.274302155888",
			"Average Days Of Employment Provided Per Household": "49",
			"Number Of Completed Works":                         "32144",
			"Number Of Ongoing Works":                           "31104",
			"Total No Of Works Takenup":                         "63248",
		}
		rec, err := Reconcile(raw)
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)

		assert.Equal(t, int64(237032), m.TotalJobCards)
		assert.Equal(t, int64(134432), m.ActiveJobCards)
		assert.Equal(t, int64(476219), m.TotalWorkers)
		assert.Equal(t, int64(238392), m.ActiveWorkers)
		assert.Equal(t, int64(115492), m.HouseholdsWorked)
		assert.Equal(t, int64(185696), m.IndividualsWorked)
		assert.Equal(t, int64(5706604), m.TotalPersonDays)
		assert.InDelta(t, 11257.66, m.Wages, 0.01)
		assert.InDelta(t, 18823.78, m.TotalExpenditure, 0.01)
		assert.InDelta(t, 197.27, m.AverageWageRate, 0.01)
		assert.Equal(t, 49.0, m.AverageDaysPerHousehold)
		assert.Equal(t, int64(32144), m.CompletedWorks)
		assert.Equal(t, int64(31104), m.OngoingWorks)
		assert.Equal(t, int64(63248), m.TotalWorksTaken)
		assert.Equal(t, "Dec", m.Month)
		assert.Equal(t, "2022-2023", m.FinancialYear)
		assert.Equal(t, SourceLive, m.DataSource)
		assert.Equal(t, fetchTime, m.FetchedAt)

		// 2107566 / 5706604 * 100 = 36.93... -> 37
		assert.Equal(t, 37, m.WomenParticipation)
		assert.Equal(t, 15, m.SCParticipation)
		assert.Equal(t, 17, m.STParticipation)
	})

	t.Run("missing numeric fields coerce to zero", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{"District Code": "1711"})
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)

		assert.Equal(t, int64(0), m.TotalJobCards)
		assert.Equal(t, int64(0), m.TotalPersonDays)
		assert.Equal(t, 0.0, m.Wages)
		assert.Equal(t, 0.0, m.AverageWageRate)
		assert.Equal(t, 0.0, m.AverageDaysPerHousehold)
		assert.Equal(t, 0, m.WomenParticipation)
	})

	t.Run("garbage numerics coerce to zero", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"Total No Of Job Cards Issued": "N/A",
			"Wages":                        "unknown",
		})
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)

		assert.Equal(t, int64(0), m.TotalJobCards)
		assert.Equal(t, 0.0, m.Wages)
	})

	t.Run("negative correction values pass through uncapped", func(t *testing.T) {
		// Clamping negatives is an open product decision; current policy
		// preserves them for auditability.
		rec, err := Reconcile(map[string]any{
			"Number Of Completed Works": "-120",
			"Wages":                     "-33.5",
		})
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)

		assert.Equal(t, int64(-120), m.CompletedWorks)
		assert.Equal(t, -33.5, m.Wages)
	})

	t.Run("person-day total falls back to subgroup sum", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"SC Persondays":    "100",
			"ST Persondays":    "200",
			"Women Persondays": "300",
		})
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)
		assert.Equal(t, int64(600), m.TotalPersonDays)
		assert.Equal(t, 50, m.WomenParticipation)
	})

	t.Run("average days recomputed when column absent", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"Persondays Of Central Liability So Far": "1000",
			"Total Households Worked":                "40",
		})
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)
		assert.Equal(t, 25.0, m.AverageDaysPerHousehold)
	})

	t.Run("explicit participation columns used when persondays absent", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"women_participation_percent": "52.6",
			"sc_participation_percent":    "18.2",
		})
		require.NoError(t, err)

		m := BuildMetricRecord(testRegion, rec, SourceLive)
		assert.Equal(t, 53, m.WomenParticipation)
		assert.Equal(t, 18, m.SCParticipation)
		assert.Equal(t, 0, m.STParticipation)
	})
}

func TestParticipationPct(t *testing.T) {
	tests := []struct {
		name  string
		part  int64
		total int64
		want  int
	}{
		{"zero total", 500, 0, 0},
		{"negative total", 500, -1, 0},
		{"exact half rounds up", 1, 8, 13}, // 12.5 -> 13
		{"full participation", 7, 7, 100},
		{"damoh women share", 2107566, 5706604, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, participationPct(tt.part, tt.total))
		})
	}
}

func TestParseIntOrZero(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain integer", "237032", 237032},
		{"whitespace", " 42 ", 42},
		{"decimal tail truncated", "49.0", 49},
		{"empty", "", 0},
		{"garbage", "NA", 0},
		{"negative preserved", "-7", -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIntOrZero(tt.in))
		})
	}
}

func TestBuildWorkCategories(t *testing.T) {
	t.Run("residual bucket and counts", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"Percent Of NRM Expenditure":                         "55.88",
			"Percent Of Expenditure On Agriculture Allied Works": "20",
			"Percent Of Category B Works":                        "10",
			"Number Of Completed Works":                          "1000",
		})
		require.NoError(t, err)

		cats := BuildWorkCategories(rec)
		require.Len(t, cats, 4)
		assert.Equal(t, "Natural Resource Management", cats[0].Name)
		assert.Equal(t, 56, cats[0].Value)
		assert.Equal(t, int64(560), cats[0].Count)
		// Residual: 100 - 55.88 - 20 - 10 = 14.12 -> 14
		assert.Equal(t, "Rural Infrastructure", cats[2].Name)
		assert.Equal(t, 14, cats[2].Value)
	})

	t.Run("named percentages exceeding 100 floor the residual", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"Percent Of NRM Expenditure":                         "55.88",
			"Percent Of Expenditure On Agriculture Allied Works": "86.3",
			"Percent Of Category B Works":                        "86",
		})
		require.NoError(t, err)

		for _, c := range BuildWorkCategories(rec) {
			assert.NotEqual(t, "Rural Infrastructure", c.Name)
		}
	})

	t.Run("zero categories are excluded, not zero-padded", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"Percent Of NRM Expenditure": "100",
		})
		require.NoError(t, err)

		cats := BuildWorkCategories(rec)
		require.Len(t, cats, 1)
		assert.Equal(t, "Natural Resource Management", cats[0].Name)
	})
}

func TestBuildPaymentStatus(t *testing.T) {
	t.Run("over-100 timeliness floors pending at zero", func(t *testing.T) {
		rec, err := Reconcile(map[string]any{
			"Percentage Payments Gererated Within 15 Days": "100.27",
		})
		require.NoError(t, err)

		status := BuildPaymentStatus(rec)
		require.Len(t, status, 2)
		assert.Equal(t, 100, status[0].Value)
		assert.Equal(t, 0, status[1].Value)
	})

	t.Run("absent column reads as fully pending", func(t *testing.T) {
		status := BuildPaymentStatus(Record{})
		require.Len(t, status, 2)
		assert.Equal(t, 0, status[0].Value)
		assert.Equal(t, 100, status[1].Value)
	})
}
