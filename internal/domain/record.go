package domain

import "time"

// Provenance tags identifying which sourcing tier produced a record.
const (
	SourceLive      = "live"
	SourceReference = "reference"
	SourcePattern   = "pattern"
)

// Region is a single administrative district. Constructed once from the
// reference table or derived from an upstream record; immutable afterwards.
type Region struct {
	ID           string  `json:"id"` // "<stateCode>_<districtCode>", e.g. "17_1711"
	Name         string  `json:"name"`
	HindiName    string  `json:"hindi"`
	StateName    string  `json:"state"`
	StateCode    string  `json:"stateCode"`
	DistrictCode string  `json:"districtCode"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lng"`

	DataSource string `json:"dataSource,omitempty"`
}

// MetricRecord is one snapshot of MGNREGA program statistics for a Region.
// Numeric fields are zero when the upstream field was absent or unparseable;
// negative values pass through uncapped (government data occasionally carries
// correction rows).
type MetricRecord struct {
	Region

	TotalJobCards     int64 `json:"totalJobCards"`
	ActiveJobCards    int64 `json:"activeJobCards"`
	TotalWorkers      int64 `json:"totalWorkers"`
	ActiveWorkers     int64 `json:"activeWorkers"`
	HouseholdsWorked  int64 `json:"householdsWorked"`
	IndividualsWorked int64 `json:"individualsWorked"`

	TotalPersonDays int64 `json:"totalPersonDays"`
	WomenPersonDays int64 `json:"womenPersonDays"`
	SCPersonDays    int64 `json:"scPersonDays"`
	STPersonDays    int64 `json:"stPersonDays"`

	// Monetary figures are in lakh INR, as published upstream.
	Wages            float64 `json:"wages"`
	TotalExpenditure float64 `json:"totalExpenditure"`

	AverageWageRate         float64 `json:"averageWageRate"`
	AverageDaysPerHousehold float64 `json:"averageDaysPerHousehold"`

	CompletedWorks  int64 `json:"completedWorks"`
	OngoingWorks    int64 `json:"ongoingWorks"`
	TotalWorksTaken int64 `json:"totalWorksTaken"`

	// Participation percentages over total person-days, rounded half-up.
	WomenParticipation int `json:"womenParticipation"`
	SCParticipation    int `json:"scParticipation"`
	STParticipation    int `json:"stParticipation"`

	Month         string    `json:"month"`
	FinancialYear string    `json:"finYear"`
	FetchedAt     time.Time `json:"fetchedAt"`
}

// TrendPoint is one month of the fixed 12-point employment trend.
type TrendPoint struct {
	Month      string  `json:"month"` // localized (Hindi) month label
	Employment int64   `json:"employment"`
	Wages      float64 `json:"wages"`
	Works      int64   `json:"works"`
}

// WorkCategory is one slice of the work-category expenditure breakdown.
// Categories that round to zero are excluded from the output set.
type WorkCategory struct {
	Name  string `json:"name"`
	Hindi string `json:"hindi"`
	Value int    `json:"value"` // percentage of expenditure
	Count int64  `json:"count"` // completed works attributed to the category
	Color string `json:"color"`
}

// PaymentStatus is one slice of the wage-payment timeliness breakdown.
type PaymentStatus struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DistrictData is the full detail view for a district: the latest metric
// snapshot plus aggregates recomputed from the underlying records. The
// aggregates are views, never persisted as ground truth.
type DistrictData struct {
	MetricRecord

	MonthlyTrend   []TrendPoint    `json:"monthlyData"`
	WorkCategories []WorkCategory  `json:"workCategories,omitempty"`
	PaymentStatus  []PaymentStatus `json:"paymentStatus,omitempty"`
}
