package domain

// hindiMonths lists the localized calendar-month labels in fixed order. The
// trend filler always emits exactly one point per entry.
var hindiMonths = [12]string{
	"जनवरी", "फरवरी", "मार्च", "अप्रैल", "मई", "जून",
	"जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर",
}

// monthIndex maps the upstream "Month" column values onto calendar positions.
// The export uses three-letter English abbreviations; numeric months appear
// in some resource variants.
var monthIndex = map[string]int{
	"jan": 0, "feb": 1, "mar": 2, "apr": 3, "may": 4, "jun": 5,
	"jul": 6, "aug": 7, "sep": 8, "oct": 9, "nov": 10, "dec": 11,
	"january": 0, "february": 1, "march": 2, "april": 3,
	"june": 5, "july": 6, "august": 7, "september": 8,
	"october": 9, "november": 10, "december": 11,
	"1": 0, "2": 1, "3": 2, "4": 3, "5": 4, "6": 5,
	"7": 6, "8": 7, "9": 8, "10": 9, "11": 10, "12": 11,
	"01": 0, "02": 1, "03": 2, "04": 3, "05": 4, "06": 5,
	"07": 6, "08": 7, "09": 8,
}

// MonthPosition returns the calendar position (0-11) of an upstream month
// value, in any of the recognized spellings.
func MonthPosition(month string) (int, bool) {
	i, ok := monthIndex[normalizeKey(month)]
	return i, ok
}

// HindiMonth returns the localized label for an upstream month value, or the
// value unchanged when it is not a recognized month.
func HindiMonth(month string) string {
	if i, ok := monthIndex[normalizeKey(month)]; ok {
		return hindiMonths[i]
	}
	return month
}

// MonthlyTrend collapses a sparse set of reconciled records into a fixed
// 12-point series in calendar order. Records sharing a month are averaged
// (not summed) across employment, wages, and completed works; months without
// observations are zero-valued placeholders. Input order is irrelevant.
func MonthlyTrend(recs []Record) []TrendPoint {
	type bucket struct {
		employment int64
		wages      float64
		works      int64
		count      int64
	}
	var buckets [12]bucket

	for _, rec := range recs {
		i, ok := monthIndex[normalizeKey(rec.Get(FieldMonth))]
		if !ok {
			continue
		}
		buckets[i].employment += parseIntOrZero(rec.Get(FieldIndividualsWorked))
		buckets[i].wages += parseFloatOrZero(rec.Get(FieldWages))
		buckets[i].works += parseIntOrZero(rec.Get(FieldCompletedWorks))
		buckets[i].count++
	}

	out := make([]TrendPoint, 12)
	for i := range out {
		p := TrendPoint{Month: hindiMonths[i]}
		if n := buckets[i].count; n > 0 {
			p.Employment = int64(roundHalfUp(float64(buckets[i].employment) / float64(n)))
			p.Wages = float64(roundHalfUp(buckets[i].wages / float64(n)))
			p.Works = int64(roundHalfUp(float64(buckets[i].works) / float64(n)))
		}
		out[i] = p
	}
	return out
}
