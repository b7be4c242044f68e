// Package reference bundles the static Madhya Pradesh district table used
// when the live government API is unavailable or unconfigured.
package reference

import (
	"math"
	"strings"

	"github.com/sejal-1604/MGNREGA/internal/domain"
)

// StateCode is the MGNREGA state code for Madhya Pradesh.
const StateCode = "17"

// StateName is the canonical state name used across the service.
const StateName = "Madhya Pradesh"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

type district struct {
	code  string
	name  string
	hindi string
	lat   float64
	lon   float64
}

// mpDistricts lists the MGNREGA district codes for Madhya Pradesh with
// headquarters coordinates, as published by the ministry.
var mpDistricts = []district{
	{"1701", "Sheopur", "श्योपुर", 25.6697, 76.6947},
	{"1702", "Morena", "मुरैना", 26.5015, 78.0014},
	{"1703", "Bhind", "भिंड", 26.5653, 78.7875},
	{"1704", "Gwalior", "ग्वालियर", 26.2183, 78.1828},
	{"1705", "Datia", "दतिया", 25.6669, 78.4574},
	{"1706", "Shivpuri", "शिवपुरी", 25.4231, 77.6581},
	{"1707", "Tikamgarh", "टीकमगढ़", 24.7433, 78.8353},
	{"1708", "Chhatarpur", "छतरपुर", 24.9177, 79.5941},
	{"1709", "Panna", "पन्ना", 24.7213, 80.1919},
	{"1710", "Sagar", "सागर", 23.8388, 78.7378},
	{"1711", "Damoh", "दमोह", 23.8315, 79.4422},
	{"1712", "Satna", "सतना", 24.5707, 80.8320},
	{"1713", "Rewa", "रीवा", 24.5364, 81.2961},
	{"1714", "Umaria", "उमरिया", 23.5236, 80.8372},
	{"1715", "Neemuch", "नीमच", 24.4739, 74.8706},
	{"1716", "Mandsaur", "मंदसौर", 24.0767, 75.0700},
	{"1717", "Ratlam", "रतलाम", 23.3315, 75.0367},
	{"1718", "Ujjain", "उज्जैन", 23.1765, 75.7885},
	{"1719", "Shajapur", "शाजापुर", 23.4267, 76.2738},
	{"1720", "Dewas", "देवास", 22.9676, 76.0534},
	{"1721", "Jhabua", "झाबुआ", 22.7676, 74.5953},
	{"1722", "Dhar", "धार", 22.5979, 75.2979},
	{"1723", "Indore", "इंदौर", 22.7196, 75.8577},
	{"1724", "West Nimar (Khargone)", "पश्चिम निमाड़ (खरगोन)", 21.8236, 75.6147},
	{"1725", "Barwani", "बड़वानी", 22.0322, 74.9006},
	{"1726", "Rajgarh", "राजगढ़", 24.0073, 76.8441},
	{"1727", "Vidisha", "विदिशा", 23.5251, 77.8081},
	{"1728", "Bhopal", "भोपाल", 23.2599, 77.4126},
	{"1729", "Sehore", "सीहोर", 23.2021, 77.0854},
	{"1730", "Raisen", "रायसेन", 23.3315, 77.7824},
	{"1731", "Betul", "बैतूल", 21.9057, 77.8986},
	{"1732", "Harda", "हरदा", 22.3442, 77.0953},
	{"1733", "Hoshangabad", "होशंगाबाद", 22.7440, 77.7282},
	{"1734", "Katni", "कटनी", 23.8346, 80.3942},
	{"1735", "Jabalpur", "जबलपुर", 23.1815, 79.9864},
	{"1736", "Narsinghpur", "नरसिंहपुर", 22.9676, 79.1947},
	{"1737", "Dindori", "डिंडोरी", 22.9441, 81.0784},
	{"1738", "Mandla", "मंडला", 22.5979, 80.3714},
	{"1739", "Chhindwara", "छिंदवाड़ा", 22.0567, 78.9378},
	{"1740", "Seoni", "सिवनी", 22.0862, 79.5431},
	{"1741", "Balaghat", "बालाघाट", 21.8047, 80.1847},
	{"1742", "Guna", "गुना", 24.6473, 77.3072},
	{"1743", "Ashoknagar", "अशोकनगर", 24.5726, 77.7299},
	{"1745", "East Nimar (Khandwa)", "पूर्व निमाड़ (खंडवा)", 21.8362, 76.3500},
	{"1746", "Burhanpur", "बुरहानपुर", 21.3009, 76.2291},
	{"1747", "Alirajpur", "अलीराजपुर", 22.3021, 74.3644},
	{"1748", "Anuppur", "अनूपपुर", 23.1041, 81.6905},
	{"1749", "Singrauli", "सिंगरौली", 24.1997, 82.6739},
	{"1750", "Sidhi", "सीधी", 24.4186, 81.8797},
	{"1751", "Shahdol", "शहडोल", 23.2967, 81.3615},
	{"1752", "Agar Malwa", "आगर मालवा", 23.7117, 76.0153},
}

// Table is the immutable in-memory district reference table. Regions are
// constructed once at process start and handed out by value.
type Table struct {
	regions []domain.Region
	byCode  map[string]int
}

// NewTable builds the reference table for Madhya Pradesh.
func NewTable() *Table {
	t := &Table{
		regions: make([]domain.Region, len(mpDistricts)),
		byCode:  make(map[string]int, len(mpDistricts)),
	}
	for i, d := range mpDistricts {
		t.regions[i] = domain.Region{
			ID:           StateCode + "_" + d.code,
			Name:         d.name,
			HindiName:    d.hindi,
			StateName:    StateName,
			StateCode:    StateCode,
			DistrictCode: d.code,
			Lat:          d.lat,
			Lon:          d.lon,
			DataSource:   domain.SourceReference,
		}
		t.byCode[d.code] = i
	}
	return t
}

// Len returns the number of districts in the table.
func (t *Table) Len() int { return len(t.regions) }

// All returns every region in table order.
func (t *Table) All() []domain.Region {
	out := make([]domain.Region, len(t.regions))
	copy(out, t.regions)
	return out
}

// ByCode looks up a region by district code.
func (t *Table) ByCode(code string) (domain.Region, bool) {
	i, ok := t.byCode[code]
	if !ok {
		return domain.Region{}, false
	}
	return t.regions[i], true
}

// Search filters regions by a free-text query matched case-insensitively
// against the canonical name, the Hindi name, and the state name. Queries
// shorter than two characters return the first limit regions unfiltered.
// A limit <= 0 means no limit.
func (t *Table) Search(query string, limit int) []domain.Region {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return truncate(t.All(), limit)
	}

	lower := strings.ToLower(query)
	out := make([]domain.Region, 0, 8)
	for _, r := range t.regions {
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

// Nearest returns the region whose headquarters is closest to the given
// coordinate by great-circle distance, with the distance in kilometers.
// Ties break on table order; an empty table reports no match.
func (t *Table) Nearest(lat, lon float64) (domain.Region, float64, bool) {
	if len(t.regions) == 0 {
		return domain.Region{}, 0, false
	}

	best := 0
	bestDist := haversineKm(lat, lon, t.regions[0].Lat, t.regions[0].Lon)
	for i := 1; i < len(t.regions); i++ {
		d := haversineKm(lat, lon, t.regions[i].Lat, t.regions[i].Lon)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return t.regions[best], bestDist, true
}

// haversineKm computes the great-circle distance between two WGS-84
// coordinates in kilometers.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
