package calendar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/username/workhour-report/pkg/dateutil"
)

// DefaultRegion is Lower Saxony
const DefaultRegion = "NI"

// regionHolidays maps German state codes to their public holidays
var regionHolidays = map[string][]*cal.Holiday{
	"BB": de.HolidaysBB,
	"BE": de.HolidaysBE,
	"BW": de.HolidaysBW,
	"BY": de.HolidaysBY,
	"HB": de.HolidaysHB,
	"HE": de.HolidaysHE,
	"HH": de.HolidaysHH,
	"MV": de.HolidaysMV,
	"NI": de.HolidaysNI,
	"NW": de.HolidaysNW,
	"RP": de.HolidaysRP,
	"SH": de.HolidaysSH,
	"SL": de.HolidaysSL,
	"SN": de.HolidaysSN,
	"ST": de.HolidaysST,
	"TH": de.HolidaysTH,
}

// BuiltinSource computes German public holidays offline
type BuiltinSource struct{}

// NewBuiltinSource creates a new BuiltinSource
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Holidays returns the public holidays of region in year
func (s *BuiltinSource) Holidays(region string, year int) (map[string]string, error) {
	list, ok := regionHolidays[strings.ToUpper(region)]
	if !ok {
		return nil, fmt.Errorf("unknown region %q (supported: %s)", region, strings.Join(Regions(), ", "))
	}

	result := make(map[string]string, len(list))
	for _, h := range list {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			// Not observed in this year
			continue
		}
		result[dateutil.Key(actual)] = h.Name
	}

	return result, nil
}

// Regions returns the supported region codes, sorted
func Regions() []string {
	regions := make([]string, 0, len(regionHolidays))
	for code := range regionHolidays {
		regions = append(regions, code)
	}
	sort.Strings(regions)
	return regions
}

// IsKnownRegion reports whether the builtin source knows region
func IsKnownRegion(region string) bool {
	_, ok := regionHolidays[strings.ToUpper(region)]
	return ok
}
