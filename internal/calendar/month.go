package calendar

import (
	"fmt"
	"time"

	"github.com/username/workhour-report/pkg/dateutil"
)

// Supported year range for reports
const (
	MinYear = 1900
	MaxYear = 2199
)

// InvalidDateError is returned for a month or year outside the supported range
type InvalidDateError struct {
	Year  int
	Month int
}

func (e *InvalidDateError) Error() string {
	if e.Month < 1 || e.Month > 12 {
		return fmt.Sprintf("invalid month %d: must be between 1 and 12", e.Month)
	}
	return fmt.Sprintf("invalid year %d: must be between %d and %d", e.Year, MinYear, MaxYear)
}

// ValidateMonth checks year and month against the supported range
func ValidateMonth(year, month int) error {
	if month < 1 || month > 12 || year < MinYear || year > MaxYear {
		return &InvalidDateError{Year: year, Month: month}
	}
	return nil
}

// EnumerateMonth returns every date of the month in ascending order,
// starting at day 1. Dates are midnight UTC.
func EnumerateMonth(year int, month time.Month) ([]time.Time, error) {
	if err := ValidateMonth(year, int(month)); err != nil {
		return nil, err
	}

	daysInMonth := dateutil.DaysInMonth(year, month)
	days := make([]time.Time, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		days = append(days, dateutil.Date(year, month, day))
	}

	return days, nil
}
