package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/workhour-report/pkg/dateutil"
	"go.uber.org/zap"
)

// RegionCalendar implements Calendar for one holiday region.
// A day is a workday when it is Monday-Friday and not a regional holiday.
type RegionCalendar struct {
	source HolidaySource
	region string
	logger *zap.Logger
	years  map[int]map[string]string // year -> holidays
}

// NewRegionCalendar creates a new RegionCalendar
func NewRegionCalendar(source HolidaySource, region string, logger *zap.Logger) *RegionCalendar {
	return &RegionCalendar{
		source: source,
		region: strings.ToUpper(region),
		logger: logger,
		years:  make(map[int]map[string]string),
	}
}

// Region returns the configured region code
func (rc *RegionCalendar) Region() string {
	return rc.region
}

// IsWorkday checks if the given date is a working day
func (rc *RegionCalendar) IsWorkday(date time.Time) (bool, error) {
	if !dateutil.IsWeekday(date) {
		return false, nil
	}

	holidays, err := rc.holidays(date.Year())
	if err != nil {
		return false, err
	}

	_, isHoliday := holidays[dateutil.Key(date)]
	return !isHoliday, nil
}

// GetDayInfo returns detailed info for a specific day
func (rc *RegionCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	holidays, err := rc.holidays(date.Year())
	if err != nil {
		return nil, err
	}

	info := &DayInfo{Date: date}
	name, isHoliday := holidays[dateutil.Key(date)]
	if isHoliday {
		info.Note = name
	}

	switch {
	case dateutil.IsWeekend(date):
		info.Type = DayTypeWeekend
	case isHoliday:
		info.Type = DayTypeHoliday
	default:
		info.Type = DayTypeWorkday
		info.IsWorkday = true
	}

	return info, nil
}

// GetMonthInfo returns calendar info for the entire month
func (rc *RegionCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	days, err := EnumerateMonth(year, month)
	if err != nil {
		return nil, err
	}

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, len(days)),
	}

	for _, date := range days {
		info, err := rc.GetDayInfo(date)
		if err != nil {
			return nil, err
		}

		switch info.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}

		monthInfo.Days = append(monthInfo.Days, *info)
	}

	return monthInfo, nil
}

// Workdays filters days down to the working days, keeping their order
func (rc *RegionCalendar) Workdays(days []time.Time) ([]time.Time, error) {
	workdays := make([]time.Time, 0, len(days))
	for _, date := range days {
		ok, err := rc.IsWorkday(date)
		if err != nil {
			return nil, fmt.Errorf("failed to classify %s: %w", dateutil.Key(date), err)
		}
		if ok {
			workdays = append(workdays, date)
		}
	}
	return workdays, nil
}

// holidays returns the holiday set of a year, querying the source once per year
func (rc *RegionCalendar) holidays(year int) (map[string]string, error) {
	if cached, ok := rc.years[year]; ok {
		return cached, nil
	}

	holidays, err := rc.source.Holidays(rc.region, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for %s/%d: %w", rc.region, year, err)
	}

	rc.years[year] = holidays
	rc.logger.Debug("Holidays loaded",
		zap.String("region", rc.region),
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}
