package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/username/workhour-report/pkg/dateutil"
	"go.uber.org/zap"
)

// fakeSource serves fixed holidays and counts lookups per year
type fakeSource struct {
	holidays map[string]string
	calls    map[int]int
	err      error
}

func newFakeSource(holidays map[string]string) *fakeSource {
	return &fakeSource{holidays: holidays, calls: make(map[int]int)}
}

func (f *fakeSource) Holidays(region string, year int) (map[string]string, error) {
	f.calls[year]++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]string)
	for key, name := range f.holidays {
		date, _ := time.Parse(dateutil.DateLayout, key)
		if date.Year() == year {
			result[key] = name
		}
	}
	return result, nil
}

func TestRegionCalendar_IsWorkday(t *testing.T) {
	source := newFakeSource(map[string]string{
		"2023-04-07": "Karfreitag",
		"2023-04-08": "Saturday holiday",
	})
	cal := NewRegionCalendar(source, "NI", zap.NewNop())

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Monday", dateutil.Date(2023, time.April, 3), true},
		{"Holiday on Friday", dateutil.Date(2023, time.April, 7), false},
		{"Holiday on Saturday", dateutil.Date(2023, time.April, 8), false},
		{"Sunday", dateutil.Date(2023, time.April, 9), false},
		{"Plain Friday", dateutil.Date(2023, time.April, 14), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.IsWorkday(tt.date)
			if err != nil {
				t.Fatalf("IsWorkday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsWorkday(%s) = %v, want %v", tt.date.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestRegionCalendar_WeekendNeverWorkday(t *testing.T) {
	// Even a failing source must not turn a weekend into a workday
	source := newFakeSource(nil)
	source.err = errors.New("source down")
	cal := NewRegionCalendar(source, "NI", zap.NewNop())

	days, err := EnumerateMonth(2024, time.February)
	if err != nil {
		t.Fatalf("EnumerateMonth() error = %v", err)
	}

	for _, day := range days {
		if !dateutil.IsWeekend(day) {
			continue
		}
		ok, err := cal.IsWorkday(day)
		if err != nil {
			t.Fatalf("IsWorkday(%v) error = %v", day, err)
		}
		if ok {
			t.Errorf("IsWorkday(%s) = true on a weekend", day.Format("2006-01-02 Mon"))
		}
	}
}

func TestRegionCalendar_QueriesOncePerYear(t *testing.T) {
	source := newFakeSource(map[string]string{
		"2023-12-25": "1. Weihnachtstag",
		"2024-01-01": "Neujahrstag",
	})
	cal := NewRegionCalendar(source, "NI", zap.NewNop())

	dates := []time.Time{
		dateutil.Date(2023, time.December, 27),
		dateutil.Date(2023, time.December, 28),
		dateutil.Date(2024, time.January, 1),
		dateutil.Date(2024, time.January, 2),
	}

	workdays, err := cal.Workdays(dates)
	if err != nil {
		t.Fatalf("Workdays() error = %v", err)
	}

	if len(workdays) != 3 {
		t.Errorf("Workdays count = %d, want 3", len(workdays))
	}
	if source.calls[2023] != 1 || source.calls[2024] != 1 {
		t.Errorf("Source calls = %v, want one per year", source.calls)
	}
}

func TestRegionCalendar_SourceError(t *testing.T) {
	source := newFakeSource(nil)
	source.err = errors.New("source down")
	cal := NewRegionCalendar(source, "NI", zap.NewNop())

	_, err := cal.IsWorkday(dateutil.Date(2023, time.April, 3))
	if err == nil {
		t.Fatal("IsWorkday() expected error, got nil")
	}
}

func TestRegionCalendar_GetMonthInfo_April2023(t *testing.T) {
	cal := NewRegionCalendar(NewBuiltinSource(), "NI", zap.NewNop())

	monthInfo, err := cal.GetMonthInfo(2023, time.April)
	if err != nil {
		t.Fatalf("GetMonthInfo() error = %v", err)
	}

	if len(monthInfo.Days) != 30 {
		t.Errorf("Days count = %d, want 30", len(monthInfo.Days))
	}
	if monthInfo.Weekends != 10 {
		t.Errorf("Weekends = %d, want 10", monthInfo.Weekends)
	}
	// Good Friday (7th) and Easter Monday (10th)
	if monthInfo.Holidays != 2 {
		t.Errorf("Holidays = %d, want 2", monthInfo.Holidays)
	}
	if monthInfo.WorkDays != 18 {
		t.Errorf("WorkDays = %d, want 18", monthInfo.WorkDays)
	}

	goodFriday := monthInfo.Days[6]
	if goodFriday.Type != DayTypeHoliday || goodFriday.IsWorkday {
		t.Errorf("Apr 7 = %+v, want a holiday", goodFriday)
	}
	if goodFriday.Note == "" {
		t.Errorf("Apr 7 has no holiday name")
	}
}

func TestRegionCalendar_GetMonthInfo_InvalidMonth(t *testing.T) {
	cal := NewRegionCalendar(NewBuiltinSource(), "NI", zap.NewNop())

	_, err := cal.GetMonthInfo(2023, 13)
	var dateErr *InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("GetMonthInfo() error = %v, want InvalidDateError", err)
	}
}

func TestRegionCalendar_Region(t *testing.T) {
	cal := NewRegionCalendar(NewBuiltinSource(), "ni", zap.NewNop())

	if got := cal.Region(); got != "NI" {
		t.Errorf("Region() = %q, want NI", got)
	}
}
