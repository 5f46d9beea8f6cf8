package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestEnumerateMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantDays int
	}{
		{"January 2023", 2023, time.January, 31},
		{"February 2023", 2023, time.February, 28},
		{"February 2024 (leap)", 2024, time.February, 29},
		{"April 2023", 2023, time.April, 30},
		{"December 2199", 2199, time.December, 31},
		{"January 1900", 1900, time.January, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := EnumerateMonth(tt.year, tt.month)
			if err != nil {
				t.Fatalf("EnumerateMonth() error = %v", err)
			}

			if len(days) != tt.wantDays {
				t.Fatalf("Days count = %d, want %d", len(days), tt.wantDays)
			}

			for i, day := range days {
				if day.Year() != tt.year || day.Month() != tt.month {
					t.Errorf("Day %d = %v, outside %d-%02d", i, day, tt.year, tt.month)
				}
				if day.Day() != i+1 {
					t.Errorf("Day at index %d = %d, want %d", i, day.Day(), i+1)
				}
				if i > 0 && !day.After(days[i-1]) {
					t.Errorf("Days not strictly ascending at index %d", i)
				}
			}
		})
	}
}

func TestEnumerateMonth_AllMonths(t *testing.T) {
	for year := 2020; year <= 2028; year++ {
		for month := time.January; month <= time.December; month++ {
			days, err := EnumerateMonth(year, month)
			if err != nil {
				t.Fatalf("EnumerateMonth(%d, %v) error = %v", year, month, err)
			}

			// The day after the last entry must be in the next month
			next := days[len(days)-1].AddDate(0, 0, 1)
			if next.Month() == month {
				t.Errorf("EnumerateMonth(%d, %v) stopped early at %v", year, month, days[len(days)-1])
			}
		}
	}
}

func TestEnumerateMonth_InvalidDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
	}{
		{"Month zero", 2023, 0},
		{"Month 13", 2023, 13},
		{"Year too small", 1899, time.January},
		{"Year too large", 2200, time.January},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EnumerateMonth(tt.year, tt.month)

			var dateErr *InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Fatalf("EnumerateMonth() error = %v, want InvalidDateError", err)
			}
			if dateErr.Year != tt.year || dateErr.Month != int(tt.month) {
				t.Errorf("InvalidDateError = %+v, want year %d month %d", dateErr, tt.year, tt.month)
			}
		})
	}
}
