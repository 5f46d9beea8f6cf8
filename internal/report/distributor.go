package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/workhour-report/pkg/dateutil"
	"github.com/username/workhour-report/pkg/random"
)

// DefaultMinHoursPerDay is the smallest block of hours booked on a day
const DefaultMinHoursPerDay = 4

// Allocation is the number of hours booked on one day
type Allocation struct {
	Date  time.Time
	Hours int
}

// Assignment holds the allocations of a month in ascending date order.
// Days that are not listed carry zero hours.
type Assignment []Allocation

// Hours returns the hours booked on date
func (a Assignment) Hours(date time.Time) int {
	for _, alloc := range a {
		if dateutil.IsSameDay(alloc.Date, date) {
			return alloc.Hours
		}
	}
	return 0
}

// Total returns the sum of all booked hours
func (a Assignment) Total() int {
	total := 0
	for _, alloc := range a {
		total += alloc.Hours
	}
	return total
}

// InsufficientCapacityError is returned when the month has too few workdays
// to book the requested hours in blocks of the minimum size
type InsufficientCapacityError struct {
	TotalHours     int
	MinHoursPerDay int
	RequiredDays   int
	AvailableDays  int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("cannot distribute %dh with at least %dh per day: %d workdays required, only %d available",
		e.TotalHours, e.MinHoursPerDay, e.RequiredDays, e.AvailableDays)
}

// RequiredDays returns ceil(totalHours / minHoursPerDay) without overflowing
// for totals near math.MaxInt
func RequiredDays(totalHours, minHoursPerDay int) int {
	days := totalHours / minHoursPerDay
	if totalHours%minHoursPerDay != 0 {
		days++
	}
	return days
}

// Distribute books totalHours onto randomly chosen workdays.
//
// It picks RequiredDays distinct days uniformly at random, sorts them and
// books minHoursPerDay on each; the chronologically last day takes whatever
// remainder is left, which may be below the minimum.
func Distribute(rng random.Source, workdays []time.Time, totalHours, minHoursPerDay int) (Assignment, error) {
	if totalHours < 0 {
		return nil, fmt.Errorf("total hours must not be negative, got %d", totalHours)
	}
	if minHoursPerDay <= 0 {
		return nil, fmt.Errorf("minimum hours per day must be positive, got %d", minHoursPerDay)
	}

	required := RequiredDays(totalHours, minHoursPerDay)
	if required > len(workdays) {
		return nil, &InsufficientCapacityError{
			TotalHours:     totalHours,
			MinHoursPerDay: minHoursPerDay,
			RequiredDays:   required,
			AvailableDays:  len(workdays),
		}
	}

	selected := random.SelectRandomDates(rng, workdays, required)
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Before(selected[j])
	})

	assignment := make(Assignment, 0, len(selected))
	remaining := totalHours
	for _, day := range selected {
		hours := min(minHoursPerDay, remaining)
		assignment = append(assignment, Allocation{Date: day, Hours: hours})
		remaining -= hours
	}

	if remaining != 0 {
		return nil, fmt.Errorf("distribution left %d hours unassigned", remaining)
	}

	return assignment, nil
}
