package report

import (
	"fmt"
	"time"
)

// Employee identifies the person the report is for
type Employee struct {
	FirstName string
	LastName  string
}

// DisplayName returns "Lastname, Firstname"
func (e Employee) DisplayName() string {
	return e.LastName + ", " + e.FirstName
}

// Report is a fully planned month, ready to be rendered
type Report struct {
	Employee       Employee
	Institution    string
	Region         string
	Year           int
	Month          time.Month
	TotalHours     int
	MinHoursPerDay int
	GeneratedOn    time.Time
	SignaturePath  string

	Days       []time.Time
	Workdays   []time.Time
	Assignment Assignment
	Rows       []Row
}

// Period returns the "month / year" header value
func (r *Report) Period() string {
	return fmt.Sprintf("%d / %d", int(r.Month), r.Year)
}

// TotalText returns the monthly hours as printed in the sum row
func (r *Report) TotalText() string {
	return FormatHours(r.TotalHours)
}

// WorkedDays returns how many days carry hours
func (r *Report) WorkedDays() int {
	return len(r.Assignment)
}
