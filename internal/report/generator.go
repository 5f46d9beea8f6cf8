package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/workhour-report/internal/calendar"
	"github.com/username/workhour-report/pkg/dateutil"
	"github.com/username/workhour-report/pkg/random"
	"go.uber.org/zap"
)

// Request describes the report to generate
type Request struct {
	Employee      Employee
	Institution   string
	TotalHours    int
	Year          int
	Month         int
	SignaturePath string
}

// Options tunes the distribution and the table layout
type Options struct {
	MinHoursPerDay int
	Region         string
	Tabulate       TabulateOptions
	Now            func() time.Time
}

// Generator plans a month: enumerate, classify, distribute, tabulate
type Generator struct {
	calendar calendar.Calendar
	rng      random.Source
	options  Options
	logger   *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cal calendar.Calendar, rng random.Source, opts Options, logger *zap.Logger) *Generator {
	if opts.MinHoursPerDay == 0 {
		opts.MinHoursPerDay = DefaultMinHoursPerDay
	}
	if opts.Tabulate == (TabulateOptions{}) {
		opts.Tabulate = DefaultTabulateOptions()
	}
	if opts.Now == nil {
		opts.Now = dateutil.Today
	}

	return &Generator{
		calendar: cal,
		rng:      rng,
		options:  opts,
		logger:   logger,
	}
}

// Generate builds the report for req
func (g *Generator) Generate(req Request) (*Report, error) {
	if strings.TrimSpace(req.Employee.LastName) == "" {
		return nil, fmt.Errorf("last name is required")
	}

	g.logger.Info("Starting report generation",
		zap.String("employee", req.Employee.DisplayName()),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("hours", req.TotalHours))

	// 1. Enumerate the days of the month
	if err := calendar.ValidateMonth(req.Year, req.Month); err != nil {
		return nil, err
	}
	days, err := calendar.EnumerateMonth(req.Year, time.Month(req.Month))
	if err != nil {
		return nil, err
	}

	// 2. Keep the workdays
	workdays, err := g.calendar.Workdays(days)
	if err != nil {
		return nil, fmt.Errorf("failed to check if workday: %w", err)
	}

	g.logger.Info("Workdays determined",
		zap.Int("days", len(days)),
		zap.Int("workdays", len(workdays)))

	// 3. Distribute the hours
	assignment, err := Distribute(g.rng, workdays, req.TotalHours, g.options.MinHoursPerDay)
	if err != nil {
		return nil, err
	}

	booked := make([]string, len(assignment))
	for i, alloc := range assignment {
		booked[i] = fmt.Sprintf("%s=%dh", dateutil.Key(alloc.Date), alloc.Hours)
	}
	g.logger.Info("Hours distributed",
		zap.Int("selected_days", len(assignment)),
		zap.Strings("allocations", booked))

	// 4. Build the table
	generatedOn := dateutil.StartOfDay(g.options.Now())
	tabOpts := g.options.Tabulate
	tabOpts.GeneratedOn = generatedOn
	rows := Tabulate(days, assignment, tabOpts)

	return &Report{
		Employee:       req.Employee,
		Institution:    req.Institution,
		Region:         g.options.Region,
		Year:           req.Year,
		Month:          time.Month(req.Month),
		TotalHours:     req.TotalHours,
		MinHoursPerDay: g.options.MinHoursPerDay,
		GeneratedOn:    generatedOn,
		SignaturePath:  req.SignaturePath,
		Days:           days,
		Workdays:       workdays,
		Assignment:     assignment,
		Rows:           rows,
	}, nil
}
