package report

import (
	"fmt"
	"time"

	"github.com/username/workhour-report/pkg/dateutil"
)

// NoteMode selects what goes into the "recorded on" column
type NoteMode string

const (
	NoteDay       NoteMode = "day"       // the row's own date
	NoteGenerated NoteMode = "generated" // the date the report was generated
	NoteNone      NoteMode = "none"      // left blank for manual entry
)

// ParseNoteMode validates a note mode name
func ParseNoteMode(s string) (NoteMode, error) {
	switch mode := NoteMode(s); mode {
	case NoteDay, NoteGenerated, NoteNone:
		return mode, nil
	case "":
		return NoteDay, nil
	default:
		return "", fmt.Errorf("unknown note mode %q (want day, generated or none)", s)
	}
}

// TabulateOptions controls how booked hours turn into clock times
type TabulateOptions struct {
	BeginHour      int // nominal start of a working day
	PauseThreshold int // days with more hours than this get a one hour pause
	Note           NoteMode
	GeneratedOn    time.Time
}

// DefaultTabulateOptions returns the layout used by the printed form
func DefaultTabulateOptions() TabulateOptions {
	return TabulateOptions{
		BeginHour:      8,
		PauseThreshold: 4,
		Note:           NoteDay,
	}
}

// Row is one calendar day of the report
type Row struct {
	Date     time.Time
	Label    string
	Worked   bool
	Begin    int
	Pause    int
	End      int
	Duration int
	Noted    string
}

// BeginText returns the begin time, empty on days off
func (r Row) BeginText() string { return r.clock(r.Begin) }

// PauseText returns the pause length, empty on days off
func (r Row) PauseText() string { return r.clock(r.Pause) }

// EndText returns the end time, empty on days off
func (r Row) EndText() string { return r.clock(r.End) }

// DurationText returns the worked hours, empty on days off
func (r Row) DurationText() string { return r.clock(r.Duration) }

func (r Row) clock(hours int) string {
	if !r.Worked {
		return ""
	}
	return FormatHours(hours)
}

// FormatHours formats whole hours as HH:00
func FormatHours(hours int) string {
	return fmt.Sprintf("%02d:00", hours)
}

// Tabulate builds one row per day. It has no side effects: equal inputs
// always give equal rows.
func Tabulate(days []time.Time, assignment Assignment, opts TabulateOptions) []Row {
	rows := make([]Row, 0, len(days))

	for _, day := range days {
		row := Row{
			Date:  day,
			Label: dateutil.DayLabel(day),
		}

		hours := assignment.Hours(day)
		if hours > 0 {
			pause := 0
			if hours > opts.PauseThreshold {
				pause = 1
			}

			row.Worked = true
			row.Begin = opts.BeginHour
			row.Pause = pause
			row.End = opts.BeginHour + hours + pause
			row.Duration = hours
			row.Noted = noteFor(day, opts)
		}

		rows = append(rows, row)
	}

	return rows
}

func noteFor(day time.Time, opts TabulateOptions) string {
	switch opts.Note {
	case NoteGenerated:
		if opts.GeneratedOn.IsZero() {
			return ""
		}
		return dateutil.Key(opts.GeneratedOn)
	case NoteNone:
		return ""
	default:
		return dateutil.Key(day)
	}
}
