package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/workhour-report/internal/calendar"
	"github.com/username/workhour-report/internal/report"
	"github.com/username/workhour-report/pkg/dateutil"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Bold(true)
)

// RenderPreview renders the report as a terminal table
func RenderPreview(rep *report.Report) string {
	var b strings.Builder

	b.WriteString(styleBold.Render(documentTitle))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %-38s %s\n", "Name, Vorname der Hilfskraft", rep.Employee.DisplayName())
	fmt.Fprintf(&b, "  %-38s %s\n", "Fachbereich / Organisationseinheit", rep.Institution)
	fmt.Fprintf(&b, "  %-38s %s\n", "Monat / Jahr", rep.Period())
	fmt.Fprintf(&b, "  %-38s %dh\n", "Monatsarbeitszeit laut Arbeitsvertrag", rep.TotalHours)
	b.WriteString("\n")

	rows := make([][]string, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		label := r.Label
		if !r.Worked {
			label = styleDim.Render(label)
		}
		rows = append(rows, []string{label, r.BeginText(), r.PauseText(), r.EndText(), r.DurationText(), r.Noted})
	}
	rows = append(rows, []string{styleBold.Render("Summe"), "", "", "", styleGreen.Render(rep.TotalText()), ""})

	b.WriteString(renderTable(columnHeads[:len(columnHeads)-1], rows))
	fmt.Fprintf(&b, "\n%d of %d workdays booked\n", rep.WorkedDays(), len(rep.Workdays))

	return b.String()
}

// RenderMonthOverview renders the classification of every day of a month
func RenderMonthOverview(info *calendar.MonthInfo, region string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", styleBold.Render(fmt.Sprintf("%02d/%d (%s)", int(info.Month), info.Year, region)))

	rows := make([][]string, 0, len(info.Days))
	for _, day := range info.Days {
		var kind string
		switch day.Type {
		case calendar.DayTypeWorkday:
			kind = styleGreen.Render(day.Type.String())
		case calendar.DayTypeHoliday:
			kind = styleYellow.Render(day.Type.String())
		default:
			kind = styleDim.Render(day.Type.String())
		}
		rows = append(rows, []string{dateutil.DayLabel(day.Date), kind, day.Note})
	}

	b.WriteString(renderTable([]string{"Tag", "Art", "Feiertag"}, rows))
	fmt.Fprintf(&b, "\nWorkdays: %d  Weekends: %d  Holidays: %d\n", info.WorkDays, info.Weekends, info.Holidays)

	return b.String()
}

// renderTable pads columns to their widest visible cell and separates the
// header with a rule
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder

	writeRow := func(cells []string, style *lipgloss.Style) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &styleHeader)
	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, nil)
	}

	return b.String()
}
