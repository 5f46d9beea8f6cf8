package render

import (
	"fmt"

	"github.com/username/workhour-report/internal/report"
	"github.com/username/workhour-report/pkg/dateutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Arbeitszeiten"

var columnHeads = []string{
	"Kalendertag",
	"Beginn (Uhrzeit)",
	"Pause (Dauer)",
	"Ende (Uhrzeit)",
	"Dauer (Summe)",
	"aufgezeichnet am",
	"Bemerkung",
}

// XLSXWriter exports a report as a spreadsheet with the same layout as the
// printed form
type XLSXWriter struct {
	logger *zap.Logger
}

// NewXLSXWriter creates a new spreadsheet writer
func NewXLSXWriter(logger *zap.Logger) *XLSXWriter {
	return &XLSXWriter{logger: logger}
}

// Write builds the workbook and saves it to outPath
func (w *XLSXWriter) Write(outPath string, rep *report.Report) error {
	wb, err := w.Build(rep)
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := wb.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outPath, err)
	}

	w.logger.Debug("Spreadsheet written", zap.String("output", outPath))
	return nil
}

// Build creates the workbook in memory. The caller closes it.
func (w *XLSXWriter) Build(rep *report.Report) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", sheetName); err != nil {
		wb.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := fillSheet(wb, rep); err != nil {
		wb.Close()
		return nil, err
	}
	return wb, nil
}

func fillSheet(wb *excelize.File, rep *report.Report) error {
	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	set := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return wb.SetCellValue(sheetName, cell, value)
	}

	header := [][2]string{
		{"Name, Vorname der Hilfskraft", rep.Employee.DisplayName()},
		{"Fachbereich / Organisationseinheit", rep.Institution},
		{"Monat / Jahr", rep.Period()},
		{"Monatsarbeitszeit laut Arbeitsvertrag", fmt.Sprintf("%dh", rep.TotalHours)},
	}

	if err := set(1, 1, documentTitle); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if err := wb.SetCellStyle(sheetName, "A1", "A1", bold); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	row := 3
	for _, kv := range header {
		if err := set(1, row, kv[0]); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := set(2, row, kv[1]); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		row++
	}

	row++
	tableStart := row
	for col, head := range columnHeads {
		if err := set(col+1, row, head); err != nil {
			return fmt.Errorf("failed to write column head: %w", err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, tableStart)
	last, _ := excelize.CoordinatesToCellName(len(columnHeads), tableStart)
	if err := wb.SetCellStyle(sheetName, first, last, bold); err != nil {
		return fmt.Errorf("failed to style column heads: %w", err)
	}

	for _, r := range rep.Rows {
		row++
		values := []string{r.Label, r.BeginText(), r.PauseText(), r.EndText(), r.DurationText(), r.Noted, ""}
		for col, v := range values {
			if err := set(col+1, row, v); err != nil {
				return fmt.Errorf("failed to write row %s: %w", dateutil.Key(r.Date), err)
			}
		}
	}

	row++
	if err := set(1, row, "Summe"); err != nil {
		return fmt.Errorf("failed to write sum row: %w", err)
	}
	if err := set(5, row, rep.TotalText()); err != nil {
		return fmt.Errorf("failed to write sum row: %w", err)
	}
	sumCell, _ := excelize.CoordinatesToCellName(1, row)
	if err := wb.SetCellStyle(sheetName, sumCell, sumCell, bold); err != nil {
		return fmt.Errorf("failed to style sum row: %w", err)
	}

	row += 2
	if err := set(1, row, dateutil.FormatGerman(rep.GeneratedOn)); err != nil {
		return fmt.Errorf("failed to write date: %w", err)
	}

	if err := wb.SetColWidth(sheetName, "A", "A", 36); err != nil {
		return err
	}
	if err := wb.SetColWidth(sheetName, "B", "F", 16); err != nil {
		return err
	}
	return wb.SetColWidth(sheetName, "G", "G", 30)
}
