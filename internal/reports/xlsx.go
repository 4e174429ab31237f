package reports

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

const (
	visitsSheet  = "Visitas"
	summarySheet = "Resumen"

	// MaxColumnWidth caps auto-sized columns, in characters.
	MaxColumnWidth = 60
	minColumnWidth = 10
)

// SpreadsheetHeader lists the exported columns in order.
var SpreadsheetHeader = []string{
	"Número de Informe",
	"Fecha",
	"Institución Educativa",
	"Nivel",
	"Tipo de Visita",
	"Especialista",
	"Fortalezas",
	"Áreas de mejora",
	"Recomendaciones",
	"Compromisos del docente",
}

// Row is one exported visit, in SpreadsheetHeader order.
type Row [10]string

// RowsFromVisits flattens visits for the bulk export. Owners must be preloaded.
func RowsFromVisits(list []models.Visit) []Row {
	rows := make([]Row, 0, len(list))
	for _, v := range list {
		rows = append(rows, Row{
			v.ReportNumber,
			v.Date,
			v.Institution,
			v.Level,
			v.VisitType,
			v.User.DisplayName(),
			v.Strengths,
			v.Improvements,
			v.Recommendations,
			v.Commitments,
		})
	}
	return rows
}

// SheetSummary fills the second sheet of the bulk export.
type SheetSummary struct {
	Period    string
	Total     int64
	ThisMonth int64
	Target    int
	Progress  float64
}

// ColumnWidth is the width for a column whose longest line has n characters.
func ColumnWidth(n int) float64 {
	w := n + 2
	if w < minColumnWidth {
		w = minColumnWidth
	}
	if w > MaxColumnWidth {
		w = MaxColumnWidth
	}
	return float64(w)
}

func longestLine(s string) int {
	longest := 0
	for _, line := range strings.Split(s, "\n") {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return longest
}

// RenderSpreadsheet writes one row per visit plus a summary sheet.
func RenderSpreadsheet(rows []Row, summary SheetSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", visitsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"003366"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx body style: %w", err)
	}

	widths := make([]int, len(SpreadsheetHeader))
	for col, title := range SpreadsheetHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(visitsSheet, cell, title); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
		widths[col] = longestLine(title)
	}

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(visitsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("xlsx: %w", err)
			}
			if n := longestLine(value); n > widths[col] {
				widths[col] = n
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(len(SpreadsheetHeader))
	if err := f.SetCellStyle(visitsSheet, "A1", last+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(visitsSheet, "A2", fmt.Sprintf("%s%d", last, len(rows)+1), bodyStyle); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}
	for col, n := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(visitsSheet, name, name, ColumnWidth(n)); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}
	if err := f.SetPanes(visitsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, s SheetSummary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	period := PeriodLabel(s.Period)
	cells := [][2]any{
		{"Indicador", "Valor"},
		{"Periodo", period},
		{"Total de visitas", s.Total},
		{"Visitas del mes", s.ThisMonth},
		{"Meta mensual", s.Target},
		{"Avance de la meta (%)", s.Progress},
	}
	for i, pair := range cells {
		for j, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("xlsx: %w", err)
			}
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	percentFmt := "0.0"
	progressStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return fmt.Errorf("xlsx progress style: %w", err)
	}
	progressCell, _ := excelize.CoordinatesToCellName(2, len(cells))
	if err := f.SetCellStyle(summarySheet, progressCell, progressCell, progressStyle); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 26); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return f.SetColWidth(summarySheet, "B", "B", ColumnWidth(utf8.RuneCountInString(period)))
}
