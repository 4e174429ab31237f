package reports

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/visits"
)

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(FromVisit(sampleVisit(), "Ana Torres"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.Contains(t, string(out[len(out)-16:]), "%%EOF")
}

// pdfText is how a string shows up in an uncompressed content stream drawn
// with an embedded UTF-8 font.
func pdfText(s string) string {
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		b.WriteByte(byte(u >> 8))
		b.WriteByte(byte(u))
	}
	return b.String()
}

func TestRenderPDF_KeepsTextOutsideLatin1(t *testing.T) {
	compressStreams = false
	t.Cleanup(func() { compressStreams = true })

	const text = "Logro ≥ 80% → meta ✓ Ñuñoa"
	v := sampleVisit()
	v.Strengths = text
	v.Institution = "IE Ñuñoa"

	out, err := RenderPDF(FromVisit(v, "Ana Torres"))
	require.NoError(t, err)
	require.Contains(t, string(out), pdfText(text))
	require.Contains(t, string(out), pdfText("IE Ñuñoa"))
	require.Contains(t, string(out), "/FontFile2")
}

// slideTexts returns the text runs of every slide, in slide order.
func slideTexts(t *testing.T, deck []byte) [][]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(deck), int64(len(deck)))
	require.NoError(t, err)

	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[f.Name] = f
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "ppt/presentation.xml"} {
		require.Contains(t, files, name)
	}

	var slides [][]string
	for i := 1; ; i++ {
		f, ok := files[fmt.Sprintf("ppt/slides/slide%d.xml", i)]
		if !ok {
			break
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)

		var texts []string
		dec := xml.NewDecoder(bytes.NewReader(raw))
		inText := false
		for {
			tok, err := dec.Token()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			switch el := tok.(type) {
			case xml.StartElement:
				inText = el.Name.Local == "t"
			case xml.EndElement:
				inText = false
			case xml.CharData:
				if inText {
					texts = append(texts, string(el))
				}
			}
		}
		slides = append(slides, texts)
	}
	return slides
}

func TestRenderPPTX_RoundTripsObservations(t *testing.T) {
	v := sampleVisit()
	v.Institution = `IE "Los Andes" & <Anexo>`
	doc := FromVisit(v, "Ana Torres")

	out, err := RenderPPTX(doc)
	require.NoError(t, err)

	slides := slideTexts(t, out)
	require.Len(t, slides, 2)

	require.Contains(t, slides[0], "INF-2025-007")
	require.Contains(t, slides[0], `Institución Educativa: IE "Los Andes" & <Anexo>`)
	require.Contains(t, slides[0], "Especialista: Ana Torres")
	require.Contains(t, slides[0], "Fecha: 2025-03-14")

	body := strings.Join(slides[1], "\n")
	require.Contains(t, body, "Planificación clara\nUso de material concreto")
	require.Contains(t, body, "Gestión del tiempo")
	require.Contains(t, slides[1], "Recomendaciones:")
	require.Contains(t, slides[1], PlaceholderFeminine)
	require.Contains(t, slides[1], PlaceholderMasculine)
}

func TestColumnWidth(t *testing.T) {
	require.Equal(t, float64(minColumnWidth), ColumnWidth(0))
	require.Equal(t, 22.0, ColumnWidth(20))
	require.Equal(t, float64(MaxColumnWidth), ColumnWidth(500))
}

func TestRenderSpreadsheet(t *testing.T) {
	v := sampleVisit()
	v.User = models.User{Username: "ana", FullName: "Ana Torres"}
	v.Recommendations = strings.Repeat("x", 200)

	out, err := RenderSpreadsheet(RowsFromVisits([]models.Visit{v}), SheetSummary{
		Period: "2025-03", Total: 1, ThisMonth: 1, Target: visits.MonthlyTarget, Progress: 100.0 / 30,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{visitsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(visitsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, SpreadsheetHeader, rows[0])
	require.Equal(t, "INF-2025-007", rows[1][0])
	require.Equal(t, "Ana Torres", rows[1][5])
	require.Equal(t, "Planificación clara\nUso de material concreto", rows[1][6])

	// longest line of column G is "Uso de material concreto"
	width, err := f.GetColWidth(visitsSheet, "G")
	require.NoError(t, err)
	require.Equal(t, ColumnWidth(len("Uso de material concreto")), width)

	width, err = f.GetColWidth(visitsSheet, "I")
	require.NoError(t, err)
	require.Equal(t, float64(MaxColumnWidth), width)

	styleID, err := f.GetCellStyle(visitsSheet, "G2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Alignment)
	require.True(t, style.Alignment.WrapText)

	period, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "marzo de 2025", period)

	// progress is a number with a one-decimal display format
	raw, err := f.GetCellValue(summarySheet, "B6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	progress, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	require.InDelta(t, 100.0/30, progress, 1e-9)

	shown, err := f.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	require.Equal(t, "3.3", shown)
}

func TestRenderSpreadsheet_Empty(t *testing.T) {
	out, err := RenderSpreadsheet(nil, SheetSummary{Period: AllMonths})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(visitsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestPeriodLabel(t *testing.T) {
	require.Equal(t, "marzo de 2025", PeriodLabel("2025-03"))
	require.Equal(t, "diciembre de 2024", PeriodLabel("2024-12"))
	require.Equal(t, "Todos los meses", PeriodLabel(""))
	require.Equal(t, "Todos los meses", PeriodLabel(AllMonths))
}

func TestNewSummary(t *testing.T) {
	d := &visits.Dashboard{
		Total:    4,
		Progress: 13.3,
		ByLevel:  map[string]int64{"Primaria": 3, "Inicial": 1},
		ByType:   map[string]int64{"Monitoreo": 4},
	}
	now := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)

	s := NewSummary("", d, now)
	require.Equal(t, AllMonths, s.Period)
	require.Equal(t, "Todos los meses", s.Label)
	require.Equal(t, visits.MonthlyTarget, s.Target)
	require.Equal(t, []visits.Count{{Key: "Primaria", Total: 3}, {Key: "Inicial", Total: 1}}, s.ByLevel)

	s = NewSummary("2025-03", d, now)
	require.Equal(t, "2025-03", s.Period)
	require.Equal(t, "marzo de 2025", s.Label)
}

func TestRenderSummaryPDF(t *testing.T) {
	list := make([]models.Visit, 0, 45)
	for i := 1; i <= 45; i++ {
		v := sampleVisit()
		v.ID = uint(i)
		v.ReportNumber = visits.FormatReportNumber(2025, int64(i))
		v.User = models.User{Username: "ana", FullName: "Ana Torres"}
		list = append(list, v)
	}
	d := &visits.Dashboard{
		Visits:  list,
		Total:   int64(len(list)),
		ByLevel: map[string]int64{"Primaria": 45},
		ByType:  map[string]int64{"Monitoreo": 45},
	}

	for _, month := range []string{"2025-03", ""} {
		out, err := RenderSummaryPDF(NewSummary(month, d, time.Now()))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	}

	out, err := RenderSummaryPDF(NewSummary("2025-03", &visits.Dashboard{}, time.Now()))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
