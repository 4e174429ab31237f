package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/visits"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// PeriodLabel renders a YYYY-MM token as "marzo de 2025". Anything else,
// including the empty "all months" period, gets a generic label.
func PeriodLabel(month string) string {
	if month == "" || month == AllMonths {
		return "Todos los meses"
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return monthNames[t.Month()-1] + " de " + strconv.Itoa(t.Year())
}

// Summary is the monthly report: aggregate figures plus every visit.
type Summary struct {
	Period      string // YYYY-MM or "todos"
	Label       string
	GeneratedAt time.Time
	Total       int64
	Target      int
	Progress    float64
	ByLevel     []visits.Count
	ByType      []visits.Count
	Visits      []models.Visit
}

// NewSummary wraps a dashboard aggregate. month is "" for every month.
func NewSummary(month string, d *visits.Dashboard, now time.Time) Summary {
	period := month
	if period == "" {
		period = AllMonths
	}
	return Summary{
		Period:      period,
		Label:       PeriodLabel(month),
		GeneratedAt: now,
		Total:       d.Total,
		Target:      visits.MonthlyTarget,
		Progress:    d.Progress,
		ByLevel:     visits.Sorted(d.ByLevel),
		ByType:      visits.Sorted(d.ByType),
		Visits:      d.Visits,
	}
}

// RenderSummaryPDF renders the cover, the detail table and the full
// observation dump of every visit.
func RenderSummaryPDF(s Summary) ([]byte, error) {
	w := newPDF("Informe mensual " + s.Label)

	// cover
	w.pdf.AddPage()
	w.pdf.Ln(10)
	w.heading("INFORME MENSUAL DE VISITAS PEDAGÓGICAS", 18)
	w.pdf.Ln(4)
	w.pdf.SetFont(fontFamily, "", 13)
	w.pdf.CellFormat(0, 8, "Periodo: "+s.Label, "", 1, "C", false, 0, "")
	w.pdf.SetFont(fontFamily, "I", 10)
	w.pdf.CellFormat(0, 6, "Generado el "+s.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	w.pdf.Ln(8)

	w.subheading("RESUMEN")
	w.labelled("Total de visitas", strconv.FormatInt(s.Total, 10))
	if s.Period != AllMonths {
		w.labelled("Meta mensual", strconv.Itoa(s.Target))
		w.labelled("Avance de la meta", fmt.Sprintf("%.1f%%", s.Progress))
	}
	w.pdf.Ln(4)
	w.countTable("Visitas por nivel", "Nivel", s.ByLevel)
	w.pdf.Ln(4)
	w.countTable("Visitas por tipo", "Tipo de visita", s.ByType)

	// detail
	w.pdf.AddPage()
	w.subheading("DETALLE DE VISITAS")
	if len(s.Visits) == 0 {
		w.paragraph("No se registraron visitas en el periodo.", true)
	} else {
		w.detailTable(s.Visits)
	}

	// observations
	for _, v := range s.Visits {
		w.pdf.AddPage()
		w.document(FromVisit(v, v.User.DisplayName()))
	}

	return w.bytes()
}

func (w *pdfWriter) countTable(title, column string, counts []visits.Count) {
	w.pdf.SetFont(fontFamily, "B", 11)
	w.pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")

	w.pdf.SetFillColor(0, 51, 102)
	w.pdf.SetTextColor(255, 255, 255)
	w.cell(120, column, "1", true)
	w.cell(40, "Cantidad", "1", true)
	w.pdf.Ln(-1)
	w.pdf.SetTextColor(0, 0, 0)

	w.pdf.SetFont(fontFamily, "", 10)
	if len(counts) == 0 {
		w.cell(160, "Sin registros", "1", false)
		w.pdf.Ln(-1)
		return
	}
	for _, c := range counts {
		key := c.Key
		if key == "" {
			key = "Sin especificar"
		}
		w.cell(120, key, "1", false)
		w.cell(40, strconv.FormatInt(c.Total, 10), "1", false)
		w.pdf.Ln(-1)
	}
}

var detailColumns = []struct {
	title string
	width float64
}{
	{"Nº informe", 28},
	{"Fecha", 22},
	{"Institución", 46},
	{"Nivel", 22},
	{"Tipo", 24},
	{"Especialista", 33},
}

func (w *pdfWriter) detailTable(list []models.Visit) {
	header := func() {
		w.pdf.SetFont(fontFamily, "B", 9)
		w.pdf.SetFillColor(0, 51, 102)
		w.pdf.SetTextColor(255, 255, 255)
		for _, c := range detailColumns {
			w.cell(c.width, c.title, "1", true)
		}
		w.pdf.Ln(-1)
		w.pdf.SetTextColor(0, 0, 0)
		w.pdf.SetFont(fontFamily, "", 9)
	}

	header()
	_, pageHeight := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	for i, v := range list {
		if w.pdf.GetY()+7 > pageHeight-bottom {
			w.pdf.AddPage()
			header()
		}
		w.pdf.SetFillColor(235, 240, 247)
		fill := i%2 == 1
		values := []string{v.ReportNumber, v.Date, v.Institution, v.Level, v.VisitType, v.User.DisplayName()}
		for j, c := range detailColumns {
			w.cell(c.width, values[j], "1", fill)
		}
		w.pdf.Ln(-1)
	}
}
