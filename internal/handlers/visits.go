package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/policy"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/reports"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/visits"
)

func (h *Handler) Dashboard(c *gin.Context) {
	month := c.Query("mes")
	v := viewer(c)

	d, err := h.visits.Dashboard(c.Request.Context(), v, month)
	if errors.Is(err, visits.ErrInvalidMonth) {
		fail(c, "/dashboard", "Mes inválido, use el formato AAAA-MM")
		return
	}
	if err != nil {
		h.logger(c).WithError(err).Error("load dashboard")
		c.String(http.StatusInternalServerError, "No se pudo cargar el panel")
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":     "Panel",
		"Dashboard": d,
		"Month":     month,
		"Target":    visits.MonthlyTarget,
		"ByLevel":   visits.Sorted(d.ByLevel),
		"ByType":    visits.Sorted(d.ByType),
		"SeesAll":   policy.SeesAllVisits(v.Role),
	})
}

func (h *Handler) ShowNewVisit(c *gin.Context) {
	render(c, http.StatusOK, "nueva_visita.html", gin.H{
		"Title":      "Nueva visita",
		"Today":      h.now().Format("2006-01-02"),
		"Levels":     models.Levels,
		"VisitTypes": models.VisitTypes,
	})
}

type visitForm struct {
	Date            string `form:"fecha"`
	Institution     string `form:"institucion"`
	Level           string `form:"nivel"`
	VisitType       string `form:"tipo"`
	Strengths       string `form:"fortalezas"`
	Improvements    string `form:"mejoras"`
	Recommendations string `form:"recomendaciones"`
	Commitments     string `form:"compromisos"`
}

func (h *Handler) CreateVisit(c *gin.Context) {
	var form visitForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, "/nueva_visita", "Datos de la visita inválidos")
		return
	}

	v := viewer(c)
	visit, err := h.visits.Create(c.Request.Context(), v.UserID, visits.VisitInput{
		Date:            form.Date,
		Institution:     form.Institution,
		Level:           form.Level,
		VisitType:       form.VisitType,
		Strengths:       form.Strengths,
		Improvements:    form.Improvements,
		Recommendations: form.Recommendations,
		Commitments:     form.Commitments,
	})
	switch {
	case errors.Is(err, visits.ErrInvalidInput):
		fail(c, "/nueva_visita", "Complete la fecha y la institución educativa")
		return
	case errors.Is(err, visits.ErrDuplicateReportNumber):
		h.logger(c).WithError(err).Error("create visit")
		fail(c, "/nueva_visita", "No se pudo asignar el número de informe, intente de nuevo")
		return
	case err != nil:
		h.logger(c).WithError(err).Error("create visit")
		fail(c, "/nueva_visita", "No se pudo registrar la visita")
		return
	}

	h.metrics.Visits.Inc()
	h.logger(c).WithField("report_number", visit.ReportNumber).Info("visit created")
	succeed(c, "/dashboard", "Visita registrada con éxito: "+visit.ReportNumber)
}

// loadVisit fetches a visit the current user may see. Missing and foreign
// visits get the same answer.
func (h *Handler) loadVisit(c *gin.Context) (*models.Visit, bool) {
	id, ok := idParam(c)
	if !ok {
		fail(c, "/dashboard", "Visita no encontrada o no autorizada")
		return nil, false
	}
	visit, err := h.visits.GetVisible(c.Request.Context(), viewer(c), id)
	if errors.Is(err, visits.ErrNotFound) {
		fail(c, "/dashboard", "Visita no encontrada o no autorizada")
		return nil, false
	}
	if err != nil {
		h.logger(c).WithError(err).Error("load visit")
		fail(c, "/dashboard", "No se pudo cargar la visita")
		return nil, false
	}
	return visit, true
}

func (h *Handler) VisitPDF(c *gin.Context) {
	visit, ok := h.loadVisit(c)
	if !ok {
		return
	}
	out, err := reports.RenderPDF(reports.FromVisit(*visit, visit.User.DisplayName()))
	h.sendDocument(c, reports.KindVisitPDF, strconv.FormatUint(uint64(visit.ID), 10), "pdf", reports.ContentTypePDF, out, err)
}

func (h *Handler) VisitSlides(c *gin.Context) {
	visit, ok := h.loadVisit(c)
	if !ok {
		return
	}
	out, err := reports.RenderPPTX(reports.FromVisit(*visit, visit.User.DisplayName()))
	h.sendDocument(c, reports.KindVisitSlides, strconv.FormatUint(uint64(visit.ID), 10), "pptx", reports.ContentTypePPTX, out, err)
}

func (h *Handler) ExportSpreadsheet(c *gin.Context) {
	month := c.Query("mes")
	d, err := h.visits.Dashboard(c.Request.Context(), viewer(c), month)
	if errors.Is(err, visits.ErrInvalidMonth) {
		fail(c, "/dashboard", "Mes inválido, use el formato AAAA-MM")
		return
	}
	if err != nil {
		h.logger(c).WithError(err).Error("export visits")
		fail(c, "/dashboard", "No se pudo generar el Excel")
		return
	}

	period := month
	if period == "" {
		period = reports.AllMonths
	}
	out, err := reports.RenderSpreadsheet(reports.RowsFromVisits(d.Visits), reports.SheetSummary{
		Period:    period,
		Total:     d.Total,
		ThisMonth: d.ThisMonth,
		Target:    visits.MonthlyTarget,
		Progress:  d.Progress,
	})
	h.sendDocument(c, reports.KindSpreadsheet, period, "xlsx", reports.ContentTypeXLSX, out, err)
}

// MonthlySummary reports office-wide figures for the month, or all months for
// "todos". The per-record pages only list what the caller may see.
func (h *Handler) MonthlySummary(c *gin.Context) {
	period := c.Param("mes")
	month := period
	if period == reports.AllMonths {
		month = ""
	} else if !visits.ValidMonth(period) {
		fail(c, "/dashboard", "Mes inválido, use el formato AAAA-MM")
		return
	}

	d, err := h.visits.Summary(c.Request.Context(), viewer(c), month)
	if err != nil {
		h.logger(c).WithError(err).Error("monthly summary")
		fail(c, "/dashboard", "No se pudo generar el informe mensual")
		return
	}
	out, err := reports.RenderSummaryPDF(reports.NewSummary(month, d, h.now()))
	h.sendDocument(c, reports.KindMonthly, period, "pdf", reports.ContentTypePDF, out, err)
}

func (h *Handler) sendDocument(c *gin.Context, kind, id, ext, contentType string, out []byte, err error) {
	if err != nil {
		h.logger(c).WithError(err).WithField("kind", kind).Error("render document")
		fail(c, "/dashboard", "No se pudo generar el documento")
		return
	}
	h.metrics.Documents.WithLabelValues(kind).Inc()
	c.Header("Content-Disposition", `attachment; filename="`+reports.Filename(kind, id, ext)+`"`)
	c.Data(http.StatusOK, contentType, out)
}
