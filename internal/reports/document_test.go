package reports

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

func sampleVisit() models.Visit {
	return models.Visit{
		ID:              7,
		ReportNumber:    "INF-2025-007",
		Date:            "2025-03-14",
		Institution:     "IE N° 32004 San Pedro",
		Level:           "Primaria",
		VisitType:       "Monitoreo",
		Strengths:       "Planificación clara\nUso de material concreto",
		Improvements:    "Gestión del tiempo",
		Recommendations: "",
		Commitments:     "",
	}
}

func TestFromVisit_KeepsObservationsVerbatim(t *testing.T) {
	v := sampleVisit()
	doc := FromVisit(v, "Ana Torres")

	require.Equal(t, "INF-2025-007", doc.ReportNumber)
	require.Equal(t, "IE N° 32004 San Pedro", doc.Field("Institución Educativa"))
	require.Equal(t, "Ana Torres", doc.Field("Especialista"))
	require.Equal(t, "2025-03-14", doc.Field("Fecha"))
	require.Equal(t, "Monitoreo", doc.Field("Tipo de Visita"))
	require.Equal(t, "Primaria", doc.Field("Nivel"))
	require.Empty(t, doc.Field("Desconocido"))

	require.Len(t, doc.Sections, 4)
	require.Equal(t, Section{Heading: "Fortalezas", Body: v.Strengths}, doc.Sections[0])
	require.Equal(t, Section{Heading: "Áreas de mejora", Body: v.Improvements}, doc.Sections[1])
	require.Equal(t, Section{Heading: "Recomendaciones", Body: PlaceholderFeminine, Missing: true}, doc.Sections[2])
	require.Equal(t, Section{Heading: "Compromisos del docente", Body: PlaceholderMasculine, Missing: true}, doc.Sections[3])
}

func TestFromVisit_PlaceholderTextIsNotMistakenForEmpty(t *testing.T) {
	v := sampleVisit()
	v.Recommendations = PlaceholderFeminine

	doc := FromVisit(v, "Ana")
	require.False(t, doc.Sections[2].Missing)
	require.Equal(t, PlaceholderFeminine, doc.Sections[2].Body)
}

func TestFilename(t *testing.T) {
	require.Equal(t, "informe_visita_7.pdf", Filename(KindVisitPDF, "7", "pdf"))
	require.Equal(t, "reporte_visita_7.pptx", Filename(KindVisitSlides, "7", "pptx"))
	require.Equal(t, "informe_visitas_todos.xlsx", Filename(KindSpreadsheet, AllMonths, "xlsx"))
	require.Equal(t, "informe_mensual_2025-03.pdf", Filename(KindMonthly, "2025-03", "pdf"))
}
