// Package reports turns visit records into downloadable documents. Every
// format renders the same Document model.
package reports

import (
	"fmt"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

const (
	PlaceholderFeminine  = "No registradas."
	PlaceholderMasculine = "No registrados."
)

type Field struct {
	Label string
	Value string
}

type Section struct {
	Heading string
	Body    string
	Missing bool // Body is the placeholder
}

// Document is the format-neutral layout of a single visit report.
type Document struct {
	Title        string
	ReportNumber string
	Fields       []Field
	Sections     []Section
	Signature    string
}

// FromVisit builds the report for v. specialist is the display name of the
// visit owner.
func FromVisit(v models.Visit, specialist string) Document {
	return Document{
		Title:        "INFORME DE VISITA PEDAGÓGICA",
		ReportNumber: v.ReportNumber,
		Fields: []Field{
			{"Institución Educativa", v.Institution},
			{"Nivel", v.Level},
			{"Tipo de Visita", v.VisitType},
			{"Especialista", specialist},
			{"Fecha", v.Date},
		},
		Sections: []Section{
			section("Fortalezas", v.Strengths, PlaceholderFeminine),
			section("Áreas de mejora", v.Improvements, PlaceholderFeminine),
			section("Recomendaciones", v.Recommendations, PlaceholderFeminine),
			section("Compromisos del docente", v.Commitments, PlaceholderMasculine),
		},
		Signature: "Firma del Especialista",
	}
}

func section(heading, body, placeholder string) Section {
	if body == "" {
		return Section{Heading: heading, Body: placeholder, Missing: true}
	}
	return Section{Heading: heading, Body: body}
}

// Field returns the value of the field labelled label.
func (d Document) Field(label string) string {
	for _, f := range d.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	return ""
}

const (
	KindVisitPDF    = "informe_visita"
	KindVisitSlides = "reporte_visita"
	KindSpreadsheet = "informe_visitas"
	KindMonthly     = "informe_mensual"

	AllMonths = "todos"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Filename is the download name: <kind>_<id>.<ext>.
func Filename(kind, id, ext string) string {
	return fmt.Sprintf("%s_%s.%s", kind, id, ext)
}
