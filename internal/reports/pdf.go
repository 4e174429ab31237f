package reports

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// DejaVu is embedded as a UTF-8 font so observations print verbatim, whatever
// script or symbols they use.
const (
	fontFamily = "DejaVu"
	lineHeight = 6.0
)

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte
)

// compressStreams is switched off in tests to inspect page content.
var compressStreams = true

type pdfWriter struct {
	pdf *fpdf.Fpdf
}

func newPDF(title string) *pdfWriter {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(title, true)
	pdf.SetCreator("ugel-monitor", true)
	pdf.SetCompression(compressStreams)
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontItalic)
	w := &pdfWriter{pdf: pdf}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Página %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return w
}

func (w *pdfWriter) heading(text string, size float64) {
	w.pdf.SetFont(fontFamily, "B", size)
	w.pdf.SetTextColor(0, 51, 102)
	w.pdf.MultiCell(0, size*0.5, text, "", "C", false)
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) subheading(text string) {
	w.pdf.SetFont(fontFamily, "B", 12)
	w.pdf.SetTextColor(0, 51, 102)
	w.pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
}

// labelled writes "Label: value" with the label in bold.
func (w *pdfWriter) labelled(label, value string) {
	w.pdf.SetFont(fontFamily, "B", 11)
	lbl := label + ": "
	w.pdf.CellFormat(w.pdf.GetStringWidth(lbl)+1, lineHeight, lbl, "", 0, "L", false, 0, "")
	w.pdf.SetFont(fontFamily, "", 11)
	w.pdf.MultiCell(0, lineHeight, value, "", "L", false)
}

func (w *pdfWriter) paragraph(text string, italic bool) {
	style := ""
	if italic {
		style = "I"
	}
	w.pdf.SetFont(fontFamily, style, 11)
	w.pdf.MultiCell(0, lineHeight, text, "", "L", false)
}

// document writes a visit report starting at the current position.
func (w *pdfWriter) document(doc Document) {
	w.heading(doc.Title, 16)
	w.pdf.Ln(4)
	w.labelled("Número de Informe", doc.ReportNumber)
	w.pdf.Ln(2)
	for _, f := range doc.Fields {
		w.labelled(f.Label, f.Value)
	}

	w.pdf.Ln(6)
	w.subheading("OBSERVACIONES ESTRUCTURADAS")
	for _, s := range doc.Sections {
		w.pdf.Ln(2)
		w.pdf.SetFont(fontFamily, "B", 11)
		w.pdf.CellFormat(0, lineHeight, s.Heading+":", "", 1, "L", false, 0, "")
		w.paragraph(s.Body, s.Missing)
	}
}

func (w *pdfWriter) signature(label string) {
	w.pdf.Ln(18)
	w.pdf.SetFont(fontFamily, "", 11)
	w.pdf.CellFormat(0, lineHeight, strings.Repeat("_", 40), "", 1, "L", false, 0, "")
	w.pdf.CellFormat(0, lineHeight, label, "", 1, "L", false, 0, "")
}

// cell writes a fixed-width table cell, shortening text that would overflow.
func (w *pdfWriter) cell(width float64, text, border string, fill bool) {
	w.pdf.CellFormat(width, 7, w.fit(text, width-2), border, 0, "L", fill, 0, "")
}

func (w *pdfWriter) fit(s string, width float64) string {
	if w.pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "…"
	for len(s) > 0 && w.pdf.GetStringWidth(s+ellipsis) > width {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s + ellipsis
}

func (w *pdfWriter) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF renders a single visit report.
func RenderPDF(doc Document) ([]byte, error) {
	w := newPDF(doc.Title + " " + doc.ReportNumber)
	w.pdf.AddPage()
	w.document(doc)
	w.signature(doc.Signature)
	return w.bytes()
}
