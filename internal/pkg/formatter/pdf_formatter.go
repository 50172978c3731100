package formatter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (mf *PDFFormatter) Format(report *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 10, report.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, report.Subtitle)
	pdf.Ln(12)

	if len(report.Scores) > 0 {
		writeScoreTable(pdf, report.Scores)
		pdf.Ln(8)
	}

	for _, section := range report.Sections {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 9, section.Heading)
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 12)
		_, lineHeight := pdf.GetFontSize()
		if section.Paragraph != "" {
			pdf.MultiCell(0, lineHeight*1.5, section.Paragraph, "", "", false)
		}
		for i, item := range section.Items {
			pdf.MultiCell(0, lineHeight*1.5, fmt.Sprintf("%d. %s", i+1, item), "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeScoreTable(pdf *gofpdf.Fpdf, rows []ScoreRow) {
	colWidths := []float64{70, 30, 40, 40}
	headers := []string{"Category", "Score", "Total Score", "Percentage"}

	pdf.SetFont("Arial", "B", 11)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.CellFormat(colWidths[0], 8, row.Category, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", row.Marks), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", row.Total), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%d%%", row.Percent), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
