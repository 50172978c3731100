package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(report *Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(report.Title)

	doc.AddParagraph().AddRun().AddText(report.Subtitle)

	if len(report.Scores) > 0 {
		table := doc.AddTable()
		header := table.AddRow()
		for _, label := range []string{"Category", "Score", "Total Score", "Percentage"} {
			header.AddCell().AddParagraph().AddRun().AddText(label)
		}
		for _, row := range report.Scores {
			cells := table.AddRow()
			cells.AddCell().AddParagraph().AddRun().AddText(row.Category)
			cells.AddCell().AddParagraph().AddRun().AddText(fmt.Sprintf("%d", row.Marks))
			cells.AddCell().AddParagraph().AddRun().AddText(fmt.Sprintf("%d", row.Total))
			cells.AddCell().AddParagraph().AddRun().AddText(fmt.Sprintf("%d%%", row.Percent))
		}
	}

	for _, section := range report.Sections {
		doc.AddParagraph()
		headingPar := doc.AddParagraph()
		headingPar.SetStyle("Heading2")
		headingPar.AddRun().AddText(section.Heading)

		if section.Paragraph != "" {
			doc.AddParagraph().AddRun().AddText(section.Paragraph)
		}
		for i, item := range section.Items {
			doc.AddParagraph().AddRun().AddText(fmt.Sprintf("%d. %s", i+1, item))
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
