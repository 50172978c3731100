package formatter

import (
	"fmt"

	"github.com/resumesavvy/interview-agent/internal/entity"
)

// Report is the renderer-agnostic shape of an interview report.
type Report struct {
	Title    string
	Subtitle string
	Scores   []ScoreRow
	Sections []Section
}

// ScoreRow is one line of the score table.
type ScoreRow struct {
	Category string
	Marks    int
	Total    int
	Percent  int
}

// Section is a heading followed by either a paragraph or a numbered list.
type Section struct {
	Heading   string
	Paragraph string
	Items     []string
}

type Formatter interface {
	Format(report *Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
