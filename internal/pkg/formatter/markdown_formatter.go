package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n%s\n", report.Title, report.Subtitle)

	if len(report.Scores) > 0 {
		buf.WriteString("\n| Category | Score | Total Score | Percentage |\n")
		buf.WriteString("| --- | --- | --- | --- |\n")
		for _, row := range report.Scores {
			fmt.Fprintf(&buf, "| %s | %d | %d | %d%% |\n", row.Category, row.Marks, row.Total, row.Percent)
		}
	}

	for _, section := range report.Sections {
		fmt.Fprintf(&buf, "\n## %s\n\n", section.Heading)
		if section.Paragraph != "" {
			fmt.Fprintf(&buf, "%s\n", section.Paragraph)
		}
		for i, item := range section.Items {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, item)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
