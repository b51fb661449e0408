package report

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

type TextConfig struct {
	BarWidth   int
	LabelWidth int
}

func DefaultTextConfig() TextConfig {
	return TextConfig{
		BarWidth:   40,
		LabelWidth: 32,
	}
}

// TextRenderer outputs reports to the console in a formatted text form
type TextRenderer struct {
	config TextConfig
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{config: DefaultTextConfig()}
}

const textTemplate = `{{range .Sections}}{{if eq .Kind "header"}}{{$.Title}}
Generated on: {{$.DateLabel}}
{{else}}
=== {{.Title}} ===
{{range .Tables}}{{if .Title}}{{.Title}}
{{end}}{{renderTable .}}
{{end}}{{with .Chart}}{{renderBars .}}{{end}}{{end}}{{end}}`

func (c *TextRenderer) Render(ctx context.Context, report *domain.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	funcMap := template.FuncMap{
		"renderTable": func(t domain.ReportTable) string {
			return table.New().
				Border(lipgloss.NormalBorder()).
				Headers(t.Columns...).
				Rows(t.Rows...).
				String()
		},
		"renderBars": c.bars,
	}

	t, err := template.New("report").Funcs(funcMap).Parse(textTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *TextRenderer) bars(series *domain.ChartSeries) string {
	maxValue := series.Max
	if maxValue <= 0 {
		maxValue = 100
	}

	var sb strings.Builder
	for i, v := range series.Values {
		filled := int(math.Round(math.Min(v, maxValue) / maxValue * float64(c.config.BarWidth)))
		label := series.Labels[i]
		if len([]rune(label)) > c.config.LabelWidth {
			label = string([]rune(label)[:c.config.LabelWidth-1]) + "…"
		}
		fmt.Fprintf(&sb, "%-*s |%s%s| %d%%\n",
			c.config.LabelWidth, label,
			strings.Repeat("#", filled),
			strings.Repeat(" ", c.config.BarWidth-filled),
			int64(math.Round(v)))
	}
	return sb.String()
}
