package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

// CSVRenderer writes each section as a block of records separated by an
// empty line. The chart section becomes its data series.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Render(ctx context.Context, report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for i, section := range report.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return nil, err
			}
		}

		var records [][]string
		switch section.Kind {
		case domain.SectionHeader:
			records = [][]string{
				{report.Title},
				{"Generated on", report.DateLabel},
			}
		case domain.SectionChart:
			records = chartRecords(section)
		default:
			records = tableRecords(section)
		}

		if err := w.WriteAll(records); err != nil {
			return nil, fmt.Errorf("write %s section: %w", section.Kind, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func tableRecords(section domain.ReportSection) [][]string {
	records := [][]string{{section.Title}}
	for i, table := range section.Tables {
		if i > 0 {
			records = append(records, []string{})
		}
		if table.Title != "" {
			records = append(records, []string{table.Title})
		}
		records = append(records, table.Columns)
		records = append(records, table.Rows...)
	}
	return records
}

func chartRecords(section domain.ReportSection) [][]string {
	records := [][]string{{section.Title}, {"Project", "Progress"}}
	if section.Chart == nil {
		return records
	}
	for i, v := range section.Chart.Values {
		records = append(records, []string{section.Chart.Labels[i], strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return records
}
