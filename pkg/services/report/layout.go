package report

import (
	"context"
	"time"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

const (
	summaryTitle     = "Summary"
	detailsTitle     = "Project Details"
	performanceTitle = "Installation Performance"
	chartTitle       = "Project Progress Chart"
)

// layout builds the section plan. Sections are always emitted in the order
// header, summary, details, chart, each one only when its flag is set.
// Installation performance follows as its own section under the details flag.
func (a *Assembler) layout(
	ctx context.Context,
	in domain.ReportInput,
	opts domain.ReportOptions,
	now time.Time,
) (*domain.Report, error) {
	report := &domain.Report{
		Title:       a.cfg.Title,
		GeneratedAt: now,
		DateLabel:   a.formatter.ShortDate(now),
		Sections: []domain.ReportSection{{
			Kind:  domain.SectionHeader,
			Title: a.cfg.Title,
		}},
	}

	steps := []struct {
		enabled bool
		build   func(domain.ReportInput) domain.ReportSection
	}{
		{opts.IncludeSummary, a.summarySection},
		{opts.IncludeDetails, a.detailsSection},
		{opts.IncludeCharts, a.chartSection},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if step.enabled {
			report.Sections = append(report.Sections, step.build(in))
		}
	}

	if opts.IncludeDetails && len(in.Performance) > 0 {
		report.Sections = append(report.Sections, a.performanceSection(in))
	}

	return report, nil
}

func (a *Assembler) summarySection(in domain.ReportInput) domain.ReportSection {
	return domain.ReportSection{
		Kind:  domain.SectionSummary,
		Title: summaryTitle,
		Tables: []domain.ReportTable{{
			Columns: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total Projects", a.formatter.Count(in.TotalProjects)},
				{"Active Projects", a.formatter.Count(in.ActiveProjects)},
				{"Total Revenue", a.formatter.Currency(in.TotalRevenue)},
				{"Project Progress", a.formatter.Percent(in.ProjectProgress)},
			},
			Style: domain.TableStyleGrid,
		}},
	}
}

func (a *Assembler) detailsSection(in domain.ReportInput) domain.ReportSection {
	rows := make([][]string, 0, len(in.RecentProjects))
	for _, p := range in.RecentProjects {
		rows = append(rows, []string{p.Name, p.Customer, p.Status, a.formatter.Percent(p.Progress)})
	}

	return domain.ReportSection{
		Kind:  domain.SectionDetails,
		Title: detailsTitle,
		Tables: []domain.ReportTable{{
			Columns: []string{"Project Name", "Customer", "Status", "Progress"},
			Rows:    rows,
			Style:   domain.TableStyleStriped,
		}},
	}
}

func (a *Assembler) performanceSection(in domain.ReportInput) domain.ReportSection {
	rows := make([][]string, 0, len(in.Performance))
	for _, m := range in.Performance {
		rows = append(rows, []string{m.Location, a.formatter.Percent(m.Efficiency), m.Production, m.Status})
	}

	return domain.ReportSection{
		Kind:  domain.SectionPerformance,
		Title: performanceTitle,
		Tables: []domain.ReportTable{{
			Columns: []string{"Location", "Efficiency", "Production", "Status"},
			Rows:    rows,
			Style:   domain.TableStyleStriped,
		}},
	}
}

func (a *Assembler) chartSection(in domain.ReportInput) domain.ReportSection {
	series := &domain.ChartSeries{
		Title:  chartTitle,
		Labels: make([]string, 0, len(in.RecentProjects)),
		Values: make([]float64, 0, len(in.RecentProjects)),
		Max:    100,
	}
	for _, p := range in.RecentProjects {
		series.Labels = append(series.Labels, p.Name)
		series.Values = append(series.Values, p.Progress)
	}

	return domain.ReportSection{
		Kind:  domain.SectionChart,
		Title: chartTitle,
		Chart: series,
	}
}
