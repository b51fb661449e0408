package adapters

import (
	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

// MapAPIReportInputToDomain keeps a nil RecentProjects nil so validation can reject it.
func MapAPIReportInputToDomain(in api.ReportInput) domain.ReportInput {
	out := domain.ReportInput{
		TotalProjects:   in.TotalProjects,
		ActiveProjects:  in.ActiveProjects,
		TotalRevenue:    in.TotalRevenue,
		ProjectProgress: in.ProjectProgress,
	}

	if in.RecentProjects != nil {
		out.RecentProjects = make([]domain.ProjectSummary, 0, len(in.RecentProjects))
		for _, p := range in.RecentProjects {
			out.RecentProjects = append(out.RecentProjects, domain.ProjectSummary{
				Name:     p.Name,
				Customer: p.Customer,
				Status:   p.Status,
				Progress: p.Progress,
			})
		}
	}

	for _, m := range in.Performance {
		out.Performance = append(out.Performance, domain.PerformanceMetric{
			Location:   m.Location,
			Efficiency: m.Efficiency,
			Production: m.Production,
			Status:     m.Status,
		})
	}

	return out
}

func MapAPIReportOptionsToDomain(in api.ReportOptions) domain.ReportOptions {
	opts := domain.DefaultReportOptions()
	if in.IncludeSummary != nil {
		opts.IncludeSummary = *in.IncludeSummary
	}
	if in.IncludeDetails != nil {
		opts.IncludeDetails = *in.IncludeDetails
	}
	if in.IncludeCharts != nil {
		opts.IncludeCharts = *in.IncludeCharts
	}
	return opts
}

func MapDomainReportInputToAPIDashboard(in domain.ReportInput) api.Dashboard {
	projects := make([]api.ProjectSummary, 0, len(in.RecentProjects))
	for _, p := range in.RecentProjects {
		projects = append(projects, api.ProjectSummary{
			Name:     p.Name,
			Customer: p.Customer,
			Status:   p.Status,
			Progress: p.Progress,
		})
	}

	return api.Dashboard{
		TotalProjects:   in.TotalProjects,
		ActiveProjects:  in.ActiveProjects,
		TotalRevenue:    in.TotalRevenue,
		ProjectProgress: in.ProjectProgress,
		RecentProjects:  projects,
	}
}
