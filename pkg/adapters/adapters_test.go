package adapters

import (
	"testing"

	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/models/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapAPIReportOptionsToDomain_DefaultsOmittedFlags(t *testing.T) {
	off := false

	opts := MapAPIReportOptionsToDomain(api.ReportOptions{IncludeCharts: &off})

	assert.Equal(t, domain.ReportOptions{
		IncludeSummary: true,
		IncludeDetails: true,
		IncludeCharts:  false,
	}, opts)
}

func TestMapAPIReportInputToDomain_KeepsNilProjects(t *testing.T) {
	in := MapAPIReportInputToDomain(api.ReportInput{TotalProjects: 3})
	assert.Nil(t, in.RecentProjects)

	in = MapAPIReportInputToDomain(api.ReportInput{RecentProjects: []api.ProjectSummary{}})
	assert.NotNil(t, in.RecentProjects)
	assert.Empty(t, in.RecentProjects)
}

func TestMapStoreProjectToDomain_ConvertsCents(t *testing.T) {
	p := MapStoreProjectToDomain(store.ProjectRecord{
		ID:           7,
		Name:         "Commercial Solar Farm",
		CustomerName: "ABC Corp",
		Status:       "Planning",
		Progress:     25,
		RevenueCents: 4500050,
	})

	assert.True(t, decimal.RequireFromString("45000.50").Equal(p.Revenue))
	assert.Equal(t, domain.ProjectStatusPlanning, p.Status)
	assert.Equal(t, "ABC Corp", p.Summary().Customer)
}

func TestMapStorePerformanceToDomain_FormatsProduction(t *testing.T) {
	m := MapStorePerformanceToDomain(store.PerformanceRecord{Location: "Building A", Efficiency: 95, ProductionKWh: 450, Status: "Optimal"})
	assert.Equal(t, "450 kWh", m.Production)
}
