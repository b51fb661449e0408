package report

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderer_AllSections(t *testing.T) {
	a := newTestAssembler(ChartModePlaceholder)
	in := dashboardInput()
	in.RecentProjects = in.RecentProjects[:2]

	doc, err := a.Generate(context.Background(), in, domain.DefaultReportOptions(), domain.FormatCSV)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Solar Project Report",
		"Generated on,3/15/2024",
		"",
		"Summary",
		"Metric,Value",
		"Total Projects,24",
		"Active Projects,12",
		`Total Revenue,"$156,000"`,
		"Project Progress,68%",
		"",
		"Project Details",
		"Project Name,Customer,Status,Progress",
		"Solar Panel Installation,John Doe,In Progress,75%",
		"Commercial Solar Farm,ABC Corp,Planning,25%",
		"",
		"Project Progress Chart",
		"Project,Progress",
		"Solar Panel Installation,75",
		"Commercial Solar Farm,25",
		"",
	}, "\n")
	assert.Equal(t, want, string(doc.Content))
}

func TestCSVRenderer_OutputIsParseable(t *testing.T) {
	a := newTestAssembler(ChartModePlaceholder)
	in := dashboardInput()
	in.RecentProjects[0].Name = `Rooftop "Phase 1", North`
	in.Performance = []domain.PerformanceMetric{
		{Location: "Building C", Efficiency: 76, Production: "290 kWh", Status: "Need Maintenance"},
	}

	doc, err := a.Generate(context.Background(), in, domain.ReportOptions{IncludeDetails: true}, domain.FormatCSV)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(doc.Content)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Contains(t, records, []string{`Rooftop "Phase 1", North`, "John Doe", "In Progress", "75%"})
	assert.Equal(t, []string{"Installation Performance"}, records[len(records)-3])
	assert.Equal(t, []string{"Residential Battery Setup", "Smith Family", "Completed", "100%"}, records[len(records)-4])
	assert.Equal(t, []string{"Building C", "76%", "290 kWh", "Need Maintenance"}, records[len(records)-1])
}
