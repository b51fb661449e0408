package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportInput is the summary-statistics snapshot a report is generated from.
type ReportInput struct {
	TotalProjects   int
	ActiveProjects  int
	TotalRevenue    decimal.Decimal
	ProjectProgress float64 // 0..100
	RecentProjects  []ProjectSummary
	Performance     []PerformanceMetric
}

type ProjectSummary struct {
	Name     string
	Customer string
	Status   string
	Progress float64 // 0..100
}

// PerformanceMetric is one installation row of the analytics export.
type PerformanceMetric struct {
	Location   string
	Efficiency float64
	Production string
	Status     string
}

// ReportOptions selects the optional sections of a report.
// The zero value omits everything but the header; use DefaultReportOptions.
type ReportOptions struct {
	IncludeSummary bool
	IncludeDetails bool
	IncludeCharts  bool
}

// DefaultReportOptions returns options with every section enabled.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		IncludeSummary: true,
		IncludeDetails: true,
		IncludeCharts:  true,
	}
}

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// Extension returns the file extension used in generated filenames.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv"
	default:
		return "text/plain; charset=utf-8"
	}
}

// GeneratedDocument is a finished report ready to be delivered.
type GeneratedDocument struct {
	ID          uuid.UUID
	Filename    string
	Format      Format
	Content     []byte
	GeneratedAt time.Time
}

func (d *GeneratedDocument) ContentType() string {
	return d.Format.ContentType()
}

// Report represents the format-independent layout of a document
type Report struct {
	Title       string
	GeneratedAt time.Time
	DateLabel   string // header date in the viewer locale
	Sections    []ReportSection
}

type SectionKind string

const (
	SectionHeader  SectionKind = "header"
	SectionSummary SectionKind = "summary"
	SectionDetails SectionKind = "details"
	SectionChart   SectionKind = "chart"

	// SectionPerformance trails the report when details are on and the
	// input carries installation metrics.
	SectionPerformance SectionKind = "performance"
)

type TableStyle string

const (
	TableStyleGrid    TableStyle = "grid"
	TableStyleStriped TableStyle = "striped"
)

// ReportSection represents a logical section in the report
type ReportSection struct {
	Kind   SectionKind
	Title  string
	Tables []ReportTable
	Chart  *ChartSeries
}

type ReportTable struct {
	Title   string
	Columns []string
	Rows    [][]string
	Style   TableStyle
}

// ChartSeries is the data behind a bar chart: one bar per label.
type ChartSeries struct {
	Title  string
	Labels []string
	Values []float64
	Max    float64
}
