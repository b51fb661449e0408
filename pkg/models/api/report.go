package api

import "github.com/shopspring/decimal"

type ProjectSummary struct {
	Name     string  `json:"name"`
	Customer string  `json:"customer"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
}

type PerformanceMetric struct {
	Location   string  `json:"location"`
	Efficiency float64 `json:"efficiency"`
	Production string  `json:"production"`
	Status     string  `json:"status"`
}

type ReportInput struct {
	TotalProjects   int                 `json:"totalProjects"`
	ActiveProjects  int                 `json:"activeProjects"`
	TotalRevenue    decimal.Decimal     `json:"totalRevenue"`
	ProjectProgress float64             `json:"projectProgress"`
	RecentProjects  []ProjectSummary    `json:"recentProjects"`
	Performance     []PerformanceMetric `json:"performance,omitempty"`
}

// ReportOptions mirrors the checkbox panel; omitted flags default to true.
type ReportOptions struct {
	IncludeSummary *bool `json:"includeSummary,omitempty"`
	IncludeDetails *bool `json:"includeDetails,omitempty"`
	IncludeCharts  *bool `json:"includeCharts,omitempty"`
}

type ReportRequest struct {
	Input   ReportInput   `json:"input"`
	Options ReportOptions `json:"options"`
}
