package api

import "github.com/shopspring/decimal"

type Project struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Customer  string          `json:"customer"`
	Status    string          `json:"status"`
	Progress  float64         `json:"progress"`
	Revenue   decimal.Decimal `json:"revenue"`
	Location  string          `json:"location"`
	StartDate string          `json:"startDate"`
	DueDate   string          `json:"dueDate"`
}

type Dashboard struct {
	TotalProjects   int              `json:"totalProjects"`
	ActiveProjects  int              `json:"activeProjects"`
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	ProjectProgress float64          `json:"projectProgress"`
	RecentProjects  []ProjectSummary `json:"recentProjects"`
}
