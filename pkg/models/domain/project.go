package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
)

type Customer struct {
	ID            int64
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Industry      string
	Address       string
}

type Project struct {
	ID        int64
	Name      string
	Customer  string
	Status    ProjectStatus
	Progress  float64
	Revenue   decimal.Decimal
	Location  string
	StartDate time.Time
	DueDate   time.Time
}

// Summary reduces a project to the row shown in reports.
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{
		Name:     p.Name,
		Customer: p.Customer,
		Status:   string(p.Status),
		Progress: p.Progress,
	}
}
