package adapters

import (
	"fmt"

	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/models/store"
	"github.com/shopspring/decimal"
)

func MapStoreProjectToDomain(p store.ProjectRecord) domain.Project {
	return domain.Project{
		ID:        p.ID,
		Name:      p.Name,
		Customer:  p.CustomerName,
		Status:    domain.ProjectStatus(p.Status),
		Progress:  p.Progress,
		Revenue:   decimal.New(p.RevenueCents, -2),
		Location:  p.Location,
		StartDate: p.StartDate,
		DueDate:   p.DueDate,
	}
}

func MapStoreCustomerToDomain(c store.CustomerRecord) domain.Customer {
	return domain.Customer{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Industry:      c.Industry,
		Address:       c.Address,
	}
}

func MapStorePerformanceToDomain(p store.PerformanceRecord) domain.PerformanceMetric {
	return domain.PerformanceMetric{
		Location:   p.Location,
		Efficiency: p.Efficiency,
		Production: fmt.Sprintf("%d kWh", p.ProductionKWh),
		Status:     p.Status,
	}
}

func MapDomainProjectToAPI(p domain.Project) api.Project {
	return api.Project{
		ID:        p.ID,
		Name:      p.Name,
		Customer:  p.Customer,
		Status:    string(p.Status),
		Progress:  p.Progress,
		Revenue:   p.Revenue,
		Location:  p.Location,
		StartDate: p.StartDate.Format("2006-01-02"),
		DueDate:   p.DueDate.Format("2006-01-02"),
	}
}
