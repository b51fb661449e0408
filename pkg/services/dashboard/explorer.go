package dashboard

import (
	"context"
	"math"

	"github.com/de-tools/solar-atlas/pkg/adapters"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb/projects"
	"github.com/shopspring/decimal"
)

type Explorer interface {
	ListProjects(ctx context.Context, criteria search.Criteria) ([]domain.Project, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	// Summary builds the report input shown on the dashboard. Without criteria
	// the most recent projects are listed; with criteria every match is.
	Summary(ctx context.Context, criteria search.Criteria) (*domain.ReportInput, error)
}

type explorer struct {
	store       projects.Store
	recentLimit int
}

func NewExplorer(store projects.Store, recentLimit int) Explorer {
	return &explorer{store: store, recentLimit: recentLimit}
}

func (e *explorer) ListProjects(ctx context.Context, criteria search.Criteria) ([]domain.Project, error) {
	records, err := e.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]domain.Project, 0, len(records))
	for _, r := range records {
		all = append(all, adapters.MapStoreProjectToDomain(r))
	}
	return search.Select(all, criteria, domain.Project.Summary)
}

func (e *explorer) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	records, err := e.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(records))
	for _, r := range records {
		customers = append(customers, adapters.MapStoreCustomerToDomain(r))
	}
	return customers, nil
}

func (e *explorer) Summary(ctx context.Context, criteria search.Criteria) (*domain.ReportInput, error) {
	stats, err := e.store.GetProjectStats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := e.recentProjects(ctx, criteria)
	if err != nil {
		return nil, err
	}

	metrics, err := e.store.ListPerformance(ctx)
	if err != nil {
		return nil, err
	}
	performance := make([]domain.PerformanceMetric, 0, len(metrics))
	for _, m := range metrics {
		performance = append(performance, adapters.MapStorePerformanceToDomain(m))
	}

	return &domain.ReportInput{
		TotalProjects:   int(stats.TotalProjects),
		ActiveProjects:  int(stats.ActiveProjects),
		TotalRevenue:    decimal.New(stats.TotalRevenueCents, -2),
		ProjectProgress: math.Round(stats.AverageProgress),
		RecentProjects:  recent,
		Performance:     performance,
	}, nil
}

func (e *explorer) recentProjects(ctx context.Context, criteria search.Criteria) ([]domain.ProjectSummary, error) {
	var (
		found []domain.Project
		err   error
	)
	if criteria.IsZero() {
		records, err := e.store.RecentProjects(ctx, e.recentLimit)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			found = append(found, adapters.MapStoreProjectToDomain(r))
		}
	} else if found, err = e.ListProjects(ctx, criteria); err != nil {
		return nil, err
	}

	summaries := make([]domain.ProjectSummary, 0, len(found))
	for _, p := range found {
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}
