package projects

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/solar-atlas/pkg/models/store"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb"
)

const (
	insertCustomerQuery = `
		INSERT INTO customers (id, name, contact_person, email, phone, industry, address)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertProjectQuery = `
		INSERT INTO projects (
			id, name, customer_id, status, progress, revenue_cents,
			location, start_date, due_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertPerformanceQuery = `
		INSERT INTO performance_metrics (location, efficiency, production_kwh, status)
		VALUES (?, ?, ?, ?)`

	listCustomersQuery = `
		SELECT id, name, contact_person, email, phone, industry, address
		FROM customers
		ORDER BY id`

	selectProjects = `
		SELECT p.id, p.name, p.customer_id, COALESCE(c.name, ''), p.status, p.progress,
			p.revenue_cents, COALESCE(p.location, ''), p.start_date, p.due_date
		FROM projects p
		LEFT JOIN customers c ON c.id = p.customer_id`

	listProjectsQuery   = selectProjects + ` ORDER BY p.id`
	recentProjectsQuery = selectProjects + ` ORDER BY p.start_date DESC, p.id DESC LIMIT ?`

	projectStatsQuery = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			CAST(COALESCE(SUM(revenue_cents), 0) AS BIGINT),
			COALESCE(AVG(progress), 0)
		FROM projects`

	listPerformanceQuery = `
		SELECT location, efficiency, production_kwh, COALESCE(status, '')
		FROM performance_metrics
		ORDER BY location`
)

// ActiveStatus is the project status counted as active in the dashboard stats.
const ActiveStatus = "In Progress"

// Store holds the mock customers, projects and installation performance.
// Add methods join the transaction attached to ctx, if any.
type Store interface {
	AddCustomers(ctx context.Context, records []store.CustomerRecord) error
	AddProjects(ctx context.Context, records []store.ProjectRecord) error
	AddPerformance(ctx context.Context, records []store.PerformanceRecord) error
	ListCustomers(ctx context.Context) ([]store.CustomerRecord, error)
	ListProjects(ctx context.Context) ([]store.ProjectRecord, error)
	RecentProjects(ctx context.Context, limit int) ([]store.ProjectRecord, error)
	GetProjectStats(ctx context.Context) (*store.ProjectStats, error)
	ListPerformance(ctx context.Context) ([]store.PerformanceRecord, error)
}

type projectStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &projectStore{db: db}, nil
}

func (s *projectStore) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	var (
		stmt *sql.Stmt
		err  error
	)
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		stmt, err = tx.PrepareContext(ctx, query)
	} else {
		stmt, err = s.db.PrepareContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	return stmt, nil
}

func (s *projectStore) AddCustomers(ctx context.Context, records []store.CustomerRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := s.prepare(ctx, insertCustomerQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range records {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.ContactPerson, c.Email, c.Phone, c.Industry, c.Address); err != nil {
			return fmt.Errorf("insert customer %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *projectStore) AddProjects(ctx context.Context, records []store.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := s.prepare(ctx, insertProjectQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range records {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			p.CustomerID,
			p.Status,
			p.Progress,
			p.RevenueCents,
			p.Location,
			nullDate(p.StartDate),
			nullDate(p.DueDate),
		)
		if err != nil {
			return fmt.Errorf("insert project %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *projectStore) AddPerformance(ctx context.Context, records []store.PerformanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := s.prepare(ctx, insertPerformanceQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range records {
		if _, err := stmt.ExecContext(ctx, m.Location, m.Efficiency, m.ProductionKWh, m.Status); err != nil {
			return fmt.Errorf("insert performance for %s: %w", m.Location, err)
		}
	}
	return nil
}

func (s *projectStore) ListCustomers(ctx context.Context) ([]store.CustomerRecord, error) {
	rows, err := s.db.QueryContext(ctx, listCustomersQuery)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	records := make([]store.CustomerRecord, 0)
	for rows.Next() {
		var (
			c                                        store.CustomerRecord
			contact, email, phone, industry, address sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &contact, &email, &phone, &industry, &address); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.ContactPerson = contact.String
		c.Email = email.String
		c.Phone = phone.String
		c.Industry = industry.String
		c.Address = address.String
		records = append(records, c)
	}
	return records, rows.Err()
}

func (s *projectStore) ListProjects(ctx context.Context) ([]store.ProjectRecord, error) {
	rows, err := s.db.QueryContext(ctx, listProjectsQuery)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()
	return scanProjectRows(rows)
}

func (s *projectStore) RecentProjects(ctx context.Context, limit int) ([]store.ProjectRecord, error) {
	if limit <= 0 {
		return []store.ProjectRecord{}, nil
	}

	rows, err := s.db.QueryContext(ctx, recentProjectsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent projects: %w", err)
	}
	defer rows.Close()
	return scanProjectRows(rows)
}

func (s *projectStore) GetProjectStats(ctx context.Context) (*store.ProjectStats, error) {
	var stats store.ProjectStats
	err := s.db.QueryRowContext(ctx, projectStatsQuery, ActiveStatus).Scan(
		&stats.TotalProjects,
		&stats.ActiveProjects,
		&stats.TotalRevenueCents,
		&stats.AverageProgress,
	)
	if err != nil {
		return nil, fmt.Errorf("get project stats: %w", err)
	}
	return &stats, nil
}

func (s *projectStore) ListPerformance(ctx context.Context) ([]store.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, listPerformanceQuery)
	if err != nil {
		return nil, fmt.Errorf("query performance: %w", err)
	}
	defer rows.Close()

	records := make([]store.PerformanceRecord, 0)
	for rows.Next() {
		var m store.PerformanceRecord
		if err := rows.Scan(&m.Location, &m.Efficiency, &m.ProductionKWh, &m.Status); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func scanProjectRows(rows *sql.Rows) ([]store.ProjectRecord, error) {
	records := make([]store.ProjectRecord, 0)
	for rows.Next() {
		var (
			p          store.ProjectRecord
			customerID sql.NullInt64
			start, due sql.NullTime
		)
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&customerID,
			&p.CustomerName,
			&p.Status,
			&p.Progress,
			&p.RevenueCents,
			&p.Location,
			&start,
			&due,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.CustomerID = customerID.Int64
		p.StartDate = start.Time
		p.DueDate = due.Time
		records = append(records, p)
	}
	return records, rows.Err()
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
