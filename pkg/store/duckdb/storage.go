package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const CustomersTableSchema = `
	CREATE TABLE IF NOT EXISTS customers (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		contact_person VARCHAR,
		email VARCHAR,
		phone VARCHAR,
		industry VARCHAR,
		address VARCHAR
	);
`
const ProjectsTableSchema = `
	CREATE TABLE IF NOT EXISTS projects (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		customer_id BIGINT,
		status VARCHAR NOT NULL,
		progress DOUBLE NOT NULL DEFAULT 0,
		revenue_cents BIGINT NOT NULL DEFAULT 0,
		location VARCHAR,
		start_date DATE,
		due_date DATE
	);
`
const PerformanceTableSchema = `
	CREATE TABLE IF NOT EXISTS performance_metrics (
		location VARCHAR PRIMARY KEY,
		efficiency DOUBLE NOT NULL,
		production_kwh BIGINT NOT NULL,
		status VARCHAR
	);
`

var bootQueries = []string{
	CustomersTableSchema,
	ProjectsTableSchema,
	PerformanceTableSchema,
}

// Settings configures the database. An empty DbPath keeps everything in memory.
type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			if _, err := exec.ExecContext(context.Background(), query, nil); err != nil {
				return fmt.Errorf("boot query failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	return sql.OpenDB(c), nil
}
