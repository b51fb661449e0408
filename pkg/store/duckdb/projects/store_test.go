package projects

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/solar-atlas/pkg/models/store"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	customers = []store.CustomerRecord{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Industry: "Residential"},
		{ID: 2, Name: "ABC Corp", Email: "contact@abccorp.com", Industry: "Commercial"},
	}
	projectRecords = []store.ProjectRecord{
		{ID: 1, Name: "Solar Panel Installation", CustomerID: 1, Status: "In Progress", Progress: 75, RevenueCents: 2500000, Location: "123 Solar St", StartDate: date(2024, 1, 15), DueDate: date(2024, 3, 15)},
		{ID: 2, Name: "Commercial Solar Farm", CustomerID: 2, Status: "Planning", Progress: 25, RevenueCents: 15000000, Location: "456 Energy Ave", StartDate: date(2024, 2, 1), DueDate: date(2024, 8, 1)},
		{ID: 3, Name: "Battery Retrofit", CustomerID: 1, Status: "In Progress", Progress: 50, RevenueCents: 800000, StartDate: date(2023, 11, 1)},
	}
	performance = []store.PerformanceRecord{
		{Location: "Building B", Efficiency: 88, ProductionKWh: 980, Status: "Good"},
		{Location: "Building A", Efficiency: 95, ProductionKWh: 1200, Status: "Optimal"},
	}
)

func setupDuckDB(t *testing.T) (*sql.DB, Store) {
	t.Helper()
	db, err := duckdb.NewDB(duckdb.Settings{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return db, s
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestProjectStore_DuckDB(t *testing.T) {
	db, s := setupDuckDB(t)
	ctx := context.Background()

	err := duckdb.InTransaction(ctx, db, func(ctx context.Context) error {
		if err := s.AddCustomers(ctx, customers); err != nil {
			return err
		}
		if err := s.AddProjects(ctx, projectRecords); err != nil {
			return err
		}
		return s.AddPerformance(ctx, performance)
	})
	require.NoError(t, err)

	t.Run("list customers", func(t *testing.T) {
		got, err := s.ListCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ABC Corp", got[1].Name)
	})

	t.Run("list projects joins customer names", func(t *testing.T) {
		got, err := s.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "John Doe", got[0].CustomerName)
		assert.Equal(t, "ABC Corp", got[1].CustomerName)
		assert.Equal(t, int64(15000000), got[1].RevenueCents)
		assert.True(t, got[1].StartDate.Equal(date(2024, 2, 1)))
	})

	t.Run("recent projects by start date", func(t *testing.T) {
		got, err := s.RecentProjects(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Commercial Solar Farm", got[0].Name)
		assert.Equal(t, "Solar Panel Installation", got[1].Name)
	})

	t.Run("stats", func(t *testing.T) {
		got, err := s.GetProjectStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &store.ProjectStats{
			TotalProjects:     3,
			ActiveProjects:    2,
			TotalRevenueCents: 18300000,
			AverageProgress:   50,
		}, got)
	})

	t.Run("performance ordered by location", func(t *testing.T) {
		got, err := s.ListPerformance(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Building A", got[0].Location)
		assert.Equal(t, int64(1200), got[0].ProductionKWh)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		err := s.AddProjects(ctx, projectRecords[:1])
		assert.Error(t, err)
	})
}

func TestProjectStore_EmptyInputs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.AddCustomers(ctx, nil))
	require.NoError(t, s.AddProjects(ctx, nil))
	require.NoError(t, s.AddPerformance(ctx, nil))

	recent, err := s.RecentProjects(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStore_GetProjectStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(projectStatsQuery)).
			WithArgs(ActiveStatus).
			WillReturnRows(sqlmock.NewRows([]string{"total", "active", "revenue", "progress"}).
				AddRow(int64(24), int64(12), int64(15600000), 67.6))

		got, err := s.GetProjectStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(24), got.TotalProjects)
		assert.Equal(t, int64(12), got.ActiveProjects)
		assert.Equal(t, int64(15600000), got.TotalRevenueCents)
		assert.InDelta(t, 67.6, got.AverageProgress, 1e-9)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(projectStatsQuery)).
			WithArgs(ActiveStatus).
			WillReturnError(errors.New("connection lost"))

		_, err := s.GetProjectStats(context.Background())
		assert.ErrorContains(t, err, "get project stats")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStore_RecentProjects(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	columns := []string{"id", "name", "customer_id", "customer", "status", "progress", "revenue_cents", "location", "start_date", "due_date"}
	mock.ExpectQuery(regexp.QuoteMeta(recentProjectsQuery)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(2), "Commercial Solar Farm", int64(2), "ABC Corp", "Planning", 25.0, int64(15000000), "456 Energy Ave", date(2024, 2, 1), date(2024, 8, 1)).
			AddRow(int64(7), "Orphan Project", nil, "", "On Hold", 0.0, int64(0), "", nil, nil))

	got, err := s.RecentProjects(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ABC Corp", got[0].CustomerName)
	assert.Zero(t, got[1].CustomerID)
	assert.True(t, got[1].StartDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStore_AddProjectsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	// Given
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertProjectQuery))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	// When
	err = duckdb.InTransaction(context.Background(), db, func(ctx context.Context) error {
		return s.AddProjects(ctx, projectRecords[:2])
	})

	// Then
	assert.ErrorContains(t, err, "insert project 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}
