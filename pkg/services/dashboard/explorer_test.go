package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/models/store"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddCustomers(ctx context.Context, records []store.CustomerRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockStore) AddProjects(ctx context.Context, records []store.ProjectRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockStore) AddPerformance(ctx context.Context, records []store.PerformanceRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockStore) ListCustomers(ctx context.Context) ([]store.CustomerRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.CustomerRecord), args.Error(1)
}

func (m *MockStore) ListProjects(ctx context.Context) ([]store.ProjectRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.ProjectRecord), args.Error(1)
}

func (m *MockStore) RecentProjects(ctx context.Context, limit int) ([]store.ProjectRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]store.ProjectRecord), args.Error(1)
}

func (m *MockStore) GetProjectStats(ctx context.Context) (*store.ProjectStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*store.ProjectStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListPerformance(ctx context.Context) ([]store.PerformanceRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.PerformanceRecord), args.Error(1)
}

var records = []store.ProjectRecord{
	{ID: 1, Name: "Solar Panel Installation", CustomerName: "John Doe", Status: "In Progress", Progress: 75, RevenueCents: 2500000, StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	{ID: 2, Name: "Commercial Solar Farm", CustomerName: "ABC Corp", Status: "Planning", Progress: 25, RevenueCents: 15000000},
	{ID: 3, Name: "Residential Battery Setup", CustomerName: "Smith Family", Status: "Completed", Progress: 100, RevenueCents: 1200000},
}

func TestExplorer_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("recent projects without criteria", func(t *testing.T) {
		// Given
		s := new(MockStore)
		s.On("GetProjectStats", ctx).Return(&store.ProjectStats{
			TotalProjects:     24,
			ActiveProjects:    12,
			TotalRevenueCents: 15600000,
			AverageProgress:   67.5,
		}, nil)
		s.On("RecentProjects", ctx, 3).Return(records, nil)
		s.On("ListPerformance", ctx).Return([]store.PerformanceRecord{
			{Location: "Building A", Efficiency: 95, ProductionKWh: 450, Status: "Optimal"},
		}, nil)

		// When
		in, err := NewExplorer(s, 3).Summary(ctx, search.Criteria{})

		// Then
		require.NoError(t, err)
		assert.Equal(t, 24, in.TotalProjects)
		assert.Equal(t, 12, in.ActiveProjects)
		assert.True(t, decimal.NewFromInt(156000).Equal(in.TotalRevenue))
		assert.Equal(t, 68.0, in.ProjectProgress)
		require.Len(t, in.RecentProjects, 3)
		assert.Equal(t, domain.ProjectSummary{Name: "Solar Panel Installation", Customer: "John Doe", Status: "In Progress", Progress: 75}, in.RecentProjects[0])
		assert.Equal(t, []domain.PerformanceMetric{{Location: "Building A", Efficiency: 95, Production: "450 kWh", Status: "Optimal"}}, in.Performance)
		s.AssertExpectations(t)
	})

	t.Run("criteria narrow all projects", func(t *testing.T) {
		s := new(MockStore)
		s.On("GetProjectStats", ctx).Return(&store.ProjectStats{TotalProjects: 3}, nil)
		s.On("ListProjects", ctx).Return(records, nil)
		s.On("ListPerformance", ctx).Return([]store.PerformanceRecord{}, nil)

		in, err := NewExplorer(s, 1).Summary(ctx, search.Criteria{Query: "solar", Filter: "progress < 50.0"})

		require.NoError(t, err)
		require.Len(t, in.RecentProjects, 1)
		assert.Equal(t, "Commercial Solar Farm", in.RecentProjects[0].Name)
		s.AssertNotCalled(t, "RecentProjects", mock.Anything, mock.Anything)
	})

	t.Run("no matches yields an empty list", func(t *testing.T) {
		s := new(MockStore)
		s.On("GetProjectStats", ctx).Return(&store.ProjectStats{}, nil)
		s.On("RecentProjects", ctx, 5).Return([]store.ProjectRecord{}, nil)
		s.On("ListPerformance", ctx).Return([]store.PerformanceRecord{}, nil)

		in, err := NewExplorer(s, 5).Summary(ctx, search.Criteria{})

		require.NoError(t, err)
		assert.NotNil(t, in.RecentProjects)
		assert.Empty(t, in.RecentProjects)
	})

	t.Run("store error", func(t *testing.T) {
		s := new(MockStore)
		s.On("GetProjectStats", ctx).Return(nil, errors.New("db closed"))

		_, err := NewExplorer(s, 5).Summary(ctx, search.Criteria{})
		assert.EqualError(t, err, "db closed")
	})

	t.Run("invalid filter", func(t *testing.T) {
		s := new(MockStore)
		s.On("GetProjectStats", ctx).Return(&store.ProjectStats{}, nil)
		s.On("ListProjects", ctx).Return(records, nil)

		_, err := NewExplorer(s, 5).Summary(ctx, search.Criteria{Filter: "progress >"})
		assert.ErrorIs(t, err, search.ErrInvalidFilter)
	})
}

func TestExplorer_ListProjects(t *testing.T) {
	ctx := context.Background()
	s := new(MockStore)
	s.On("ListProjects", ctx).Return(records, nil)

	got, err := NewExplorer(s, 5).ListProjects(ctx, search.Criteria{Query: "corp"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	assert.True(t, decimal.NewFromInt(150000).Equal(got[0].Revenue))
}

func TestExplorer_ListCustomers(t *testing.T) {
	ctx := context.Background()
	s := new(MockStore)
	s.On("ListCustomers", ctx).Return([]store.CustomerRecord{{ID: 1, Name: "John Doe"}}, nil)

	got, err := NewExplorer(s, 5).ListCustomers(ctx)

	require.NoError(t, err)
	assert.Equal(t, []domain.Customer{{ID: 1, Name: "John Doe"}}, got)
}
