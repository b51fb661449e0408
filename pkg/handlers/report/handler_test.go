package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/report"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, in domain.ReportInput, opts domain.ReportOptions, format domain.Format) (*domain.GeneratedDocument, error) {
	args := m.Called(ctx, in, opts, format)
	if doc := args.Get(0); doc != nil {
		return doc.(*domain.GeneratedDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListProjects(ctx context.Context, criteria search.Criteria) ([]domain.Project, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *mockExplorer) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockExplorer) Summary(ctx context.Context, criteria search.Criteria) (*domain.ReportInput, error) {
	args := m.Called(ctx, criteria)
	if in := args.Get(0); in != nil {
		return in.(*domain.ReportInput), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

var reportDate = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func dashboardInput() *domain.ReportInput {
	return &domain.ReportInput{
		TotalProjects:   24,
		ActiveProjects:  12,
		TotalRevenue:    decimal.NewFromInt(156000),
		ProjectProgress: 68,
		RecentProjects: []domain.ProjectSummary{
			{Name: "Solar Panel Installation", Customer: "John Doe", Status: "In Progress", Progress: 75},
		},
	}
}

func pdfDocument() *domain.GeneratedDocument {
	return &domain.GeneratedDocument{
		ID:          uuid.MustParse("6f1c1a36-4c55-4d0f-9a55-0c1b5f1e2d3a"),
		Filename:    "solar-report-2024-03-15.pdf",
		Format:      domain.FormatPDF,
		Content:     []byte("%PDF-1.3 fake"),
		GeneratedAt: reportDate,
	}
}

func decodeNotification(t *testing.T, rec *httptest.ResponseRecorder) api.Notification {
	t.Helper()
	var n api.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&n))
	return n
}

func TestDashboardReport(t *testing.T) {
	t.Run("downloads attachment with parsed options", func(t *testing.T) {
		// Given
		gen, exp := new(mockGenerator), new(mockExplorer)
		exp.On("Summary", mock.Anything, search.Criteria{Query: "solar"}).Return(dashboardInput(), nil)
		gen.On("Generate", mock.Anything, *dashboardInput(), domain.ReportOptions{
			IncludeSummary: true,
			IncludeDetails: false,
			IncludeCharts:  true,
		}, domain.FormatPDF).Return(pdfDocument(), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard?details=false&q=solar", nil)
		rec := httptest.NewRecorder()

		// When
		NewHandler(gen, exp, nil).DashboardReport(rec, req)

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="solar-report-2024-03-15.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "13", rec.Header().Get("Content-Length"))
		assert.Equal(t, "%PDF-1.3 fake", rec.Body.String())
		assert.Empty(t, rec.Header().Get(archiveHeader))
		gen.AssertExpectations(t)
		exp.AssertExpectations(t)
	})

	t.Run("bad requests", func(t *testing.T) {
		for _, query := range []string{"?format=docx", "?charts=maybe"} {
			gen, exp := new(mockGenerator), new(mockExplorer)
			rec := httptest.NewRecorder()

			NewHandler(gen, exp, nil).DashboardReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard"+query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code, query)
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		gen, exp := new(mockGenerator), new(mockExplorer)
		exp.On("Summary", mock.Anything, search.Criteria{}).Return(dashboardInput(), nil)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, domain.FormatCSV).
			Return(nil, &report.ReportGenerationError{Stage: report.StageRender, Err: errors.New("font missing")})

		rec := httptest.NewRecorder()
		NewHandler(gen, exp, nil).DashboardReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard?format=csv", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, api.Notification{Message: failureMessage, Severity: "error"}, decodeNotification(t, rec))
	})

	t.Run("archives after generation", func(t *testing.T) {
		gen, exp, sink := new(mockGenerator), new(mockExplorer), new(mockSink)
		exp.On("Summary", mock.Anything, search.Criteria{}).Return(dashboardInput(), nil)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, domain.FormatPDF).Return(pdfDocument(), nil)
		sink.On("Put", mock.Anything, pdfDocument()).Return("s3://bucket/reports/solar-report-2024-03-15.pdf", nil)

		rec := httptest.NewRecorder()
		NewHandler(gen, exp, sink).DashboardReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "s3://bucket/reports/solar-report-2024-03-15.pdf", rec.Header().Get(archiveHeader))
		sink.AssertExpectations(t)
	})

	t.Run("archive failure still serves the document", func(t *testing.T) {
		gen, exp, sink := new(mockGenerator), new(mockExplorer), new(mockSink)
		exp.On("Summary", mock.Anything, search.Criteria{}).Return(dashboardInput(), nil)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, domain.FormatPDF).Return(pdfDocument(), nil)
		sink.On("Put", mock.Anything, mock.Anything).Return("", errors.New("access denied"))

		rec := httptest.NewRecorder()
		NewHandler(gen, exp, sink).DashboardReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(archiveHeader))
		assert.Equal(t, "%PDF-1.3 fake", rec.Body.String())
	})
}

func TestCreateReport(t *testing.T) {
	t.Run("csv from request body", func(t *testing.T) {
		cfg := report.DefaultConfig()
		cfg.Location = time.UTC
		assembler := report.NewAssembler(cfg, report.WithClock(func() time.Time { return reportDate }))

		body := `{
			"input": {
				"totalProjects": 24,
				"activeProjects": 12,
				"totalRevenue": 156000,
				"projectProgress": 68,
				"recentProjects": [
					{"name": "Solar Panel Installation", "customer": "John Doe", "status": "In Progress", "progress": 75}
				]
			},
			"options": {"includeCharts": false}
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports?format=csv", strings.NewReader(body))
		rec := httptest.NewRecorder()

		NewHandler(assembler, new(mockExplorer), nil).CreateReport(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="solar-report-2024-03-15.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), "Total Revenue,"+`"$156,000"`)
		assert.Contains(t, rec.Body.String(), "Solar Panel Installation,John Doe,In Progress,75%")
		assert.NotContains(t, rec.Body.String(), "Project Progress Chart")
	})

	t.Run("missing projects is unprocessable", func(t *testing.T) {
		assembler := report.NewAssembler(report.DefaultConfig())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{"input": {"totalProjects": 1}}`))
		rec := httptest.NewRecorder()

		NewHandler(assembler, new(mockExplorer), nil).CreateReport(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeNotification(t, rec).Message, "recent projects are required")
	})

	t.Run("malformed body", func(t *testing.T) {
		gen := new(mockGenerator)
		rec := httptest.NewRecorder()

		NewHandler(gen, new(mockExplorer), nil).CreateReport(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
