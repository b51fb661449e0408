package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/solar-atlas/pkg/adapters"
	"github.com/de-tools/solar-atlas/pkg/handlers"
	dashboardhandler "github.com/de-tools/solar-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/dashboard"
	"github.com/de-tools/solar-atlas/pkg/services/report"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/rs/zerolog"
)

const (
	failureMessage = "Failed to generate report. Please try again."
	archiveHeader  = "X-Report-Archive"
)

type Generator interface {
	Generate(ctx context.Context, in domain.ReportInput, opts domain.ReportOptions, format domain.Format) (*domain.GeneratedDocument, error)
}

type Handler struct {
	generator Generator
	explorer  dashboard.Explorer
	archive   report.Sink
}

// NewHandler builds the report endpoints. archive may be nil.
func NewHandler(generator Generator, explorer dashboard.Explorer, archive report.Sink) *Handler {
	return &Handler{
		generator: generator,
		explorer:  explorer,
		archive:   archive,
	}
}

// DashboardReport generates a report from the current dataset.
func (h *Handler) DashboardReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, err := formatFromRequest(r)
	if err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	in, err := h.explorer.Summary(ctx, dashboardhandler.CriteriaFromRequest(r))
	if errors.Is(err, search.ErrInvalidFilter) {
		handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load report data")
		handlers.WriteError(w, r, http.StatusInternalServerError, failureMessage)
		return
	}

	h.generate(w, r, *in, opts, format)
}

// CreateReport generates a report from the statistics in the request body.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	format, err := formatFromRequest(r)
	if err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "Invalid report request")
		return
	}

	h.generate(w, r,
		adapters.MapAPIReportInputToDomain(req.Input),
		adapters.MapAPIReportOptionsToDomain(req.Options),
		format,
	)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, in domain.ReportInput, opts domain.ReportOptions, format domain.Format) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	doc, err := h.generator.Generate(ctx, in, opts, format)
	if err != nil {
		var genErr *report.ReportGenerationError
		if errors.As(err, &genErr) && genErr.Stage == report.StageValidate {
			handlers.WriteError(w, r, http.StatusUnprocessableEntity, genErr.Err.Error())
			return
		}
		handlers.WriteError(w, r, http.StatusInternalServerError, failureMessage)
		return
	}

	if h.archive != nil {
		location, err := report.Deliver(ctx, doc, h.archive)
		if err != nil {
			logger.Warn().Err(err).Str("report_id", doc.ID.String()).Msg("report archive failed")
		} else {
			w.Header().Set(archiveHeader, location)
		}
	}

	w.Header().Set("Content-Type", doc.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(doc.Content); err != nil {
		logger.Error().Err(err).Str("report_id", doc.ID.String()).Msg("failed to write report")
	}
}

func formatFromRequest(r *http.Request) (domain.Format, error) {
	switch f := domain.Format(r.URL.Query().Get("format")); f {
	case "":
		return domain.FormatPDF, nil
	case domain.FormatPDF, domain.FormatCSV, domain.FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", f)
	}
}

func optionsFromQuery(r *http.Request) (domain.ReportOptions, error) {
	opts := domain.DefaultReportOptions()
	q := r.URL.Query()

	flags := []struct {
		name  string
		value *bool
	}{
		{"summary", &opts.IncludeSummary},
		{"details", &opts.IncludeDetails},
		{"charts", &opts.IncludeCharts},
	}
	for _, f := range flags {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid value %q for %s", raw, f.name)
		}
		*f.value = v
	}
	return opts, nil
}
