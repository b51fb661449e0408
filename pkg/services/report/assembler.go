package report

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ChartMode string

const (
	// ChartModeRaster embeds a rendered bar chart image.
	ChartModeRaster ChartMode = "raster"
	// ChartModePlaceholder draws a filled rectangle where the chart goes.
	ChartModePlaceholder ChartMode = "placeholder"
)

type Config struct {
	Title          string
	Locale         string
	CurrencySymbol string
	ChartMode      ChartMode
	Compress       bool
	Location       *time.Location
}

func DefaultConfig() Config {
	return Config{
		Title:          "Solar Project Report",
		Locale:         "en-US",
		CurrencySymbol: "$",
		ChartMode:      ChartModeRaster,
		Compress:       true,
		Location:       time.Local,
	}
}

// Assembler turns report input into finished documents.
// It holds no per-call state and is safe for concurrent use.
type Assembler struct {
	cfg       Config
	formatter Formatter
	renderers map[domain.Format]Renderer
	now       func() time.Time
	newID     func() uuid.UUID
}

type Option func(*Assembler)

// WithClock replaces the time source used for header dates and filenames.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// WithRenderer registers or replaces the renderer for a format.
func WithRenderer(format domain.Format, r Renderer) Option {
	return func(a *Assembler) {
		a.renderers[format] = r
	}
}

func NewAssembler(cfg Config, opts ...Option) *Assembler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ChartMode == "" {
		cfg.ChartMode = ChartModeRaster
	}

	a := &Assembler{
		cfg:       cfg,
		formatter: NewFormatter(cfg.Locale, cfg.CurrencySymbol, cfg.Location),
		now:       time.Now,
		newID:     uuid.New,
		renderers: map[domain.Format]Renderer{
			domain.FormatPDF:  NewPDFRenderer(cfg.ChartMode, cfg.Compress, NewChartRasterizer()),
			domain.FormatCSV:  NewCSVRenderer(),
			domain.FormatText: NewTextRenderer(),
		},
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assembler) Formatter() Formatter {
	return a.formatter
}

// SupportedFormats lists the formats with a registered renderer.
func (a *Assembler) SupportedFormats() []domain.Format {
	formats := make([]domain.Format, 0, len(a.renderers))
	for _, f := range []domain.Format{domain.FormatPDF, domain.FormatCSV, domain.FormatText} {
		if _, ok := a.renderers[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// Generate validates the input, lays out the enabled sections and renders
// them. Any failure, including cancellation of ctx, is returned as a
// *ReportGenerationError and no document is produced.
func (a *Assembler) Generate(
	ctx context.Context,
	in domain.ReportInput,
	opts domain.ReportOptions,
	format domain.Format,
) (*domain.GeneratedDocument, error) {
	id := a.newID()
	logger := zerolog.Ctx(ctx).With().
		Str("report_id", id.String()).
		Str("format", string(format)).
		Logger()

	doc, err := a.generate(ctx, id, in, opts, format)
	if err != nil {
		logger.Error().Err(err).Msg("report generation failed")
		return nil, err
	}

	logger.Info().
		Str("filename", doc.Filename).
		Int("bytes", len(doc.Content)).
		Bool("summary", opts.IncludeSummary).
		Bool("details", opts.IncludeDetails).
		Bool("charts", opts.IncludeCharts).
		Msg("report generated")
	return doc, nil
}

func (a *Assembler) generate(
	ctx context.Context,
	id uuid.UUID,
	in domain.ReportInput,
	opts domain.ReportOptions,
	format domain.Format,
) (doc *domain.GeneratedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = newGenerationError(StageRender, fmt.Errorf("renderer panic: %v", r))
		}
	}()

	renderer, ok := a.renderers[format]
	if !ok {
		return nil, newGenerationError(StageRender, fmt.Errorf("unsupported format %q", format))
	}

	if err := Validate(in); err != nil {
		return nil, newGenerationError(StageValidate, err)
	}

	now := a.now()
	report, err := a.layout(ctx, in, opts, now)
	if err != nil {
		return nil, newGenerationError(StageLayout, err)
	}

	content, err := renderer.Render(ctx, report)
	if err != nil {
		return nil, newGenerationError(StageRender, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, newGenerationError(StageRender, err)
	}

	return &domain.GeneratedDocument{
		ID:          id,
		Filename:    a.formatter.Filename(now, format),
		Format:      format,
		Content:     content,
		GeneratedAt: now,
	}, nil
}
