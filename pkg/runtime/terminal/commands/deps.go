package commands

import (
	"context"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/dashboard"
	"github.com/de-tools/solar-atlas/pkg/services/report"
)

type Generator interface {
	Generate(ctx context.Context, in domain.ReportInput, opts domain.ReportOptions, format domain.Format) (*domain.GeneratedDocument, error)
}

// Deps are the services the commands run against.
type Deps struct {
	Explorer  dashboard.Explorer
	Generator Generator
	Formatter report.Formatter
	Files     report.Sink
	// Archive is nil when archiving is not configured.
	Archive report.Sink
}

// DepsProvider builds the dependencies once the command line is parsed.
type DepsProvider func(ctx context.Context) (*Deps, error)
