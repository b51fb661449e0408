package report

import (
	"context"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

// Renderer turns a laid out report into the bytes of one output format.
// Implementations must not retain the report after returning.
type Renderer interface {
	Render(ctx context.Context, report *domain.Report) ([]byte, error)
}

type RendererFunc func(ctx context.Context, report *domain.Report) ([]byte, error)

func (f RendererFunc) Render(ctx context.Context, report *domain.Report) ([]byte, error) {
	return f(ctx, report)
}
