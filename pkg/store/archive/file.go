package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Put writes the document under its filename. The file appears only once
// fully written, replacing any earlier report of the same day.
func (f *FileSink) Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+doc.Filename+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc.Content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", doc.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", doc.Filename, err)
	}

	target := filepath.Join(f.dir, doc.Filename)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move %s into place: %w", doc.Filename, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", doc.ID.String()).
		Str("path", target).
		Int("bytes", len(doc.Content)).
		Msg("report written")
	return target, nil
}
