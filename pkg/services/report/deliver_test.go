package report

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkFunc func(ctx context.Context, doc *domain.GeneratedDocument) (string, error)

func (f sinkFunc) Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error) {
	return f(ctx, doc)
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	doc := &domain.GeneratedDocument{Filename: "solar-report-2024-03-15.pdf"}

	t.Run("success", func(t *testing.T) {
		var got *domain.GeneratedDocument
		location, err := Deliver(ctx, doc, sinkFunc(func(_ context.Context, d *domain.GeneratedDocument) (string, error) {
			got = d
			return "/tmp/" + d.Filename, nil
		}))

		require.NoError(t, err)
		assert.Equal(t, "/tmp/solar-report-2024-03-15.pdf", location)
		assert.Same(t, doc, got)
	})

	t.Run("sink error", func(t *testing.T) {
		_, err := Deliver(ctx, doc, sinkFunc(func(context.Context, *domain.GeneratedDocument) (string, error) {
			return "", errors.New("disk full")
		}))

		var genErr *ReportGenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, StageDeliver, genErr.Stage)
		assert.EqualError(t, genErr.Err, "disk full")
	})

	t.Run("nothing to deliver", func(t *testing.T) {
		called := false
		_, err := Deliver(ctx, nil, sinkFunc(func(context.Context, *domain.GeneratedDocument) (string, error) {
			called = true
			return "", nil
		}))

		assert.True(t, IsGenerationError(err))
		assert.False(t, called)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Deliver(cancelled, doc, sinkFunc(func(context.Context, *domain.GeneratedDocument) (string, error) {
			t.Fatal("sink must not be called")
			return "", nil
		}))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
