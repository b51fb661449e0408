package report

import (
	"context"
	"errors"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

// Sink stores a finished document and returns its location.
type Sink interface {
	Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error)
}

// Deliver hands doc to the sink. A nil document is never delivered.
func Deliver(ctx context.Context, doc *domain.GeneratedDocument, sink Sink) (string, error) {
	if doc == nil {
		return "", newGenerationError(StageDeliver, errors.New("no document to deliver"))
	}
	if err := ctx.Err(); err != nil {
		return "", newGenerationError(StageDeliver, err)
	}

	location, err := sink.Put(ctx, doc)
	if err != nil {
		return "", newGenerationError(StageDeliver, err)
	}
	return location, nil
}
