// Package archive delivers finished report documents to durable locations.
package archive

import (
	"context"
	"strings"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/hashicorp/go-multierror"
)

// Sink receives only complete documents and returns where it stored them.
type Sink interface {
	Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error)
}

type multiSink []Sink

// Multi delivers to every sink, returning the locations that succeeded and
// the combined errors of those that did not.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error) {
	var (
		result    *multierror.Error
		locations []string
	)
	for _, s := range m {
		loc, err := s.Put(ctx, doc)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		locations = append(locations, loc)
	}

	return strings.Join(locations, ", "), result.ErrorOrNil()
}
