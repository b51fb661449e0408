// Package dataset loads the mock customers, projects and installation
// metrics and seeds them into the in-memory store.
package dataset

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	"github.com/de-tools/solar-atlas/pkg/models/store"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb/projects"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/dataset.yaml
var defaultDataset []byte

type Dataset struct {
	Customers   []store.CustomerRecord    `yaml:"customers"`
	Projects    []store.ProjectRecord     `yaml:"projects"`
	Performance []store.PerformanceRecord `yaml:"performance"`
}

// Load parses the dataset at path, or the built-in one when path is empty.
func Load(path string) (*Dataset, error) {
	data := defaultDataset
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Dataset) validate() error {
	customers := make(map[int64]struct{}, len(d.Customers))
	for _, c := range d.Customers {
		customers[c.ID] = struct{}{}
	}
	for _, p := range d.Projects {
		if _, ok := customers[p.CustomerID]; !ok {
			return fmt.Errorf("project %d references unknown customer %d", p.ID, p.CustomerID)
		}
		if p.Progress < 0 || p.Progress > 100 {
			return fmt.Errorf("project %d progress %v out of range", p.ID, p.Progress)
		}
	}
	return nil
}

// Seed writes the dataset in a single transaction.
func Seed(ctx context.Context, db *sql.DB, s projects.Store, ds *Dataset) error {
	err := duckdb.InTransaction(ctx, db, func(ctx context.Context) error {
		if err := s.AddCustomers(ctx, ds.Customers); err != nil {
			return err
		}
		if err := s.AddProjects(ctx, ds.Projects); err != nil {
			return err
		}
		return s.AddPerformance(ctx, ds.Performance)
	})
	if err != nil {
		return fmt.Errorf("failed to seed dataset: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("customers", len(ds.Customers)).
		Int("projects", len(ds.Projects)).
		Int("performance", len(ds.Performance)).
		Msg("dataset seeded")
	return nil
}
