package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

var maxRevenue = decimal.NewFromInt(math.MaxInt64)

// Validate checks a report input and returns every problem found.
func Validate(in domain.ReportInput) error {
	var result *multierror.Error

	if in.RecentProjects == nil {
		result = multierror.Append(result, errors.New("recent projects are required"))
	}
	if in.TotalProjects < 0 {
		result = multierror.Append(result, fmt.Errorf("total projects must not be negative, got %d", in.TotalProjects))
	}
	if in.ActiveProjects < 0 {
		result = multierror.Append(result, fmt.Errorf("active projects must not be negative, got %d", in.ActiveProjects))
	}
	if in.TotalRevenue.Abs().GreaterThan(maxRevenue) {
		result = multierror.Append(result, fmt.Errorf("total revenue %s is out of range", in.TotalRevenue))
	}
	if err := checkPercentage("project progress", in.ProjectProgress); err != nil {
		result = multierror.Append(result, err)
	}

	for i, p := range in.RecentProjects {
		if err := checkPercentage(fmt.Sprintf("progress of project %d (%q)", i+1, p.Name), p.Progress); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for i, m := range in.Performance {
		if !isFinite(m.Efficiency) {
			result = multierror.Append(result, fmt.Errorf("efficiency of installation %d (%q) must be finite", i+1, m.Location))
		}
	}

	return result.ErrorOrNil()
}

func checkPercentage(name string, v float64) error {
	if !isFinite(v) {
		return fmt.Errorf("%s must be finite", name)
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %v", name, v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
