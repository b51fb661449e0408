// Package search narrows project lists, either by a free-text query or by
// a CEL filter expression over name, customer, status and progress.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/google/cel-go/cel"
)

const costLimit = 100000

var ErrInvalidFilter = errors.New("invalid filter expression")

// Match reports whether query appears, case-insensitively, in the project's
// name, customer or status. An empty query matches everything.
func Match(p domain.ProjectSummary, query string) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Customer, p.Status} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Filter is a compiled CEL predicate over a project summary.
type Filter struct {
	expr    string
	program cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("customer", cel.StringType),
		cel.Variable("status", cel.StringType),
		cel.Variable("progress", cel.DoubleType),
	)
}

// Compile parses and type-checks expr. The expression must evaluate to a bool.
func Compile(expr string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create filter environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q evaluates to %s, not bool", ErrInvalidFilter, expr, ast.OutputType())
	}

	prg, err := env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return &Filter{expr: expr, program: prg}, nil
}

func (f *Filter) String() string {
	return f.expr
}

// Matches evaluates the filter for one project.
func (f *Filter) Matches(p domain.ProjectSummary) (bool, error) {
	out, _, err := f.program.Eval(map[string]any{
		"name":     p.Name,
		"customer": p.Customer,
		"status":   p.Status,
		"progress": p.Progress,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q on %q: %w", f.expr, p.Name, err)
	}

	matched, ok := out.Value().(bool)
	return ok && matched, nil
}

// Criteria combines a text query and an optional filter expression.
type Criteria struct {
	Query  string
	Filter string
}

func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Query) == "" && strings.TrimSpace(c.Filter) == ""
}

// Apply returns the projects matching every criterion, preserving order.
// A nil list stays nil so missing input is still reported downstream.
func Apply(projects []domain.ProjectSummary, c Criteria) ([]domain.ProjectSummary, error) {
	return Select(projects, c, func(p domain.ProjectSummary) domain.ProjectSummary { return p })
}

// Select is Apply for any item that can be reduced to a project summary.
func Select[T any](items []T, c Criteria, summary func(T) domain.ProjectSummary) ([]T, error) {
	var filter *Filter
	if strings.TrimSpace(c.Filter) != "" {
		var err error
		if filter, err = Compile(c.Filter); err != nil {
			return nil, err
		}
	}

	if items == nil {
		return nil, nil
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		p := summary(item)
		if !Match(p, c.Query) {
			continue
		}
		if filter != nil {
			ok, err := filter.Matches(p)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, item)
	}
	return out, nil
}
