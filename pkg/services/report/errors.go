package report

import (
	"errors"
	"fmt"
)

var ErrGenerationInProgress = errors.New("report generation already in progress")

// Stage names the step of generation that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageLayout   Stage = "layout"
	StageRender   Stage = "render"
	StageDeliver  Stage = "deliver"
)

// ReportGenerationError is returned for every failure of document generation,
// whatever the cause. The cause is available through errors.Unwrap.
type ReportGenerationError struct {
	Stage Stage
	Err   error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("report generation failed (%s): %v", e.Stage, e.Err)
}

func (e *ReportGenerationError) Unwrap() error {
	return e.Err
}

func newGenerationError(stage Stage, err error) error {
	var genErr *ReportGenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &ReportGenerationError{Stage: stage, Err: err}
}

// IsGenerationError reports whether err is, or wraps, a ReportGenerationError.
func IsGenerationError(err error) bool {
	var genErr *ReportGenerationError
	return errors.As(err, &genErr)
}
