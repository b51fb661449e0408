package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/notification"
)

const failureMessage = "Failed to generate report. Please try again."

type DialogState int

const (
	DialogIdle DialogState = iota
	DialogGenerating
	DialogDone
)

func (s DialogState) String() string {
	switch s {
	case DialogIdle:
		return "idle"
	case DialogGenerating:
		return "generating"
	case DialogDone:
		return "done"
	default:
		return fmt.Sprintf("DialogState(%d)", int(s))
	}
}

// OptionName identifies one checkbox of the options panel.
type OptionName string

const (
	OptionSummary OptionName = "includeSummary"
	OptionDetails OptionName = "includeDetails"
	OptionCharts  OptionName = "includeCharts"
)

// Dialog tracks the generate-report dialog: idle -> generating -> done, or
// back to idle with an error message when generation fails. Options are
// kept across failures so the user can retry.
type Dialog struct {
	mu      sync.Mutex
	state   DialogState
	open    bool
	options domain.ReportOptions
	notice  domain.Notification
	cause   error
}

func NewDialog() *Dialog {
	return &Dialog{
		open:    true,
		options: domain.DefaultReportOptions(),
	}
}

func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Dialog) Options() domain.ReportOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.options
}

func (d *Dialog) Notification() domain.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notice
}

// Err is the cause of the last failed generation, nil once dismissed or retried.
func (d *Dialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cause
}

// Show reopens a closed dialog in the idle state with the last options.
func (d *Dialog) Show() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogGenerating {
		return
	}
	d.open = true
	d.state = DialogIdle
}

func (d *Dialog) Toggle(name OptionName) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == DialogGenerating {
		return ErrGenerationInProgress
	}

	switch name {
	case OptionSummary:
		d.options.IncludeSummary = !d.options.IncludeSummary
	case OptionDetails:
		d.options.IncludeDetails = !d.options.IncludeDetails
	case OptionCharts:
		d.options.IncludeCharts = !d.options.IncludeCharts
	default:
		return fmt.Errorf("unknown report option %q", name)
	}
	return nil
}

// Begin moves the dialog to generating and returns the options to use.
// A second Begin before Succeed or Fail returns ErrGenerationInProgress.
func (d *Dialog) Begin() (domain.ReportOptions, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == DialogGenerating {
		return domain.ReportOptions{}, ErrGenerationInProgress
	}
	d.state = DialogGenerating
	d.notice = notification.Hide(d.notice)
	d.cause = nil
	return d.options, nil
}

// Succeed finishes generation and closes the dialog.
func (d *Dialog) Succeed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogDone
	d.open = false
}

// Fail returns the dialog to idle, leaves it open and shows a retry message.
func (d *Dialog) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogIdle
	d.cause = err
	d.notice = notification.Show(d.notice, failureMessage, domain.SeverityError)
}

func (d *Dialog) DismissError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notice = notification.Hide(d.notice)
	d.cause = nil
}

// Cancel closes the dialog; it is refused while generating.
func (d *Dialog) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogGenerating {
		return ErrGenerationInProgress
	}
	d.open = false
	return nil
}

// Run drives one generation through the dialog.
func (d *Dialog) Run(ctx context.Context, generate func(context.Context, domain.ReportOptions) error) error {
	opts, err := d.Begin()
	if err != nil {
		return err
	}

	if err := generate(ctx, opts); err != nil {
		d.Fail(err)
		return err
	}

	d.Succeed()
	return nil
}
