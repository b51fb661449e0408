package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/de-tools/solar-atlas/pkg/adapters"
	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/runtime/terminal/dialog"
	"github.com/de-tools/solar-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/solar-atlas/pkg/services/notification"
	"github.com/de-tools/solar-atlas/pkg/services/report"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/de-tools/solar-atlas/pkg/store/archive"
	"github.com/spf13/cobra"
)

func NewReportCmd(deps DepsProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate dashboard reports",
	}

	cmd.AddCommand(newGenerateCmd(deps))
	cmd.AddCommand(newPreviewCmd(deps))
	cmd.AddCommand(newDialogCmd(deps))
	return cmd
}

// source selects the report input: a JSON file or the dataset narrowed by criteria.
type source struct {
	inputPath string
	query     string
	filter    string
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.inputPath, "input", "", "JSON file with report statistics (default: the loaded dataset)")
	cmd.Flags().StringVar(&s.query, "query", "", "Only include projects matching this text")
	cmd.Flags().StringVar(&s.filter, "filter", "", `CEL filter over name, customer, status and progress, e.g. 'progress >= 50.0'`)
}

func (s *source) load(ctx context.Context, deps *Deps) (domain.ReportInput, error) {
	if s.inputPath == "" {
		in, err := deps.Explorer.Summary(ctx, search.Criteria{Query: s.query, Filter: s.filter})
		if err != nil {
			return domain.ReportInput{}, err
		}
		return *in, nil
	}

	data, err := os.ReadFile(s.inputPath)
	if err != nil {
		return domain.ReportInput{}, fmt.Errorf("failed to read input: %w", err)
	}
	var in api.ReportInput
	if err := json.Unmarshal(data, &in); err != nil {
		return domain.ReportInput{}, fmt.Errorf("failed to parse input %s: %w", s.inputPath, err)
	}

	out := adapters.MapAPIReportInputToDomain(in)
	if s.query != "" || s.filter != "" {
		if out.RecentProjects, err = search.Apply(out.RecentProjects, search.Criteria{Query: s.query, Filter: s.filter}); err != nil {
			return domain.ReportInput{}, err
		}
	}
	return out, nil
}

// delivery writes documents to the output directory and, optionally, the archive.
type delivery struct {
	outputDir string
	archive   bool
}

func (d *delivery) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.outputDir, "output-dir", "", "Directory to write the report to (default from config)")
	cmd.Flags().BoolVar(&d.archive, "archive", false, "Also upload the report to the configured archive")
}

func (d *delivery) deliver(ctx context.Context, deps *Deps, doc *domain.GeneratedDocument) (string, error) {
	var sink report.Sink = deps.Files
	if d.outputDir != "" {
		sink = archive.NewFileSink(d.outputDir)
	}

	if d.archive {
		if deps.Archive == nil {
			return "", errors.New("archive requested but archive.enabled is not set")
		}
		sink = archive.Multi(sink, deps.Archive)
	}
	return report.Deliver(ctx, doc, sink)
}

type GenerateCmd struct {
	deps      DepsProvider
	format    string
	noSummary bool
	noDetails bool
	noCharts  bool
	source    source
	delivery  delivery
}

func newGenerateCmd(deps DepsProvider) *cobra.Command {
	gc := &GenerateCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report and save it",
		RunE:  gc.run,
	}

	cmd.Flags().StringVarP(&gc.format, "format", "f", string(domain.FormatPDF), "Output format: pdf, csv or text")
	cmd.Flags().BoolVar(&gc.noSummary, "no-summary", false, "Leave out the summary section")
	cmd.Flags().BoolVar(&gc.noDetails, "no-details", false, "Leave out the project details section")
	cmd.Flags().BoolVar(&gc.noCharts, "no-charts", false, "Leave out the progress chart")
	gc.source.bind(cmd)
	gc.delivery.bind(cmd)

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, err := parseFormat(gc.format)
	if err != nil {
		return err
	}

	deps, err := gc.deps(ctx)
	if err != nil {
		return err
	}
	in, err := gc.source.load(ctx, deps)
	if err != nil {
		return err
	}

	d := report.NewDialog()
	for name, off := range map[report.OptionName]bool{
		report.OptionSummary: gc.noSummary,
		report.OptionDetails: gc.noDetails,
		report.OptionCharts:  gc.noCharts,
	} {
		if off {
			if err := d.Toggle(name); err != nil {
				return err
			}
		}
	}

	reporter := export.NewReporter(cmd.OutOrStdout(), deps.Formatter)
	err = d.Run(ctx, func(ctx context.Context, opts domain.ReportOptions) error {
		doc, err := deps.Generator.Generate(ctx, in, opts, format)
		if err != nil {
			return err
		}
		location, err := gc.delivery.deliver(ctx, deps, doc)
		if err != nil {
			return err
		}
		if err := reporter.Delivered(doc, strings.Split(location, ", ")...); err != nil {
			return err
		}
		return reporter.Notify(notification.Success("Report generated successfully"))
	})
	if err != nil {
		_ = export.NewReporter(cmd.ErrOrStderr(), deps.Formatter).Notify(d.Notification())
		return err
	}
	return nil
}

type PreviewCmd struct {
	deps      DepsProvider
	noSummary bool
	noDetails bool
	noCharts  bool
	source    source
}

func newPreviewCmd(deps DepsProvider) *cobra.Command {
	pc := &PreviewCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the report as text",
		RunE:  pc.run,
	}

	cmd.Flags().BoolVar(&pc.noSummary, "no-summary", false, "Leave out the summary section")
	cmd.Flags().BoolVar(&pc.noDetails, "no-details", false, "Leave out the project details section")
	cmd.Flags().BoolVar(&pc.noCharts, "no-charts", false, "Leave out the progress chart")
	pc.source.bind(cmd)

	return cmd
}

func (pc *PreviewCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, err := pc.deps(ctx)
	if err != nil {
		return err
	}
	in, err := pc.source.load(ctx, deps)
	if err != nil {
		return err
	}

	opts := domain.ReportOptions{
		IncludeSummary: !pc.noSummary,
		IncludeDetails: !pc.noDetails,
		IncludeCharts:  !pc.noCharts,
	}
	doc, err := deps.Generator.Generate(ctx, in, opts, domain.FormatText)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(doc.Content)
	return err
}

type DialogCmd struct {
	deps     DepsProvider
	format   string
	source   source
	delivery delivery
}

func newDialogCmd(deps DepsProvider) *cobra.Command {
	dc := &DialogCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "dialog",
		Short: "Choose report options interactively",
		RunE:  dc.run,
	}

	cmd.Flags().StringVarP(&dc.format, "format", "f", string(domain.FormatPDF), "Output format: pdf, csv or text")
	dc.source.bind(cmd)
	dc.delivery.bind(cmd)

	return cmd
}

func (dc *DialogCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, err := parseFormat(dc.format)
	if err != nil {
		return err
	}

	deps, err := dc.deps(ctx)
	if err != nil {
		return err
	}
	in, err := dc.source.load(ctx, deps)
	if err != nil {
		return err
	}

	model := dialog.New(ctx, func(ctx context.Context, opts domain.ReportOptions) (*domain.GeneratedDocument, string, error) {
		doc, err := deps.Generator.Generate(ctx, in, opts, format)
		if err != nil {
			return nil, "", err
		}
		location, err := dc.delivery.deliver(ctx, deps, doc)
		if err != nil {
			return nil, "", err
		}
		return doc, location, nil
	})

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dialog failed: %w", err)
	}
	if model.Dialog().State() != report.DialogDone {
		return notifyCancelled(cmd, deps)
	}
	return nil
}

func notifyCancelled(cmd *cobra.Command, deps *Deps) error {
	return export.NewReporter(cmd.ErrOrStderr(), deps.Formatter).
		Notify(notification.Show(domain.Notification{}, "Report generation cancelled", domain.SeverityInfo))
}

func parseFormat(s string) (domain.Format, error) {
	switch f := domain.Format(s); f {
	case domain.FormatPDF, domain.FormatCSV, domain.FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want pdf, csv or text)", s)
	}
}
