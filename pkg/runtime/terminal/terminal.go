package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/solar-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/solar-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/solar-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	options Options
	app     *bootstrap.App
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs defaults to stderr so reports written to Output stay clean.
	Logs io.Writer
	// Deps replaces the bootstrapped application; used by tests.
	Deps commands.DepsProvider
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{options: opts}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	defer cli.close()
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mirroring cobra.Command.SetArgs.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "solar",
		Short:         "Solar project reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger, err := bootstrap.NewLogger(cli.options.Logs, cfg.Log.Level)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))

			if cli.options.Deps == nil {
				cli.options.Deps = cli.bootstrap(cfg, logger)
			}
			return nil
		},
	}

	cmd.SetOut(cli.options.Output)
	cmd.SetErr(cli.options.Logs)
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")

	deps := func(ctx context.Context) (*commands.Deps, error) {
		return cli.options.Deps(ctx)
	}
	cmd.AddCommand(commands.NewReportCmd(deps))
	cmd.AddCommand(commands.NewProjectsCmd(deps))
	cmd.AddCommand(commands.NewCustomersCmd(deps))

	return cmd
}

// bootstrap defers building the application until a command asks for it.
func (cli *CLI) bootstrap(cfg *config.Config, logger zerolog.Logger) commands.DepsProvider {
	return func(ctx context.Context) (*commands.Deps, error) {
		if cli.app == nil {
			app, err := bootstrap.New(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			cli.app = app
		}

		return &commands.Deps{
			Explorer:  cli.app.Explorer,
			Generator: cli.app.Assembler,
			Formatter: cli.app.Assembler.Formatter(),
			Files:     cli.app.Files,
			Archive:   cli.app.Archive,
		}, nil
	}
}

func (cli *CLI) close() {
	if cli.app != nil {
		_ = cli.app.Close()
		cli.app = nil
	}
}
