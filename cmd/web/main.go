package main

import (
	"fmt"
	"os"

	"github.com/de-tools/solar-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/solar-atlas/pkg/server"
	"github.com/de-tools/solar-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the solar admin dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (SOLAR_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := bootstrap.NewLogger(os.Stdout, cfg.Log.Level)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfgPath != "" {
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}
	if cfg.Auth.CredentialsFile == "" {
		logger.Warn().Msgf("No credentials file configured, signing in with the demo account `%s`", config.DemoEmail)
	}

	api := server.NewWebAPI(server.Config{
		Addr: cfg.Server.Addr(),
		Dependencies: server.Dependencies{
			Sessions:  app.Sessions,
			Explorer:  app.Explorer,
			Generator: app.Assembler,
			Archive:   app.Archive,
			Logger:    logger,
		},
	})

	return api.Start()
}
