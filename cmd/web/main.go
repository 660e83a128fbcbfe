package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/vessel-atlas/pkg/export"
	handlers "github.com/de-tools/vessel-atlas/pkg/handlers/report"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/server"
	"github.com/de-tools/vessel-atlas/pkg/services/config"
	"github.com/de-tools/vessel-atlas/pkg/services/directory"
	"github.com/de-tools/vessel-atlas/pkg/services/report"
	"github.com/de-tools/vessel-atlas/pkg/store/telemetry"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Vessel Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the application config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := telemetry.NewStore(ctx, telemetry.Config{
		FunctionName: cfg.Query.FunctionName,
		Region:       cfg.Query.Region,
		Profile:      cfg.Query.Profile,
	})
	if err != nil {
		return fmt.Errorf("failed to create telemetry store: %w", err)
	}

	explorer, err := directory.NewExplorer(store)
	if err != nil {
		return fmt.Errorf("failed to create vessel directory: %w", err)
	}

	generator := report.NewGenerator(store, report.Options{
		BatchSize: cfg.Report.BatchSize,
	})

	renderers := handlers.RendererSet{
		domain.FormatSpreadsheet: export.NewSpreadsheetRenderer(),
		domain.FormatFlatFile:    export.NewFlatFileRenderer(),
	}
	if cfg.Export.TemplatePath != "" {
		renderers[domain.FormatDocument] = export.NewDocumentRenderer(cfg.Export.TemplatePath)
	}

	logger.Info().Str("function", cfg.Query.FunctionName).Msg("telemetry endpoint configured")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Directory: explorer,
			Generator: generator,
			Renderers: renderers,
		},
	})

	return webAPI.Start()
}
