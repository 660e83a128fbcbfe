package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	exportpkg "github.com/de-tools/vessel-atlas/pkg/export"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/runtime/terminal"
	"github.com/de-tools/vessel-atlas/pkg/services/config"
	"github.com/de-tools/vessel-atlas/pkg/services/directory"
	"github.com/de-tools/vessel-atlas/pkg/services/report"
	"github.com/de-tools/vessel-atlas/pkg/store/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfgPath := os.Getenv("VESSEL_ATLAS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

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

	renderers := map[domain.ExportFormat]exportpkg.Renderer{
		domain.FormatSpreadsheet: exportpkg.NewSpreadsheetRenderer(),
		domain.FormatFlatFile:    exportpkg.NewFlatFileRenderer(),
	}
	if cfg.Export.TemplatePath != "" {
		renderers[domain.FormatDocument] = exportpkg.NewDocumentRenderer(cfg.Export.TemplatePath)
	}

	cli := terminal.NewCLI(terminal.Options{
		Directory: explorer,
		Generator: report.NewGenerator(store, report.Options{BatchSize: cfg.Report.BatchSize}),
		Renderers: renderers,
		Output:    os.Stdout,
	})

	return cli.Execute()
}
