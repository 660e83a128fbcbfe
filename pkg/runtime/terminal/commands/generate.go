package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	exportpkg "github.com/de-tools/vessel-atlas/pkg/export"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	reportexport "github.com/de-tools/vessel-atlas/pkg/runtime/terminal/export"
)

// Directory lists the vessels available for selection.
type Directory interface {
	ListVesselNames(ctx context.Context) ([]string, error)
}

// Generator builds a report set for a vessel selection.
type Generator interface {
	BuildReportSet(ctx context.Context, vessels []string, periodMonths int) (*domain.ReportSet, error)
}

type GenerateCmd struct {
	vessels   []string
	months    int
	format    string
	outputDir string
	directory Directory
	generator Generator
	renderers map[domain.ExportFormat]exportpkg.Renderer
	reporter  *reportexport.Reporter
}

func NewGenerateCmd(
	directory Directory,
	generator Generator,
	renderers map[domain.ExportFormat]exportpkg.Renderer,
	reporter *reportexport.Reporter,
) *cobra.Command {
	gc := &GenerateCmd{
		directory: directory,
		generator: generator,
		renderers: renderers,
		reporter:  reporter,
	}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a vessel performance report",
		RunE:  gc.run,
	}

	cmd.Flags().StringSliceVar(&gc.vessels, "vessels", nil, "Vessels to include; omit to report on the whole fleet")
	cmd.Flags().IntVar(&gc.months, "months", 1, "Analysis period in months (1-3)")
	cmd.Flags().StringVar(&gc.format, "format", "text", "Output format: text, csv, xlsx or docx")
	cmd.Flags().StringVar(&gc.outputDir, "output", ".", "Directory for exported artifacts")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	vessels := gc.vessels
	if len(vessels) == 0 {
		names, err := gc.directory.ListVesselNames(ctx)
		if err != nil {
			return fmt.Errorf("failed to list fleet vessels: %w", err)
		}
		vessels = names
	}

	set, err := gc.generator.BuildReportSet(ctx, vessels, gc.months)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if gc.format == "text" {
		return gc.reporter.Handle(set)
	}

	renderer, ok := gc.renderers[domain.ExportFormat(gc.format)]
	if !ok {
		return fmt.Errorf("unsupported format %q", gc.format)
	}

	artifact, err := renderer.Render(set)
	if err != nil {
		return fmt.Errorf("failed to render %s artifact: %w", gc.format, err)
	}

	path := filepath.Join(gc.outputDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
