package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	exportpkg "github.com/de-tools/vessel-atlas/pkg/export"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/runtime/terminal/commands"
	reportexport "github.com/de-tools/vessel-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	directory commands.Directory
	generator commands.Generator
	renderers map[domain.ExportFormat]exportpkg.Renderer
	reporter  *reportexport.Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Directory commands.Directory
	Generator commands.Generator
	Renderers map[domain.ExportFormat]exportpkg.Renderer
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		directory: opts.Directory,
		generator: opts.Generator,
		renderers: opts.Renderers,
		reporter:  reportexport.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vessel-atlas",
		Short: "Vessel performance reporting tool",
	}

	cmd.AddCommand(commands.NewGenerateCmd(cli.directory, cli.generator, cli.renderers, cli.reporter))
	cmd.AddCommand(commands.NewVesselsCmd(cli.directory))

	return cmd
}
