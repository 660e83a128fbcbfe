package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type VesselsCmd struct {
	directory Directory
}

func NewVesselsCmd(directory Directory) *cobra.Command {
	vc := &VesselsCmd{directory: directory}
	cmd := &cobra.Command{
		Use:   "vessels",
		Short: "List the vessels known to the telemetry source",
		RunE:  vc.run,
	}

	return cmd
}

func (vc *VesselsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	names, err := vc.directory.ListVesselNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list vessels: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No vessels found")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d vessels:\n%s\n", len(names), strings.Join(names, "\n"))
	return nil
}
