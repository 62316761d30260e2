// Package main provides the trainkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trainkit",
		Short: "trainkit - training-loop utilities",
		Long: `trainkit bundles the pieces of a training loop: step learning-rate
schedules with gradient clipping, pretrained-weight loading, device
placement of nested batches and a console/file log tee.

The commands exercise them from the shell:
  - schedule      print the learning rate of an optimizer config per epoch
  - inspect       list the tensors and metadata of a SafeTensors file
  - fit-rotation  recover a 2D rotation angle by gradient descent`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScheduleCmd(), newInspectCmd(), newFitRotationCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trainkit %s\n", version)
		},
	}
}
