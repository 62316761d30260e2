package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/born-ml/trainkit/loader"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.safetensors>",
		Short: "List the tensors and metadata of a SafeTensors file",
		Long: `List every tensor (name, dtype, shape, bytes) of a SafeTensors file,
followed by its metadata. Works for weight files written by nn.Save and for
optimizer snapshots written by Scheduled.SaveState.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loader.Open(args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = r.Close()
			}()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "name\tdtype\tshape\tbytes\n")
			for _, name := range r.TensorNames() {
				info, err := r.TensorInfo(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%v\t%d\n", name, info.DType, info.Shape, info.DataOffsets[1]-info.DataOffsets[0])
			}
			if err := w.Flush(); err != nil {
				return err
			}

			metadata := r.Metadata()
			if len(metadata) == 0 {
				return nil
			}
			keys := maps.Keys(metadata)
			slices.Sort(keys)
			fmt.Fprintln(cmd.OutOrStdout())
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, metadata[k])
			}
			return nil
		},
	}
}
