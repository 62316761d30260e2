package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/trainkit/optim"
)

func newScheduleCmd() *cobra.Command {
	var (
		configPath string
		epochs     int
		changes    bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the learning rate per epoch",
		Long: `Print the base learning rate an optimizer config yields at each epoch.
Without --config the default config is used (adam, 1e-3 then 1e-4 from
epoch 32).`,
		Example: `  # Default schedule for 40 epochs
  trainkit schedule --epochs 40

  # Only the epochs where the rate changes
  trainkit schedule --config optim.yaml --changes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := optim.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = optim.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if epochs < 1 {
				return fmt.Errorf("--epochs must be positive, got %d", epochs)
			}
			s, err := optim.NewStepLR(cfg.LR, cfg.LREpochs)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "epoch\tlr\n")
			var prev float32 = -1
			for e := 0; e < epochs; e++ {
				lr := s.At(float64(e))
				if !changes || lr != prev {
					fmt.Fprintf(w, "%d\t%g\n", e, lr)
				}
				prev = lr
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Optimizer config (YAML)")
	cmd.Flags().IntVarP(&epochs, "epochs", "e", 40, "Number of epochs to print")
	cmd.Flags().BoolVar(&changes, "changes", false, "Print only epochs where the rate changes")
	return cmd
}
