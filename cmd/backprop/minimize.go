package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/telemetry"
)

var errUnknownOptimizer = errors.New("unknown optimizer")

func newMinimizeCmd() *cobra.Command {
	var flags inputFlags
	var (
		optimizer string
		lr        float64
		momentum  float64
		steps     int
		tol       float64
	)

	cmd := &cobra.Command{
		Use:     "minimize",
		Short:   "Minimize an expression over its --var inputs",
		Example: `  backprop minimize --expr '(x-3)*(x-3)' --var x=0 --lr 0.1 --steps 200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, e, err := flags.load()
			if err != nil {
				return err
			}
			schedule, err := autodiff.ParseSchedule(file.Schedule)
			if err != nil {
				return err
			}

			var params []string
			var start []float64
			fixed := make(map[string]float64)
			for _, name := range file.Names() {
				in := file.Inputs[name]
				if in.RequiresGrad {
					params = append(params, name)
					start = append(start, in.Value)
				} else {
					fixed[name] = in.Value
				}
			}

			objective, err := e.Func(params, fixed)
			if err != nil {
				return err
			}

			var opt optim.Optimizer
			switch strings.ToLower(optimizer) {
			case "sgd":
				opt = optim.NewSGD(start, optim.SGDConfig{LR: lr, Momentum: momentum})
			case "adam":
				opt = optim.NewAdam(start, optim.AdamConfig{LR: lr})
			default:
				return fmt.Errorf("%w: %q", errUnknownOptimizer, optimizer)
			}

			logger := telemetry.FromContext(cmd.Context())
			result, err := optim.Minimize(cmd.Context(), objective, opt, optim.MinimizeConfig{
				Steps:     steps,
				Tolerance: tol,
				Schedule:  schedule,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			logger.Info("minimize finished",
				"optimizer", optimizer,
				"steps", result.Steps,
				"converged", result.Converged,
			)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "loss\t%g\n", result.Loss)
			fmt.Fprintf(tw, "grad_norm\t%g\n", result.GradNorm)
			fmt.Fprintf(tw, "steps\t%d\n", result.Steps)
			fmt.Fprintf(tw, "converged\t%t\n", result.Converged)
			for i, name := range params {
				fmt.Fprintf(tw, "%s\t%g\n", name, result.Params[i])
			}
			return tw.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&optimizer, "optimizer", "sgd", "Optimizer: sgd or adam")
	cmd.Flags().Float64Var(&lr, "lr", 0.01, "Learning rate")
	cmd.Flags().Float64Var(&momentum, "momentum", 0, "SGD momentum factor")
	cmd.Flags().IntVar(&steps, "steps", 100, "Maximum number of steps")
	cmd.Flags().Float64Var(&tol, "tol", 1e-8, "Stop once the gradient norm is at or below this value")

	return cmd
}
