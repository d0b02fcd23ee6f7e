package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/expr"
	"github.com/born-ml/backprop/internal/telemetry"
)

// Finite-difference step and tolerance for --check.
const (
	checkStep      = 1e-6
	checkTolerance = 1e-5
)

func newGradCmd() *cobra.Command {
	var flags inputFlags
	var check bool

	cmd := &cobra.Command{
		Use:   "grad",
		Short: "Evaluate an expression and its gradient",
		Example: `  backprop grad --expr 'sin(a*b + 2) + sqrt(c/4)' --var a=2 --var b=3 --var c=1
  backprop grad --file inputs.yaml --schedule countdown --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, e, err := flags.load()
			if err != nil {
				return err
			}
			schedule, err := autodiff.ParseSchedule(file.Schedule)
			if err != nil {
				return err
			}

			g := autodiff.NewGraph()
			names := file.Names()
			env := make(map[string]autodiff.Value, len(names))
			for _, name := range names {
				in := file.Inputs[name]
				env[name] = g.Leaf(in.Value, in.RequiresGrad)
			}

			out, err := e.Build(g, env)
			if err != nil {
				return err
			}
			g.BackwardWith(out, schedule)

			telemetry.FromContext(cmd.Context()).Debug("backward pass complete",
				"expression", e.String(),
				"nodes", g.Len(),
				"schedule", schedule.String(),
				"passes", g.Passes(),
			)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVALUE\tGRAD")
			fmt.Fprintf(tw, "f\t%g\t%g\n", out.Data(), out.Grad())
			for _, name := range names {
				v := env[name]
				fmt.Fprintf(tw, "%s\t%g\t%g\n", name, v.Data(), v.Grad())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !check {
				return nil
			}
			return checkGradient(cmd, file, e)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "Compare the gradient with central finite differences")

	return cmd
}

// checkGradient verifies the gradient of e with respect to every input that
// requires gradient.
func checkGradient(cmd *cobra.Command, file *config.File, e *expr.Expr) error {
	var params []string
	var at []float64
	fixed := make(map[string]float64)
	for _, name := range file.Names() {
		in := file.Inputs[name]
		if in.RequiresGrad {
			params = append(params, name)
			at = append(at, in.Value)
		} else {
			fixed[name] = in.Value
		}
	}

	fn, err := e.Func(params, fixed)
	if err != nil {
		return err
	}
	result, err := autodiff.CheckGradient(fn, at, checkStep, checkTolerance)
	if err != nil {
		return fmt.Errorf("gradient check failed: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "gradient check: ok (max diff %.3g over %d inputs)\n",
		result.MaxDiff, len(params))
	return err
}
