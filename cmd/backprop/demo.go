package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/telemetry"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Differentiate f = sin(a*b + 2) + sqrt(c/4) at a=2, b=3, c=1",
		Long: `Builds f = sin(a*b + 2) + sqrt(c/4) at a=2, b=3, c=1, runs a backward
pass and prints f.grad a.grad b.grad c.grad on one line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := autodiff.NewGraph()
			a, b, c := g.Var(2), g.Var(3), g.Var(1)
			f := a.Mul(b).AddScalar(2).Sin().Add(c.DivScalar(4).Sqrt())

			g.Backward(f)
			telemetry.FromContext(cmd.Context()).Debug("backward pass complete",
				"nodes", g.Len(),
				"passes", g.Passes(),
			)

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%g %g %g %g\n", f.Grad(), a.Grad(), b.Grad(), c.Grad())
			return err
		},
	}
}
