package main

import (
	"github.com/spf13/cobra"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/expr"
)

// inputFlags are the flags shared by grad and minimize. Flag values take
// precedence over the input file.
type inputFlags struct {
	file       string
	expression string
	schedule   string
	vars       []string
	consts     []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML input file")
	cmd.Flags().StringVarP(&f.expression, "expr", "e", "", "Expression, e.g. 'sin(a*b + 2) + sqrt(c/4)'")
	cmd.Flags().StringVar(&f.schedule, "schedule", "", "Backward schedule: tape or countdown")
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "Input that requires gradient, as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.consts, "const", nil, "Constant input, as name=value (repeatable)")
}

// load merges the input file with the flags and parses the expression.
func (f *inputFlags) load() (*config.File, *expr.Expr, error) {
	file := &config.File{}
	if f.file != "" {
		loaded, err := config.Load(f.file)
		if err != nil {
			return nil, nil, err
		}
		file = loaded
	}
	if f.expression != "" {
		file.Expression = f.expression
	}
	if f.schedule != "" {
		file.Schedule = f.schedule
	}

	overrides := make(map[string]config.Input, len(f.vars)+len(f.consts))
	for _, group := range []struct {
		assignments  []string
		requiresGrad bool
	}{{f.vars, true}, {f.consts, false}} {
		for _, s := range group.assignments {
			name, in, err := config.ParseAssignment(s, group.requiresGrad)
			if err != nil {
				return nil, nil, err
			}
			overrides[name] = in
		}
	}
	file.Merge(overrides)

	if err := file.Validate(); err != nil {
		return nil, nil, err
	}

	e, err := expr.Parse(file.Expression)
	if err != nil {
		return nil, nil, err
	}
	return file, e, nil
}
