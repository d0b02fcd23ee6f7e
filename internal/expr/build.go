package expr

import (
	"fmt"

	"github.com/born-ml/backprop/internal/autodiff"
)

// Build grows the expression on g and returns its output Value.
//
// env binds every identifier of the expression to a live Value of g. Number
// literals become constant leaves. Nothing is added to g on error.
func (e *Expr) Build(g *autodiff.Graph, env map[string]autodiff.Value) (autodiff.Value, error) {
	if err := e.bound(func(name string) bool {
		_, ok := env[name]
		return ok
	}); err != nil {
		return autodiff.Value{}, err
	}
	for _, name := range e.vars {
		if v := env[name]; !v.IsValid() || v.Graph() != g {
			return autodiff.Value{}, fmt.Errorf("%w: %s", ErrInvalidBinding, name)
		}
	}
	return build(g, e.root, env), nil
}

// Func adapts the expression to an autodiff.Func.
//
// params names the expression inputs, in the order the Func receives them.
// fixed binds the remaining identifiers to constants. Every identifier must be
// covered by one of the two.
func (e *Expr) Func(params []string, fixed map[string]float64) (autodiff.Func, error) {
	index := make(map[string]int, len(params))
	for i, name := range params {
		index[name] = i
	}
	if err := e.bound(func(name string) bool {
		_, isParam := index[name]
		_, isFixed := fixed[name]
		return isParam || isFixed
	}); err != nil {
		return nil, err
	}

	return func(g *autodiff.Graph, inputs []autodiff.Value) autodiff.Value {
		env := make(map[string]autodiff.Value, len(e.vars))
		for _, name := range e.vars {
			if i, ok := index[name]; ok {
				env[name] = inputs[i]
			} else {
				env[name] = g.Const(fixed[name])
			}
		}
		return build(g, e.root, env)
	}, nil
}

func (e *Expr) bound(has func(name string) bool) error {
	for _, name := range e.vars {
		if !has(name) {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
		}
	}
	return nil
}

func build(g *autodiff.Graph, t *term, env map[string]autodiff.Value) autodiff.Value {
	switch t.kind {
	case termNumber:
		return g.Const(t.number)
	case termVariable:
		return env[t.name]
	default:
		args := make([]autodiff.Value, len(t.args))
		for i, arg := range t.args {
			args[i] = build(g, arg, env)
		}
		return g.Apply(t.rule, args...)
	}
}
