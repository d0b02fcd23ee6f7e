// Package ops defines the local derivative rules of the scalar computation graph.
//
// Every graph node carries a Rule tag. The tag selects a fixed Operation that
// provides:
//   - Forward: the value of the node computed from its operand values
//   - Backward: the contributions the node's gradient makes to its operands
//
// Supported rules:
//   - Leaf: inputs and constants, no operands, nothing to propagate
//   - Add, Sub, Mul, Div: binary arithmetic
//   - Negate, Sin, Cos, Sqrt, Log, Exp: unary elementary functions
//
// Rules never check their domain. Division by zero or log/sqrt of
// non-positive values produce NaN/Inf, which propagate through both passes.
package ops

import "fmt"

// Rule selects the local derivative applied when gradient flows through a node.
type Rule uint8

// Rules in table order. Leaf must stay zero so the zero Rule is a leaf.
const (
	Leaf Rule = iota
	Add
	Sub
	Mul
	Div
	Negate
	Sin
	Cos
	Sqrt
	Log
	Exp

	numRules
)

// Operation is one entry of the rule table.
type Operation struct {
	// Name is the lowercase rule name used in messages and expressions.
	Name string

	// Arity is the number of operands a node with this rule must have.
	Arity int

	// Forward computes the node value. Unary rules ignore y.
	Forward func(x, y float64) float64

	// Backward returns the contributions to the operand gradients given the
	// node gradient, the operand values and the node's own stored value.
	// Unary rules return 0 for dy.
	//
	// Example for Mul:
	//   grad: dL/d(x*y)
	//   returns: (grad*y, grad*x)
	Backward func(grad, x, y, out float64) (dx, dy float64)
}

var table = [numRules]Operation{
	Leaf:   leafOp,
	Add:    addOp,
	Sub:    subOp,
	Mul:    mulOp,
	Div:    divOp,
	Negate: negateOp,
	Sin:    sinOp,
	Cos:    cosOp,
	Sqrt:   sqrtOp,
	Log:    logOp,
	Exp:    expOp,
}

// Rules returns every rule, Leaf included, in table order.
func Rules() []Rule {
	rules := make([]Rule, 0, numRules)
	for r := Leaf; r < numRules; r++ {
		rules = append(rules, r)
	}
	return rules
}

// Valid reports whether r names an entry of the rule table.
func (r Rule) Valid() bool {
	return r < numRules
}

// Operation returns the table entry for r.
// Panics if r is not a valid rule.
func (r Rule) Operation() Operation {
	if !r.Valid() {
		panic(fmt.Sprintf("ops: unknown rule %d", uint8(r)))
	}
	return table[r]
}

// Arity returns the operand count required by r.
func (r Rule) Arity() int {
	return r.Operation().Arity
}

// String returns the rule name.
func (r Rule) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rule(%d)", uint8(r))
	}
	return table[r].Name
}

// Forward computes the value of a node with rule r.
// Panics for Leaf, which has no operands to compute from.
func (r Rule) Forward(x, y float64) float64 {
	op := r.Operation()
	if op.Forward == nil {
		panic(fmt.Sprintf("ops: %s has no forward computation", op.Name))
	}
	return op.Forward(x, y)
}

// Backward returns the operand gradient contributions of a node with rule r.
func (r Rule) Backward(grad, x, y, out float64) (dx, dy float64) {
	return r.Operation().Backward(grad, x, y, out)
}

// Lookup returns the rule with the given name.
// Leaf is not addressable by name.
func Lookup(name string) (Rule, bool) {
	for r := Leaf + 1; r < numRules; r++ {
		if table[r].Name == name {
			return r, true
		}
	}
	return Leaf, false
}

// leafOp marks inputs and constants. Nothing flows further upstream.
var leafOp = Operation{
	Name:  "leaf",
	Arity: 0,
	Backward: func(_, _, _, _ float64) (float64, float64) {
		return 0, 0
	},
}
