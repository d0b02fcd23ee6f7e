package autodiff

import "github.com/born-ml/backprop/internal/autodiff/ops"

// Value is a handle to a node of a Graph.
//
// Values are small and comparable; pass them by value. Two handles are equal
// exactly when they refer to the same node. The zero Value is invalid.
type Value struct {
	graph      *Graph
	index      int
	generation int
}

// IsValid reports whether v refers to a live node.
func (v Value) IsValid() bool {
	return v.graph != nil && v.generation == v.graph.generation && v.index < len(v.graph.nodes)
}

// Graph returns the graph owning v.
func (v Value) Graph() *Graph {
	return v.graph
}

// Index returns the arena index of v. It doubles as a creation timestamp:
// operands always have smaller indices than their consumers.
func (v Value) Index() int {
	return v.index
}

// Data returns the forward value.
func (v Value) Data() float64 {
	return v.node().value
}

// Grad returns the accumulated gradient.
func (v Value) Grad() float64 {
	return v.node().grad
}

// RequiresGrad reports whether v receives gradient contributions.
func (v Value) RequiresGrad() bool {
	return v.node().requiresGrad
}

// Rule returns the rule that produced v.
func (v Value) Rule() ops.Rule {
	return v.node().rule
}

// Operands returns the upstream values v was computed from.
func (v Value) Operands() []Value {
	n := v.node()
	operands := make([]Value, n.rule.Arity())
	for i := range operands {
		operands[i] = v.graph.handle(n.operands[i])
	}
	return operands
}

func (v Value) node() *node {
	g := v.mustGraph()
	g.check(v)
	return &g.nodes[v.index]
}

func (v Value) mustGraph() *Graph {
	if v.graph == nil {
		panic("autodiff: use of zero Value")
	}
	return v.graph
}

// Add returns v + w.
func (v Value) Add(w Value) Value {
	return v.mustGraph().Apply(ops.Add, v, w)
}

// Sub returns v - w.
func (v Value) Sub(w Value) Value {
	return v.mustGraph().Apply(ops.Sub, v, w)
}

// Mul returns v * w.
func (v Value) Mul(w Value) Value {
	return v.mustGraph().Apply(ops.Mul, v, w)
}

// Div returns v / w.
func (v Value) Div(w Value) Value {
	return v.mustGraph().Apply(ops.Div, v, w)
}

// AddScalar returns v + c. The scalar becomes a constant leaf.
func (v Value) AddScalar(c float64) Value {
	return v.Add(v.mustGraph().Const(c))
}

// SubScalar returns v - c.
func (v Value) SubScalar(c float64) Value {
	return v.Sub(v.mustGraph().Const(c))
}

// MulScalar returns v * c.
func (v Value) MulScalar(c float64) Value {
	return v.Mul(v.mustGraph().Const(c))
}

// DivScalar returns v / c.
func (v Value) DivScalar(c float64) Value {
	return v.Div(v.mustGraph().Const(c))
}

// RSubScalar returns c - v.
func (v Value) RSubScalar(c float64) Value {
	return v.mustGraph().Const(c).Sub(v)
}

// RDivScalar returns c / v.
func (v Value) RDivScalar(c float64) Value {
	return v.mustGraph().Const(c).Div(v)
}

// Neg returns -v.
func (v Value) Neg() Value {
	return v.mustGraph().Apply(ops.Negate, v)
}

// Sin returns sin(v).
func (v Value) Sin() Value {
	return v.mustGraph().Apply(ops.Sin, v)
}

// Cos returns cos(v).
func (v Value) Cos() Value {
	return v.mustGraph().Apply(ops.Cos, v)
}

// Sqrt returns sqrt(v).
func (v Value) Sqrt() Value {
	return v.mustGraph().Apply(ops.Sqrt, v)
}

// Log returns the natural logarithm of v.
func (v Value) Log() Value {
	return v.mustGraph().Apply(ops.Log, v)
}

// Exp returns e**v.
func (v Value) Exp() Value {
	return v.mustGraph().Apply(ops.Exp, v)
}
