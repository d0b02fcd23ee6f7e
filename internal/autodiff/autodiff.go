// Package autodiff implements reverse-mode automatic differentiation of
// scalar expressions.
//
// Architecture:
//   - Graph: a session-scoped arena owning every node of one computation
//   - Value: a small handle (graph + arena index) returned by every operator
//   - ops.Rule: the tag selecting each node's local derivative
//   - Backward: applies rules in reverse topological order
//
// Usage:
//
//	g := autodiff.NewGraph()
//	a, b, c := g.Var(2), g.Var(3), g.Var(1)
//	f := a.Mul(b).AddScalar(2).Sin().Add(c.DivScalar(4).Sqrt())
//
//	g.Backward(f)
//	fmt.Println(a.Grad(), b.Grad(), c.Grad())
//
// A Graph is not safe for concurrent use. Gradients accumulate across
// backward passes until ZeroGrad is called.
package autodiff

import (
	"fmt"

	"github.com/born-ml/backprop/internal/autodiff/ops"
)

// node is one arena slot. Operand indices are always smaller than the
// node's own index.
type node struct {
	value        float64
	grad         float64
	requiresGrad bool
	rule         ops.Rule
	operands     [2]int
}

// Graph owns every node created during one computation session.
//
// Nodes are appended by the operator methods on Value and are never removed
// individually. Reset releases all of them at once so the graph can be
// reused for the next forward/backward cycle.
type Graph struct {
	nodes      []node
	generation int // Bumped by Reset to invalidate older Values.
	passes     int // Backward passes since the last ZeroGrad or Reset.
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0, 64), // Pre-allocate for common case
	}
}

// Var creates an input leaf that receives gradient.
func (g *Graph) Var(x float64) Value {
	return g.Leaf(x, true)
}

// Const creates a constant leaf. Its value is read by adjacent rules but it
// never receives gradient.
func (g *Graph) Const(x float64) Value {
	return g.Leaf(x, false)
}

// Leaf creates a leaf node with the given value.
func (g *Graph) Leaf(x float64, requiresGrad bool) Value {
	g.nodes = append(g.nodes, node{
		value:        x,
		requiresGrad: requiresGrad,
		rule:         ops.Leaf,
	})
	return g.handle(len(g.nodes) - 1)
}

// Apply creates a node computed by rule from the given operands.
//
// The operand count must match the rule's arity and every operand must
// belong to g. Violations are programmer errors and panic. The new node
// requires gradient if any operand does.
func (g *Graph) Apply(rule ops.Rule, operands ...Value) Value {
	if !rule.Valid() || rule == ops.Leaf {
		panic(fmt.Sprintf("autodiff: cannot apply rule %s", rule))
	}
	if len(operands) != rule.Arity() {
		panic(fmt.Sprintf("autodiff: %s expects %d operands, got %d", rule, rule.Arity(), len(operands)))
	}

	n := node{rule: rule}
	var in [2]float64
	for i, v := range operands {
		g.check(v)
		operand := &g.nodes[v.index]
		n.operands[i] = v.index
		n.requiresGrad = n.requiresGrad || operand.requiresGrad
		in[i] = operand.value
	}
	n.value = rule.Forward(in[0], in[1])

	g.nodes = append(g.nodes, n)
	return g.handle(len(g.nodes) - 1)
}

// Len returns the number of nodes in the graph, constants included.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Values returns a handle for every node in creation order.
func (g *Graph) Values() []Value {
	values := make([]Value, len(g.nodes))
	for i := range g.nodes {
		values[i] = g.handle(i)
	}
	return values
}

// Gradients returns the accumulated gradient of each value.
func (g *Graph) Gradients(values ...Value) []float64 {
	grads := make([]float64, len(values))
	for i, v := range values {
		g.check(v)
		grads[i] = g.nodes[v.index].grad
	}
	return grads
}

// ZeroGrad resets every gradient to 0. Call it before running Backward
// again on a graph that already carries gradients.
func (g *Graph) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = 0
	}
	g.passes = 0
}

// Reset releases every node. Values created before Reset become invalid and
// panic when used. The arena's capacity is kept for the next session.
func (g *Graph) Reset() {
	g.nodes = g.nodes[:0]
	g.generation++
	g.passes = 0
}

// Passes returns the number of backward passes since the last ZeroGrad or
// Reset. A value above zero means the gradients are not fresh.
func (g *Graph) Passes() int {
	return g.passes
}

func (g *Graph) handle(index int) Value {
	return Value{graph: g, index: index, generation: g.generation}
}

// check panics if v cannot be used with g.
func (g *Graph) check(v Value) {
	switch {
	case v.graph == nil:
		panic("autodiff: use of zero Value")
	case v.graph != g:
		panic("autodiff: values from different graphs cannot be combined")
	case v.generation != g.generation:
		panic("autodiff: value used after Graph.Reset")
	}
}
