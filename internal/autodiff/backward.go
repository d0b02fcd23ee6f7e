package autodiff

import "fmt"

// Schedule selects how Backward orders rule applications.
//
// Every schedule applies a node's rule only after all of its consumers have
// contributed to its gradient, so shared intermediate nodes are handled
// correctly on arbitrary DAGs.
type Schedule int

const (
	// ScheduleTape sweeps the arena from the root down to index 0.
	ScheduleTape Schedule = iota

	// ScheduleCountdown fires a node once its pending consumer count drops to zero.
	ScheduleCountdown
)

// String returns the schedule name.
func (s Schedule) String() string {
	switch s {
	case ScheduleTape:
		return "tape"
	case ScheduleCountdown:
		return "countdown"
	default:
		return fmt.Sprintf("Schedule(%d)", int(s))
	}
}

// ParseSchedule returns the schedule with the given name.
// The empty string selects ScheduleTape.
func ParseSchedule(name string) (Schedule, error) {
	switch name {
	case "", "tape":
		return ScheduleTape, nil
	case "countdown":
		return ScheduleCountdown, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSchedule, name)
	}
}

// Backward computes the gradient of root with respect to every node it
// depends on, using ScheduleTape.
//
// Algorithm:
//  1. Set root's gradient to 1
//  2. Visit reachable nodes in reverse topological order
//  3. For each node, add its local rule's contributions to its operands
//
// Gradients accumulate: running Backward again without ZeroGrad adds a second
// set of contributions on top of the first.
//
// If root does not require gradient (it was built only from constants) the
// call only counts as a pass: root's gradient is not seeded and stays 0.
func (g *Graph) Backward(root Value) {
	g.BackwardWith(root, ScheduleTape)
}

// BackwardWith is Backward with an explicit schedule.
func (g *Graph) BackwardWith(root Value, schedule Schedule) {
	g.check(root)
	g.passes++

	if !g.nodes[root.index].requiresGrad {
		return
	}
	g.nodes[root.index].grad = 1

	for _, i := range g.schedule(root.index, schedule) {
		g.apply(i)
	}
}

// Order returns the nodes Backward would visit from root, in application
// order. Constants are never part of the order.
func (g *Graph) Order(root Value, schedule Schedule) []Value {
	g.check(root)
	if !g.nodes[root.index].requiresGrad {
		return nil
	}

	indices := g.schedule(root.index, schedule)
	order := make([]Value, len(indices))
	for i, index := range indices {
		order[i] = g.handle(index)
	}
	return order
}

func (g *Graph) schedule(root int, schedule Schedule) []int {
	switch schedule {
	case ScheduleTape:
		return g.tapeOrder(root)
	case ScheduleCountdown:
		return g.countdownOrder(root)
	default:
		panic(fmt.Sprintf("autodiff: unknown schedule %s", schedule))
	}
}

// apply pushes the gradient of node i into its operands.
func (g *Graph) apply(i int) {
	n := &g.nodes[i]
	arity := n.rule.Arity()
	if arity == 0 {
		return
	}

	x := &g.nodes[n.operands[0]]
	var y *node
	var yValue float64
	if arity == 2 {
		y = &g.nodes[n.operands[1]]
		yValue = y.value
	}

	dx, dy := n.rule.Backward(n.grad, x.value, yValue, n.value)
	if x.requiresGrad {
		x.grad += dx
	}
	if y != nil && y.requiresGrad {
		y.grad += dy
	}
}

// gradOperands calls fn for every operand edge of node i that leads to a
// node requiring gradient. An operand used twice (x*x) yields two edges.
func (g *Graph) gradOperands(i int, fn func(operand int)) {
	n := &g.nodes[i]
	for k := 0; k < n.rule.Arity(); k++ {
		if operand := n.operands[k]; g.nodes[operand].requiresGrad {
			fn(operand)
		}
	}
}
