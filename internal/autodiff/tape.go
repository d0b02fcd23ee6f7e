package autodiff

// tapeOrder returns the nodes reachable from root in reverse creation order.
//
// The arena behaves like a gradient tape: a node can only use operands that
// already exist, so creation order is a topological order and walking it
// backwards from the root visits every consumer before its operands.
// Reachability is marked during the same sweep, which keeps nodes created
// before root but unrelated to it out of the pass.
func (g *Graph) tapeOrder(root int) []int {
	reachable := make([]bool, root+1)
	reachable[root] = true

	order := make([]int, 0, root+1)
	for i := root; i >= 0; i-- {
		if !reachable[i] {
			continue
		}
		order = append(order, i)
		g.gradOperands(i, func(operand int) {
			reachable[operand] = true
		})
	}
	return order
}
