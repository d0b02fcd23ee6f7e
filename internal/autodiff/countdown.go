package autodiff

// countdownOrder returns the nodes reachable from root using Kahn's
// algorithm over the reversed edges.
//
// A first walk from the root counts, for every reachable node, how many
// consumer edges point at it. Nodes are then released from a FIFO queue; a
// node enters the queue only when its last consumer has fired, which is
// exactly when its gradient is complete.
func (g *Graph) countdownOrder(root int) []int {
	pending := make([]int, root+1)
	seen := make([]bool, root+1)
	seen[root] = true

	stack := []int{root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.gradOperands(i, func(operand int) {
			pending[operand]++
			if !seen[operand] {
				seen[operand] = true
				stack = append(stack, operand)
			}
		})
	}

	order := make([]int, 0, root+1)
	queue := []int{root}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		g.gradOperands(i, func(operand int) {
			pending[operand]--
			if pending[operand] == 0 {
				queue = append(queue, operand)
			}
		})
	}
	return order
}
