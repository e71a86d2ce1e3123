package registry

// queue is a FIFO of nodes for level-order walks.
type queue struct {
	items []*Node
	head  int
}

func (q *queue) push(n *Node) { q.items = append(q.items, n) }

func (q *queue) pop() *Node {
	n := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return n
}

func (q *queue) empty() bool { return q.head == len(q.items) }
