package internal

type notification struct {
	node  int
	value any
}

// NotifyQueue collects the nodes whose value changed during a flush,
// each at most once, along with the value they settled on.
type NotifyQueue struct {
	graph   *Graph
	pending []notification
}

func NewNotifyQueue(graph *Graph) *NotifyQueue {
	return &NotifyQueue{
		graph:   graph,
		pending: make([]notification, 0),
	}
}

func (q *NotifyQueue) Enqueue(i int, value any) {
	node := q.graph.nodes[i]
	if node.HasFlag(FlagQueued) {
		return
	}
	node.AddFlag(FlagQueued)

	q.pending = append(q.pending, notification{node: i, value: value})
}

func (q *NotifyQueue) size() int { return len(q.pending) }

// Run hands every queued node to `notify` in the order it was queued, leaving the queue empty.
// `notify` may trigger another flush, which starts from an empty queue.
func (q *NotifyQueue) Run(notify func(node int, value any)) {
	pending := q.pending
	q.pending = make([]notification, 0)

	for _, n := range pending {
		q.graph.nodes[n.node].RemoveFlag(FlagQueued)
	}

	for _, n := range pending {
		notify(n.node, n.value)
	}
}

// clear drops every pending notification without running it.
func (q *NotifyQueue) clear() {
	for _, n := range q.pending {
		q.graph.nodes[n.node].RemoveFlag(FlagQueued)
	}

	q.pending = make([]notification, 0)
}
