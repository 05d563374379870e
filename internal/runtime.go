package internal

// Hooks connect the runtime to the typed cell storage that lives outside of it.
type Hooks struct {
	// Recompute re-evaluates a compute node from its dependencies' current values.
	// It reports the new value and whether it differs from the previous one.
	Recompute func(node int) (value any, changed bool)

	// Notify is called once per changed node after the whole graph has settled.
	Notify func(node int, value any)

	// Settled is called at the end of every flush that had work to do.
	Settled func(Pass)
}

// Pass summarizes one propagation pass.
type Pass struct {
	// the runtime clock at the time the pass settled, starting at 1
	Clock int

	Recomputed int
	Changed    int
}

type Runtime struct {
	graph       *Graph
	heap        *PriorityHeap
	batcher     *Batcher
	notifyQueue *NotifyQueue

	hooks Hooks

	// incremented each time a flush settles
	clock int

	// set when a node was marked since the last flush
	scheduled bool
}

func NewRuntime(hooks Hooks) *Runtime {
	graph := NewGraph()

	return &Runtime{
		graph:       graph,
		heap:        NewHeap(graph),
		batcher:     NewBatcher(),
		notifyQueue: NewNotifyQueue(graph),
		hooks:       hooks,
	}
}

func (r *Runtime) Graph() *Graph { return r.graph }

// Write records that node i changed and flushes unless a batch is open.
func (r *Runtime) Write(i int) {
	r.Mark(i)

	if !r.batcher.IsBatching() {
		r.Flush()
	}
}

// Mark inserts the subscribers of node i in the dirty heap.
func (r *Runtime) Mark(i int) {
	r.heap.InsertAll(r.graph.Subs(i))
	r.scheduled = true
}

// Batch runs fn and flushes once when the outermost batch completes.
func (r *Runtime) Batch(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}

// Flush recomputes every dirty node in topological order, then notifies the ones that changed.
func (r *Runtime) Flush() {
	if !r.scheduled {
		return
	}
	r.scheduled = false

	pass := Pass{}

	r.settle(&pass)

	r.clock++
	pass.Clock = r.clock

	if r.hooks.Settled != nil {
		r.hooks.Settled(pass)
	}

	if r.hooks.Notify != nil {
		r.notifyQueue.Run(r.hooks.Notify)
	}
}

// settle drains the dirty heap into the notify queue.
// A panicking Recompute drops whatever the aborted pass had queued.
func (r *Runtime) settle(pass *Pass) {
	defer func() {
		if p := recover(); p != nil {
			r.notifyQueue.clear()
			panic(p)
		}
	}()

	r.heap.Drain(func(i int) {
		pass.Recomputed++

		value, changed := r.hooks.Recompute(i)
		if !changed {
			return
		}

		pass.Changed++
		r.heap.InsertAll(r.graph.Subs(i))
		r.notifyQueue.Enqueue(i, value)
	})
}
