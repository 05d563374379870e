package internal

import "iter"

// PriorityHeap holds dirty nodes bucketed by height.
// Draining it bucket by bucket visits nodes in topological order,
// since a node always sits higher than every one of its dependencies.
type PriorityHeap struct {
	graph *Graph

	min int
	max int

	buckets [][]int // [height]nodes
}

func NewHeap(graph *Graph) *PriorityHeap {
	return &PriorityHeap{
		graph:   graph,
		min:     0,
		max:     0,
		buckets: make([][]int, 0),
	}
}

func (h *PriorityHeap) Insert(i int) {
	node := h.graph.nodes[i]
	if node.HasFlag(FlagInHeap) {
		return
	}
	node.AddFlag(FlagInHeap)

	height := node.height
	for len(h.buckets) <= height {
		h.buckets = append(h.buckets, nil)
	}
	h.buckets[height] = append(h.buckets[height], i)

	if height > h.max {
		h.max = height
	}
}

func (h *PriorityHeap) InsertAll(nodes iter.Seq[int]) {
	for i := range nodes {
		h.Insert(i)
	}
}

func (h *PriorityHeap) size() int {
	n := 0
	for _, bucket := range h.buckets {
		n += len(bucket)
	}

	return n
}

// Drain processes each entry in topological order with the `process` function leaving the heap empty.
// `process` may insert nodes above the height currently being drained.
func (h *PriorityHeap) Drain(process func(int)) {
	defer func() {
		if r := recover(); r != nil {
			// a panicking process leaves nothing half-drained behind
			h.clear()
			panic(r)
		}
	}()

	for h.min = 0; h.min <= h.max && h.min < len(h.buckets); h.min++ {
		for len(h.buckets[h.min]) > 0 {
			i := h.buckets[h.min][0]
			h.buckets[h.min] = h.buckets[h.min][1:]

			h.graph.nodes[i].RemoveFlag(FlagInHeap)
			process(i)
		}
		h.buckets[h.min] = nil
	}

	h.min = 0
	h.max = 0
}

func (h *PriorityHeap) clear() {
	for height, bucket := range h.buckets {
		for _, i := range bucket {
			h.graph.nodes[i].RemoveFlag(FlagInHeap)
		}
		h.buckets[height] = nil
	}

	h.min = 0
	h.max = 0
}
