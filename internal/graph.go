package internal

import (
	"iter"
	"slices"
)

// Graph is an append-only arena of nodes addressed by their index.
// Nodes are never removed, so an index stays valid for the life of the graph.
type Graph struct {
	nodes []*Node
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make([]*Node, 0),
	}
}

// AddNode appends a node depending on the given nodes and returns its index.
// Every dependency must already exist, which also keeps the graph acyclic.
func (g *Graph) AddNode(kind NodeKind, deps []int) int {
	i := len(g.nodes)
	n := &Node{kind: kind, deps: slices.Clone(deps)}
	g.nodes = append(g.nodes, n)

	for _, dep := range deps {
		g.link(i, dep)
	}

	return i
}

// link registers sub as a subscriber of dep and raises sub above dep.
func (g *Graph) link(sub, dep int) {
	d := g.nodes[dep]
	s := g.nodes[sub]

	// a node listing the same dependency twice is only subscribed once
	if !slices.Contains(d.subs, sub) {
		d.subs = append(d.subs, sub)
	}

	if d.height >= s.height {
		s.height = d.height + 1
	}
}

// Node returns the node at index i, or false if there is none.
func (g *Graph) Node(i int) (*Node, bool) {
	if i < 0 || i >= len(g.nodes) {
		return nil, false
	}

	return g.nodes[i], true
}

// Deps returns the dependencies of node i in declaration order.
func (g *Graph) Deps(i int) []int {
	return g.nodes[i].deps
}

// Subs returns an iterator over the nodes depending on node i.
func (g *Graph) Subs(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, sub := range g.nodes[i].subs {
			if !yield(sub) {
				return
			}
		}
	}
}
