package internal

type NodeFlags int

const (
	FlagNone   NodeFlags = 0
	FlagInHeap NodeFlags = 1 << iota
	FlagQueued
)

type NodeKind int

const (
	KindInput NodeKind = iota
	KindCompute
)

type Node struct {
	kind NodeKind

	// the node's height in the dependency graph, inputs sit at 0
	// and a compute node sits one above its highest dependency
	height int

	// the node's state
	flags NodeFlags

	// ordered as declared, may contain the same node twice
	deps []int

	// nodes that depend on this one, deduplicated
	subs []int
}

func (n *Node) Kind() NodeKind { return n.kind }

func (n *Node) Height() int { return n.height }

func (n *Node) HasFlag(flag NodeFlags) bool { return n.flags&flag != 0 }

func (n *Node) AddFlag(flag NodeFlags) { n.flags |= flag }

func (n *Node) RemoveFlag(flag NodeFlags) { n.flags &^= flag }
