// Package tree provides a virtualized tree view. The expanded portion of
// the tree is flattened into a linear, depth-annotated sequence on every
// render, and the same scrolling engine as the flat list navigates it.
package tree

// Node is a tree node owned by application code. The view only reads the
// structure and toggles Expanded; it never stores references to nodes
// across frames, so trees may be freely restructured between renders.
//
// Nodes carry no parent pointer. Parent relationships are resolved
// transiently in the flattened sequence each frame, which keeps the tree
// re-parentable without back-references to fix up.
type Node struct {
	Label    string
	Value    any
	Children []*Node
	Expanded bool

	leaf bool
}

// NewNode creates an inner node with the given children. It starts
// collapsed.
func NewNode(label string, value any, children ...*Node) *Node {
	return &Node{Label: label, Value: value, Children: children}
}

// NewLeaf creates a leaf node. Leaves never expand, even if children are
// attached later.
func NewLeaf(label string, value any) *Node {
	return &Node{Label: label, Value: value, leaf: true}
}

// IsLeaf reports whether the node is a leaf. Inner nodes may have zero
// children (for example, before lazy population) and still expand.
func (n *Node) IsLeaf() bool { return n.leaf }

// Toggle flips the expand state of an inner node; it is a no-op for
// leaves.
func (n *Node) Toggle() {
	if !n.leaf {
		n.Expanded = !n.Expanded
	}
}

// Entry is one element of the flattened sequence: a visible node, its
// depth, and its parent (nil for roots). Entries are ephemeral; they are
// rebuilt whenever the structure is consulted and must not be retained
// across mutations.
type Entry struct {
	Node   *Node
	Depth  int
	Parent *Node
}

// Flatten produces the pre-order sequence of currently visible nodes:
// every node is visited, and children are descended into only when their
// parent is an expanded inner node.
func Flatten(roots []*Node) []Entry {
	var entries []Entry
	for _, root := range roots {
		entries = appendVisible(entries, root, 0, nil)
	}
	return entries
}

func appendVisible(entries []Entry, n *Node, depth int, parent *Node) []Entry {
	if n == nil {
		return entries
	}
	entries = append(entries, Entry{Node: n, Depth: depth, Parent: parent})
	if n.IsLeaf() || !n.Expanded {
		return entries
	}
	for _, child := range n.Children {
		entries = appendVisible(entries, child, depth+1, n)
	}
	return entries
}
