// Package phylo provides a rooted phylogenetic tree and its Newick
// reader and writer.
package phylo

// Node is a node of a rooted tree. A node owns its children, there are
// no references from children to parents.
type Node struct {
	// Name is the label of the node. Internal nodes may have no name.
	Name string

	// Length is the length of the branch leading to the node.
	Length float64
	// HasLength is true if Length was set.
	HasLength bool

	// Support is a numeric value given instead of a label for an
	// internal node, usually a bootstrap value.
	Support float64
	// HasSupport is true if Support was set.
	HasSupport bool

	// Children of the node in the order they were given.
	Children []*Node
}

// New creates a node with a name and a branch length.
func New(name string, length float64) *Node {
	return &Node{Name: name, Length: length, HasLength: true}
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// AddChild appends a node as the last child.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Walk visits the node and its descendants in pre-order, children in
// given order. Traversal stops when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns all nodes with the given name in pre-order.
func (n *Node) FindAll(name string) []*Node {
	var res []*Node
	n.Walk(func(nd *Node) bool {
		if nd.Name == name {
			res = append(res, nd)
		}
		return true
	})
	return res
}

// Leaves returns terminal nodes from left to right.
func (n *Node) Leaves() []*Node {
	var res []*Node
	n.Walk(func(nd *Node) bool {
		if nd.IsLeaf() {
			res = append(res, nd)
		}
		return true
	})
	return res
}

// Len returns the number of nodes in the subtree, the node included.
func (n *Node) Len() int {
	var res int
	n.Walk(func(*Node) bool {
		res++
		return true
	})
	return res
}
