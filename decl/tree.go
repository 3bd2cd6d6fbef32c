package decl

import "fmt"

// Tree is an arena of nodes.  Every node created through a Tree gets a
// NodeID which stays stable for the lifetime of the tree, so back references
// (jump to target, subject to when) can be stored as ids.
type Tree struct {
	Name string

	// Root holds the top level statements.
	Root *BlockExpr

	nodes []Node
}

func NewTree(name string) *Tree {
	return &Tree{Name: name, nodes: []Node{nil}}
}

// Add registers n in the tree and returns it.
func Add[N Node](t *Tree, n N) N {
	t.Register(n)
	return n
}

// Register assigns an id to n.  Nodes already registered keep their id.
func (t *Tree) Register(n Node) NodeID {
	if id := n.ID(); id != NoNode {
		if int(id) < len(t.nodes) && t.nodes[id] == n {
			return id
		}
		panic(fmt.Sprintf("node %s is registered in another tree", n))
	}
	id := NodeID(len(t.nodes))
	n.setID(id)
	t.nodes = append(t.nodes, n)
	return id
}

// Node returns the node with the given id or nil.
func (t *Tree) Node(id NodeID) Node {
	if id <= NoNode || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Expr returns the node with the given id as an expression.
func (t *Tree) Expr(id NodeID) Expr {
	if e, ok := t.Node(id).(Expr); ok {
		return e
	}
	return nil
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Nodes returns all nodes in creation order.
func (t *Tree) Nodes() []Node {
	return t.nodes[1:]
}

// SetRoot makes stmts the top level block of the tree.
func (t *Tree) SetRoot(stmts ...Expr) *BlockExpr {
	t.Root = t.Block(stmts...)
	return t.Root
}

// Diagnostics returns every diagnostic attached to a node of the tree in
// node order.
func (t *Tree) Diagnostics() (out []*Diagnostic) {
	for _, n := range t.Nodes() {
		if e, ok := n.(Expr); ok {
			out = append(out, e.Diagnostics()...)
		}
	}
	return
}

func (t *Tree) PrettyPrint(cp CodePrinter) {
	if t.Root != nil {
		t.Root.printStatements(cp)
	}
}
