package resolve

import "github.com/panyam/flowres/decl"

// Context is the state of one resolution pass over a tree.
type Context struct {
	Tree   *decl.Tree
	Scopes *TypeScope

	whens            []*decl.WhenExpr
	dependentLambdas map[decl.NodeID]int
	returnTypes      map[decl.NodeID][]*decl.Type
}

func NewContext(tree *decl.Tree) *Context {
	return &Context{
		Tree:             tree,
		Scopes:           NewTypeScope(),
		dependentLambdas: map[decl.NodeID]int{},
		returnTypes:      map[decl.NodeID][]*decl.Type{},
	}
}

// WithWhenExpression runs fn with w as the innermost when.  A subject
// variable gets a scope of its own.
func (c *Context) WithWhenExpression(w *decl.WhenExpr, fn func()) {
	c.whens = append(c.whens, w)
	defer func() { c.whens = c.whens[:len(c.whens)-1] }()
	if w.SubjectVariable != nil {
		c.Scopes.With(fn)
	} else {
		fn()
	}
}

// WhenByID finds a when through the tree, falling back to the when stack for
// nodes that are not registered.
func (c *Context) WhenByID(id decl.NodeID) *decl.WhenExpr {
	if c.Tree != nil {
		if w, ok := c.Tree.Node(id).(*decl.WhenExpr); ok {
			return w
		}
	}
	for i := len(c.whens) - 1; i >= 0; i-- {
		if c.whens[i].ID() == id {
			return c.whens[i]
		}
	}
	return nil
}

// Node resolves a back reference.
func (c *Context) Node(id decl.NodeID) decl.Node {
	if c.Tree == nil {
		return nil
	}
	return c.Tree.Node(id)
}

// MarkDependentLambda flags a lambda whose own type is still being inferred
// from its call site.  Marks nest.
func (c *Context) MarkDependentLambda(id decl.NodeID) {
	c.dependentLambdas[id]++
}

func (c *Context) UnmarkDependentLambda(id decl.NodeID) {
	if c.dependentLambdas[id] <= 1 {
		delete(c.dependentLambdas, id)
	} else {
		c.dependentLambdas[id]--
	}
}

func (c *Context) IsAnalyzedInDependentContext(id decl.NodeID) bool {
	return c.dependentLambdas[id] > 0
}

// RecordReturn notes the type a return hands to its target.
func (c *Context) RecordReturn(target decl.NodeID, t *decl.Type) {
	c.returnTypes[target] = append(c.returnTypes[target], t)
}

func (c *Context) ReturnTypes(target decl.NodeID) []*decl.Type {
	return c.returnTypes[target]
}
