package flow_test

import (
	"testing"

	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/flow"
	"github.com/panyam/flowres/logger"
	"github.com/panyam/flowres/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, tr *decl.Tree) *flow.GraphBuilder {
	t.Helper()
	b := flow.NewGraphBuilder()
	r := resolve.NewResolver(tr, resolve.WithSink(b), resolve.WithMetrics(resolve.NewMetrics()))
	r.ResolveTree()
	return b
}

func TestCodeAfterReturnIsDead(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	fn := tr.Function("f", "Int")
	after := tr.Val("y", tr.IntLit(2))
	fn.Body.Statements = []decl.Expr{tr.Return(fn, tr.IntLit(1)), after}
	next := tr.Val("z", tr.IntLit(3))
	tr.SetRoot(fn, next)

	b := buildGraph(t, tr)
	assert.Equal(t, []decl.NodeID{after.ID()}, b.Unreachable())

	g := b.Graph()
	exits := g.NodesFor(fn.ID())
	require.NotEmpty(t, exits)
	for _, n := range exits {
		assert.False(t, n.Dead, "%s should be live", n.Label)
	}
}

func TestInfiniteLoop(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	after := tr.Val("z", tr.IntLit(1))
	tr.SetRoot(tr.While(tr.BoolLit(true), tr.Block()), after)

	b := buildGraph(t, tr)
	assert.Equal(t, []decl.NodeID{after.ID()}, b.Unreachable())
}

func TestBreakLeavesInfiniteLoop(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	loop := tr.While(tr.BoolLit(true), tr.Block())
	loop.Block.Statements = []decl.Expr{tr.Break(loop)}
	after := tr.Val("z", tr.IntLit(1))
	tr.SetRoot(loop, after)

	b := buildGraph(t, tr)
	assert.Empty(t, b.Unreachable())

	g := b.Graph()
	var breaks int
	for _, e := range g.Edges {
		if e.Label == "break" {
			breaks++
			assert.False(t, e.Dead)
		}
	}
	assert.Equal(t, 1, breaks)
}

func TestWhenWhereEveryBranchReturns(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	fn := tr.Function("f", "Int", tr.Param("c", "Boolean"))
	w := tr.If(tr.Ident("c"), tr.Block(tr.Return(fn, tr.IntLit(1))), tr.Block(tr.Return(fn, tr.IntLit(2))))
	after := tr.Val("y", tr.IntLit(3))
	fn.Body.Statements = []decl.Expr{w, after}
	tr.SetRoot(fn)

	b := buildGraph(t, tr)
	assert.Equal(t, []decl.NodeID{after.ID()}, b.Unreachable())
}

func TestWhenWithoutElseFallsThrough(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	fn := tr.Function("f", "Int", tr.Param("c", "Boolean"))
	w := tr.When(nil, tr.Branch(tr.Ident("c"), tr.Block(tr.Return(fn, tr.IntLit(1)))))
	after := tr.Return(fn, tr.IntLit(3))
	fn.Body.Statements = []decl.Expr{w, after}
	tr.SetRoot(fn)

	b := buildGraph(t, tr)
	assert.Empty(t, b.Unreachable())

	var noMatch bool
	for _, e := range b.Graph().Edges {
		noMatch = noMatch || e.Label == "no match"
	}
	assert.True(t, noMatch)
}

func TestThrowInTryReachesCatch(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	try := tr.Try(
		tr.Block(tr.Throw(tr.Call("IllegalStateException", tr.StringLit("x"))), tr.Val("dead", tr.IntLit(0))),
		tr.Catch("e", "Exception", tr.Block(tr.IntLit(1))))
	after := tr.Val("z", tr.IntLit(2))
	tr.SetRoot(try, after)

	b := buildGraph(t, tr)
	unreachable := b.Unreachable()
	require.Len(t, unreachable, 1)
	assert.Equal(t, "dead", tr.Node(unreachable[0]).(*decl.VarDecl).Name)

	catches := b.Graph().NodesFor(try.Catches[0].ID())
	require.NotEmpty(t, catches)
	assert.False(t, catches[0].Dead)
}

func TestElvisEdges(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	e := tr.Elvis(tr.Null(), tr.IntLit(1))
	tr.SetRoot(e)

	g := buildGraph(t, tr).Graph()
	var merge *flow.GraphNode
	for _, n := range g.NodesFor(e.ID()) {
		if n.Kind == flow.ExitElvisEvent {
			merge = n
		}
	}
	require.NotNil(t, merge)
	assert.False(t, merge.Dead)

	labels := map[string]bool{}
	for _, edge := range g.Incoming(merge.ID) {
		labels[edge.Label] = true
	}
	assert.True(t, labels["not null"])
	assert.Len(t, g.Incoming(merge.ID), 2)
}

func TestGraphIsClosedOnce(t *testing.T) {
	b := flow.NewGraphBuilder()
	g := b.Graph()
	edges := len(g.Edges)
	b.EnterStatement(decl.NewTree("t").IntLit(1))
	assert.Len(t, b.Graph().Edges, edges)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, flow.GraphStart, g.Nodes[0].Kind)
	assert.Equal(t, flow.GraphEnd, g.Nodes[1].Kind)
}
