package flow

import (
	"fmt"

	"github.com/panyam/flowres/decl"
)

const (
	GraphStart EventKind = "start"
	GraphEnd   EventKind = "end"
)

// GraphNode is a node of the control-flow graph.  Every Sink notification
// produces at most one node.
type GraphNode struct {
	ID     int
	Kind   EventKind
	Label  string
	Source decl.NodeID

	// Dead nodes have no live predecessor.
	Dead bool
}

// GraphEdge connects two graph nodes.  An edge leaving a dead node or a jump
// is dead.
type GraphEdge struct {
	From, To int
	Label    string
	Dead     bool
}

type Graph struct {
	Nodes []*GraphNode
	Edges []*GraphEdge
}

func (g *Graph) Incoming(id int) (out []*GraphEdge) {
	for _, e := range g.Edges {
		if e.To == id {
			out = append(out, e)
		}
	}
	return
}

func (g *Graph) Outgoing(id int) (out []*GraphEdge) {
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return
}

// NodesFor returns the graph nodes created for a tree node.
func (g *Graph) NodesFor(src decl.NodeID) (out []*GraphNode) {
	for _, n := range g.Nodes {
		if n.Source == src {
			out = append(out, n)
		}
	}
	return
}

type point struct {
	node int
	live bool
}

type loopFrame struct {
	source   decl.NodeID
	enter    int
	cond     int // target of continue
	exit     int
	constant bool
}

type whenFrame struct {
	merge   int
	next    []point
	hasElse bool
}

type tryFrame struct {
	enter   int
	exit    int
	finally int // -1 without finally
	exits   []point
}

type funcFrame struct {
	source decl.NodeID
	exit   int
	saved  []point
}

// GraphBuilder is a Sink that builds a control-flow graph.  Statements
// following a return, throw, break or continue end up dead.
type GraphBuilder struct {
	EventFunc

	graph    *Graph
	frontier []point
	start    int
	end      int
	finished bool

	loops   []*loopFrame
	whens   []*whenFrame
	tries   []*tryFrame
	elvises []int
	funcs   []*funcFrame
}

func NewGraphBuilder() *GraphBuilder {
	b := &GraphBuilder{graph: &Graph{}}
	b.EventFunc = b.handle
	b.start = b.newNode(GraphStart, nil)
	b.end = b.newNode(GraphEnd, nil)
	b.frontier = []point{{b.start, true}}
	return b
}

// Graph closes the graph and returns it.  Events after the first call are
// ignored.
func (b *GraphBuilder) Graph() *Graph {
	if !b.finished {
		b.linkAll(b.frontier, b.end, "")
		b.finalize(b.end)
		b.finished = true
	}
	return b.graph
}

// Unreachable returns the statements no live path reaches, in order.
func (b *GraphBuilder) Unreachable() (out []decl.NodeID) {
	for _, n := range b.Graph().Nodes {
		if n.Kind == EnterStatementEvent && n.Dead {
			out = append(out, n.Source)
		}
	}
	return
}

func (b *GraphBuilder) handle(e Event) {
	if b.finished {
		return
	}
	switch e.Kind {
	case EnterWhile:
		loop := e.Node.(*decl.WhileLoop)
		enter := b.advance(e.Kind, loop, "")
		b.loops = append(b.loops, &loopFrame{
			source:   loop.ID(),
			enter:    enter,
			cond:     enter,
			exit:     b.newNode(ExitWhile, loop),
			constant: isConstTrue(loop.Condition),
		})
	case ExitWhileCondition:
		frame := b.loops[len(b.loops)-1]
		cond := b.advance(e.Kind, e.Node, "")
		if !frame.constant {
			b.link(point{cond, b.isLive(cond)}, frame.exit, "false")
		}
	case ExitWhile:
		frame := b.popLoop()
		b.linkAll(b.frontier, frame.enter, "back")
		b.finalize(frame.exit)

	case EnterDoWhile:
		loop := e.Node.(*decl.DoWhileLoop)
		enter := b.advance(e.Kind, loop, "")
		b.loops = append(b.loops, &loopFrame{
			source:   loop.ID(),
			enter:    enter,
			cond:     b.newNode(EnterDoWhileCondition, loop),
			exit:     b.newNode(ExitDoWhile, loop),
			constant: isConstTrue(loop.Condition),
		})
	case EnterDoWhileCondition:
		frame := b.loops[len(b.loops)-1]
		b.linkAll(b.frontier, frame.cond, "")
		b.finalize(frame.cond)
	case ExitDoWhile:
		frame := b.popLoop()
		b.linkAll(b.frontier, frame.enter, "back")
		if !frame.constant {
			b.linkAll(b.frontier, frame.exit, "false")
		}
		b.finalize(frame.exit)

	case EnterWhen:
		b.advance(e.Kind, e.Node, "")
		b.whens = append(b.whens, &whenFrame{
			merge: b.newNode(ExitWhen, e.Node),
			next:  b.frontier,
		})
	case EnterBranchCondition:
		frame := b.whens[len(b.whens)-1]
		b.frontier = frame.next
		b.advance(e.Kind, e.Node, "")
	case ExitBranchCondition:
		frame := b.whens[len(b.whens)-1]
		b.advance(e.Kind, e.Node, "")
		if e.Node.(*decl.WhenBranch).IsElse() {
			frame.hasElse = true
			frame.next = nil
		} else {
			frame.next = b.frontier
		}
	case ExitBranchResult:
		frame := b.whens[len(b.whens)-1]
		b.advance(e.Kind, e.Node, "")
		b.linkAll(b.frontier, frame.merge, "")
		b.frontier = nil
	case ExitWhen:
		frame := b.whens[len(b.whens)-1]
		b.whens = b.whens[:len(b.whens)-1]
		if !frame.hasElse && !e.Node.(*decl.WhenExpr).IsProperlyExhaustive() {
			b.linkAll(frame.next, frame.merge, "no match")
		}
		b.finalize(frame.merge)

	case EnterTry:
		t := e.Node.(*decl.TryExpr)
		enter := b.advance(e.Kind, t, "")
		frame := &tryFrame{enter: enter, exit: b.newNode(ExitTry, t), finally: -1}
		if t.FinallyBlock != nil {
			frame.finally = b.newNode(EnterFinally, t)
		}
		b.tries = append(b.tries, frame)
	case ExitMainBlock, ExitCatch:
		frame := b.tries[len(b.tries)-1]
		b.advance(e.Kind, e.Node, "")
		frame.exits = append(frame.exits, b.frontier...)
		b.frontier = nil
	case EnterCatch:
		frame := b.tries[len(b.tries)-1]
		b.frontier = []point{{frame.enter, b.isLive(frame.enter)}}
		b.advance(e.Kind, e.Node, "exception")
	case EnterFinally:
		frame := b.tries[len(b.tries)-1]
		b.linkAll(frame.exits, frame.finally, "")
		b.link(point{frame.enter, b.isLive(frame.enter)}, frame.finally, "exception")
		frame.exits = nil
		b.finalize(frame.finally)
	case ExitFinally:
		frame := b.tries[len(b.tries)-1]
		b.advance(e.Kind, e.Node, "")
		frame.exits = b.frontier
	case ExitTry:
		frame := b.tries[len(b.tries)-1]
		b.tries = b.tries[:len(b.tries)-1]
		b.linkAll(frame.exits, frame.exit, "")
		if !e.CallCompleted {
			b.graph.Nodes[frame.exit].Label = string(ExitTry) + " (pending)"
		}
		b.finalize(frame.exit)

	case ExitJumpEvent:
		jump := b.advance(e.Kind, e.Node, "")
		switch j := e.Node.(type) {
		case *decl.ReturnExpr:
			b.link(point{jump, b.isLive(jump)}, b.functionExit(j.Target), "return")
		case *decl.BreakExpr:
			b.link(point{jump, b.isLive(jump)}, b.loopTarget(j.Target, false), "break")
		case *decl.ContinueExpr:
			b.link(point{jump, b.isLive(jump)}, b.loopTarget(j.Target, true), "continue")
		}
		b.frontier = []point{{jump, false}}
	case ExitThrow:
		throw := b.advance(e.Kind, e.Node, "")
		b.link(point{throw, b.isLive(throw)}, b.functionExit(decl.NoNode), "throw")
		b.frontier = []point{{throw, false}}

	case EnterElvisEvent:
		b.advance(e.Kind, e.Node, "")
		b.elvises = append(b.elvises, b.newNode(ExitElvisEvent, e.Node))
	case ExitElvisLhsEvent:
		merge := b.elvises[len(b.elvises)-1]
		b.advance(e.Kind, e.Node, "")
		b.linkAll(b.frontier, merge, "not null")
	case ExitElvisEvent:
		merge := b.elvises[len(b.elvises)-1]
		b.elvises = b.elvises[:len(b.elvises)-1]
		b.linkAll(b.frontier, merge, "")
		b.finalize(merge)

	case EnterFunctionEvent:
		frame := &funcFrame{source: e.Node.ID(), saved: b.frontier}
		enter := b.newNode(e.Kind, e.Node)
		frame.exit = b.newNode(ExitFunctionEvent, e.Node)
		b.funcs = append(b.funcs, frame)
		b.frontier = []point{{enter, true}}
	case ExitFunctionEvent:
		frame := b.funcs[len(b.funcs)-1]
		b.funcs = b.funcs[:len(b.funcs)-1]
		b.linkAll(b.frontier, frame.exit, "")
		b.finalize(frame.exit)
		b.frontier = frame.saved

	case EnterStatementEvent:
		b.advance(e.Kind, e.Node, "")
	}
}

func (b *GraphBuilder) newNode(kind EventKind, src decl.Node) int {
	n := &GraphNode{ID: len(b.graph.Nodes), Kind: kind, Label: string(kind)}
	if src != nil {
		n.Source = src.ID()
		if kind == EnterStatementEvent {
			n.Label = shorten(src.String(), 32)
		}
	}
	b.graph.Nodes = append(b.graph.Nodes, n)
	return n.ID
}

// advance appends a node after the current frontier and makes it the new
// frontier.
func (b *GraphBuilder) advance(kind EventKind, src decl.Node, label string) int {
	id := b.newNode(kind, src)
	b.linkAll(b.frontier, id, label)
	live := false
	for _, p := range b.frontier {
		live = live || p.live
	}
	b.graph.Nodes[id].Dead = !live
	b.frontier = []point{{id, live}}
	return id
}

// finalize settles the liveness of a node created ahead of its incoming
// edges and makes it the frontier.
func (b *GraphBuilder) finalize(id int) {
	live := false
	for _, e := range b.graph.Incoming(id) {
		live = live || !e.Dead
	}
	b.graph.Nodes[id].Dead = !live
	b.frontier = []point{{id, live}}
}

func (b *GraphBuilder) link(from point, to int, label string) {
	b.graph.Edges = append(b.graph.Edges, &GraphEdge{From: from.node, To: to, Label: label, Dead: !from.live})
}

func (b *GraphBuilder) linkAll(from []point, to int, label string) {
	for _, p := range from {
		b.link(p, to, label)
	}
}

func (b *GraphBuilder) isLive(id int) bool {
	return !b.graph.Nodes[id].Dead
}

func (b *GraphBuilder) popLoop() *loopFrame {
	frame := b.loops[len(b.loops)-1]
	b.loops = b.loops[:len(b.loops)-1]
	return frame
}

// functionExit finds the exit of the function or lambda with the given id,
// the innermost one for NoNode, and the graph end outside of any function.
func (b *GraphBuilder) functionExit(target decl.NodeID) int {
	for i := len(b.funcs) - 1; i >= 0; i-- {
		if target == decl.NoNode || b.funcs[i].source == target {
			return b.funcs[i].exit
		}
	}
	return b.end
}

func (b *GraphBuilder) loopTarget(target decl.NodeID, cont bool) int {
	for i := len(b.loops) - 1; i >= 0; i-- {
		if b.loops[i].source == target {
			if cont {
				return b.loops[i].cond
			}
			return b.loops[i].exit
		}
	}
	return b.end
}

func isConstTrue(e decl.Expr) bool {
	lit, ok := e.(*decl.LiteralExpr)
	return ok && lit.ValueKind == decl.LitBool && lit.Value == "true"
}

func shorten(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return fmt.Sprintf("%s...", s[:limit-3])
}
