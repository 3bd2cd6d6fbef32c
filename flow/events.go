package flow

import (
	"fmt"

	"github.com/panyam/flowres/decl"
)

// EventKind names a Sink notification.
type EventKind string

const (
	EnterWhile            EventKind = "enter-while"
	ExitWhileCondition    EventKind = "exit-while-condition"
	ExitWhile             EventKind = "exit-while"
	EnterDoWhile          EventKind = "enter-do-while"
	EnterDoWhileCondition EventKind = "enter-do-while-condition"
	ExitDoWhile           EventKind = "exit-do-while"
	EnterWhen             EventKind = "enter-when"
	EnterBranchCondition  EventKind = "enter-branch-condition"
	ExitBranchCondition   EventKind = "exit-branch-condition"
	ExitBranchResult      EventKind = "exit-branch-result"
	ExitWhen              EventKind = "exit-when"
	EnterTry              EventKind = "enter-try"
	ExitMainBlock         EventKind = "exit-main-block"
	EnterCatch            EventKind = "enter-catch"
	ExitCatch             EventKind = "exit-catch"
	EnterFinally          EventKind = "enter-finally"
	ExitFinally           EventKind = "exit-finally"
	ExitTry               EventKind = "exit-try"
	ExitJumpEvent         EventKind = "exit-jump"
	ExitThrow             EventKind = "exit-throw"
	EnterElvisEvent       EventKind = "enter-elvis"
	ExitElvisLhsEvent     EventKind = "exit-elvis-lhs"
	ExitElvisEvent        EventKind = "exit-elvis"
	EnterFunctionEvent    EventKind = "enter-function"
	ExitFunctionEvent     EventKind = "exit-function"
	EnterStatementEvent   EventKind = "statement"
)

// IsStructural is true for the function and statement events, which are not
// tied to a control-flow construct.
func (k EventKind) IsStructural() bool {
	return k == EnterFunctionEvent || k == ExitFunctionEvent || k == EnterStatementEvent
}

// Event is a Sink notification as a value.
type Event struct {
	Kind EventKind
	Node decl.Node

	// CallCompleted is only meaningful for ExitTry.
	CallCompleted bool
}

func (e Event) String() string {
	out := string(e.Kind)
	if e.Kind == ExitTry {
		out = fmt.Sprintf("%s(completed=%t)", out, e.CallCompleted)
	}
	if e.Node != nil {
		out += fmt.Sprintf(" #%d %s", e.Node.ID(), e.Node.Kind())
	}
	return out
}

// EventFunc adapts a function receiving Events into a Sink.
type EventFunc func(Event)

func (f EventFunc) emit(kind EventKind, n decl.Node) { f(Event{Kind: kind, Node: n}) }

func (f EventFunc) EnterWhileLoop(l *decl.WhileLoop)         { f.emit(EnterWhile, l) }
func (f EventFunc) ExitWhileLoopCondition(l *decl.WhileLoop) { f.emit(ExitWhileCondition, l) }
func (f EventFunc) ExitWhileLoop(l *decl.WhileLoop)          { f.emit(ExitWhile, l) }
func (f EventFunc) EnterDoWhileLoop(l *decl.DoWhileLoop)     { f.emit(EnterDoWhile, l) }
func (f EventFunc) EnterDoWhileLoopCondition(l *decl.DoWhileLoop) {
	f.emit(EnterDoWhileCondition, l)
}
func (f EventFunc) ExitDoWhileLoop(l *decl.DoWhileLoop)          { f.emit(ExitDoWhile, l) }
func (f EventFunc) EnterWhenExpression(w *decl.WhenExpr)         { f.emit(EnterWhen, w) }
func (f EventFunc) EnterWhenBranchCondition(b *decl.WhenBranch)  { f.emit(EnterBranchCondition, b) }
func (f EventFunc) ExitWhenBranchCondition(b *decl.WhenBranch)   { f.emit(ExitBranchCondition, b) }
func (f EventFunc) ExitWhenBranchResult(b *decl.WhenBranch)      { f.emit(ExitBranchResult, b) }
func (f EventFunc) ExitWhenExpression(w *decl.WhenExpr)          { f.emit(ExitWhen, w) }
func (f EventFunc) EnterTryExpression(t *decl.TryExpr)           { f.emit(EnterTry, t) }
func (f EventFunc) ExitTryMainBlock(t *decl.TryExpr)             { f.emit(ExitMainBlock, t) }
func (f EventFunc) EnterCatchClause(c *decl.CatchClause)         { f.emit(EnterCatch, c) }
func (f EventFunc) ExitCatchClause(c *decl.CatchClause)          { f.emit(ExitCatch, c) }
func (f EventFunc) EnterFinallyBlock(t *decl.TryExpr)            { f.emit(EnterFinally, t) }
func (f EventFunc) ExitFinallyBlock(t *decl.TryExpr)             { f.emit(ExitFinally, t) }
func (f EventFunc) ExitJump(j decl.Jump)                         { f.emit(ExitJumpEvent, j) }
func (f EventFunc) ExitThrowExceptionNode(t *decl.ThrowExpr)     { f.emit(ExitThrow, t) }
func (f EventFunc) EnterElvis(e *decl.ElvisExpr)                 { f.emit(EnterElvisEvent, e) }
func (f EventFunc) ExitElvisLhs(e *decl.ElvisExpr)               { f.emit(ExitElvisLhsEvent, e) }
func (f EventFunc) ExitElvis(e *decl.ElvisExpr)                  { f.emit(ExitElvisEvent, e) }
func (f EventFunc) EnterFunction(t decl.ReturnTarget)            { f.emit(EnterFunctionEvent, t) }
func (f EventFunc) ExitFunction(t decl.ReturnTarget)             { f.emit(ExitFunctionEvent, t) }
func (f EventFunc) EnterStatement(stmt decl.Expr)                { f.emit(EnterStatementEvent, stmt) }
func (f EventFunc) ExitTryExpression(t *decl.TryExpr, callCompleted bool) {
	f(Event{Kind: ExitTry, Node: t, CallCompleted: callCompleted})
}

// NopSink ignores every notification.
var NopSink Sink = EventFunc(func(Event) {})
