package flow

import "github.com/panyam/flowres/decl"

// Sink is notified at the boundaries of every control-flow construct the
// resolver walks.  Calls arrive in resolution order, which is the order
// a control-flow graph has to be built in.
type Sink interface {
	EnterWhileLoop(loop *decl.WhileLoop)
	ExitWhileLoopCondition(loop *decl.WhileLoop)
	ExitWhileLoop(loop *decl.WhileLoop)

	EnterDoWhileLoop(loop *decl.DoWhileLoop)
	EnterDoWhileLoopCondition(loop *decl.DoWhileLoop)
	ExitDoWhileLoop(loop *decl.DoWhileLoop)

	EnterWhenExpression(w *decl.WhenExpr)
	EnterWhenBranchCondition(b *decl.WhenBranch)
	ExitWhenBranchCondition(b *decl.WhenBranch)
	ExitWhenBranchResult(b *decl.WhenBranch)
	ExitWhenExpression(w *decl.WhenExpr)

	EnterTryExpression(t *decl.TryExpr)
	ExitTryMainBlock(t *decl.TryExpr)
	EnterCatchClause(c *decl.CatchClause)
	ExitCatchClause(c *decl.CatchClause)
	EnterFinallyBlock(t *decl.TryExpr)
	ExitFinallyBlock(t *decl.TryExpr)
	ExitTryExpression(t *decl.TryExpr, callCompleted bool)

	ExitJump(j decl.Jump)
	ExitThrowExceptionNode(t *decl.ThrowExpr)

	EnterElvis(e *decl.ElvisExpr)
	ExitElvisLhs(e *decl.ElvisExpr)
	ExitElvis(e *decl.ElvisExpr)

	// Functions and lambdas open a graph of their own.
	EnterFunction(f decl.ReturnTarget)
	ExitFunction(f decl.ReturnTarget)

	// EnterStatement precedes every statement of a block.
	EnterStatement(stmt decl.Expr)
}

// MultiSink fans every notification out to all of its sinks in order.
type MultiSink []Sink

func (m MultiSink) each(fn func(Sink)) {
	for _, s := range m {
		fn(s)
	}
}

func (m MultiSink) EnterWhileLoop(l *decl.WhileLoop) { m.each(func(s Sink) { s.EnterWhileLoop(l) }) }
func (m MultiSink) ExitWhileLoopCondition(l *decl.WhileLoop) {
	m.each(func(s Sink) { s.ExitWhileLoopCondition(l) })
}
func (m MultiSink) ExitWhileLoop(l *decl.WhileLoop)     { m.each(func(s Sink) { s.ExitWhileLoop(l) }) }
func (m MultiSink) EnterDoWhileLoop(l *decl.DoWhileLoop) { m.each(func(s Sink) { s.EnterDoWhileLoop(l) }) }
func (m MultiSink) EnterDoWhileLoopCondition(l *decl.DoWhileLoop) {
	m.each(func(s Sink) { s.EnterDoWhileLoopCondition(l) })
}
func (m MultiSink) ExitDoWhileLoop(l *decl.DoWhileLoop)   { m.each(func(s Sink) { s.ExitDoWhileLoop(l) }) }
func (m MultiSink) EnterWhenExpression(w *decl.WhenExpr) { m.each(func(s Sink) { s.EnterWhenExpression(w) }) }
func (m MultiSink) EnterWhenBranchCondition(b *decl.WhenBranch) {
	m.each(func(s Sink) { s.EnterWhenBranchCondition(b) })
}
func (m MultiSink) ExitWhenBranchCondition(b *decl.WhenBranch) {
	m.each(func(s Sink) { s.ExitWhenBranchCondition(b) })
}
func (m MultiSink) ExitWhenBranchResult(b *decl.WhenBranch) {
	m.each(func(s Sink) { s.ExitWhenBranchResult(b) })
}
func (m MultiSink) ExitWhenExpression(w *decl.WhenExpr) { m.each(func(s Sink) { s.ExitWhenExpression(w) }) }
func (m MultiSink) EnterTryExpression(t *decl.TryExpr)  { m.each(func(s Sink) { s.EnterTryExpression(t) }) }
func (m MultiSink) ExitTryMainBlock(t *decl.TryExpr)    { m.each(func(s Sink) { s.ExitTryMainBlock(t) }) }
func (m MultiSink) EnterCatchClause(c *decl.CatchClause) {
	m.each(func(s Sink) { s.EnterCatchClause(c) })
}
func (m MultiSink) ExitCatchClause(c *decl.CatchClause) { m.each(func(s Sink) { s.ExitCatchClause(c) }) }
func (m MultiSink) EnterFinallyBlock(t *decl.TryExpr)   { m.each(func(s Sink) { s.EnterFinallyBlock(t) }) }
func (m MultiSink) ExitFinallyBlock(t *decl.TryExpr)    { m.each(func(s Sink) { s.ExitFinallyBlock(t) }) }
func (m MultiSink) ExitTryExpression(t *decl.TryExpr, callCompleted bool) {
	m.each(func(s Sink) { s.ExitTryExpression(t, callCompleted) })
}
func (m MultiSink) ExitJump(j decl.Jump) { m.each(func(s Sink) { s.ExitJump(j) }) }
func (m MultiSink) ExitThrowExceptionNode(t *decl.ThrowExpr) {
	m.each(func(s Sink) { s.ExitThrowExceptionNode(t) })
}
func (m MultiSink) EnterElvis(e *decl.ElvisExpr)        { m.each(func(s Sink) { s.EnterElvis(e) }) }
func (m MultiSink) ExitElvisLhs(e *decl.ElvisExpr)      { m.each(func(s Sink) { s.ExitElvisLhs(e) }) }
func (m MultiSink) ExitElvis(e *decl.ElvisExpr)         { m.each(func(s Sink) { s.ExitElvis(e) }) }
func (m MultiSink) EnterFunction(f decl.ReturnTarget)   { m.each(func(s Sink) { s.EnterFunction(f) }) }
func (m MultiSink) ExitFunction(f decl.ReturnTarget)    { m.each(func(s Sink) { s.ExitFunction(f) }) }
func (m MultiSink) EnterStatement(stmt decl.Expr)        { m.each(func(s Sink) { s.EnterStatement(stmt) }) }
