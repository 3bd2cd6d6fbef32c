package resolve

import (
	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/flow"
	"github.com/panyam/flowres/logger"
)

// Collaborators of the control-flow resolver.  Nil fields get defaults.
type Collaborators struct {
	Sink           flow.Sink
	Synthesizer    CallSynthesizer
	Completer      Completer
	Exhaustiveness ExhaustivenessChecker
	Metrics        *Metrics
	Logger         logger.Logger
}

func (c *Collaborators) setDefaults() {
	if c.Sink == nil {
		c.Sink = flow.NopSink
	}
	if c.Synthesizer == nil {
		c.Synthesizer = &SyntheticCallGenerator{}
	}
	if c.Metrics == nil {
		c.Metrics = DefaultMetrics()
	}
	if c.Completer == nil {
		c.Completer = NewCallCompleter(c.Metrics)
	}
	if c.Exhaustiveness == nil {
		c.Exhaustiveness = &WhenExhaustivenessChecker{}
	}
	if c.Logger == nil {
		c.Logger = logger.For("resolve")
	}
}

// ControlFlowResolver resolves loops, when, try, jumps and elvis.  It decides
// the order sub-expressions are resolved in and the mode each one gets, and
// tells the flow sink where every construct begins and ends.  The
// sub-expressions themselves are resolved by an ExpressionResolver.
type ControlFlowResolver struct {
	exprs ExpressionResolver
	ctx   *Context
	Collaborators
}

func NewControlFlowResolver(exprs ExpressionResolver, ctx *Context, c Collaborators) *ControlFlowResolver {
	c.setDefaults()
	return &ControlFlowResolver{exprs: exprs, ctx: ctx, Collaborators: c}
}

// ------------------------------- Loops -------------------------------

// ResolveWhileLoop resolves a loop statement.  Loops are never used as
// values, so whatever the context expects the loop has type Unit.
func (r *ControlFlowResolver) ResolveWhileLoop(loop *decl.WhileLoop, mode ResolutionMode) decl.Expr {
	r.Sink.EnterWhileLoop(loop)
	loop.Condition = r.exprs.Resolve(loop.Condition, ExpectType(decl.BooleanType))
	r.Sink.ExitWhileLoopCondition(loop)
	loop.Block = r.resolveBlock(loop.Block, Independent)
	r.Sink.ExitWhileLoop(loop)
	r.exprs.ResolveAnnotations(loop, Independent)
	r.loopType(loop, mode)
	return loop
}

// ResolveDoWhileLoop resolves the body and the condition in one scope so the
// condition sees what the body declares.
func (r *ControlFlowResolver) ResolveDoWhileLoop(loop *decl.DoWhileLoop, mode ResolutionMode) decl.Expr {
	r.ctx.Scopes.With(func() {
		r.Sink.EnterDoWhileLoop(loop)
		if loop.Block != nil {
			loop.Block = r.exprs.ResolveBlockInCurrentScope(loop.Block, Independent)
		}
		r.Sink.EnterDoWhileLoopCondition(loop)
		loop.Condition = r.exprs.Resolve(loop.Condition, ExpectType(decl.BooleanType))
		r.Sink.ExitDoWhileLoop(loop)
		r.exprs.ResolveAnnotations(loop, Independent)
	})
	r.loopType(loop, mode)
	return loop
}

func (r *ControlFlowResolver) loopType(loop decl.Expr, mode ResolutionMode) {
	loop.SetInferredType(decl.UnitType)
	if mode.Kind() == WithExpectedType && !mode.ExpectedType().IsUnitOrFlexibleUnit() {
		r.Logger.Debug("%s #%d used where %s is expected", loop.Kind(), loop.ID(), mode.ExpectedType())
	}
}

// ------------------------------- When expressions -------------------------------

func (r *ControlFlowResolver) ResolveWhen(w *decl.WhenExpr, mode ResolutionMode) decl.Expr {
	if w.Callee.Resolved && !decl.IsImplicit(w) {
		return w
	}
	r.exprs.ResolveAnnotations(w, Independent)
	r.Sink.EnterWhenExpression(w)
	r.ctx.WithWhenExpression(w, func() {
		switch {
		case w.SubjectVariable != nil:
			r.exprs.Resolve(w.SubjectVariable, Independent)
			w.Subject = w.SubjectVariable.Value
		case w.Subject != nil:
			w.Subject = r.exprs.Resolve(w.Subject, Independent)
		}

		switch {
		case len(w.Branches) == 0:
		case isOneBranch(w):
			r.resolveBranches(w, Independent)
			if first := w.Branches[0]; first != nil && first.Result != nil {
				w.SetInferredType(first.Result.InferredType())
			}
		default:
			r.resolveBranches(w, Dependent)
			call := r.Synthesizer.GenerateForWhen(w)
			if call == nil {
				r.Exhaustiveness.CheckExhaustive(w)
				r.Sink.ExitWhenExpression(w)
				r.inferenceError(w, "Can't resolve when expression")
				return
			}
			r.Completer.Complete(call, mode)
		}

		_, exhaustive := r.Exhaustiveness.CheckExhaustive(w)
		r.Sink.ExitWhenExpression(w)
		if !exhaustive {
			w.SetInferredType(decl.UnitType)
		}
	})
	return w
}

// isOneBranch is true for a single branch, and for two branches where the
// second is the else the front end adds to an `if` without one: a sourced
// always-true condition with an empty block.
func isOneBranch(w *decl.WhenExpr) bool {
	if len(w.Branches) == 1 {
		return true
	}
	if len(w.Branches) > 2 {
		return false
	}
	last := w.Branches[len(w.Branches)-1]
	return last != nil && last.HasSource() && last.IsElse() && last.Result != nil && last.Result.IsEmpty()
}

func (r *ControlFlowResolver) resolveBranches(w *decl.WhenExpr, mode ResolutionMode) {
	for i, b := range w.Branches {
		if b == nil {
			continue
		}
		if resolved, ok := r.exprs.Resolve(b, mode).(*decl.WhenBranch); ok {
			w.Branches[i] = resolved
		}
	}
}

func (r *ControlFlowResolver) ResolveWhenBranch(b *decl.WhenBranch, mode ResolutionMode) decl.Expr {
	r.Sink.EnterWhenBranchCondition(b)
	b.Condition = r.exprs.Resolve(b.Condition, ExpectType(decl.BooleanType))
	r.Sink.ExitWhenBranchCondition(b)
	b.Result = r.resolveBlock(b.Result, mode)
	r.Sink.ExitWhenBranchResult(b)
	if b.Result != nil {
		b.SetInferredType(b.Result.InferredType())
	}
	return b
}

// ResolveWhenSubject gives a subject reference the type of its when's
// subject.
func (r *ControlFlowResolver) ResolveWhenSubject(s *decl.WhenSubjectExpr, mode ResolutionMode) decl.Expr {
	if parent := r.ctx.WhenByID(s.WhenRef); parent != nil {
		if t := parent.SubjectType(); t != nil {
			s.SetInferredType(t)
		}
	}
	return s
}

// ------------------------------- Try/catch expressions -------------------------------

func (r *ControlFlowResolver) ResolveTry(t *decl.TryExpr, mode ResolutionMode) decl.Expr {
	if t.Callee.Resolved && !decl.IsImplicit(t) {
		return t
	}
	r.exprs.ResolveAnnotations(t, Independent)
	r.Sink.EnterTryExpression(t)
	t.TryBlock = r.resolveBlock(t.TryBlock, Dependent)
	r.Sink.ExitTryMainBlock(t)
	for i, c := range t.Catches {
		if c != nil {
			t.Catches[i] = r.ResolveCatch(c, Dependent)
		}
	}

	callCompleted := false
	if call := r.Synthesizer.GenerateForTry(t); call != nil {
		callCompleted = r.Completer.Complete(call, mode).CallCompleted
	} else {
		r.inferenceError(t, "Can't resolve try expression")
	}

	if t.FinallyBlock != nil {
		r.Sink.EnterFinallyBlock(t)
		t.FinallyBlock = r.resolveBlock(t.FinallyBlock, Independent)
		r.Sink.ExitFinallyBlock(t)
	}
	r.Sink.ExitTryExpression(t, callCompleted)
	return t
}

func (r *ControlFlowResolver) ResolveCatch(c *decl.CatchClause, mode ResolutionMode) *decl.CatchClause {
	r.Sink.EnterCatchClause(c)
	if p := c.Parameter; p != nil && p.TypeDecl != nil {
		t := r.exprs.ResolveTypeRef(p.TypeDecl)
		if t != nil && !t.IsError() && !t.IsSubtypeOf(decl.ThrowableType) {
			decl.AttachError(p, decl.ThrowableExpected, "catch parameter type %s is not a subtype of Throwable", t)
		}
	}
	r.ctx.Scopes.With(func() {
		if c.Parameter != nil {
			r.exprs.ResolveParameter(c.Parameter)
		}
		c.Block = r.resolveBlock(c.Block, mode)
	})
	if c.Block != nil {
		c.SetInferredType(c.Block.InferredType())
	}
	r.Sink.ExitCatchClause(c)
	return c
}

// ------------------------------- Jumps -------------------------------

// ResolveJump resolves the payload of a jump in the given mode.  Every jump
// has type Nothing.
func (r *ControlFlowResolver) ResolveJump(j decl.Jump, mode ResolutionMode) decl.Expr {
	switch jump := j.(type) {
	case *decl.ReturnExpr:
		payloadType := decl.UnitType
		if jump.Result != nil {
			jump.Result = r.exprs.Resolve(jump.Result, mode)
			payloadType = jump.Result.InferredType()
		}
		if _, ok := r.ctx.Node(jump.Target).(decl.ReturnTarget); ok {
			r.ctx.RecordReturn(jump.Target, payloadType)
		} else {
			decl.AttachError(jump, decl.ReturnNotAllowed, "'return' is not allowed here")
		}
	case *decl.BreakExpr, *decl.ContinueExpr:
		if _, ok := r.ctx.Node(j.TargetID()).(decl.Loop); !ok {
			decl.AttachError(j, decl.JumpOutsideLoop, "'%s' is only allowed inside a loop", j.Kind())
		}
	}
	j.SetInferredType(decl.NothingType)
	r.Sink.ExitJump(j)
	return j
}

// ResolveReturn expects the return type of the target, unless the target is
// a lambda whose own type is still being inferred, whose returns stay
// dependent.
func (r *ControlFlowResolver) ResolveReturn(ret *decl.ReturnExpr, mode ResolutionMode) decl.Expr {
	returnMode := Independent
	if target, ok := r.ctx.Node(ret.Target).(decl.ReturnTarget); ok {
		switch {
		case r.ctx.IsAnalyzedInDependentContext(target.ID()):
			returnMode = Dependent
		case target.TargetReturnType() != nil:
			returnMode = ExpectType(target.TargetReturnType())
		}
	}
	return r.ResolveJump(ret, returnMode)
}

func (r *ControlFlowResolver) ResolveThrow(t *decl.ThrowExpr, mode ResolutionMode) decl.Expr {
	if t.Exception != nil {
		t.Exception = r.exprs.Resolve(t.Exception, Independent)
		if typ := t.Exception.InferredType(); typ != nil && !typ.IsSubtypeOf(decl.ThrowableType) {
			decl.AttachError(t, decl.ThrowableExpected, "thrown expression has type %s which is not a subtype of Throwable", typ)
		}
	}
	t.SetInferredType(decl.NothingType)
	r.Sink.ExitThrowExceptionNode(t)
	return t
}

// ------------------------------- Elvis -------------------------------

// ResolveElvis expects a nullable left side: a non-null left side is fine
// but the point of ?: is that it may be null.  The right side gets the
// expected type unchanged.
func (r *ControlFlowResolver) ResolveElvis(e *decl.ElvisExpr, mode ResolutionMode) decl.Expr {
	if e.Callee.Resolved {
		return e
	}
	r.exprs.ResolveAnnotations(e, mode)

	expected := mode.ExpectedType()
	coercion := mode.MayBeCoercionToUnitApplied()

	lhsMode := ExpectType(expected.WithNullability(true))
	if coercion && expected.IsUnitOrFlexibleUnit() {
		lhsMode = ExpectTypeWithCoercion(expected, true)
	}
	r.Sink.EnterElvis(e)
	e.Lhs = r.exprs.Resolve(e.Lhs, lhsMode)
	r.Sink.ExitElvisLhs(e)

	e.Rhs = r.exprs.Resolve(e.Rhs, ExpectTypeWithCoercion(expected, coercion))

	if call := r.Synthesizer.GenerateForElvis(e); call != nil {
		r.Completer.Complete(call, mode)
	} else {
		r.inferenceError(e, "Can't resolve ?: operator call")
	}
	r.Sink.ExitElvis(e)
	return e
}

func (r *ControlFlowResolver) resolveBlock(b *decl.BlockExpr, mode ResolutionMode) *decl.BlockExpr {
	if b == nil {
		return nil
	}
	if resolved, ok := r.exprs.Resolve(b, mode).(*decl.BlockExpr); ok {
		return resolved
	}
	return b
}

func (r *ControlFlowResolver) inferenceError(e decl.Expr, msg string) {
	decl.SetErrorType(e, decl.InferenceError, "%s", msg)
	r.Metrics.InferenceError(e.Kind())
	r.Logger.Warn("%s at %s (#%d)", msg, e.Pos().LineColStr(), e.ID())
}
