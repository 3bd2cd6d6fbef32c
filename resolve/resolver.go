package resolve

import (
	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/flow"
	"github.com/panyam/flowres/logger"
)

type Option func(*Resolver)

func WithSink(s flow.Sink) Option {
	return func(r *Resolver) { r.collab.Sink = s }
}

func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) { r.collab.Logger = l }
}

func WithCompleter(c Completer) Option {
	return func(r *Resolver) { r.collab.Completer = c }
}

func WithSynthesizer(s CallSynthesizer) Option {
	return func(r *Resolver) { r.collab.Synthesizer = s }
}

func WithExhaustivenessChecker(c ExhaustivenessChecker) Option {
	return func(r *Resolver) { r.collab.Exhaustiveness = c }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) { r.collab.Metrics = m }
}

// WithMaxErrors caps the diagnostics ResolveTree reports.  0 means no cap.
func WithMaxErrors(n int) Option {
	return func(r *Resolver) { r.maxErrors = n }
}

// WithTrace calls fn before every expression is resolved.
func WithTrace(fn func(e decl.Expr, mode ResolutionMode)) Option {
	return func(r *Resolver) { r.trace = fn }
}

// Resolver resolves a whole tree.  Control-flow constructs go to a
// ControlFlowResolver, everything else is resolved here.
type Resolver struct {
	ctx       *Context
	cf        *ControlFlowResolver
	collab    Collaborators
	maxErrors int
	trace     func(e decl.Expr, mode ResolutionMode)
}

func NewResolver(tree *decl.Tree, opts ...Option) *Resolver {
	r := &Resolver{ctx: NewContext(tree)}
	for _, opt := range opts {
		opt(r)
	}
	r.collab.setDefaults()
	r.cf = NewControlFlowResolver(r, r.ctx, r.collab)
	return r
}

func (r *Resolver) Context() *Context                  { return r.ctx }
func (r *Resolver) ControlFlow() *ControlFlowResolver { return r.cf }
func (r *Resolver) Metrics() *Metrics                  { return r.collab.Metrics }

// ResolveTree resolves the root block of the tree, completes whatever was
// left postponed and collects the diagnostics of the pass.
func (r *Resolver) ResolveTree() *ErrorCollector {
	tree := r.ctx.Tree
	if tree.Root != nil {
		r.collab.Logger.Info("resolving %s (%d nodes)", tree.Name, tree.Len())
		tree.Root = r.ResolveBlockInCurrentScope(tree.Root, Independent)
	}
	r.Finish()
	errs := (&ErrorCollector{MaxErrors: r.maxErrors}).CollectDiagnostics(tree)
	if errs.HasErrors() {
		r.collab.Logger.Warn("%s: %d diagnostics", tree.Name, len(errs.Errors))
	}
	return errs
}

// Finish completes calls that were postponed and never picked up by an
// enclosing call.  It returns how many there were.
func (r *Resolver) Finish() int {
	pc, ok := r.collab.Completer.(interface{ CompletePostponed() int })
	if !ok {
		return 0
	}
	n := pc.CompletePostponed()
	if n > 0 {
		r.collab.Logger.Debug("completed %d postponed calls", n)
	}
	return n
}

// Resolve resolves e in the given mode and returns the resolved node.
func (r *Resolver) Resolve(e decl.Expr, mode ResolutionMode) decl.Expr {
	if e == nil {
		return nil
	}
	if r.trace != nil {
		r.trace(e, mode)
	}
	r.collab.Logger.Debug("resolve %s #%d %s", e.Kind(), e.ID(), mode)
	out := r.dispatch(e, mode)
	r.collab.Metrics.ConstructResolved(e.Kind())
	return out
}

func (r *Resolver) dispatch(e decl.Expr, mode ResolutionMode) decl.Expr {
	switch n := e.(type) {
	case *decl.WhileLoop:
		return r.cf.ResolveWhileLoop(n, mode)
	case *decl.DoWhileLoop:
		return r.cf.ResolveDoWhileLoop(n, mode)
	case *decl.WhenExpr:
		return r.cf.ResolveWhen(n, mode)
	case *decl.WhenBranch:
		return r.cf.ResolveWhenBranch(n, mode)
	case *decl.WhenSubjectExpr:
		return r.cf.ResolveWhenSubject(n, mode)
	case *decl.TryExpr:
		return r.cf.ResolveTry(n, mode)
	case *decl.CatchClause:
		return r.cf.ResolveCatch(n, mode)
	case *decl.ReturnExpr:
		return r.cf.ResolveReturn(n, mode)
	case *decl.BreakExpr:
		return r.cf.ResolveJump(n, mode)
	case *decl.ContinueExpr:
		return r.cf.ResolveJump(n, mode)
	case *decl.ThrowExpr:
		return r.cf.ResolveThrow(n, mode)
	case *decl.ElvisExpr:
		return r.cf.ResolveElvis(n, mode)

	case *decl.BlockExpr:
		var out *decl.BlockExpr
		r.ctx.Scopes.With(func() { out = r.ResolveBlockInCurrentScope(n, mode) })
		return out
	case *decl.LiteralExpr:
		r.resolveLiteral(n, mode)
	case *decl.IdentifierExpr:
		r.resolveIdentifier(n)
	case *decl.MemberAccessExpr:
		r.resolveMemberAccess(n)
	case *decl.BinaryExpr:
		r.resolveBinary(n)
	case *decl.UnaryExpr:
		r.resolveUnary(n)
	case *decl.CallExpr:
		r.resolveCall(n)
	case *decl.LambdaExpr:
		r.resolveLambda(n, mode)
		return n
	case *decl.VarDecl:
		r.resolveVarDecl(n)
		return n
	case *decl.AssignmentExpr:
		r.resolveAssignment(n)
		return n
	case *decl.FunctionDecl:
		r.resolveFunction(n)
		return n
	case *decl.EnumDecl:
		r.declareEnum(n)
		n.SetInferredType(decl.UnitType)
		return n
	case *decl.Annotation:
		r.resolveAnnotation(n)
		return n
	case *decl.TypeDecl:
		r.ResolveTypeRef(n)
		return n
	case *decl.ParamDecl:
		r.ResolveParameter(n)
		return n
	case *decl.ElseIfTrueCondition:
		n.SetInferredType(decl.BooleanType)
		return n
	default:
		decl.SetErrorType(e, decl.InferenceError, "cannot resolve %s", e.Kind())
		return e
	}
	r.checkExpected(e, mode)
	return e
}

// checkExpected flags a value whose type does not fit what its context
// expects.  Anything may be coerced to an expected Unit.
func (r *Resolver) checkExpected(e decl.Expr, mode ResolutionMode) {
	expected, actual := mode.ExpectedType(), e.InferredType()
	if expected == nil || actual == nil || actual.IsSubtypeOf(expected) {
		return
	}
	if mode.MayBeCoercionToUnitApplied() && expected.IsUnitOrFlexibleUnit() {
		return
	}
	decl.AttachError(e, decl.TypeMismatch, "type mismatch: inferred type is %s but %s was expected", actual, expected)
}

// ResolveBlockInCurrentScope resolves statements in order.  Functions and
// enums are declared before any statement so they can be used ahead of
// their declaration.  Only the last statement gets the block's mode.
func (r *Resolver) ResolveBlockInCurrentScope(b *decl.BlockExpr, mode ResolutionMode) *decl.BlockExpr {
	if b == nil {
		return nil
	}
	for _, stmt := range b.Statements {
		switch d := stmt.(type) {
		case *decl.FunctionDecl:
			r.declareFunction(d)
		case *decl.EnumDecl:
			r.declareEnum(d)
		}
	}

	last := len(b.Statements) - 1
	for i, stmt := range b.Statements {
		if stmt == nil {
			continue
		}
		stmtMode := Independent
		if i == last {
			stmtMode = mode
		}
		r.collab.Sink.EnterStatement(stmt)
		b.Statements[i] = r.Resolve(stmt, stmtMode)
	}

	if value := b.LastStatement(); value != nil && value.InferredType() != nil {
		b.SetInferredType(value.InferredType())
	} else {
		b.SetInferredType(decl.UnitType)
	}
	return b
}

func (r *Resolver) ResolveAnnotations(e decl.Expr, mode ResolutionMode) {
	for _, a := range e.Annotations() {
		r.resolveAnnotation(a)
	}
}

func (r *Resolver) resolveAnnotation(a *decl.Annotation) {
	for i, arg := range a.Args {
		a.Args[i] = r.Resolve(arg, Independent)
	}
	a.SetInferredType(decl.UnitType)
}

// ResolveTypeRef resolves builtin types and enums declared in scope.
func (r *Resolver) ResolveTypeRef(t *decl.TypeDecl) *decl.Type {
	if t == nil {
		return nil
	}
	if resolved := t.ResolvedType(); resolved != nil {
		return resolved
	}
	if builtin := decl.LookupBuiltinType(t.Name); builtin != nil {
		t.SetInferredType(builtin)
		return builtin
	}

	name, nullable := t.Name, false
	if n := len(name); n > 0 && name[n-1] == '?' {
		name, nullable = name[:n-1], true
	}
	if sym, ok := r.ctx.Scopes.Lookup(name); ok && sym.Kind == SymbolEnum {
		typ := decl.EnumType(sym.Enum).WithNullability(nullable)
		t.SetInferredType(typ)
		return typ
	}
	return decl.SetErrorType(t, decl.UnresolvedReference, "unresolved type '%s'", t.Name)
}

// ResolveParameter declares p in the innermost scope.  Untyped parameters
// are Any.
func (r *Resolver) ResolveParameter(p *decl.ParamDecl) {
	typ := decl.AnyType
	if p.TypeDecl != nil {
		typ = r.ResolveTypeRef(p.TypeDecl)
	}
	p.SetInferredType(typ)
	r.ctx.Scopes.Declare(&Symbol{Name: p.Name, Kind: SymbolParameter, Type: typ, Decl: p.ID()})
}
