package resolve

import "github.com/panyam/flowres/decl"

// ExpressionResolver resolves arbitrary expressions.  The control-flow
// resolver hands every sub-expression back to it.
type ExpressionResolver interface {
	Resolve(e decl.Expr, mode ResolutionMode) decl.Expr

	// ResolveBlockInCurrentScope resolves the statements of b without
	// opening a scope for them.
	ResolveBlockInCurrentScope(b *decl.BlockExpr, mode ResolutionMode) *decl.BlockExpr

	ResolveAnnotations(e decl.Expr, mode ResolutionMode)
	ResolveTypeRef(t *decl.TypeDecl) *decl.Type
	ResolveParameter(p *decl.ParamDecl)
}

// CallSynthesizer turns the candidate results of a construct into a
// synthetic call.  It returns nil when the construct has an invalid shape.
type CallSynthesizer interface {
	Synthesize(kind CallKind, node decl.Expr, callee *decl.CalleeReference, args []decl.Expr) *SyntheticCall
	GenerateForWhen(w *decl.WhenExpr) *SyntheticCall
	GenerateForTry(t *decl.TryExpr) *SyntheticCall
	GenerateForElvis(e *decl.ElvisExpr) *SyntheticCall
}

// Completer fixes the type of a synthetic call.
type Completer interface {
	Complete(call *SyntheticCall, mode ResolutionMode) CompletionResult
}

// ExhaustivenessChecker decides whether the branches of a when cover every
// value of its subject and records the answer on the node.
type ExhaustivenessChecker interface {
	CheckExhaustive(w *decl.WhenExpr) (*decl.WhenExpr, bool)
}
