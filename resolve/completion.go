package resolve

import (
	"fmt"

	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/logger"
)

type CallKind int

const (
	WhenCall CallKind = iota
	TryCall
	ElvisCall
)

func (k CallKind) String() string {
	switch k {
	case WhenCall:
		return "when"
	case TryCall:
		return "try"
	case ElvisCall:
		return "elvis"
	}
	return fmt.Sprintf("CallKind(%d)", int(k))
}

// SyntheticCall is the virtual call a when, try or elvis is typed through.
// Its arguments are the expressions whose values the construct can produce.
type SyntheticCall struct {
	Kind   CallKind
	Node   decl.Expr
	Callee *decl.CalleeReference
	Args   []decl.Expr
}

type CompletionResult struct {
	Result decl.Expr

	// CallCompleted is false when the type was only fixed provisionally and
	// an enclosing call still has to complete it.
	CallCompleted bool
}

// SyntheticCallGenerator builds synthetic calls from resolved constructs.
type SyntheticCallGenerator struct{}

// Synthesize returns nil without arguments or when an argument is missing
// or has no type yet.
func (g *SyntheticCallGenerator) Synthesize(kind CallKind, node decl.Expr, callee *decl.CalleeReference, args []decl.Expr) *SyntheticCall {
	if len(args) == 0 {
		return nil
	}
	for _, arg := range args {
		if arg == nil || decl.IsImplicit(arg) {
			return nil
		}
	}
	return &SyntheticCall{Kind: kind, Node: node, Callee: callee, Args: args}
}

func (g *SyntheticCallGenerator) GenerateForWhen(w *decl.WhenExpr) *SyntheticCall {
	args := make([]decl.Expr, 0, len(w.Branches))
	for _, b := range w.Branches {
		if b == nil || b.Result == nil {
			return nil
		}
		args = append(args, b.Result)
	}
	return g.Synthesize(WhenCall, w, &w.Callee, args)
}

func (g *SyntheticCallGenerator) GenerateForTry(t *decl.TryExpr) *SyntheticCall {
	if t.TryBlock == nil {
		return nil
	}
	args := []decl.Expr{t.TryBlock}
	for _, c := range t.Catches {
		if c == nil || c.Block == nil {
			return nil
		}
		args = append(args, c.Block)
	}
	return g.Synthesize(TryCall, t, &t.Callee, args)
}

func (g *SyntheticCallGenerator) GenerateForElvis(e *decl.ElvisExpr) *SyntheticCall {
	if e.Lhs == nil || e.Rhs == nil {
		return nil
	}
	return g.Synthesize(ElvisCall, e, &e.Callee, []decl.Expr{e.Lhs, e.Rhs})
}

// CallCompleter types synthetic calls with the common supertype of their
// arguments.
//
// Calls completed in dependent mode only get a provisional type and are
// queued.  When the call they are an argument of completes, they are
// completed with its result as the expected type.  Whatever is still queued
// at the end of a pass is completed by CompletePostponed.
type CallCompleter struct {
	log       logger.Logger
	metrics   *Metrics
	postponed map[decl.NodeID]*SyntheticCall
	order     []*SyntheticCall
}

func NewCallCompleter(m *Metrics) *CallCompleter {
	if m == nil {
		m = DefaultMetrics()
	}
	return &CallCompleter{
		log:       logger.For("complete"),
		metrics:   m,
		postponed: map[decl.NodeID]*SyntheticCall{},
	}
}

func (c *CallCompleter) Complete(call *SyntheticCall, mode ResolutionMode) CompletionResult {
	result := c.unify(call)
	if mode.Kind() == ContextDependent {
		call.Node.SetInferredType(result)
		c.postpone(call)
		return CompletionResult{Result: call.Node, CallCompleted: false}
	}
	c.complete(call, result, mode)
	return CompletionResult{Result: call.Node, CallCompleted: true}
}

// Pending returns the queued calls in the order they were postponed.
func (c *CallCompleter) Pending() (out []*SyntheticCall) {
	for _, call := range c.order {
		if _, ok := c.postponed[call.Node.ID()]; ok {
			out = append(out, call)
		}
	}
	return
}

// CompletePostponed completes every queued call context independently,
// outermost first, and returns how many it completed.
func (c *CallCompleter) CompletePostponed() int {
	count := 0
	for i := len(c.order) - 1; i >= 0; i-- {
		call := c.order[i]
		if _, ok := c.postponed[call.Node.ID()]; !ok {
			continue
		}
		c.complete(call, c.unify(call), Independent)
		count++
	}
	c.order = nil
	return count
}

func (c *CallCompleter) postpone(call *SyntheticCall) {
	if _, ok := c.postponed[call.Node.ID()]; !ok {
		c.order = append(c.order, call)
	}
	c.postponed[call.Node.ID()] = call
	c.metrics.CallPostponed()
	c.log.Debug("postponed %s call #%d with provisional type %s", call.Kind, call.Node.ID(), call.Node.InferredType())
}

func (c *CallCompleter) unify(call *SyntheticCall) *decl.Type {
	// A when already found not to be exhaustive stays Unit.
	if w, ok := call.Node.(*decl.WhenExpr); ok && w.Exhaustiveness.Checked && !w.Exhaustiveness.Exhaustive {
		return decl.UnitType
	}
	types := make([]*decl.Type, len(call.Args))
	for i, arg := range call.Args {
		t := arg.InferredType()
		if call.Kind == ElvisCall && i == 0 {
			t = t.MakeNonNull()
		}
		types[i] = t
	}
	if result := decl.CommonSuperType(types...); result != nil {
		return result
	}
	return decl.UnitType
}

func (c *CallCompleter) complete(call *SyntheticCall, result *decl.Type, mode ResolutionMode) {
	delete(c.postponed, call.Node.ID())

	if expected := mode.ExpectedType(); expected != nil && !result.IsSubtypeOf(expected) {
		if mode.MayBeCoercionToUnitApplied() && expected.IsUnitOrFlexibleUnit() {
			result = decl.UnitType
		} else {
			decl.AttachError(call.Node, decl.TypeMismatch, "type mismatch: inferred type is %s but %s was expected", result, expected)
		}
	}
	call.Node.SetInferredType(result)
	call.Callee.Resolved = true
	c.metrics.CallCompleted()
	c.log.Debug("completed %s call #%d as %s", call.Kind, call.Node.ID(), result)

	// Arguments that were postponed now have their expected type.
	for i, arg := range call.Args {
		value := valueOf(arg)
		nested, ok := c.postponed[value.ID()]
		if !ok {
			continue
		}
		expected := result
		if call.Kind == ElvisCall && i == 0 {
			expected = expected.WithNullability(true)
		}
		c.complete(nested, c.unify(nested), ExpectTypeWithCoercion(expected, mode.MayBeCoercionToUnitApplied()))
	}
}

// valueOf finds the expression whose value a block evaluates to.
func valueOf(e decl.Expr) decl.Expr {
	if b, ok := e.(*decl.BlockExpr); ok && !b.IsEmpty() {
		return valueOf(b.LastStatement())
	}
	return e
}
