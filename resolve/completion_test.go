package resolve

import (
	"testing"

	"github.com/panyam/flowres/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typedLit(tr *decl.Tree, t *decl.Type) *decl.LiteralExpr {
	l := tr.IntLit(0)
	l.SetInferredType(t)
	return l
}

func TestSynthesizeRejectsInvalidArguments(t *testing.T) {
	tr := decl.NewTree("test")
	g := &SyntheticCallGenerator{}
	w := tr.When(nil)

	assert.Nil(t, g.Synthesize(WhenCall, w, &w.Callee, nil))
	assert.Nil(t, g.Synthesize(WhenCall, w, &w.Callee, []decl.Expr{nil}))
	assert.Nil(t, g.Synthesize(WhenCall, w, &w.Callee, []decl.Expr{tr.IntLit(1)}), "implicit argument")

	call := g.Synthesize(WhenCall, w, &w.Callee, []decl.Expr{typedLit(tr, decl.IntType)})
	require.NotNil(t, call)
	assert.Equal(t, WhenCall, call.Kind)

	// a branch without a result block
	w.AddBranch(tr.Branch(tr.BoolLit(true), nil))
	assert.Nil(t, g.GenerateForWhen(w))

	try := tr.Try(nil)
	assert.Nil(t, g.GenerateForTry(try))
}

func TestCompleteIndependent(t *testing.T) {
	tr := decl.NewTree("test")
	m := NewMetrics()
	c := NewCallCompleter(m)
	w := tr.When(nil)
	call := &SyntheticCall{Kind: WhenCall, Node: w, Callee: &w.Callee, Args: []decl.Expr{typedLit(tr, decl.IntType), typedLit(tr, decl.LongType)}}

	res := c.Complete(call, Independent)
	assert.True(t, res.CallCompleted)
	assert.Same(t, w, res.Result)
	assert.True(t, w.InferredType().Equals(decl.NumberType))
	assert.True(t, w.Callee.Resolved)
	assert.Empty(t, c.Pending())
	assert.Equal(t, uint64(1), m.Count(`flowres_calls_completed_total`))
}

func TestCompleteDependentPostpones(t *testing.T) {
	tr := decl.NewTree("test")
	m := NewMetrics()
	c := NewCallCompleter(m)
	w := tr.When(nil)
	call := &SyntheticCall{Kind: WhenCall, Node: w, Callee: &w.Callee, Args: []decl.Expr{typedLit(tr, decl.StringType), typedLit(tr, decl.NullType)}}

	res := c.Complete(call, Dependent)
	assert.False(t, res.CallCompleted)
	assert.False(t, w.Callee.Resolved)
	assert.Equal(t, "String?", w.InferredType().String(), "provisional type")
	assert.Len(t, c.Pending(), 1)
	assert.Equal(t, uint64(1), m.Count(`flowres_calls_postponed_total`))

	assert.Equal(t, 1, c.CompletePostponed())
	assert.True(t, w.Callee.Resolved)
	assert.Empty(t, c.Pending())
	assert.Equal(t, 0, c.CompletePostponed())
}

func TestCompleteExpectedType(t *testing.T) {
	tr := decl.NewTree("test")
	c := NewCallCompleter(NewMetrics())

	w := tr.When(nil)
	call := &SyntheticCall{Kind: WhenCall, Node: w, Callee: &w.Callee, Args: []decl.Expr{typedLit(tr, decl.StringType)}}
	c.Complete(call, ExpectType(decl.IntType))
	require.Len(t, w.Diagnostics(), 1)
	assert.Equal(t, decl.TypeMismatch, w.Diagnostics()[0].Kind)
	assert.Equal(t, "type mismatch: inferred type is String but Int was expected", w.Diagnostics()[0].Message)

	// coercion to Unit swallows the value
	w2 := tr.When(nil)
	call = &SyntheticCall{Kind: WhenCall, Node: w2, Callee: &w2.Callee, Args: []decl.Expr{typedLit(tr, decl.StringType)}}
	c.Complete(call, ExpectTypeWithCoercion(decl.UnitType.AsFlexible(), true))
	assert.Empty(t, w2.Diagnostics())
	assert.True(t, w2.InferredType().IsUnit())
}

func TestCompleteElvisUsesNonNullLhs(t *testing.T) {
	tr := decl.NewTree("test")
	c := NewCallCompleter(NewMetrics())
	e := tr.Elvis(typedLit(tr, decl.StringType.WithNullability(true)), typedLit(tr, decl.StringType))
	call := (&SyntheticCallGenerator{}).GenerateForElvis(e)
	require.NotNil(t, call)

	c.Complete(call, Independent)
	assert.True(t, e.InferredType().Equals(decl.StringType))
}

func TestCompleteNestedPostponedCalls(t *testing.T) {
	tr := decl.NewTree("test")
	c := NewCallCompleter(NewMetrics())
	g := &SyntheticCallGenerator{}

	inner := tr.When(nil)
	innerCall := &SyntheticCall{Kind: WhenCall, Node: inner, Callee: &inner.Callee, Args: []decl.Expr{typedLit(tr, decl.IntType)}}
	c.Complete(innerCall, Dependent)
	require.Len(t, c.Pending(), 1)

	// the inner when is the value of the outer branch block
	outer := tr.When(nil, tr.Branch(tr.BoolLit(true), tr.Block(inner)), tr.Else(tr.Block(typedLit(tr, decl.LongType))))
	for _, b := range outer.Branches {
		b.Result.SetInferredType(b.Result.LastStatement().InferredType())
	}
	outerCall := g.GenerateForWhen(outer)
	require.NotNil(t, outerCall)

	c.Complete(outerCall, Independent)
	assert.True(t, outer.InferredType().Equals(decl.NumberType))
	assert.True(t, inner.Callee.Resolved)
	assert.Empty(t, inner.Diagnostics())
	assert.Empty(t, c.Pending())
}

type recordingCompleter struct {
	*CallCompleter
	modes []ResolutionMode
}

func (c *recordingCompleter) Complete(call *SyntheticCall, mode ResolutionMode) CompletionResult {
	c.modes = append(c.modes, mode)
	return c.CallCompleter.Complete(call, mode)
}

func TestResolverUsesGivenCompleter(t *testing.T) {
	tr := decl.NewTree("test")
	m := NewMetrics()
	c := &recordingCompleter{CallCompleter: NewCallCompleter(m)}
	r := NewResolver(tr, WithCompleter(c), WithMetrics(m))

	w := tr.If(tr.BoolLit(true), tr.Block(tr.IntLit(1)), tr.Block(tr.IntLit(2)))
	r.Resolve(w, Dependent)
	require.Equal(t, []ResolutionMode{Dependent}, c.modes)
	assert.False(t, w.Callee.Resolved)

	assert.Equal(t, 1, r.Finish(), "postponed calls are completed by the given completer")
	assert.True(t, w.Callee.Resolved)
	assert.True(t, w.InferredType().Equals(decl.IntType))
}
