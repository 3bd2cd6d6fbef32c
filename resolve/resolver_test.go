package resolve

import (
	"bytes"
	"testing"

	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralsAndOperators(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	long := tr.IntLit(1)
	sum := tr.Binary(tr.IntLit(1), "+", tr.LongLit(2))
	mixed := tr.Binary(tr.IntLit(1), "*", tr.DoubleLit(2.5))
	concat := tr.Binary(tr.StringLit("a"), "+", tr.IntLit(1))
	cmpr := tr.Binary(tr.IntLit(1), "<", tr.IntLit(2))
	neg := tr.Unary("-", tr.IntLit(3))
	not := tr.Unary("!", tr.BoolLit(false))
	tr.SetRoot(
		tr.TypedVal("a", "Long", long),
		tr.Val("b", sum), tr.Val("c", mixed), tr.Val("d", concat),
		tr.Val("e", cmpr), tr.Val("f", neg), tr.Val("g", not),
	)

	r, _, _ := newTestResolver(tr)
	errs := r.ResolveTree()
	assert.False(t, errs.HasErrors(), "%v", errs.Errors)

	assert.True(t, long.InferredType().Equals(decl.LongType), "int literal takes an expected Long")
	assert.True(t, sum.InferredType().Equals(decl.LongType))
	assert.True(t, mixed.InferredType().Equals(decl.DoubleType))
	assert.True(t, concat.InferredType().Equals(decl.StringType))
	assert.True(t, cmpr.InferredType().IsBoolean())
	assert.True(t, neg.InferredType().Equals(decl.IntType))
	assert.True(t, not.InferredType().IsBoolean())
}

func TestTypeErrors(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	tr.SetRoot(
		tr.TypedVal("a", "Int", tr.StringLit("x")),
		tr.Ident("missing"),
		tr.Binary(tr.IntLit(1), "<", tr.StringLit("a")),
		tr.Unary("!", tr.IntLit(1)),
		tr.TypedVal("w", "Widget", tr.IntLit(1)),
		tr.Call("nothing"),
	)

	r, _, _ := newTestResolver(tr)
	errs := r.ResolveTree()
	counts := errs.CountByKind()
	assert.Equal(t, 3, counts[decl.TypeMismatch])
	assert.Equal(t, 3, counts[decl.UnresolvedReference])
}

func TestErrorTypesDoNotCascade(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	sum := tr.Binary(tr.Ident("missing"), "+", tr.IntLit(1))
	tr.SetRoot(tr.TypedVal("x", "Int", sum))

	r, _, _ := newTestResolver(tr)
	errs := r.ResolveTree()
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, decl.UnresolvedReference, errs.Errors[0].Kind)
	assert.True(t, sum.InferredType().IsError())
}

func TestFunctionsAreHoisted(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	call := tr.Call("g", tr.IntLit(1))
	g := tr.Function("g", "String", tr.Param("x", "Int"))
	g.Body.Statements = []decl.Expr{tr.Return(g, tr.StringLit("s"))}
	v := tr.Val("v", call)
	tr.SetRoot(v, g)

	r, _, modes := newTestResolver(tr)
	errs := r.ResolveTree()
	assert.False(t, errs.HasErrors(), "%v", errs.Errors)
	assert.True(t, v.VarType.Equals(decl.StringType))
	assert.True(t, modes[call.Args[0].ID()].ExpectedType().Equals(decl.IntType))
	assert.True(t, g.InferredType().IsUnit())

	bad := tr.Call("g")
	r.Resolve(bad, Independent)
	require.Len(t, bad.Diagnostics(), 1)
	assert.Equal(t, "'g' expects 1 arguments but got 0", bad.Diagnostics()[0].Message)
}

func TestEnumsAndLambdas(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	color := tr.Enum("Color", "RED", "GREEN")
	red := tr.Val("c", tr.Member(tr.Ident("Color"), "RED"))
	bad := tr.Member(tr.Ident("Color"), "PURPLE")

	lambda := tr.Lambda("", "", tr.Param("n", "Int"))
	lambda.Body.Statements = []decl.Expr{tr.Binary(tr.Ident("n"), "+", tr.IntLit(1))}
	inc := tr.Val("inc", lambda)
	applied := tr.Call("inc", tr.IntLit(2))

	tr.SetRoot(red, color, bad, inc, applied)

	r, rec, _ := newTestResolver(tr)
	errs := r.ResolveTree()
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, bad.ID(), errs.Errors[0].Node)

	assert.Equal(t, "Color", red.VarType.String())
	assert.Equal(t, "(Int) -> Int", inc.VarType.String())
	assert.True(t, applied.InferredType().Equals(decl.IntType))
	assert.Len(t, rec.EventsFor(lambda.ID()), 2, "enter and exit of the lambda")
}

func TestBlockTypeIsLastStatement(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	b := tr.Block(tr.Val("x", tr.IntLit(1)), tr.Ident("x"))
	empty := tr.Block()
	decls := tr.Block(tr.Val("y", tr.IntLit(1)))

	r, _, _ := newTestResolver(tr)
	r.Resolve(b, Independent)
	r.Resolve(empty, Independent)
	r.Resolve(decls, Independent)
	assert.True(t, b.InferredType().Equals(decl.IntType))
	assert.True(t, empty.InferredType().IsUnit())
	assert.True(t, decls.InferredType().IsUnit())

	_, visible := r.Context().Scopes.Lookup("x")
	assert.False(t, visible)
}

func TestAnnotationsAreResolved(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	w := tr.If(tr.BoolLit(true), tr.Block(tr.IntLit(1)), tr.Block(tr.IntLit(2)))
	a := tr.Annotate(w, "Suppress", tr.StringLit("x"), tr.Ident("unknown"))
	tr.SetRoot(w)

	r, _, modes := newTestResolver(tr)
	errs := r.ResolveTree()
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, decl.UnresolvedReference, errs.Errors[0].Kind)
	assert.True(t, a.Args[0].InferredType().Equals(decl.StringType))
	assert.Equal(t, Independent, modes[a.Args[0].ID()])
}

func TestMetrics(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	inner := tr.If(tr.BoolLit(true), tr.Block(tr.IntLit(1)), tr.Block(tr.IntLit(2)))
	tr.SetRoot(
		tr.Val("x", tr.If(tr.BoolLit(false), tr.Block(inner), tr.Block(tr.IntLit(3)))),
		tr.Elvis(tr.Null(), tr.IntLit(1)),
	)

	m := NewMetrics()
	r, _, _ := newTestResolver(tr, WithMetrics(m))
	r.ResolveTree()

	assert.Equal(t, uint64(2), m.Count(`flowres_constructs_resolved_total{kind="when"}`))
	assert.Equal(t, uint64(1), m.Count(`flowres_constructs_resolved_total{kind="elvis"}`))
	assert.Equal(t, uint64(1), m.Count(`flowres_calls_postponed_total`), "the inner when waits for the outer one")
	assert.Equal(t, uint64(3), m.Count(`flowres_calls_completed_total`))
	assert.True(t, inner.Callee.Resolved)

	var buf bytes.Buffer
	r.Metrics().WritePrometheus(&buf)
	assert.Contains(t, buf.String(), `flowres_constructs_resolved_total{kind="when"} 2`)
}

func TestErrorCollector(t *testing.T) {
	defer logger.QuietTest(t)()
	tr := decl.NewTree("test")
	tr.SetRoot(tr.Ident("a"), tr.Ident("b"), tr.Ident("c"))

	r, _, _ := newTestResolver(tr, WithMaxErrors(2))
	errs := r.ResolveTree()
	assert.Len(t, errs.Errors, 2)
	assert.True(t, errs.Truncated)

	var buf bytes.Buffer
	errs.Fprint(&buf, "test.yaml")
	out := buf.String()
	assert.Contains(t, out, "test.yaml:")
	assert.Contains(t, out, "UnresolvedReference: unresolved reference 'a'")
	assert.Contains(t, out, "too many errors (max 2)")
}
