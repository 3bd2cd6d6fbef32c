package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeRegistersNodes(t *testing.T) {
	tr := NewTree("test")
	one := tr.IntLit(1)
	x := tr.Val("x", one)

	assert.Equal(t, NodeID(1), one.ID())
	assert.Equal(t, NodeID(2), x.ID())
	assert.Equal(t, 2, tr.Len())
	assert.Same(t, x, tr.Node(x.ID()))
	assert.Nil(t, tr.Node(NoNode))
	assert.Nil(t, tr.Node(NodeID(42)))

	// registering again keeps the id
	assert.Equal(t, x.ID(), tr.Register(x))

	other := NewTree("other")
	assert.Panics(t, func() { other.Register(x) })
}

func TestTreeBackReferences(t *testing.T) {
	tr := NewTree("test")
	fn := tr.Function("f", "Int")
	ret := tr.Return(fn, tr.IntLit(5))
	fn.Body.Statements = append(fn.Body.Statements, ret)

	assert.Equal(t, fn.ID(), ret.TargetID())
	target, ok := tr.Node(ret.TargetID()).(ReturnTarget)
	require.True(t, ok)
	assert.Equal(t, "f", target.TargetLabel())

	loop := tr.While(tr.BoolLit(true), tr.Block())
	loop.Label = "outer"
	brk := tr.Break(loop)
	assert.Equal(t, loop.ID(), brk.TargetID())
	assert.Equal(t, "break@outer", brk.String())

	w := tr.When(tr.Ident("x"))
	subj := tr.SubjectOf(w)
	assert.Same(t, w, tr.Node(subj.WhenRef))
}

func TestImplicitElse(t *testing.T) {
	tr := NewTree("test")
	w := tr.If(tr.BoolLit(true), tr.Block(tr.IntLit(1)), nil)
	require.Len(t, w.Branches, 2)

	last := w.Branches[1]
	assert.True(t, last.IsElse())
	assert.True(t, last.Result.IsEmpty())
	assert.True(t, last.HasSource())

	assert.False(t, tr.SyntheticElse().HasSource())
}

func TestTreeDiagnostics(t *testing.T) {
	tr := NewTree("test")
	a := tr.Ident("a")
	b := tr.Ident("b")
	AttachError(b, UnresolvedReference, "unresolved reference '%s'", "b")
	typ := SetErrorType(a, InferenceError, "cannot infer")

	assert.True(t, typ.IsError())
	assert.Same(t, typ, a.InferredType())
	diags := tr.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, a.ID(), diags[0].Node)
	assert.Equal(t, "UnresolvedReference: unresolved reference 'b'", diags[1].Error())
}

func TestPrettyPrint(t *testing.T) {
	tr := NewTree("test")
	w := tr.If(tr.BoolLit(true), tr.Block(tr.IntLit(1)), nil)
	expected := "when {\n  true -> {\n    1\n  }\n  else -> { }\n}"
	assert.Equal(t, expected, Sprint(w))

	try := tr.Try(tr.Block(tr.Call("a")), tr.Catch("e", "Exception", tr.Block(tr.Call("b"))))
	try.FinallyBlock = tr.Block()
	assert.Equal(t, "try { a() } catch (e: Exception) { b() } finally { }", try.String())

	assert.Equal(t, "(x ?: 0)", tr.Elvis(tr.Ident("x"), tr.IntLit(0)).String())
}

func TestEnv(t *testing.T) {
	root := NewEnv[int](nil)
	root.Set("a", 1)
	child := root.Push()
	child.Set("b", 2)

	v, ok := child.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = child.GetLocal("a")
	assert.False(t, ok)

	_, ok = root.Get("b")
	assert.False(t, ok)

	assert.Equal(t, 1, child.Depth())
	assert.Same(t, root, child.Outer())
	assert.Equal(t, []string{"b"}, child.Keys())
}
