package resolve

import (
	"testing"

	"github.com/panyam/flowres/decl"
	"github.com/stretchr/testify/assert"
)

func TestResolutionMode(t *testing.T) {
	assert.Equal(t, ContextDependent, ExpectType(nil).Kind())
	assert.Equal(t, ContextDependent, ExpectTypeWithCoercion(nil, true).Kind())
	assert.False(t, ExpectTypeWithCoercion(nil, true).MayBeCoercionToUnitApplied())

	m := ExpectType(decl.IntType)
	assert.Equal(t, WithExpectedType, m.Kind())
	assert.Same(t, decl.IntType, m.ExpectedType())
	assert.False(t, m.MayBeCoercionToUnitApplied())
	assert.Equal(t, "WithExpectedType(Int)", m.String())

	c := ExpectTypeWithCoercion(decl.UnitType, true)
	assert.True(t, c.MayBeCoercionToUnitApplied())
	assert.Equal(t, "WithExpectedType(Unit, coercion)", c.String())

	assert.Nil(t, Independent.ExpectedType())
	assert.Equal(t, "ContextIndependent", Independent.String())
	assert.Equal(t, "ContextDependent", Dependent.String())
}

func TestTypeScope(t *testing.T) {
	ts := NewTypeScope()
	assert.Panics(t, ts.Pop)

	ts.Declare(&Symbol{Name: "x", Type: decl.IntType})
	ts.With(func() {
		assert.Equal(t, 1, ts.Depth())
		ts.Declare(&Symbol{Name: "x", Type: decl.StringType})
		sym, ok := ts.Lookup("x")
		assert.True(t, ok)
		assert.Same(t, decl.StringType, sym.Type)
		_, ok = ts.LookupLocal("x")
		assert.True(t, ok)
	})
	assert.Equal(t, 0, ts.Depth())
	sym, _ := ts.Lookup("x")
	assert.Same(t, decl.IntType, sym.Type)

	// composed and decomposed forms bind the same name
	ts.Declare(&Symbol{Name: "caf\u00e9", Type: decl.BooleanType})
	_, ok := ts.Lookup("cafe\u0301")
	assert.True(t, ok)

	// the scope is released even when resolution panics
	assert.Panics(t, func() { ts.With(func() { panic("boom") }) })
	assert.Equal(t, 0, ts.Depth())
}
