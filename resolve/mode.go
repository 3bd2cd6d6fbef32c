package resolve

import (
	"fmt"

	"github.com/panyam/flowres/decl"
)

type ModeKind int

const (
	ContextIndependent ModeKind = iota

	// ContextDependent defers the final type until an enclosing call
	// completes the expression.
	ContextDependent

	WithExpectedType
)

func (k ModeKind) String() string {
	switch k {
	case ContextIndependent:
		return "ContextIndependent"
	case ContextDependent:
		return "ContextDependent"
	case WithExpectedType:
		return "WithExpectedType"
	}
	return fmt.Sprintf("ModeKind(%d)", int(k))
}

// ResolutionMode tells a sub-expression what, if anything, its context
// expects of it.  It is a value and is never modified once built.
type ResolutionMode struct {
	kind     ModeKind
	expected *decl.Type
	coercion bool
}

var (
	Independent = ResolutionMode{kind: ContextIndependent}
	Dependent   = ResolutionMode{kind: ContextDependent}
)

// ExpectType expects t.  Without a type there is nothing to expect and the
// mode is dependent.
func ExpectType(t *decl.Type) ResolutionMode {
	return ExpectTypeWithCoercion(t, false)
}

// ExpectTypeWithCoercion is ExpectType where the value may be coerced to
// Unit when t is Unit.
func ExpectTypeWithCoercion(t *decl.Type, mayBeCoercionToUnitApplied bool) ResolutionMode {
	if t == nil {
		return Dependent
	}
	return ResolutionMode{kind: WithExpectedType, expected: t, coercion: mayBeCoercionToUnitApplied}
}

func (m ResolutionMode) Kind() ModeKind { return m.kind }

// ExpectedType is nil unless the kind is WithExpectedType.
func (m ResolutionMode) ExpectedType() *decl.Type { return m.expected }

func (m ResolutionMode) MayBeCoercionToUnitApplied() bool {
	return m.kind == WithExpectedType && m.coercion
}

func (m ResolutionMode) String() string {
	if m.kind != WithExpectedType {
		return m.kind.String()
	}
	if m.coercion {
		return fmt.Sprintf("WithExpectedType(%s, coercion)", m.expected)
	}
	return fmt.Sprintf("WithExpectedType(%s)", m.expected)
}
