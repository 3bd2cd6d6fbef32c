package decl

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

type TypeTag int

const (
	TypeTagUnknown TypeTag = iota
	TypeTagError
	TypeTagAny
	TypeTagNothing
	TypeTagUnit
	TypeTagClass
	TypeTagEnum
	TypeTagFunction
)

// Type is a resolved type. Info depends on Tag:
//
//	TypeTagError    *Diagnostic
//	TypeTagClass    *ClassInfo
//	TypeTagEnum     *EnumDecl
//	TypeTagFunction *FunctionTypeInfo
type Type struct {
	Tag  TypeTag
	Info any

	Nullable bool

	// Flexible marks platform types whose nullability is not known.
	Flexible bool
}

type ClassInfo struct {
	Name  string
	Super *Type
}

type FunctionTypeInfo struct {
	Params []*Type
	Return *Type
}

var (
	AnyType     = &Type{Tag: TypeTagAny}
	NothingType = &Type{Tag: TypeTagNothing}
	UnitType    = &Type{Tag: TypeTagUnit}

	// NullType is the type of the null literal.
	NullType = &Type{Tag: TypeTagNothing, Nullable: true}

	BooleanType = ClassType("Boolean", AnyType)
	StringType  = ClassType("String", AnyType)
	NumberType  = ClassType("Number", AnyType)
	IntType     = ClassType("Int", NumberType)
	LongType    = ClassType("Long", NumberType)
	DoubleType  = ClassType("Double", NumberType)

	ThrowableType                = ClassType("Throwable", AnyType)
	ExceptionType                = ClassType("Exception", ThrowableType)
	RuntimeExceptionType         = ClassType("RuntimeException", ExceptionType)
	IllegalStateExceptionType    = ClassType("IllegalStateException", RuntimeExceptionType)
	IllegalArgumentExceptionType = ClassType("IllegalArgumentException", RuntimeExceptionType)
)

var builtinTypes = map[string]*Type{
	"Any":                      AnyType,
	"Nothing":                  NothingType,
	"Unit":                     UnitType,
	"Boolean":                  BooleanType,
	"String":                   StringType,
	"Number":                   NumberType,
	"Int":                      IntType,
	"Long":                     LongType,
	"Double":                   DoubleType,
	"Throwable":                ThrowableType,
	"Exception":                ExceptionType,
	"RuntimeException":         RuntimeExceptionType,
	"IllegalStateException":    IllegalStateExceptionType,
	"IllegalArgumentException": IllegalArgumentExceptionType,
}

// LookupBuiltinType resolves a builtin type name. A trailing "?" makes the
// result nullable and a trailing "!" makes it flexible.
func LookupBuiltinType(name string) *Type {
	nullable, flexible := false, false
	if strings.HasSuffix(name, "?") {
		nullable = true
		name = strings.TrimSuffix(name, "?")
	} else if strings.HasSuffix(name, "!") {
		flexible = true
		name = strings.TrimSuffix(name, "!")
	}
	t, ok := builtinTypes[name]
	if !ok {
		return nil
	}
	if flexible {
		return t.AsFlexible()
	}
	return t.WithNullability(nullable)
}

// ClassType creates a nominal class type with a single supertype.
func ClassType(name string, super *Type) *Type {
	return &Type{Tag: TypeTagClass, Info: &ClassInfo{Name: name, Super: super}}
}

// EnumType creates the type of the entries of an enum declaration.
func EnumType(decl *EnumDecl) *Type {
	if decl == nil {
		panic("EnumDecl cannot be nil when creating EnumType")
	}
	return &Type{Tag: TypeTagEnum, Info: decl}
}

func FunctionType(ret *Type, params ...*Type) *Type {
	return &Type{Tag: TypeTagFunction, Info: &FunctionTypeInfo{Params: params, Return: ret}}
}

// ErrorType wraps a diagnostic into a well formed type so resolution of the
// surrounding tree can continue.
func ErrorType(d *Diagnostic) *Type {
	return &Type{Tag: TypeTagError, Info: d}
}

// Name returns the type's name without nullability markers.
func (t *Type) Name() string {
	if t == nil {
		return "<nil_type>"
	}
	switch t.Tag {
	case TypeTagError:
		return fmt.Sprintf("<ERROR: %s>", t.Info.(*Diagnostic).Message)
	case TypeTagAny:
		return "Any"
	case TypeTagNothing:
		return "Nothing"
	case TypeTagUnit:
		return "Unit"
	case TypeTagClass:
		return t.Info.(*ClassInfo).Name
	case TypeTagEnum:
		return t.Info.(*EnumDecl).Name
	case TypeTagFunction:
		fti := t.Info.(*FunctionTypeInfo)
		params := gfn.Map(fti.Params, func(p *Type) string { return p.String() })
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), fti.Return.String())
	}
	return "Unknown Type"
}

// String representation of the type
func (t *Type) String() string {
	if t == nil {
		return "<nil_type>"
	}
	name := t.Name()
	if t.Tag == TypeTagFunction && (t.Nullable || t.Flexible) {
		name = "(" + name + ")"
	}
	if t.Flexible {
		return name + "!"
	}
	if t.Nullable {
		return name + "?"
	}
	return name
}

// Equals checks if two types are the same type including nullability.
func (t *Type) Equals(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.Nullable != other.Nullable || t.Flexible != other.Flexible {
		return false
	}
	return t.sameClassifier(other)
}

// sameClassifier compares the types ignoring nullability.
func (t *Type) sameClassifier(other *Type) bool {
	if t.Tag != other.Tag {
		return false
	}
	switch t.Tag {
	case TypeTagError:
		return t.Info == other.Info
	case TypeTagClass:
		return t.Info.(*ClassInfo).Name == other.Info.(*ClassInfo).Name
	case TypeTagEnum:
		return t.Info.(*EnumDecl).Name == other.Info.(*EnumDecl).Name
	case TypeTagFunction:
		f1 := t.Info.(*FunctionTypeInfo)
		f2 := other.Info.(*FunctionTypeInfo)
		if len(f1.Params) != len(f2.Params) || !f1.Return.Equals(f2.Return) {
			return false
		}
		for i, p := range f1.Params {
			if !p.Equals(f2.Params[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Super returns the direct supertype, nil for Any, Nothing and errors.
func (t *Type) Super() *Type {
	switch t.Tag {
	case TypeTagClass:
		return t.Info.(*ClassInfo).Super
	case TypeTagEnum, TypeTagFunction, TypeTagUnit:
		return AnyType
	}
	return nil
}

func (t *Type) IsError() bool   { return t != nil && t.Tag == TypeTagError }
func (t *Type) IsNothing() bool { return t != nil && t.Tag == TypeTagNothing && !t.Nullable }
func (t *Type) IsBoolean() bool { return t != nil && t.Tag == TypeTagClass && t.Name() == "Boolean" }

// IsUnit reports whether t is exactly the non-null Unit type.
func (t *Type) IsUnit() bool {
	return t != nil && t.Tag == TypeTagUnit && !t.Nullable && !t.Flexible
}

// IsUnitOrFlexibleUnit also accepts the platform type Unit!.
func (t *Type) IsUnitOrFlexibleUnit() bool {
	return t != nil && t.Tag == TypeTagUnit && (!t.Nullable || t.Flexible)
}

// CanBeNull reports whether null is a value of t.
func (t *Type) CanBeNull() bool {
	return t != nil && (t.Nullable || t.Flexible)
}

// WithNullability returns a copy of t with the given nullability. Flexible
// types become definite.
func (t *Type) WithNullability(nullable bool) *Type {
	if t == nil {
		return nil
	}
	if t.Nullable == nullable && !t.Flexible {
		return t
	}
	out := *t
	out.Nullable = nullable
	out.Flexible = false
	return &out
}

func (t *Type) MakeNonNull() *Type {
	return t.WithNullability(false)
}

func (t *Type) AsFlexible() *Type {
	if t == nil || t.Flexible {
		return t
	}
	out := *t
	out.Nullable = false
	out.Flexible = true
	return &out
}

// IsSubtypeOf reports whether a value of type t can be used where other is
// expected. Error types are compatible with everything to avoid cascades.
func (t *Type) IsSubtypeOf(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	if t.IsError() || other.IsError() {
		return true
	}
	if t.Nullable && !other.CanBeNull() {
		return false
	}
	if t.Tag == TypeTagNothing || other.Tag == TypeTagAny {
		return true
	}
	for s := t; s != nil; s = s.Super() {
		if s.sameClassifier(other) {
			return true
		}
	}
	return false
}

// CommonSuperType computes the least upper bound of the given types. Nothing
// contributes nothing; the result is nullable when any input is. Nil inputs
// are skipped and nil is returned when nothing remains.
func CommonSuperType(types ...*Type) *Type {
	var result *Type
	nullable, sawNothing := false, false
	for _, t := range types {
		if t == nil {
			continue
		}
		if t.IsError() {
			return t
		}
		if t.Nullable {
			nullable = true
		}
		if t.Tag == TypeTagNothing {
			sawNothing = true
			continue
		}
		if result == nil {
			result = t
			continue
		}
		result = leastUpperBound(result, t)
	}
	if result == nil {
		if !sawNothing {
			return nil
		}
		if nullable {
			return NullType
		}
		return NothingType
	}
	if nullable && !result.Nullable {
		return result.WithNullability(true)
	}
	return result
}

func leastUpperBound(a, b *Type) *Type {
	if a.Equals(b) {
		return a
	}
	an, bn := a.MakeNonNull(), b.MakeNonNull()
	nullable := a.CanBeNull() || b.CanBeNull()
	for s := an; s != nil; s = s.Super() {
		if bn.IsSubtypeOf(s) {
			if nullable {
				return s.WithNullability(true)
			}
			return s
		}
	}
	if nullable {
		return AnyType.WithNullability(true)
	}
	return AnyType
}
