package decl

import (
	"fmt"
	"slices"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// TypeDecl is a reference to a type by name, e.g. `Int?` in `val x: Int?`.
// Its inferred type is the resolved type.
type TypeDecl struct {
	ExprBase
	Name string
}

func (t *TypeDecl) Kind() Kind     { return KindTypeRef }
func (t *TypeDecl) String() string { return t.Name }
func (t *TypeDecl) PrettyPrint(cp CodePrinter) {
	cp.Print(t.String())
}

// ResolvedType returns the type this reference resolved to, nil before
// resolution.
func (t *TypeDecl) ResolvedType() *Type {
	if t == nil {
		return nil
	}
	return t.InferredType()
}

// ParamDecl represents `name: Type` in functions, lambdas and catch clauses.
type ParamDecl struct {
	ExprBase
	Name     string
	TypeDecl *TypeDecl
}

func (p *ParamDecl) Kind() Kind { return KindParam }
func (p *ParamDecl) String() string {
	if p.TypeDecl == nil {
		return p.Name
	}
	return fmt.Sprintf("%s: %s", p.Name, p.TypeDecl)
}
func (p *ParamDecl) PrettyPrint(cp CodePrinter) {
	cp.Print(p.String())
}

// FunctionDecl represents `fun name(params): ReturnType { ... }`.  It is a
// statement and its own type is Unit.
type FunctionDecl struct {
	ExprBase
	Name           string
	Params         []*ParamDecl
	ReturnTypeDecl *TypeDecl // nil means Unit
	Body           *BlockExpr
}

func (f *FunctionDecl) Kind() Kind { return KindFunction }

func (f *FunctionDecl) TargetLabel() string { return f.Name }

// TargetReturnType is the declared return type, Unit when none is given.
func (f *FunctionDecl) TargetReturnType() *Type {
	if f.ReturnTypeDecl == nil {
		return UnitType
	}
	return f.ReturnTypeDecl.ResolvedType()
}

// FunctionType is the type of a reference to the function.
func (f *FunctionDecl) FunctionType() *Type {
	params := gfn.Map(f.Params, func(p *ParamDecl) *Type { return p.TypeDecl.ResolvedType() })
	return FunctionType(f.TargetReturnType(), params...)
}

func (f *FunctionDecl) signature() string {
	out := fmt.Sprintf("fun %s(%s)", f.Name, strings.Join(gfn.Map(f.Params, func(p *ParamDecl) string { return p.String() }), ", "))
	if f.ReturnTypeDecl != nil {
		out += ": " + f.ReturnTypeDecl.String()
	}
	return out
}

func (f *FunctionDecl) String() string { return f.signature() + " { ... }" }
func (f *FunctionDecl) PrettyPrint(cp CodePrinter) {
	cp.Print(f.signature() + " ")
	f.Body.PrettyPrint(cp)
}

// EnumDecl represents `enum class Name { A, B, C }`
type EnumDecl struct {
	ExprBase
	Name    string
	Entries []string
}

func (e *EnumDecl) Kind() Kind { return KindEnum }
func (e *EnumDecl) HasEntry(name string) bool {
	return slices.Contains(e.Entries, name)
}
func (e *EnumDecl) String() string {
	return fmt.Sprintf("enum class %s { %s }", e.Name, strings.Join(e.Entries, ", "))
}
func (e *EnumDecl) PrettyPrint(cp CodePrinter) {
	cp.Print(e.String())
}
