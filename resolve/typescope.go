package resolve

import (
	"fmt"

	"github.com/panyam/flowres/decl"
	"golang.org/x/text/unicode/norm"
)

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolFunction
	SymbolEnum
)

// Symbol is what a name in scope refers to.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    *decl.Type
	Decl    decl.NodeID
	Mutable bool

	Function *decl.FunctionDecl // SymbolFunction only
	Enum     *decl.EnumDecl     // SymbolEnum only
}

// TypeScope is the stack of lexical scopes of a resolution pass.  Names are
// NFC normalised so that differently composed identifiers bind the same
// symbol.
type TypeScope struct {
	env *decl.Env[*Symbol]
}

func NewTypeScope() *TypeScope {
	return &TypeScope{env: decl.NewEnv[*Symbol](nil)}
}

// Push opens a nested scope.
func (ts *TypeScope) Push() {
	ts.env = ts.env.Push()
}

// Pop closes the innermost scope.  The root scope cannot be popped.
func (ts *TypeScope) Pop() {
	outer := ts.env.Outer()
	if outer == nil {
		panic("cannot pop the root scope")
	}
	ts.env = outer
}

// With runs fn in a fresh scope that is closed however fn returns.
func (ts *TypeScope) With(fn func()) {
	ts.Push()
	defer ts.Pop()
	fn()
}

// Depth is 0 at the root scope.
func (ts *TypeScope) Depth() int {
	return ts.env.Depth()
}

// Declare binds sym in the innermost scope, shadowing outer bindings.
func (ts *TypeScope) Declare(sym *Symbol) {
	ts.env.Set(normalize(sym.Name), sym)
}

func (ts *TypeScope) Lookup(name string) (*Symbol, bool) {
	return ts.env.Get(normalize(name))
}

// LookupLocal only looks at the innermost scope.
func (ts *TypeScope) LookupLocal(name string) (*Symbol, bool) {
	return ts.env.GetLocal(normalize(name))
}

func (ts *TypeScope) String() string {
	return fmt.Sprintf("TypeScope(depth=%d, names=%v)", ts.Depth(), ts.env.Keys())
}

func normalize(name string) string {
	return norm.NFC.String(name)
}
