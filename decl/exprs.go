package decl

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// LiteralKind tags the lexical category of a literal value.
type LiteralKind string

const (
	LitInt    LiteralKind = "INT"
	LitLong   LiteralKind = "LONG"
	LitDouble LiteralKind = "DOUBLE"
	LitString LiteralKind = "STRING"
	LitBool   LiteralKind = "BOOL"
	LitNull   LiteralKind = "NULL"
)

// LiteralExpr represents literal values
type LiteralExpr struct {
	ExprBase
	ValueKind LiteralKind
	Value     string
}

func (l *LiteralExpr) Kind() Kind { return KindLiteral }
func (l *LiteralExpr) String() string {
	switch l.ValueKind {
	case LitString:
		return fmt.Sprintf("%q", l.Value)
	case LitLong:
		return l.Value + "L"
	case LitNull:
		return "null"
	}
	return l.Value
}
func (l *LiteralExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(l.String())
}

// IdentifierExpr represents variable or function names
type IdentifierExpr struct {
	ExprBase
	Value string
}

func (i *IdentifierExpr) Kind() Kind     { return KindIdentifier }
func (i *IdentifierExpr) String() string { return i.Value }
func (i *IdentifierExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(i.String())
}

// MemberAccessExpr represents `receiver.member`.  Only enum entries are
// resolvable members for now.
type MemberAccessExpr struct {
	ExprBase
	Receiver Expr
	Member   string
}

func (m *MemberAccessExpr) Kind() Kind     { return KindMemberAccess }
func (m *MemberAccessExpr) String() string { return fmt.Sprintf("%s.%s", m.Receiver, m.Member) }
func (m *MemberAccessExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(m.String())
}

// BinaryExpr represents `left operator right`
type BinaryExpr struct {
	ExprBase
	Left     Expr
	Operator string // "||", "&&", "==", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/", "%"
	Right    Expr
}

func (b *BinaryExpr) Kind() Kind { return KindBinary }
func (b *BinaryExpr) String() string {
	leftStr := "nil"
	if b.Left != nil {
		leftStr = b.Left.String()
	}
	rightStr := "nil"
	if b.Right != nil {
		rightStr = b.Right.String()
	}
	return fmt.Sprintf("(%s %s %s)", leftStr, b.Operator, rightStr)
}
func (b *BinaryExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(b.String())
}

// UnaryExpr represents `operator operand`
type UnaryExpr struct {
	ExprBase
	Operator string // "!", "-"
	Right    Expr
}

func (u *UnaryExpr) Kind() Kind     { return KindUnary }
func (u *UnaryExpr) String() string { return fmt.Sprintf("%s%s", u.Operator, u.Right) }
func (u *UnaryExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(u.String())
}

// CallExpr represents `function(arg1, arg2, ...)` on a declared function.
type CallExpr struct {
	ExprBase
	Function *IdentifierExpr
	Args     []Expr
}

func (c *CallExpr) Kind() Kind { return KindCall }
func (c *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", c.Function, strings.Join(gfn.Map(c.Args, func(e Expr) string { return e.String() }), ", "))
}
func (c *CallExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(c.String())
}

// LambdaExpr is an anonymous function.  Returns inside the body target the
// lambda through its NodeID.
type LambdaExpr struct {
	ExprBase
	Label          string
	Params         []*ParamDecl
	ReturnTypeDecl *TypeDecl
	Body           *BlockExpr

	// ReturnType is the declared return type once resolved, or the type
	// inferred from the body when nothing was declared.
	ReturnType *Type
}

func (l *LambdaExpr) Kind() Kind { return KindLambda }
func (l *LambdaExpr) String() string {
	params := gfn.Map(l.Params, func(p *ParamDecl) string { return p.String() })
	out := "{"
	if l.Label != "" {
		out = l.Label + "@{"
	}
	if len(params) > 0 {
		out += " " + strings.Join(params, ", ") + " ->"
	}
	return out + " ... }"
}
func (l *LambdaExpr) PrettyPrint(cp CodePrinter) {
	if l.Label != "" {
		cp.Printf("%s@", l.Label)
	}
	cp.Print("{")
	if len(l.Params) > 0 {
		cp.Printf(" %s ->", strings.Join(gfn.Map(l.Params, func(p *ParamDecl) string { return p.String() }), ", "))
	}
	cp.Println("")
	WithIndent(1, cp, func(cp CodePrinter) {
		l.Body.printStatements(cp)
	})
	cp.Print("}")
}

func (l *LambdaExpr) TargetLabel() string     { return l.Label }
func (l *LambdaExpr) TargetReturnType() *Type { return l.ReturnType }

// Annotation is `@Name(args...)` attached to an expression.
type Annotation struct {
	ExprBase
	Name string
	Args []Expr
}

func (a *Annotation) Kind() Kind { return KindAnnotation }
func (a *Annotation) String() string {
	if len(a.Args) == 0 {
		return "@" + a.Name
	}
	return fmt.Sprintf("@%s(%s)", a.Name, strings.Join(gfn.Map(a.Args, func(e Expr) string { return e.String() }), ", "))
}
func (a *Annotation) PrettyPrint(cp CodePrinter) {
	cp.Print(a.String())
}
