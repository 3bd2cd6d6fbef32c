package decl

import (
	"fmt"
	"strings"
)

// Names of the synthetic callees when, try and elvis are completed through.
const (
	WhenCallName  = "<when>"
	TryCallName   = "<try>"
	ElvisCallName = "<elvis>"
)

// Exhaustiveness is filled in by the exhaustiveness checker.
type Exhaustiveness struct {
	Checked    bool
	Exhaustive bool

	// Missing lists the subject values no branch covers.
	Missing []string
}

// WhenExpr represents
//
//	when (subject) {
//	  cond -> { ... }
//	  else -> { ... }
//	}
//
// Subject and SubjectVariable are both optional.  When SubjectVariable is
// set, Subject is its initializer.
type WhenExpr struct {
	ExprBase
	Subject         Expr
	SubjectVariable *VarDecl
	Branches        []*WhenBranch
	Callee          CalleeReference
	Exhaustiveness  Exhaustiveness
}

func (w *WhenExpr) Kind() Kind { return KindWhen }

// IsProperlyExhaustive is only true once the checker has run and found every
// subject value covered.
func (w *WhenExpr) IsProperlyExhaustive() bool {
	return w.Exhaustiveness.Checked && w.Exhaustiveness.Exhaustive
}

// SubjectType is the type subject references inside the branches take.
func (w *WhenExpr) SubjectType() *Type {
	if w.Subject != nil && w.Subject.InferredType() != nil {
		return w.Subject.InferredType()
	}
	if w.SubjectVariable != nil {
		return w.SubjectVariable.VarType
	}
	return nil
}

func (w *WhenExpr) AddBranch(branches ...*WhenBranch) *WhenExpr {
	w.Branches = append(w.Branches, branches...)
	return w
}

func (w *WhenExpr) subjectString() string {
	if w.SubjectVariable != nil {
		return fmt.Sprintf(" (%s)", w.SubjectVariable)
	}
	if w.Subject != nil {
		return fmt.Sprintf(" (%s)", w.Subject)
	}
	return ""
}

func (w *WhenExpr) String() string {
	return fmt.Sprintf("when%s { %d branches }", w.subjectString(), len(w.Branches))
}

func (w *WhenExpr) PrettyPrint(cp CodePrinter) {
	cp.Printf("when%s {\n", w.subjectString())
	WithIndent(1, cp, func(cp CodePrinter) {
		for _, b := range w.Branches {
			b.PrettyPrint(cp)
			cp.Println("")
		}
	})
	cp.Print("}")
}

// WhenBranch pairs a condition with its result block.
type WhenBranch struct {
	ExprBase
	Condition Expr
	Result    *BlockExpr
}

func (b *WhenBranch) Kind() Kind { return KindWhenBranch }

// IsElse reports whether the condition is the synthetic always-true marker.
func (b *WhenBranch) IsElse() bool {
	_, ok := b.Condition.(*ElseIfTrueCondition)
	return ok
}

func (b *WhenBranch) String() string {
	return fmt.Sprintf("%s -> %s", b.Condition, b.Result)
}

func (b *WhenBranch) PrettyPrint(cp CodePrinter) {
	cp.Printf("%s -> ", b.Condition)
	b.Result.PrettyPrint(cp)
}

// ElseIfTrueCondition is the condition of an `else` branch.
type ElseIfTrueCondition struct {
	ExprBase
}

func (e *ElseIfTrueCondition) Kind() Kind     { return KindElseIfTrue }
func (e *ElseIfTrueCondition) String() string { return "else" }
func (e *ElseIfTrueCondition) PrettyPrint(cp CodePrinter) {
	cp.Print(e.String())
}

// WhenSubjectExpr is a reference to the subject of the enclosing when, as
// used in `when (x) { 1 -> ... }` where the condition is `$subj$ == 1`.
type WhenSubjectExpr struct {
	ExprBase
	WhenRef NodeID
}

func (s *WhenSubjectExpr) Kind() Kind     { return KindWhenSubject }
func (s *WhenSubjectExpr) String() string { return "$subj$" }
func (s *WhenSubjectExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(s.String())
}

// TryExpr represents try { ... } catch (e: E) { ... } finally { ... }
type TryExpr struct {
	ExprBase
	TryBlock     *BlockExpr
	Catches      []*CatchClause
	FinallyBlock *BlockExpr // optional
	Callee       CalleeReference
}

func (t *TryExpr) Kind() Kind { return KindTry }
func (t *TryExpr) String() string {
	parts := []string{"try " + t.TryBlock.String()}
	for _, c := range t.Catches {
		parts = append(parts, c.String())
	}
	if t.FinallyBlock != nil {
		parts = append(parts, "finally "+t.FinallyBlock.String())
	}
	return strings.Join(parts, " ")
}

func (t *TryExpr) PrettyPrint(cp CodePrinter) {
	cp.Print("try ")
	t.TryBlock.PrettyPrint(cp)
	for _, c := range t.Catches {
		cp.Print(" ")
		c.PrettyPrint(cp)
	}
	if t.FinallyBlock != nil {
		cp.Print(" finally ")
		t.FinallyBlock.PrettyPrint(cp)
	}
}

// CatchClause owns exactly one typed parameter and one block.
type CatchClause struct {
	ExprBase
	Parameter *ParamDecl
	Block     *BlockExpr
}

func (c *CatchClause) Kind() Kind { return KindCatch }
func (c *CatchClause) String() string {
	return fmt.Sprintf("catch (%s) %s", c.Parameter, c.Block)
}
func (c *CatchClause) PrettyPrint(cp CodePrinter) {
	cp.Printf("catch (%s) ", c.Parameter)
	c.Block.PrettyPrint(cp)
}

// ElvisExpr represents `lhs ?: rhs`
type ElvisExpr struct {
	ExprBase
	Lhs    Expr
	Rhs    Expr
	Callee CalleeReference
}

func (e *ElvisExpr) Kind() Kind     { return KindElvis }
func (e *ElvisExpr) String() string { return fmt.Sprintf("(%s ?: %s)", e.Lhs, e.Rhs) }
func (e *ElvisExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(e.String())
}
