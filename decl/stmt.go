package decl

import (
	"fmt"
)

// BlockExpr is a `{ ... }` sequence.  Its type is the type of the last
// statement, or Unit when it is empty.
type BlockExpr struct {
	ExprBase
	Statements []Expr
}

func (b *BlockExpr) Kind() Kind { return KindBlock }

// IsEmpty reports whether the block is an empty-expression block, which is
// how a missing `else` body is represented.
func (b *BlockExpr) IsEmpty() bool { return b == nil || len(b.Statements) == 0 }

// LastStatement returns the statement that determines the block's value.
func (b *BlockExpr) LastStatement() Expr {
	if b.IsEmpty() {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}

func (b *BlockExpr) String() string {
	if b.IsEmpty() {
		return "{ }"
	}
	if len(b.Statements) == 1 {
		return fmt.Sprintf("{ %s }", b.Statements[0])
	}
	return fmt.Sprintf("{ %s ... }", b.Statements[0])
}

func (b *BlockExpr) PrettyPrint(cp CodePrinter) {
	if b.IsEmpty() {
		cp.Print("{ }")
		return
	}
	cp.Println("{")
	WithIndent(1, cp, b.printStatements)
	cp.Print("}")
}

func (b *BlockExpr) printStatements(cp CodePrinter) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		stmt.PrettyPrint(cp)
		cp.Println("")
	}
}

// VarDecl represents `val name: Type = value` or `var ...`
type VarDecl struct {
	ExprBase
	Name     string
	TypeDecl *TypeDecl // optional
	Value    Expr      // optional when TypeDecl is given
	Mutable  bool

	// VarType is the declared or inferred type of the variable itself.  The
	// declaration statement's own type is Unit.
	VarType *Type
}

func (v *VarDecl) Kind() Kind { return KindVarDecl }
func (v *VarDecl) String() string {
	out := "val "
	if v.Mutable {
		out = "var "
	}
	out += v.Name
	if v.TypeDecl != nil {
		out += ": " + v.TypeDecl.String()
	}
	if v.Value != nil {
		out += " = " + v.Value.String()
	}
	return out
}
func (v *VarDecl) PrettyPrint(cp CodePrinter) {
	cp.Print(v.String())
}

// AssignmentExpr represents `name = value`
type AssignmentExpr struct {
	ExprBase
	Name  string
	Value Expr
}

func (a *AssignmentExpr) Kind() Kind     { return KindAssignment }
func (a *AssignmentExpr) String() string { return fmt.Sprintf("%s = %s", a.Name, a.Value) }
func (a *AssignmentExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(a.String())
}

// Loop is implemented by while and do-while loops.  Break and continue
// target loops by NodeID.
type Loop interface {
	Expr
	LoopLabel() string
	LoopCondition() Expr
	LoopBlock() *BlockExpr
}

// WhileLoop represents `label@ while (cond) { ... }`
type WhileLoop struct {
	ExprBase
	Label     string
	Condition Expr
	Block     *BlockExpr
}

func (w *WhileLoop) Kind() Kind            { return KindWhileLoop }
func (w *WhileLoop) LoopLabel() string     { return w.Label }
func (w *WhileLoop) LoopCondition() Expr   { return w.Condition }
func (w *WhileLoop) LoopBlock() *BlockExpr { return w.Block }
func (w *WhileLoop) String() string {
	return fmt.Sprintf("%swhile (%s) %s", labelPrefix(w.Label), w.Condition, w.Block)
}
func (w *WhileLoop) PrettyPrint(cp CodePrinter) {
	cp.Printf("%swhile (%s) ", labelPrefix(w.Label), w.Condition)
	w.Block.PrettyPrint(cp)
}

// DoWhileLoop represents `label@ do { ... } while (cond)`.  The condition
// sees the declarations of the body.
type DoWhileLoop struct {
	ExprBase
	Label     string
	Condition Expr
	Block     *BlockExpr
}

func (d *DoWhileLoop) Kind() Kind            { return KindDoWhileLoop }
func (d *DoWhileLoop) LoopLabel() string     { return d.Label }
func (d *DoWhileLoop) LoopCondition() Expr   { return d.Condition }
func (d *DoWhileLoop) LoopBlock() *BlockExpr { return d.Block }
func (d *DoWhileLoop) String() string {
	return fmt.Sprintf("%sdo %s while (%s)", labelPrefix(d.Label), d.Block, d.Condition)
}
func (d *DoWhileLoop) PrettyPrint(cp CodePrinter) {
	cp.Printf("%sdo ", labelPrefix(d.Label))
	d.Block.PrettyPrint(cp)
	cp.Printf(" while (%s)", d.Condition)
}

func labelPrefix(label string) string {
	if label == "" {
		return ""
	}
	return label + "@ "
}

// Jump is implemented by return, break and continue.  Target is a non
// owning reference to the function, lambda or loop being jumped out of.
type Jump interface {
	Expr
	TargetID() NodeID
	TargetLabel() string
	Payload() Expr
}

// ReturnTarget is anything a return can target.
type ReturnTarget interface {
	Node
	TargetLabel() string
	TargetReturnType() *Type
}

// ReturnExpr represents `return@label value`.  Result is nil for a bare
// return, which returns Unit.
type ReturnExpr struct {
	ExprBase
	Target NodeID
	Label  string
	Result Expr
}

func (r *ReturnExpr) Kind() Kind          { return KindReturn }
func (r *ReturnExpr) TargetID() NodeID    { return r.Target }
func (r *ReturnExpr) TargetLabel() string { return r.Label }
func (r *ReturnExpr) Payload() Expr       { return r.Result }
func (r *ReturnExpr) String() string {
	out := "return" + jumpLabel(r.Label)
	if r.Result != nil {
		out += " " + r.Result.String()
	}
	return out
}
func (r *ReturnExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(r.String())
}

// BreakExpr represents `break@label`
type BreakExpr struct {
	ExprBase
	Target NodeID
	Label  string
}

func (b *BreakExpr) Kind() Kind          { return KindBreak }
func (b *BreakExpr) TargetID() NodeID    { return b.Target }
func (b *BreakExpr) TargetLabel() string { return b.Label }
func (b *BreakExpr) Payload() Expr       { return nil }
func (b *BreakExpr) String() string      { return "break" + jumpLabel(b.Label) }
func (b *BreakExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(b.String())
}

// ContinueExpr represents `continue@label`
type ContinueExpr struct {
	ExprBase
	Target NodeID
	Label  string
}

func (c *ContinueExpr) Kind() Kind          { return KindContinue }
func (c *ContinueExpr) TargetID() NodeID    { return c.Target }
func (c *ContinueExpr) TargetLabel() string { return c.Label }
func (c *ContinueExpr) Payload() Expr       { return nil }
func (c *ContinueExpr) String() string      { return "continue" + jumpLabel(c.Label) }
func (c *ContinueExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(c.String())
}

func jumpLabel(label string) string {
	if label == "" {
		return ""
	}
	return "@" + label
}

// ThrowExpr represents `throw exception`
type ThrowExpr struct {
	ExprBase
	Exception Expr
}

func (t *ThrowExpr) Kind() Kind     { return KindThrow }
func (t *ThrowExpr) String() string { return fmt.Sprintf("throw %s", t.Exception) }
func (t *ThrowExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(t.String())
}
