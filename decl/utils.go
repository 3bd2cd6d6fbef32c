package decl

import (
	"strconv"
)

// Builders for trees.  Every builder registers the node it creates.

func (t *Tree) IntLit(v int) *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: LitInt, Value: strconv.Itoa(v)})
}

func (t *Tree) LongLit(v int64) *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: LitLong, Value: strconv.FormatInt(v, 10)})
}

func (t *Tree) DoubleLit(v float64) *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: LitDouble, Value: strconv.FormatFloat(v, 'g', -1, 64)})
}

func (t *Tree) StringLit(v string) *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: LitString, Value: v})
}

func (t *Tree) BoolLit(v bool) *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: LitBool, Value: strconv.FormatBool(v)})
}

func (t *Tree) Null() *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: LitNull, Value: "null"})
}

// Lit creates a literal from its kind and textual value.
func (t *Tree) Lit(kind LiteralKind, value string) *LiteralExpr {
	return Add(t, &LiteralExpr{ValueKind: kind, Value: value})
}

func (t *Tree) Ident(name string) *IdentifierExpr {
	return Add(t, &IdentifierExpr{Value: name})
}

func (t *Tree) Member(receiver Expr, member string) *MemberAccessExpr {
	return Add(t, &MemberAccessExpr{Receiver: receiver, Member: member})
}

func (t *Tree) Binary(left Expr, op string, right Expr) *BinaryExpr {
	return Add(t, &BinaryExpr{Left: left, Operator: op, Right: right})
}

func (t *Tree) Unary(op string, right Expr) *UnaryExpr {
	return Add(t, &UnaryExpr{Operator: op, Right: right})
}

func (t *Tree) Call(name string, args ...Expr) *CallExpr {
	return Add(t, &CallExpr{Function: t.Ident(name), Args: args})
}

func (t *Tree) Block(stmts ...Expr) *BlockExpr {
	return Add(t, &BlockExpr{Statements: stmts})
}

func (t *Tree) Val(name string, value Expr) *VarDecl {
	return Add(t, &VarDecl{Name: name, Value: value})
}

// TypedVal creates `val name: typeName = value`; value may be nil.
func (t *Tree) TypedVal(name, typeName string, value Expr) *VarDecl {
	return Add(t, &VarDecl{Name: name, TypeDecl: t.TypeRef(typeName), Value: value})
}

func (t *Tree) Var(name string, value Expr) *VarDecl {
	return Add(t, &VarDecl{Name: name, Value: value, Mutable: true})
}

func (t *Tree) Assign(name string, value Expr) *AssignmentExpr {
	return Add(t, &AssignmentExpr{Name: name, Value: value})
}

func (t *Tree) TypeRef(name string) *TypeDecl {
	return Add(t, &TypeDecl{Name: name})
}

func (t *Tree) Param(name, typeName string) *ParamDecl {
	p := &ParamDecl{Name: name}
	if typeName != "" {
		p.TypeDecl = t.TypeRef(typeName)
	}
	return Add(t, p)
}

// Function creates a function with an empty body.  Set Body after creating
// the returns that target it.
func (t *Tree) Function(name, returnType string, params ...*ParamDecl) *FunctionDecl {
	f := &FunctionDecl{Name: name, Params: params}
	if returnType != "" {
		f.ReturnTypeDecl = t.TypeRef(returnType)
	}
	f.Body = t.Block()
	return Add(t, f)
}

// Lambda creates a lambda with an empty body.  returnType may be empty.
func (t *Tree) Lambda(label, returnType string, params ...*ParamDecl) *LambdaExpr {
	l := &LambdaExpr{Label: label, Params: params}
	if returnType != "" {
		l.ReturnTypeDecl = t.TypeRef(returnType)
	}
	l.Body = t.Block()
	return Add(t, l)
}

func (t *Tree) Annotate(e Expr, name string, args ...Expr) *Annotation {
	a := Add(t, &Annotation{Name: name, Args: args})
	e.AddAnnotation(a)
	return a
}

func (t *Tree) Enum(name string, entries ...string) *EnumDecl {
	return Add(t, &EnumDecl{Name: name, Entries: entries})
}

func (t *Tree) While(cond Expr, body *BlockExpr) *WhileLoop {
	return Add(t, &WhileLoop{Condition: cond, Block: body})
}

func (t *Tree) DoWhile(body *BlockExpr, cond Expr) *DoWhileLoop {
	return Add(t, &DoWhileLoop{Condition: cond, Block: body})
}

// When creates a when expression.  subject may be nil.  Branches are added
// with AddBranch once subject references have been created with SubjectOf.
func (t *Tree) When(subject Expr, branches ...*WhenBranch) *WhenExpr {
	return Add(t, &WhenExpr{Subject: subject, Branches: branches, Callee: CalleeReference{Name: WhenCallName}})
}

// WhenWithVariable creates `when (val name = value) { ... }`.
func (t *Tree) WhenWithVariable(name string, value Expr) *WhenExpr {
	w := t.When(value)
	w.SubjectVariable = t.Val(name, value)
	return w
}

func (t *Tree) SubjectOf(w *WhenExpr) *WhenSubjectExpr {
	return Add(t, &WhenSubjectExpr{WhenRef: w.ID()})
}

// Is creates the condition `$subj$ == value` for a when with a subject.
func (t *Tree) Is(w *WhenExpr, value Expr) *BinaryExpr {
	return t.Binary(t.SubjectOf(w), "==", value)
}

func (t *Tree) Branch(cond Expr, result *BlockExpr) *WhenBranch {
	return Add(t, &WhenBranch{Condition: cond, Result: result})
}

func (t *Tree) Else(result *BlockExpr) *WhenBranch {
	return t.Branch(Add(t, &ElseIfTrueCondition{}), result)
}

// ImplicitElse is the else branch the front end adds for an `if` without an
// else: an always-true condition with an empty block.
func (t *Tree) ImplicitElse() *WhenBranch {
	return t.Else(t.Block())
}

// SyntheticElse is like ImplicitElse but has no backing source.
func (t *Tree) SyntheticElse() *WhenBranch {
	b := t.ImplicitElse()
	b.NoSource = true
	return b
}

// If creates `if (cond) then else otherwise`.  otherwise may be nil.
func (t *Tree) If(cond Expr, then, otherwise *BlockExpr) *WhenExpr {
	w := t.When(nil, t.Branch(cond, then))
	if otherwise == nil {
		w.AddBranch(t.ImplicitElse())
	} else {
		w.AddBranch(t.Else(otherwise))
	}
	return w
}

func (t *Tree) Try(block *BlockExpr, catches ...*CatchClause) *TryExpr {
	return Add(t, &TryExpr{TryBlock: block, Catches: catches, Callee: CalleeReference{Name: TryCallName}})
}

func (t *Tree) Catch(param, typeName string, block *BlockExpr) *CatchClause {
	return Add(t, &CatchClause{Parameter: t.Param(param, typeName), Block: block})
}

func (t *Tree) Elvis(lhs, rhs Expr) *ElvisExpr {
	return Add(t, &ElvisExpr{Lhs: lhs, Rhs: rhs, Callee: CalleeReference{Name: ElvisCallName}})
}

// Return creates a return out of target, which is a function or lambda.
// result may be nil.
func (t *Tree) Return(target ReturnTarget, result Expr) *ReturnExpr {
	r := &ReturnExpr{Result: result}
	if target != nil {
		r.Target = target.ID()
		if _, ok := target.(*LambdaExpr); ok {
			r.Label = target.TargetLabel()
		}
	}
	return Add(t, r)
}

func (t *Tree) Throw(e Expr) *ThrowExpr {
	return Add(t, &ThrowExpr{Exception: e})
}

func (t *Tree) Break(loop Loop) *BreakExpr {
	b := &BreakExpr{}
	if loop != nil {
		b.Target, b.Label = loop.ID(), loop.LoopLabel()
	}
	return Add(t, b)
}

func (t *Tree) Continue(loop Loop) *ContinueExpr {
	c := &ContinueExpr{}
	if loop != nil {
		c.Target, c.Label = loop.ID(), loop.LoopLabel()
	}
	return Add(t, c)
}
