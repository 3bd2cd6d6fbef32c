package resolve

import (
	"github.com/panyam/flowres/decl"
)

func (r *Resolver) resolveLiteral(l *decl.LiteralExpr, mode ResolutionMode) {
	switch l.ValueKind {
	case decl.LitInt:
		// Integer literals take Long when a Long is expected.
		if expected := mode.ExpectedType(); expected != nil && expected.MakeNonNull().Equals(decl.LongType) {
			l.SetInferredType(decl.LongType)
		} else {
			l.SetInferredType(decl.IntType)
		}
	case decl.LitLong:
		l.SetInferredType(decl.LongType)
	case decl.LitDouble:
		l.SetInferredType(decl.DoubleType)
	case decl.LitString:
		l.SetInferredType(decl.StringType)
	case decl.LitBool:
		l.SetInferredType(decl.BooleanType)
	case decl.LitNull:
		l.SetInferredType(decl.NullType)
	default:
		decl.SetErrorType(l, decl.Syntax, "unknown literal kind %q", l.ValueKind)
	}
}

func (r *Resolver) resolveIdentifier(id *decl.IdentifierExpr) {
	sym, ok := r.ctx.Scopes.Lookup(id.Value)
	if !ok {
		decl.SetErrorType(id, decl.UnresolvedReference, "unresolved reference '%s'", id.Value)
		return
	}
	id.SetInferredType(sym.Type)
}

// resolveMemberAccess only knows enum entries: `Color.RED` has type Color.
func (r *Resolver) resolveMemberAccess(m *decl.MemberAccessExpr) {
	m.Receiver = r.Resolve(m.Receiver, Independent)
	recv := m.Receiver.InferredType()
	switch {
	case recv == nil:
		decl.SetErrorType(m, decl.UnresolvedReference, "unresolved reference '%s'", m.Member)
	case recv.IsError():
		m.SetInferredType(recv)
	case recv.Tag == decl.TypeTagEnum && recv.Info.(*decl.EnumDecl).HasEntry(m.Member):
		m.SetInferredType(recv.MakeNonNull())
	default:
		decl.SetErrorType(m, decl.UnresolvedReference, "unresolved reference '%s' on %s", m.Member, recv)
	}
}

func (r *Resolver) resolveBinary(b *decl.BinaryExpr) {
	switch b.Operator {
	case "&&", "||":
		b.Left = r.Resolve(b.Left, ExpectType(decl.BooleanType))
		b.Right = r.Resolve(b.Right, ExpectType(decl.BooleanType))
		b.SetInferredType(decl.BooleanType)
		return
	}

	b.Left = r.Resolve(b.Left, Independent)
	b.Right = r.Resolve(b.Right, Independent)
	left, right := b.Left.InferredType(), b.Right.InferredType()
	if left.IsError() || right.IsError() {
		b.SetInferredType(decl.CommonSuperType(left, right))
		return
	}

	switch b.Operator {
	case "==", "!=":
		b.SetInferredType(decl.BooleanType)
	case "<", "<=", ">", ">=":
		ordered := (isNumeric(left) && isNumeric(right)) ||
			(left.Equals(decl.StringType) && right.Equals(decl.StringType))
		if !ordered {
			decl.AttachError(b, decl.TypeMismatch, "operator '%s' cannot be applied to %s and %s", b.Operator, left, right)
		}
		b.SetInferredType(decl.BooleanType)
	case "+", "-", "*", "/", "%":
		if b.Operator == "+" && (left.Equals(decl.StringType) || right.Equals(decl.StringType)) {
			b.SetInferredType(decl.StringType)
			return
		}
		if t := numericResult(left, right); t != nil {
			b.SetInferredType(t)
			return
		}
		decl.SetErrorType(b, decl.TypeMismatch, "operator '%s' cannot be applied to %s and %s", b.Operator, left, right)
	default:
		decl.SetErrorType(b, decl.Syntax, "unsupported binary operator '%s'", b.Operator)
	}
}

func (r *Resolver) resolveUnary(u *decl.UnaryExpr) {
	switch u.Operator {
	case "!":
		u.Right = r.Resolve(u.Right, ExpectType(decl.BooleanType))
		u.SetInferredType(decl.BooleanType)
	case "-":
		u.Right = r.Resolve(u.Right, Independent)
		operand := u.Right.InferredType()
		switch {
		case operand.IsError():
			u.SetInferredType(operand)
		case isNumeric(operand):
			u.SetInferredType(operand)
		default:
			decl.SetErrorType(u, decl.TypeMismatch, "operator '-' cannot be applied to %s", operand)
		}
	default:
		decl.SetErrorType(u, decl.Syntax, "unsupported unary operator '%s'", u.Operator)
	}
}

func isNumeric(t *decl.Type) bool {
	return t != nil && !t.CanBeNull() && t.Tag == decl.TypeTagClass && t.IsSubtypeOf(decl.NumberType)
}

// numericResult widens Int to Long to Double.  Anything else that is a
// Number gives Number.
func numericResult(left, right *decl.Type) *decl.Type {
	if !isNumeric(left) || !isNumeric(right) {
		return nil
	}
	rank := func(t *decl.Type) int {
		switch {
		case t.Equals(decl.IntType):
			return 1
		case t.Equals(decl.LongType):
			return 2
		case t.Equals(decl.DoubleType):
			return 3
		}
		return 0
	}
	l, rr := rank(left), rank(right)
	if l == 0 || rr == 0 {
		return decl.NumberType
	}
	return []*decl.Type{nil, decl.IntType, decl.LongType, decl.DoubleType}[max(l, rr)]
}

// resolveCall resolves calls of declared functions, of values with a
// function type and of builtin exception constructors.
func (r *Resolver) resolveCall(c *decl.CallExpr) {
	name := c.Function.Value
	var params []*decl.Type
	var ret *decl.Type

	sym, found := r.ctx.Scopes.Lookup(name)
	switch {
	case found && sym.Type != nil && sym.Type.Tag == decl.TypeTagFunction:
		info := sym.Type.Info.(*decl.FunctionTypeInfo)
		params, ret = info.Params, info.Return
		c.Function.SetInferredType(sym.Type)
	case !found && isExceptionClass(decl.LookupBuiltinType(name)):
		ret = decl.LookupBuiltinType(name)
		c.Function.SetInferredType(ret)
		r.resolveArgs(c, nil)
		c.SetInferredType(ret)
		return
	case found:
		r.resolveArgs(c, nil)
		decl.SetErrorType(c, decl.TypeMismatch, "'%s' of type %s cannot be called", name, sym.Type)
		return
	default:
		r.resolveArgs(c, nil)
		decl.SetErrorType(c, decl.UnresolvedReference, "unresolved reference '%s'", name)
		return
	}

	if len(params) != len(c.Args) {
		r.resolveArgs(c, nil)
		decl.SetErrorType(c, decl.TypeMismatch, "'%s' expects %d arguments but got %d", name, len(params), len(c.Args))
		return
	}
	r.resolveArgs(c, params)
	if ret == nil {
		ret = decl.UnitType
	}
	c.SetInferredType(ret)
}

func (r *Resolver) resolveArgs(c *decl.CallExpr, params []*decl.Type) {
	for i, arg := range c.Args {
		mode := Independent
		if i < len(params) && params[i] != nil {
			mode = ExpectType(params[i])
		}
		c.Args[i] = r.Resolve(arg, mode)
	}
}

func isExceptionClass(t *decl.Type) bool {
	return t != nil && t.Tag == decl.TypeTagClass && t.IsSubtypeOf(decl.ThrowableType)
}

// resolveLambda resolves the body in a scope holding the parameters.
// Resolved in dependent mode, returns inside the body stay dependent too,
// declared return type or not.  The return type of an undeclared lambda is
// the common supertype of the body value and everything returned.
func (r *Resolver) resolveLambda(l *decl.LambdaExpr, mode ResolutionMode) {
	r.ctx.Scopes.With(func() {
		for _, p := range l.Params {
			r.ResolveParameter(p)
		}
		declared := l.ReturnTypeDecl != nil
		if declared {
			l.ReturnType = r.ResolveTypeRef(l.ReturnTypeDecl)
		}
		if mode.Kind() == ContextDependent {
			r.ctx.MarkDependentLambda(l.ID())
			defer r.ctx.UnmarkDependentLambda(l.ID())
		}

		bodyMode := Independent
		if declared {
			bodyMode = ExpectTypeWithCoercion(l.ReturnType, true)
		}
		r.collab.Sink.EnterFunction(l)
		if l.Body != nil {
			l.Body = r.ResolveBlockInCurrentScope(l.Body, bodyMode)
		}
		r.collab.Sink.ExitFunction(l)

		if !declared {
			var candidates []*decl.Type
			if l.Body != nil {
				candidates = append(candidates, l.Body.InferredType())
			}
			candidates = append(candidates, r.ctx.ReturnTypes(l.ID())...)
			l.ReturnType = decl.CommonSuperType(candidates...)
			if l.ReturnType == nil {
				l.ReturnType = decl.UnitType
			}
		}
	})

	params := make([]*decl.Type, len(l.Params))
	for i, p := range l.Params {
		params[i] = p.InferredType()
	}
	l.SetInferredType(decl.FunctionType(l.ReturnType, params...))
}

// resolveVarDecl types the variable from its declaration, or from its value
// when no type is declared.  The declaration itself is a Unit statement.
func (r *Resolver) resolveVarDecl(v *decl.VarDecl) {
	declared := r.ResolveTypeRef(v.TypeDecl)
	if v.Value != nil {
		mode := Independent
		if declared != nil {
			mode = ExpectType(declared)
		}
		v.Value = r.Resolve(v.Value, mode)
	}

	switch {
	case declared != nil:
		v.VarType = declared
	case v.Value != nil && v.Value.InferredType() != nil:
		v.VarType = v.Value.InferredType()
	default:
		v.VarType = decl.SetErrorType(v, decl.InferenceError, "cannot infer the type of '%s'", v.Name)
	}
	r.ctx.Scopes.Declare(&Symbol{Name: v.Name, Kind: SymbolVariable, Type: v.VarType, Decl: v.ID(), Mutable: v.Mutable})
	if decl.IsImplicit(v) {
		v.SetInferredType(decl.UnitType)
	}
}

func (r *Resolver) resolveAssignment(a *decl.AssignmentExpr) {
	sym, ok := r.ctx.Scopes.Lookup(a.Name)
	if !ok {
		a.Value = r.Resolve(a.Value, Independent)
		decl.AttachError(a, decl.UnresolvedReference, "unresolved reference '%s'", a.Name)
	} else {
		a.Value = r.Resolve(a.Value, ExpectType(sym.Type))
	}
	a.SetInferredType(decl.UnitType)
}

// declareFunction resolves the signature and binds the name.  It runs when
// the enclosing block is entered so calls may precede the declaration.
func (r *Resolver) declareFunction(f *decl.FunctionDecl) {
	for _, p := range f.Params {
		if p.TypeDecl != nil {
			r.ResolveTypeRef(p.TypeDecl)
		}
	}
	r.ResolveTypeRef(f.ReturnTypeDecl)
	r.ctx.Scopes.Declare(&Symbol{Name: f.Name, Kind: SymbolFunction, Type: f.FunctionType(), Decl: f.ID(), Function: f})
}

// resolveFunction resolves the body as a sequence of statements.  Returns
// carry the function's value, the last statement does not.
func (r *Resolver) resolveFunction(f *decl.FunctionDecl) {
	if _, ok := r.ctx.Scopes.LookupLocal(f.Name); !ok {
		r.declareFunction(f)
	}
	r.ctx.Scopes.With(func() {
		for _, p := range f.Params {
			r.ResolveParameter(p)
		}
		r.collab.Sink.EnterFunction(f)
		if f.Body != nil {
			f.Body = r.ResolveBlockInCurrentScope(f.Body, Independent)
		}
		r.collab.Sink.ExitFunction(f)
	})
	f.SetInferredType(decl.UnitType)
}

func (r *Resolver) declareEnum(e *decl.EnumDecl) {
	r.ctx.Scopes.Declare(&Symbol{Name: e.Name, Kind: SymbolEnum, Type: decl.EnumType(e), Decl: e.ID(), Enum: e})
}
