package decl

import (
	"fmt"
)

// --- Interfaces ---

// Kind tags every node so resolvers can dispatch with a single switch
// instead of a visitor per node type.
type Kind int

const (
	KindUnknown Kind = iota
	KindLiteral
	KindIdentifier
	KindMemberAccess
	KindBlock
	KindVarDecl
	KindAssignment
	KindBinary
	KindUnary
	KindCall
	KindLambda
	KindFunction
	KindParam
	KindTypeRef
	KindAnnotation
	KindEnum
	KindWhileLoop
	KindDoWhileLoop
	KindWhen
	KindWhenBranch
	KindElseIfTrue
	KindWhenSubject
	KindTry
	KindCatch
	KindReturn
	KindThrow
	KindBreak
	KindContinue
	KindElvis
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	KindLiteral:      "literal",
	KindIdentifier:   "identifier",
	KindMemberAccess: "member",
	KindBlock:        "block",
	KindVarDecl:      "val",
	KindAssignment:   "assign",
	KindBinary:       "binary",
	KindUnary:        "unary",
	KindCall:         "call",
	KindLambda:       "lambda",
	KindFunction:     "fun",
	KindParam:        "param",
	KindTypeRef:      "typeref",
	KindAnnotation:   "annotation",
	KindEnum:         "enum",
	KindWhileLoop:    "while",
	KindDoWhileLoop:  "dowhile",
	KindWhen:         "when",
	KindWhenBranch:   "branch",
	KindElseIfTrue:   "else",
	KindWhenSubject:  "subject",
	KindTry:          "try",
	KindCatch:        "catch",
	KindReturn:       "return",
	KindThrow:        "throw",
	KindBreak:        "break",
	KindContinue:     "continue",
	KindElvis:        "elvis",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// NodeID addresses a node inside its Tree. The zero value means "no node".
type NodeID int32

const NoNode NodeID = 0

// Location is a position in the source the tree was built from.
type Location struct {
	Pos  int
	Line int
	Col  int
}

func (l Location) LineColStr() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

func (l Location) IsValid() bool { return l.Line > 0 }

// Node represents any node in the tree.
type Node interface {
	ID() NodeID
	Kind() Kind
	Pos() Location // Starting position (for error reporting)
	End() Location // Ending position
	HasSource() bool
	String() string // String representation for debugging/printing
	PrettyPrint(cp CodePrinter)
	setID(id NodeID)
}

// --- Base Struct ---

// NodeInfo embeddable struct for identity and position tracking.
type NodeInfo struct {
	id                NodeID
	StartPos, StopPos Location

	// NoSource marks nodes the front end generated without any backing
	// source element.
	NoSource bool
}

func (n *NodeInfo) ID() NodeID            { return n.id }
func (n *NodeInfo) setID(id NodeID)       { n.id = id }
func (n *NodeInfo) Pos() Location         { return n.StartPos }
func (n *NodeInfo) End() Location         { return n.StopPos }
func (n *NodeInfo) HasSource() bool       { return !n.NoSource }
func (n *NodeInfo) SetPos(start Location) { n.StartPos = start }

// Expr is any node that carries a result type. Statements are expressions
// whose type is Unit.
type Expr interface {
	Node
	exprNode()
	InferredType() *Type
	SetInferredType(*Type)
	Annotations() []*Annotation
	AddAnnotation(*Annotation)
	Diagnostics() []*Diagnostic
	AddDiagnostic(*Diagnostic)
}

type ExprBase struct {
	NodeInfo
	inferredType *Type
	annotations  []*Annotation
	diagnostics  []*Diagnostic
}

func (e *ExprBase) exprNode() {}

// InferredType returns the result type, or nil while it is still implicit.
func (e *ExprBase) InferredType() *Type {
	return e.inferredType
}

func (e *ExprBase) SetInferredType(t *Type) {
	e.inferredType = t
}

func (e *ExprBase) Annotations() []*Annotation {
	return e.annotations
}

func (e *ExprBase) AddAnnotation(a *Annotation) {
	e.annotations = append(e.annotations, a)
}

func (e *ExprBase) Diagnostics() []*Diagnostic {
	return e.diagnostics
}

func (e *ExprBase) AddDiagnostic(d *Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
}

// IsImplicit reports whether the node's result type has not been set yet.
func IsImplicit(e Expr) bool {
	return e == nil || e.InferredType() == nil
}

// CalleeReference is the synthetic callee that when, try and elvis nodes
// are completed through. It becomes resolved once the completion engine has
// fixed the construct's type.
type CalleeReference struct {
	Name     string
	Resolved bool
}

func (c *CalleeReference) String() string {
	if c.Resolved {
		return c.Name
	}
	return c.Name + "?"
}
