package decl

import "fmt"

type DiagnosticKind int

const (
	InferenceError DiagnosticKind = iota
	TypeMismatch
	UnresolvedReference
	ReturnNotAllowed
	ThrowableExpected
	JumpOutsideLoop
	Syntax
)

var diagnosticKindNames = map[DiagnosticKind]string{
	InferenceError:      "InferenceError",
	TypeMismatch:        "TypeMismatch",
	UnresolvedReference: "UnresolvedReference",
	ReturnNotAllowed:    "ReturnNotAllowed",
	ThrowableExpected:   "ThrowableExpected",
	JumpOutsideLoop:     "JumpOutsideLoop",
	Syntax:              "Syntax",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is an error marker attached to a node. It never changes control
// flow, it is surfaced after the pass by whoever consumes the tree.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Pos     Location
	Node    NodeID
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos.LineColStr(), d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// AttachError records a diagnostic on the node and returns it.
func AttachError(e Expr, kind DiagnosticKind, format string, args ...any) *Diagnostic {
	d := &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     e.Pos(),
		Node:    e.ID(),
	}
	e.AddDiagnostic(d)
	return d
}

// SetErrorType attaches a diagnostic and makes the node's result type the
// corresponding error type.
func SetErrorType(e Expr, kind DiagnosticKind, format string, args ...any) *Type {
	t := ErrorType(AttachError(e, kind, format, args...))
	e.SetInferredType(t)
	return t
}
