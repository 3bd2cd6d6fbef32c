package resolve

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/panyam/flowres/decl"
)

// ErrorCollector gathers the diagnostics a pass left on a tree.
type ErrorCollector struct {
	Errors []*decl.Diagnostic

	// Stop collecting after this many errors
	// 0 => no limit
	MaxErrors int

	// Truncated is set once MaxErrors was hit.
	Truncated bool
}

func (f *ErrorCollector) HasErrors() bool {
	return len(f.Errors) > 0
}

func (f *ErrorCollector) AddErrors(errs ...*decl.Diagnostic) {
	for _, err := range errs {
		if f.MaxErrors > 0 && len(f.Errors) >= f.MaxErrors {
			f.Truncated = true
			return
		}
		f.Errors = append(f.Errors, err)
	}
}

// CollectDiagnostics adds every diagnostic attached to a node of tree.
func (f *ErrorCollector) CollectDiagnostics(tree *decl.Tree) *ErrorCollector {
	f.AddErrors(tree.Diagnostics()...)
	return f
}

// CountByKind returns how many collected diagnostics have each kind.
func (f *ErrorCollector) CountByKind() map[decl.DiagnosticKind]int {
	out := map[decl.DiagnosticKind]int{}
	for _, err := range f.Errors {
		out[err.Kind]++
	}
	return out
}

// Fprint writes one line per diagnostic, prefixed with the file name when
// one is given.
func (f *ErrorCollector) Fprint(w io.Writer, file string) {
	red := color.New(color.FgRed).SprintFunc()
	for _, err := range f.Errors {
		prefix := ""
		if file != "" {
			prefix = file + ":"
		}
		fmt.Fprintf(w, "%s%s %s\n", prefix, red("error:"), err.Error())
	}
	if f.Truncated {
		fmt.Fprintf(w, "too many errors (max %d)\n", f.MaxErrors)
	}
}
