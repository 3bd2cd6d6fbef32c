package loader

import (
	"fmt"
	"io"

	"github.com/panyam/flowres/resolve"
)

// Checked is a loaded file set together with the diagnostics resolving it
// produced.
type Checked struct {
	*LoadResult
	Resolver *resolve.Resolver
	Errors   *resolve.ErrorCollector
}

// LoadAndResolve loads path and runs the resolver over the resulting tree.
func (l *Loader) LoadAndResolve(path string, opts ...resolve.Option) (*Checked, error) {
	result, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	r := resolve.NewResolver(result.Tree, opts...)
	return &Checked{LoadResult: result, Resolver: r, Errors: r.ResolveTree()}, nil
}

// LoadFilesAndValidate resolves every file, writes its load error or
// diagnostics to w and reports whether all of them were free of errors.
func (l *Loader) LoadFilesAndValidate(w io.Writer, sourceFiles []string, opts ...resolve.Option) (success bool) {
	success = true
	for _, f := range sourceFiles {
		checked, err := l.LoadAndResolve(f, opts...)
		if err != nil {
			l.log.Error("error loading file %s: %v", f, err)
			fmt.Fprintf(w, "%s: %v\n", f, err)
			success = false
			continue
		}
		if checked.Errors.HasErrors() {
			success = false
			l.log.Warn("file %s has %d errors", f, len(checked.Errors.Errors))
			checked.Errors.Fprint(w, f)
		} else {
			l.log.Info("file %s resolved successfully", f)
			fmt.Fprintf(w, "%s: ok\n", f)
		}
	}
	return
}
