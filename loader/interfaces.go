package loader

import (
	"io"

	"github.com/panyam/flowres/decl"
)

// File is one decoded tree file.  Its statements live in the tree they were
// decoded into.
type File struct {
	Path       string
	Imports    []string
	Statements []decl.Expr
}

// Parser decodes tree files.
type Parser interface {
	// Parse reads from the input reader and adds the nodes it decodes to
	// tree.  sourceName is used for context in error messages.
	Parse(input io.Reader, sourceName string, tree *decl.Tree) (*File, error)
}

// FileResolver defines the interface for resolving import paths and reading file content.
type FileResolver interface {
	// Resolve takes the path of the importing file and the path string from the import statement.
	// It should return:
	// 1. An io.ReadCloser for the content of the resolved file.
	// 2. The canonical path (e.g., absolute path) of the resolved file, used for caching and cycle detection.
	// 3. An error if resolution or reading fails.
	Resolve(importerPath, importPath string) (content io.ReadCloser, canonicalPath string, err error)
}
