package loader

import (
	"fmt"
	"sync"

	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/logger"
)

// LoadResult holds the outcome of a loading operation.
type LoadResult struct {
	Tree        *decl.Tree       // Root holds the statements of every loaded file, imports first.
	RootFile    *File            // The initially requested file.
	LoadedFiles map[string]*File // All files loaded, keyed by canonical path.
	Order       []string         // Canonical paths in the order their statements appear.
}

// Loader decodes tree files and recursively loads their imports into a
// single tree.
type Loader struct {
	parser   Parser
	resolver FileResolver
	maxDepth int
	log      logger.Logger

	// Internal state during a load operation
	mutex       sync.Mutex
	tree        *decl.Tree
	loadedFiles map[string]*File
	order       []string
	pending     map[string]bool // files on the current import chain, for cycle detection
}

// NewLoader creates a new loader.
// maxDepth specifies the maximum import recursion depth (0 means no limit, 1 means root only, etc.).
func NewLoader(parser Parser, resolver FileResolver, maxDepth int) *Loader {
	if parser == nil {
		parser = &YAMLParser{}
	}
	if resolver == nil {
		resolver = NewDefaultFileResolver()
	}
	return &Loader{
		parser:   parser,
		resolver: resolver,
		maxDepth: maxDepth,
		log:      logger.For("loader"),
	}
}

// Load decodes rootPath and everything it imports.
func (l *Loader) Load(rootPath string) (*LoadResult, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.tree = decl.NewTree(rootPath)
	l.loadedFiles = make(map[string]*File)
	l.order = nil
	l.pending = make(map[string]bool)

	rootFile, err := l.loadFileRecursive(rootPath, rootPath, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load root file '%s': %w", rootPath, err)
	}

	var stmts []decl.Expr
	for _, path := range l.order {
		stmts = append(stmts, l.loadedFiles[path].Statements...)
	}
	l.tree.SetRoot(stmts...)
	l.log.Debug("loaded %s: %d files, %d nodes", rootPath, len(l.order), l.tree.Len())

	return &LoadResult{
		Tree:        l.tree,
		RootFile:    rootFile,
		LoadedFiles: l.loadedFiles,
		Order:       l.order,
	}, nil
}

func (l *Loader) loadFileRecursive(importerPath, filePath string, depth int) (*File, error) {
	// depth 0 is the root, depth 1 is its direct imports, etc.
	if l.maxDepth > 0 && depth >= l.maxDepth {
		return nil, fmt.Errorf("max import depth (%d) exceeded near '%s'", l.maxDepth, filePath)
	}

	contentReader, canonicalPath, err := l.resolver.Resolve(importerPath, filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve import '%s' from '%s': %w", filePath, importerPath, err)
	}
	defer contentReader.Close()

	if file, found := l.loadedFiles[canonicalPath]; found {
		return file, nil
	}
	if l.pending[canonicalPath] {
		return nil, fmt.Errorf("circular import detected: '%s' is already being loaded", canonicalPath)
	}
	l.pending[canonicalPath] = true
	defer delete(l.pending, canonicalPath)

	l.log.Debug("parsing %s (importer: %s, depth: %d)", canonicalPath, importerPath, depth)
	file, err := l.parser.Parse(contentReader, canonicalPath, l.tree)
	if err != nil {
		return nil, fmt.Errorf("parsing error in '%s': %w", canonicalPath, err)
	}

	for _, imp := range file.Imports {
		if _, err := l.loadFileRecursive(canonicalPath, imp, depth+1); err != nil {
			return nil, fmt.Errorf("failed to load import '%s' from '%s': %w", imp, canonicalPath, err)
		}
	}

	// Imports come first so their declarations precede the importer's.
	l.loadedFiles[canonicalPath] = file
	l.order = append(l.order, canonicalPath)
	return file, nil
}
