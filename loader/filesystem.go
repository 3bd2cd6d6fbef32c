package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// FileSystem is where an FSResolver reads tree files from.  Paths are slash
// separated.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// LocalFS reads tree files below a root directory on disk.  Every path,
// absolute ones included, is taken from the root and may not leave it.
type LocalFS struct {
	root string
}

func NewLocalFS(root string) *LocalFS {
	return &LocalFS{root: root}
}

func (l *LocalFS) fullPath(p string) (string, error) {
	clean := path.Clean(filepath.ToSlash(p))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%s is outside of %s", p, l.root)
	}
	return filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (l *LocalFS) ReadFile(p string) ([]byte, error) {
	full, err := l.fullPath(p)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

func (l *LocalFS) Exists(p string) bool {
	full, err := l.fullPath(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// MemoryFS keeps tree files in memory, for tests and embedding.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFS() *MemoryFS {
	return &MemoryFS{files: make(map[string][]byte)}
}

func (m *MemoryFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", p)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[p]
	return ok
}

// PreloadFiles adds files keyed by their slash path.
func (m *MemoryFS) PreloadFiles(files map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for p, content := range files {
		m.files[p] = []byte(content)
	}
}

// FSResolver resolves imports relative to the importing file inside a
// FileSystem.  Canonical paths are cleaned slash paths.
type FSResolver struct {
	FS FileSystem
}

func (r *FSResolver) Resolve(importerPath, importPath string) (io.ReadCloser, string, error) {
	resolved := filepath.ToSlash(importPath)
	if !path.IsAbs(resolved) && importerPath != importPath {
		resolved = path.Join(path.Dir(filepath.ToSlash(importerPath)), resolved)
	}
	resolved = path.Clean(resolved)
	if !r.FS.Exists(resolved) {
		return nil, "", fmt.Errorf("file not found: %s (resolved from '%s')", resolved, importPath)
	}
	data, err := r.FS.ReadFile(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", resolved, err)
	}
	return io.NopCloser(bytes.NewReader(data)), resolved, nil
}
