// Package output persists generated files below an output root.
package output

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrUnsafePath is returned for relative paths that are absolute or climb out
// of the output root.
var ErrUnsafePath = errors.New("output: path escapes output root")

// Writer accepts slash-separated relative paths and UTF-8 content.
type Writer interface {
	WriteFile(relPath string, content []byte) error
}

// DirWriter writes files below Root, creating parent directories as needed
// and replacing existing files.
type DirWriter struct {
	Root string
}

// NewDirWriter returns a writer rooted at root.
func NewDirWriter(root string) *DirWriter {
	return &DirWriter{Root: root}
}

func (w *DirWriter) WriteFile(relPath string, content []byte) error {
	clean, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(w.Root)
	if err != nil {
		return fmt.Errorf("resolve output root: %w", err)
	}
	p := filepath.Join(abs, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path.Dir(clean), err)
	}
	// atomic write via temp file + rename
	tmp := p + ".tmp-" + time.Now().Format("20060102150405.000000000")
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", clean, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", clean, err)
	}
	return nil
}

// MemWriter keeps files in memory. It backs dry runs and tests.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemWriter() *MemWriter {
	return &MemWriter{files: make(map[string][]byte)}
}

func (w *MemWriter) WriteFile(relPath string, content []byte) error {
	clean, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[clean] = append([]byte(nil), content...)
	return nil
}

// File returns the content stored at relPath.
func (w *MemWriter) File(relPath string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.files[relPath]
	return string(b), ok
}

// Paths returns the stored paths, sorted.
func (w *MemWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func cleanRelPath(relPath string) (string, error) {
	rel := strings.TrimSpace(relPath)
	if rel == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	if strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, relPath)
	}
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, relPath)
	}
	return clean, nil
}
