// Package fs maps a project file map onto a workspace directory on disk.
// All paths in a file map are forward-slash relative; the workspace guards
// against traversal outside its root.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Workspace is the directory a project's file map is materialized into.
type Workspace struct {
	root string
}

// NewWorkspace resolves root to an absolute path and creates it if needed.
func NewWorkspace(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace root %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("could not create workspace root: %w", err)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// Resolve turns a file-map path into an absolute path inside the
// workspace. Paths that escape the root are rejected.
func (w *Workspace) Resolve(relativePath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relativePath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("path %q escapes the workspace", relativePath)
	}
	return filepath.Join(w.root, cleaned), nil
}

// WriteFiles writes every entry of the file map, creating directories as
// needed, and reports which paths were newly created vs. overwritten.
// Entries are written in sorted order so results are deterministic.
func (w *Workspace) WriteFiles(files map[string]string) (created, modified []string, err error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		abs, err := w.Resolve(p)
		if err != nil {
			return created, modified, err
		}
		_, statErr := os.Stat(abs)
		isNew := os.IsNotExist(statErr)

		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return created, modified, fmt.Errorf("could not create directory for %q: %w", p, err)
		}
		if err := os.WriteFile(abs, []byte(files[p]), 0o644); err != nil {
			return created, modified, fmt.Errorf("could not write %q: %w", p, err)
		}

		if isNew {
			created = append(created, p)
		} else {
			modified = append(modified, p)
		}
	}
	return created, modified, nil
}

// WriteFile writes a single file, creating parent directories as needed.
func (w *Workspace) WriteFile(relativePath, content string) error {
	abs, err := w.Resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", relativePath, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", relativePath, err)
	}
	return nil
}

// ReadFileMap loads every regular file under the workspace root back into a
// file map, skipping dot directories and node_modules.
func (w *Workspace) ReadFileMap() (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != w.root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not read workspace: %w", err)
	}
	return files, nil
}
