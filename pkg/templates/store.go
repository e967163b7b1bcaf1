// Package templates resolves template sources by name. Built-in adapter
// templates ship embedded in the binary; writers can shadow nothing but add
// their own under the user template directory, and explicit paths always
// win. The store hands out raw source text; compilation belongs to the
// engine and its cache.
package templates

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// Origin identifies where a template was found.
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginUser    Origin = "user"
)

// Entry describes one listable template.
type Entry struct {
	Name   string
	Origin Origin
	// Path is the on-disk location for user templates; empty for built-ins.
	Path string
}

// Option configures the store.
type Option func(*Store)

// WithBuiltin registers an embedded template filesystem under a namespace,
// typically the renderer name ("markdown", "zonbook").
func WithBuiltin(namespace string, fsys fs.FS) Option {
	return func(s *Store) {
		namespace = strings.TrimSpace(namespace)
		if namespace == "" || fsys == nil {
			return
		}
		s.builtins[namespace] = fsys
	}
}

// WithUserDir points the store at a directory of writer-managed templates.
func WithUserDir(dir string) Option {
	return func(s *Store) {
		s.userDir = strings.TrimSpace(dir)
	}
}

// Store resolves template names to source text.
type Store struct {
	builtins map[string]fs.FS
	userDir  string
}

// NewStore constructs a Store from the supplied options.
func NewStore(options ...Option) *Store {
	s := &Store{builtins: make(map[string]fs.FS)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Load resolves a template by name. Resolution order: an existing file path
// is read directly; otherwise the name (with the default extension added
// when missing) is looked up as "namespace/file" among the built-ins, then
// in the user directory.
func (s *Store) Load(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("templates: name is required")
	}

	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("templates: read %s: %w", name, err)
		}
		return string(data), nil
	}

	qualified := ensureExtension(name)

	if namespace, file, ok := strings.Cut(qualified, "/"); ok {
		if fsys, exists := s.builtins[namespace]; exists {
			if data, err := fs.ReadFile(fsys, file); err == nil {
				return string(data), nil
			}
		}
	}

	if s.userDir != "" {
		path := filepath.Join(s.userDir, filepath.FromSlash(qualified))
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	return "", fmt.Errorf("templates: template %q not found", name)
}

// Save writes a template into the user directory, creating it on demand,
// and returns the path written.
func (s *Store) Save(name, content string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("templates: name is required")
	}
	if s.userDir == "" {
		return "", fmt.Errorf("templates: user template directory is not configured")
	}

	rel := filepath.FromSlash(ensureExtension(name))
	path := filepath.Join(s.userDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("templates: create template directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("templates: write %s: %w", path, err)
	}
	return path, nil
}

// List enumerates built-in and user templates, sorted by name. Built-ins are
// listed under their namespace ("markdown/document.tmpl").
func (s *Store) List() ([]Entry, error) {
	var entries []Entry

	for namespace, fsys := range s.builtins {
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			entries = append(entries, Entry{
				Name:   namespace + "/" + path,
				Origin: OriginBuiltin,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("templates: walk builtin %s: %w", namespace, err)
		}
	}

	if s.userDir != "" {
		err := filepath.WalkDir(s.userDir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if os.IsNotExist(walkErr) {
					return filepath.SkipAll
				}
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(s.userDir, path)
			if err != nil {
				return err
			}
			entries = append(entries, Entry{
				Name:   filepath.ToSlash(rel),
				Origin: OriginUser,
				Path:   path,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("templates: walk user templates: %w", err)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Origin < entries[j].Origin
	})
	return entries, nil
}

func ensureExtension(name string) string {
	if filepath.Ext(name) == "" {
		return name + DefaultExtension
	}
	return name
}
