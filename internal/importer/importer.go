// Package importer reads quotation line items from csv, xlsx and yaml files.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ItemInput is one row as read from a file. Values stay text: numeric
// coercion happens in the ledger.
type ItemInput struct {
	Description string `yaml:"description"`
	Area        string `yaml:"area"`
	Quantity    string `yaml:"qty"`
	Rate        string `yaml:"rate"`
}

// IsBlank reports whether every field is empty.
func (in ItemInput) IsBlank() bool {
	return strings.TrimSpace(in.Description+in.Area+in.Quantity+in.Rate) == ""
}

// Parser converts an item file into ItemInputs.
type Parser interface {
	Parse(r io.Reader) ([]ItemInput, error)
	Format() string
}

// Registry holds parsers keyed by file extension.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes an item file found by Scan.
type FileInfo struct {
	Name   string
	Path   string
	Format string
	Size   int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser, aliases ...string) {
	for _, key := range append([]string{p.Format()}, aliases...) {
		key = strings.ToLower(key)
		if _, ok := r.parsers[key]; ok {
			panic("duplicate parser format: " + key)
		}
		r.parsers[key] = p
	}
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Formats lists the registered formats, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	r.Register(&YAMLParser{}, "yml")
	return r
}

// ReadFile parses path with the parser registered for its extension.
func (r *Registry) ReadFile(path string) ([]ItemInput, error) {
	p := r.Get(filepath.Ext(path))
	if p == nil {
		return nil, fmt.Errorf("reading %s: unsupported format %q (want one of %s)",
			path, filepath.Ext(path), strings.Join(r.Formats(), ", "))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening items: %w", err)
	}
	defer f.Close()

	items, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// Scan returns the item files in dir that some parser can read.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading items dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := r.Get(filepath.Ext(e.Name()))
		if p == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Format: p.Format(),
			Size:   info.Size(),
		})
	}
	return files, nil
}
