package pattern

import (
	"embed"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/logging"
)

//go:embed builtin/*.toml
var builtinFiles embed.FS

// Store is the layered pattern registry. All three layers are read at
// construction; Reload re-reads the disk layers. Definitions are frozen
// between reloads.
type Store struct {
	userDir    string
	projectDir string

	order    []string
	patterns map[string]*Pattern
}

// NewStore loads built-ins plus the user and project layers. Either
// directory may be empty or missing; that layer is simply skipped.
func NewStore(userDir, projectDir string) *Store {
	s := &Store{userDir: userDir, projectDir: projectDir}
	s.Reload()
	return s
}

// Reload rebuilds the registry from all layers. It is idempotent: with
// unchanged files the resulting registry is identical.
func (s *Store) Reload() {
	s.order = nil
	s.patterns = make(map[string]*Pattern)

	entries, err := builtinFiles.ReadDir("builtin")
	if err != nil {
		// Embedded data is part of the binary; absence is a build defect.
		panic("pattern: embedded builtin definitions missing: " + err.Error())
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := builtinFiles.ReadFile("builtin/" + name)
		if err != nil {
			panic("pattern: embedded builtin unreadable: " + err.Error())
		}
		p, err := Parse(data, SourceBuiltin)
		if err != nil {
			panic("pattern: embedded builtin invalid: " + err.Error())
		}
		s.insert(p)
	}

	s.loadDir(s.userDir, SourceUser)
	s.loadDir(s.projectDir, SourceProject)
}

// loadDir reads every .toml file in a layer directory. Malformed files are
// logged and skipped; loading continues.
func (s *Store) loadDir(dir string, source Source) {
	if dir == "" {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logging.Warn("Skipping unreadable pattern file", "path", path, "error", err)
			continue
		}
		p, err := Parse(data, source)
		if err != nil {
			logging.Warn("Skipping invalid pattern file", "path", path, "error", err)
			continue
		}
		s.insert(p)
	}
}

// insert registers a pattern. An existing id is overridden in place so that
// list order stays stable across layers.
func (s *Store) insert(p *Pattern) {
	if _, exists := s.patterns[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.patterns[p.ID] = p
}

// Get returns the highest-precedence pattern with the id.
func (s *Store) Get(id string) (*Pattern, error) {
	p, ok := s.patterns[id]
	if !ok {
		return nil, apperr.NotFoundf("pattern %q is not loaded (available: %s)", id, strings.Join(s.IDs(), ", "))
	}
	return p, nil
}

// List returns every loaded pattern, insertion-stable within a layer.
func (s *Store) List() []*Pattern {
	out := make([]*Pattern, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.patterns[id])
	}
	return out
}

func (s *Store) IDs() []string {
	return append([]string(nil), s.order...)
}
