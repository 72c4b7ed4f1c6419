package preset

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/logging"
)

//go:embed builtin/*.toml
var builtinFiles embed.FS

// Store is the layered preset registry plus the process-wide active stack.
// Definitions are frozen between reloads; the stack is the only mutable
// state and is not written to concurrently.
type Store struct {
	userDir    string
	projectDir string

	order   []string
	presets map[string]*Preset
	active  []string
}

func NewStore(userDir, projectDir string) *Store {
	s := &Store{userDir: userDir, projectDir: projectDir}
	s.Reload()
	return s
}

// Reload rebuilds the registry. The active stack survives, minus any names
// that no longer resolve.
func (s *Store) Reload() {
	s.order = nil
	s.presets = make(map[string]*Preset)

	entries, err := builtinFiles.ReadDir("builtin")
	if err != nil {
		panic("preset: embedded builtin definitions missing: " + err.Error())
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := builtinFiles.ReadFile("builtin/" + name)
		if err != nil {
			panic("preset: embedded builtin unreadable: " + err.Error())
		}
		p, err := Parse(data, SourceBuiltin)
		if err != nil {
			panic("preset: embedded builtin invalid: " + err.Error())
		}
		s.insert(p)
	}

	s.loadDir(s.userDir, SourceUser)
	s.loadDir(s.projectDir, SourceProject)
	s.dropCyclic()

	kept := s.active[:0]
	for _, name := range s.active {
		if _, ok := s.presets[name]; ok {
			kept = append(kept, name)
		}
	}
	s.active = kept
}

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
			logging.Warn("Skipping unreadable preset file", "path", path, "error", err)
			continue
		}
		p, err := Parse(data, source)
		if err != nil {
			logging.Warn("Skipping invalid preset file", "path", path, "error", err)
			continue
		}
		s.insert(p)
	}
}

func (s *Store) insert(p *Preset) {
	if _, exists := s.presets[p.Name]; !exists {
		s.order = append(s.order, p.Name)
	}
	s.presets[p.Name] = p
}

// dropCyclic removes every preset whose extends chain loops. Walking with a
// visited set at load keeps later chain resolution total.
func (s *Store) dropCyclic() {
	var cyclic []string
	for _, name := range s.order {
		visited := map[string]bool{}
		cur := name
		for cur != "" {
			if visited[cur] {
				cyclic = append(cyclic, name)
				break
			}
			visited[cur] = true
			p, ok := s.presets[cur]
			if !ok {
				break
			}
			cur = p.Extends
		}
	}
	for _, name := range cyclic {
		logging.Warn("Skipping preset with extends cycle", "preset", name)
		delete(s.presets, name)
		for i, id := range s.order {
			if id == name {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) Get(name string) (*Preset, error) {
	p, ok := s.presets[name]
	if !ok {
		return nil, apperr.NotFoundf("preset %q is not loaded (available: %s)", name, strings.Join(s.Names(), ", "))
	}
	return p, nil
}

func (s *Store) List() []*Preset {
	out := make([]*Preset, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.presets[name])
	}
	return out
}

func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Activate appends a preset to the stack, removing any earlier occurrence
// so the new position wins.
func (s *Store) Activate(name string) error {
	if _, ok := s.presets[name]; !ok {
		return apperr.NotFoundf("preset %q is not loaded (available: %s)", name, strings.Join(s.Names(), ", "))
	}
	s.removeActive(name)
	s.active = append(s.active, name)
	return nil
}

// Deactivate removes a preset from the stack; absent names are a no-op.
func (s *Store) Deactivate(name string) {
	s.removeActive(name)
}

func (s *Store) removeActive(name string) {
	for i, n := range s.active {
		if n == name {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

// SetStack replaces the stack. Every name is validated before anything
// changes; on failure the stack is untouched.
func (s *Store) SetStack(names []string) error {
	for _, name := range names {
		if _, ok := s.presets[name]; !ok {
			return apperr.NotFoundf("preset %q is not loaded (available: %s)", name, strings.Join(s.Names(), ", "))
		}
	}
	s.active = append([]string(nil), names...)
	return nil
}

func (s *Store) ActiveStack() []string {
	return append([]string(nil), s.active...)
}

func (s *Store) ClearActive() {
	s.active = nil
}

func (s *Store) activeFile() string {
	return filepath.Join(s.projectDir, "active-stack.json")
}

// LoadActive restores the persisted stack from the project directory.
// Names that no longer resolve are dropped. A missing file is an empty
// stack.
func (s *Store) LoadActive() error {
	data, err := os.ReadFile(s.activeFile())
	if err != nil {
		if os.IsNotExist(err) {
			s.active = nil
			return nil
		}
		return apperr.Statef("read active stack: %v", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return apperr.Statef("active stack file does not parse: %v", err)
	}

	s.active = s.active[:0]
	for _, name := range names {
		if _, ok := s.presets[name]; ok {
			s.active = append(s.active, name)
		} else {
			logging.Warn("Dropping unknown preset from persisted stack", "preset", name)
		}
	}
	return nil
}

// SaveActive persists the stack to the project directory via temp file and
// rename.
func (s *Store) SaveActive() error {
	if err := os.MkdirAll(s.projectDir, 0o755); err != nil {
		return apperr.Statef("create preset dir: %v", err)
	}
	data, err := json.Marshal(s.active)
	if err != nil {
		return apperr.Statef("encode active stack: %v", err)
	}

	path := s.activeFile()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return apperr.Statef("write active stack: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperr.Statef("write active stack: %v", err)
	}
	return nil
}

// chain resolves a preset's extends lineage root-first. Unknown parents end
// the chain; cycles were dropped at load.
func (s *Store) chain(name string) []*Preset {
	var lineage []*Preset
	visited := map[string]bool{}
	cur := name
	for cur != "" && !visited[cur] {
		visited[cur] = true
		p, ok := s.presets[cur]
		if !ok {
			break
		}
		lineage = append(lineage, p)
		cur = p.Extends
	}
	// Reverse: the root applies first, the preset itself last.
	for i, j := 0, len(lineage)-1; i < j; i, j = i+1, j-1 {
		lineage[i], lineage[j] = lineage[j], lineage[i]
	}
	return lineage
}

// MergedStyleOverrides folds the active stack left to right, resolving each
// preset's inheritance chain root-first.
func (s *Store) MergedStyleOverrides() StyleOverrides {
	var merged StyleOverrides
	for _, name := range s.active {
		for _, p := range s.chain(name) {
			merged.apply(p.StyleOverrides)
		}
	}
	return merged
}

// MergedVariantPreferences is the analogous map union with override.
func (s *Store) MergedVariantPreferences() map[string]string {
	merged, _ := s.MergedVariantPreferencesFor(s.active)
	return merged
}

// MergedVariantPreferencesFor merges an explicit stack without touching the
// active one, so per-request stacks never mutate shared state. Every name
// must resolve to a loaded preset.
func (s *Store) MergedVariantPreferencesFor(names []string) (map[string]string, error) {
	for _, name := range names {
		if _, ok := s.presets[name]; !ok {
			return nil, apperr.NotFoundf("preset %q is not loaded (available: %s)", name, strings.Join(s.Names(), ", "))
		}
	}
	merged := make(map[string]string)
	for _, name := range names {
		for _, p := range s.chain(name) {
			for sectionType, variant := range p.VariantPreferences {
				merged[sectionType] = variant
			}
		}
	}
	return merged, nil
}

// MergedBlacklist unions deny lists across the stack and its chains.
func (s *Store) MergedBlacklist() Blacklist {
	var merged Blacklist
	for _, name := range s.active {
		for _, p := range s.chain(name) {
			merged.Components = unionAppend(merged.Components, p.Blacklist.Components)
			merged.Tags = unionAppend(merged.Tags, p.Blacklist.Tags)
			merged.Categories = unionAppend(merged.Categories, p.Blacklist.Categories)
		}
	}
	return merged
}

// MergedWhitelist unions allow lists across the stack and its chains.
func (s *Store) MergedWhitelist() Whitelist {
	var merged Whitelist
	for _, name := range s.active {
		for _, p := range s.chain(name) {
			merged.Components = unionAppend(merged.Components, p.Whitelist.Components)
			merged.Tags = unionAppend(merged.Tags, p.Whitelist.Tags)
		}
	}
	return merged
}

// IsBlacklisted checks a component against the merged deny list. Category
// matching is by prefix so "Ecommerce" covers every ecommerce subtree.
func (s *Store) IsBlacklisted(componentID string, tags []string, category string) bool {
	bl := s.MergedBlacklist()
	for _, id := range bl.Components {
		if id == componentID {
			return true
		}
	}
	for _, deny := range bl.Tags {
		for _, tag := range tags {
			if tag == deny {
				return true
			}
		}
	}
	for _, prefix := range bl.Categories {
		if strings.HasPrefix(category, prefix) {
			return true
		}
	}
	return false
}

func unionAppend(dst, src []string) []string {
	for _, v := range src {
		found := false
		for _, have := range dst {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
