package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// DataPaths resolves every location under the runtime data directory. The
// layout is shared with the distribution tooling that populates it:
//
//	manifest.json
//	data/components/<framework>-v4.ndjson
//	docs/tailwind/{v3,v4}/<topic>.md
//	kits/catalyst/{typescript,javascript}/
//	elements/llms.txt
//	cache/components/<id>/
//	session.json
type DataPaths struct {
	Root string
}

// NewDataPaths returns the paths rooted at the platform data directory, or
// at the override when the config sets one.
func NewDataPaths(cfg *Config) DataPaths {
	if cfg != nil && cfg.DataDir != "" {
		return DataPaths{Root: cfg.DataDir}
	}
	return DataPaths{Root: filepath.Join(xdg.DataHome, AppName)}
}

func (d DataPaths) ManifestFile() string { return filepath.Join(d.Root, "manifest.json") }

func (d DataPaths) ComponentsDir() string { return filepath.Join(d.Root, "data", "components") }

// CorpusFile returns the NDJSON corpus path for a framework.
func (d DataPaths) CorpusFile(framework string) string {
	return filepath.Join(d.ComponentsDir(), framework+"-v4.ndjson")
}

func (d DataPaths) DocsDir(version string) string {
	return filepath.Join(d.Root, "docs", "tailwind", version)
}

func (d DataPaths) CatalystDir(language string) string {
	return filepath.Join(d.Root, "kits", "catalyst", language)
}

func (d DataPaths) ElementsFile() string {
	return filepath.Join(d.Root, "elements", "llms.txt")
}

func (d DataPaths) CacheDir() string { return filepath.Join(d.Root, "cache") }

func (d DataPaths) SessionFile() string { return filepath.Join(d.Root, "session.json") }

// HasRuntimeData reports whether the data directory has been populated. The
// manifest is written last during a download, so its presence marks a
// complete data set.
func (d DataPaths) HasRuntimeData() bool {
	info, err := os.Stat(d.ManifestFile())
	return err == nil && info.Mode().IsRegular()
}

// UserPatternsDir and friends give the user-scope override directories under
// the platform config dir, and the project-scope directories under the
// working directory.

func UserPatternsDir() string {
	return filepath.Join(xdg.ConfigHome, AppName, "patterns")
}

func UserPresetsDir() string {
	return filepath.Join(xdg.ConfigHome, AppName, "presets")
}

func ProjectPatternsDir() string { return filepath.Join(".", "."+AppName, "patterns") }

func ProjectPresetsDir() string { return filepath.Join(".", "."+AppName, "presets") }
