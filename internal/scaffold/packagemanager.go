package scaffold

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"draftkit/internal/apperr"
)

// PackageManager is a JavaScript package manager.
type PackageManager string

const (
	PMNpm  PackageManager = "npm"
	PMPnpm PackageManager = "pnpm"
	PMYarn PackageManager = "yarn"
	PMBun  PackageManager = "bun"
)

func ParsePackageManager(s string) (PackageManager, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "npm":
		return PMNpm, nil
	case "pnpm":
		return PMPnpm, nil
	case "yarn":
		return PMYarn, nil
	case "bun":
		return PMBun, nil
	default:
		return "", apperr.InvalidInputf("unknown package manager %q (expected npm, pnpm, yarn, or bun)", s)
	}
}

func (m PackageManager) String() string { return string(m) }

// lockfiles in detection order. Faster managers first; npm last as the
// most compatible.
var lockfiles = []struct {
	name string
	pm   PackageManager
}{
	{"bun.lockb", PMBun},
	{"bun.lock", PMBun},
	{"pnpm-lock.yaml", PMPnpm},
	{"yarn.lock", PMYarn},
	{"package-lock.json", PMNpm},
}

// DetectPackageManager picks a manager for a directory. An existing
// lockfile wins so an established project stays consistent, then an
// explicit preference, then whatever faster tool is on PATH, then npm.
func DetectPackageManager(dir string, preference PackageManager) PackageManager {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.name)); err == nil {
			return lf.pm
		}
	}

	if preference != "" {
		return preference
	}

	for _, pm := range []PackageManager{PMBun, PMPnpm, PMYarn} {
		if _, err := exec.LookPath(string(pm)); err == nil {
			return pm
		}
	}
	return PMNpm
}

// InstallCmd is the dependency install command line.
func (m PackageManager) InstallCmd() []string {
	if m == PMYarn {
		return []string{"yarn", "install"}
	}
	return []string{string(m), "install"}
}

// DevCmd is the dev server command line.
func (m PackageManager) DevCmd() []string {
	switch m {
	case PMPnpm, PMYarn:
		return []string{string(m), "dev"}
	default:
		return []string{string(m), "run", "dev"}
	}
}
