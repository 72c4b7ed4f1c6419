// Package cache stores fetched component source on disk, one file per
// component variant, so repeat requests never touch the network.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
	"draftkit/internal/config"
)

// Cache is the on-disk component cache under the runtime data directory.
//
// Layout: cache/components/<component-id>/<framework>-v4-<mode>.<ext>
type Cache struct {
	paths config.DataPaths
}

func New(paths config.DataPaths) *Cache {
	return &Cache{paths: paths}
}

func (c *Cache) componentsDir() string {
	return filepath.Join(c.paths.CacheDir(), "components")
}

// Path returns where a component variant lives in the cache.
func (c *Cache) Path(componentID string, framework catalog.Framework, mode catalog.Mode) string {
	filename := fmt.Sprintf("%s-v4-%s.%s", framework, mode, framework.Ext())
	return filepath.Join(c.componentsDir(), componentID, filename)
}

// Has reports whether a variant is cached.
func (c *Cache) Has(componentID string, framework catalog.Framework, mode catalog.Mode) bool {
	info, err := os.Stat(c.Path(componentID, framework, mode))
	return err == nil && info.Mode().IsRegular()
}

// Get returns cached code, or ok=false when the variant is absent.
func (c *Cache) Get(componentID string, framework catalog.Framework, mode catalog.Mode) (string, bool) {
	data, err := os.ReadFile(c.Path(componentID, framework, mode))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Store writes a variant to the cache. The write goes through a temp file
// in the destination directory followed by a rename, so a dropped request
// leaves the entry either fully written or absent.
func (c *Cache) Store(componentID string, framework catalog.Framework, mode catalog.Mode, code string) (string, error) {
	path := c.Path(componentID, framework, mode)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperr.Transientf("creating cache directory: %v", err)
	}

	tempPath := path + ".tmp"
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", apperr.Transientf("creating cache file: %v", err)
	}

	var ok bool
	defer func() {
		f.Close()
		if !ok {
			os.Remove(tempPath)
		}
	}()

	if _, err := f.WriteString(code); err != nil {
		return "", apperr.Transientf("writing cache file: %v", err)
	}
	if err := f.Sync(); err != nil {
		return "", apperr.Transientf("syncing cache file: %v", err)
	}
	if err := f.Close(); err != nil {
		return "", apperr.Transientf("closing cache file: %v", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return "", apperr.Transientf("moving cache file into place: %v", err)
	}
	ok = true
	return path, nil
}

// Stats summarizes what the cache holds.
type Stats struct {
	FileCount      int   `json:"file_count"`
	TotalBytes     int64 `json:"total_bytes"`
	ComponentCount int   `json:"component_count"`
	PreviewCount   int   `json:"preview_count"`
}

// Stats walks the component and preview directories and counts files and
// bytes.
func (c *Cache) Stats() Stats {
	var stats Stats

	components, files, bytes := countTree(c.componentsDir())
	stats.ComponentCount = components
	stats.FileCount = files
	stats.TotalBytes = bytes

	_, previews, previewBytes := countTree(c.previewsDir())
	stats.PreviewCount = previews
	stats.TotalBytes += previewBytes

	return stats
}

// countTree counts the immediate subdirectories of root and the regular
// files one level below them.
func countTree(root string) (dirs, files int, bytes int64) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, 0, 0
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs++

		children, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		for _, child := range children {
			info, err := child.Info()
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			files++
			bytes += info.Size()
		}
	}
	return dirs, files, bytes
}

// Clear removes every cached component and preview and reports the bytes
// freed.
func (c *Cache) Clear() (int64, error) {
	stats := c.Stats()
	if err := os.RemoveAll(c.componentsDir()); err != nil {
		return 0, apperr.Transientf("clearing cache: %v", err)
	}
	if err := os.RemoveAll(c.previewsDir()); err != nil {
		return 0, apperr.Transientf("clearing preview cache: %v", err)
	}
	return stats.TotalBytes, nil
}
