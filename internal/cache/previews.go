package cache

import (
	"os"
	"path/filepath"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
)

// Preview images live next to the component sources.
//
// Layout: cache/previews/<component-id>/<mode>.png

func (c *Cache) previewsDir() string {
	return filepath.Join(c.paths.CacheDir(), "previews")
}

// PreviewPath returns where a component's preview image lives in the cache.
func (c *Cache) PreviewPath(componentID string, mode catalog.Mode) string {
	return filepath.Join(c.previewsDir(), componentID, string(mode)+".png")
}

// HasPreview reports whether a preview image is cached.
func (c *Cache) HasPreview(componentID string, mode catalog.Mode) bool {
	info, err := os.Stat(c.PreviewPath(componentID, mode))
	return err == nil && info.Mode().IsRegular()
}

// GetPreview returns a cached preview image, or ok=false when absent.
func (c *Cache) GetPreview(componentID string, mode catalog.Mode) ([]byte, bool) {
	data, err := os.ReadFile(c.PreviewPath(componentID, mode))
	if err != nil {
		return nil, false
	}
	return data, true
}

// StorePreview writes a preview image through a temp file and rename, same
// as component sources.
func (c *Cache) StorePreview(componentID string, mode catalog.Mode, data []byte) (string, error) {
	path := c.PreviewPath(componentID, mode)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperr.Transientf("creating preview directory: %v", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return "", apperr.Transientf("writing preview file: %v", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", apperr.Transientf("moving preview file into place: %v", err)
	}
	return path, nil
}
