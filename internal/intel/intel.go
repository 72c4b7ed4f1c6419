// Package intel defines the component-intelligence dataset: per-component
// style profiles and usage context produced offline by the template
// analyzer and consumed by the matcher. The dataset is optional input; the
// matcher stays correct without it.
package intel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"draftkit/internal/style"
)

// Neighbor records how often another component sits next to this one in
// analyzed pages.
type Neighbor struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Usage is the observed context of one component across vendor templates.
type Usage struct {
	Frequency  float64    `json:"frequency"`
	FollowedBy []Neighbor `json:"followed_by,omitempty"`
	PrecededBy []Neighbor `json:"preceded_by,omitempty"`
	PageTypes  []string   `json:"page_types,omitempty"`
	Position   string     `json:"position,omitempty"`
	Categories []string   `json:"categories,omitempty"`
}

// Component is one dataset entry.
type Component struct {
	Style style.Profile `json:"style"`
	Usage Usage         `json:"usage"`
}

type Metadata struct {
	TotalSections int `json:"total_sections"`
	TotalPages    int `json:"total_pages"`
}

// Dataset is an adjacency map over component ids; no entry references
// another by pointer.
type Dataset struct {
	Components map[string]Component `json:"components"`
	Metadata   Metadata             `json:"metadata"`
}

// Load reads a dataset file. A missing file is a nil dataset, not an error;
// intelligence is optional everywhere.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read intelligence dataset: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse intelligence dataset: %w", err)
	}
	return &d, nil
}

// Get looks a component up; nil datasets answer false.
func (d *Dataset) Get(id string) (Component, bool) {
	if d == nil {
		return Component{}, false
	}
	c, ok := d.Components[id]
	return c, ok
}

// Write persists the dataset atomically: the file either holds a complete
// document or keeps its previous content.
func (d *Dataset) Write(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode intelligence dataset: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	tempPath := path + ".tmp"
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary dataset file: %w", err)
	}

	var ok bool
	defer func() {
		f.Close()
		if !ok {
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temporary dataset file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to move dataset into place: %w", err)
	}
	ok = true
	return nil
}
