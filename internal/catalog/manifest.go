package catalog

import (
	"encoding/json"
	"os"

	"draftkit/internal/apperr"
)

// Manifest describes a populated data directory. The distribution tooling
// writes it last, so a readable manifest marks a complete download.
type Manifest struct {
	DownloadedBy string             `json:"downloaded_by"`
	DownloadDate string             `json:"download_date"`
	Versions     ManifestVersions   `json:"versions"`
	Templates    []ManifestTemplate `json:"templates,omitempty"`
}

type ManifestVersions struct {
	Tailwind string `json:"tailwind"`
	Elements string `json:"elements"`
}

type ManifestTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LoadManifest reads the data directory manifest. A missing file is a
// NotFound error; commands treat that as "no runtime data".
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFoundf("no manifest at %s", path)
		}
		return nil, apperr.Statef("read manifest: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperr.Statef("manifest %s does not parse: %v", path, err)
	}
	return &m, nil
}
