package scanner

import (
	"fmt"

	"github.com/cheerioskun/grepninja/internal/models"
	"gopkg.in/yaml.v3"
)

// Manifest is the serialisable form of a resolution run
type Manifest struct {
	Recursive    bool            `yaml:"recursive"`
	Readable     int             `yaml:"readable"`
	Unresolvable int             `yaml:"unresolvable"`
	Entries      []ManifestEntry `yaml:"entries"`
}

// ManifestEntry is one resolved path. Error is set only for failures.
type ManifestEntry struct {
	Kind  string `yaml:"kind"`
	Path  string `yaml:"path,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// NewManifest builds a manifest from resolver output, keeping its order
func NewManifest(entries []models.Resolved, recursive bool) *Manifest {
	manifest := &Manifest{
		Recursive: recursive,
		Entries:   make([]ManifestEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		if !entry.Ok() {
			manifest.Unresolvable++
			manifest.Entries = append(manifest.Entries, ManifestEntry{
				Kind:  "error",
				Error: entry.Err.Error(),
			})
			continue
		}

		manifest.Readable++
		manifest.Entries = append(manifest.Entries, ManifestEntry{
			Kind: entry.Source.Kind.String(),
			Path: entry.Source.Name,
		})
	}

	return manifest
}

// Encode renders the manifest as a YAML document
func (m *Manifest) Encode() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}

// DecodeManifest parses a YAML manifest
func DecodeManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}
