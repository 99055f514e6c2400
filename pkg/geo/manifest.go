package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes the reference data in a refdata directory: where the two
// CSV files live and how to read them.
type Manifest struct {
	ID        string     `yaml:"id" json:"id"`
	Version   string     `yaml:"version" json:"version"`
	Source    string     `yaml:"source" json:"source"`
	SourceURL string     `yaml:"source_url" json:"source_url,omitempty"`
	License   string     `yaml:"license" json:"license"`
	Countries SourceSpec `yaml:"countries" json:"-"`
	Aliases   SourceSpec `yaml:"aliases" json:"-"`
}

// SourceSpec describes the layout of one reference CSV.
type SourceSpec struct {
	File        string `yaml:"file"`
	Delimiter   string `yaml:"delimiter"`
	Encoding    string `yaml:"encoding"`
	HasHeader   bool   `yaml:"has_header"`
	KeyColumn   string `yaml:"key_column"`
	ValueColumn string `yaml:"value_column"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	m.applyDefaults()
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Countries.File == "" {
		m.Countries.File = "country_region.csv"
	}
	if m.Countries.KeyColumn == "" {
		m.Countries.KeyColumn = "country"
	}
	if m.Countries.ValueColumn == "" {
		m.Countries.ValueColumn = "region"
	}
	if m.Aliases.File == "" {
		m.Aliases.File = "alias_to_canonical.csv"
	}
	if m.Aliases.KeyColumn == "" {
		m.Aliases.KeyColumn = "alias"
	}
	if m.Aliases.ValueColumn == "" {
		m.Aliases.ValueColumn = "country_normalized"
	}
}
