package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sourcesFile is the YAML shape of an external source list.
type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a source list from a YAML file. The file replaces the
// built-in list entirely; order in the file is output order.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var parsed sourcesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	if len(parsed.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s contains no sources", path)
	}

	return parsed.Sources, nil
}
