// Package translate renders YAML documents in alternative formats.
// Profiles stay opaque on disk; these conversions exist purely for display
// and export (aidp show --format toml/json).
package translate

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// YAMLToTOML converts YAML data to TOML data.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml: %w", err)
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling toml: %w", err)
	}
	return out, nil
}

// YAMLToJSON converts YAML data to indented JSON data.
func YAMLToJSON(yamlData []byte) ([]byte, error) {
	var data any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml: %w", err)
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling json: %w", err)
	}
	return append(out, '\n'), nil
}
