package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadDocument reads a YAML (or JSON, which is valid YAML) document from
// path into a string-keyed map.
func loadDocument(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return doc, nil
}
