package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads additional font names from a YAML file:
//
//	fonts:
//	  - "Iosevka Term"
//	  - "Berkeley Mono"
//
// The returned list is raw; pass it to New alongside the built-in
// sources to get dedup and ordering.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided corpus path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var file struct {
		Fonts []string `yaml:"fonts"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	if len(file.Fonts) == 0 {
		return nil, fmt.Errorf("corpus file %s lists no fonts", path)
	}

	return file.Fonts, nil
}
