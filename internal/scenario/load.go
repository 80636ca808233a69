package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a scenario encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatHCL   Format = "hcl"
	FormatASCII Format = "ascii"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".txt", ".grid":
		return FormatASCII, nil
	default:
		return "", fmt.Errorf("unknown scenario format for %q", path)
	}
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := parse(data, format, path)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (*Scenario, error) {
	return parse(data, format, "scenario."+string(format))
}

func parse(data []byte, format Format, filename string) (*Scenario, error) {
	var (
		s   *Scenario
		err error
	)
	switch format {
	case FormatYAML:
		s, err = parseYAML(data)
	case FormatHCL:
		s, err = parseHCL(data, filename)
	case FormatASCII:
		s, err = parseLayout(string(data))
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
	if err != nil {
		return nil, err
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseYAML(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if s.Layout == "" {
		return &s, nil
	}

	drawn, err := parseLayout(s.Layout)
	if err != nil {
		return nil, err
	}
	drawn.Name = s.Name
	drawn.CellSize = s.CellSize
	return drawn, nil
}
