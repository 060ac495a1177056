package scene

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/value"
)

// LoadConfig reads a single chart configuration (a flat property object)
// from a YAML or TOML file.
func LoadConfig(path string) (value.Object, error) {
	const op = "scene.LoadConfig"
	format, err := FormatOf(path)
	if err != nil {
		return nil, &errors.ChartError{Op: op, Kind: errors.KindConfig, Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ChartError{Op: op, Kind: errors.KindConfig, Path: path, Err: err}
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return nil, &errors.ChartError{Op: op, Kind: errors.KindConfig, Path: path, Err: err}
	}
	return cfg, nil
}

// ParseConfig decodes a single chart configuration.
func ParseConfig(data []byte, format Format) (value.Object, error) {
	switch format {
	case FormatYAML:
		var cfg value.Object
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if cfg == nil {
			cfg = value.Object{}
		}
		return cfg, nil
	case FormatTOML:
		var raw map[string]any
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return value.ObjectFrom(raw)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
