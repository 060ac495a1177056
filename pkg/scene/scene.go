// Package scene loads scene files: a named chart type plus an ordered list
// of property passes to replay through a chart adapter.
//
// Scenes are YAML or TOML. In YAML a callback is written `!fn name`; in both
// formats the mapping {$fn: name} works too.
//
//	chart: line
//	className: dashboard
//	style: {height: 300px}
//	passes:
//	  - {data: [1, 2, 3], xField: a}
//	  - {data: [4, 5, 6], xField: a, label: {formatter: !fn percent}}
package scene

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/chart/pkg/chart"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/value"
)

// Format is a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported scene extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
}

// Scene is a decoded scene file.
type Scene struct {
	// Chart is the default chart type name for every pass.
	Chart string
	// ClassName and Style are presentation defaults for every pass.
	ClassName string
	Style     value.Object
	// Passes are flat property objects, mount first.
	Passes []value.Object
	// Unmount reports whether the replay ends with an unmount. Defaults to
	// true.
	Unmount bool

	// Path is the file the scene was loaded from, if any.
	Path string
}

type yamlScene struct {
	Chart     string         `yaml:"chart"`
	ClassName string         `yaml:"className"`
	Style     value.Object   `yaml:"style"`
	Passes    []value.Object `yaml:"passes"`
	Unmount   *bool          `yaml:"unmount"`
}

var sceneKeys = map[string]bool{
	"chart": true, "className": true, "style": true, "passes": true, "unmount": true,
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &errors.ChartError{Op: "scene.Load", Kind: errors.KindConfig, Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ChartError{Op: "scene.Load", Kind: errors.KindConfig, Path: path, Err: err}
	}
	s, err := Parse(data, format)
	if err != nil {
		var ce *errors.ChartError
		if stderrors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	const op = "scene.Parse"
	var (
		s   *Scene
		err error
	)
	switch format {
	case FormatYAML:
		s, err = parseYAML(data)
	case FormatTOML:
		s, err = parseTOML(data)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, errors.New(op, errors.KindConfig, err)
	}
	if err := s.validate(); err != nil {
		return nil, errors.New(op, errors.KindConfig, err)
	}
	return s, nil
}

func parseYAML(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var raw yamlScene
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &Scene{
		Chart:     strings.TrimSpace(raw.Chart),
		ClassName: raw.ClassName,
		Style:     raw.Style,
		Passes:    raw.Passes,
		Unmount:   raw.Unmount == nil || *raw.Unmount,
	}, nil
}

func parseTOML(data []byte) (*Scene, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	for k := range raw {
		if !sceneKeys[k] {
			return nil, fmt.Errorf("unknown scene key %q", k)
		}
	}

	s := &Scene{Unmount: true}
	var ok bool
	if v, present := raw["chart"]; present {
		if s.Chart, ok = v.(string); !ok {
			return nil, fmt.Errorf("chart: want a string, got %T", v)
		}
		s.Chart = strings.TrimSpace(s.Chart)
	}
	if v, present := raw["className"]; present {
		if s.ClassName, ok = v.(string); !ok {
			return nil, fmt.Errorf("className: want a string, got %T", v)
		}
	}
	if v, present := raw["unmount"]; present {
		if s.Unmount, ok = v.(bool); !ok {
			return nil, fmt.Errorf("unmount: want a bool, got %T", v)
		}
	}
	if v, present := raw["style"]; present {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("style: want a table, got %T", v)
		}
		style, err := value.ObjectFrom(m)
		if err != nil {
			return nil, fmt.Errorf("style: %w", err)
		}
		s.Style = style
	}
	if v, present := raw["passes"]; present {
		passes, err := value.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("passes: %w", err)
		}
		list, ok := passes.AsArray()
		if !ok {
			return nil, fmt.Errorf("passes: want an array of tables, got %s", passes.Kind())
		}
		for i, p := range list {
			obj, ok := p.AsObject()
			if !ok {
				return nil, fmt.Errorf("passes[%d]: want a table, got %s", i, p.Kind())
			}
			s.Passes = append(s.Passes, obj)
		}
	}
	return s, nil
}

func (s *Scene) validate() error {
	if len(s.Passes) == 0 {
		return fmt.Errorf("scene has no passes")
	}
	if s.Chart != "" {
		return nil
	}
	if v, ok := s.Passes[0][chart.KeyChart]; ok && !v.IsNull() {
		return nil
	}
	return fmt.Errorf("no chart type: set %q at the top level or in the first pass", chart.KeyChart)
}

// Fields returns pass i as a flat property object with the scene defaults
// filled in and callbacks bound through funcs.
func (s *Scene) Fields(i int, funcs value.FuncRegistry) (value.Object, error) {
	if i < 0 || i >= len(s.Passes) {
		return nil, errors.Errorf("scene.Fields", errors.KindConfig, "pass %d out of range [0,%d)", i, len(s.Passes))
	}
	fields := s.Passes[i].Clone()
	if _, ok := fields[chart.KeyChart]; !ok && s.Chart != "" {
		fields[chart.KeyChart] = value.String(s.Chart)
	}
	if _, ok := fields[chart.KeyClassName]; !ok && s.ClassName != "" {
		fields[chart.KeyClassName] = value.String(s.ClassName)
	}
	if _, ok := fields[chart.KeyStyle]; !ok && s.Style != nil {
		fields[chart.KeyStyle] = value.ObjectOf(s.Style.Clone())
	}

	bound, err := fields.Resolve(funcs)
	if err != nil {
		return nil, &errors.ChartError{Op: "scene.Fields", Kind: errors.KindConfig,
			Path: fmt.Sprintf("passes[%d]", i), Err: err}
	}
	return bound, nil
}

// Props returns pass i as chart.Props, looking chart types up in types.
func (s *Scene) Props(i int, types *chart.Registry, funcs value.FuncRegistry) (chart.Props, error) {
	fields, err := s.Fields(i, funcs)
	if err != nil {
		return chart.Props{}, err
	}
	return chart.PropsFromObject(fields, types)
}
