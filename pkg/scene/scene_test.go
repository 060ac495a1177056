package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/chart/pkg/chart"
	"github.com/go-drift/chart/pkg/charttest"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/value"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.YML", FormatYAML, false},
		{"dir/a.toml", FormatTOML, false},
		{"a.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if tt.err {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadYAML(t *testing.T) {
	s, err := Load("testdata/line.yaml")
	require.NoError(t, err)

	assert.Equal(t, "line", s.Chart)
	assert.Equal(t, "dashboard", s.ClassName)
	assert.Equal(t, value.Object{"height": value.String("300px")}, s.Style)
	assert.Len(t, s.Passes, 4)
	assert.True(t, s.Unmount)
	assert.Equal(t, "testdata/line.yaml", s.Path)
	assert.Equal(t, []string{"label.formatter"}, s.Passes[3].FuncPaths())
}

func TestLoadTOML(t *testing.T) {
	s, err := Load("testdata/line.toml")
	require.NoError(t, err)

	assert.Equal(t, "line", s.Chart)
	assert.False(t, s.Unmount)
	require.Len(t, s.Passes, 2)
	assert.True(t, s.Passes[0]["data"].Equal(value.MustFromAny([]int{1, 2, 3})))
	assert.Equal(t, []string{"label.formatter"}, s.Passes[1].FuncPaths())
}

func TestYAMLAndTOMLAgree(t *testing.T) {
	y, err := Load("testdata/line.yaml")
	require.NoError(t, err)
	tm, err := Load("testdata/line.toml")
	require.NoError(t, err)

	assert.True(t, y.Passes[0].Equal(tm.Passes[0]))
	assert.True(t, y.Style.Equal(tm.Style))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"no passes", "chart: line\n", FormatYAML},
		{"no chart", "passes:\n  - {xField: a}\n", FormatYAML},
		{"unknown key", "chart: line\ncolour: red\npasses: [{}]\n", FormatYAML},
		{"bad yaml", "chart: [\n", FormatYAML},
		{"pass not a mapping", "chart: line\npasses: [3]\n", FormatYAML},
		{"toml unknown key", "chart = \"line\"\ncolour = 1\n[[passes]]\nx = 1\n", FormatTOML},
		{"toml chart type", "chart = 1\n[[passes]]\nx = 1\n", FormatTOML},
		{"toml bad", "chart = \n", FormatTOML},
		{"toml passes not tables", "chart = \"line\"\npasses = [1, 2]\n", FormatTOML},
		{"unknown format", "chart: line", Format("ini")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindConfig), "got %v", err)
		})
	}
}

func TestParseChartInFirstPass(t *testing.T) {
	s, err := Parse([]byte("passes:\n  - {chart: bar, xField: a}\n  - {xField: b}\n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, s.Chart)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestLoadSetsPathOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: line\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path="+path)
}

func TestFieldsAppliesDefaults(t *testing.T) {
	s, err := Load("testdata/line.yaml")
	require.NoError(t, err)

	fields, err := s.Fields(0, nil)
	require.NoError(t, err)
	assert.Equal(t, value.String("line"), fields["chart"])
	assert.Equal(t, value.String("dashboard"), fields["className"])
	assert.True(t, fields["style"].Equal(value.ObjectOf(s.Style)))

	// Defaults never leak back into the scene.
	_, ok := s.Passes[0]["chart"]
	assert.False(t, ok)
}

func TestFieldsResolvesCallbacks(t *testing.T) {
	s, err := Load("testdata/line.yaml")
	require.NoError(t, err)

	_, err = s.Fields(3, value.Funcs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passes[3]")

	fields, err := s.Fields(3, value.Funcs{"percent": func(float64) string { return "" }})
	require.NoError(t, err)
	f, _ := fields.Lookup("label.formatter")
	c, ok := f.AsCallable()
	require.True(t, ok)
	assert.True(t, c.Resolved())

	_, err = s.Fields(9, nil)
	assert.Error(t, err)
}

func TestReplayThroughAdapter(t *testing.T) {
	s, err := Load("testdata/line.yaml")
	require.NoError(t, err)

	rec := charttest.NewRecorder()
	types := chart.NewRegistry()
	types.Register("line", rec.Constructor())
	funcs := value.Funcs{"percent": func(float64) string { return "" }}

	var a *chart.Adapter
	for i := range s.Passes {
		p, err := s.Props(i, types, funcs)
		require.NoError(t, err)
		if i == 0 {
			a, err = chart.Mount(p)
		} else {
			err = a.Update(p)
		}
		require.NoError(t, err)
	}
	require.NoError(t, a.Unmount())

	assert.Equal(t, []string{
		charttest.MethodConstruct, charttest.MethodRender,
		charttest.MethodChangeData,
		charttest.MethodUpdateConfig, charttest.MethodRender,
		charttest.MethodUpdateConfig, charttest.MethodRender,
		charttest.MethodDestroy,
	}, rec.Methods())
	assert.Equal(t, "dashboard", a.MountPoint().ClassName)
}

func TestLoadConfig(t *testing.T) {
	a, err := LoadConfig("testdata/config_a.yaml")
	require.NoError(t, err)
	b, err := LoadConfig("testdata/config_b.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"tooltip.formatter"}, a.FuncPaths())
	assert.Equal(t, []string{"tooltip.formatter"}, b.FuncPaths())

	d := chart.Classify(a.Without(chart.KeyData), b.Without(chart.KeyData))
	assert.False(t, d.Changed)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("testdata/nope.json")
	assert.True(t, errors.IsKind(err, errors.KindConfig))

	_, err = LoadConfig("testdata/missing.yaml")
	assert.True(t, errors.IsKind(err, errors.KindConfig))

	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- 1\n- 2\n"), 0o600))
	_, err = LoadConfig(path)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg)
}
