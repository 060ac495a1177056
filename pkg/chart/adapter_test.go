package chart_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/chart/pkg/chart"
	"github.com/go-drift/chart/pkg/charttest"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/value"
)

func ints(ns ...int) value.Value {
	out := make([]value.Value, len(ns))
	for i, n := range ns {
		out[i] = value.Int(n)
	}
	return value.ArrayOf(out...)
}

func props(rec *charttest.Recorder, cfg value.Object) chart.Props {
	return chart.Props{Chart: rec.Constructor(), Config: cfg}
}

func mounted(t *testing.T, rec *charttest.Recorder, cfg value.Object) *chart.Adapter {
	t.Helper()
	a, err := chart.Mount(props(rec, cfg))
	require.NoError(t, err)
	return a
}

func TestMountConstructsAndRenders(t *testing.T) {
	rec := charttest.NewRecorder()
	cfg := value.Object{"data": ints(1, 2, 3), "xField": value.String("a")}

	a := mounted(t, rec, cfg)

	assert.Equal(t, []string{charttest.MethodConstruct, charttest.MethodRender}, rec.Methods())
	assert.True(t, rec.Calls[0].Arg.Equal(value.ObjectOf(cfg)), "construct gets the full configuration")
	assert.Equal(t, value.Object{"xField": value.String("a")}, a.Applied())
	assert.Equal(t, chart.StateMounted, a.State())
	assert.Same(t, rec.Engines[0], a.Engine())
	assert.Same(t, a.MountPoint(), rec.Engines[0].Mount)
}

func TestUpdateDataOnly(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"data": ints(1, 2, 3), "xField": value.String("a")})
	rec.Reset()

	require.NoError(t, a.Update(props(rec, value.Object{"data": ints(4, 5, 6), "xField": value.String("a")})))

	require.Equal(t, []string{charttest.MethodChangeData}, rec.Methods())
	assert.True(t, rec.Calls[0].Arg.Equal(ints(4, 5, 6)))
	assert.Equal(t, value.Object{"xField": value.String("a")}, a.Applied())
}

func TestUpdateReconfigures(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"data": ints(1, 2, 3), "xField": value.String("a")})
	rec.Reset()

	next := value.Object{"data": ints(4, 5, 6), "xField": value.String("b")}
	require.NoError(t, a.Update(props(rec, next)))

	require.Equal(t, []string{charttest.MethodUpdateConfig, charttest.MethodRender}, rec.Methods())
	assert.True(t, rec.Calls[0].Arg.Equal(value.ObjectOf(next)), "updateConfig gets data too")
	assert.Equal(t, value.Object{"xField": value.String("b")}, a.Applied())
	assert.Zero(t, rec.Count(charttest.MethodChangeData))
}

func TestUpdateIgnoresNewClosures(t *testing.T) {
	rec := charttest.NewRecorder()
	fn1 := func(string) {}
	fn2 := func(string) {}
	a := mounted(t, rec, value.Object{
		"data":    ints(1, 2, 3),
		"xField":  value.String("a"),
		"onClick": value.Func("", fn1),
	})
	rec.Reset()

	require.NoError(t, a.Update(props(rec, value.Object{
		"data":    ints(4, 5, 6),
		"xField":  value.String("a"),
		"onClick": value.Func("", fn2),
	})))

	assert.Equal(t, []string{charttest.MethodChangeData}, rec.Methods())
}

func TestUpdateIgnoresNestedClosures(t *testing.T) {
	rec := charttest.NewRecorder()
	cfg := func(fn any) value.Object {
		return value.Object{
			"label": value.ObjectOf(value.Object{
				"visible":   value.Bool(true),
				"formatter": value.Func("", fn),
			}),
			"series": value.ArrayOf(value.ObjectOf(value.Object{"render": value.Func("", fn)})),
		}
	}
	a := mounted(t, rec, cfg(func() {}))
	rec.Reset()

	require.NoError(t, a.Update(props(rec, cfg(func() {}))))
	assert.Equal(t, []string{charttest.MethodChangeData}, rec.Methods())
}

func TestUpdateCallbackReplacingData(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"tooltip": value.String("static")})
	rec.Reset()

	// A path that holds a callback on either side is excluded from both.
	require.NoError(t, a.Update(props(rec, value.Object{"tooltip": value.Func("", func() {})})))
	assert.Equal(t, []string{charttest.MethodChangeData}, rec.Methods())
}

func TestUpdateNonFunctionChangeNextToCallback(t *testing.T) {
	rec := charttest.NewRecorder()
	fn := func() {}
	a := mounted(t, rec, value.Object{
		"label": value.ObjectOf(value.Object{"formatter": value.Func("", fn), "offset": value.Int(1)}),
	})
	rec.Reset()

	require.NoError(t, a.Update(props(rec, value.Object{
		"label": value.ObjectOf(value.Object{"formatter": value.Func("", fn), "offset": value.Int(2)}),
	})))
	assert.Equal(t, []string{charttest.MethodUpdateConfig, charttest.MethodRender}, rec.Methods())
}

func TestUpdateMissingDataSendsNull(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"data": ints(1), "xField": value.String("a")})
	rec.Reset()

	require.NoError(t, a.Update(props(rec, value.Object{"xField": value.String("a")})))
	call, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, charttest.MethodChangeData, call.Method)
	assert.True(t, call.Arg.IsNull())
}

func TestConstructOnce(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"xField": value.String("a")})

	for i, field := range []string{"a", "b", "b", "c", "a"} {
		cfg := value.Object{"data": ints(i), "xField": value.String(field)}
		require.NoError(t, a.Update(props(rec, cfg)))
	}
	require.NoError(t, a.Unmount())

	assert.Equal(t, 1, rec.Count(charttest.MethodConstruct))
	assert.Len(t, rec.Engines, 1)
	assert.Equal(t, 1, rec.Count(charttest.MethodDestroy))
	assert.Equal(t, 3, rec.Count(charttest.MethodUpdateConfig))
	assert.Equal(t, 2, rec.Count(charttest.MethodChangeData))
}

func TestOnMountAfterFirstRender(t *testing.T) {
	rec := charttest.NewRecorder()
	var got []chart.Engine
	var methodsAtCallback []string

	p := props(rec, value.Object{"xField": value.String("a")})
	p.OnMount = func(e chart.Engine) {
		got = append(got, e)
		methodsAtCallback = rec.Methods()
	}

	a, err := chart.Mount(p)
	require.NoError(t, err)
	require.NoError(t, a.Update(p))
	p.Config = value.Object{"xField": value.String("b")}
	require.NoError(t, a.Update(p))

	require.Len(t, got, 1)
	assert.Same(t, rec.Engines[0], got[0])
	assert.Equal(t, []string{charttest.MethodConstruct, charttest.MethodRender}, methodsAtCallback)
}

func TestUnmountIdempotent(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"xField": value.String("a")})
	rec.Reset()

	require.NoError(t, a.Unmount())
	require.NoError(t, a.Unmount())

	assert.Equal(t, []string{charttest.MethodDestroy}, rec.Methods())
	assert.Nil(t, a.Engine())
	assert.Equal(t, chart.StateUnmounted, a.State())
	assert.Nil(t, a.MountPoint().Content())
}

func TestUnmountWithoutEngine(t *testing.T) {
	rec := charttest.NewRecorder()
	a := chart.New()
	require.NoError(t, a.Unmount())
	assert.Empty(t, rec.Calls)
}

func TestUpdateBeforeMountAndAfterUnmount(t *testing.T) {
	rec := charttest.NewRecorder()
	a := chart.New()
	require.NoError(t, a.Update(props(rec, value.Object{"xField": value.String("a")})))
	assert.Empty(t, rec.Calls)

	a = mounted(t, rec, value.Object{"xField": value.String("a")})
	require.NoError(t, a.Unmount())
	rec.Reset()
	require.NoError(t, a.Update(props(rec, value.Object{"xField": value.String("b")})))
	assert.Empty(t, rec.Calls)
}

func TestMountTwiceIsLifecycleError(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"xField": value.String("a")})

	err := a.Mount(props(rec, value.Object{"xField": value.String("a")}))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindLifecycle))
	assert.Len(t, rec.Engines, 1)

	require.NoError(t, a.Unmount())
	err = a.Mount(props(rec, value.Object{"xField": value.String("a")}))
	assert.True(t, errors.IsKind(err, errors.KindLifecycle))
	assert.Len(t, rec.Engines, 1)
}

func TestMountWithoutMountPointSkipsConstruction(t *testing.T) {
	rec := charttest.NewRecorder()
	called := false
	p := props(rec, value.Object{"data": ints(1), "xField": value.String("a")})
	p.OnMount = func(chart.Engine) { called = true }

	var a chart.Adapter
	require.NoError(t, a.Mount(p))
	require.NoError(t, a.Update(p))
	require.NoError(t, a.Unmount())

	assert.Empty(t, rec.Calls)
	assert.False(t, called)
	assert.Nil(t, a.MountPoint())
}

func TestMountWithoutConstructor(t *testing.T) {
	a := chart.New()
	err := a.Mount(chart.Props{Config: value.Object{}})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
	assert.Equal(t, chart.StateIdle, a.State())
}

func TestConstructErrorLeavesAdapterIdle(t *testing.T) {
	rec := charttest.NewRecorder()
	boom := stderrors.New("boom")
	rec.FailOn(charttest.MethodConstruct, boom)

	a, err := chart.Mount(props(rec, value.Object{}))
	assert.Same(t, boom, err)
	assert.Equal(t, chart.StateIdle, a.State())
	assert.Nil(t, a.Engine())

	rec.FailOn(charttest.MethodConstruct, nil)
	require.NoError(t, a.Mount(props(rec, value.Object{})))
	assert.Len(t, rec.Engines, 1)
}

func TestRenderErrorKeepsEngine(t *testing.T) {
	rec := charttest.NewRecorder()
	boom := stderrors.New("render failed")
	rec.FailOn(charttest.MethodRender, boom)
	called := false
	p := props(rec, value.Object{})
	p.OnMount = func(chart.Engine) { called = true }

	a, err := chart.Mount(p)
	assert.Same(t, boom, err)
	assert.False(t, called)
	assert.Equal(t, chart.StateMounted, a.State())

	require.NoError(t, a.Unmount())
	assert.Equal(t, 1, rec.Count(charttest.MethodDestroy))
}

func TestEngineErrorsPropagate(t *testing.T) {
	rec := charttest.NewRecorder()
	a := mounted(t, rec, value.Object{"xField": value.String("a")})

	updateErr := stderrors.New("update")
	rec.FailOn(charttest.MethodUpdateConfig, updateErr)
	err := a.Update(props(rec, value.Object{"xField": value.String("b")}))
	assert.Same(t, updateErr, err)
	// The applied configuration is replaced before the engine is told.
	assert.Equal(t, value.Object{"xField": value.String("b")}, a.Applied())

	dataErr := stderrors.New("data")
	rec.FailOn(charttest.MethodChangeData, dataErr)
	assert.Same(t, dataErr, a.Update(props(rec, value.Object{"xField": value.String("b")})))

	destroyErr := stderrors.New("destroy")
	rec.FailOn(charttest.MethodDestroy, destroyErr)
	assert.Same(t, destroyErr, a.Unmount())
	assert.Nil(t, a.Engine())
	require.NoError(t, a.Unmount())
	assert.Equal(t, 1, rec.Count(charttest.MethodDestroy))
}

func TestOnMountPanicPropagates(t *testing.T) {
	rec := charttest.NewRecorder()
	p := props(rec, value.Object{})
	p.OnMount = func(chart.Engine) { panic("callback") }

	assert.PanicsWithValue(t, "callback", func() { _, _ = chart.Mount(p) })
}

func TestAppliedIsDeepCopy(t *testing.T) {
	rec := charttest.NewRecorder()
	axis := value.Object{"min": value.Int(0)}
	cfg := value.Object{"axis": value.ObjectOf(axis)}
	a := mounted(t, rec, cfg)

	// Caller mutates its props in place; the next update must see a change.
	axis["min"] = value.Int(5)
	rec.Reset()
	require.NoError(t, a.Update(props(rec, cfg)))
	assert.Equal(t, []string{charttest.MethodUpdateConfig, charttest.MethodRender}, rec.Methods())

	applied := a.Applied()
	appliedAxis, _ := applied["axis"].AsObject()
	appliedAxis["min"] = value.Int(99)
	rec.Reset()
	require.NoError(t, a.Update(props(rec, cfg)))
	assert.Equal(t, []string{charttest.MethodChangeData}, rec.Methods())
}

func TestReservedKeysNeverReachEngine(t *testing.T) {
	rec := charttest.NewRecorder()
	cfg := value.Object{
		"xField":    value.String("a"),
		"className": value.String("leak"),
		"style":     value.ObjectOf(value.Object{"color": value.String("red")}),
	}
	p := props(rec, cfg)
	p.ClassName = "panel"
	p.Style = map[string]string{"height": "300px"}

	a, err := chart.Mount(p)
	require.NoError(t, err)

	assert.Equal(t, value.Object{"xField": value.String("a")}, rec.Engines[0].Config)
	assert.Equal(t, "panel", a.MountPoint().ClassName)
	assert.Equal(t, map[string]string{"height": "300px"}, a.MountPoint().Style)

	p.ClassName = "panel wide"
	p.Style["height"] = "400px"
	assert.Equal(t, "300px", a.MountPoint().Style["height"], "style is copied onto the mount point")
	rec.Reset()
	require.NoError(t, a.Update(p))
	assert.Equal(t, "panel wide", a.MountPoint().ClassName)
	assert.Equal(t, "400px", a.MountPoint().Style["height"])
	assert.Equal(t, []string{charttest.MethodChangeData}, rec.Methods(), "presentation changes are not configuration changes")
}

func TestMountPointPerAdapter(t *testing.T) {
	a, b := chart.New(), chart.New()
	assert.NotEmpty(t, a.MountPoint().ID)
	assert.NotEqual(t, a.MountPoint().ID, b.MountPoint().ID)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", chart.StateIdle.String())
	assert.Equal(t, "mounted", chart.StateMounted.String())
	assert.Equal(t, "unmounted", chart.StateUnmounted.String())
	assert.Equal(t, "unknown", chart.State(9).String())
}
