// Package charttest provides a recording chart engine for tests.
//
// A Recorder hands out a chart.Constructor whose engines append every call
// to a shared log:
//
//	rec := charttest.NewRecorder()
//	a, _ := chart.Mount(chart.Props{Chart: rec.Constructor(), Config: cfg})
//	_ = a.Update(next)
//	rec.Methods() // ["construct", "render", "changeData"]
package charttest

import (
	"errors"
	"fmt"

	"github.com/go-drift/chart/pkg/chart"
	"github.com/go-drift/chart/pkg/value"
)

// Engine call names as they appear in the log.
const (
	MethodConstruct    = "construct"
	MethodRender       = "render"
	MethodUpdateConfig = "updateConfig"
	MethodChangeData   = "changeData"
	MethodDestroy      = "destroy"
)

// ErrDestroyed is returned by engines used after Destroy.
var ErrDestroyed = errors.New("charttest: engine used after destroy")

// Call is one recorded engine call.
type Call struct {
	// Engine is the 1-based instance number.
	Engine int
	// Method is one of the Method constants.
	Method string
	// Arg is the configuration (as an object value) or the dataset. It is
	// null for render and destroy.
	Arg value.Value
}

func (c Call) String() string {
	if c.Arg.IsNull() && (c.Method == MethodRender || c.Method == MethodDestroy) {
		return fmt.Sprintf("#%d %s()", c.Engine, c.Method)
	}
	return fmt.Sprintf("#%d %s(%s)", c.Engine, c.Method, c.Arg)
}

// Recorder logs calls made to the engines it constructs.
type Recorder struct {
	// Calls is the log, oldest first.
	Calls []Call

	// Engines holds every constructed engine in order.
	Engines []*Engine

	// OnCall, if set, sees each call as it is recorded.
	OnCall func(Call)

	failures map[string]error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{failures: map[string]error{}}
}

// FailOn makes every later call to method return err after being recorded.
// A nil err clears the failure.
func (r *Recorder) FailOn(method string, err error) {
	if r.failures == nil {
		r.failures = map[string]error{}
	}
	if err == nil {
		delete(r.failures, method)
		return
	}
	r.failures[method] = err
}

// Constructor returns a chart.Constructor producing recording engines.
func (r *Recorder) Constructor() chart.Constructor {
	return func(mount *chart.MountPoint, cfg value.Object) (chart.Engine, error) {
		e := &Engine{rec: r, id: len(r.Engines) + 1, Mount: mount, Config: cfg.Clone()}
		if err := r.record(e.id, MethodConstruct, value.ObjectOf(cfg.Clone())); err != nil {
			return nil, err
		}
		r.Engines = append(r.Engines, e)
		e.Data = cfg[chart.KeyData].Clone()
		return e, nil
	}
}

// Methods returns the method names of the log in order.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

// Count returns how many times method was called.
func (r *Recorder) Count(method string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Last returns the most recent call, if any.
func (r *Recorder) Last() (Call, bool) {
	if len(r.Calls) == 0 {
		return Call{}, false
	}
	return r.Calls[len(r.Calls)-1], true
}

// Reset clears the log but keeps the engines and failures.
func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) record(engine int, method string, arg value.Value) error {
	c := Call{Engine: engine, Method: method, Arg: arg}
	r.Calls = append(r.Calls, c)
	if r.OnCall != nil {
		r.OnCall(c)
	}
	return r.failures[method]
}

// Engine is a recording chart.Engine. Its fields mirror what a real engine
// would hold after each call.
type Engine struct {
	rec *Recorder
	id  int

	// Mount is the mount point the engine was constructed on.
	Mount *chart.MountPoint
	// Config is the last full configuration received.
	Config value.Object
	// Data is the current dataset.
	Data value.Value
	// Renders counts successful Render calls.
	Renders int
	// Destroyed is set by Destroy.
	Destroyed bool
}

// ID returns the 1-based instance number.
func (e *Engine) ID() int { return e.id }

// Render implements chart.Engine.
func (e *Engine) Render() error {
	if e.Destroyed {
		return ErrDestroyed
	}
	if err := e.rec.record(e.id, MethodRender, value.Null()); err != nil {
		return err
	}
	e.Renders++
	e.Mount.SetContent(fmt.Sprintf("chart#%d render %d", e.id, e.Renders))
	return nil
}

// UpdateConfig implements chart.Engine.
func (e *Engine) UpdateConfig(cfg value.Object) error {
	if e.Destroyed {
		return ErrDestroyed
	}
	if err := e.rec.record(e.id, MethodUpdateConfig, value.ObjectOf(cfg.Clone())); err != nil {
		return err
	}
	e.Config = cfg.Clone()
	e.Data = cfg[chart.KeyData].Clone()
	return nil
}

// ChangeData implements chart.Engine.
func (e *Engine) ChangeData(data value.Value) error {
	if e.Destroyed {
		return ErrDestroyed
	}
	if err := e.rec.record(e.id, MethodChangeData, data.Clone()); err != nil {
		return err
	}
	e.Data = data.Clone()
	return nil
}

// Destroy implements chart.Engine. A second call fails with ErrDestroyed.
func (e *Engine) Destroy() error {
	if e.Destroyed {
		return ErrDestroyed
	}
	if err := e.rec.record(e.id, MethodDestroy, value.Null()); err != nil {
		return err
	}
	e.Destroyed = true
	e.Mount.SetContent(nil)
	return nil
}
