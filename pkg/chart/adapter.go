package chart

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/value"
)

// State is the lifecycle phase of an Adapter.
type State int

const (
	// StateIdle is a created adapter that has not been mounted.
	StateIdle State = iota
	// StateMounted accepts updates.
	StateMounted
	// StateUnmounted is final.
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMounted:
		return "mounted"
	case StateUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

var discard = log.New(io.Discard)

// Adapter owns one chart engine instance and reconciles it with successive
// Props.
//
// An Adapter is not safe for concurrent use; hosts call it from their UI
// thread. Mount precedes Update, and Unmount comes last.
type Adapter struct {
	mount   *MountPoint
	engine  Engine
	applied value.Object
	state   State

	logger *log.Logger
	hooks  Hooks
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger that receives reconciliation decisions at
// debug level.
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// WithHooks sets lifecycle hooks for this adapter, overriding SetHooks.
func WithHooks(h Hooks) Option {
	return func(a *Adapter) {
		a.hooks = h
	}
}

// New creates an idle adapter with a fresh mount point.
func New(opts ...Option) *Adapter {
	a := &Adapter{mount: newMountPoint()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mount creates an adapter and mounts it with props. The adapter is
// returned even when mounting fails so that a constructed engine can still
// be unmounted.
func Mount(props Props, opts ...Option) (*Adapter, error) {
	a := New(opts...)
	return a, a.Mount(props)
}

// MountPoint returns the container the engine attaches to. It is nil only
// for an Adapter that was not created with New.
func (a *Adapter) MountPoint() *MountPoint {
	return a.mount
}

// Engine returns the live engine, or nil before mount and after unmount.
func (a *Adapter) Engine() Engine {
	return a.engine
}

// Applied returns a copy of the configuration last committed to the engine,
// without its dataset.
func (a *Adapter) Applied() value.Object {
	return a.applied.Clone()
}

// State returns the lifecycle phase.
func (a *Adapter) State() State {
	return a.state
}

// Mount constructs the engine with the full configuration, renders it, and
// then calls props.OnMount with the engine.
//
// If the engine fails to construct, the adapter stays idle. If it is
// constructed but fails to render, the adapter is mounted and the error is
// returned; OnMount is not called.
func (a *Adapter) Mount(props Props) error {
	const op = "chart.Mount"
	if a.state != StateIdle {
		return errors.Errorf(op, errors.KindLifecycle, "adapter is %s", a.state)
	}

	cfg := props.config()
	_, rest := splitData(cfg)

	if a.mount == nil {
		a.applied = rest.Clone()
		a.state = StateMounted
		a.log().Debug("no mount point, engine not constructed")
		return nil
	}
	if props.Chart == nil {
		return errors.Errorf(op, errors.KindConfig, "props.Chart is nil")
	}

	a.mount.present(props.ClassName, props.Style)
	engine, err := props.Chart(a.mount, cfg)
	if err != nil {
		return err
	}
	if engine == nil {
		return errors.Errorf(op, errors.KindEngine, "constructor returned a nil engine")
	}
	a.engine = engine
	a.applied = rest.Clone()
	a.state = StateMounted

	if err := engine.Render(); err != nil {
		return err
	}
	a.log().Debug("mounted", "id", a.mount.ID, "funcPaths", a.applied.FuncPaths())
	a.hooksOrGlobal().OnMount(a.mount.ID, a.Applied())

	if props.OnMount != nil {
		props.OnMount(engine)
	}
	return nil
}

// Update reconciles the engine with props.
//
// When the configuration (dataset and callbacks aside) differs from the
// applied one, the engine gets UpdateConfig with the full configuration and
// then Render. Otherwise it gets ChangeData with the dataset alone. Update
// is a no-op unless the adapter is mounted with a live engine.
func (a *Adapter) Update(props Props) error {
	if a.state != StateMounted {
		a.log().Debug("update ignored", "state", a.state)
		return nil
	}
	if a.mount != nil {
		a.mount.present(props.ClassName, props.Style)
	}
	if a.engine == nil {
		return nil
	}

	cfg := props.config()
	data, rest := splitData(cfg)
	decision := Classify(a.applied, rest)

	if decision.Changed {
		a.applied = rest.Clone()
		if err := a.engine.UpdateConfig(cfg); err != nil {
			return err
		}
		if err := a.engine.Render(); err != nil {
			return err
		}
		a.log().Debug("reconfigured", "id", a.mount.ID, "ignored", decision.FuncPaths)
		a.hooksOrGlobal().OnReconfigure(a.mount.ID, decision)
		return nil
	}

	if err := a.engine.ChangeData(data); err != nil {
		return err
	}
	a.log().Debug("data refreshed", "id", a.mount.ID, "ignored", decision.FuncPaths)
	a.hooksOrGlobal().OnDataRefresh(a.mount.ID, decision)
	return nil
}

// Unmount destroys the engine and ends the adapter's life. Calling it
// again, or without an engine, does nothing. The engine reference is
// dropped even when Destroy fails.
func (a *Adapter) Unmount() error {
	a.state = StateUnmounted
	if a.engine == nil {
		return nil
	}
	engine := a.engine
	a.engine = nil
	if err := engine.Destroy(); err != nil {
		return err
	}
	a.log().Debug("unmounted", "id", a.mount.ID)
	a.hooksOrGlobal().OnUnmount(a.mount.ID)
	return nil
}

func (a *Adapter) log() *log.Logger {
	if a.logger != nil {
		return a.logger
	}
	return discard
}

func (a *Adapter) hooksOrGlobal() Hooks {
	if a.hooks != nil {
		return a.hooks
	}
	return globalHooks()
}
