package chart

import (
	"sync"

	"github.com/go-drift/chart/pkg/value"
)

// Hooks receives adapter lifecycle events, for metrics or tracing. The
// mount point ID identifies the adapter.
type Hooks interface {
	// OnMount fires after the engine has been constructed and rendered.
	OnMount(id string, applied value.Object)

	// OnReconfigure fires after UpdateConfig and Render succeeded.
	OnReconfigure(id string, decision Decision)

	// OnDataRefresh fires after ChangeData succeeded.
	OnDataRefresh(id string, decision Decision)

	// OnUnmount fires after the engine has been destroyed.
	OnUnmount(id string)
}

// NoopHooks ignores every event.
type NoopHooks struct{}

func (NoopHooks) OnMount(string, value.Object)   {}
func (NoopHooks) OnReconfigure(string, Decision) {}
func (NoopHooks) OnDataRefresh(string, Decision) {}
func (NoopHooks) OnUnmount(string)               {}

var (
	hooksMu sync.RWMutex
	hooks   Hooks = NoopHooks{}
)

// SetHooks installs the hooks used by adapters created without WithHooks.
// Pass nil to restore the no-op default.
func SetHooks(h Hooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h == nil {
		h = NoopHooks{}
	}
	hooks = h
}

func globalHooks() Hooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hooks
}
