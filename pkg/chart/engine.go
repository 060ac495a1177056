package chart

import "github.com/go-drift/chart/pkg/value"

// Engine is a live, stateful chart instance.
type Engine interface {
	// Render draws, or redraws, the chart.
	Render() error

	// UpdateConfig applies a full configuration, data included, without
	// drawing.
	UpdateConfig(cfg value.Object) error

	// ChangeData swaps the dataset and repaints without a full redraw.
	ChangeData(data value.Value) error

	// Destroy releases the instance. The adapter calls it at most once.
	Destroy() error
}

// Constructor creates an engine attached to mount, configured with the full
// configuration (data included).
type Constructor func(mount *MountPoint, cfg value.Object) (Engine, error)
