// Package chart binds a declarative property stream to an imperative chart
// engine.
//
// An [Adapter] owns one engine instance attached to one [MountPoint]. The
// host drives it through three calls:
//
//	a := chart.New()
//	host.Attach(a.MountPoint())
//	err := a.Mount(props)   // construct, render, OnMount
//	err = a.Update(props)   // reconfigure+render, or data refresh
//	err = a.Unmount()       // destroy
//
// # Reconciliation
//
// On every update the adapter compares the new configuration, minus its
// "data" key, with the configuration it last applied. Paths that hold a
// callback on either side are left out of the comparison, so re-created
// closures do not force a redraw. When anything else differs the engine
// receives UpdateConfig followed by Render; otherwise it only receives
// ChangeData with the new dataset.
//
// # Errors
//
// Engine and callback errors are returned exactly as the engine produced
// them. Calls in the wrong state (Update before Mount, Unmount twice) are
// no-ops; mounting twice is a lifecycle error.
package chart
