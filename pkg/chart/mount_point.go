package chart

import (
	"maps"

	"github.com/google/uuid"
)

// MountPoint is the container element a chart engine attaches to.
//
// Hosts read ClassName and Style to present the container; engines attach
// their own output with SetContent.
type MountPoint struct {
	// ID is unique per adapter.
	ID string

	// ClassName is the container's class attribute.
	ClassName string

	// Style holds inline style declarations.
	Style map[string]string

	content any
}

func newMountPoint() *MountPoint {
	return &MountPoint{ID: uuid.NewString()}
}

// SetContent attaches the engine's rendered output to the container.
func (m *MountPoint) SetContent(content any) {
	m.content = content
}

// Content returns what the engine last attached, or nil.
func (m *MountPoint) Content() any {
	return m.content
}

func (m *MountPoint) present(className string, style map[string]string) {
	m.ClassName = className
	m.Style = maps.Clone(style)
}
