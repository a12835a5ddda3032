// Package feature defines the renderer-independent half of map features:
// modification-time tracking, data and style accessors, the lifecycle
// contract renderer-specific features implement, and the registry that maps
// (backend, feature type) pairs to constructors.
package feature

import (
	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/pkg/geo"
)

// Renderer is the part of a map renderer features draw into.
type Renderer interface {
	ContextRenderer() *scene.Renderer
	Width() int
	Height() int
}

// Map is the part of a map features read their display GCS from.
type Map interface {
	GCS() geo.GCS
}

// Layer owns features and connects them to a map and renderer.
type Layer interface {
	Renderer() Renderer
	Map() Map
}

// Lifecycle is implemented by renderer-specific features.
type Lifecycle interface {
	// Init creates GPU-side objects. It runs once, from the factory.
	Init() error
	// Build regenerates geometry from data and style.
	Build() error
	// Update rebuilds when needed and refreshes visibility and ordering.
	Update() error
	// Exit removes the feature from its renderer.
	Exit()
}

// Feature is a constructed, renderer-specific feature.
type Feature interface {
	Lifecycle
	Base() *Base
}

// Base carries the state every feature shares. Renderer-specific features
// embed or wrap it and call Init and Update from their own lifecycle hooks.
type Base struct {
	layer   Layer
	gcs     geo.GCS
	data    []any
	visible bool
	bin     int

	mtime      Timestamp
	dataTime   Timestamp
	buildTime  Timestamp
	updateTime Timestamp
}

// NewBase returns a visible base attached to layer.
func NewBase(layer Layer) *Base {
	b := &Base{layer: layer, visible: true}
	b.mtime.Modified()
	return b
}

// Init fills defaults that depend on the layer. The feature GCS falls back
// to the map GCS.
func (b *Base) Init() {
	if b.gcs == "" && b.layer != nil && b.layer.Map() != nil {
		b.gcs = b.layer.Map().GCS()
	}
}

// Update is the base half of a feature update.
func (b *Base) Update() {}

// Layer returns the owning layer.
func (b *Base) Layer() Layer { return b.layer }

// Renderer returns the layer's renderer, or nil without a layer.
func (b *Base) Renderer() Renderer {
	if b.layer == nil {
		return nil
	}
	return b.layer.Renderer()
}

// GCS returns the coordinate system the feature's positions are in.
func (b *Base) GCS() geo.GCS { return b.gcs }

// SetGCS sets the feature's coordinate system.
func (b *Base) SetGCS(g geo.GCS) {
	b.gcs = g
	b.Modified()
}

// Data returns the data items.
func (b *Base) Data() []any { return b.data }

// SetData replaces the data items and marks the data modified.
func (b *Base) SetData(data []any) {
	b.data = data
	b.dataTime.Modified()
	b.Modified()
}

// Visible reports whether the feature is drawn.
func (b *Base) Visible() bool { return b.visible }

// SetVisible shows or hides the feature.
func (b *Base) SetVisible(v bool) {
	b.visible = v
	b.Modified()
}

// Bin returns the render bin.
func (b *Base) Bin() int { return b.bin }

// SetBin sets the render bin. Lower bins draw first.
func (b *Base) SetBin(bin int) {
	b.bin = bin
	b.Modified()
}

// Modified marks the feature itself modified.
func (b *Base) Modified() { b.mtime.Modified() }

// MTime returns the feature's own modification time.
func (b *Base) MTime() uint64 { return b.mtime.MTime() }

// DataTime is stamped whenever data changes.
func (b *Base) DataTime() *Timestamp { return &b.dataTime }

// BuildTime is stamped after each successful build.
func (b *Base) BuildTime() *Timestamp { return &b.buildTime }

// UpdateTime is stamped after each update.
func (b *Base) UpdateTime() *Timestamp { return &b.updateTime }

// NeedsBuild reports whether data changed since the last build or the
// feature was modified since the last update.
func (b *Base) NeedsBuild() bool {
	return b.dataTime.MTime() >= b.buildTime.MTime() ||
		b.updateTime.MTime() <= b.MTime()
}
