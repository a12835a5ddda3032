// Package mapview hosts features: a Map owns the display coordinate system,
// camera and context renderer; layers create and own features.
package mapview

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/engine/camera"
	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/internal/feature"
	"github.com/Faultbox/geoline/internal/logger"
	"github.com/Faultbox/geoline/pkg/geo"
)

// Options configures a map.
type Options struct {
	GCS     geo.GCS
	Backend string
	Width   int
	Height  int
	// Padding is kept free around the data by FitToData, in pixels.
	Padding int
}

// Renderer is the backend-independent render target features draw into.
type Renderer struct {
	ctx           *scene.Renderer
	width, height int
}

// ContextRenderer returns the render list.
func (r *Renderer) ContextRenderer() *scene.Renderer { return r.ctx }

// Width returns the viewport width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the viewport height in pixels.
func (r *Renderer) Height() int { return r.height }

// Map is a set of layers drawn through one camera.
type Map struct {
	gcs      geo.GCS
	backend  string
	padding  int
	camera   *camera.MapCamera
	renderer *Renderer
	layers   []*Layer
}

// New creates a map. The GCS must be one the transformer knows.
func New(opts Options) (*Map, error) {
	if !opts.GCS.Known() {
		return nil, fmt.Errorf("%w: %q", geo.ErrUnknownGCS, opts.GCS)
	}
	if opts.Backend == "" {
		return nil, fmt.Errorf("mapview: no backend")
	}
	m := &Map{
		gcs:      opts.GCS.Canonical(),
		backend:  opts.Backend,
		padding:  opts.Padding,
		camera:   camera.NewMapCamera(opts.Width, opts.Height),
		renderer: &Renderer{ctx: scene.NewRenderer(), width: opts.Width, height: opts.Height},
	}
	return m, nil
}

// GCS returns the display coordinate system.
func (m *Map) GCS() geo.GCS { return m.gcs }

// Backend returns the registry key features are created under.
func (m *Map) Backend() string { return m.backend }

// Camera returns the map camera.
func (m *Map) Camera() *camera.MapCamera { return m.camera }

// Renderer returns the map's render target.
func (m *Map) Renderer() *Renderer { return m.renderer }

// Layers returns the layers in creation order.
func (m *Map) Layers() []*Layer { return m.layers }

// CreateLayer adds an empty layer.
func (m *Map) CreateLayer() *Layer {
	l := &Layer{ID: uuid.New(), m: m}
	m.layers = append(m.layers, l)
	return l
}

// DeleteLayer removes l and exits its features.
func (m *Map) DeleteLayer(l *Layer) {
	i := slices.Index(m.layers, l)
	if i < 0 {
		return
	}
	for _, f := range l.features {
		f.Exit()
	}
	l.features = nil
	m.layers = slices.Delete(m.layers, i, i+1)
}

// Resize changes the viewport size.
func (m *Map) Resize(width, height int) {
	m.renderer.width = width
	m.renderer.height = height
	m.camera.Resize(width, height)
}

// Update pushes the camera into the render list and updates every feature.
// Errors of individual features are collected; the rest still update.
func (m *Map) Update() error {
	m.renderer.ctx.SetMatrices(m.camera.ViewMatrix(), m.camera.ProjectionMatrix())

	var errs error
	for _, l := range m.layers {
		for _, f := range l.features {
			if err := f.Update(); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

// DataBounds returns the display-space bounds of all built geometry.
func (m *Map) DataBounds() (orb.Bound, bool) {
	var pts orb.MultiPoint
	for _, a := range m.renderer.ctx.Actors() {
		if a.Mapper() == nil || a.Mapper().GeometryData() == nil {
			continue
		}
		src := a.Mapper().GeometryData().Source(scene.AttribPosition)
		if src == nil || src.Components < 2 {
			continue
		}
		for i := 0; i+1 < len(src.Data); i += src.Components {
			pts = append(pts, orb.Point{float64(src.Data[i]), float64(src.Data[i+1])})
		}
	}
	if len(pts) == 0 {
		return orb.Bound{}, false
	}
	return pts.Bound(), true
}

// FitToData updates the features and points the camera at their bounds.
// It reports whether there was anything to fit.
func (m *Map) FitToData() (bool, error) {
	err := m.Update()
	b, ok := m.DataBounds()
	if !ok {
		return false, err
	}
	m.camera.FitToBounds(b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y(), m.padding)
	m.renderer.ctx.SetMatrices(m.camera.ViewMatrix(), m.camera.ProjectionMatrix())
	logger.Debug("camera fitted to data",
		zap.Float64("centerX", m.camera.CenterX),
		zap.Float64("centerY", m.camera.CenterY),
		zap.Float64("resolution", m.camera.Resolution),
	)
	return true, err
}

// Layer groups features that share a map.
type Layer struct {
	ID       uuid.UUID
	m        *Map
	features []feature.Feature
}

// Renderer returns the map's render target.
func (l *Layer) Renderer() feature.Renderer { return l.m.renderer }

// Map returns the owning map.
func (l *Layer) Map() feature.Map { return l.m }

// Features returns the layer's features in creation order.
func (l *Layer) Features() []feature.Feature { return l.features }

// CreateFeature constructs a feature of featureType for the map's backend.
func (l *Layer) CreateFeature(featureType string, opts any) (feature.Feature, error) {
	f, err := feature.Create(l.m.backend, featureType, l, opts)
	if err != nil {
		return nil, err
	}
	l.features = append(l.features, f)
	logger.Debug("feature created",
		zap.String("layer", l.ID.String()),
		zap.String("type", featureType),
	)
	return f, nil
}

// DeleteFeature exits f and removes it from the layer.
func (l *Layer) DeleteFeature(f feature.Feature) {
	i := slices.Index(l.features, f)
	if i < 0 {
		return
	}
	f.Exit()
	l.features = slices.Delete(l.features, i, i+1)
}
