// Package line is the GL line feature: it expands polylines into
// constant-screen-width triangle ribbons whose vertices are extruded in the
// vertex shader.
package line

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/internal/feature"
	"github.com/Faultbox/geoline/internal/logger"
)

// Registry keys.
const (
	Backend = "gl"
	Type    = "line"
)

// ErrNoRenderer is returned when the feature's layer has no renderer.
var ErrNoRenderer = errors.New("line: layer has no renderer")

func init() {
	feature.Register(Backend, Type, create)
}

func create(layer feature.Layer, opts any) (feature.Feature, error) {
	var o feature.LineOptions
	switch v := opts.(type) {
	case nil:
	case feature.LineOptions:
		o = v
	case *feature.LineOptions:
		if v != nil {
			o = *v
		}
	default:
		return nil, fmt.Errorf("%w: line wants feature.LineOptions, got %T", feature.ErrBadOptions, opts)
	}

	l := New(layer, o)
	if err := l.Init(); err != nil {
		return nil, err
	}
	return l, nil
}

// Line draws polylines through the context renderer's scene graph.
type Line struct {
	*feature.Line

	actor      *scene.Actor
	mapper     *scene.Mapper
	material   *scene.Material
	pixelWidth *scene.Uniform
}

// New returns an uninitialized GL line feature.
func New(layer feature.Layer, opts feature.LineOptions) *Line {
	return &Line{Line: feature.NewLine(layer, opts)}
}

// Base returns the shared feature state.
func (l *Line) Base() *feature.Base { return l.Line.Base }

// Actor returns the scene actor, nil before Init.
func (l *Line) Actor() *scene.Actor { return l.actor }

// Mapper returns the mapper holding the current ribbon geometry.
func (l *Line) Mapper() *scene.Mapper { return l.mapper }

// Init sets up the shader program, material, mapper and actor.
func (l *Line) Init() error {
	if l.Renderer() == nil {
		return ErrNoRenderer
	}
	l.Line.Init()

	prog := scene.NewShaderProgram()
	prog.AddShader(scene.Shader{Stage: scene.VertexStage, Source: vertexShader})
	prog.AddShader(scene.Shader{Stage: scene.FragmentStage, Source: fragmentShader})
	for _, ch := range channelKeys {
		prog.AddVertexAttribute(ch.name, ch.key)
	}
	l.pixelWidth = scene.FloatUniform(uniformPixelWidth, l.currentPixelWidth(0))
	prog.AddUniform(scene.ModelViewUniform(uniformModelView))
	prog.AddUniform(scene.ProjectionUniform(uniformProjection))
	prog.AddUniform(l.pixelWidth)

	l.material = scene.NewMaterial()
	l.material.SetProgram(prog)
	l.material.SetBlend(scene.AlphaBlend())
	l.material.SetBinNumber(l.Bin())

	l.mapper = scene.NewMapper()
	l.actor = scene.NewActor()
	l.actor.SetMaterial(l.material)
	l.actor.SetMapper(l.mapper)
	l.actor.SetVisible(l.Visible())
	return nil
}

// Build regenerates the ribbon. The actor is out of the render list while
// the geometry is replaced; on failure the previous geometry stays and the
// attempt is still stamped, so unchanged data is not rebuilt every frame.
func (l *Line) Build() error {
	r := l.Renderer()
	if r == nil || l.actor == nil {
		return ErrNoRenderer
	}
	ctx := r.ContextRenderer()
	ctx.RemoveActor(l.actor)
	defer ctx.AddActor(l.actor)

	geom, err := BuildGeometry(l.Line, l.Layer().Map().GCS())
	if err != nil {
		logger.Warn("line build failed, keeping previous geometry",
			zap.String("actor", l.actor.ID.String()),
			zap.Error(err),
		)
		l.BuildTime().Modified()
		return fmt.Errorf("line: build: %w", err)
	}
	l.mapper.SetGeometryData(geom)
	l.BuildTime().Modified()

	logger.Debug("line built",
		zap.String("actor", l.actor.ID.String()),
		zap.Int("items", len(l.Data())),
		zap.Int("vertices", geom.NumVertices()),
	)
	return nil
}

// Update rebuilds when data or the feature changed and refreshes the
// per-frame state. A failed build is returned after the per-frame state is
// applied.
func (l *Line) Update() error {
	l.Line.Update()
	var buildErr error
	if l.NeedsBuild() {
		buildErr = l.Build()
	}
	l.pixelWidth.Set(l.currentPixelWidth(l.pixelWidth.Value()))
	l.actor.SetVisible(l.Visible())
	l.material.SetBinNumber(l.Bin())
	l.UpdateTime().Modified()
	return buildErr
}

// Exit removes the actor from the render list.
func (l *Line) Exit() {
	if r := l.Renderer(); r != nil && l.actor != nil {
		r.ContextRenderer().RemoveActor(l.actor)
	}
}

// currentPixelWidth is one over the renderer width, or fallback for a
// zero-width renderer.
func (l *Line) currentPixelWidth(fallback float32) float32 {
	w := l.Renderer().Width()
	if w <= 0 {
		return fallback
	}
	return 1 / float32(w)
}
