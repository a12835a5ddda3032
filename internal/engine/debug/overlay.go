package debug

import (
	"github.com/paulmach/orb"

	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/pkg/geo"
)

// OverlayBin draws overlays after every feature bin in normal use.
const OverlayBin = 1 << 20

const overlayVertexShader = `
#version 410 core

in vec3 pos;
in vec3 color;

uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;

out vec3 colorVar;

void main() {
	colorVar = color;
	gl_Position = projectionMatrix * modelViewMatrix * vec4(pos, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core

in vec3 colorVar;
out vec4 fragColor;

void main() {
	fragColor = vec4(colorVar, 1.0);
}
`

// Overlay is a line-list actor whose geometry is replaced wholesale.
type Overlay struct {
	actor  *scene.Actor
	mapper *scene.Mapper
	color  [3]float32
}

// NewOverlay returns an empty overlay drawn in color.
func NewOverlay(color geo.Color) *Overlay {
	prog := scene.NewShaderProgram()
	prog.AddShader(scene.Shader{Stage: scene.VertexStage, Source: overlayVertexShader})
	prog.AddShader(scene.Shader{Stage: scene.FragmentStage, Source: overlayFragmentShader})
	prog.AddVertexAttribute("pos", scene.AttribPosition)
	prog.AddVertexAttribute("color", scene.AttribOne)
	prog.AddUniform(scene.ModelViewUniform("modelViewMatrix"))
	prog.AddUniform(scene.ProjectionUniform("projectionMatrix"))

	material := scene.NewMaterial()
	material.SetProgram(prog)
	material.SetBinNumber(OverlayBin)

	o := &Overlay{mapper: scene.NewMapper(), actor: scene.NewActor(), color: color.Float32()}
	o.actor.SetMaterial(material)
	o.actor.SetMapper(o.mapper)
	return o
}

// Actor returns the overlay's actor.
func (o *Overlay) Actor() *scene.Actor { return o.actor }

// SetLines replaces the overlay geometry with a line list.
func (o *Overlay) SetLines(vertices []float32) {
	n := len(vertices) / 3
	colors := make([]float32, 0, 3*n)
	indices := make([]uint32, n)
	for i := 0; i < n; i++ {
		colors = append(colors, o.color[:]...)
		indices[i] = uint32(i)
	}

	geom := scene.NewGeometryData()
	geom.AddSource(&scene.Source{Name: "pos", Key: scene.AttribPosition, Components: 3, Data: vertices[:3*n]})
	geom.AddSource(&scene.Source{Name: "color", Key: scene.AttribOne, Components: 3, Data: colors})
	geom.AddPrimitive(&scene.Primitive{Mode: scene.Lines, Indices: indices})
	o.mapper.SetGeometryData(geom)
}

// SetBounds outlines b.
func (o *Overlay) SetBounds(b orb.Bound) {
	o.SetLines(BoundsLines(b))
}

// SetGraticule draws about target grid lines across b.
func (o *Overlay) SetGraticule(b orb.Bound, target int) {
	span := max(b.Max.X()-b.Min.X(), b.Max.Y()-b.Min.Y())
	o.SetLines(GridLines(b, NiceStep(span, target)))
}

// Toggle adds the overlay to ctx if absent and removes it otherwise. It
// reports whether the overlay is now shown.
func (o *Overlay) Toggle(ctx *scene.Renderer) bool {
	if ctx.HasActor(o.actor) {
		ctx.RemoveActor(o.actor)
		return false
	}
	ctx.AddActor(o.actor)
	return true
}
