// Package renderer draws a scene render list with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/internal/engine/shader"
	"github.com/Faultbox/geoline/internal/logger"
	"github.com/Faultbox/geoline/pkg/geo"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background geo.Color
}

type glProgram struct {
	id       uint32
	uniforms map[string]int32
}

type glMesh struct {
	version uint64
	vao     uint32
	vbos    []uint32
	ebo     uint32
	draws   []drawRange
}

// Renderer uploads scene geometry on demand and draws it.
type Renderer struct {
	config   Config
	programs map[*scene.ShaderProgram]*glProgram
	meshes   map[*scene.Mapper]*glMesh
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)

	r := &Renderer{
		config:   cfg,
		programs: make(map[*scene.ShaderProgram]*glProgram),
		meshes:   make(map[*scene.Mapper]*glMesh),
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases every GL object the renderer created.
func (r *Renderer) Close() {
	logger.Debug("closing renderer",
		zap.Int("programs", len(r.programs)),
		zap.Int("meshes", len(r.meshes)),
	)
	for m, mesh := range r.meshes {
		mesh.release()
		delete(r.meshes, m)
	}
	for p, prog := range r.programs {
		gl.DeleteProgram(prog.id)
		delete(r.programs, p)
	}
}

// Resize sets the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetBackground sets the clear color.
func (r *Renderer) SetBackground(c geo.Color) {
	r.config.Background = c
}

// Render clears the target and draws every visible actor of ctx in bin
// order. GPU buffers of mappers and programs that left the render list are
// released.
func (r *Renderer) Render(ctx *scene.Renderer) {
	bg := r.config.Background.Float32()
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	seen := make(map[*scene.Mapper]bool)
	seenPrograms := make(map[*scene.ShaderProgram]bool)
	for _, actor := range ctx.Actors() {
		if m := actor.Material(); m != nil && m.Program() != nil {
			seenPrograms[m.Program()] = true
		}
		mapper := actor.Mapper()
		if mapper == nil {
			continue
		}
		seen[mapper] = true
		if !actor.Visible() || actor.Material() == nil {
			continue
		}
		if err := r.draw(ctx, actor); err != nil {
			logger.Warn("draw failed",
				zap.String("actor", actor.ID.String()),
				zap.Error(err),
			)
		}
	}

	for _, m := range unseen(r.meshes, seen) {
		r.meshes[m].release()
		delete(r.meshes, m)
	}
	for _, p := range unseen(r.programs, seenPrograms) {
		gl.DeleteProgram(r.programs[p].id)
		delete(r.programs, p)
		logger.Debug("shader program released", zap.Int("programs", len(r.programs)))
	}
}

func (r *Renderer) draw(ctx *scene.Renderer, actor *scene.Actor) error {
	material := actor.Material()
	prog, err := r.program(material.Program())
	if err != nil {
		return err
	}
	mesh, err := r.mesh(actor.Mapper())
	if err != nil || mesh == nil {
		return err
	}

	gl.UseProgram(prog.id)
	r.setUniforms(ctx, material.Program(), prog)
	if b := material.Blend(); b != nil {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(blendFactor(b.Src), blendFactor(b.Dst))
	} else {
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(mesh.vao)
	for _, d := range mesh.draws {
		if d.count == 0 {
			continue
		}
		gl.DrawElements(primitiveMode(d.mode), int32(d.count), gl.UNSIGNED_INT, gl.PtrOffset(d.offset*4))
	}
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) setUniforms(ctx *scene.Renderer, p *scene.ShaderProgram, prog *glProgram) {
	modelView := ctx.ModelView()
	projection := ctx.Projection()
	for _, u := range p.Uniforms() {
		loc, ok := prog.uniforms[u.Name()]
		if !ok {
			loc = shader.GetUniform(prog.id, u.Name())
			prog.uniforms[u.Name()] = loc
		}
		if loc < 0 {
			continue
		}
		switch u.Kind() {
		case scene.ModelView:
			gl.UniformMatrix4fv(loc, 1, false, modelView.Ptr())
		case scene.Projection:
			gl.UniformMatrix4fv(loc, 1, false, projection.Ptr())
		case scene.Float:
			gl.Uniform1f(loc, u.Value())
		}
	}
}

// program compiles p on first use.
func (r *Renderer) program(p *scene.ShaderProgram) (*glProgram, error) {
	if p == nil {
		return nil, fmt.Errorf("material has no program")
	}
	if prog, ok := r.programs[p]; ok {
		return prog, nil
	}

	var bindings []shader.Binding
	for _, a := range p.Attributes() {
		bindings = append(bindings, shader.Binding{Name: a.Name, Location: uint32(a.Key)})
	}
	id, err := shader.CompileProgram(p.Source(scene.VertexStage), p.Source(scene.FragmentStage), bindings...)
	if err != nil {
		return nil, fmt.Errorf("compile program: %w", err)
	}
	prog := &glProgram{id: id, uniforms: make(map[string]int32)}
	r.programs[p] = prog
	logger.Debug("shader program created", zap.Uint32("program", id))
	return prog, nil
}

// mesh returns the GPU copy of m's geometry, re-uploading it when the
// mapper's version moved on. The previous buffers are released first.
func (r *Renderer) mesh(m *scene.Mapper) (*glMesh, error) {
	mesh, ok := r.meshes[m]
	if ok && mesh.version == m.Version() {
		return mesh, nil
	}
	if ok {
		mesh.release()
		delete(r.meshes, m)
	}

	geom := m.GeometryData()
	if geom == nil {
		return nil, nil
	}
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	mesh = &glMesh{version: m.Version()}
	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	for _, s := range geom.Sources() {
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		if len(s.Data) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(s.Data)*4, gl.Ptr(s.Data), gl.STATIC_DRAW)
		}
		gl.VertexAttribPointer(uint32(s.Key), int32(s.Components), gl.FLOAT, false, 0, nil)
		gl.EnableVertexAttribArray(uint32(s.Key))
		mesh.vbos = append(mesh.vbos, vbo)
	}

	indices, draws := flattenPrimitives(geom.Primitives())
	gl.GenBuffers(1, &mesh.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}
	mesh.draws = draws

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes[m] = mesh
	logger.Debug("mesh uploaded",
		zap.Uint64("version", mesh.version),
		zap.Int("vertices", geom.NumVertices()),
		zap.Int("indices", len(indices)),
	)
	return mesh, nil
}

func (m *glMesh) release() {
	if len(m.vbos) > 0 {
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
		m.vbos = nil
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
