// Package scene provides the retained scene graph drawn by the GL renderer:
// actors that pair a material (shader program, blending, bin) with a mapper
// (geometry data), collected in a context renderer's render list.
package scene

// VertexAttributeKey is the attribute location a vertex source binds to.
type VertexAttributeKey uint32

// Attribute locations. Position is the primary location; One through Six are
// generic indexed slots.
const (
	AttribPosition VertexAttributeKey = iota
	AttribOne
	AttribTwo
	AttribThree
	AttribFour
	AttribFive
	AttribSix
)

// ShaderStage is the pipeline stage a shader belongs to.
type ShaderStage int

// Shader stages.
const (
	VertexStage ShaderStage = iota
	FragmentStage
)

// Shader is one stage's source code.
type Shader struct {
	Stage  ShaderStage
	Source string
}

// UniformKind selects where a uniform's value comes from at draw time.
type UniformKind int

// Uniform kinds.
const (
	// ModelView is filled from the context renderer's model-view matrix.
	ModelView UniformKind = iota
	// Projection is filled from the context renderer's projection matrix.
	Projection
	// Float holds a scalar set by the owner.
	Float
)

// Uniform is a named shader uniform.
type Uniform struct {
	name  string
	kind  UniformKind
	value float32
}

// ModelViewUniform returns a uniform bound to the model-view matrix.
func ModelViewUniform(name string) *Uniform {
	return &Uniform{name: name, kind: ModelView}
}

// ProjectionUniform returns a uniform bound to the projection matrix.
func ProjectionUniform(name string) *Uniform {
	return &Uniform{name: name, kind: Projection}
}

// FloatUniform returns a scalar uniform with an initial value.
func FloatUniform(name string, v float32) *Uniform {
	return &Uniform{name: name, kind: Float, value: v}
}

// Name returns the uniform name used in GLSL.
func (u *Uniform) Name() string { return u.name }

// Kind returns the uniform's value source.
func (u *Uniform) Kind() UniformKind { return u.kind }

// Value returns the scalar value of a Float uniform.
func (u *Uniform) Value() float32 { return u.value }

// Set updates the scalar value of a Float uniform.
func (u *Uniform) Set(v float32) { u.value = v }

// VertexAttribute binds a GLSL attribute name to a location.
type VertexAttribute struct {
	Name string
	Key  VertexAttributeKey
}

// ShaderProgram collects shaders, attribute bindings and uniforms. The GL
// renderer compiles it on first use.
type ShaderProgram struct {
	shaders    []Shader
	attributes []VertexAttribute
	uniforms   []*Uniform
}

// NewShaderProgram returns an empty program.
func NewShaderProgram() *ShaderProgram {
	return &ShaderProgram{}
}

// AddShader adds a stage. A later shader for the same stage replaces the earlier one.
func (p *ShaderProgram) AddShader(s Shader) {
	for i := range p.shaders {
		if p.shaders[i].Stage == s.Stage {
			p.shaders[i] = s
			return
		}
	}
	p.shaders = append(p.shaders, s)
}

// Source returns the source of the given stage, or "" if absent.
func (p *ShaderProgram) Source(stage ShaderStage) string {
	for _, s := range p.shaders {
		if s.Stage == stage {
			return s.Source
		}
	}
	return ""
}

// AddVertexAttribute binds the named attribute to key.
func (p *ShaderProgram) AddVertexAttribute(name string, key VertexAttributeKey) {
	p.attributes = append(p.attributes, VertexAttribute{Name: name, Key: key})
}

// Attributes returns the attribute bindings in registration order.
func (p *ShaderProgram) Attributes() []VertexAttribute {
	return p.attributes
}

// AddUniform registers a uniform.
func (p *ShaderProgram) AddUniform(u *Uniform) {
	p.uniforms = append(p.uniforms, u)
}

// Uniforms returns the registered uniforms.
func (p *ShaderProgram) Uniforms() []*Uniform {
	return p.uniforms
}

// Uniform returns the uniform with the given name, or nil.
func (p *ShaderProgram) Uniform(name string) *Uniform {
	for _, u := range p.uniforms {
		if u.name == name {
			return u
		}
	}
	return nil
}
