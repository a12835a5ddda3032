package scene

// BlendFactor is a blend equation factor.
type BlendFactor int

// Blend factors.
const (
	BlendOne BlendFactor = iota
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// Blend describes alpha blending for a material.
type Blend struct {
	Src, Dst BlendFactor
}

// AlphaBlend returns standard source-over blending.
func AlphaBlend() *Blend {
	return &Blend{Src: BlendSrcAlpha, Dst: BlendOneMinusSrcAlpha}
}

// Material owns a shader program, optional blending and a render bin.
// Lower bins draw first.
type Material struct {
	program *ShaderProgram
	blend   *Blend
	bin     int
}

// NewMaterial returns a material with no program.
func NewMaterial() *Material {
	return &Material{}
}

// SetProgram sets the shader program.
func (m *Material) SetProgram(p *ShaderProgram) { m.program = p }

// Program returns the shader program.
func (m *Material) Program() *ShaderProgram { return m.program }

// SetBlend sets blending. nil disables it.
func (m *Material) SetBlend(b *Blend) { m.blend = b }

// Blend returns the blend state, or nil.
func (m *Material) Blend() *Blend { return m.blend }

// SetBinNumber sets the render bin.
func (m *Material) SetBinNumber(bin int) { m.bin = bin }

// BinNumber returns the render bin.
func (m *Material) BinNumber() int { return m.bin }
