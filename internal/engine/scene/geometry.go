package scene

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned by Validate for inconsistent geometry.
var ErrInvalidGeometry = errors.New("scene: invalid geometry")

// PrimitiveMode is the GL primitive type drawn from an index list.
type PrimitiveMode int

// Primitive modes.
const (
	Triangles PrimitiveMode = iota
	Lines
)

// Source is one named vertex attribute stream.
type Source struct {
	Name       string
	Key        VertexAttributeKey
	Components int
	Data       []float32
}

// NumVertices returns the number of vertices in the source.
func (s *Source) NumVertices() int {
	if s.Components == 0 {
		return 0
	}
	return len(s.Data) / s.Components
}

// Primitive is an indexed draw over the geometry's sources.
type Primitive struct {
	Mode    PrimitiveMode
	Indices []uint32
}

// NewTriangles returns a triangle primitive over indices.
func NewTriangles(indices []uint32) *Primitive {
	return &Primitive{Mode: Triangles, Indices: indices}
}

// GeometryData groups vertex sources and primitives.
type GeometryData struct {
	sources    []*Source
	primitives []*Primitive
}

// NewGeometryData returns empty geometry.
func NewGeometryData() *GeometryData {
	return &GeometryData{}
}

// AddSource adds a vertex source.
func (g *GeometryData) AddSource(s *Source) {
	g.sources = append(g.sources, s)
}

// Sources returns the vertex sources in insertion order.
func (g *GeometryData) Sources() []*Source {
	return g.sources
}

// Source returns the source bound to key, or nil.
func (g *GeometryData) Source(key VertexAttributeKey) *Source {
	for _, s := range g.sources {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// AddPrimitive adds an indexed primitive.
func (g *GeometryData) AddPrimitive(p *Primitive) {
	g.primitives = append(g.primitives, p)
}

// Primitives returns the primitives.
func (g *GeometryData) Primitives() []*Primitive {
	return g.primitives
}

// NumVertices returns the vertex count of the first source.
func (g *GeometryData) NumVertices() int {
	if len(g.sources) == 0 {
		return 0
	}
	return g.sources[0].NumVertices()
}

// Validate checks that every source has the same vertex count, that data
// lengths are multiples of the component count and that every index is in range.
func (g *GeometryData) Validate() error {
	n := g.NumVertices()
	for _, s := range g.sources {
		if s.Components <= 0 || len(s.Data)%s.Components != 0 {
			return fmt.Errorf("%w: source %s has %d floats for %d components", ErrInvalidGeometry, s.Name, len(s.Data), s.Components)
		}
		if s.NumVertices() != n {
			return fmt.Errorf("%w: source %s has %d vertices, expected %d", ErrInvalidGeometry, s.Name, s.NumVertices(), n)
		}
	}
	for _, p := range g.primitives {
		for i, idx := range p.Indices {
			if int(idx) >= n {
				return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidGeometry, idx, i, n)
			}
		}
	}
	return nil
}
