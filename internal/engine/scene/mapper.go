package scene

// Mapper holds the geometry an actor draws. Every SetGeometryData bumps the
// version so the renderer releases and re-uploads GPU buffers.
type Mapper struct {
	geometry *GeometryData
	version  uint64
}

// NewMapper returns a mapper with no geometry.
func NewMapper() *Mapper {
	return &Mapper{}
}

// SetGeometryData replaces the geometry.
func (m *Mapper) SetGeometryData(g *GeometryData) {
	m.geometry = g
	m.version++
}

// GeometryData returns the current geometry, or nil.
func (m *Mapper) GeometryData() *GeometryData {
	return m.geometry
}

// Version returns the number of geometry replacements so far.
func (m *Mapper) Version() uint64 {
	return m.version
}
