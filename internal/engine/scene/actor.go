package scene

import "github.com/google/uuid"

// Actor pairs a material with a mapper.
type Actor struct {
	ID       uuid.UUID
	material *Material
	mapper   *Mapper
	visible  bool
}

// NewActor returns a visible actor with a fresh ID.
func NewActor() *Actor {
	return &Actor{
		ID:      uuid.New(),
		visible: true,
	}
}

// SetMaterial sets the material.
func (a *Actor) SetMaterial(m *Material) { a.material = m }

// Material returns the material.
func (a *Actor) Material() *Material { return a.material }

// SetMapper sets the mapper.
func (a *Actor) SetMapper(m *Mapper) { a.mapper = m }

// Mapper returns the mapper.
func (a *Actor) Mapper() *Mapper { return a.mapper }

// SetVisible shows or hides the actor.
func (a *Actor) SetVisible(v bool) { a.visible = v }

// Visible reports whether the actor is drawn.
func (a *Actor) Visible() bool { return a.visible }

// bin returns the material bin, 0 when there is no material.
func (a *Actor) bin() int {
	if a.material == nil {
		return 0
	}
	return a.material.BinNumber()
}
