package scene

import (
	"slices"

	"github.com/Faultbox/geoline/pkg/math"
)

// Renderer is the context renderer: the active render list plus the camera
// matrices uniforms read at draw time.
type Renderer struct {
	actors     []*Actor
	modelView  math.Mat4
	projection math.Mat4
}

// NewRenderer returns an empty render list with identity matrices.
func NewRenderer() *Renderer {
	return &Renderer{
		modelView:  math.Identity(),
		projection: math.Identity(),
	}
}

// AddActor appends a to the render list. Adding an actor twice is a no-op.
func (r *Renderer) AddActor(a *Actor) {
	if a == nil || r.HasActor(a) {
		return
	}
	r.actors = append(r.actors, a)
}

// RemoveActor removes a from the render list. Removing an absent actor is a no-op.
func (r *Renderer) RemoveActor(a *Actor) {
	if i := slices.Index(r.actors, a); i >= 0 {
		r.actors = slices.Delete(r.actors, i, i+1)
	}
}

// HasActor reports whether a is in the render list.
func (r *Renderer) HasActor(a *Actor) bool {
	return slices.Contains(r.actors, a)
}

// Actors returns the render list ordered by material bin. Actors in the
// same bin keep insertion order.
func (r *Renderer) Actors() []*Actor {
	out := slices.Clone(r.actors)
	slices.SortStableFunc(out, func(a, b *Actor) int {
		return a.bin() - b.bin()
	})
	return out
}

// SetMatrices sets the camera matrices.
func (r *Renderer) SetMatrices(modelView, projection math.Mat4) {
	r.modelView = modelView
	r.projection = projection
}

// ModelView returns the model-view matrix.
func (r *Renderer) ModelView() math.Mat4 { return r.modelView }

// Projection returns the projection matrix.
func (r *Renderer) Projection() math.Mat4 { return r.projection }
