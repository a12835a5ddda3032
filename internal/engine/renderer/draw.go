package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/geoline/internal/engine/scene"
)

// drawRange is one primitive's slice of the shared element buffer.
type drawRange struct {
	mode   scene.PrimitiveMode
	offset int
	count  int
}

// flattenPrimitives packs every primitive's indices into one element
// buffer.
func flattenPrimitives(prims []*scene.Primitive) ([]uint32, []drawRange) {
	var total int
	for _, p := range prims {
		total += len(p.Indices)
	}
	indices := make([]uint32, 0, total)
	draws := make([]drawRange, 0, len(prims))
	for _, p := range prims {
		draws = append(draws, drawRange{mode: p.Mode, offset: len(indices), count: len(p.Indices)})
		indices = append(indices, p.Indices...)
	}
	return indices, draws
}

func blendFactor(f scene.BlendFactor) uint32 {
	switch f {
	case scene.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case scene.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.ONE
}

func primitiveMode(m scene.PrimitiveMode) uint32 {
	if m == scene.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

// unseen returns the keys of cache that were not used this frame.
func unseen[K comparable, V any](cache map[K]V, seen map[K]bool) []K {
	var stale []K
	for k := range cache {
		if !seen[k] {
			stale = append(stale, k)
		}
	}
	return stale
}
