package line

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/engine/buffers"
	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/internal/feature"
	"github.com/Faultbox/geoline/internal/logger"
	"github.com/Faultbox/geoline/pkg/geo"
)

// ErrInvalidCoordinate is returned when a position is NaN or infinite
// before or after reprojection.
var ErrInvalidCoordinate = errors.New("line: invalid coordinate")

// Vertex channel names.
const (
	chanPos           = "pos"
	chanPrev          = "prev"
	chanNext          = "next"
	chanOffset        = "offset"
	chanStrokeWidth   = "strokeWidth"
	chanStrokeColor   = "strokeColor"
	chanStrokeOpacity = "strokeOpacity"
)

// VerticesPerSegment is the number of expanded vertices per segment.
const VerticesPerSegment = 6

// Expansion of segment (a, b): triangle A is (a,+1) (b,-1) (a,-1),
// triangle B is (a,+1) (b,+1) (b,-1).
var (
	segmentEnds    = [VerticesPerSegment]int{0, 1, 0, 0, 1, 1}
	segmentOffsets = [VerticesPerSegment]float32{1, -1, -1, 1, 1, -1}
)

// channelKeys binds each vertex channel to its attribute location.
var channelKeys = []struct {
	name       string
	key        scene.VertexAttributeKey
	components int
}{
	{chanPos, scene.AttribPosition, 3},
	{chanStrokeWidth, scene.AttribOne, 1},
	{chanStrokeColor, scene.AttribTwo, 3},
	{chanStrokeOpacity, scene.AttribThree, 1},
	{chanPrev, scene.AttribFour, 3},
	{chanNext, scene.AttribFive, 3},
	{chanOffset, scene.AttribSix, 1},
}

type pointStyle struct {
	width   float32
	color   [3]float32
	opacity float32
}

// ribbon is the intermediate, per-point form of a rebuild. pos, prev and
// next are index-aligned: prev of an item's first point is the point
// itself, next of its last point is the point itself.
type ribbon struct {
	pos, prev, next []geo.Coord
	style           []pointStyle
	// segments holds index pairs into pos of adjacent points of one item.
	segments [][2]int
}

// collect resolves every point of every item through the line's accessors.
func collect(l *feature.Line) (*ribbon, error) {
	r := &ribbon{}
	lineOf := l.LineAccessor()
	position := l.Position()
	style := l.Style()

	for i, item := range l.Data() {
		points := lineOf(item, i)
		switch len(points) {
		case 0:
			logger.Debug("skipping empty line item", zap.Int("item", i))
			continue
		case 1:
			logger.Debug("line item has a single point, no segments", zap.Int("item", i))
		}

		for j, p := range points {
			c := position(item, i, p, j)
			if !c.IsFinite() {
				return nil, fmt.Errorf("%w: item %d point %d: %v", ErrInvalidCoordinate, i, j, c)
			}
			color := style.StrokeColor(item, i, p, j)
			r.pos = append(r.pos, c)
			r.style = append(r.style, pointStyle{
				width:   float32(style.StrokeWidth(item, i, p, j)),
				color:   color.Float32(),
				opacity: float32(style.StrokeOpacity(item, i, p, j)),
			})

			if j == 0 {
				r.prev = append(r.prev, c)
				continue
			}
			r.prev = append(r.prev, r.pos[len(r.pos)-2])
			r.next = append(r.next, c)
			r.segments = append(r.segments, [2]int{len(r.pos) - 2, len(r.pos) - 1})
		}
		r.next = append(r.next, r.pos[len(r.pos)-1])

		if len(r.prev) != len(r.pos) || len(r.next) != len(r.pos) {
			return nil, fmt.Errorf("line: item %d: neighbour arrays out of step (%d/%d/%d)",
				i, len(r.prev), len(r.pos), len(r.next))
		}
	}
	return r, nil
}

// transform reprojects pos, prev and next as one batch.
func (r *ribbon) transform(src, dst geo.GCS) error {
	n := len(r.pos)
	if n == 0 {
		return nil
	}
	batch := make([]geo.Coord, 0, 3*n)
	batch = append(batch, r.pos...)
	batch = append(batch, r.prev...)
	batch = append(batch, r.next...)

	out, err := geo.TransformCoordinates(src, dst, batch)
	if err != nil {
		return err
	}
	for i, c := range out {
		if !c.IsFinite() {
			return fmt.Errorf("%w: point %d after %s -> %s: %v", ErrInvalidCoordinate, i%n, src, dst, c)
		}
	}
	r.pos, r.prev, r.next = out[:n], out[n:2*n], out[2*n:]
	return nil
}

// expand writes six vertices per segment into a fresh buffer set.
func (r *ribbon) expand() (*buffers.Buffers, error) {
	buf := buffers.New(VerticesPerSegment * len(r.segments))
	for _, ch := range channelKeys {
		buf.Create(ch.name, ch.components)
	}

	for _, seg := range r.segments {
		start := buf.Alloc(VerticesPerSegment)
		for v := 0; v < VerticesPerSegment; v++ {
			idx := seg[segmentEnds[v]]
			dst := start + v
			if err := writeCoord(buf, chanPos, r.pos[idx], dst); err != nil {
				return nil, err
			}
			if err := writeCoord(buf, chanPrev, r.prev[idx], dst); err != nil {
				return nil, err
			}
			if err := writeCoord(buf, chanNext, r.next[idx], dst); err != nil {
				return nil, err
			}
			if err := buf.Write(chanOffset, segmentOffsets[v:v+1], dst, 1); err != nil {
				return nil, err
			}
		}

		a, b := r.style[seg[0]], r.style[seg[1]]
		if a == b {
			if err := repeatStyle(buf, a, start, VerticesPerSegment); err != nil {
				return nil, err
			}
			continue
		}
		for v := 0; v < VerticesPerSegment; v++ {
			if err := repeatStyle(buf, r.style[seg[segmentEnds[v]]], start+v, 1); err != nil {
				return nil, err
			}
		}
	}
	return buf, nil
}

func writeCoord(buf *buffers.Buffers, name string, c geo.Coord, at int) error {
	return buf.Write(name, []float32{float32(c[0]), float32(c[1]), float32(c[2])}, at, 1)
}

func repeatStyle(buf *buffers.Buffers, s pointStyle, start, count int) error {
	if err := buf.Repeat(chanStrokeWidth, []float32{s.width}, start, count); err != nil {
		return err
	}
	if err := buf.Repeat(chanStrokeColor, s.color[:], start, count); err != nil {
		return err
	}
	return buf.Repeat(chanStrokeOpacity, []float32{s.opacity}, start, count)
}

// geometry turns filled buffers into sources plus one identity-indexed
// triangle primitive.
func geometry(buf *buffers.Buffers) (*scene.GeometryData, error) {
	geom := scene.NewGeometryData()
	for _, ch := range channelKeys {
		geom.AddSource(&scene.Source{
			Name:       ch.name,
			Key:        ch.key,
			Components: ch.components,
			Data:       buf.Get(ch.name),
		})
	}
	indices := make([]uint32, buf.Count())
	for i := range indices {
		indices[i] = uint32(i)
	}
	geom.AddPrimitive(scene.NewTriangles(indices))
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	return geom, nil
}

// BuildGeometry runs a full rebuild of l's ribbon in the display GCS dst.
func BuildGeometry(l *feature.Line, dst geo.GCS) (*scene.GeometryData, error) {
	r, err := collect(l)
	if err != nil {
		return nil, err
	}
	src := l.GCS()
	if src == "" {
		src = dst
	}
	if err := r.transform(src, dst); err != nil {
		return nil, err
	}
	buf, err := r.expand()
	if err != nil {
		return nil, err
	}
	return geometry(buf)
}
