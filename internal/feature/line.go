package feature

import (
	"math"

	"github.com/Faultbox/geoline/pkg/geo"
)

// PointFunc resolves a per-point value from a data item, its index, the
// point within the item and the point's index within the item.
type PointFunc[T any] func(item any, itemIndex int, point any, pointIndex int) T

// LineFunc extracts the ordered points of one data item.
type LineFunc func(item any, itemIndex int) []any

// Constant returns a PointFunc that always yields v.
func Constant[T any](v T) PointFunc[T] {
	return func(any, int, any, int) T { return v }
}

// StrokeSolid is the only supported stroke style.
const StrokeSolid = "solid"

// LineStyle holds the per-point stroke accessors.
type LineStyle struct {
	StrokeWidth   PointFunc[float64]
	StrokeColor   PointFunc[geo.Color]
	StrokeOpacity PointFunc[float64]
	StrokeStyle   string
}

// DefaultLineStyle returns a 1px solid white opaque stroke.
func DefaultLineStyle() LineStyle {
	return LineStyle{
		StrokeWidth:   Constant(1.0),
		StrokeColor:   Constant(geo.White),
		StrokeOpacity: Constant(1.0),
		StrokeStyle:   StrokeSolid,
	}
}

// LineOptions configures a line feature at creation. Nil fields keep defaults.
type LineOptions struct {
	GCS      geo.GCS
	Data     []any
	Bin      int
	Hidden   bool
	Line     LineFunc
	Position PointFunc[geo.Coord]
	Style    LineStyle
}

// Line is the renderer-independent state of a polyline feature.
type Line struct {
	*Base
	line     LineFunc
	position PointFunc[geo.Coord]
	style    LineStyle
}

// NewLine returns a line feature attached to layer with opts applied.
func NewLine(layer Layer, opts LineOptions) *Line {
	l := &Line{
		Base:     NewBase(layer),
		line:     DefaultLine,
		position: DefaultPosition,
		style:    DefaultLineStyle(),
	}
	l.gcs = opts.GCS
	l.bin = opts.Bin
	l.visible = !opts.Hidden
	if opts.Line != nil {
		l.line = opts.Line
	}
	if opts.Position != nil {
		l.position = opts.Position
	}
	l.mergeStyle(opts.Style)
	if opts.Data != nil {
		l.SetData(opts.Data)
	}
	return l
}

func (l *Line) mergeStyle(s LineStyle) {
	if s.StrokeWidth != nil {
		l.style.StrokeWidth = s.StrokeWidth
	}
	if s.StrokeColor != nil {
		l.style.StrokeColor = s.StrokeColor
	}
	if s.StrokeOpacity != nil {
		l.style.StrokeOpacity = s.StrokeOpacity
	}
	if s.StrokeStyle != "" {
		l.style.StrokeStyle = s.StrokeStyle
	}
}

// LineAccessor returns the line accessor.
func (l *Line) LineAccessor() LineFunc { return l.line }

// SetLine sets the line accessor.
func (l *Line) SetLine(f LineFunc) {
	l.line = f
	l.Modified()
}

// Position returns the position accessor.
func (l *Line) Position() PointFunc[geo.Coord] { return l.position }

// SetPosition sets the position accessor.
func (l *Line) SetPosition(f PointFunc[geo.Coord]) {
	l.position = f
	l.Modified()
}

// Style returns the stroke accessors.
func (l *Line) Style() LineStyle { return l.style }

// SetStyle merges the non-nil accessors of s into the current style.
func (l *Line) SetStyle(s LineStyle) {
	l.mergeStyle(s)
	l.Modified()
}

// DefaultLine treats the item itself as the point list. []any, []geo.Coord
// and []geo.LatLng are understood; anything else has no points.
func DefaultLine(item any, _ int) []any {
	switch v := item.(type) {
	case []any:
		return v
	case []geo.Coord:
		out := make([]any, len(v))
		for i, c := range v {
			out[i] = c
		}
		return out
	case []geo.LatLng:
		out := make([]any, len(v))
		for i, c := range v {
			out[i] = c
		}
		return out
	}
	return nil
}

// DefaultPosition treats the point itself as the position. Unknown point
// types resolve to NaN so the builder can reject them.
func DefaultPosition(_ any, _ int, point any, _ int) geo.Coord {
	switch p := point.(type) {
	case geo.Coord:
		return p
	case geo.LatLng:
		return p.Coord()
	case [3]float64:
		return geo.Coord(p)
	case [2]float64:
		return geo.Coord{p[0], p[1], 0}
	}
	nan := math.NaN()
	return geo.Coord{nan, nan, nan}
}
