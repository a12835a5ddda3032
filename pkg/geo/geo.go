// Package geo provides coordinate system identifiers, batch reprojection and
// stroke colors for map features.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// GCS identifies a coordinate system.
type GCS string

// Known coordinate systems.
const (
	WGS84       GCS = "EPSG:4326"
	WebMercator GCS = "EPSG:3857"

	// googleMercator is the legacy code for WebMercator.
	googleMercator GCS = "EPSG:900913"
)

// maxMercatorLat is the latitude at which web mercator becomes square.
const maxMercatorLat = 85.0511287798066

// ErrUnknownGCS is returned for coordinate systems the transformer does not know.
var ErrUnknownGCS = errors.New("geo: unknown coordinate system")

// Coord is an XYZ triple. For WGS84 X is longitude and Y is latitude.
type Coord [3]float64

// X returns the first component.
func (c Coord) X() float64 { return c[0] }

// Y returns the second component.
func (c Coord) Y() float64 { return c[1] }

// Z returns the third component.
func (c Coord) Z() float64 { return c[2] }

// IsFinite reports whether no component is NaN or infinite.
func (c Coord) IsFinite() bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LatLng is a geographic position.
type LatLng struct {
	Lat, Lng float64
}

// Coord returns the position as {lng, lat, 0}.
func (ll LatLng) Coord() Coord {
	return Coord{ll.Lng, ll.Lat, 0}
}

// Canonical resolves aliases to their canonical code.
func (g GCS) Canonical() GCS {
	if g == googleMercator {
		return WebMercator
	}
	return g
}

// Known reports whether the transformer can handle g.
func (g GCS) Known() bool {
	switch g.Canonical() {
	case WGS84, WebMercator:
		return true
	}
	return false
}

// TransformCoordinates reprojects coords from src to dst and returns a new
// slice. Z passes through unchanged.
func TransformCoordinates(src, dst GCS, coords []Coord) ([]Coord, error) {
	src, dst = src.Canonical(), dst.Canonical()
	if !src.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGCS, src)
	}
	if !dst.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGCS, dst)
	}

	out := make([]Coord, len(coords))
	if src == dst {
		copy(out, coords)
		return out, nil
	}

	var proj orb.Projection
	switch {
	case src == WGS84 && dst == WebMercator:
		proj = toMercator
	case src == WebMercator && dst == WGS84:
		proj = project.Mercator.ToWGS84
	}

	for i, c := range coords {
		p := proj(orb.Point{c[0], c[1]})
		out[i] = Coord{p[0], p[1], c[2]}
	}
	return out, nil
}

// toMercator clamps latitude to the web mercator limit before projecting.
func toMercator(p orb.Point) orb.Point {
	p[1] = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, p[1]))
	return project.WGS84.ToMercator(p)
}

// Bounds returns the XY bounding box of coords.
func Bounds(coords []Coord) orb.Bound {
	mp := make(orb.MultiPoint, len(coords))
	for i, c := range coords {
		mp[i] = orb.Point{c[0], c[1]}
	}
	return mp.Bound()
}
