// Package source loads line items from GeoJSON and adapts them to the line
// feature's accessors.
package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/feature"
	"github.com/Faultbox/geoline/internal/logger"
	"github.com/Faultbox/geoline/pkg/geo"
)

// simplestyle property names.
const (
	propStroke        = "stroke"
	propStrokeWidth   = "stroke-width"
	propStrokeOpacity = "stroke-opacity"
)

// Style is the stroke of one item.
type Style struct {
	Color   geo.Color
	Width   float64
	Opacity float64
}

// Item is one polyline with its stroke.
type Item struct {
	Points []geo.Coord
	Style  Style
}

// LoadGeoJSON reads path and decodes it with DecodeGeoJSON.
func LoadGeoJSON(path string, defaults Style) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	items, err := DecodeGeoJSON(data, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("geojson loaded", zap.String("path", path), zap.Int("items", len(items)))
	return items, nil
}

// DecodeGeoJSON turns a FeatureCollection, Feature or bare geometry into
// line items. Every LineString and MultiLineString part is an item;
// polygon rings become closed items; points are ignored. Feature stroke
// properties override defaults.
func DecodeGeoJSON(data []byte, defaults Style) ([]Item, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding geojson: %w", err)
	}

	var items []Item
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decoding feature collection: %w", err)
		}
		for _, f := range fc.Features {
			items = appendGeometry(items, f.Geometry, styleOf(f.Properties, defaults))
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decoding feature: %w", err)
		}
		items = appendGeometry(items, f.Geometry, styleOf(f.Properties, defaults))
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decoding geometry: %w", err)
		}
		items = appendGeometry(items, g.Geometry(), defaults)
	}
	return items, nil
}

func styleOf(props geojson.Properties, defaults Style) Style {
	s := defaults
	if v := props.MustString(propStroke, ""); v != "" {
		c, err := geo.ParseColor(v)
		if err != nil {
			logger.Debug("ignoring stroke property", zap.String("stroke", v), zap.Error(err))
		} else {
			s.Color = c
		}
	}
	s.Width = props.MustFloat64(propStrokeWidth, s.Width)
	s.Opacity = props.MustFloat64(propStrokeOpacity, s.Opacity)
	return s
}

func appendGeometry(items []Item, g orb.Geometry, style Style) []Item {
	switch g := g.(type) {
	case orb.LineString:
		items = append(items, Item{Points: coordsOf(g), Style: style})
	case orb.MultiLineString:
		for _, ls := range g {
			items = append(items, Item{Points: coordsOf(ls), Style: style})
		}
	case orb.Ring:
		items = append(items, Item{Points: closed(g), Style: style})
	case orb.Polygon:
		for _, r := range g {
			items = append(items, Item{Points: closed(r), Style: style})
		}
	case orb.MultiPolygon:
		for _, p := range g {
			items = appendGeometry(items, p, style)
		}
	case orb.Collection:
		for _, sub := range g {
			items = appendGeometry(items, sub, style)
		}
	}
	return items
}

func coordsOf(pts []orb.Point) []geo.Coord {
	out := make([]geo.Coord, len(pts))
	for i, p := range pts {
		out[i] = geo.Coord{p.X(), p.Y(), 0}
	}
	return out
}

// closed returns the ring's points with the first repeated at the end when
// the ring is not already closed.
func closed(r orb.Ring) []geo.Coord {
	out := coordsOf(r)
	if len(r) > 1 && !r.Closed() {
		out = append(out, out[0])
	}
	return out
}

// Data wraps items for feature.Base.SetData.
func Data(items []Item) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// LineOptions returns line feature options whose accessors read items
// produced by this package.
func LineOptions(items []Item, gcs geo.GCS) feature.LineOptions {
	return feature.LineOptions{
		GCS:  gcs,
		Data: Data(items),
		Line: func(item any, _ int) []any {
			it, ok := item.(Item)
			if !ok {
				return nil
			}
			return feature.DefaultLine(it.Points, 0)
		},
		Style: feature.LineStyle{
			StrokeWidth: func(item any, _ int, _ any, _ int) float64 {
				return styleFrom(item).Width
			},
			StrokeColor: func(item any, _ int, _ any, _ int) geo.Color {
				return styleFrom(item).Color
			},
			StrokeOpacity: func(item any, _ int, _ any, _ int) float64 {
				return styleFrom(item).Opacity
			},
		},
	}
}

func styleFrom(item any) Style {
	if it, ok := item.(Item); ok {
		return it.Style
	}
	return Style{Color: geo.White, Width: 1, Opacity: 1}
}
