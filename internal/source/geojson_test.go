package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/geoline/pkg/geo"
)

var defaults = Style{Color: geo.White, Width: 1, Opacity: 1}

const collection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"stroke": "#ff0000", "stroke-width": 3, "stroke-opacity": 0.5},
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 0]]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "MultiLineString", "coordinates": [[[10, 10], [11, 11]], [[20, 20], [21, 21]]]}
    },
    {
      "type": "Feature",
      "properties": {"stroke": "not a color"},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [4, 0], [4, 4], [0, 0]]]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [5, 5]}
    }
  ]
}`

func TestDecodeFeatureCollection(t *testing.T) {
	items, err := DecodeGeoJSON([]byte(collection), defaults)
	if err != nil {
		t.Fatalf("DecodeGeoJSON: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("items = %d, want 4", len(items))
	}

	first := items[0]
	if len(first.Points) != 3 || first.Points[1] != (geo.Coord{1, 1, 0}) {
		t.Errorf("first points = %v", first.Points)
	}
	if first.Style.Color != (geo.Color{R: 1}) || first.Style.Width != 3 || first.Style.Opacity != 0.5 {
		t.Errorf("first style = %+v", first.Style)
	}

	if items[1].Style != defaults || items[2].Points[0] != (geo.Coord{20, 20, 0}) {
		t.Errorf("multilinestring parts = %+v %+v", items[1], items[2])
	}

	ring := items[3]
	if len(ring.Points) != 4 || ring.Points[0] != ring.Points[3] {
		t.Errorf("ring = %v, want closed 4 points", ring.Points)
	}
	if ring.Style.Color != geo.White {
		t.Errorf("bad stroke should keep default, got %+v", ring.Style.Color)
	}
}

func TestDecodeFeatureAndGeometry(t *testing.T) {
	feature := `{"type": "Feature", "properties": {"stroke-width": 2},
		"geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 0]]}}`
	items, err := DecodeGeoJSON([]byte(feature), defaults)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Style.Width != 2 {
		t.Errorf("feature items = %+v", items)
	}

	geometry := `{"type": "LineString", "coordinates": [[0, 0], [1, 0], [2, 0]]}`
	items, err = DecodeGeoJSON([]byte(geometry), defaults)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || len(items[0].Points) != 3 || items[0].Style != defaults {
		t.Errorf("geometry items = %+v", items)
	}
}

func TestOpenRingIsClosed(t *testing.T) {
	poly := `{"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1]]]}`
	items, err := DecodeGeoJSON([]byte(poly), defaults)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || len(items[0].Points) != 4 || items[0].Points[3] != (geo.Coord{0, 0, 0}) {
		t.Errorf("items = %+v", items)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, in := range []string{"", "{", `{"type": "FeatureCollection", "features": 3}`} {
		if _, err := DecodeGeoJSON([]byte(in), defaults); err == nil {
			t.Errorf("DecodeGeoJSON(%q) should fail", in)
		}
	}
}

func TestLoadGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.geojson")
	if err := os.WriteFile(path, []byte(collection), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := LoadGeoJSON(path, defaults)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Errorf("items = %d", len(items))
	}
	if _, err := LoadGeoJSON(filepath.Join(t.TempDir(), "missing"), defaults); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLineOptionsAccessors(t *testing.T) {
	items := []Item{{
		Points: []geo.Coord{{0, 0, 0}, {1, 0, 0}},
		Style:  Style{Color: geo.Black, Width: 4, Opacity: 0.25},
	}}
	opts := LineOptions(items, geo.WGS84)
	if opts.GCS != geo.WGS84 || len(opts.Data) != 1 {
		t.Fatalf("opts = %+v", opts)
	}
	item := opts.Data[0]
	pts := opts.Line(item, 0)
	if len(pts) != 2 || pts[1] != (geo.Coord{1, 0, 0}) {
		t.Errorf("points = %v", pts)
	}
	if w := opts.Style.StrokeWidth(item, 0, pts[0], 0); w != 4 {
		t.Errorf("width = %v", w)
	}
	if c := opts.Style.StrokeColor(item, 0, pts[0], 0); c != geo.Black {
		t.Errorf("color = %v", c)
	}
	if o := opts.Style.StrokeOpacity(item, 0, pts[0], 0); o != 0.25 {
		t.Errorf("opacity = %v", o)
	}
	if opts.Line("other", 0) != nil {
		t.Error("foreign item should have no points")
	}
}
