package layers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/geoline/internal/config"
	"github.com/Faultbox/geoline/pkg/geo"
)

const lines = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"stroke": "#00ff00"},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 0]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "LineString", "coordinates": [[5, 5]]}}
  ]
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines.geojson")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFilesBuildsRibbons(t *testing.T) {
	cfg := config.Default()
	m, err := NewMap(cfg, 640, 480)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	layer, err := LoadFiles(m, cfg, []string{writeFile(t, lines)})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if err := m.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stats := Stats(layer)
	if len(stats) != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	want := FeatureStats{Items: 2, Segments: 2, Vertices: 12}
	if stats[0] != want {
		t.Errorf("stats = %+v, want %+v", stats[0], want)
	}
	if f := layer.Features()[0]; f.Base().GCS() != geo.WGS84 {
		t.Errorf("feature GCS = %q, want data GCS", f.Base().GCS())
	}
}

func TestLoadFilesMissing(t *testing.T) {
	cfg := config.Default()
	m, err := NewMap(cfg, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFiles(m, cfg, []string{filepath.Join(t.TempDir(), "nope.geojson")}); err == nil {
		t.Error("expected error for missing file")
	}
	if len(m.Layers()) != 0 {
		t.Error("failed load should not leave a layer behind")
	}
}

func TestDefaultStyle(t *testing.T) {
	cfg := config.Default().Style
	s, err := DefaultStyle(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Color != geo.White || s.Width != 1 || s.Opacity != 1 {
		t.Errorf("style = %+v", s)
	}
	cfg.StrokeColor = "???"
	if _, err := DefaultStyle(cfg); err == nil {
		t.Error("bad color should fail")
	}
}

func TestNewMapUnknownGCS(t *testing.T) {
	cfg := config.Default()
	cfg.Map.GCS = "EPSG:0"
	if _, err := NewMap(cfg, 1, 1); err == nil {
		t.Error("expected error")
	}
}

func TestReport(t *testing.T) {
	out := Report([]string{"a.geojson", "b.geojson"}, []FeatureStats{
		{Items: 2, Segments: 3, Vertices: 18},
		{Items: 1, Segments: 1, Vertices: 6},
	})
	for _, want := range []string{"FILE", "a.geojson", "b.geojson", "18", "total", "24"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	single := Report([]string{"a"}, []FeatureStats{{Items: 1}})
	if strings.Contains(single, "total") {
		t.Errorf("single file report should have no total row:\n%s", single)
	}
}
