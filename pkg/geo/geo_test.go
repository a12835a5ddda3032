package geo

import (
	"errors"
	"math"
	"testing"
)

func TestTransformSameGCSCopies(t *testing.T) {
	in := []Coord{{1, 2, 3}, {4, 5, 6}}
	out, err := TransformCoordinates(WGS84, WGS84, in)
	if err != nil {
		t.Fatalf("TransformCoordinates: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d coords, got %d", len(in), len(out))
	}
	out[0][0] = 99
	if in[0][0] != 1 {
		t.Error("TransformCoordinates should not alias its input")
	}
}

func TestTransformToMercator(t *testing.T) {
	out, err := TransformCoordinates(WGS84, WebMercator, []Coord{{0, 0, 7}, {180, 0, 0}})
	if err != nil {
		t.Fatalf("TransformCoordinates: %v", err)
	}
	if math.Abs(out[0][0]) > 1e-6 || math.Abs(out[0][1]) > 1e-6 {
		t.Errorf("expected origin to stay at origin, got %v", out[0])
	}
	if out[0][2] != 7 {
		t.Errorf("expected z to pass through, got %f", out[0][2])
	}
	// Half the equator in metres
	if math.Abs(out[1][0]-20037508.342789244) > 1e-3 {
		t.Errorf("expected x=20037508.34 for lon 180, got %f", out[1][0])
	}
}

func TestTransformRoundTrip(t *testing.T) {
	in := []Coord{{-73.9857, 40.7484, 0}, {2.2945, 48.8584, 0}}
	merc, err := TransformCoordinates(WGS84, WebMercator, in)
	if err != nil {
		t.Fatalf("to mercator: %v", err)
	}
	back, err := TransformCoordinates(googleMercator, WGS84, merc)
	if err != nil {
		t.Fatalf("to wgs84: %v", err)
	}
	for i := range in {
		if math.Abs(back[i][0]-in[i][0]) > 1e-9 || math.Abs(back[i][1]-in[i][1]) > 1e-9 {
			t.Errorf("coord %d: expected %v, got %v", i, in[i], back[i])
		}
	}
}

func TestTransformClampsPoles(t *testing.T) {
	out, err := TransformCoordinates(WGS84, WebMercator, []Coord{{0, 90, 0}})
	if err != nil {
		t.Fatalf("TransformCoordinates: %v", err)
	}
	if !out[0].IsFinite() {
		t.Errorf("expected finite mercator y at the pole, got %v", out[0])
	}
}

func TestTransformUnknownGCS(t *testing.T) {
	_, err := TransformCoordinates("EPSG:27700", WGS84, []Coord{{0, 0, 0}})
	if !errors.Is(err, ErrUnknownGCS) {
		t.Errorf("expected ErrUnknownGCS, got %v", err)
	}
}

func TestLatLngCoord(t *testing.T) {
	got := LatLng{Lat: 10, Lng: 20}.Coord()
	if got != (Coord{20, 10, 0}) {
		t.Errorf("expected {20 10 0}, got %v", got)
	}
}

func TestBounds(t *testing.T) {
	b := Bounds([]Coord{{1, 5, 0}, {-2, 3, 0}, {4, -1, 0}})
	if b.Min[0] != -2 || b.Min[1] != -1 || b.Max[0] != 4 || b.Max[1] != 5 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{1, 0, 0}},
		{"#0f0", Color{0, 1, 0}},
		{"Blue", Color{0, 0, 1}},
		{" white ", White},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{1, 0, 0}).Hex(); got != "#ff0000" {
		t.Errorf("expected #ff0000, got %s", got)
	}
}
