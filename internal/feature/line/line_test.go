package line

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/geoline/internal/engine/scene"
	"github.com/Faultbox/geoline/internal/feature"
	"github.com/Faultbox/geoline/pkg/geo"
)

type testMap struct{ gcs geo.GCS }

func (m testMap) GCS() geo.GCS { return m.gcs }

type testRenderer struct {
	ctx   *scene.Renderer
	width int
}

func (r *testRenderer) ContextRenderer() *scene.Renderer { return r.ctx }
func (r *testRenderer) Width() int                       { return r.width }
func (r *testRenderer) Height() int                      { return 600 }

type testLayer struct {
	r *testRenderer
	m testMap
}

func (l testLayer) Renderer() feature.Renderer { return l.r }
func (l testLayer) Map() feature.Map           { return l.m }

func newLayer(gcs geo.GCS) testLayer {
	return testLayer{r: &testRenderer{ctx: scene.NewRenderer(), width: 800}, m: testMap{gcs: gcs}}
}

func newLine(t *testing.T, layer testLayer, opts feature.LineOptions) *Line {
	t.Helper()
	f, err := feature.Create(Backend, Type, layer, opts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return f.(*Line)
}

func coords(pts ...[2]float64) []any {
	out := make([]any, len(pts))
	for i, p := range pts {
		out[i] = geo.Coord{p[0], p[1], 0}
	}
	return out
}

func source(t *testing.T, l *Line, key scene.VertexAttributeKey) *scene.Source {
	t.Helper()
	geom := l.Mapper().GeometryData()
	if geom == nil {
		t.Fatal("no geometry")
	}
	s := geom.Source(key)
	if s == nil {
		t.Fatalf("no source for key %d", key)
	}
	return s
}

func vec3(s *scene.Source, v int) [3]float32 {
	return [3]float32{s.Data[3*v], s.Data[3*v+1], s.Data[3*v+2]}
}

func TestRegistered(t *testing.T) {
	found := false
	for _, typ := range feature.Registered(Backend) {
		if typ == Type {
			found = true
		}
	}
	if !found {
		t.Fatalf("%s/%s not registered", Backend, Type)
	}
}

func TestCreateBadOptions(t *testing.T) {
	_, err := feature.Create(Backend, Type, newLayer(geo.WebMercator), 42)
	if !errors.Is(err, feature.ErrBadOptions) {
		t.Errorf("err = %v, want ErrBadOptions", err)
	}
}

func TestCreateWithoutRenderer(t *testing.T) {
	l := New(nil, feature.LineOptions{})
	if err := l.Init(); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("Init err = %v, want ErrNoRenderer", err)
	}
}

func TestInitProgram(t *testing.T) {
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{})
	prog := l.Actor().Material().Program()
	if prog.Source(scene.VertexStage) == "" || prog.Source(scene.FragmentStage) == "" {
		t.Fatal("program is missing a shader stage")
	}

	want := map[string]scene.VertexAttributeKey{
		"pos":           scene.AttribPosition,
		"strokeWidth":   scene.AttribOne,
		"strokeColor":   scene.AttribTwo,
		"strokeOpacity": scene.AttribThree,
		"prev":          scene.AttribFour,
		"next":          scene.AttribFive,
		"offset":        scene.AttribSix,
	}
	attrs := prog.Attributes()
	if len(attrs) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(attrs), len(want))
	}
	for _, a := range attrs {
		if want[a.Name] != a.Key {
			t.Errorf("attribute %s key = %d, want %d", a.Name, a.Key, want[a.Name])
		}
	}

	for _, name := range []string{"modelViewMatrix", "projectionMatrix", "pixelWidth"} {
		if prog.Uniform(name) == nil {
			t.Errorf("missing uniform %s", name)
		}
	}
	if got := prog.Uniform("pixelWidth").Value(); got != 1.0/800 {
		t.Errorf("pixelWidth = %v, want 1/800", got)
	}
	if l.Actor().Material().Blend() == nil {
		t.Error("material should blend")
	}
	if l.GCS() != geo.WebMercator {
		t.Errorf("GCS should default to map GCS, got %q", l.GCS())
	}
}

func TestSegmentVertexCount(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		want  int
	}{
		{"two points", []any{coords([2]float64{0, 0}, [2]float64{1, 1})}, 6},
		{"five points", []any{coords([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}, [2]float64{3, 0}, [2]float64{4, 0})}, 24},
		{"two items", []any{
			coords([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}),
			coords([2]float64{5, 5}, [2]float64{6, 6}),
		}, 18},
		{"single point", []any{coords([2]float64{0, 0})}, 0},
		{"empty item", []any{[]any{}}, 0},
		{"no data", nil, 0},
		{"mixed", []any{[]any{}, coords([2]float64{0, 0}), coords([2]float64{0, 0}, [2]float64{1, 0})}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{Data: tt.items})
			if err := l.Update(); err != nil {
				t.Fatalf("Update: %v", err)
			}
			geom := l.Mapper().GeometryData()
			if got := geom.NumVertices(); got != tt.want {
				t.Errorf("vertices = %d, want %d", got, tt.want)
			}
			prims := geom.Primitives()
			if len(prims) != 1 || len(prims[0].Indices) != tt.want {
				t.Fatalf("primitive indices wrong: %+v", prims)
			}
			for i, idx := range prims[0].Indices {
				if int(idx) != i {
					t.Fatalf("index %d = %d, want identity", i, idx)
				}
			}
			if err := geom.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestRibbonLayout(t *testing.T) {
	pts := [][2]float64{{0, 0}, {10, 0}, {10, 10}}
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{Data: []any{coords(pts...)}})
	if err := l.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	pos := source(t, l, scene.AttribPosition)
	prev := source(t, l, scene.AttribFour)
	next := source(t, l, scene.AttribFive)
	offset := source(t, l, scene.AttribSix)

	p := func(i int) [3]float32 { return [3]float32{float32(pts[i][0]), float32(pts[i][1]), 0} }
	wantEnds := []int{0, 1, 0, 0, 1, 1}
	wantOffsets := []float32{1, -1, -1, 1, 1, -1}

	for seg := 0; seg < 2; seg++ {
		for v := 0; v < 6; v++ {
			idx := seg*6 + v
			origin := seg + wantEnds[v]
			if got := vec3(pos, idx); got != p(origin) {
				t.Errorf("pos[%d] = %v, want %v", idx, got, p(origin))
			}
			if got := offset.Data[idx]; got != wantOffsets[v] {
				t.Errorf("offset[%d] = %v, want %v", idx, got, wantOffsets[v])
			}

			wantPrev := p(max(origin-1, 0))
			if got := vec3(prev, idx); got != wantPrev {
				t.Errorf("prev[%d] = %v, want %v", idx, got, wantPrev)
			}
			wantNext := p(min(origin+1, len(pts)-1))
			if got := vec3(next, idx); got != wantNext {
				t.Errorf("next[%d] = %v, want %v", idx, got, wantNext)
			}
		}
	}

	// The first point has a zero-length incoming segment.
	if vec3(prev, 0) != vec3(pos, 0) {
		t.Errorf("first vertex prev %v != pos %v", vec3(prev, 0), vec3(pos, 0))
	}
}

func TestItemsAreNotBridged(t *testing.T) {
	items := []any{
		coords([2]float64{0, 0}, [2]float64{1, 0}),
		coords([2]float64{50, 50}, [2]float64{51, 50}),
	}
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{Data: items})
	if err := l.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	pos := source(t, l, scene.AttribPosition)
	prev := source(t, l, scene.AttribFour)
	next := source(t, l, scene.AttribFive)

	// First vertex of the second item's segment.
	if got := vec3(pos, 6); got != [3]float32{50, 50, 0} {
		t.Fatalf("pos[6] = %v", got)
	}
	if got := vec3(prev, 6); got != [3]float32{50, 50, 0} {
		t.Errorf("second item prev = %v, want its own first point", got)
	}
	// Last vertex of the first item.
	if got := vec3(next, 5); got != [3]float32{1, 0, 0} {
		t.Errorf("first item last next = %v, want its own last point", got)
	}
}

func TestStyleRoundTrip(t *testing.T) {
	pts := coords([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}, [2]float64{3, 0})
	colors := []geo.Color{{R: 1}, {G: 1}, {B: 1}, {R: 0.5, G: 0.5, B: 0.5}}
	widthOf := func(_ any, _ int, _ any, j int) float64 { return float64(j + 1) }
	colorOf := func(_ any, _ int, _ any, j int) geo.Color { return colors[j] }
	opacityOf := func(_ any, _ int, _ any, j int) float64 { return 0.25 * float64(j+1) }

	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{
		Data: []any{pts},
		Style: feature.LineStyle{
			StrokeWidth:   widthOf,
			StrokeColor:   colorOf,
			StrokeOpacity: opacityOf,
		},
	})
	if err := l.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	width := source(t, l, scene.AttribOne)
	color := source(t, l, scene.AttribTwo)
	opacity := source(t, l, scene.AttribThree)
	ends := []int{0, 1, 0, 0, 1, 1}
	for seg := 0; seg < 3; seg++ {
		for v := 0; v < 6; v++ {
			idx := seg*6 + v
			j := seg + ends[v]
			if got, want := width.Data[idx], float32(widthOf(nil, 0, nil, j)); got != want {
				t.Errorf("width[%d] = %v, want %v", idx, got, want)
			}
			if got, want := vec3(color, idx), colors[j].Float32(); got != want {
				t.Errorf("color[%d] = %v, want %v", idx, got, want)
			}
			if got, want := opacity.Data[idx], float32(opacityOf(nil, 0, nil, j)); got != want {
				t.Errorf("opacity[%d] = %v, want %v", idx, got, want)
			}
		}
	}
}

func TestUniformStyle(t *testing.T) {
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{
		Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0})},
		Style: feature.LineStyle{
			StrokeWidth:   feature.Constant(3.0),
			StrokeColor:   feature.Constant(geo.Color{R: 1}),
			StrokeOpacity: feature.Constant(0.5),
		},
	})
	if err := l.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	width := source(t, l, scene.AttribOne)
	opacity := source(t, l, scene.AttribThree)
	color := source(t, l, scene.AttribTwo)
	for i := 0; i < 12; i++ {
		if width.Data[i] != 3 || opacity.Data[i] != 0.5 || vec3(color, i) != [3]float32{1, 0, 0} {
			t.Fatalf("vertex %d style = %v %v %v", i, width.Data[i], vec3(color, i), opacity.Data[i])
		}
	}
}

func TestReprojection(t *testing.T) {
	ll := []geo.Coord{{10, 20, 0}, {11, 21, 0}}
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{
		GCS:  geo.WGS84,
		Data: []any{[]geo.Coord{ll[0], ll[1]}},
	})
	if err := l.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	want, err := geo.TransformCoordinates(geo.WGS84, geo.WebMercator, ll)
	if err != nil {
		t.Fatal(err)
	}

	pos := source(t, l, scene.AttribPosition)
	next := source(t, l, scene.AttribFive)
	got := vec3(pos, 0)
	if got != [3]float32{float32(want[0][0]), float32(want[0][1]), 0} {
		t.Errorf("pos[0] = %v, want %v", got, want[0])
	}
	got = vec3(next, 0)
	if got != [3]float32{float32(want[1][0]), float32(want[1][1]), 0} {
		t.Errorf("next[0] = %v, want %v", got, want[1])
	}
}

func TestUnknownGCS(t *testing.T) {
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{
		GCS:  "EPSG:27700",
		Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0})},
	})
	if err := l.Build(); !errors.Is(err, geo.ErrUnknownGCS) {
		t.Errorf("err = %v, want ErrUnknownGCS", err)
	}
}

func TestNoRebuildFastPath(t *testing.T) {
	l := newLine(t, newLayer(geo.WebMercator), feature.LineOptions{
		Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0})},
	})
	if err := l.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	v := l.Mapper().Version()
	if v != 1 {
		t.Fatalf("version after first update = %d, want 1", v)
	}

	for i := 0; i < 3; i++ {
		if err := l.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if got := l.Mapper().Version(); got != v {
		t.Errorf("unchanged feature rebuilt: version %d -> %d", v, got)
	}

	l.SetData([]any{coords([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0})})
	if err := l.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := l.Mapper().Version(); got != v+1 {
		t.Errorf("data change: version = %d, want %d", got, v+1)
	}
	if got := l.Mapper().GeometryData().NumVertices(); got != 12 {
		t.Errorf("vertices = %d, want 12", got)
	}

	l.SetStyle(feature.LineStyle{StrokeWidth: feature.Constant(4.0)})
	if err := l.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := l.Mapper().Version(); got != v+2 {
		t.Errorf("style change: version = %d, want %d", got, v+2)
	}
}

func TestInvalidCoordinateKeepsGeometry(t *testing.T) {
	layer := newLayer(geo.WebMercator)
	l := newLine(t, layer, feature.LineOptions{
		Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0})},
	})
	if err := l.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	before := l.Mapper().GeometryData()

	l.SetData([]any{coords([2]float64{0, 0}, [2]float64{math.NaN(), 0})})
	err := l.Update()
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	if l.Mapper().GeometryData() != before {
		t.Error("failed build replaced geometry")
	}
	if !layer.r.ctx.HasActor(l.Actor()) {
		t.Error("actor should be back in the render list after a failed build")
	}

	// Unknown point types resolve to NaN through the default accessor.
	l.SetData([]any{[]any{"a", "b"}})
	if err := l.Build(); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("err = %v, want ErrInvalidCoordinate", err)
	}
}

func TestFailedBuildStillAppliesFrameState(t *testing.T) {
	layer := newLayer(geo.WebMercator)
	l := newLine(t, layer, feature.LineOptions{
		Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0})},
	})
	if err := l.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	l.SetData([]any{coords([2]float64{0, 0}, [2]float64{math.NaN(), 0})})
	l.SetVisible(false)
	l.SetBin(7)
	if err := l.Update(); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	if l.Actor().Visible() {
		t.Error("actor still visible after SetVisible(false)")
	}
	if got := l.Actor().Material().BinNumber(); got != 7 {
		t.Errorf("expected bin 7, got %d", got)
	}
	if l.NeedsBuild() {
		t.Error("failed build should not be retried until data changes")
	}

	version := l.Mapper().Version()
	for i := 0; i < 3; i++ {
		if err := l.Update(); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}
	if l.Mapper().Version() != version {
		t.Error("geometry changed without new data")
	}

	l.SetData([]any{coords([2]float64{0, 0}, [2]float64{2, 0})})
	if !l.NeedsBuild() {
		t.Error("new data should trigger a rebuild")
	}
	if err := l.Update(); err != nil {
		t.Fatalf("Update after fix: %v", err)
	}
	if l.Mapper().Version() == version {
		t.Error("geometry not replaced after valid data")
	}
}

func TestRenderListMembership(t *testing.T) {
	layer := newLayer(geo.WebMercator)
	l := newLine(t, layer, feature.LineOptions{Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0})}})
	if layer.r.ctx.HasActor(l.Actor()) {
		t.Error("actor should not be drawn before the first build")
	}
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if !layer.r.ctx.HasActor(l.Actor()) {
		t.Error("actor missing after build")
	}
	if n := len(layer.r.ctx.Actors()); n != 1 {
		t.Errorf("render list has %d actors, want 1", n)
	}
	l.Exit()
	if layer.r.ctx.HasActor(l.Actor()) {
		t.Error("actor still present after Exit")
	}
}

func TestUpdateRefreshesState(t *testing.T) {
	layer := newLayer(geo.WebMercator)
	l := newLine(t, layer, feature.LineOptions{Data: []any{coords([2]float64{0, 0}, [2]float64{1, 0})}})
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}

	layer.r.width = 400
	l.SetVisible(false)
	l.SetBin(7)
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	prog := l.Actor().Material().Program()
	if got := prog.Uniform("pixelWidth").Value(); got != 1.0/400 {
		t.Errorf("pixelWidth = %v, want 1/400", got)
	}
	if l.Actor().Visible() {
		t.Error("actor should be hidden")
	}
	if got := l.Actor().Material().BinNumber(); got != 7 {
		t.Errorf("bin = %d, want 7", got)
	}

	layer.r.width = 0
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if got := prog.Uniform("pixelWidth").Value(); got != 1.0/400 {
		t.Errorf("zero width should keep pixelWidth, got %v", got)
	}
}
