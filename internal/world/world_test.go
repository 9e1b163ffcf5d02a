package world

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/physanim/pkg/math"
)

func near(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(tol)
}

func nearVec(a, b math.Vec3, tol float32) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

// rampTerrain rises 50 units along X across the middle cell column.
func rampTerrain(t *testing.T) *Heightfield {
	t.Helper()
	h, err := NewHeightfield(0, 0, 100, 3, 2, []float32{
		0, 0, 50, 50,
		0, 0, 50, 50,
		0, 0, 50, 50,
	})
	if err != nil {
		t.Fatalf("NewHeightfield failed: %v", err)
	}
	return h
}

func TestNewHeightfieldInvalid(t *testing.T) {
	tests := []struct {
		name       string
		cellSize   float32
		cols, rows int
		heights    []float32
	}{
		{"zero cell size", 0, 1, 1, make([]float32, 4)},
		{"no cells", 10, 0, 1, make([]float32, 2)},
		{"too few heights", 10, 2, 2, make([]float32, 8)},
		{"NaN height", 10, 1, 1, []float32{0, 0, float32(gomath.NaN()), 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeightfield(0, 0, tt.cellSize, tt.cols, tt.rows, tt.heights)
			if !errors.Is(err, ErrInvalidTerrain) {
				t.Errorf("NewHeightfield() error = %v, want ErrInvalidTerrain", err)
			}
		})
	}
}

func TestHeightAt(t *testing.T) {
	h := rampTerrain(t)

	tests := []struct {
		x, y float32
		want float32
		ok   bool
	}{
		{50, 50, 0, true},
		{150, 100, 25, true},
		{175, 0, 37.5, true},
		{250, 200, 50, true},
		{300, 200, 50, true},
		{-1, 50, 0, false},
		{50, 201, 0, false},
	}

	for _, tt := range tests {
		got, ok := h.HeightAt(tt.x, tt.y)
		if ok != tt.ok || (ok && !near(got, tt.want, 1e-4)) {
			t.Errorf("HeightAt(%v, %v) = %v, %v; want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalAt(t *testing.T) {
	h := rampTerrain(t)

	flat, ok := h.NormalAt(50, 50)
	if !ok || !nearVec(flat, math.Vec3{Z: 1}, 1e-5) {
		t.Errorf("NormalAt on flat cell = %v, %v; want +Z", flat, ok)
	}

	slope, ok := h.NormalAt(150, 100)
	want := math.Vec3{X: -0.5, Z: 1}.Normalize()
	if !ok || !nearVec(slope, want, 1e-5) {
		t.Errorf("NormalAt on ramp = %v, want %v", slope, want)
	}
}

func TestHeightfieldRaycastVertical(t *testing.T) {
	h := rampTerrain(t)

	hit, ok := h.Raycast(math.Vec3{X: 150, Y: 100, Z: 100}, math.Vec3{X: 150, Y: 100, Z: -100})
	if !ok {
		t.Fatal("expected a hit on the ramp")
	}
	if hit.Location != (math.Vec3{X: 150, Y: 100, Z: 25}) {
		t.Errorf("hit location = %v, want z=25", hit.Location)
	}
	if hit.Distance != 75 {
		t.Errorf("hit distance = %v, want 75", hit.Distance)
	}
	if hit.Actor != TerrainActor {
		t.Errorf("hit actor = %v, want terrain", hit.Actor)
	}

	misses := []struct {
		name       string
		start, end math.Vec3
	}{
		{"starts below ground", math.Vec3{X: 250, Y: 100, Z: 40}, math.Vec3{X: 250, Y: 100, Z: -100}},
		{"ends above ground", math.Vec3{X: 50, Y: 100, Z: 100}, math.Vec3{X: 50, Y: 100, Z: 10}},
		{"points upward", math.Vec3{X: 50, Y: 100, Z: -10}, math.Vec3{X: 50, Y: 100, Z: 100}},
		{"off the grid", math.Vec3{X: 500, Y: 100, Z: 100}, math.Vec3{X: 500, Y: 100, Z: -100}},
	}
	for _, tt := range misses {
		if hit, ok := h.Raycast(tt.start, tt.end); ok {
			t.Errorf("%s: unexpected hit %+v", tt.name, hit)
		}
	}
}

func TestHeightfieldRaycastSlanted(t *testing.T) {
	h := rampTerrain(t)

	// z = 100 - (x-50)/2 meets the ramp z = (x-100)/2 at x = 175.
	hit, ok := h.Raycast(math.Vec3{X: 50, Y: 100, Z: 100}, math.Vec3{X: 250, Y: 100, Z: 0})
	if !ok {
		t.Fatal("expected a hit")
	}
	if !nearVec(hit.Location, math.Vec3{X: 175, Y: 100, Z: 37.5}, 0.01) {
		t.Errorf("hit location = %v, want (175, 100, 37.5)", hit.Location)
	}
}

func TestPropRaycast(t *testing.T) {
	crate, err := NewProp(7, "crate", math.Vec3{X: 250, Y: 150, Z: 50}, math.Vec3{X: 290, Y: 190, Z: 90})
	if err != nil {
		t.Fatalf("NewProp failed: %v", err)
	}

	hit, ok := crate.Raycast(math.Vec3{X: 270, Y: 170, Z: 200}, math.Vec3{X: 270, Y: 170, Z: 0})
	if !ok {
		t.Fatal("expected to hit the crate")
	}
	if !nearVec(hit.Location, math.Vec3{X: 270, Y: 170, Z: 90}, 1e-3) {
		t.Errorf("hit location = %v, want top face at z=90", hit.Location)
	}
	if hit.Normal != (math.Vec3{Z: 1}) {
		t.Errorf("hit normal = %v, want +Z", hit.Normal)
	}
	if hit.Actor != 7 {
		t.Errorf("hit actor = %v, want 7", hit.Actor)
	}

	if _, ok := crate.Raycast(math.Vec3{X: 0, Y: 0, Z: 200}, math.Vec3{X: 0, Y: 0, Z: 0}); ok {
		t.Error("expected a miss beside the crate")
	}
}

func TestNewPropInvalid(t *testing.T) {
	if _, err := NewProp(TerrainActor, "bad", math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}); !errors.Is(err, ErrInvalidProp) {
		t.Errorf("terrain id: error = %v, want ErrInvalidProp", err)
	}
	if _, err := NewProp(1, "flat", math.Vec3{}, math.Vec3{X: 1, Y: 1}); !errors.Is(err, ErrInvalidProp) {
		t.Errorf("zero volume: error = %v, want ErrInvalidProp", err)
	}
}

func TestWorldRaycastNearestAndIgnore(t *testing.T) {
	w := New(rampTerrain(t))
	crate, _ := NewProp(100, "crate", math.Vec3{X: 250, Y: 150, Z: 50}, math.Vec3{X: 290, Y: 190, Z: 90})
	w.Upsert(crate)

	start := math.Vec3{X: 270, Y: 170, Z: 200}
	end := math.Vec3{X: 270, Y: 170, Z: -100}

	hit, ok := w.Raycast(start, end)
	if !ok || hit.Actor != 100 {
		t.Fatalf("expected the crate to be nearest, got %+v, %v", hit, ok)
	}

	hit, ok = w.Raycast(start, end, 100)
	if !ok || hit.Actor != TerrainActor || !near(hit.Location.Z, 50, 1e-4) {
		t.Errorf("ignoring the crate should hit terrain at z=50, got %+v, %v", hit, ok)
	}

	view := w.Excluding(100)
	if vh, ok := view.Raycast(start, end); !ok || vh != hit {
		t.Errorf("view raycast = %+v, want %+v", vh, hit)
	}

	if _, ok := w.Raycast(start, end, 100, TerrainActor); ok {
		t.Error("expected a miss with everything ignored")
	}
}

func TestWorldProps(t *testing.T) {
	w := New(nil)
	for _, id := range []ActorID{3, 1, 2} {
		p, _ := NewProp(id, "box", math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
		w.Upsert(p)
	}

	props := w.Props()
	if len(props) != 3 || props[0].ID != 3 || props[1].ID != 1 || props[2].ID != 2 {
		t.Errorf("Props() order = %v, want insertion order 3, 1, 2", props)
	}
	if !w.Remove(1) || w.Remove(1) {
		t.Error("Remove should succeed once")
	}
	if _, ok := w.Prop(1); ok {
		t.Error("removed prop still present")
	}
}

func TestLoadScene(t *testing.T) {
	s, err := LoadScene(filepath.Join("testdata", "ramp.yaml"))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if s.Name != "ramp" {
		t.Errorf("expected name ramp, got %s", s.Name)
	}
	if got := s.Spawn.SpawnLocation(); got != (math.Vec3{X: 50, Y: 100, Z: 96}) {
		t.Errorf("spawn location = %v", got)
	}
	if s.Spawn.Yaw != 90 {
		t.Errorf("spawn yaw = %v, want 90", s.Spawn.Yaw)
	}

	w, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if w.Terrain() == nil || w.Terrain().Cols != 3 || w.Terrain().Rows != 2 {
		t.Fatalf("unexpected terrain %+v", w.Terrain())
	}
	if g, _ := w.Terrain().HeightAt(150, 100); g != 25 {
		t.Errorf("terrain height at ramp middle = %v, want 25", g)
	}
	if _, ok := w.Prop(100); !ok {
		t.Error("expected crate prop")
	}
}

func TestSceneBuildInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "ragged rows",
			yaml: "terrain:\n  cell_size: 10\n  heights:\n    - [0, 0]\n    - [0]\n",
			want: ErrInvalidTerrain,
		},
		{
			name: "duplicate prop",
			yaml: "props:\n  - {id: 5, min: [0,0,0], max: [1,1,1]}\n  - {id: 5, min: [2,2,2], max: [3,3,3]}\n",
			want: ErrInvalidProp,
		},
		{
			name: "terrain id",
			yaml: "props:\n  - {id: 0, min: [0,0,0], max: [1,1,1]}\n",
			want: ErrInvalidProp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScene([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseScene failed: %v", err)
			}
			if _, err := s.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadSceneErrors(t *testing.T) {
	if _, err := LoadScene("/nonexistent/scene.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("terrain: [not, a, map"), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}
	if _, err := LoadScene(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDefaultSceneFeetHeights(t *testing.T) {
	w, err := DefaultScene().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	left, ok := w.Raycast(math.Vec3{Y: -12}, math.Vec3{Y: -12, Z: -146})
	if !ok || left.Location.Z != -106 || left.Actor != TerrainActor {
		t.Errorf("left foot hit = %+v, %v; want terrain at -106", left, ok)
	}
	right, ok := w.Raycast(math.Vec3{Y: 12}, math.Vec3{Y: 12, Z: -146})
	if !ok || !near(right.Location.Z, -96, 1e-4) || right.Actor != 100 {
		t.Errorf("right foot hit = %+v, %v; want slab at -96", right, ok)
	}
}
