package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/physanim/pkg/math"
)

// Scene is the on-disk description of a level.
type Scene struct {
	Name    string      `yaml:"name"`
	Terrain TerrainSpec `yaml:"terrain"`
	Props   []PropSpec  `yaml:"props"`
	Spawn   SpawnSpec   `yaml:"spawn"`
}

// TerrainSpec describes the heightfield. Heights has Rows+1 rows of Cols+1
// corner heights each, starting at the origin corner.
type TerrainSpec struct {
	Origin   [2]float32  `yaml:"origin"`
	CellSize float32     `yaml:"cell_size"`
	Heights  [][]float32 `yaml:"heights"`
}

// PropSpec describes one box prop.
type PropSpec struct {
	ID   uint32     `yaml:"id"`
	Name string     `yaml:"name"`
	Min  [3]float32 `yaml:"min"`
	Max  [3]float32 `yaml:"max"`
}

// SpawnSpec is where the character starts.
type SpawnSpec struct {
	Location [3]float32 `yaml:"location"`
	Yaw      float32    `yaml:"yaw"`
	Velocity [3]float32 `yaml:"velocity"`
}

// SpawnLocation returns the spawn point as a vector.
func (s SpawnSpec) SpawnLocation() math.Vec3 {
	return vec3(s.Location)
}

// SpawnVelocity returns the initial velocity as a vector.
func (s SpawnSpec) SpawnVelocity() math.Vec3 {
	return vec3(s.Velocity)
}

// DefaultScene is level ground 106 units below the spawn point with a
// 10 unit high slab to the character's right, so the two feet stand at
// different heights.
func DefaultScene() *Scene {
	const cols, rows = 8, 8
	heights := make([][]float32, rows+1)
	for y := range heights {
		heights[y] = make([]float32, cols+1)
		for x := range heights[y] {
			heights[y][x] = -106
		}
	}

	return &Scene{
		Name: "step",
		Terrain: TerrainSpec{
			Origin:   [2]float32{-200, -200},
			CellSize: 50,
			Heights:  heights,
		},
		Props: []PropSpec{
			{ID: 100, Name: "slab", Min: [3]float32{-100, 0, -106}, Max: [3]float32{100, 100, -96}},
		},
	}
}

// LoadScene reads a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes a scene from YAML.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &s, nil
}

// Build turns the description into a queryable world.
func (s *Scene) Build() (*World, error) {
	terrain, err := s.Terrain.build()
	if err != nil {
		return nil, err
	}

	w := New(terrain)
	for _, spec := range s.Props {
		id := ActorID(spec.ID)
		if _, dup := w.Prop(id); dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidProp, id)
		}
		p, err := NewProp(id, spec.Name, vec3(spec.Min), vec3(spec.Max))
		if err != nil {
			return nil, err
		}
		w.Upsert(p)
	}
	return w, nil
}

// build returns nil for a scene without terrain.
func (t TerrainSpec) build() (*Heightfield, error) {
	if len(t.Heights) == 0 {
		return nil, nil
	}

	rows := len(t.Heights) - 1
	cols := len(t.Heights[0]) - 1
	flat := make([]float32, 0, (rows+1)*(cols+1))
	for y, row := range t.Heights {
		if len(row) != cols+1 {
			return nil, fmt.Errorf("%w: row %d has %d heights, want %d", ErrInvalidTerrain, y, len(row), cols+1)
		}
		flat = append(flat, row...)
	}
	return NewHeightfield(t.Origin[0], t.Origin[1], t.CellSize, cols, rows, flat)
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
