// Package world answers ground queries for the character: a Z-up terrain
// heightfield plus box-shaped props, both raycast as line segments.
package world

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/physanim/pkg/math"
)

// Terrain errors.
var (
	ErrInvalidTerrain = errors.New("invalid terrain")
)

// marchStepsPerCell controls sampling density for non-vertical rays.
const marchStepsPerCell = 4

// bisectIterations refines a bracketed surface crossing.
const bisectIterations = 20

// Heightfield is a regular grid of corner heights in the XY plane.
// Heights holds (Cols+1)*(Rows+1) values, row-major along X.
type Heightfield struct {
	OriginX  float32
	OriginY  float32
	CellSize float32
	Cols     int
	Rows     int
	Heights  []float32
}

// NewHeightfield checks the grid dimensions against the height count.
func NewHeightfield(originX, originY, cellSize float32, cols, rows int, heights []float32) (*Heightfield, error) {
	if cellSize <= 0 || !math.IsFinite(cellSize) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidTerrain, cellSize)
	}
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidTerrain, cols, rows)
	}
	if want := (cols + 1) * (rows + 1); len(heights) != want {
		return nil, fmt.Errorf("%w: %d heights for %dx%d cells, want %d", ErrInvalidTerrain, len(heights), cols, rows, want)
	}
	for i, h := range heights {
		if !math.IsFinite(h) {
			return nil, fmt.Errorf("%w: height %d is %v", ErrInvalidTerrain, i, h)
		}
	}
	return &Heightfield{
		OriginX:  originX,
		OriginY:  originY,
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		Heights:  heights,
	}, nil
}

// FlatHeightfield returns a level grid at height h.
func FlatHeightfield(originX, originY, cellSize float32, cols, rows int, h float32) *Heightfield {
	heights := make([]float32, (cols+1)*(rows+1))
	for i := range heights {
		heights[i] = h
	}
	return &Heightfield{OriginX: originX, OriginY: originY, CellSize: cellSize, Cols: cols, Rows: rows, Heights: heights}
}

// corner returns the height at grid vertex (cx, cy).
func (h *Heightfield) corner(cx, cy int) float32 {
	return h.Heights[cy*(h.Cols+1)+cx]
}

// cell locates (x, y) and returns the cell indices and the fractional
// position inside it. ok is false outside the grid.
func (h *Heightfield) cell(x, y float32) (cx, cy int, fx, fy float32, ok bool) {
	gx := (x - h.OriginX) / h.CellSize
	gy := (y - h.OriginY) / h.CellSize
	if gx < 0 || gy < 0 || gx > float32(h.Cols) || gy > float32(h.Rows) {
		return 0, 0, 0, 0, false
	}

	cx = int(gx)
	cy = int(gy)
	// The far edges belong to the last cell.
	if cx == h.Cols {
		cx--
	}
	if cy == h.Rows {
		cy--
	}
	return cx, cy, gx - float32(cx), gy - float32(cy), true
}

// HeightAt returns the bilinearly interpolated ground height at (x, y).
func (h *Heightfield) HeightAt(x, y float32) (float32, bool) {
	cx, cy, fx, fy, ok := h.cell(x, y)
	if !ok {
		return 0, false
	}

	h00 := h.corner(cx, cy)
	h10 := h.corner(cx+1, cy)
	h01 := h.corner(cx, cy+1)
	h11 := h.corner(cx+1, cy+1)

	near := h00*(1-fx) + h10*fx
	far := h01*(1-fx) + h11*fx
	return near*(1-fy) + far*fy, true
}

// NormalAt returns the surface normal of the bilinear patch at (x, y).
func (h *Heightfield) NormalAt(x, y float32) (math.Vec3, bool) {
	cx, cy, fx, fy, ok := h.cell(x, y)
	if !ok {
		return math.Vec3{}, false
	}

	h00 := h.corner(cx, cy)
	h10 := h.corner(cx+1, cy)
	h01 := h.corner(cx, cy+1)
	h11 := h.corner(cx+1, cy+1)

	dx := ((h10-h00)*(1-fy) + (h11-h01)*fy) / h.CellSize
	dy := ((h01-h00)*(1-fx) + (h11-h10)*fx) / h.CellSize
	return math.Vec3{X: -dx, Y: -dy, Z: 1}.Normalize(), true
}

// Raycast finds where the segment first passes from above the surface to
// on or below it. Segments that start below the surface do not hit.
func (h *Heightfield) Raycast(start, end math.Vec3) (Hit, bool) {
	if start.X == end.X && start.Y == end.Y {
		return h.raycastVertical(start, end)
	}

	// above(t) > 0 while the point at t is over the surface; off-grid
	// points count as open air.
	above := func(t float32) float32 {
		p := lerp(start, end, t)
		g, ok := h.HeightAt(p.X, p.Y)
		if !ok {
			return math32.MaxFloat32
		}
		return p.Z - g
	}

	if above(0) <= 0 {
		return Hit{}, false
	}

	planar := math32.Hypot(end.X-start.X, end.Y-start.Y)
	steps := int(math32.Ceil(planar / h.CellSize * marchStepsPerCell))
	if steps < 1 {
		steps = 1
	}

	prev := float32(0)
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		if above(t) > 0 {
			prev = t
			continue
		}

		lo, hi := prev, t
		for range bisectIterations {
			mid := (lo + hi) / 2
			if above(mid) > 0 {
				lo = mid
			} else {
				hi = mid
			}
		}
		return h.hitAt(start, end, hi), true
	}
	return Hit{}, false
}

func (h *Heightfield) raycastVertical(start, end math.Vec3) (Hit, bool) {
	g, ok := h.HeightAt(start.X, start.Y)
	if !ok {
		return Hit{}, false
	}

	top, bottom := start.Z, end.Z
	if top < bottom {
		// Upward segments only hit from below, which a one-sided surface
		// does not report.
		return Hit{}, false
	}
	if g > top || g < bottom {
		return Hit{}, false
	}

	normal, _ := h.NormalAt(start.X, start.Y)
	loc := math.Vec3{X: start.X, Y: start.Y, Z: g}
	return Hit{
		Location:   loc,
		Normal:     normal,
		TraceStart: start,
		TraceEnd:   end,
		Distance:   top - g,
		Actor:      TerrainActor,
	}, true
}

func (h *Heightfield) hitAt(start, end math.Vec3, t float32) Hit {
	p := lerp(start, end, t)
	if g, ok := h.HeightAt(p.X, p.Y); ok {
		p.Z = g
	}
	normal, _ := h.NormalAt(p.X, p.Y)
	return Hit{
		Location:   p,
		Normal:     normal,
		TraceStart: start,
		TraceEnd:   end,
		Distance:   start.Distance(p),
		Actor:      TerrainActor,
	}
}

func lerp(a, b math.Vec3, t float32) math.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
