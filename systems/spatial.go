// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
)

// Neighbor holds a nearby food item with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	Pos    r3.Vec
	DistSq float64 // squared XZ distance from the query origin
}

// FoodIndex provides cell-based lookups of food on the arena floor.
// Positions outside the arena are clamped into the edge cells.
type FoodIndex struct {
	cellSize float64
	cols     int
	rows     int
	minX     float64
	minZ     float64
	cells    [][]Neighbor
	count    int

	filter ecs.Filter2[components.Transform, components.Food]
}

// NewFoodIndex creates an index over the food entities of w.
func NewFoodIndex(w *ecs.World, cellSize float64) *FoodIndex {
	return &FoodIndex{
		cellSize: cellSize,
		filter:   *ecs.NewFilter2[components.Transform, components.Food](w),
	}
}

// Rebuild clears the index, resizes it to cover b and inserts every live food item.
func (g *FoodIndex) Rebuild(b arena.Bounds) {
	g.resize(b)
	g.Clear()

	query := g.filter.Query()
	for query.Next() {
		tr, _ := query.Get()
		g.Insert(query.Entity(), tr.Position)
	}
}

// resize reallocates the cell array only when the grid dimensions change.
func (g *FoodIndex) resize(b arena.Bounds) {
	g.minX = b.MinX()
	g.minZ = b.MinZ()

	cols := int(2*b.HalfWidth/g.cellSize) + 1
	rows := int(2*b.HalfLength/g.cellSize) + 1
	if cols == g.cols && rows == g.rows {
		return
	}

	g.cols = cols
	g.rows = rows
	g.cells = make([][]Neighbor, cols*rows)
	for i := range g.cells {
		g.cells[i] = make([]Neighbor, 0, 4)
	}
}

// Clear removes all entries from the index.
func (g *FoodIndex) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Insert adds a food item at the given position.
func (g *FoodIndex) Insert(e ecs.Entity, pos r3.Vec) {
	if len(g.cells) == 0 {
		return
	}
	col, row := g.cellCoords(pos.X, pos.Z)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], Neighbor{E: e, Pos: pos})
	g.count++
}

// Len returns the number of indexed food items.
func (g *FoodIndex) Len() int {
	return g.count
}

// QueryRadiusInto appends every item whose XZ distance from pos is at most
// radius to dst and returns the updated slice. Reuse dst across calls to avoid allocations.
func (g *FoodIndex) QueryRadiusInto(dst []Neighbor, pos r3.Vec, radius float64) []Neighbor {
	if len(g.cells) == 0 {
		return dst
	}

	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(pos.X, pos.Z)

	// Clamp the scanned range; out-of-arena items live in edge cells
	loCol, hiCol := g.clampCol(centerCol-cellRadius), g.clampCol(centerCol+cellRadius)
	loRow, hiRow := g.clampRow(centerRow-cellRadius), g.clampRow(centerRow+cellRadius)

	radiusSq := radius * radius

	for row := loRow; row <= hiRow; row++ {
		for col := loCol; col <= hiCol; col++ {
			for _, n := range g.cells[row*g.cols+col] {
				dx := n.Pos.X - pos.X
				dz := n.Pos.Z - pos.Z
				distSq := dx*dx + dz*dz
				if distSq <= radiusSq {
					n.DistSq = distSq
					dst = append(dst, n)
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped cell column and row for a world position.
func (g *FoodIndex) cellCoords(x, z float64) (col, row int) {
	col = g.clampCol(int((x - g.minX) / g.cellSize))
	row = g.clampRow(int((z - g.minZ) / g.cellSize))
	return col, row
}

func (g *FoodIndex) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *FoodIndex) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
