package models

import "math"

const (
	// RevealRadius is the Euclidean radius uncovered around the player after each move
	RevealRadius = 3
	// StartRevealRadius is the radius uncovered around the starting position
	StartRevealRadius = 5
	// DiscoverDistance is how close a point of interest must be to be discovered
	DiscoverDistance = 5
	// ExploreDistance is how close a point of interest must be to be explored
	ExploreDistance = 1
	// MaxEnterableCost is the exclusive upper bound on the cost of a cell the player may step onto
	MaxEnterableCost = 50
)

// Discoveries lists what a move uncovered for the first time
type Discoveries struct {
	PointsOfInterest []string `json:"points_of_interest,omitempty"`
	Regions          []string `json:"regions,omitempty"`
}

// Move steps the player one cell in the given direction. It returns false and
// leaves the map untouched when the target is out of bounds or too costly to enter.
func (w *WorldMap) Move(d Direction) bool {
	moved, _ := w.MoveAndReport(d)
	return moved
}

// MoveAndReport behaves like Move and also reports newly discovered places
func (w *WorldMap) MoveAndReport(d Direction) (bool, Discoveries) {
	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		return false, Discoveries{}
	}

	nx := w.CurrentPlayerPosition.X + dx
	ny := w.CurrentPlayerPosition.Y + dy
	target := w.TileAt(nx, ny)
	if target == nil || target.MovementCost >= MaxEnterableCost {
		return false, Discoveries{}
	}

	w.CurrentPlayerPosition = Position{X: nx, Y: ny}
	return true, w.observe(RevealRadius)
}

// PlacePlayer puts the player at (x, y) and uncovers the surroundings
func (w *WorldMap) PlacePlayer(x, y, radius int) Discoveries {
	w.CurrentPlayerPosition = Position{X: x, Y: y}
	return w.observe(radius)
}

func (w *WorldMap) observe(radius int) Discoveries {
	p := w.CurrentPlayerPosition
	w.Reveal(p.X, p.Y, radius)

	var found Discoveries
	found.PointsOfInterest = w.updatePointsOfInterest()
	found.Regions = w.RefreshRegions()
	return found
}

// Reveal marks every in-bounds cell within the Euclidean radius as explored
func (w *WorldMap) Reveal(cx, cy, radius int) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			if cell := w.TileAt(cx+dx, cy+dy); cell != nil {
				cell.Explored = true
			}
		}
	}
}

func (w *WorldMap) updatePointsOfInterest() []string {
	var discovered []string
	p := w.CurrentPlayerPosition
	for i := range w.PointsOfInterest {
		poi := &w.PointsOfInterest[i]
		d := math.Hypot(float64(poi.X-p.X), float64(poi.Y-p.Y))
		if d <= DiscoverDistance && !poi.Discovered {
			poi.Discovered = true
			discovered = append(discovered, poi.ID)
		}
		if d <= ExploreDistance {
			poi.Explored = true
		}
	}
	return discovered
}

// RefreshRegions recomputes explored percentages from the cell grid and
// returns the ids of regions that became discovered.
func (w *WorldMap) RefreshRegions() []string {
	var discovered []string
	for i := range w.Regions {
		r := &w.Regions[i]
		explored, total := w.countExplored(r)
		if total == 0 {
			continue
		}

		pct := math.Floor(float64(explored) / float64(total) * 100)
		if pct > r.ExploredPercent {
			r.ExploredPercent = pct
		}
		if !r.Discovered && r.ExploredPercent >= DiscoveryThreshold {
			r.Discovered = true
			discovered = append(discovered, r.ID)
		}
	}
	return discovered
}

func (w *WorldMap) countExplored(r *Region) (explored, total int) {
	minX, minY, maxX, maxY := r.Bounds()
	for y := max(minY, 0); y <= min(maxY, w.Height-1); y++ {
		for x := max(minX, 0); x <= min(maxX, w.Width-1); x++ {
			total++
			if w.Cells[w.Index(x, y)].Explored {
				explored++
			}
		}
	}
	return explored, total
}
