package worldgen

import (
	"math"
	"sort"

	"beast-ride-saga/server/models"
)

const (
	riverSourceElevation = 70.0
	riverMouthElevation  = 15.0
	lakeElevation        = 15.0
	lakeMinRadius        = 3
	lakeMaxRadius        = 7
)

// CarveRivers traces steepest-descent rivers from the highest cells and
// returns the visited path of each river.
func CarveRivers(w *models.WorldMap, count int) [][]models.Position {
	var rivers [][]models.Position
	for _, src := range riverSources(w, count) {
		rivers = append(rivers, traceRiver(w, src))
	}
	return rivers
}

// riverSources picks up to count sources above the source elevation, highest
// first, at least width/5 apart. Ties keep scan order.
func riverSources(w *models.WorldMap, count int) []models.Position {
	var candidates []models.Position
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			c := w.TileAt(x, y)
			if c.Elevation > riverSourceElevation && c.Terrain != models.TerrainOcean {
				candidates = append(candidates, models.Position{X: x, Y: y})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return w.TileAt(candidates[i].X, candidates[i].Y).Elevation >
			w.TileAt(candidates[j].X, candidates[j].Y).Elevation
	})

	minSpacing := float64(w.Width) / 5
	var picked []models.Position
	for _, c := range candidates {
		if len(picked) >= count {
			break
		}
		ok := true
		for _, p := range picked {
			if distance(c, p) < minSpacing {
				ok = false
				break
			}
		}
		if ok {
			picked = append(picked, c)
		}
	}
	return picked
}

func traceRiver(w *models.WorldMap, src models.Position) []models.Position {
	var path []models.Position
	cur := src

	for steps := 0; steps < w.Width+w.Height; steps++ {
		cell := w.TileAt(cur.X, cur.Y)
		if cell.Terrain == models.TerrainOcean {
			break
		}
		path = append(path, cur)
		cell.Terrain = models.TerrainRiver
		cell.MovementCost = MovementCost(models.TerrainRiver)
		cell.DangerLevel = DangerLevel(models.TerrainRiver)

		if cell.Elevation < riverMouthElevation {
			break
		}
		next, ok := lowestNeighbour(w, cur)
		if !ok {
			break
		}
		cur = next
	}
	return path
}

// lowestNeighbour returns the strictly lower in-bounds 8-neighbour with the
// smallest elevation. Ties keep scan order.
func lowestNeighbour(w *models.WorldMap, p models.Position) (models.Position, bool) {
	best := w.TileAt(p.X, p.Y).Elevation
	var out models.Position
	found := false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			c := w.TileAt(p.X+dx, p.Y+dy)
			if c != nil && c.Elevation < best {
				best = c.Elevation
				out = models.Position{X: p.X + dx, Y: p.Y + dy}
				found = true
			}
		}
	}
	return out, found
}

// CarveLakes fills up to width/40 disks of lake water centred on low plains
// or forest cells. Ocean cells inside a disk are left alone.
func CarveLakes(w *models.WorldMap, rng *RNG) []models.Position {
	var centres []models.Position
	for i := 0; i < w.Width/40; i++ {
		var candidates []models.Position
		for y := 0; y < w.Height; y++ {
			for x := 0; x < w.Width; x++ {
				c := w.TileAt(x, y)
				if (c.Terrain == models.TerrainPlains || c.Terrain == models.TerrainForest) &&
					c.Elevation > 15 && c.Elevation < 40 {
					candidates = append(candidates, models.Position{X: x, Y: y})
				}
			}
		}
		if len(candidates) == 0 {
			break
		}

		centre := candidates[rng.IntN(len(candidates))]
		radius := lakeMinRadius + rng.IntN(lakeMaxRadius-lakeMinRadius+1)
		fillLake(w, centre, radius)
		centres = append(centres, centre)
	}
	return centres
}

func fillLake(w *models.WorldMap, centre models.Position, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if math.Hypot(float64(dx), float64(dy)) > float64(radius) {
				continue
			}
			c := w.TileAt(centre.X+dx, centre.Y+dy)
			if c == nil || c.Terrain == models.TerrainOcean {
				continue
			}
			c.Terrain = models.TerrainLake
			c.Elevation = lakeElevation
			c.MovementCost = models.ImpassableCost
			c.DangerLevel = 0
		}
	}
}

func distance(a, b models.Position) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
