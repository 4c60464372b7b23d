package worldgen

import (
	"math"

	"beast-ride-saga/server/models"
)

const (
	pathChance    = 0.7
	routeJitter   = 0.3
	arriveEpsilon = 0.5
)

// ConnectPointsOfInterest links every settlement to its nearest neighbour and
// most dungeons and landmarks to their nearest settlement, tracing the
// routes onto the grid.
func ConnectPointsOfInterest(w *models.WorldMap, pois []models.PointOfInterest, rng *RNG) {
	var settlements []int
	for i := range pois {
		if pois[i].Kind.IsSettlement() {
			settlements = append(settlements, i)
		}
	}

	for _, i := range settlements {
		j, ok := nearest(pois, settlements, i)
		if !ok {
			continue
		}
		road := pois[i].Kind == models.POIKindTown || pois[j].Kind == models.POIKindTown
		link(pois, i, j)
		TraceRoute(w, pos(&pois[i]), pos(&pois[j]), road, rng)
	}

	for i := range pois {
		if pois[i].Kind.IsSettlement() {
			continue
		}
		j, ok := nearest(pois, settlements, i)
		if !ok || !rng.Chance(pathChance) {
			continue
		}
		link(pois, i, j)
		TraceRoute(w, pos(&pois[i]), pos(&pois[j]), false, rng)
	}
}

func pos(p *models.PointOfInterest) models.Position {
	return models.Position{X: p.X, Y: p.Y}
}

// nearest returns the index of the closest candidate other than i. Ties keep
// placement order.
func nearest(pois []models.PointOfInterest, candidates []int, i int) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for _, j := range candidates {
		if j == i {
			continue
		}
		if d := distance(pos(&pois[i]), pos(&pois[j])); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, best >= 0
}

func link(pois []models.PointOfInterest, i, j int) {
	if !pois[i].IsConnectedTo(pois[j].ID) {
		pois[i].ConnectedTo = append(pois[i].ConnectedTo, pois[j].ID)
	}
	if !pois[j].IsConnectedTo(pois[i].ID) {
		pois[j].ConnectedTo = append(pois[j].ConnectedTo, pois[i].ID)
	}
}

// TraceRoute walks a jittered line from start to end, paving the land it
// crosses. Rivers become bridges; water and points of interest are skipped.
func TraceRoute(w *models.WorldMap, start, end models.Position, road bool, rng *RNG) {
	x, y := float64(start.X), float64(start.Y)
	ex, ey := float64(end.X), float64(end.Y)
	limit := 2 * (w.Width + w.Height)

	for steps := 0; steps < limit; steps++ {
		if math.Abs(x-ex) <= arriveEpsilon && math.Abs(y-ey) <= arriveEpsilon {
			return
		}
		dx, dy := ex-x, ey-y
		length := math.Hypot(dx, dy)
		step := math.Min(1, length)
		x += dx/length*step + (rng.Float64()-0.5)*routeJitter
		y += dy/length*step + (rng.Float64()-0.5)*routeJitter

		pave(w, int(math.Round(x)), int(math.Round(y)), road)
	}
}

func pave(w *models.WorldMap, x, y int, road bool) {
	c := w.TileAt(x, y)
	if c == nil || c.HasPointOfInterest || c.Terrain.IsWater() {
		return
	}

	switch c.Terrain {
	case models.TerrainRiver:
		c.Terrain = models.TerrainBridge
	case models.TerrainBridge, models.TerrainRoad:
		return
	case models.TerrainPath:
		if !road {
			return
		}
		c.Terrain = models.TerrainRoad
	default:
		if road {
			c.Terrain = models.TerrainRoad
		} else {
			c.Terrain = models.TerrainPath
		}
	}
	c.MovementCost = MovementCost(c.Terrain)
}
