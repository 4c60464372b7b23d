package worldgen

import (
	"fmt"

	"beast-ride-saga/server/models"
)

const (
	regionSpan       = 30
	regionPlaceTries = 100
	regionMinSize    = 10
	regionSizeSpread = 20
)

// IdentifyRegions partitions the map into named rectangular regions centred
// on land cells that are at least width/5 apart.
func IdentifyRegions(w *models.WorldMap, rng *RNG) []models.Region {
	count := max(1, w.Width/regionSpan)
	minSpacing := float64(w.Width) / 5

	var centres []models.Position
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < regionPlaceTries; attempt++ {
			p := models.Position{X: rng.IntN(w.Width), Y: rng.IntN(w.Height)}
			if w.TileAt(p.X, p.Y).Terrain == models.TerrainOcean {
				continue
			}
			if tooClose(p, centres, minSpacing) {
				continue
			}
			centres = append(centres, p)
			break
		}
	}

	regions := make([]models.Region, 0, len(centres))
	for i, c := range centres {
		centre := w.TileAt(c.X, c.Y)
		r := models.Region{
			ID:      fmt.Sprintf("region_%d", i),
			CenterX: c.X,
			CenterY: c.Y,
			Width:   regionMinSize + rng.IntN(regionSizeSpread),
			Height:  regionMinSize + rng.IntN(regionSizeSpread),
			Biome:   centre.Biome,
		}
		r.MainTerrainType = dominantTerrain(w, &r)
		r.Name = regionName(rng, r.MainTerrainType, r.Biome)
		r.Description = regionDescription(r.MainTerrainType, r.Biome)
		regions = append(regions, r)
	}
	return regions
}

func tooClose(p models.Position, others []models.Position, minSpacing float64) bool {
	for _, o := range others {
		if distance(p, o) < minSpacing {
			return true
		}
	}
	return false
}

// dominantTerrain returns the most frequent land terrain inside the region,
// breaking ties by declaration order.
func dominantTerrain(w *models.WorldMap, r *models.Region) models.Terrain {
	counts := make(map[models.Terrain]int)
	minX, minY, maxX, maxY := r.Bounds()
	for y := max(minY, 0); y <= min(maxY, w.Height-1); y++ {
		for x := max(minX, 0); x <= min(maxX, w.Width-1); x++ {
			if t := w.TileAt(x, y).Terrain; t != models.TerrainOcean {
				counts[t]++
			}
		}
	}

	best := w.TileAt(r.CenterX, r.CenterY).Terrain
	bestCount := 0
	for _, t := range models.AllTerrains {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}

// regionCells lists the in-bounds cells of a region in scan order.
func regionCells(w *models.WorldMap, r *models.Region) []models.Position {
	var out []models.Position
	minX, minY, maxX, maxY := r.Bounds()
	for y := max(minY, 0); y <= min(maxY, w.Height-1); y++ {
		for x := max(minX, 0); x <= min(maxX, w.Width-1); x++ {
			out = append(out, models.Position{X: x, Y: y})
		}
	}
	return out
}
