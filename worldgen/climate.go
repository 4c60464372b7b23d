package worldgen

import "beast-ride-saga/server/models"

// Classification is the terrain outcome for one cell
type Classification struct {
	Terrain      models.Terrain
	Walkable     bool
	MovementCost float64
}

// mountainPassChance is the share of mountain cells a traveller can cross.
const mountainPassChance = 0.4

var terrainCosts = map[models.Terrain]float64{
	models.TerrainShore:      1.5,
	models.TerrainPlains:     1,
	models.TerrainForest:     1.2,
	models.TerrainHills:      1.5,
	models.TerrainMountains:  2,
	models.TerrainSwamp:      1.8,
	models.TerrainDesert:     1.3,
	models.TerrainTundra:     1.4,
	models.TerrainRiver:      2,
	models.TerrainPath:       0.9,
	models.TerrainRoad:       0.8,
	models.TerrainBridge:     1,
	models.TerrainSettlement: 1,
	models.TerrainDungeon:    1.5,
	models.TerrainLandmark:   1,
}

var dangerLevels = map[models.Terrain]int{
	models.TerrainShore:     1,
	models.TerrainPlains:    1,
	models.TerrainForest:    2,
	models.TerrainHills:     2,
	models.TerrainMountains: 4,
	models.TerrainPeak:      5,
	models.TerrainIce:       4,
	models.TerrainSwamp:     3,
	models.TerrainDesert:    3,
	models.TerrainTundra:    3,
	models.TerrainRiver:     1,
	models.TerrainDungeon:   5,
	models.TerrainLandmark:  1,
}

// MovementCost returns the base cost of entering a cell of the given terrain.
func MovementCost(t models.Terrain) float64 {
	if c, ok := terrainCosts[t]; ok {
		return c
	}
	return models.ImpassableCost
}

// DangerLevel returns the base encounter danger of a terrain.
func DangerLevel(t models.Terrain) int {
	return dangerLevels[t]
}

func walkable(t models.Terrain, cost float64) Classification {
	return Classification{Terrain: t, Walkable: true, MovementCost: cost}
}

func blocked(t models.Terrain) Classification {
	return Classification{Terrain: t, MovementCost: models.ImpassableCost}
}

// Classify maps elevation, humidity and temperature onto a terrain through a
// threshold ladder. gate is a uniform draw in [0, 1) deciding whether a
// mountain cell is passable.
func Classify(elevation, humidity, temperature, gate float64) Classification {
	switch {
	case elevation < seaLevel:
		return blocked(models.TerrainOcean)
	case elevation < 35:
		return lowland(models.TerrainShore)
	case elevation > 85:
		if temperature < 30 {
			return blocked(models.TerrainIce)
		}
		return blocked(models.TerrainPeak)
	case elevation > 75:
		if gate < mountainPassChance {
			return lowland(models.TerrainMountains)
		}
		return blocked(models.TerrainMountains)
	case elevation > 60:
		if humidity < 30 {
			if temperature > 70 {
				return lowland(models.TerrainDesert)
			}
			return lowland(models.TerrainHills)
		}
		return lowland(models.TerrainForest)
	}

	switch {
	case humidity < 30:
		if temperature > 70 {
			return lowland(models.TerrainDesert)
		}
		if temperature > 30 {
			return lowland(models.TerrainPlains)
		}
		return lowland(models.TerrainTundra)
	case humidity < 60:
		if temperature < 20 {
			return lowland(models.TerrainTundra)
		}
		return lowland(models.TerrainPlains)
	default:
		if humidity > 80 && temperature >= 40 && temperature <= 70 {
			return lowland(models.TerrainSwamp)
		}
		return lowland(models.TerrainForest)
	}
}

func lowland(t models.Terrain) Classification {
	return walkable(t, MovementCost(t))
}

// ClassifyBiome picks the climatic zone of a classified cell. roll is a
// uniform draw in [0, 1) used for the rare volcanic mountain.
func ClassifyBiome(t models.Terrain, humidity, temperature, roll float64) models.Biome {
	switch {
	case t == models.TerrainShore:
		return models.BiomeCoastal
	case t == models.TerrainMountains && roll < 0.05:
		return models.BiomeVolcanic
	case temperature < 25:
		return models.BiomeArctic
	case humidity < 30 && temperature > 60:
		return models.BiomeArid
	case temperature > 65 && humidity >= 60:
		return models.BiomeTropical
	default:
		return models.BiomeTemperate
	}
}

// classifyCells runs the classifier over every cell.
func classifyCells(w *models.WorldMap, rng *RNG) {
	for i := range w.Cells {
		c := &w.Cells[i]
		res := Classify(c.Elevation, c.Humidity, c.Temperature, rng.Float64())
		c.Terrain = res.Terrain
		c.MovementCost = res.MovementCost
		c.Biome = ClassifyBiome(res.Terrain, c.Humidity, c.Temperature, rng.Float64())
		c.DangerLevel = DangerLevel(res.Terrain)
	}
}
