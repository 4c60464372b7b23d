package worldgen

import (
	"fmt"
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"beast-ride-saga/server/models"
)

const (
	townChance         = 0.3
	dungeonsPerRegion  = 0.7
	landmarksPerRegion = 0.5
	scoreWindow        = 3
	bestOf             = 3
)

// placer places points of interest while tracking which cells are taken.
type placer struct {
	w        *models.WorldMap
	rng      *RNG
	occupied mapset.Set[models.Position]
	pois     []models.PointOfInterest
}

func newPlacer(w *models.WorldMap, rng *RNG) *placer {
	return &placer{w: w, rng: rng, occupied: mapset.New[models.Position]()}
}

// PlaceSettlements places at most one town or village per region, then the
// dungeons and landmarks, and returns every point of interest in placement order.
func PlaceSettlements(w *models.WorldMap, regions []models.Region, rng *RNG) []models.PointOfInterest {
	p := newPlacer(w, rng)
	for i := range regions {
		p.placeSettlement(&regions[i])
	}
	p.placeDungeons(regions)
	p.placeLandmarks(regions)
	return p.pois
}

type scoredCell struct {
	pos   models.Position
	score float64
}

func (p *placer) placeSettlement(r *models.Region) {
	minSpacing := float64(p.w.Width) / 10

	var candidates []scoredCell
	for _, pos := range regionCells(p.w, r) {
		c := p.w.TileAt(pos.X, pos.Y)
		if !buildable(c) || p.occupied.Has(pos) || p.nearSettlement(pos, minSpacing) {
			continue
		}
		candidates = append(candidates, scoredCell{pos: pos, score: SettlementScore(p.w, pos)})
	}
	if len(candidates) == 0 {
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	chosen := candidates[p.rng.IntN(min(bestOf, len(candidates)))].pos
	cell := p.w.TileAt(chosen.X, chosen.Y)

	kind := models.POIKindVillage
	if p.rng.Chance(townChance) {
		kind = models.POIKindTown
	}

	p.add(chosen, models.TerrainSettlement, models.PointOfInterest{
		ID:          fmt.Sprintf("settlement_%d", len(p.pois)),
		Name:        settlementName(p.rng, cell.Biome),
		Description: settlementDescription(kind, cell.Biome),
		Kind:        kind,
		Services:    p.services(kind),
	})
}

func (p *placer) services(kind models.POIKind) []models.Service {
	if kind == models.POIKindTown {
		return []models.Service{
			models.ServiceInn, models.ServiceShop, models.ServiceBlacksmith,
			models.ServiceTemple, models.ServiceGuild,
		}
	}
	out := []models.Service{models.ServiceInn}
	if p.rng.Chance(0.5) {
		out = append(out, models.ServiceShop)
	}
	if p.rng.Chance(0.3) {
		out = append(out, models.ServiceBlacksmith)
	}
	return out
}

// SettlementScore rates how attractive a cell is for a settlement: flat
// ground, nearby fresh water and existing paths all count.
func SettlementScore(w *models.WorldMap, pos models.Position) float64 {
	score := 0.0
	switch w.TileAt(pos.X, pos.Y).Terrain {
	case models.TerrainPlains, models.TerrainShore, models.TerrainDesert, models.TerrainTundra:
		score += 10
	}

	hasWater := false
	for dy := -scoreWindow; dy <= scoreWindow; dy++ {
		for dx := -scoreWindow; dx <= scoreWindow; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			c := w.TileAt(pos.X+dx, pos.Y+dy)
			if c == nil {
				continue
			}
			d := math.Hypot(float64(dx), float64(dy))
			if c.Terrain.IsFreshwater() && d <= scoreWindow {
				score += 5 * (1 - d/scoreWindow)
				hasWater = true
			}
			if c.Terrain == models.TerrainPath || c.Terrain == models.TerrainRoad {
				score += 2
			}
		}
	}
	if hasWater {
		score += 15
	}
	return score
}

func (p *placer) nearSettlement(pos models.Position, minSpacing float64) bool {
	for _, poi := range p.pois {
		if poi.Kind.IsSettlement() && distance(pos, models.Position{X: poi.X, Y: poi.Y}) < minSpacing {
			return true
		}
	}
	return false
}

func (p *placer) placeDungeons(regions []models.Region) {
	if len(regions) == 0 {
		return
	}
	n := int(dungeonsPerRegion * float64(len(regions)))
	for i := 0; i < n; i++ {
		r := &regions[p.rng.IntN(len(regions))]
		var candidates []models.Position
		for _, pos := range regionCells(p.w, r) {
			switch p.w.TileAt(pos.X, pos.Y).Terrain {
			case models.TerrainHills, models.TerrainMountains, models.TerrainForest:
				if !p.occupied.Has(pos) {
					candidates = append(candidates, pos)
				}
			}
		}
		if len(candidates) == 0 {
			continue
		}

		pos := candidates[p.rng.IntN(len(candidates))]
		terrain := p.w.TileAt(pos.X, pos.Y).Terrain
		p.add(pos, models.TerrainDungeon, models.PointOfInterest{
			ID:          fmt.Sprintf("dungeon_%d", len(p.pois)),
			Name:        dungeonName(p.rng, terrain),
			Description: fmt.Sprintf("A dangerous place hidden in the %s.", terrain),
			Kind:        models.POIKindDungeon,
		})
	}
}

func (p *placer) placeLandmarks(regions []models.Region) {
	if len(regions) == 0 {
		return
	}
	n := int(landmarksPerRegion * float64(len(regions)))
	for i := 0; i < n; i++ {
		r := &regions[p.rng.IntN(len(regions))]
		var candidates []models.Position
		for _, pos := range regionCells(p.w, r) {
			if !wet(p.w.TileAt(pos.X, pos.Y).Terrain) && !p.occupied.Has(pos) {
				candidates = append(candidates, pos)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		pos := candidates[p.rng.IntN(len(candidates))]
		terrain := p.w.TileAt(pos.X, pos.Y).Terrain
		p.add(pos, models.TerrainLandmark, models.PointOfInterest{
			ID:          fmt.Sprintf("landmark_%d", len(p.pois)),
			Name:        landmarkName(p.rng, terrain),
			Description: fmt.Sprintf("A remarkable sight among the %s.", terrain),
			Kind:        models.POIKindLandmark,
		})
	}
}

// add anchors poi at pos and rewrites the cell underneath it.
func (p *placer) add(pos models.Position, terrain models.Terrain, poi models.PointOfInterest) {
	poi.X, poi.Y = pos.X, pos.Y
	p.pois = append(p.pois, poi)
	p.occupied.Put(pos)

	c := p.w.TileAt(pos.X, pos.Y)
	c.Terrain = terrain
	c.MovementCost = MovementCost(terrain)
	c.DangerLevel = DangerLevel(terrain)
	c.HasPointOfInterest = true
	c.PointOfInterestID = poi.ID
}

func buildable(c *models.Cell) bool {
	return !wet(c.Terrain) && c.MovementCost < models.MaxEnterableCost
}

func wet(t models.Terrain) bool {
	return t.IsWater() || t == models.TerrainRiver
}
