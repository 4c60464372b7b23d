package worldgen

import (
	"testing"

	"beast-ride-saga/server/models"
)

func TestTraceRouteBridgesRivers(t *testing.T) {
	w := flatMap(30, 11, models.TerrainPlains, 40)
	for y := 0; y < w.Height; y++ {
		for _, x := range []int{15, 16} {
			c := w.TileAt(x, y)
			c.Terrain = models.TerrainRiver
			c.MovementCost = MovementCost(models.TerrainRiver)
		}
	}

	TraceRoute(w, models.Position{X: 2, Y: 5}, models.Position{X: 27, Y: 5}, true, NewRNG(4))

	bridges, roads := 0, 0
	for _, c := range w.Cells {
		switch c.Terrain {
		case models.TerrainBridge:
			bridges++
			if c.MovementCost != 1 {
				t.Fatalf("bridge cost %v", c.MovementCost)
			}
		case models.TerrainRoad:
			roads++
			if c.MovementCost != 0.8 {
				t.Fatalf("road cost %v", c.MovementCost)
			}
		}
	}
	if bridges == 0 {
		t.Fatalf("route crossed the river without a bridge")
	}
	if roads == 0 {
		t.Fatalf("no road cells traced")
	}
}

func TestTraceRouteSkipsWaterAndPointsOfInterest(t *testing.T) {
	w := flatMap(20, 20, models.TerrainOcean, 10)
	for y := 0; y < w.Height; y++ {
		c := w.TileAt(10, y)
		c.Terrain = models.TerrainPlains
		c.HasPointOfInterest = true
		c.PointOfInterestID = "landmark_0"
	}

	TraceRoute(w, models.Position{X: 1, Y: 1}, models.Position{X: 18, Y: 18}, false, NewRNG(8))

	for i, c := range w.Cells {
		if c.Terrain == models.TerrainPath || c.Terrain == models.TerrainRoad {
			t.Fatalf("cell %d was paved", i)
		}
	}
}

func TestConnectPointsOfInterest(t *testing.T) {
	w := flatMap(60, 20, models.TerrainPlains, 40)
	pois := []models.PointOfInterest{
		{ID: "settlement_0", Kind: models.POIKindTown, X: 5, Y: 10},
		{ID: "settlement_1", Kind: models.POIKindVillage, X: 20, Y: 10},
		{ID: "settlement_2", Kind: models.POIKindVillage, X: 50, Y: 10},
		{ID: "dungeon_3", Kind: models.POIKindDungeon, X: 25, Y: 3},
	}
	for _, p := range pois {
		c := w.TileAt(p.X, p.Y)
		c.HasPointOfInterest = true
		c.PointOfInterestID = p.ID
	}

	ConnectPointsOfInterest(w, pois, NewRNG(21))

	if !pois[0].IsConnectedTo("settlement_1") || !pois[1].IsConnectedTo("settlement_0") {
		t.Fatalf("town and nearest village not linked: %v %v", pois[0].ConnectedTo, pois[1].ConnectedTo)
	}
	if !pois[2].IsConnectedTo("settlement_1") {
		t.Fatalf("far village should link to its nearest settlement, got %v", pois[2].ConnectedTo)
	}
	if pois[2].IsConnectedTo("settlement_0") {
		t.Fatalf("far village linked past its nearest settlement")
	}
	if len(pois[0].ConnectedTo) != 1 {
		t.Fatalf("duplicate links on town: %v", pois[0].ConnectedTo)
	}

	roads, paths := 0, 0
	for _, c := range w.Cells {
		switch c.Terrain {
		case models.TerrainRoad:
			roads++
		case models.TerrainPath:
			paths++
		}
	}
	if roads == 0 {
		t.Fatalf("town link should lay a road")
	}
	if paths == 0 {
		t.Fatalf("village link should lay a path")
	}
	for _, p := range pois {
		if w.TileAt(p.X, p.Y).Terrain != models.TerrainPlains {
			t.Fatalf("route overwrote point of interest %s", p.ID)
		}
	}
}
