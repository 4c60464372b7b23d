package models

import (
	"reflect"
	"testing"
)

func plainsMap(width, height int) *WorldMap {
	w := &WorldMap{Width: width, Height: height, Cells: make([]Cell, width*height)}
	for i := range w.Cells {
		w.Cells[i] = Cell{Elevation: 40, Humidity: 40, Temperature: 50, Terrain: TerrainPlains, Biome: BiomeTemperate, MovementCost: 1, DangerLevel: 1}
	}
	return w
}

func addPOI(w *WorldMap, poi PointOfInterest) {
	w.PointsOfInterest = append(w.PointsOfInterest, poi)
	c := w.TileAt(poi.X, poi.Y)
	c.HasPointOfInterest = true
	c.PointOfInterestID = poi.ID
}

func TestMoveOutOfBoundsIsNoop(t *testing.T) {
	w := plainsMap(10, 10)
	w.PlacePlayer(0, 0, RevealRadius)
	before := w.Clone()

	for _, d := range []Direction{North, West} {
		if w.Move(d) {
			t.Fatalf("move %s off the map succeeded", d)
		}
	}
	if !reflect.DeepEqual(before, w) {
		t.Fatalf("failed move mutated the map")
	}
}

func TestMoveIntoImpassableIsNoop(t *testing.T) {
	w := plainsMap(10, 10)
	w.TileAt(6, 5).MovementCost = ImpassableCost
	w.TileAt(5, 6).MovementCost = MaxEnterableCost
	w.PlacePlayer(5, 5, RevealRadius)
	before := w.Clone()

	if w.Move(East) {
		t.Fatalf("moved onto impassable cell")
	}
	if w.Move(South) {
		t.Fatalf("moved onto a cell costing exactly the limit")
	}
	if w.Move(Direction("up")) {
		t.Fatalf("moved in an unknown direction")
	}
	if !reflect.DeepEqual(before, w) {
		t.Fatalf("failed move mutated the map")
	}

	w.TileAt(4, 5).MovementCost = MaxEnterableCost - 0.1
	if !w.Move(West) {
		t.Fatalf("could not enter a cell just below the limit")
	}
	if w.CurrentPlayerPosition != (Position{X: 4, Y: 5}) {
		t.Fatalf("position %+v, want (4,5)", w.CurrentPlayerPosition)
	}
}

func TestRevealUsesEuclideanRadius(t *testing.T) {
	w := plainsMap(20, 20)
	w.Reveal(10, 10, 3)

	cases := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{13, 10, true},
		{10, 7, true},
		{12, 12, true},
		{13, 11, false},
		{12, 13, false},
		{14, 10, false},
	}
	for _, tc := range cases {
		if got := w.TileAt(tc.x, tc.y).Explored; got != tc.want {
			t.Errorf("(%d,%d) explored=%v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRevealClipsAtEdges(t *testing.T) {
	w := plainsMap(4, 4)
	w.Reveal(0, 0, 10)
	for i, c := range w.Cells {
		if !c.Explored {
			t.Fatalf("cell %d not revealed", i)
		}
	}
}

func TestExploredPercentNeverDecreases(t *testing.T) {
	w := plainsMap(40, 40)
	w.Regions = []Region{
		{ID: "region_0", CenterX: 10, CenterY: 10, Width: 15, Height: 15},
		{ID: "region_1", CenterX: 28, CenterY: 28, Width: 20, Height: 12},
	}
	w.PlacePlayer(2, 2, StartRevealRadius)

	last := []float64{w.Regions[0].ExploredPercent, w.Regions[1].ExploredPercent}
	route := []Direction{East, East, East, South, South, East, East, North, West, South, South, South, East, East, East, East, East, East, South, South, South, South, South, South, East, East, East, East, East}
	for step, d := range route {
		w.Move(d)
		for i, r := range w.Regions {
			if r.ExploredPercent < last[i] {
				t.Fatalf("step %d: region %s dropped from %v to %v", step, r.ID, last[i], r.ExploredPercent)
			}
			if r.ExploredPercent > 100 {
				t.Fatalf("region %s exceeds 100%%", r.ID)
			}
			if r.Discovered != (r.ExploredPercent >= DiscoveryThreshold) {
				t.Fatalf("region %s discovered=%v at %v%%", r.ID, r.Discovered, r.ExploredPercent)
			}
			last[i] = r.ExploredPercent
		}
	}
}

func TestWalkEastFromTown(t *testing.T) {
	w := plainsMap(50, 50)
	w.Regions = []Region{{ID: "region_0", CenterX: 25, CenterY: 25, Width: 20, Height: 20}}
	addPOI(w, PointOfInterest{ID: "settlement_0", Kind: POIKindTown, X: 15, Y: 25})
	addPOI(w, PointOfInterest{ID: "landmark_1", Kind: POIKindLandmark, X: 25, Y: 25})
	addPOI(w, PointOfInterest{ID: "dungeon_2", Kind: POIKindDungeon, X: 40, Y: 40})

	found := w.PlacePlayer(15, 25, StartRevealRadius)
	if len(found.PointsOfInterest) != 1 || found.PointsOfInterest[0] != "settlement_0" {
		t.Fatalf("start should discover only the town, got %v", found.PointsOfInterest)
	}
	town := w.PointOfInterestByID("settlement_0")
	if !town.Discovered || !town.Explored {
		t.Fatalf("town at the start should be discovered and explored")
	}

	var discovered []string
	for i := 0; i < 6; i++ {
		moved, d := w.MoveAndReport(East)
		if !moved {
			t.Fatalf("step %d east failed", i)
		}
		discovered = append(discovered, d.PointsOfInterest...)
	}

	if w.CurrentPlayerPosition != (Position{X: 21, Y: 25}) {
		t.Fatalf("position %+v, want (21,25)", w.CurrentPlayerPosition)
	}
	for x := 15; x <= 24; x++ {
		if !w.TileAt(x, 25).Explored {
			t.Fatalf("cell (%d,25) along the walk not explored", x)
		}
	}
	landmark := w.PointOfInterestByID("landmark_1")
	if !landmark.Discovered || landmark.Explored {
		t.Fatalf("landmark 4 cells away should be discovered but not explored: %+v", landmark)
	}
	if len(discovered) != 1 || discovered[0] != "landmark_1" {
		t.Fatalf("walk discovered %v, want [landmark_1]", discovered)
	}
	if w.PointOfInterestByID("dungeon_2").Discovered {
		t.Fatalf("far dungeon should stay undiscovered")
	}

	r := w.RegionByID("region_0")
	if !r.Discovered || r.ExploredPercent < DiscoveryThreshold {
		t.Fatalf("region should be discovered, explored %v%%", r.ExploredPercent)
	}
	if got := w.CurrentRegion(); got == nil || got.ID != "region_0" {
		t.Fatalf("current region = %v", got)
	}
}

func TestRegionDiscoveredOnceThresholdReached(t *testing.T) {
	w := plainsMap(60, 60)
	w.Regions = []Region{{ID: "region_0", CenterX: 30, CenterY: 30, Width: 29, Height: 29}}
	w.PlacePlayer(5, 30, 1)
	if w.Regions[0].Discovered {
		t.Fatalf("distant region discovered too early")
	}

	for !w.Regions[0].Discovered {
		if !w.Move(East) {
			t.Fatalf("walk east blocked at %+v", w.CurrentPlayerPosition)
		}
		if w.CurrentPlayerPosition.X > 45 {
			t.Fatalf("region never discovered, explored %v%%", w.Regions[0].ExploredPercent)
		}
	}
	if w.Regions[0].ExploredPercent < DiscoveryThreshold {
		t.Fatalf("discovered at %v%%", w.Regions[0].ExploredPercent)
	}
}
