package models

import (
	"errors"
	"testing"
)

func TestTileAtBounds(t *testing.T) {
	w := plainsMap(5, 3)
	for _, p := range []Position{{-1, 0}, {0, -1}, {5, 0}, {0, 3}, {99, 99}} {
		if w.TileAt(p.X, p.Y) != nil {
			t.Fatalf("TileAt(%d,%d) should be nil", p.X, p.Y)
		}
		if w.PointOfInterestAt(p.X, p.Y) != nil {
			t.Fatalf("PointOfInterestAt(%d,%d) should be nil", p.X, p.Y)
		}
	}
	w.TileAt(4, 2).Elevation = 77
	if w.Cells[2*5+4].Elevation != 77 {
		t.Fatalf("TileAt is not row-major")
	}
}

func TestPointOfInterestAt(t *testing.T) {
	w := plainsMap(10, 10)
	addPOI(w, PointOfInterest{ID: "dungeon_0", Kind: POIKindDungeon, X: 3, Y: 4})

	if p := w.PointOfInterestAt(3, 4); p == nil || p.ID != "dungeon_0" {
		t.Fatalf("expected dungeon_0 at (3,4), got %v", p)
	}
	if p := w.PointOfInterestAt(4, 3); p != nil {
		t.Fatalf("expected nothing at (4,3), got %v", p.ID)
	}

	w.PlacePlayer(3, 4, 0)
	if p := w.CurrentPointOfInterest(); p == nil || p.ID != "dungeon_0" {
		t.Fatalf("current poi = %v", p)
	}
	if got := w.DiscoveredPointsOfInterest(); len(got) != 1 {
		t.Fatalf("discovered %d points of interest, want 1", len(got))
	}
}

func TestCloneIsDeep(t *testing.T) {
	w := plainsMap(4, 4)
	addPOI(w, PointOfInterest{ID: "settlement_0", Kind: POIKindVillage, X: 1, Y: 1, Services: []Service{ServiceInn}, ConnectedTo: []string{"landmark_1"}})
	w.Regions = []Region{{ID: "region_0", CenterX: 1, CenterY: 1, Width: 3, Height: 3}}

	c := w.Clone()
	c.Cells[0].Explored = true
	c.Regions[0].Discovered = true
	c.PointsOfInterest[0].Services[0] = ServiceGuild
	c.PointsOfInterest[0].ConnectedTo[0] = "changed"

	if w.Cells[0].Explored || w.Regions[0].Discovered {
		t.Fatalf("clone shares cells or regions")
	}
	if w.PointsOfInterest[0].Services[0] != ServiceInn || w.PointsOfInterest[0].ConnectedTo[0] != "landmark_1" {
		t.Fatalf("clone shares point of interest slices")
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"north", "south", "east", "west"} {
		d, err := ParseDirection(s)
		if err != nil || string(d) != s {
			t.Fatalf("ParseDirection(%q) = %q, %v", s, d, err)
		}
	}
	for _, s := range []string{"", "up", "northeast", "North"} {
		if _, err := ParseDirection(s); !errors.Is(err, ErrInvalidDirection) {
			t.Fatalf("ParseDirection(%q) should fail, got %v", s, err)
		}
	}
}

func TestRegionBounds(t *testing.T) {
	r := Region{CenterX: 10, CenterY: 10, Width: 11, Height: 4}
	minX, minY, maxX, maxY := r.Bounds()
	if minX != 5 || maxX != 15 || minY != 8 || maxY != 12 {
		t.Fatalf("bounds = %d,%d,%d,%d", minX, minY, maxX, maxY)
	}
	if !r.Contains(5, 8) || r.Contains(16, 10) {
		t.Fatalf("Contains disagrees with Bounds")
	}
}
