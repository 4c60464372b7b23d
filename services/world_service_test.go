package services

import (
	"errors"
	"path/filepath"
	"testing"

	"beast-ride-saga/server/models"
	"beast-ride-saga/server/persistence"
)

func plainsWorld(width, height int) *models.WorldMap {
	w := &models.WorldMap{Width: width, Height: height, Seed: 1, Cells: make([]models.Cell, width*height)}
	for i := range w.Cells {
		w.Cells[i] = models.Cell{
			Elevation:    40,
			Humidity:     40,
			Temperature:  50,
			Terrain:      models.TerrainPlains,
			Biome:        models.BiomeTemperate,
			MovementCost: 1,
			DangerLevel:  1,
		}
	}
	w.Regions = []models.Region{{
		ID: "region_0", Name: "The Plains", CenterX: width / 2, CenterY: height / 2,
		Width: width, Height: height, Biome: models.BiomeTemperate, MainTerrainType: models.TerrainPlains,
	}}
	w.PointsOfInterest = []models.PointOfInterest{{
		ID: "landmark_0", Name: "Old Stone", Kind: models.POIKindLandmark, X: 12, Y: 5,
	}}
	c := w.TileAt(12, 5)
	c.HasPointOfInterest = true
	c.PointOfInterestID = "landmark_0"
	return w
}

func newTestWorld(t *testing.T, opts Options) (*WorldService, persistence.Storage) {
	t.Helper()
	db, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	w := plainsWorld(20, 12)
	w.PlacePlayer(5, 5, models.StartRevealRadius)
	return NewWorldService("test-world", "p-1", w, db, opts), db
}

func TestMovePlayerRejectsUnknownDirection(t *testing.T) {
	ws, _ := newTestWorld(t, Options{})
	if _, err := ws.MovePlayer("northeast"); !errors.Is(err, models.ErrInvalidDirection) {
		t.Fatalf("got %v, want ErrInvalidDirection", err)
	}
}

func TestMovePlayerReportsDiscoveries(t *testing.T) {
	ws, _ := newTestWorld(t, Options{})

	var found []string
	for i := 0; i < 3; i++ {
		res, err := ws.MovePlayer("east")
		if err != nil {
			t.Fatalf("move: %v", err)
		}
		if !res.Moved {
			t.Fatalf("step %d blocked", i)
		}
		found = append(found, res.Discovered.PointsOfInterest...)
	}
	if got := ws.World().CurrentPlayerPosition; got != (models.Position{X: 8, Y: 5}) {
		t.Fatalf("position = %+v", got)
	}
	// (12,5) is within 5 of (8,5)
	if len(found) != 1 || found[0] != "landmark_0" {
		t.Fatalf("discovered = %v", found)
	}
}

func TestMovePlayerBlockedAtEdge(t *testing.T) {
	ws, _ := newTestWorld(t, Options{})
	for i := 0; i < 5; i++ {
		if _, err := ws.MovePlayer("north"); err != nil {
			t.Fatalf("move: %v", err)
		}
	}
	before := ws.World()
	res, err := ws.MovePlayer("north")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if res.Moved || res.Position != (models.Position{X: 5, Y: 0}) {
		t.Fatalf("result = %+v", res)
	}
	if after := ws.World(); after.CurrentPlayerPosition != before.CurrentPlayerPosition {
		t.Fatalf("blocked move changed position")
	}
}

func TestMovePlayerWritesEvents(t *testing.T) {
	dir := t.TempDir()
	events := persistence.NewEventLog(dir)
	ws, _ := newTestWorld(t, Options{Events: events})

	if _, err := ws.MovePlayer("south"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := events.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "moves-*.jsonl.zst"))
	if len(files) != 1 {
		t.Fatalf("event files = %v", files)
	}
}

func TestUpdateOnlyResendsChangedChunks(t *testing.T) {
	ws, _ := newTestWorld(t, Options{ChunkSize: 8, ViewRadius: 1})

	first := ws.Update()
	if len(first.Chunks) == 0 {
		t.Fatalf("first update has no chunks")
	}
	if first.CurrentRegion == nil || first.CurrentRegion.ID != "region_0" {
		t.Fatalf("current region = %+v", first.CurrentRegion)
	}

	if again := ws.Update(); len(again.Chunks) != 0 {
		t.Fatalf("unchanged view resent %d chunks", len(again.Chunks))
	}

	ws.ResetView()
	if full := ws.Update(); len(full.Chunks) != len(first.Chunks) {
		t.Fatalf("reset view sent %d chunks, want %d", len(full.Chunks), len(first.Chunks))
	}

	// the start reveal covers the first steps, the third reaches new cells
	for i := 0; i < 3; i++ {
		if _, err := ws.MovePlayer("east"); err != nil {
			t.Fatalf("move: %v", err)
		}
	}
	if moved := ws.Update(); len(moved.Chunks) == 0 {
		t.Fatalf("move revealed cells but no chunk was resent")
	}
}

func TestTileInfoHidesUnexploredCells(t *testing.T) {
	ws, _ := newTestWorld(t, Options{})

	if info := ws.TileInfo(5, 5); info.Cell == nil || info.Cell.Terrain != models.TerrainPlains {
		t.Fatalf("explored tile info = %+v", info)
	}
	if info := ws.TileInfo(19, 11); info.Cell != nil {
		t.Fatalf("unexplored tile leaked: %+v", info.Cell)
	}
	if info := ws.TileInfo(-1, 3); info.Cell != nil {
		t.Fatalf("out of bounds tile = %+v", info.Cell)
	}

	if _, ok := ws.TileAt(19, 11); !ok {
		t.Fatalf("TileAt missed an in-bounds cell")
	}
	if poi, ok := ws.PointOfInterestAt(12, 5); !ok || poi.ID != "landmark_0" {
		t.Fatalf("PointOfInterestAt = %+v, %v", poi, ok)
	}
}

func TestSaveWritesStorageAndSnapshot(t *testing.T) {
	snaps := t.TempDir()
	ws, db := newTestWorld(t, Options{SnapshotDir: snaps})
	if _, err := ws.MovePlayer("west"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := ws.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	stored, err := db.LoadWorld("test-world")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.CurrentPlayerPosition != (models.Position{X: 4, Y: 5}) {
		t.Fatalf("stored position = %+v", stored.CurrentPlayerPosition)
	}
	header, err := persistence.ReadSnapshotHeader(persistence.SnapshotPath(snaps, "test-world"))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if header.Name != "test-world" || header.Width != 20 {
		t.Fatalf("header = %+v", header)
	}
}

func TestWorldReturnsCopy(t *testing.T) {
	ws, _ := newTestWorld(t, Options{})
	c := ws.World()
	c.CurrentPlayerPosition = models.Position{X: 0, Y: 0}
	c.Cells[0].Explored = true
	if got := ws.World(); got.CurrentPlayerPosition != (models.Position{X: 5, Y: 5}) || got.Cells[0].Explored {
		t.Fatalf("World exposed internal state")
	}
}
