package services

import "testing"

func TestChunkCoordinatesFloorNegatives(t *testing.T) {
	cm := NewChunkManager(8, 1)
	tests := []struct{ x, y, cx, cy int }{
		{0, 0, 0, 0},
		{7, 8, 0, 1},
		{-1, -8, -1, -1},
		{-9, 3, -2, 0},
	}
	for _, tt := range tests {
		if cx, cy := cm.getChunkCoordinates(tt.x, tt.y); cx != tt.cx || cy != tt.cy {
			t.Errorf("(%d,%d) -> (%d,%d), want (%d,%d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestBuildChunkClipsAndFogs(t *testing.T) {
	w := plainsWorld(20, 10)
	w.TileAt(17, 9).Explored = true
	cm := NewChunkManager(8, 0)

	chunk, explored, ok := cm.BuildChunk(w, 2, 1)
	if !ok {
		t.Fatalf("edge chunk reported out of bounds")
	}
	if len(chunk.Tiles) != 2 || len(chunk.Tiles[0]) != 4 {
		t.Fatalf("chunk is %dx%d, want 4x2", len(chunk.Tiles[0]), len(chunk.Tiles))
	}
	if explored != 1 {
		t.Fatalf("explored = %d", explored)
	}
	if tile := chunk.Tiles[1][1]; !tile.Explored || tile.Terrain == "" {
		t.Fatalf("explored tile = %+v", tile)
	}
	if tile := chunk.Tiles[0][0]; tile.Explored || tile.Terrain != "" {
		t.Fatalf("fogged tile leaked terrain: %+v", tile)
	}

	if _, _, ok := cm.BuildChunk(w, 3, 0); ok {
		t.Fatalf("chunk past the edge built")
	}
	if _, _, ok := cm.BuildChunk(w, -1, 0); ok {
		t.Fatalf("negative chunk built")
	}
}

func TestLoadChunksAroundSkipsOutsideMap(t *testing.T) {
	w := plainsWorld(20, 10)
	cm := NewChunkManager(8, 1)
	// corner view: only chunks (0,0), (1,0), (0,1), (1,1) exist
	if got := len(cm.LoadChunksAround(w, 0, 0)); got != 4 {
		t.Fatalf("got %d chunks, want 4", got)
	}
	if got := len(cm.ChangedChunksAround(w, 0, 0)); got != 0 {
		t.Fatalf("unchanged chunks resent: %d", got)
	}
}
