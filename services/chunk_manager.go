package services

import (
	"fmt"
	"sync"

	"beast-ride-saga/server/messages"
	"beast-ride-saga/server/models"
)

// ChunkManager cuts a world map into fog-filtered chunks around the player.
// It remembers how many explored cells each chunk had when it was last
// handed out so that follow-up updates only carry chunks that changed.
type ChunkManager struct {
	chunkSize    int
	bufferRadius int
	sent         map[string]int
	mutex        sync.Mutex
}

// NewChunkManager creates a new chunk manager
func NewChunkManager(chunkSize int, bufferRadius int) *ChunkManager {
	if chunkSize <= 0 {
		chunkSize = 16
	}
	if bufferRadius < 0 {
		bufferRadius = 0
	}
	return &ChunkManager{
		chunkSize:    chunkSize,
		bufferRadius: bufferRadius,
		sent:         make(map[string]int),
	}
}

// getChunkCoordinates calculates the chunk coordinates for a given position
func (cm *ChunkManager) getChunkCoordinates(x, y int) (int, int) {
	cx := x / cm.chunkSize
	if x < 0 && x%cm.chunkSize != 0 {
		cx--
	}
	cy := y / cm.chunkSize
	if y < 0 && y%cm.chunkSize != 0 {
		cy--
	}
	return cx, cy
}

// getChunkKey generates a unique key for a chunk
func (cm *ChunkManager) getChunkKey(chunkX, chunkY int) string {
	return fmt.Sprintf("%d,%d", chunkX, chunkY)
}

// BuildChunk renders one chunk of w. Chunks on the map edge are clipped, so
// rows and columns may be shorter than the chunk size. It returns false when
// the chunk lies entirely outside the map.
func (cm *ChunkManager) BuildChunk(w *models.WorldMap, chunkX, chunkY int) (messages.ChunkView, int, bool) {
	x0, y0 := chunkX*cm.chunkSize, chunkY*cm.chunkSize
	if !w.InBounds(x0, y0) {
		return messages.ChunkView{}, 0, false
	}
	x1 := min(x0+cm.chunkSize, w.Width)
	y1 := min(y0+cm.chunkSize, w.Height)

	explored := 0
	tiles := make([][]messages.TileView, 0, y1-y0)
	for y := y0; y < y1; y++ {
		row := make([]messages.TileView, 0, x1-x0)
		for x := x0; x < x1; x++ {
			cell := w.TileAt(x, y)
			if !cell.Explored {
				row = append(row, messages.TileView{})
				continue
			}
			explored++
			row = append(row, messages.TileView{
				Explored:          true,
				Terrain:           cell.Terrain,
				Biome:             cell.Biome,
				PointOfInterestID: cell.PointOfInterestID,
			})
		}
		tiles = append(tiles, row)
	}
	return messages.ChunkView{X: chunkX, Y: chunkY, Tiles: tiles}, explored, true
}

// LoadChunksAround returns every in-bounds chunk within the buffer radius of
// the given position and marks them as sent.
func (cm *ChunkManager) LoadChunksAround(w *models.WorldMap, centerX, centerY int) []messages.ChunkView {
	return cm.chunksAround(w, centerX, centerY, false)
}

// ChangedChunksAround is LoadChunksAround restricted to chunks whose explored
// cell count differs from what was last sent.
func (cm *ChunkManager) ChangedChunksAround(w *models.WorldMap, centerX, centerY int) []messages.ChunkView {
	return cm.chunksAround(w, centerX, centerY, true)
}

// Reset forgets what was sent, so the next changed-only call returns everything
func (cm *ChunkManager) Reset() {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.sent = make(map[string]int)
}

func (cm *ChunkManager) chunksAround(w *models.WorldMap, centerX, centerY int, onlyChanged bool) []messages.ChunkView {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	centerChunkX, centerChunkY := cm.getChunkCoordinates(centerX, centerY)

	chunks := []messages.ChunkView{}
	for dy := -cm.bufferRadius; dy <= cm.bufferRadius; dy++ {
		for dx := -cm.bufferRadius; dx <= cm.bufferRadius; dx++ {
			chunkX := centerChunkX + dx
			chunkY := centerChunkY + dy
			chunk, explored, ok := cm.BuildChunk(w, chunkX, chunkY)
			if !ok {
				continue
			}
			key := cm.getChunkKey(chunkX, chunkY)
			if prev, seen := cm.sent[key]; onlyChanged && seen && prev == explored {
				continue
			}
			cm.sent[key] = explored
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
