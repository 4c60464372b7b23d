package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"beast-ride-saga/server/messages"
	"beast-ride-saga/server/models"
	"beast-ride-saga/server/persistence"
)

// Options are shared by every world a PlayerService opens
type Options struct {
	// Events receives one record per move when set.
	Events *persistence.EventLog
	// SnapshotDir gets a compressed snapshot on every save when set.
	SnapshotDir string
	ChunkSize   int
	ViewRadius  int
	Logger      *log.Logger
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// MoveResult is the outcome of a single move request
type MoveResult struct {
	Moved      bool
	Position   models.Position
	Discovered models.Discoveries
}

// WorldService owns one player's world map and serializes access to it
type WorldService struct {
	name     string
	playerID string
	world    *models.WorldMap
	chunks   *ChunkManager
	db       persistence.Storage
	opts     Options

	worldMutex sync.RWMutex
}

// NewWorldService wraps a generated or loaded world
func NewWorldService(name, playerID string, world *models.WorldMap, db persistence.Storage, opts Options) *WorldService {
	return &WorldService{
		name:     name,
		playerID: playerID,
		world:    world,
		chunks:   NewChunkManager(opts.ChunkSize, opts.ViewRadius),
		db:       db,
		opts:     opts,
	}
}

// Name returns the name the world is stored under
func (ws *WorldService) Name() string { return ws.name }

// MovePlayer processes a player movement request. A blocked move is not an
// error; it comes back with Moved set to false and nothing changed.
func (ws *WorldService) MovePlayer(direction string) (MoveResult, error) {
	d, err := models.ParseDirection(direction)
	if err != nil {
		return MoveResult{}, err
	}

	ws.worldMutex.Lock()
	moved, found := ws.world.MoveAndReport(d)
	result := MoveResult{
		Moved:      moved,
		Position:   ws.world.CurrentPlayerPosition,
		Discovered: found,
	}
	ws.worldMutex.Unlock()

	if !moved {
		ws.opts.logf("world %s: move %s blocked at (%d,%d)", ws.name, d, result.Position.X, result.Position.Y)
	}
	for _, id := range found.PointsOfInterest {
		ws.opts.logf("world %s: discovered point of interest %s", ws.name, id)
	}
	for _, id := range found.Regions {
		ws.opts.logf("world %s: discovered region %s", ws.name, id)
	}

	if ws.opts.Events != nil {
		err := ws.opts.Events.WriteMove(persistence.MoveEvent{
			Time:       time.Now().UTC(),
			PlayerID:   ws.playerID,
			World:      ws.name,
			Direction:  d,
			Moved:      moved,
			Position:   result.Position,
			Discovered: found,
		})
		if err != nil {
			ws.opts.logf("world %s: failed to log move: %v", ws.name, err)
		}
	}
	return result, nil
}

// TileAt returns a copy of the cell at (x, y)
func (ws *WorldService) TileAt(x, y int) (models.Cell, bool) {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	cell := ws.world.TileAt(x, y)
	if cell == nil {
		return models.Cell{}, false
	}
	return *cell, true
}

// PointOfInterestAt returns a copy of the point of interest at (x, y)
func (ws *WorldService) PointOfInterestAt(x, y int) (models.PointOfInterest, bool) {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	poi := ws.world.PointOfInterestAt(x, y)
	if poi == nil {
		return models.PointOfInterest{}, false
	}
	return *poi, true
}

// TileInfo answers a client tile query. Unexplored cells stay hidden.
func (ws *WorldService) TileInfo(x, y int) messages.TileInfoMessage {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	info := messages.TileInfoMessage{X: x, Y: y}
	cell := ws.world.TileAt(x, y)
	if cell == nil || !cell.Explored {
		return info
	}
	c := *cell
	info.Cell = &c
	if poi := ws.world.PointOfInterestAt(x, y); poi != nil && poi.Discovered {
		p := *poi
		info.PointOfInterest = &p
	}
	return info
}

// Update builds the next world update for the client: chunks around the
// player that changed since the previous update, along with everything
// discovered so far.
func (ws *WorldService) Update() *messages.UpdateMessage {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	pos := ws.world.CurrentPlayerPosition
	update := &messages.UpdateMessage{
		Width:            ws.world.Width,
		Height:           ws.world.Height,
		Position:         pos,
		Chunks:           ws.chunks.ChangedChunksAround(ws.world, pos.X, pos.Y),
		Regions:          ws.world.DiscoveredRegions(),
		PointsOfInterest: ws.world.DiscoveredPointsOfInterest(),
	}
	if r := ws.world.CurrentRegion(); r != nil && r.Discovered {
		c := *r
		update.CurrentRegion = &c
	}
	if p := ws.world.CurrentPointOfInterest(); p != nil {
		c := *p
		update.CurrentPointOfInterest = &c
	}
	return update
}

// ResetView makes the next Update carry every chunk in view again
func (ws *WorldService) ResetView() {
	ws.chunks.Reset()
}

// Save writes the world to storage and, when configured, a snapshot file
func (ws *WorldService) Save() error {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	if err := ws.db.SaveWorld(ws.name, ws.world); err != nil {
		return fmt.Errorf("failed to save world %s: %w", ws.name, err)
	}
	if ws.opts.SnapshotDir != "" {
		path := persistence.SnapshotPath(ws.opts.SnapshotDir, ws.name)
		if err := persistence.WriteSnapshot(path, ws.name, ws.world); err != nil {
			return fmt.Errorf("failed to write snapshot for %s: %w", ws.name, err)
		}
	}
	ws.opts.logf("world %s saved", ws.name)
	return nil
}

// World returns a deep copy of the current map
func (ws *WorldService) World() *models.WorldMap {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()
	return ws.world.Clone()
}
