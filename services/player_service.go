package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"beast-ride-saga/server/models"
	"beast-ride-saga/server/persistence"
	"beast-ride-saga/server/worldgen"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrPlayerNotFound  = errors.New("player not found")
)

// GenerateOptions describe the world created for a new player. A nil Seed
// picks one from the clock.
type GenerateOptions struct {
	Width           int
	Height          int
	Seed            *int64
	DiffusionPasses int
	NoiseAmplitude  float64
	RiverCount      int
}

// PlayerService manages player-related operations
type PlayerService struct {
	players  map[string]*models.Player
	sessions map[string]*WorldService
	db       persistence.Storage
	opts     Options
	mutex    sync.RWMutex
}

// NewPlayerService creates a new player service
func NewPlayerService(db persistence.Storage, opts Options) *PlayerService {
	return &PlayerService{
		players:  make(map[string]*models.Player),
		sessions: make(map[string]*WorldService),
		db:       db,
		opts:     opts,
	}
}

// GetOrCreatePlayer gets an existing player with their saved world, or
// creates both. gen only matters when a world has to be generated.
func (ps *PlayerService) GetOrCreatePlayer(username string, gen GenerateOptions) (*models.Player, *WorldService, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil, ErrInvalidUsername
	}

	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	// Check if player already exists in memory
	for _, player := range ps.players {
		if player.Username == username {
			return player, ps.sessions[player.ID], nil
		}
	}

	player, err := ps.db.LoadPlayerByUsername(username)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		now := time.Now()
		id := uuid.NewString()
		player = &models.Player{
			ID:        id,
			Username:  username,
			WorldName: fmt.Sprintf("%s-%s", username, id[:8]),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := ps.db.SavePlayer(player); err != nil {
			return nil, nil, fmt.Errorf("failed to save new player to database: %w", err)
		}
		ps.opts.logf("created player %s (%s)", player.Username, player.ID)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to load player %s: %w", username, err)
	}

	world, err := ps.db.LoadWorld(player.WorldName)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		world, err = ps.generate(gen)
		if err != nil {
			return nil, nil, err
		}
		if err := ps.db.SaveWorld(player.WorldName, world); err != nil {
			return nil, nil, fmt.Errorf("failed to save new world: %w", err)
		}
		ps.opts.logf("generated world %s (%dx%d, seed %d)", player.WorldName, world.Width, world.Height, world.Seed)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to load world %s: %w", player.WorldName, err)
	}

	session := NewWorldService(player.WorldName, player.ID, world, ps.db, ps.opts)
	ps.players[player.ID] = player
	ps.sessions[player.ID] = session
	return player, session, nil
}

func (ps *PlayerService) generate(gen GenerateOptions) (*models.WorldMap, error) {
	seed := time.Now().UnixNano()
	if gen.Seed != nil {
		seed = *gen.Seed
	}
	return worldgen.Generate(worldgen.Params{
		Width:           gen.Width,
		Height:          gen.Height,
		Seed:            seed,
		DiffusionPasses: gen.DiffusionPasses,
		NoiseAmplitude:  gen.NoiseAmplitude,
		RiverCount:      gen.RiverCount,
		Logger:          ps.opts.Logger,
	})
}

// GetPlayer retrieves a player by ID
func (ps *PlayerService) GetPlayer(playerID string) (*models.Player, error) {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()

	player, exists := ps.players[playerID]
	if !exists {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// SaveSession persists the player and their world
func (ps *PlayerService) SaveSession(playerID string) error {
	ps.mutex.Lock()
	player, exists := ps.players[playerID]
	session := ps.sessions[playerID]
	if exists {
		player.UpdatedAt = time.Now()
	}
	ps.mutex.Unlock()

	if !exists {
		return ErrPlayerNotFound
	}
	if err := ps.db.SavePlayer(player); err != nil {
		return fmt.Errorf("failed to save updated player to database: %w", err)
	}
	return session.Save()
}

// Release saves the session and drops it from memory
func (ps *PlayerService) Release(playerID string) error {
	err := ps.SaveSession(playerID)

	ps.mutex.Lock()
	delete(ps.players, playerID)
	delete(ps.sessions, playerID)
	ps.mutex.Unlock()
	return err
}
