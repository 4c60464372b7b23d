package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"beast-ride-saga/server/models"
)

// JSONStore handles data persistence using a local JSON file
type JSONStore struct {
	filePath  string
	mutex     sync.RWMutex
	fileMutex sync.Mutex
	data      *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Players map[string]*models.Player   `json:"players"`
	Worlds  map[string]*models.WorldMap `json:"worlds"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Players: make(map[string]*models.Player),
			Worlds:  make(map[string]*models.WorldMap),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Players == nil {
		js.data.Players = make(map[string]*models.Player)
	}
	if js.data.Worlds == nil {
		js.data.Worlds = make(map[string]*models.WorldMap)
	}
	return nil
}

// saveToFile saves data to the JSON file
func (js *JSONStore) saveToFile() error {
	js.fileMutex.Lock()
	defer js.fileMutex.Unlock()

	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// SavePlayer saves a player to the store
func (js *JSONStore) SavePlayer(player *models.Player) error {
	p := *player
	js.mutex.Lock()
	js.data.Players[player.ID] = &p
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadPlayer loads a player by ID
func (js *JSONStore) LoadPlayer(playerID string) (*models.Player, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	player, exists := js.data.Players[playerID]
	if !exists {
		return nil, fmt.Errorf("player with ID %s: %w", playerID, ErrNotFound)
	}

	p := *player
	return &p, nil
}

// LoadPlayerByUsername loads a player by username
func (js *JSONStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	for _, player := range js.data.Players {
		if player.Username == username {
			p := *player
			return &p, nil
		}
	}

	return nil, fmt.Errorf("player with username %s: %w", username, ErrNotFound)
}

// SaveWorld saves a copy of the world to the store
func (js *JSONStore) SaveWorld(name string, world *models.WorldMap) error {
	js.mutex.Lock()
	js.data.Worlds[name] = world.Clone()
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadWorld loads a world by name
func (js *JSONStore) LoadWorld(name string) (*models.WorldMap, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	world, exists := js.data.Worlds[name]
	if !exists {
		return nil, fmt.Errorf("world with name %s: %w", name, ErrNotFound)
	}

	return world.Clone(), nil
}

// ListWorlds returns the names of all saved worlds in sorted order
func (js *JSONStore) ListWorlds() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	names := make([]string, 0, len(js.data.Worlds))
	for name := range js.data.Worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
