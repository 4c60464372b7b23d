// Package persistence saves players and worlds to disk or a database.
package persistence

import (
	"errors"

	"beast-ride-saga/server/models"
)

// ErrNotFound is returned when a player or world does not exist
var ErrNotFound = errors.New("not found")

// Storage defines the interface for data persistence
type Storage interface {
	SavePlayer(player *models.Player) error
	LoadPlayer(playerID string) (*models.Player, error)
	LoadPlayerByUsername(username string) (*models.Player, error)
	SaveWorld(name string, world *models.WorldMap) error
	LoadWorld(name string) (*models.WorldMap, error)
	ListWorlds() ([]string, error)
	Close() error
}
