package models

import (
	"errors"
	"time"
)

// Player is an account bound to one saved world
type Player struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	WorldName string    `json:"world_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Position is a cell coordinate on the world grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four cardinal moves
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// ErrInvalidDirection is returned for anything other than a cardinal direction
var ErrInvalidDirection = errors.New("invalid direction")

// ParseDirection validates a direction name sent by a client
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case North, South, East, West:
		return d, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Delta returns the grid offset of one step in the direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}
