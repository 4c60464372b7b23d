package messages

import "beast-ride-saga/server/models"

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeLogin        MessageType = "login"
	MessageTypeLoginSuccess MessageType = "login_success"
	MessageTypeMove         MessageType = "move"
	MessageTypeMoveResult   MessageType = "move_result"
	MessageTypeUpdate       MessageType = "update"
	MessageTypeTile         MessageType = "tile"
	MessageTypeTileInfo     MessageType = "tile_info"
	MessageTypeSave         MessageType = "save"
	MessageTypeSaved        MessageType = "saved"
	MessageTypeError        MessageType = "error"
)

// Error codes sent in ErrorMessage
const (
	ErrCodeUnknownType = "UNKNOWN_MESSAGE_TYPE"
	ErrCodeBadPayload  = "BAD_PAYLOAD"
	ErrCodeNotLoggedIn = "NOT_LOGGED_IN"
	ErrCodeLoginFailed = "LOGIN_FAILED"
	ErrCodeMoveFailed  = "MOVE_FAILED"
	ErrCodeSaveFailed  = "SAVE_FAILED"
)

// BaseMessage is the base structure for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// LoginMessage represents a login request. Seed and size only apply when a
// new world has to be generated for the player.
type LoginMessage struct {
	Username string `json:"username"`
	Seed     *int64 `json:"seed,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// LoginSuccessMessage represents a successful login response
type LoginSuccessMessage struct {
	PlayerID  string `json:"player_id"`
	WorldName string `json:"world_name"`
	Seed      int64  `json:"seed"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Message   string `json:"message"`
}

// MoveMessage represents a player movement request
type MoveMessage struct {
	Direction string `json:"direction"` // north, south, east, west
}

// MoveResultMessage reports the outcome of one move. Moved is false when the
// target was out of bounds or impassable.
type MoveResultMessage struct {
	Moved      bool               `json:"moved"`
	Position   models.Position    `json:"position"`
	Discovered models.Discoveries `json:"discovered"`
}

// TileView is what a client may know about a cell. Unexplored cells carry
// only the fog flag.
type TileView struct {
	Explored          bool           `json:"explored"`
	Terrain           models.Terrain `json:"terrain,omitempty"`
	Biome             models.Biome   `json:"biome,omitempty"`
	PointOfInterestID string         `json:"poi_id,omitempty"`
}

// ChunkView is a square block of tiles addressed by chunk coordinates
type ChunkView struct {
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Tiles [][]TileView `json:"tiles"`
}

// UpdateMessage represents a world update
type UpdateMessage struct {
	Width                  int                      `json:"width"`
	Height                 int                      `json:"height"`
	Position               models.Position          `json:"position"`
	CurrentRegion          *models.Region           `json:"current_region,omitempty"`
	CurrentPointOfInterest *models.PointOfInterest  `json:"current_poi,omitempty"`
	Chunks                 []ChunkView              `json:"chunks"`
	Regions                []models.Region          `json:"regions"`
	PointsOfInterest       []models.PointOfInterest `json:"points_of_interest"`
}

// TileMessage asks for the details of one cell
type TileMessage struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileInfoMessage answers a TileMessage. Cell is nil for unexplored or
// out-of-bounds coordinates.
type TileInfoMessage struct {
	X               int                     `json:"x"`
	Y               int                     `json:"y"`
	Cell            *models.Cell            `json:"cell,omitempty"`
	PointOfInterest *models.PointOfInterest `json:"poi,omitempty"`
}

// SavedMessage confirms a save
type SavedMessage struct {
	WorldName string `json:"world_name"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
