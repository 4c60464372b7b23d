package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"beast-ride-saga/server/messages"
	"beast-ride-saga/server/models"
	"beast-ride-saga/server/network"
	"beast-ride-saga/server/services"
)

// MaxWorldSide bounds the width and height a client may ask for
const MaxWorldSide = 1024

// ClientHandler manages a single client connection
type ClientHandler struct {
	conn          *network.Connection
	playerService *services.PlayerService
	clientManager *ClientManager
	defaults      services.GenerateOptions
	logger        *log.Logger

	player *models.Player
	world  *services.WorldService
}

// HandleClientConnection serves one client until the connection closes.
// defaults are used for worlds generated on first login.
func HandleClientConnection(conn *network.Connection, playerService *services.PlayerService, clientManager *ClientManager, defaults services.GenerateOptions, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("New connection from %s", conn.RemoteAddr())

	handler := &ClientHandler{
		conn:          conn,
		playerService: playerService,
		clientManager: clientManager,
		defaults:      defaults,
		logger:        logger,
	}

	// Start the write pump in a goroutine
	go conn.WritePump()

	// Handle the read pump in the current goroutine
	conn.ReadPump(handler)

	// Clean up when the connection is closed
	if handler.player != nil {
		clientManager.RemoveClient(handler.player.ID)
		if err := playerService.Release(handler.player.ID); err != nil {
			logger.Printf("Error saving %s on disconnect: %v", handler.player.Username, err)
		}
		logger.Printf("Player %s disconnected", handler.player.Username)
	}
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var baseMsg messages.BaseMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		h.logger.Printf("Error unmarshaling message: %v", err)
		h.sendError(messages.ErrCodeBadPayload, "Malformed message")
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeLogin:
		h.handleLogin(baseMsg.Payload)
	case messages.MessageTypeMove:
		h.handleMove(baseMsg.Payload)
	case messages.MessageTypeTile:
		h.handleTile(baseMsg.Payload)
	case messages.MessageTypeSave:
		h.handleSave()
	default:
		h.logger.Printf("Unknown message type: %s", baseMsg.Type)
		h.sendError(messages.ErrCodeUnknownType, "Unknown message type received")
	}
}

// decodePayload re-decodes a generic payload into a typed message
func decodePayload(payload interface{}, v interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// handleLogin handles login requests
func (h *ClientHandler) handleLogin(payload interface{}) {
	if h.player != nil {
		h.sendError(messages.ErrCodeLoginFailed, "Already logged in")
		return
	}

	var loginMsg messages.LoginMessage
	if err := decodePayload(payload, &loginMsg); err != nil {
		h.logger.Printf("Error unmarshaling login message: %v", err)
		h.sendError(messages.ErrCodeBadPayload, "Invalid login payload")
		return
	}
	if loginMsg.Width < 0 || loginMsg.Height < 0 || loginMsg.Width > MaxWorldSide || loginMsg.Height > MaxWorldSide {
		h.sendError(messages.ErrCodeLoginFailed, fmt.Sprintf("World size must be between 1 and %d", MaxWorldSide))
		return
	}

	gen := h.defaults
	if loginMsg.Width > 0 {
		gen.Width = loginMsg.Width
	}
	if loginMsg.Height > 0 {
		gen.Height = loginMsg.Height
	}
	if loginMsg.Seed != nil {
		gen.Seed = loginMsg.Seed
	}

	player, world, err := h.playerService.GetOrCreatePlayer(loginMsg.Username, gen)
	if err != nil {
		h.logger.Printf("Error getting/creating player: %v", err)
		h.sendError(messages.ErrCodeLoginFailed, "Failed to log in")
		return
	}

	// set before AddClient so the manager never holds a handler without a session
	h.player = player
	h.world = world
	if !h.clientManager.AddClient(player.ID, h) {
		h.player = nil
		h.world = nil
		h.sendError(messages.ErrCodeLoginFailed, "Player is already connected")
		return
	}

	snapshot := world.World()
	loginSuccessMsg := messages.BaseMessage{
		Type: messages.MessageTypeLoginSuccess,
		Payload: messages.LoginSuccessMessage{
			PlayerID:  player.ID,
			WorldName: world.Name(),
			Seed:      snapshot.Seed,
			Width:     snapshot.Width,
			Height:    snapshot.Height,
			Message:   "Login successful",
		},
	}
	if err := h.conn.SendMessage(loginSuccessMsg); err != nil {
		h.logger.Printf("Error sending login success: %v", err)
		return
	}

	// Send initial world state
	h.world.ResetView()
	h.sendWorldUpdate()
}

// handleMove handles player movement requests
func (h *ClientHandler) handleMove(payload interface{}) {
	if !h.requireLogin() {
		return
	}

	var moveMsg messages.MoveMessage
	if err := decodePayload(payload, &moveMsg); err != nil {
		h.logger.Printf("Error unmarshaling move message: %v", err)
		h.sendError(messages.ErrCodeBadPayload, "Invalid move payload")
		return
	}

	result, err := h.world.MovePlayer(moveMsg.Direction)
	if err != nil {
		h.sendError(messages.ErrCodeMoveFailed, err.Error())
		return
	}

	h.send(messages.MessageTypeMoveResult, messages.MoveResultMessage{
		Moved:      result.Moved,
		Position:   result.Position,
		Discovered: result.Discovered,
	})
	if result.Moved {
		h.sendWorldUpdate()
	}
}

// handleTile answers a tile query
func (h *ClientHandler) handleTile(payload interface{}) {
	if !h.requireLogin() {
		return
	}

	var tileMsg messages.TileMessage
	if err := decodePayload(payload, &tileMsg); err != nil {
		h.sendError(messages.ErrCodeBadPayload, "Invalid tile payload")
		return
	}
	h.send(messages.MessageTypeTileInfo, h.world.TileInfo(tileMsg.X, tileMsg.Y))
}

// handleSave persists the player and their world
func (h *ClientHandler) handleSave() {
	if !h.requireLogin() {
		return
	}
	if err := h.playerService.SaveSession(h.player.ID); err != nil {
		h.logger.Printf("Error saving %s: %v", h.player.Username, err)
		h.sendError(messages.ErrCodeSaveFailed, "Failed to save")
		return
	}
	h.send(messages.MessageTypeSaved, messages.SavedMessage{
		WorldName: h.world.Name(),
		Timestamp: time.Now().Unix(),
	})
}

// Save persists the session outside of a client request. Handlers reached
// through the ClientManager always have a session.
func (h *ClientHandler) Save() error {
	if h.player == nil {
		return nil
	}
	return h.playerService.SaveSession(h.player.ID)
}

func (h *ClientHandler) requireLogin() bool {
	if h.player == nil {
		h.sendError(messages.ErrCodeNotLoggedIn, "Log in first")
		return false
	}
	return true
}

// sendWorldUpdate sends the current world state to the player
func (h *ClientHandler) sendWorldUpdate() {
	h.send(messages.MessageTypeUpdate, h.world.Update())
}

func (h *ClientHandler) send(t messages.MessageType, payload interface{}) {
	if err := h.conn.SendMessage(messages.BaseMessage{Type: t, Payload: payload}); err != nil {
		h.logger.Printf("Error sending %s: %v", t, err)
	}
}

func (h *ClientHandler) sendError(code, message string) {
	h.send(messages.MessageTypeError, messages.ErrorMessage{Code: code, Message: message})
}
