package handlers

import (
	"log"
	"sync"
)

// ClientManager manages connected clients
type ClientManager struct {
	clients map[string]*ClientHandler // Map PlayerID to ClientHandler
	logger  *log.Logger
	mutex   sync.RWMutex
}

// NewClientManager creates a new client manager
func NewClientManager(logger *log.Logger) *ClientManager {
	if logger == nil {
		logger = log.Default()
	}
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
		logger:  logger,
	}
}

// AddClient registers a client. It returns false when the player already has
// a live connection.
func (cm *ClientManager) AddClient(playerID string, handler *ClientHandler) bool {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	if _, exists := cm.clients[playerID]; exists {
		return false
	}
	cm.clients[playerID] = handler
	return true
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(playerID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, playerID)
}

// Count returns the number of connected clients
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// BroadcastToAll sends a message to all connected clients
func (cm *ClientManager) BroadcastToAll(msg interface{}) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for id, client := range cm.clients {
		if err := client.conn.SendMessage(msg); err != nil {
			cm.logger.Printf("Error broadcasting to client %s: %v", id, err)
		}
	}
}

// ExecuteOnAllClients executes a function for each connected client
func (cm *ClientManager) ExecuteOnAllClients(action func(*ClientHandler)) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for _, client := range cm.clients {
		action(client)
	}
}
