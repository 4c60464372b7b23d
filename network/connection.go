package network

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrConnectionClosed is returned when sending on a closed connection
var ErrConnectionClosed = errors.New("connection closed")

// Connection wraps the WebSocket connection with additional fields
type Connection struct {
	ws           *websocket.Conn
	send         chan []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewConnection creates a new connection wrapper. Zero timeouts disable the
// corresponding deadline.
func NewConnection(ws *websocket.Conn, readTimeout, writeTimeout time.Duration, logger *log.Logger) *Connection {
	if logger == nil {
		logger = log.Default()
	}
	return &Connection{
		ws:           ws,
		send:         make(chan []byte, 256), // Buffered channel for outgoing messages
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// RemoteAddr returns the peer address
func (c *Connection) RemoteAddr() string {
	return c.ws.RemoteAddr().String()
}

// ReadPump reads messages from the WebSocket connection until it fails or
// the peer goes away. It closes the send queue on return, which stops
// WritePump.
func (c *Connection) ReadPump(h MessageHandler) {
	defer c.Close()

	for {
		if c.readTimeout > 0 {
			_ = c.ws.SetReadDeadline(time.Now().Add(c.readTimeout))
		}
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Printf("Error reading message: %v", err)
			}
			break
		}

		// Handle the incoming message
		h.HandleMessage(c, message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Connection) WritePump() {
	defer func() {
		c.ws.Close()
	}()

	for message := range c.send {
		if c.writeTimeout > 0 {
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
		}
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		if _, err := w.Write(message); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}
	// Channel closed
	_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- messageBytes:
	default:
		// If the send channel is full, close the connection
		c.ws.Close()
	}
	return nil
}

// Close stops the write pump. It is safe to call more than once.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// MessageHandler interface for handling messages
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}
