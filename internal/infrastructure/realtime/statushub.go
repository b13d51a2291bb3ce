// Package realtime pushes asset status transitions to dashboard clients over
// WebSocket.
package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

const (
	EventTypeStatusChanged = "asset_status_changed"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

var (
	ErrHubClosed        = errors.New("status hub is shut down")
	ErrTooManyUserConns = errors.New("too many live connections for user")
)

// StatusMessage is the JSON frame sent for every applied transition.
type StatusMessage struct {
	Type           string    `json:"type"`
	AssetID        uint      `json:"assetId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ActorRole      string    `json:"actorRole"`
	RevisionNumber int       `json:"revisionNumber"`
	At             time.Time `json:"at"`
}

type client struct {
	id     string
	userID uint
	conn   *websocket.Conn
	send   chan []byte
	closed atomic.Bool
}

func (c *client) trySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.send)
	}
}

type StatusHubConfig struct {
	MaxConnsPerUser int
}

// StatusHub fans status changes out to every connected client. Slow clients
// whose buffer is full are dropped instead of blocking the dispatcher.
type StatusHub struct {
	clients   map[string]*client
	userConns map[uint]int
	mu        sync.RWMutex

	maxConnsPerUser int
	shutdown        atomic.Bool
	logger          logger.Interface
}

func NewStatusHub(log logger.Interface, cfg *StatusHubConfig) *StatusHub {
	maxConns := 5
	if cfg != nil && cfg.MaxConnsPerUser > 0 {
		maxConns = cfg.MaxConnsPerUser
	}
	return &StatusHub{
		clients:         make(map[string]*client),
		userConns:       make(map[uint]int),
		maxConnsPerUser: maxConns,
		logger:          log,
	}
}

// BroadcastStatusChange implements notification.StatusBroadcaster.
func (h *StatusHub) BroadcastStatusChange(evt asset.StatusChangedEvent) {
	data, err := json.Marshal(StatusMessage{
		Type:           EventTypeStatusChanged,
		AssetID:        evt.AssetID,
		PreviousStatus: evt.PreviousStatus.String(),
		NewStatus:      evt.NewStatus.String(),
		ActorRole:      evt.ActorRole,
		RevisionNumber: evt.RevisionNumber,
		At:             evt.GetOccurredAt(),
	})
	if err != nil {
		h.logger.Errorw("failed to encode status message", "asset_id", evt.AssetID, "error", err)
		return
	}

	var slow []*client
	h.mu.RLock()
	for _, c := range h.clients {
		if !c.trySend(data) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warnw("dropping slow status client", "conn_id", c.id, "user_id", c.userID)
		h.unregister(c)
	}
}

// Serve owns conn until the peer disconnects or the hub shuts down.
func (h *StatusHub) Serve(conn *websocket.Conn, userID uint) error {
	c, err := h.register(conn, userID)
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return err
	}

	go h.writePump(c)
	h.readPump(c)
	return nil
}

func (h *StatusHub) register(conn *websocket.Conn, userID uint) (*client, error) {
	if h.shutdown.Load() {
		return nil, ErrHubClosed
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.userConns[userID] >= h.maxConnsPerUser {
		h.logger.Warnw("status feed connection limit exceeded", "user_id", userID, "limit", h.maxConnsPerUser)
		return nil, ErrTooManyUserConns
	}

	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.clients[c.id] = c
	h.userConns[userID]++

	h.logger.Infow("status feed client connected", "conn_id", c.id, "user_id", userID)
	return c, nil
}

func (h *StatusHub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	if ok {
		delete(h.clients, c.id)
		if h.userConns[c.userID] > 0 {
			h.userConns[c.userID]--
		}
	}
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Infow("status feed client disconnected", "conn_id", c.id, "user_id", c.userID)
	}
}

// readPump only drains control frames; clients never send data.
func (h *StatusHub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StatusHub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StatusHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every client. Safe to call more than once.
func (h *StatusHub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]*client)
	h.userConns = make(map[uint]int)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
