package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Event is pushed to a chat owner's open clients when one of their chats
// changes (created, appended-to). Clients re-fetch; events carry ids only.
type Event struct {
	Type   string `json:"type"`
	ChatID string `json:"chatId,omitempty"`
}

const (
	EventChatCreated      = "chat_created"
	EventExchangeAppended = "exchange_appended"
)

// Client is one websocket connection belonging to a user.
type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan Event
	done   chan struct{}
}

// Hub fans events out to every open connection of a user. Connections from
// other users never see them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: map[string]map[*Client]struct{}{}}
}

// Add registers a connection for userID and starts its write pump.
func (h *Hub) Add(userID string, conn *websocket.Conn) *Client {
	c := &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan Event, 16),
		done:   make(chan struct{}),
	}
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	return c
}

// Remove unregisters the client and closes its connection.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()

	close(c.done)
	_ = c.conn.Close()
}

// NotifyUser delivers ev to every open connection of userID. Slow clients
// whose buffers are full just miss the event.
func (h *Hub) NotifyUser(userID string, ev Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- ev:
		default:
			log.WithField("userId", userID).Debug("ws buffer full, event dropped")
		}
	}
}

func (c *Client) writeLoop() {
	ping := time.NewTicker(25 * time.Second)
	defer ping.Stop()
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
