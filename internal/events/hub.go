// Package events pushes task lifecycle notifications to websocket clients.
package events

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

const (
	TaskCreated   = "task_created"
	TaskCompleted = "task_completed"
	TaskReopened  = "task_reopened"
	TaskDeleted   = "task_deleted"
)

type Event struct {
	Type   string `json:"type"`
	TaskID int    `json:"task_id"`
	Title  string `json:"title,omitempty"`
}

// Client wraps one websocket connection. Writes are serialized per client.
type Client struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{Conn: conn}
	h.register <- client
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish enqueues an event. It never blocks a request: when the buffer is
// full the event is dropped, clients are a best-effort mirror of state they
// can always re-fetch.
func (h *Hub) Publish(evt Event) {
	select {
	case h.broadcast <- evt:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Conn.Close()
			}
		case evt := <-h.broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			for client := range h.clients {
				client.mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, payload)
				client.mu.Unlock()
				if err != nil {
					delete(h.clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
