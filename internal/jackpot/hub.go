package jackpot

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// Client is a dashboard connected over WebSocket. Writes are serialised per client.
type Client struct {
	conn      *websocket.Conn
	jackpotID string
	mu        sync.Mutex
}

// event is a queued broadcast. An empty jackpotID reaches every client.
type event struct {
	jackpotID string
	message   interface{}
}

// Hub fans events out to connected dashboards, optionally scoped to one jackpot.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan event
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan event, 100),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client connected: jackpot %s (Total: %d)", client.jackpotID, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.conn.Close()
				log.Printf("[WS] Client disconnected: jackpot %s (Total: %d)", client.jackpotID, len(h.clients))
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			jsonMessage, err := json.Marshal(ev.message)
			if err != nil {
				log.Printf("[WS] Marshal error: %v", err)
				continue
			}

			for _, client := range h.recipients(ev.jackpotID) {
				go client.send(jsonMessage)
			}

		case <-h.stop:
			return
		}
	}
}

// Stop ends Run. It must be called at most once.
func (h *Hub) Stop() {
	close(h.stop)
}

// Broadcast queues message for every client and drops it when the queue is full.
func (h *Hub) Broadcast(message interface{}) {
	h.enqueue(event{message: message})
}

// BroadcastJackpot queues message for the clients watching jackpotID.
func (h *Hub) BroadcastJackpot(jackpotID string, message interface{}) {
	h.enqueue(event{jackpotID: jackpotID, message: message})
}

func (h *Hub) enqueue(ev event) {
	select {
	case h.broadcast <- ev:
	default:
		log.Println("[WS] Broadcast channel full, dropping message")
	}
}

func (h *Hub) recipients(jackpotID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if jackpotID == "" || client.jackpotID == jackpotID {
			out = append(out, client)
		}
	}
	return out
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RegisterClient(conn *websocket.Conn, jackpotID string) *Client {
	client := &Client{
		conn:      conn,
		jackpotID: jackpotID,
	}
	select {
	case h.register <- client:
	case <-h.stop:
	}
	return client
}

// UnregisterClient returns immediately once the hub has stopped.
func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// Send writes one message to this client only.
func (c *Client) Send(message interface{}) {
	c.send(message)
}

func (c *Client) send(message interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var data []byte
	var err error

	switch v := message.(type) {
	case []byte:
		data = v
	default:
		data, err = json.Marshal(v)
		if err != nil {
			log.Printf("[WS] Send marshal error: %v", err)
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[WS] Write error for jackpot %s: %v", c.jackpotID, err)
	}
}
