// Package realtime pushes reservation events to open dashboard sessions.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/pkg/logger"
	"go.uber.org/zap"
)

const (
	sendBuffer      = 32
	broadcastBuffer = 256
	recentEventIDs  = 1024
)

// Client is one dashboard connection subscribed to a restaurant's feed.
type Client struct {
	RestaurantID uint
	ClientID     string
	send         chan []byte
}

func NewClient(restaurantID uint, clientID string) *Client {
	return &Client{RestaurantID: restaurantID, ClientID: clientID, send: make(chan []byte, sendBuffer)}
}

// Messages is closed when the hub drops the client.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

type message struct {
	restaurantID uint
	originID     string
	body         []byte
}

// Hub fans events out to the clients of each restaurant. Run owns the client
// set; everything else talks to it through channels.
type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}

	mu     sync.Mutex
	seen   map[string]struct{}
	order  []string
	cursor int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, broadcastBuffer),
		done:       make(chan struct{}),
		seen:       make(map[string]struct{}, recentEventIDs),
		order:      make([]string, recentEventIDs),
	}
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = map[uint]map[*Client]bool{}
			return

		case c := <-h.register:
			if h.clients[c.RestaurantID] == nil {
				h.clients[c.RestaurantID] = make(map[*Client]bool)
			}
			h.clients[c.RestaurantID][c] = true

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			for c := range h.clients[msg.restaurantID] {
				if msg.originID != "" && c.ClientID == msg.originID {
					continue
				}
				select {
				case c.send <- msg.body:
				default:
					// Slow reader; it reconnects and refetches.
					logger.Get().Warn("dropping slow realtime client",
						zap.Uint("restaurant_id", c.RestaurantID), zap.String("client_id", c.ClientID))
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	set := h.clients[c.RestaurantID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.RestaurantID)
	}
}

// Register adds c to its restaurant's feed. After the hub stops, c is
// closed immediately.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Dispatch queues evt for the restaurant's clients. An event id that was
// already dispatched is ignored, so broker redeliveries reach each client once.
func (h *Hub) Dispatch(evt dto.ReservationEvent) error {
	if evt.EventID != "" && !h.markSeen(evt.EventID) {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	select {
	case h.broadcast <- message{restaurantID: evt.RestaurantID, originID: evt.OriginClientID, body: body}:
		return nil
	default:
		return fmt.Errorf("realtime broadcast queue full, dropped %s", evt.EventID)
	}
}

// markSeen records id in a fixed size ring and reports whether it was new.
func (h *Hub) markSeen(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, dup := h.seen[id]; dup {
		return false
	}
	if old := h.order[h.cursor]; old != "" {
		delete(h.seen, old)
	}
	h.order[h.cursor] = id
	h.cursor = (h.cursor + 1) % len(h.order)
	h.seen[id] = struct{}{}
	return true
}

// LocalPublisher delivers events straight to the hub when no broker is
// configured.
type LocalPublisher struct {
	hub *Hub
}

func NewLocalPublisher(hub *Hub) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(routingKey string, payload any) error {
	evt, ok := payload.(dto.ReservationEvent)
	if !ok {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", routingKey, err)
		}
		if err := json.Unmarshal(b, &evt); err != nil {
			return fmt.Errorf("decode %s payload: %w", routingKey, err)
		}
	}
	return p.hub.Dispatch(evt)
}
