package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans import-progress payloads out to websocket clients watching an
// import, and mirrors them over Redis so every API instance sees them.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	ImportID string
	Send     chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(importID string) *Client {
	client := &Client{
		ImportID: importID,
		Send:     make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[importID] == nil {
		h.clients[importID] = map[*Client]struct{}{}
	}
	h.clients[importID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if importClients, ok := h.clients[client.ImportID]; ok {
		delete(importClients, client)
		if len(importClients) == 0 {
			delete(h.clients, client.ImportID)
		}
	}
	close(client.Send)
}

// Broadcast hands the payload to every watcher of the import. With Redis
// connected the publish comes back through the subscription, local clients
// included, so delivering directly here as well would double every message.
func (h *Hub) Broadcast(importID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(importID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
		return
	}
	h.deliver(importID, payload)
}

func (h *Hub) deliver(importID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[importID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "imports:*:progress")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(importIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(importID string) string {
	return "imports:" + importID + ":progress"
}

func importIDFromChannel(ch string) string {
	// imports:{import}:progress
	const prefix = "imports:"
	const suffix = ":progress"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
