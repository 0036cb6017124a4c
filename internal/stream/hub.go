package stream

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Hub fans live run payloads (stats snapshots, milestone alerts) out to
// websocket clients subscribed to a session. When Redis is configured the
// payloads are also published so replicas can forward them to their own
// clients. Delivery is fire-and-forget; the session engine never blocks on
// a slow consumer.
type Hub struct {
	redis   *redis.Client
	log     *zap.Logger
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	SessionID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		redis:   redisClient,
		log:     log,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessionClients, ok := h.clients[client.SessionID]; ok {
		delete(sessionClients, client)
		if len(sessionClients) == 0 {
			delete(h.clients, client.SessionID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(sessionID string, payload []byte) {
	// fanout stays under the read lock so Unregister cannot close a Send
	// channel mid-delivery; sends are non-blocking so the lock is brief
	h.mu.RLock()
	for client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
	h.mu.RUnlock()

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(sessionID), payload).Err()
		if err != nil {
			h.log.Warn("redis publish failed", zap.Error(err))
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.Subscribe(ctx, "run:*:live")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		sessionID := sessionIDFromChannel(msg.Channel)
		h.mu.RLock()
		for client := range h.clients[sessionID] {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
		h.mu.RUnlock()
	}
}

func redisChannel(sessionID string) string {
	return "run:" + sessionID + ":live"
}

func sessionIDFromChannel(ch string) string {
	// run:{session}:live
	const prefix = "run:"
	const suffix = ":live"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
