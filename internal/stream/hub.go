package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "track:"
	channelSuffix = ":records"
)

// Hub fans appended track records out to websocket subscribers, keyed by
// session id. With a redis client attached, records flow through pub/sub
// so every instance sees every append; without one they are delivered
// locally.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

// Client is one websocket subscriber. Slow clients drop messages rather
// than stall the hub. Send stays open for the client's lifetime; done
// closing is the teardown signal, so delivery never races a close.
type Client struct {
	SessionID string
	Send      chan []byte
	done      chan struct{}
}

// Done is closed when the client is unregistered.
func (c *Client) Done() <-chan struct{} {
	return c.done
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

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

// Unregister removes the client and closes its done channel. Safe to
// call more than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionClients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := sessionClients[client]; !ok {
		return
	}
	delete(sessionClients, client)
	if len(sessionClients) == 0 {
		delete(h.clients, client.SessionID)
	}
	close(client.done)
}

// Broadcast sends payload to every subscriber of the session. When redis
// is attached the payload loops through pub/sub, which also reaches peer
// instances; local delivery then happens in subscribeRedis.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	if h.redis != nil {
		if err := h.redis.Publish(context.Background(), recordsChannel(sessionID), payload).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
			h.deliver(sessionID, payload)
		}
		return
	}
	h.deliver(sessionID, payload)
}

// deliver holds the read lock for the whole loop so Unregister cannot
// mutate the map mid-iteration. Sends are non-blocking, so the lock is
// never held waiting on a slow client.
func (h *Hub) deliver(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.PSubscribe(context.Background(), channelPrefix+"*"+channelSuffix)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(sessionIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func recordsChannel(sessionID string) string {
	return channelPrefix + sessionID + channelSuffix
}

func sessionIDFromChannel(ch string) string {
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
