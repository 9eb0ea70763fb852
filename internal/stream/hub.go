package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Feed event names pushed to room subscribers.
const (
	EventNewPost    = "newPost"
	EventUpdatePost = "updatePost"
	EventDeletePost = "deletePost"
)

// RoomKey derives the canonical room name for a feed scope. An empty value
// (the home feed) maps to "all". Values are not escaped: the level set is
// closed, so a hyphenated location name cannot collide with another valid
// (level, value) pair.
func RoomKey(levelType, levelValue string) string {
	if levelValue == "" {
		levelValue = "all"
	}
	return "level-" + levelType + "-" + levelValue
}

// Hub tracks which connections are subscribed to which feed rooms and fans
// published events out to them. Delivery is best-effort: slow or gone
// subscribers are skipped, the durable feed query is the source of truth.
// When a Redis client is supplied, publishes are mirrored over pub/sub so
// every instance of the API fans out to its own sockets.
type Hub struct {
	id    string
	redis *redis.Client

	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	members map[*Client]map[string]struct{}
}

type Client struct {
	Send chan []byte
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type relayMessage struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		rooms:   map[string]map[*Client]struct{}{},
		members: map[*Client]map[string]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register() *Client {
	client := &Client{Send: make(chan []byte, 64)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.members[client] = map[string]struct{}{}
	return client
}

// Unregister drops the client from every room it joined and closes its
// send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range h.members[client] {
		h.removeFromRoom(client, room)
	}
	delete(h.members, client)
	close(client.Send)
}

// Join is idempotent; joining the same room twice is a no-op.
func (h *Hub) Join(client *Client, room string) {
	if room == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.members[client]; !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]struct{}{}
	}
	h.rooms[room][client] = struct{}{}
	h.members[client][room] = struct{}{}
}

func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(client, room)
	delete(h.members[client], room)
}

func (h *Hub) removeFromRoom(client *Client, room string) {
	if roomClients, ok := h.rooms[room]; ok {
		delete(roomClients, client)
		if len(roomClients) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Publish sends an event to every current member of the room. It never
// reports failure to the caller: the HTTP mutation already succeeded and
// missed events are recovered by the next full feed fetch.
func (h *Hub) Publish(room, event string, data any) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("stream: marshal %s event: %v", event, err)
		return
	}

	h.deliver(room, payload)

	if h.redis != nil {
		msg, _ := json.Marshal(relayMessage{Origin: h.id, Payload: payload})
		if err := h.redis.Publish(context.Background(), roomChannel(room), msg).Err(); err != nil {
			log.Printf("stream: redis publish error: %v", err)
		}
	}
}

func (h *Hub) deliver(room string, payload []byte) {
	// Sends are non-blocking; the read lock keeps Unregister from closing
	// a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "feed:*:broadcast")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var relay relayMessage
		if err := json.Unmarshal([]byte(msg.Payload), &relay); err != nil {
			continue
		}
		if relay.Origin == h.id {
			// Already delivered locally when this instance published.
			continue
		}
		h.deliver(roomFromChannel(msg.Channel), relay.Payload)
	}
}

func roomChannel(room string) string {
	return "feed:" + room + ":broadcast"
}

func roomFromChannel(ch string) string {
	// feed:{room}:broadcast
	const prefix = "feed:"
	const suffix = ":broadcast"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
