package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

// Event names pushed to the admin reconciliation/orders screens.
const (
	EventOrderCreated     = "order_created"
	EventOrderUpdated     = "order_updated"
	EventPaymentConfirmed = "payment_confirmed"
)

// Hub maintains campaign_id -> set of admin connections and broadcasts order
// and payment events. Uses Redis pub/sub for horizontal scaling: local
// broadcast + publish to Redis.
type Hub struct {
	// campaignID -> map[clientID]*Client
	rooms    map[uuid.UUID]map[string]*Client
	subs     map[uuid.UUID]func() // cancel Redis subscription per campaign
	mu       sync.RWMutex
	logger   *zap.Logger
	redis    RedisPublisher
	redisSub RedisSubscriber
}

// RedisPublisher is the interface for publishing to Redis (for cross-instance broadcast).
type RedisPublisher interface {
	PublishCampaignEvent(campaignID uuid.UUID, event string, payload []byte) error
}

// RedisSubscriber subscribes to campaign channels and invokes handler for incoming events.
type RedisSubscriber interface {
	SubscribeCampaign(campaignID uuid.UUID, handler func(event string, payload []byte)) (cancel func(), err error)
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zap.Logger, redisPub RedisPublisher, redisSub RedisSubscriber) *Hub {
	return &Hub{
		rooms:    make(map[uuid.UUID]map[string]*Client),
		subs:     make(map[uuid.UUID]func()),
		logger:   logger,
		redis:    redisPub,
		redisSub: redisSub,
	}
}

// Register adds a client to a campaign room. Starts Redis subscription for
// the campaign if this is its first client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.rooms[c.CampaignID] == nil {
		h.rooms[c.CampaignID] = make(map[string]*Client)
		if h.redisSub != nil {
			cancel, err := h.redisSub.SubscribeCampaign(c.CampaignID, func(event string, payload []byte) {
				h.BroadcastToCampaign(c.CampaignID, event, json.RawMessage(payload))
			})
			if err == nil {
				h.subs[c.CampaignID] = cancel
			}
		}
	}
	h.rooms[c.CampaignID][c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("client joined campaign room",
		zap.String("client_id", c.ID), zap.String("campaign_id", c.CampaignID.String()))
}

// Unregister removes a client from its campaign room. Cancels the Redis
// subscription when the last client leaves.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if m, ok := h.rooms[c.CampaignID]; ok {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(h.rooms, c.CampaignID)
			if cancel, ok := h.subs[c.CampaignID]; ok {
				cancel()
				delete(h.subs, c.CampaignID)
			}
		}
	}
	h.mu.Unlock()
	h.logger.Debug("client left campaign room",
		zap.String("client_id", c.ID), zap.String("campaign_id", c.CampaignID.String()))
}

// BroadcastToCampaign sends a message to all clients in a campaign room (local only).
func (h *Hub) BroadcastToCampaign(campaignID uuid.UUID, event string, payload interface{}) {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		data, _ = json.Marshal(payload)
	}
	msg := WSMessage{Event: event, Data: data}

	// snapshot under the lock; Unregister mutates the room map concurrently
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[campaignID]))
	for _, c := range h.rooms[campaignID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// Notify delivers an event to every admin watching the campaign. With Redis
// wired the message is published only: the subscription installed on first
// Register performs the local broadcast, once, on this instance and every
// other one. Broadcasting here as well would hand local clients each event
// twice.
func (h *Hub) Notify(campaignID uuid.UUID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if h.redis != nil {
		_ = h.redis.PublishCampaignEvent(campaignID, event, data)
		return
	}
	h.BroadcastToCampaign(campaignID, event, json.RawMessage(data))
}

// RoomCount returns the number of connected clients watching a campaign.
func (h *Hub) RoomCount(campaignID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[campaignID])
}
