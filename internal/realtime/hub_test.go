package realtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// loopbackBus stands in for Redis pub/sub within the process: published
// messages go straight to every subscriber of the channel, including the
// publishing instance, exactly as a real Redis subscription would.
type loopbackBus struct {
	mu       sync.Mutex
	handlers map[uuid.UUID][]func(event string, payload []byte)
}

func newLoopbackBus() *loopbackBus {
	return &loopbackBus{handlers: make(map[uuid.UUID][]func(string, []byte))}
}

func (b *loopbackBus) PublishCampaignEvent(campaignID uuid.UUID, event string, payload []byte) error {
	b.mu.Lock()
	hs := append([]func(string, []byte){}, b.handlers[campaignID]...)
	b.mu.Unlock()
	for _, h := range hs {
		h(event, payload)
	}
	return nil
}

func (b *loopbackBus) SubscribeCampaign(campaignID uuid.UUID, handler func(event string, payload []byte)) (func(), error) {
	b.mu.Lock()
	b.handlers[campaignID] = append(b.handlers[campaignID], handler)
	b.mu.Unlock()
	return func() {}, nil
}

func newTestClient(campaignID uuid.UUID) *Client {
	return &Client{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		send:       make(chan WSMessage, 8),
	}
}

// delivered drains everything currently queued for the client.
func delivered(c *Client) []WSMessage {
	var got []WSMessage
	for {
		select {
		case m := <-c.send:
			got = append(got, m)
		default:
			return got
		}
	}
}

func TestNotifyDeliversExactlyOnceThroughRedis(t *testing.T) {
	bus := newLoopbackBus()
	hub := NewHub(zap.NewNop(), bus, bus)
	campaignID := uuid.New()

	c := newTestClient(campaignID)
	hub.Register(c)
	defer hub.Unregister(c)

	hub.Notify(campaignID, EventOrderCreated, map[string]string{"codigo_pedido": "DP-000123"})

	got := delivered(c)
	require.Len(t, got, 1)
	assert.Equal(t, EventOrderCreated, got[0].Event)
	assert.Contains(t, string(got[0].Data), "DP-000123")
}

func TestNotifyReachesEveryRoomClientOnce(t *testing.T) {
	bus := newLoopbackBus()
	hub := NewHub(zap.NewNop(), bus, bus)
	campaignID := uuid.New()

	a := newTestClient(campaignID)
	b := newTestClient(campaignID)
	other := newTestClient(uuid.New())
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)
	defer hub.Unregister(a)
	defer hub.Unregister(b)
	defer hub.Unregister(other)

	hub.Notify(campaignID, EventPaymentConfirmed, map[string]string{"codigo_pedido": "DP-000456"})

	assert.Len(t, delivered(a), 1)
	assert.Len(t, delivered(b), 1)
	assert.Empty(t, delivered(other))
}

func TestNotifyWithoutRedisBroadcastsLocally(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil, nil)
	campaignID := uuid.New()

	c := newTestClient(campaignID)
	hub.Register(c)
	defer hub.Unregister(c)

	hub.Notify(campaignID, EventOrderUpdated, map[string]string{"status": "em_analise"})

	got := delivered(c)
	require.Len(t, got, 1)
	assert.Equal(t, EventOrderUpdated, got[0].Event)
}
