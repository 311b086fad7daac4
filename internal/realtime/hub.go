package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
)

const clientBuffer = 10

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan Message

	closed bool
}

// Hub fans bus messages out to connected SSE clients by channel name. A
// client that cannot keep up has messages dropped rather than blocking the
// broadcast.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "RealtimeHub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (hub *Hub) NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan Message, clientBuffer),
	}
}

func (hub *Hub) AddChannel(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	client.Channels[channel] = true
	clients, ok := hub.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true

	hub.log.Debug("realtime client subscribed", "client_id", client.ID, "channel", channel)
}

func (hub *Hub) RemoveChannel(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	delete(client.Channels, channel)
	if clients, ok := hub.subscriptions[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(hub.subscriptions, channel)
		}
	}
}

// CloseClient unsubscribes the client everywhere and closes its outbound
// channel. Must be called when the owning request ends, or the hub keeps
// pushing to a stream nobody reads.
func (hub *Hub) CloseClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for channel := range client.Channels {
		if clients, ok := hub.subscriptions[channel]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(hub.subscriptions, channel)
			}
		}
	}
	client.Channels = make(map[string]bool)
	if !client.closed {
		client.closed = true
		close(client.Outbound)
	}
}

func (hub *Hub) Broadcast(msg Message) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for client := range hub.subscriptions[msg.Channel] {
		select {
		case client.Outbound <- msg:
		default:
			hub.log.Warn("realtime client too slow, dropping message", "client_id", client.ID, "channel", msg.Channel)
		}
	}
}
