package hub

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	redisstate "github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/infra/state/redis"
)

// WebSocket timing constants shared by hub and client.
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// HubMessage is the envelope passed over the Hub's internal channel.
type HubMessage struct {
	Type   string // "register" or "unregister"
	Client *Client
}

// roomSubscription holds the Redis subscription backing one room's fan-out.
type roomSubscription struct {
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// Hub keeps the set of connected clients per room and fans room events out
// to them. Events originate in the service layer, travel through Redis
// pub/sub (one channel per room) and land here, so every process in a
// multi-instance deployment delivers the same stream.
type Hub struct {
	messageChan chan HubMessage

	// map[roomID]map[*Client]bool
	rooms   map[string]map[*Client]bool
	roomsMu sync.RWMutex

	// One Redis subscription per room with at least one client.
	subs   map[string]*roomSubscription
	subsMu sync.Mutex

	redisClient *redis.Client
	keyPrefix   string
}

func NewHub(redisClient *redis.Client, keyPrefix string) *Hub {
	if redisClient == nil {
		panic("redis client cannot be nil for Hub")
	}
	return &Hub{
		messageChan: make(chan HubMessage, 512),
		rooms:       make(map[string]map[*Client]bool),
		subs:        make(map[string]*roomSubscription),
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

// Run is the Hub's main event loop. It should run in its own goroutine and
// exits when the message channel is closed.
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	for msg := range h.messageChan {
		switch msg.Type {
		case "register":
			h.registerClient(msg.Client)
		case "unregister":
			h.unregisterClient(msg.Client)
		default:
			log.Warnf("Hub: Received unknown message type: %s", msg.Type)
		}
	}
	log.Info("Hub is shutting down...")
}

func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	roomID := client.RoomID()
	logCtx := logrus.WithFields(logrus.Fields{
		"room_id": roomID,
		"user_id": client.UserID(),
		"action":  "registerClient",
	})

	h.roomsMu.Lock()
	firstInRoom := false
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]bool)
		firstInRoom = true
	}
	h.rooms[roomID][client] = true
	h.roomsMu.Unlock()
	logCtx.Info("Client registered to Hub")

	// The first client in a room brings the Redis subscription up with it.
	if firstInRoom {
		h.startRoomSubscription(roomID)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to unregister a nil client")
		return
	}
	roomID := client.RoomID()
	logCtx := logrus.WithFields(logrus.Fields{
		"room_id": roomID,
		"user_id": client.UserID(),
		"action":  "unregisterClient",
	})

	roomEmpty := false
	h.roomsMu.Lock()
	if roomClients, roomExists := h.rooms[roomID]; roomExists {
		if _, clientExists := roomClients[client]; clientExists {
			delete(roomClients, client)

			// Closing send makes the client's WritePump exit. Guard
			// against a second unregister for the same client.
			select {
			case <-client.send:
				logCtx.Warn("Client send channel already closed or has data during unregister")
			default:
				close(client.send)
			}

			if len(roomClients) == 0 {
				delete(h.rooms, roomID)
				roomEmpty = true
			}
		} else {
			logCtx.Warn("Client not found in room during unregister")
		}
	} else {
		logCtx.Warn("Room not found during client unregister")
	}
	h.roomsMu.Unlock()
	logCtx.Info("Client unregistered from Hub")

	if roomEmpty {
		h.stopRoomSubscription(roomID)
		logCtx.Info("Room empty, subscription released")
	}
}

// startRoomSubscription subscribes to the room's Redis channel and pumps
// every received payload into broadcast.
func (h *Hub) startRoomSubscription(roomID string) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	if _, ok := h.subs[roomID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	channel := redisstate.ChannelForRoom(h.keyPrefix, roomID)
	pubsub := h.redisClient.Subscribe(ctx, channel)
	h.subs[roomID] = &roomSubscription{pubsub: pubsub, cancel: cancel}

	logCtx := logrus.WithFields(logrus.Fields{
		"room_id": roomID,
		"channel": channel,
	})
	logCtx.Info("Room subscription started")

	go func() {
		ch := pubsub.Channel()
		for msg := range ch {
			h.broadcast(roomID, []byte(msg.Payload))
		}
		logCtx.Debug("Room subscription pump exited")
	}()
}

func (h *Hub) stopRoomSubscription(roomID string) {
	h.subsMu.Lock()
	sub, ok := h.subs[roomID]
	if ok {
		delete(h.subs, roomID)
	}
	h.subsMu.Unlock()
	if !ok {
		return
	}

	if err := sub.pubsub.Close(); err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Warn("Failed to close room subscription")
	}
	sub.cancel()
}

// StopAllSubscriptions tears down every room subscription. Called during
// shutdown before the Redis client closes.
func (h *Hub) StopAllSubscriptions() {
	h.subsMu.Lock()
	subs := h.subs
	h.subs = make(map[string]*roomSubscription)
	h.subsMu.Unlock()

	for roomID, sub := range subs {
		if err := sub.pubsub.Close(); err != nil {
			logrus.WithField("room_id", roomID).WithError(err).Warn("Failed to close room subscription during shutdown")
		}
		sub.cancel()
	}
	logrus.WithField("count", len(subs)).Info("All room subscriptions stopped")
}

// broadcast delivers a message to every client in a room.
func (h *Hub) broadcast(roomID string, message []byte) {
	h.roomsMu.RLock()
	roomClients, ok := h.rooms[roomID]
	clientsToSend := make([]*Client, 0, len(roomClients))
	if ok {
		for client := range roomClients {
			clientsToSend = append(clientsToSend, client)
		}
	}
	h.roomsMu.RUnlock()

	if len(clientsToSend) == 0 {
		return
	}

	logCtx := logrus.WithFields(logrus.Fields{
		"room_id":         roomID,
		"message_size":    len(message),
		"recipient_count": len(clientsToSend),
	})
	logCtx.Debug("Broadcasting message to clients")

	for _, client := range clientsToSend {
		// Non-blocking send so one slow client cannot stall the room.
		select {
		case client.send <- message:
		default:
			logCtx.WithField("receiver_user_id", client.UserID()).Warn("Client send channel full during broadcast, skipping this client")
		}
	}
}

// QueueMessage puts a message on the Hub's processing queue without
// blocking. Returns false when the queue is full.
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithField("message_type", msg.Type).Warn("Hub message channel full, dropping message")
		return false
	}
}
