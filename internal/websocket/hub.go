package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/logging"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypeConnect MessageType = "connect"
	TypePing    MessageType = "ping"
	TypePong    MessageType = "pong"
	TypeError   MessageType = "error"

	// Уведомления
	TypeFriendRequest  MessageType = events.FriendRequestReceived
	TypeFriendAccepted MessageType = events.FriendRequestAccepted
	TypeCommented      MessageType = events.ActivityCommented
	TypeLiked          MessageType = events.ActivityLiked
)

type Message struct {
	Type      MessageType     `json:"type"`
	UserID    uint            `json:"userId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub

	pingPeriod time.Duration
}

// Hub держит соединения по пользователям и доставляет им уведомления
type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты по UserID (один пользователь может иметь несколько соединений)
	userClients map[uint]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu  sync.RWMutex
	log logging.Logger

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

var _ events.Publisher = (*Hub)(nil)

func NewHub(log logging.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uint]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		log:         log.With("component", "ws_hub"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop закрывает все соединения; после Stop hub не используется
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
		delete(h.clients, id)
	}
	h.userClients = make(map[uint]map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		client.Conn.Close()
	}
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	h.log.Debug(h.ctx, "client registered", "client_id", client.ID, "user_id", client.UserID)

	if data, err := json.Marshal(Message{Type: TypeConnect, UserID: client.UserID, Timestamp: time.Now().UTC()}); err == nil {
		h.enqueue(client, data)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
	delete(h.clients, client.ID)
	close(client.Send)

	h.log.Debug(h.ctx, "client unregistered", "client_id", client.ID, "user_id", client.UserID)
}

// Publish доставляет событие всем соединениям получателя; офлайн не ошибка
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(Message{
		Type:      MessageType(e.Type),
		UserID:    e.UserID,
		Data:      data,
		Timestamp: e.Timestamp,
	})
	if err != nil {
		return err
	}
	h.SendToUser(e.UserID, msg)
	return nil
}

// SendToUser отправляет сообщение пользователю
func (h *Hub) SendToUser(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.userClients[userID] {
		h.enqueue(client, message)
	}
}

// Connections число открытых соединений пользователя
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uint, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

// enqueue вызывается под h.mu
func (h *Hub) enqueue(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.log.Warn(h.ctx, "client send channel full", "client_id", client.ID, "user_id", client.UserID)
	}
}
