package ws

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/barter-backend/internal/goroutine"
)

// Hub управляет WebSocket подключениями продавцов и доставляет им события
// жизненного цикла предложений обмена. У одного продавца может быть
// несколько подключений, событие уходит во все.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
}

type message struct {
	vendorID uuid.UUID
	payload  []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.vendorID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToVendor отправляет событие всем подключениям продавца.
// Поле "type" содержит имя события, "data" — полезную нагрузку.
func (h *Hub) BroadcastToVendor(vendorID uuid.UUID, event string, data any) error {
	payload := map[string]any{
		"type": event,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	h.broadcast <- message{vendorID: vendorID, payload: raw}
	return nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.vendorID]; !ok {
		h.clients[client.vendorID] = make(map[*Client]struct{})
	}
	h.clients[client.vendorID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.vendorID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.vendorID)
		}
	}
}

func (h *Hub) send(vendorID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[vendorID] {
		select {
		case client.send <- payload:
		default:
			// Медленный получатель отключается, чтобы не задерживать остальных.
			c := client
			goroutine.SafeGo(func() {
				c.Close()
			})
		}
	}
}
