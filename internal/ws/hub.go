package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrHubClosed возвращается при подписке после остановки хаба.
var ErrHubClosed = errors.New("hub is closed")

const (
	ScopeAdmin         = "admin"
	scopePatientPrefix = "patient:"
)

// PatientScope возвращает область подписки пациента с кодом code.
func PatientScope(code string) string {
	return scopePatientPrefix + code
}

// Hub хранит подписчиков, сгруппированных по области (admin или patient:<code>).
// Все изменения множества подписчиков и рассылки выполняются в одном цикле Run.
type Hub struct {
	clients map[string]map[*Client]struct{}

	register   chan membership
	unregister chan membership
	broadcast  chan []byte
	done       chan struct{}

	// mu защищает clients для счётчиков, читаемых вне цикла.
	mu sync.RWMutex

	sendBuffer int
	writeWait  time.Duration
	log        zerolog.Logger
}

// NewHub создаёт хаб. sendBuffer ограничивает число неотправленных сообщений клиента,
// writeWait ограничивает одну запись в сокет.
func NewHub(sendBuffer int, writeWait time.Duration, log zerolog.Logger) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	if writeWait <= 0 {
		writeWait = 10 * time.Second
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan membership),
		unregister: make(chan membership),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
		sendBuffer: sendBuffer,
		writeWait:  writeWait,
		log:        log,
	}
}

// Run обрабатывает каналы хаба до отмены ctx. При остановке все клиенты отключаются.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case req := <-h.register:
			client := req.client
			h.mu.Lock()
			if h.clients[client.Scope] == nil {
				h.clients[client.Scope] = make(map[*Client]struct{})
			}
			h.clients[client.Scope][client] = struct{}{}
			h.mu.Unlock()
			close(req.applied)
			h.log.Debug().Str("client_id", client.ID).Str("scope", client.Scope).Msg("клиент подключён")
		case req := <-h.unregister:
			h.mu.Lock()
			h.remove(req.client)
			h.mu.Unlock()
			close(req.applied)
		case message := <-h.broadcast:
			h.fanOut(message)
		case <-ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					h.remove(client)
				}
			}
			h.mu.Unlock()
			close(h.done)
			return
		}
	}
}

// fanOut кладёт сообщение в буфер каждого клиента. Клиент с заполненным буфером
// отключается.
func (h *Hub) fanOut(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, clients := range h.clients {
		for client := range clients {
			select {
			case client.Send <- message:
				delivered++
			default:
				h.log.Warn().Str("client_id", client.ID).Str("scope", client.Scope).Msg("буфер клиента переполнен, отключаем")
				h.remove(client)
			}
		}
	}
	h.log.Debug().Int("delivered", delivered).Msg("рассылка завершена")
}

// remove вызывается под h.mu. Повторное удаление ничего не делает.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.Scope]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.Scope)
	}
	h.log.Debug().Str("client_id", client.ID).Str("scope", client.Scope).Msg("клиент отключён")
}

// membership описывает запрос на изменение подписки. Run закрывает applied после изменения clients.
type membership struct {
	client  *Client
	applied chan struct{}
}

// Subscribe регистрирует клиента и возвращается, когда он уже получает рассылки.
func (h *Hub) Subscribe(client *Client) error {
	req := membership{client: client, applied: make(chan struct{})}
	select {
	case h.register <- req:
	case <-h.done:
		return ErrHubClosed
	}
	<-req.applied
	return nil
}

// Unsubscribe удаляет клиента. Удаление отсутствующего клиента ошибкой не считается.
func (h *Hub) Unsubscribe(client *Client) {
	req := membership{client: client, applied: make(chan struct{})}
	select {
	case h.unregister <- req:
	case <-h.done:
		return
	}
	<-req.applied
}

// Broadcast рассылает сообщение всем подписчикам. Ошибки доставки отдельным клиентам
// наружу не передаются.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// ClientCount возвращает число подключённых клиентов.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

// ScopeCount возвращает число клиентов в области.
func (h *Hub) ScopeCount(scope string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[scope])
}
