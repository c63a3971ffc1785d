package ws

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Conn описывает часть *websocket.Conn, которой пользуется клиент.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	ID    string
	Scope string
	Send  chan []byte

	hub  *Hub
	conn Conn
}

func (h *Hub) NewClient(scope string, conn Conn) *Client {
	return &Client{
		ID:    uuid.New().String(),
		Scope: scope,
		Send:  make(chan []byte, h.sendBuffer),
		hub:   h,
		conn:  conn,
	}
}

// readPump читает входящие сообщения только чтобы заметить разрыв соединения.
// Содержимое сообщений клиента игнорируется.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Err(err).Str("client_id", c.ID).Msg("соединение прервано")
			}
			return
		}
	}
}

// writePump отправляет сообщения из канала Send. Каждая запись ограничена writeWait;
// при ошибке соединение закрывается, и readPump отписывает клиента.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
			if !ok {
				// Хаб закрыл канал.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.log.Warn().Err(err).Str("client_id", c.ID).Msg("не удалось отправить сообщение клиенту")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect переводит соединение на WebSocket и подписывает клиента.
// Ошибка рукопожатия возвращается вызывающему; ответ клиенту уже записан апгрейдером.
func (h *Hub) Connect(w http.ResponseWriter, r *http.Request, scope string) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket upgrade: %w", err)
	}

	client := h.NewClient(scope, conn)
	if err := h.Subscribe(client); err != nil {
		conn.Close()
		return nil, err
	}

	go client.writePump()
	return client, nil
}

func (h *Hub) serve(c *gin.Context, scope string) {
	client, err := h.Connect(c.Writer, c.Request, scope)
	if err != nil {
		h.log.Warn().Err(err).Str("scope", scope).Msg("не удалось установить WebSocket-соединение")
		c.Abort()
		return
	}
	client.readPump()
}

// AdminWebSocketHandler открывает канал обновлений для панели администратора.
// URL: /ws/admin
func (h *Hub) AdminWebSocketHandler(c *gin.Context) {
	h.serve(c, ScopeAdmin)
}

// PatientWebSocketHandler открывает канал обновлений для пациента с заданным кодом.
// URL: /ws/patient/{code}
func (h *Hub) PatientWebSocketHandler(c *gin.Context) {
	h.serve(c, PatientScope(c.Param("code")))
}
