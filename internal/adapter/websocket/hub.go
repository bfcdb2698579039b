package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/service/notification"
)

// NotificationHub pushes stored notifications to connected clients the
// moment they are published, so screen-reader users hear about them
// without polling. Messages addressed to a user reach only that
// user's connections.
type NotificationHub struct {
	clients    map[*hubClient]bool
	register   chan *hubClient
	unregister chan *hubClient
	outbound   chan hubMessage
	logger     *zap.Logger

	mu sync.RWMutex
}

type hubClient struct {
	hub    *NotificationHub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

type hubMessage struct {
	userID  string
	payload []byte
}

func NewNotificationHub(logger *zap.Logger) *NotificationHub {
	return &NotificationHub{
		clients:    make(map[*hubClient]bool),
		register:   make(chan *hubClient),
		unregister: make(chan *hubClient),
		outbound:   make(chan hubMessage, 64),
		logger:     logger,
	}
}

// Listen subscribes the hub to the notification stream. Call once
// before Run.
func (h *NotificationHub) Listen(mq queue.MessageQueue) error {
	return mq.Subscribe(notification.SubjectCreated, func(data []byte) error {
		var n domain.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			h.logger.Warn("Unparseable notification event", zap.Error(err))
			return nil
		}
		h.outbound <- hubMessage{userID: n.UserID, payload: data}
		return nil
	})
}

func (h *NotificationHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case message := <-h.outbound:
			h.mu.Lock()
			for client := range h.clients {
				if message.userID != "" && client.userID != message.userID {
					continue
				}
				select {
				case client.send <- message.payload:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// AddClient attaches a connection and blocks until it drops.
func (h *NotificationHub) AddClient(conn *websocket.Conn, userID string) {
	client := &hubClient{hub: h, conn: conn, send: make(chan []byte, 256), userID: userID}
	client.hub.register <- client

	go client.writePump()
	client.readPump()
}

func (c *hubClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Clients only receive on this socket; the read loop exists to
		// notice disconnects and answer control frames.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

// SetupNotificationRoutes mounts the push socket behind an upgrade
// guard, mirroring the voice stream route.
func SetupNotificationRoutes(app *fiber.App, hub *NotificationHub) {
	app.Use("/ws/updates", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/updates", websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(string)
		if userID == "" {
			conn.Close()
			return
		}
		hub.AddClient(conn, userID)
	}))
}

func (c *hubClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
