package ws

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Vasu1712/scenecast/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// ErrSendBufferFull is returned by Enqueue when the client is not keeping up.
var ErrSendBufferFull = errors.New("send buffer full")

// Handler receives inbound events from a client.
type Handler interface {
	HandleEvent(c *Client, event string, data json.RawMessage)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(c *Client, event string, data json.RawMessage)

func (f HandlerFunc) HandleEvent(c *Client, event string, data json.RawMessage) {
	f(c, event, data)
}

// Client is one websocket connection attached to the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	send chan []byte
	hub  *Hub
	log  *logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:   id,
		Conn: conn,
		send: make(chan []byte, sendBufferSize),
		hub:  hub,
		log:  hub.log.With("client", id),
	}
}

// Enqueue queues a message for this client only. It must be called before
// the client is attached; afterwards the hub owns the send channel.
func (c *Client) Enqueue(event string, payload any) error {
	msg, err := Encode(event, payload)
	if err != nil {
		return err
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// ReadPump decodes inbound envelopes and hands them to h until the connection
// fails, then detaches the client.
func (c *Client) ReadPump(h Handler) {
	defer func() {
		c.hub.Detach(c)
		c.Conn.Close()
		c.log.Debug("read pump closed")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read error", "error", err)
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil || env.Event == "" {
			c.log.Debug("ignoring malformed frame", "size", len(message))
			continue
		}
		h.HandleEvent(c, env.Event, env.Data)
	}
}

// WritePump drains the send channel onto the connection and keeps it alive
// with pings. It returns when the hub closes the channel or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.log.Debug("write pump closed")
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("websocket write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
