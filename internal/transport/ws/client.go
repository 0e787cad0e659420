package ws

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uuid.UUID

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufSize),
		done:   make(chan struct{}),
	}
}

// ReadPump reads messages from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Debug().Stringer("user_id", c.userID).Msg("ws client closed connection")
			} else {
				log.Debug().Err(err).Stringer("user_id", c.userID).Msg("ws read error")
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Debug().Err(err).Stringer("user_id", c.userID).Msg("ws write error")
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Debug().Err(err).Stringer("user_id", c.userID).Msg("ws ping error")
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent processes a client→server event. Clients only send pings;
// match and request traffic goes through the HTTP API.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypePing:
		evt, err := NewEvent(EventTypePong, nil)
		if err != nil {
			return
		}
		c.hub.SendToUser(c.userID, evt)
	default:
		evt, err := NewEvent(EventTypeError, ErrorPayload{
			Code:    "UNKNOWN_EVENT",
			Message: "Unknown event type: " + event.Type,
		})
		if err != nil {
			return
		}
		c.hub.SendToUser(c.userID, evt)
	}
}
