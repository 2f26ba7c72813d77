package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/realtime"
)

// client is one authenticated connection. Its send channel is the FIFO
// queue of outgoing frames; room events and replies share it.
type client struct {
	id     string
	userID int64
	conn   *websocket.Conn
	srv    *Server
	logger logx.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

var _ realtime.Subscriber = (*client)(nil)

func (c *client) ID() string { return c.id }

// Send queues a room event without blocking.
func (c *client) Send(ev realtime.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.enqueue(raw)
}

func (c *client) enqueue(raw []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return realtime.ErrSubscriberClosed
	}
	select {
	case c.send <- raw:
		return nil
	default:
		return realtime.ErrSubscriberFull
	}
}

func (c *client) reply(v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.enqueue(raw); err != nil {
		c.logger.Warn("reply dropped", logx.Event("ws_reply_dropped"), logx.Err(err))
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump handles client messages one at a time, so a connection's
// actions are applied in the order they were sent.
func (c *client) readPump(base context.Context) {
	defer func() {
		rooms := c.srv.hub.Disconnect(c.id)
		c.close()
		_ = c.conn.Close()
		c.srv.gauge.Dec()
		c.logger.Info("ws disconnected", logx.Event("ws_disconnected"), logx.Int("rooms", rooms))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws read failed", logx.Event("ws_read_error"), logx.Err(err))
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(errorFrame{Type: "error", Code: "invalid", Error: "malformed message"})
			continue
		}
		c.handle(base, msg)
	}
}

// handle runs on a context detached from the socket so a write that
// started is not cut short by a disconnect.
func (c *client) handle(base context.Context, msg inbound) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(base), c.srv.cfg.OperationTimeout)
	defer cancel()

	var err error
	switch msg.Type {
	case msgJoin:
		err = c.srv.rooms.JoinRoom(ctx, c.userID, msg.OrderID, c)
	case msgLeave:
		c.srv.rooms.LeaveRoom(msg.OrderID, c.id)
	case msgLocation:
		err = c.location(ctx, msg)
	case msgStatus:
		_, err = c.srv.rooms.UpdateStatus(ctx, c.userID, msg.OrderID, domain.OrderStatus(msg.Status))
	case msgAuth:
		err = apperr.ErrConflict
	default:
		err = apperr.ErrInvalid
	}

	if err != nil {
		c.logger.Debug("ws request rejected",
			logx.Event("ws_request_rejected"),
			logx.String("request", msg.Type),
			logx.Int64("order_id", msg.OrderID),
			logx.Err(err),
		)
		c.reply(newError(msg.Type, err))
		return
	}
	c.reply(newAck(msg.Type, msg.OrderID))
}

func (c *client) location(ctx context.Context, msg inbound) error {
	if msg.Lat == nil || msg.Lng == nil {
		return apperr.ErrInvalid
	}
	p := geo.Point{Lat: *msg.Lat, Lng: *msg.Lng}
	if msg.OrderID == 0 {
		return c.srv.locations.UpdateCourierLocation(ctx, c.userID, p)
	}
	return c.srv.locations.UpdateLocationForOrder(ctx, msg.OrderID, c.userID, p)
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
