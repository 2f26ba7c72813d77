// Package ws serves order rooms over WebSocket.
package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"service-courier-tracking/internal/auth"
	"service-courier-tracking/internal/logx"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 8192
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Config stores connection settings.
type Config struct {
	SendBuffer       int
	AuthTimeout      time.Duration
	OperationTimeout time.Duration
}

// Server upgrades requests and runs one read and one write pump per
// connection.
type Server struct {
	auth      verifier
	rooms     roomService
	locations locationService
	hub       disconnecter
	gauge     connGauge
	cfg       Config
	logger    logx.Logger
}

// NewServer creates a Server. gauge may be nil.
func NewServer(v verifier, rooms roomService, locations locationService, hub disconnecter, gauge connGauge, cfg Config, logger logx.Logger) *Server {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 5 * time.Second
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 3 * time.Second
	}
	if gauge == nil {
		gauge = nopGauge{}
	}
	return &Server{auth: v, rooms: rooms, locations: locations, hub: hub, gauge: gauge, cfg: cfg, logger: logger}
}

type nopGauge struct{}

func (nopGauge) Inc() {}
func (nopGauge) Dec() {}

var errAuthRequired = errors.New("first message must be auth")

// ServeHTTP authenticates and upgrades the connection. A token in the
// request is checked before the upgrade; otherwise the first message must
// carry it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if token := auth.TokenFromRequest(r); token != "" {
		id, err := s.auth.Verify(token)
		if err != nil {
			s.logger.Info("ws auth rejected", logx.Event("ws_auth_failed"), logx.Err(err))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		userID = id
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", logx.Event("ws_upgrade_failed"), logx.Err(err))
		return
	}

	if userID == 0 {
		userID, err = s.authenticate(conn)
		if err != nil {
			s.logger.Info("ws auth rejected", logx.Event("ws_auth_failed"), logx.Err(err))
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteJSON(errorFrame{Type: "error", Request: msgAuth, Code: "unauthorized", Error: "authentication failed"})
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication failed"))
			_ = conn.Close()
			return
		}
	}

	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		srv:    s,
		send:   make(chan []byte, s.cfg.SendBuffer),
	}
	c.logger = s.logger.With(logx.String("conn_id", c.id), logx.Int64("user_id", userID))

	s.gauge.Inc()
	c.logger.Info("ws connected", logx.Event("ws_connected"))
	c.reply(authenticatedFrame{Type: "authenticated", UserID: userID})

	go c.writePump()
	go c.readPump(r.Context())
}

func (s *Server) authenticate(conn *websocket.Conn) (int64, error) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(s.cfg.AuthTimeout))

	var msg inbound
	if err := conn.ReadJSON(&msg); err != nil {
		return 0, err
	}
	if msg.Type != msgAuth {
		return 0, errAuthRequired
	}
	return s.auth.Verify(msg.Token)
}
