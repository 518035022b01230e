// Package web serves matches over WebSocket. Each connection gets its own
// session; snapshots go out as JSON at the client frame rate and input
// events come back as JSON.
package web

import (
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/miniapp-factory/square-invasion/internal/engine"
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/loop/server"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1 << 10
)

// Message types on the wire.
const (
	TypeState    = "state"
	TypeInput    = "input"
	TypeEnded    = "ended"
	TypeShutdown = "shutdown"
)

// StateMessage carries one snapshot to the browser.
type StateMessage struct {
	Type     string           `json:"type"`
	Snapshot *engine.Snapshot `json:"snapshot"`
}

// EventMessage tells the browser a match ended or the server is going away.
type EventMessage struct {
	Type  string       `json:"type"`
	Phase engine.Phase `json:"phase,omitempty"`
	Hits  int          `json:"hits"`
}

// InputMessage is what the browser sends, e.g. {"type":"input","event":"fire"}.
type InputMessage struct {
	Type  string `json:"type"`
	Event string `json:"event"`
}

// Host is the part of the session server the handler needs.
type Host interface {
	server.GameServer
	Count() int
	Metrics() *server.Metrics
}

// Handler upgrades connections and serves the metrics endpoints.
type Handler struct {
	host      Host
	log       *zap.SugaredLogger
	upgrader  websocket.Upgrader
	frameTime time.Duration
}

// NewHandler creates a handler for the given host.
func NewHandler(host Host, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		host: host,
		log:  log.Sugar(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The page is served from the same binary; any origin may play.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		frameTime: config.ClientTargetFrameTime,
	}
}

// Routes mounts /ws, /metrics and /healthz on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/metrics", h.ServeMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ServeWS opens a session for the connection: /ws?player=alice
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	username := trimName(r.URL.Query().Get("player"))

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := h.host.Open(username)
	c := &conn{
		ws:      ws,
		session: sess,
		log:     h.log.With("session", sess.ID),
		done:    make(chan struct{}),
	}
	go func() {
		c.writePump(h.frameTime)
		h.host.Close(sess.ID)
	}()
	go c.readPump()
}

// ServeMetrics reports server counters and the leaderboard.
func (h *Handler) ServeMetrics(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"sessions":   h.host.Count(),
		"metrics":    h.host.Metrics().Snapshot(),
		"top_scores": h.host.TopScores(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func trimName(name string) string {
	if utf8.RuneCountInString(name) <= config.MaxUsernameLength {
		return name
	}
	return string([]rune(name)[:config.MaxUsernameLength])
}

// conn pumps one websocket. readPump is the only reader and writePump the
// only writer.
type conn struct {
	ws      *websocket.Conn
	session *server.Session
	log     *zap.SugaredLogger
	done    chan struct{} // Closed when the read side is gone
}

// readPump turns input messages into session events until the peer leaves.
func (c *conn) readPump() {
	defer close(c.done)
	defer c.ws.Close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Infow("websocket read failed", "error", err)
			}
			return
		}

		var msg InputMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.log.Debugw("ignoring malformed message", "error", err)
			continue
		}
		if msg.Type != TypeInput {
			c.log.Debugw("ignoring message", "type", msg.Type)
			continue
		}
		ev, err := engine.ParseEvent(msg.Event)
		if err != nil {
			c.log.Infow("ignoring input", "error", err)
			continue
		}
		c.session.SendInput(ev)
	}
}

// writePump sends a snapshot every frame the state changed, forwards
// session events and keeps the connection alive with pings.
func (c *conn) writePump(frameTime time.Duration) {
	frames := time.NewTicker(frameTime)
	pings := time.NewTicker(pingPeriod)
	defer func() {
		frames.Stop()
		pings.Stop()
		c.ws.Close()
	}()

	var last *engine.Snapshot
	for {
		select {
		case <-c.done:
			return

		case ev, ok := <-c.session.Events():
			if !ok {
				c.closeWith(websocket.CloseNormalClosure, "session closed")
				return
			}
			switch ev.Type {
			case server.EventMatchEnded:
				if err := c.write(EventMessage{Type: TypeEnded, Phase: ev.Phase, Hits: ev.Hits}); err != nil {
					return
				}
			case server.EventServerShutdown:
				_ = c.write(EventMessage{Type: TypeShutdown})
				c.closeWith(websocket.CloseGoingAway, "server shutting down")
				return
			}

		case <-frames.C:
			snap := c.session.Snapshot()
			if snap == last {
				continue
			}
			last = snap
			if err := c.write(StateMessage{Type: TypeState, Snapshot: snap}); err != nil {
				return
			}

		case <-pings.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *conn) write(v any) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(v); err != nil {
		c.log.Debugw("websocket write failed", "error", err)
		return err
	}
	return nil
}

func (c *conn) closeWith(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
