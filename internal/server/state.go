package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/janpfeifer/GoSet/internal/config"
	"github.com/janpfeifer/GoSet/internal/game"
	"k8s.io/klog/v2"
)

// PingInterval is how often the server pings connected clients.
var PingInterval = 30 * time.Second

// writeTimeout bounds how long a single message write may take.
const writeTimeout = 5 * time.Second

// ErrTooManySessions is returned when a new game is requested but the server is full.
var ErrTooManySessions = errors.New("too many games in progress, try again later")

// ServerState holds all games in progress.
type ServerState struct {
	// Address the server is listening on, set once it started.
	Address string

	config *config.ServerConfig
	now    func() time.Time

	mu       sync.RWMutex
	Sessions map[string]*Session
}

// NewServerState creates an empty server state.
func NewServerState(cfg *config.ServerConfig) *ServerState {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ServerState{
		config:   cfg,
		now:      time.Now,
		Sessions: make(map[string]*Session),
	}
}

// NewSession starts a new game of the given variant.
func (s *ServerState) NewSession(variant game.Variant) (*Session, error) {
	// Deal outside the lock: it is the expensive part.
	deck := variant.Start()
	now := s.now()
	session := &Session{
		ID:         uuid.NewString(),
		Variant:    variant,
		deck:       deck,
		startedAt:  now,
		lastActive: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sessions) >= s.config.MaxSessions {
		return nil, ErrTooManySessions
	}
	s.Sessions[session.ID] = session
	klog.Infof("Session %s: new %s game, %d games in progress", session.ID, variant.Name(), len(s.Sessions))
	return session, nil
}

// Session returns the game with the given ID, or nil if it doesn't exist (or expired).
func (s *ServerState) Session(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Sessions[id]
}

// expireSessions periodically discards sessions idle for longer than the configured TTL,
// until ctx is canceled.
func (s *ServerState) expireSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeIdle(s.now())
		}
	}
}

// removeIdle discards sessions idle since before now - TTL. It returns the number removed.
func (s *ServerState) removeIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.Sessions {
		if now.Sub(session.LastActive()) > s.config.SessionTTL {
			delete(s.Sessions, id)
			removed++
			klog.V(1).Infof("Session %s: expired", id)
		}
	}
	if removed > 0 {
		klog.Infof("Expired %d idle games, %d games in progress", removed, len(s.Sessions))
	}
	return removed
}

// connection is the state of one websocket client.
type connection struct {
	server  *ServerState
	conn    *websocket.Conn
	session *Session
}

// HandleWS upgrades the request to a websocket and serves game messages until the client disconnects.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: failed to accept websocket: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	c := &connection{server: s, conn: conn}
	go c.pingLoop(ctx)

	klog.V(1).Infof("HandleWS: client %s connected", r.RemoteAddr)
	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				klog.V(1).Infof("HandleWS: client %s disconnected", r.RemoteAddr)
			} else {
				klog.Warningf("HandleWS: client %s read error: %v", r.RemoteAddr, err)
			}
			return
		}
		if err := c.handleMessage(ctx, msg); err != nil {
			klog.Warningf("HandleWS: client %s: failed to handle %q message: %v", r.RemoteAddr, msg.Type, err)
			return
		}
	}
}

func (c *connection) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.send(ctx, game.MsgTypePing, game.PingMessage{ServerTime: time.Now().UnixNano()}); err != nil {
				klog.V(1).Infof("pingLoop: %v", err)
				return
			}
		}
	}
}

// send writes one message to the client.
func (c *connection) send(ctx context.Context, msgType game.MessageType, payload any) error {
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return fmt.Errorf("failed to send %q message: %w", msgType, err)
	}
	return nil
}

// sendError reports a problem with the client's request. It doesn't end the connection.
func (c *connection) sendError(ctx context.Context, message string) error {
	return c.send(ctx, game.MsgTypeError, game.ErrorMessage{Message: message})
}

func (c *connection) sendState(ctx context.Context) error {
	return c.send(ctx, game.MsgTypeState, game.StateMessage{Game: c.session.View(c.server.now())})
}

// handleMessage processes one client message. Errors returned are transport errors,
// problems with the request itself are reported to the client.
func (c *connection) handleMessage(ctx context.Context, msg game.WsMessage) error {
	p, err := msg.Parse()
	if err != nil {
		return c.sendError(ctx, fmt.Sprintf("invalid message: %v", err))
	}

	switch m := p.(type) {
	case *game.NewMessage:
		variant := m.Variant
		if len(msg.Payload) == 0 {
			variant = c.server.config.DefaultVariant()
		}
		session, err := c.server.NewSession(variant)
		if err != nil {
			return c.sendError(ctx, err.Error())
		}
		c.session = session
		return c.sendState(ctx)

	case *game.JoinMessage:
		session := c.server.Session(m.GameID)
		if session == nil {
			return c.sendError(ctx, fmt.Sprintf("game %q not found", m.GameID))
		}
		c.session = session
		return c.sendState(ctx)

	case *game.PongMessage:
		klog.V(2).Infof("pong: round trip %s", time.Duration(time.Now().UnixNano()-m.ServerTime))
		return nil
	}

	if c.session == nil {
		return c.sendError(ctx, "no game in progress, start a new game first")
	}
	now := c.server.now()
	switch m := p.(type) {
	case *game.SelectMessage:
		result, complete := c.session.Select(m.Index, now)
		if complete {
			if err := c.send(ctx, game.MsgTypeResult, result); err != nil {
				return err
			}
		}
		return c.sendState(ctx)

	case *game.PlayMessage:
		result, err := c.session.Play(now)
		if err != nil {
			return c.sendError(ctx, err.Error())
		}
		if err := c.send(ctx, game.MsgTypeResult, result); err != nil {
			return err
		}
		return c.sendState(ctx)

	case *game.HintMessage:
		indices := c.session.Hint(now)
		return c.send(ctx, game.MsgTypeHint, game.HintMessage{Indices: indices})
	}
	return c.sendError(ctx, fmt.Sprintf("unexpected message type %q", msg.Type))
}
