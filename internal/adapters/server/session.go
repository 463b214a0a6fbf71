package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/metrics"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// Client actions
const (
	ActionNew    = "new"
	ActionLoad   = "load"
	ActionPlace  = "place"
	ActionClear  = "clear"
	ActionSite   = "site"
	ActionBody   = "body"
	ActionRename = "rename"
	ActionStats  = "stats"
	ActionExport = "export"
)

// Server message types
const (
	MessageWelcome         = "welcome"
	MessageSummary         = "summary"
	MessageHabitat         = "habitat"
	MessageError           = "error"
	MessageCatalogReloaded = "catalog_reloaded"
)

// ClientMessage is one action sent by a session client
type ClientMessage struct {
	Type     string          `json:"type"`
	Core     string          `json:"core,omitempty"`
	Body     string          `json:"body,omitempty"`
	Name     string          `json:"name,omitempty"`
	Cell     string          `json:"cell,omitempty"`
	Module   string          `json:"module,omitempty"`
	Resource string          `json:"resource,omitempty"`
	Amount   float64         `json:"amount,omitempty"`
	Habitat  json.RawMessage `json:"habitat,omitempty"`
}

// ServerMessage is pushed to session clients
type ServerMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	Action  string           `json:"action,omitempty"`
	Habitat json.RawMessage  `json:"habitat,omitempty"`
	Summary *habitat.Summary `json:"summary,omitempty"`
	Report  *display.Report  `json:"report,omitempty"`
	Error   string           `json:"error,omitempty"`
	Modules int              `json:"modules,omitempty"`
}

// Session is one websocket client editing its own habitat. Actions are
// applied in arrival order; a rejected action leaves the state unchanged.
type Session struct {
	id       string
	conn     *websocket.Conn
	mediator mediator.Mediator
	state    habitat.HabitatState

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newSession(conn *websocket.Conn, m mediator.Mediator) *Session {
	return &Session{
		id:       uuid.NewString(),
		conn:     conn,
		mediator: m,
		send:     make(chan []byte, sendBuffer),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// enqueue queues data without blocking; false means the session is closed
// or its queue is full
func (s *Session) enqueue(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

func (s *Session) closeSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

func (s *Server) upgrader() websocket.Upgrader {
	u := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	origins := s.app.Config.Server.AllowedOrigins
	if len(origins) > 0 {
		u.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, o := range origins {
				if o == "*" || o == origin {
					return true
				}
			}
			return false
		}
	}
	return u
}

func (s *Server) serveWS(c *gin.Context) {
	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.app.Logger.Log("WARNING", "Websocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	session := newSession(conn, s.app.Mediator)
	if !s.hub.Register(session) {
		conn.Close()
		return
	}

	go session.writePump()
	session.reply(ServerMessage{Type: MessageWelcome, Session: session.id})

	ctx := common.WithLogger(context.Background(), &taggedLogger{
		base: s.app.Logger,
		tags: map[string]interface{}{"session": session.id},
	})
	session.readPump(ctx, s.hub, s.app.APIMetrics)
}

// readPump applies client actions one at a time until the connection drops
func (s *Session) readPump(ctx context.Context, hub *Hub, collector *metrics.APIMetricsCollector) {
	defer func() {
		hub.Unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if isDecodeError(err) {
				s.reply(ServerMessage{Type: MessageError, Error: fmt.Sprintf("malformed message: %v", err)})
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				common.LoggerFromContext(ctx).Log("DEBUG", "Session read failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return
		}

		reply := s.handle(ctx, msg)
		if collector != nil {
			collector.RecordSessionMessage(msg.Type, reply.Type != MessageError)
		}
		s.reply(reply)
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// writePump drains the outbound queue and keeps the connection alive
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) reply(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		data, _ = json.Marshal(ServerMessage{Type: MessageError, Action: msg.Action, Error: err.Error()})
	}
	s.enqueue(data)
}

// handle applies one action to the session state
func (s *Session) handle(ctx context.Context, msg ClientMessage) ServerMessage {
	if msg.Type == ActionExport || msg.Type == ActionStats {
		return s.render(ctx, msg.Type, s.state)
	}

	var req mediator.Request
	switch msg.Type {
	case ActionNew:
		req = &commands.NewHabitatCommand{Core: msg.Core, Body: habitat.SolarBody(msg.Body), Name: msg.Name}
	case ActionLoad:
		req = &commands.ImportHabitatCommand{Data: msg.Habitat}
	case ActionPlace:
		req = &commands.PlaceModuleCommand{State: s.state, Cell: msg.Cell, Module: msg.Module}
	case ActionClear:
		req = &commands.ClearCellCommand{State: s.state, Cell: msg.Cell}
	case ActionSite:
		req = &commands.SetSiteCommand{State: s.state, Resource: habitat.Resource(msg.Resource), Amount: msg.Amount}
	case ActionBody:
		req = &commands.SetBodyCommand{State: s.state, Body: habitat.SolarBody(msg.Body)}
	case ActionRename:
		req = &commands.RenameHabitatCommand{State: s.state, Name: msg.Name}
	default:
		return ServerMessage{Type: MessageError, Action: msg.Type, Error: fmt.Sprintf("unknown action %q", msg.Type)}
	}

	resp, err := s.mediator.Send(ctx, req)
	if err != nil {
		return ServerMessage{Type: MessageError, Action: msg.Type, Error: err.Error()}
	}
	next := resp.(*commands.HabitatResponse).State
	out := s.render(ctx, msg.Type, next)
	if out.Type != MessageError {
		s.state = next
	}
	return out
}

func (s *Session) render(ctx context.Context, action string, state habitat.HabitatState) ServerMessage {
	exported, err := s.mediator.Send(ctx, &commands.ExportHabitatCommand{State: state})
	if err != nil {
		return ServerMessage{Type: MessageError, Action: action, Error: err.Error()}
	}
	data := exported.(*commands.ExportHabitatResponse).Data
	if action == ActionExport {
		return ServerMessage{Type: MessageHabitat, Action: action, Habitat: data}
	}

	stats, err := s.mediator.Send(ctx, &queries.ComputeStatsQuery{State: state})
	if err != nil {
		return ServerMessage{Type: MessageError, Action: action, Error: err.Error()}
	}
	result := stats.(*queries.ComputeStatsResponse)
	return ServerMessage{
		Type:    MessageSummary,
		Action:  action,
		Habitat: data,
		Summary: result.Summary,
		Report:  &result.Report,
	}
}
