package inspector

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"genstudio/internal/logging"
)

// Handler consumes one frame->host message payload.
type Handler func(payload json.RawMessage)

// Bridge relays the inspector protocol over a websocket connection to the
// preview frame. The frame is a black box: the bridge only encodes
// commands, decodes events, and dispatches them to registered handlers.
type Bridge struct {
	upgrader websocket.Upgrader
	log      logging.Logger

	mu           sync.Mutex
	conn         *websocket.Conn
	handlers     map[string]Handler
	frameVersion string
}

func NewBridge(log logging.Logger) *Bridge {
	return &Bridge{
		upgrader: websocket.Upgrader{
			// The preview frame is served from the sandbox dev server, so
			// its origin never matches the host's.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:      logging.OrNop(log),
		handlers: make(map[string]Handler),
	}
}

// Handle registers the handler for one frame->host message type. Must be
// called before ServeHTTP accepts a connection.
func (b *Bridge) Handle(msgType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[msgType] = h
}

// FrameVersion returns the protocol version the frame reported in its
// ready handshake, or "" before the frame connects.
func (b *Bridge) FrameVersion() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameVersion
}

// ServeHTTP upgrades the request and runs the read loop until the frame
// disconnects. A new connection replaces the previous one; the preview
// frame reconnects on every hot reload.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("inspector upgrade failed: %v", err)
		return
	}

	b.mu.Lock()
	if b.conn != nil {
		b.conn.Close()
	}
	b.conn = conn
	b.mu.Unlock()

	b.log.Info("inspector frame connected")
	b.readLoop(conn)
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	defer func() {
		conn.Close()
		b.mu.Lock()
		if b.conn == conn {
			b.conn = nil
		}
		b.mu.Unlock()
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.log.Warn("inspector read failed: %v", err)
			}
			return
		}
		b.dispatch(env)
	}
}

func (b *Bridge) dispatch(env Envelope) {
	switch env.Type {
	case MsgReady, MsgPong:
		var v VersionPayload
		if err := json.Unmarshal(env.Payload, &v); err == nil {
			b.mu.Lock()
			b.frameVersion = v.Version
			b.mu.Unlock()
		}
	}

	b.mu.Lock()
	h := b.handlers[env.Type]
	b.mu.Unlock()

	if h == nil {
		b.log.Debug("no handler for inspector message %q", env.Type)
		return
	}
	h(env.Payload)
}

// send encodes one host->frame command.
func (b *Bridge) send(msgType string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return fmt.Errorf("inspector: frame not connected")
	}

	env := Envelope{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("inspector: encode %s: %w", msgType, err)
		}
		env.Payload = raw
	}
	if err := b.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("inspector: write %s: %w", msgType, err)
	}
	return nil
}

func (b *Bridge) EnableEditMode() error  { return b.send(MsgEnableEditMode, nil) }
func (b *Bridge) DisableEditMode() error { return b.send(MsgDisableEditMode, nil) }

func (b *Bridge) SelectElement(id string) error {
	return b.send(MsgSelectElement, TargetPayload{ID: id})
}

func (b *Bridge) HighlightElement(id string) error {
	return b.send(MsgHighlightElement, TargetPayload{ID: id})
}

// UpdateStyle pushes an instant style mutation into the frame. This is the
// aggregator's preview callback target.
func (b *Bridge) UpdateStyle(id string, styles map[string]string) error {
	return b.send(MsgUpdateStyle, StylePayload{ID: id, Styles: styles})
}

func (b *Bridge) Ping() error { return b.send(MsgPing, nil) }
