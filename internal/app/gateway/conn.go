package gateway

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sehra/internal/app/user"
	"sehra/internal/pkg/errs"
	"sehra/internal/pkg/logx"
	"sehra/internal/pkg/randx"
)

const (
	// timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency of server Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a client frame.
	maxMessageSize = 8192

	// sendQueueSize is the per-connection outbound buffer.
	sendQueueSize = 256
)

// Conn represents one live transport session. A connection starts
// unauthenticated; Authenticate binds it to a directory user and re-binding
// is allowed (account switch within the same tab).
type Conn struct {
	id        string
	sock      *websocket.Conn // nil for transport-less test connections
	send      chan []byte
	createdAt time.Time
	logger    zerolog.Logger

	// mu guards the identity fields and the closed flag. push holds the read
	// lock across its channel send so close can never race it.
	mu     sync.RWMutex
	usr    user.User
	authed bool
	closed bool
}

func newConn(sock *websocket.Conn) *Conn {
	id := randx.ConnectionID()

	return &Conn{
		id:        id,
		sock:      sock,
		send:      make(chan []byte, sendQueueSize),
		createdAt: time.Now(),
		logger:    logx.Logger().With().Str("conn_id", id).Logger(),
	}
}

// ID returns the connection's unique id.
func (c *Conn) ID() string {
	return c.id
}

// Identity returns the bound user and whether the connection is authenticated.
func (c *Conn) Identity() (user.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usr, c.authed
}

// bind records the connection's identity. Only registry.bind calls it, with
// the registry lock held, so the per-user index never disagrees with the
// connection's own state.
func (c *Conn) bind(u user.User) {
	c.mu.Lock()
	c.usr = u
	c.authed = true
	c.mu.Unlock()
}

// close marks the connection dead and releases its send queue. Idempotent;
// once it returns, push refuses instead of sending.
func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// push marshals an event and queues it for delivery. A full queue drops the
// event rather than blocking the caller, and a closed connection refuses it:
// fan-out callers may hold a snapshot taken before the recipient went away.
func (c *Conn) push(ev Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error().Err(err).Str("event", ev.Event).Msg("Error marshaling event for client")
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return fmt.Errorf("connection closed")
	}

	select {
	case c.send <- frame:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Str("event", ev.Event).Msg("Send queue full, dropping event")
		return fmt.Errorf("connection send queue full")
	}
}

// pushError sends a generic error event carrying the user-facing message.
func (c *Conn) pushError(cerr *errs.CustomError) {
	if cerr == nil {
		cerr = errs.NewError(errs.ErrUnknown)
	}
	_ = c.push(Event{Event: EventError, Payload: cerr.Message})
}

// ReadPump reads frames from the socket, decodes them at the boundary and
// hands the typed events to the gateway. It owns connection cleanup: when
// the loop exits the connection is closed and removed from the registry.
func (c *Conn) ReadPump(g *Gateway) {
	defer func() {
		g.Close(c)

		if err := c.sock.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error")
		}
	}()

	c.sock.SetReadLimit(maxMessageSize)

	if err := c.sock.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Unexpected close while reading")
			}
			break
		}

		inbound, cerr := DecodeInbound(frame)
		if cerr != nil {
			c.logger.Warn().Int("code", cerr.Code).Msg("Client sent invalid frame")
			c.pushError(cerr)
			continue
		}

		g.Dispatch(c, inbound)
	}
}

// WritePump drains the send queue onto the socket and keeps the heartbeat
// alive with periodic pings.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.sock.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.sock.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				// Send queue closed by the registry; say goodbye.
				if err := c.sock.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.sock.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Error().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.sock.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Error().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
