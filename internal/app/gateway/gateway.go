package gateway

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sehra/internal/app/message"
	"sehra/internal/app/user"
	"sehra/internal/pkg/auth/jwt"
	"sehra/internal/pkg/errs"
	"sehra/internal/pkg/logx"
)

// storeTimeout bounds every persistence call made on behalf of a connection.
const storeTimeout = 5 * time.Second

// UserDirectory is the read-only identity source the gateway authenticates
// against. It is owned by the surrounding application.
type UserDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (user.User, error)
	FindUserByID(ctx context.Context, id int64) (user.User, error)
}

// MessageStore is the durable message persistence consumed by the relay and
// the read-state tracker.
type MessageStore interface {
	InsertMessage(ctx context.Context, senderID, recipientID int64, body string, msgType message.Type) (message.Message, error)
	MarkMessagesRead(ctx context.Context, senderID, recipientID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// Gateway owns the live connection set and dispatches the realtime protocol:
// authenticate, send_message, mark_messages_read and supervisor_allocated.
// It is an explicit object constructed with its collaborators; tests run it
// with fakes and transport-less connections.
type Gateway struct {
	dir       UserDirectory
	store     MessageStore
	jwtSecret string
	reg       *registry
	logger    zerolog.Logger
}

// New constructs a Gateway over the given directory and store. jwtSecret
// verifies the optional token of an identity claim.
func New(dir UserDirectory, store MessageStore, jwtSecret string) *Gateway {
	return &Gateway{
		dir:       dir,
		store:     store,
		jwtSecret: jwtSecret,
		reg:       newRegistry(),
		logger:    logx.Logger().With().Str("component", "gateway").Logger(),
	}
}

// Accept registers a new unauthenticated connection for the given socket.
// The caller starts the pumps.
func (g *Gateway) Accept(sock *websocket.Conn) *Conn {
	c := newConn(sock)
	g.reg.add(c)

	g.logger.Debug().Str("conn_id", c.id).Msg("Connection accepted")
	return c
}

// Close removes the connection from all indices and releases its send
// queue. Closing an already-closed connection is a no-op; in-flight fan-out
// holding an older snapshot gets a refusal from push, not a panic.
func (g *Gateway) Close(c *Conn) {
	if g.reg.remove(c) {
		c.close()
		g.logger.Debug().
			Str("conn_id", c.id).
			Dur("session", time.Since(c.createdAt)).
			Msg("Connection closed")
	}
}

// Shutdown closes every live connection.
func (g *Gateway) Shutdown() {
	for _, c := range g.reg.all() {
		g.Close(c)
	}
	g.logger.Info().Msg("Gateway shutdown complete")
}

// Dispatch routes a decoded inbound event to its handler.
func (g *Gateway) Dispatch(c *Conn, in Inbound) {
	switch {
	case in.Authenticate != nil:
		g.Authenticate(c, *in.Authenticate)
	case in.Send != nil:
		g.SendMessage(c, *in.Send)
	case in.MarkRead != nil:
		g.MarkMessagesRead(c, *in.MarkRead)
	case in.Allocation != nil:
		g.AllocateSupervisor(c, *in.Allocation)
	default:
		c.pushError(errs.NewError(errs.ErrInvalidParams))
	}
}

// Authenticate resolves an identity claim against the directory and binds
// the connection to the resulting user. Re-authentication rebinds; failure
// leaves the connection unauthenticated and usable for retry.
func (g *Gateway) Authenticate(c *Conn, claim IdentityClaim) {
	if claim.Email == "" {
		_ = c.push(Event{Event: EventAuthenticationError, Payload: "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	u, err := g.dir.FindUserByEmail(ctx, claim.Email)
	if err != nil {
		g.logger.Warn().Str("email", claim.Email).Err(err).Msg("Authentication failed: user lookup")
		_ = c.push(Event{Event: EventAuthenticationError, Payload: errs.NewError(errs.ErrAuthenticationFailed).Message})
		return
	}

	if claim.Token != "" {
		payload, err := jwt.ParseToken(claim.Token, g.jwtSecret)
		if err != nil || payload.UserID != u.ID {
			g.logger.Warn().Str("email", claim.Email).Msg("Authentication failed: token mismatch")
			_ = c.push(Event{Event: EventAuthenticationError, Payload: "Invalid session token"})
			return
		}
	}

	g.reg.bind(c, u)

	g.logger.Info().
		Str("conn_id", c.id).
		Int64("user_id", u.ID).
		Str("role", string(u.Role)).
		Msg("Connection authenticated")

	_ = c.push(Event{Event: EventAuthenticated, Payload: AuthResultPayload{
		Success: true,
		UserID:  u.ID,
		Role:    u.Role,
	}})

	// Convenience push, not a delivery guarantee. The session stays bound
	// either way, but the client hears about a missing badge.
	count, err := g.store.CountUnread(ctx, u.ID)
	if err != nil {
		g.logger.Error().Err(err).Int64("user_id", u.ID).Msg("Failed to count unread messages")
		c.pushError(errs.NewError(errs.ErrUnknown, err))
		return
	}
	_ = c.push(Event{Event: EventUnreadCount, Payload: UnreadCountPayload{Count: count}})
}

// SendMessage persists the message and fans it out to every live connection
// of the recipient. The durable write happens regardless of the recipient
// being online; a store failure is surfaced to the sender and skips fan-out.
func (g *Gateway) SendMessage(c *Conn, p SendMessagePayload) {
	sender, ok := c.Identity()
	if !ok {
		c.pushError(errs.NewError(errs.ErrNotAuthenticated))
		return
	}

	if p.Message == "" || p.ToUserID <= 0 {
		c.pushError(errs.NewError(errs.ErrInvalidParams))
		return
	}
	if len(p.Message) > message.MaxBodyBytes {
		c.pushError(errs.NewError(errs.ErrMessageContentTooLong))
		return
	}

	msgType := p.Type
	if msgType == "" {
		msgType = message.TypeText
	}
	if !msgType.Valid() {
		c.pushError(errs.NewError(errs.ErrMessageTypeInvalid))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := g.dir.FindUserByID(ctx, p.ToUserID); err != nil {
		g.logger.Warn().
			Int64("sender_id", sender.ID).
			Int64("recipient_id", p.ToUserID).
			Msg("Message rejected: recipient not in directory")
		c.pushError(errs.NewError(errs.ErrRecipientNotFound))
		return
	}

	msg, err := g.store.InsertMessage(ctx, sender.ID, p.ToUserID, p.Message, msgType)
	if err != nil {
		g.logger.Error().Err(err).
			Int64("sender_id", sender.ID).
			Int64("recipient_id", p.ToUserID).
			Msg("Message persist failed")
		c.pushError(errs.NewError(errs.ErrMessagePersistFailed))
		return
	}

	for _, rc := range g.reg.connsFor(p.ToUserID) {
		_ = rc.push(Event{Event: EventReceiveMessage, Payload: msg})
	}

	_ = c.push(Event{Event: EventMessageSent, Payload: MessageSentPayload{
		Success:   true,
		MessageID: msg.ID,
	}})
}

// MarkMessagesRead flips all unread messages from the given sender to the
// reader and pushes a read receipt to the sender's live connections. The
// bulk update is idempotent; repeated calls still acknowledge.
func (g *Gateway) MarkMessagesRead(c *Conn, p MarkReadPayload) {
	reader, ok := c.Identity()
	if !ok {
		c.pushError(errs.NewError(errs.ErrNotAuthenticated))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := g.store.MarkMessagesRead(ctx, p.FromUserID, reader.ID); err != nil {
		g.logger.Error().Err(err).
			Int64("from_user_id", p.FromUserID).
			Int64("reader_id", reader.ID).
			Msg("Mark read failed")
		c.pushError(errs.NewError(errs.ErrUnknown, err))
		return
	}

	_ = c.push(Event{Event: EventMessagesMarkedRead, Payload: MarkedReadPayload{Success: true}})

	for _, sc := range g.reg.connsFor(p.FromUserID) {
		_ = sc.push(Event{Event: EventMessageStatusUpdate, Payload: StatusUpdatePayload{
			ToUserID: reader.ID,
			Read:     true,
		}})
	}
}

// AllocateSupervisor relays an administrative supervisor↔client pairing to
// both parties' live connections. Admin role required. Presence events are
// ephemeral: a party with no live connection simply misses the push.
func (g *Gateway) AllocateSupervisor(c *Conn, p AllocationPayload) {
	admin, ok := c.Identity()
	if !ok {
		c.pushError(errs.NewError(errs.ErrNotAuthenticated))
		return
	}
	if admin.Role != user.RoleAdmin {
		g.logger.Warn().
			Int64("user_id", admin.ID).
			Str("role", string(admin.Role)).
			Msg("Supervisor allocation rejected: not an admin")
		c.pushError(errs.NewError(errs.ErrAllocationForbidden))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	client, err := g.dir.FindUserByID(ctx, p.ClientID)
	if err != nil {
		c.pushError(errs.NewError(errs.ErrAllocationPartyNotFound))
		return
	}
	supervisor, err := g.dir.FindUserByID(ctx, p.SupervisorID)
	if err != nil {
		c.pushError(errs.NewError(errs.ErrAllocationPartyNotFound))
		return
	}

	for _, cc := range g.reg.connsFor(client.ID) {
		_ = cc.push(Event{Event: EventSupervisorAssigned, Payload: SupervisorAssignedPayload{
			SupervisorID: supervisor.ID,
			Name:         supervisor.Name,
			Email:        supervisor.Email,
		}})
	}

	for _, sc := range g.reg.connsFor(supervisor.ID) {
		_ = sc.push(Event{Event: EventClientAssigned, Payload: ClientAssignedPayload{
			ClientID: client.ID,
			Name:     client.Name,
			Email:    client.Email,
			Package:  client.Package,
		}})
	}

	g.logger.Info().
		Int64("client_id", client.ID).
		Int64("supervisor_id", supervisor.ID).
		Msg("Supervisor allocation relayed")

	_ = c.push(Event{Event: EventAllocationSuccess, Payload: AllocationSuccessPayload{Success: true}})
}
