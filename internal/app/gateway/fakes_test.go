package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"sehra/internal/app/message"
	"sehra/internal/app/user"
)

var errNoRows = errors.New("no rows in result set")

// fakeDirectory is an in-memory UserDirectory.
type fakeDirectory struct {
	users []user.User
}

func (d *fakeDirectory) FindUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range d.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, errNoRows
}

func (d *fakeDirectory) FindUserByID(_ context.Context, id int64) (user.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, errNoRows
}

// fakeStore is an in-memory MessageStore with togglable failures.
type fakeStore struct {
	mu        sync.Mutex
	nextID    int64
	messages  []message.Message
	insertErr error
	markErr   error
	countErr  error
}

func (s *fakeStore) InsertMessage(_ context.Context, senderID, recipientID int64, body string, msgType message.Type) (message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return message.Message{}, s.insertErr
	}

	s.nextID++
	m := message.Message{
		ID:          s.nextID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		Type:        msgType,
		CreatedAt:   time.Now(),
	}
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *fakeStore) MarkMessagesRead(_ context.Context, senderID, recipientID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.markErr != nil {
		return 0, s.markErr
	}

	var n int64
	for i := range s.messages {
		m := &s.messages[i]
		if m.SenderID == senderID && m.RecipientID == recipientID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CountUnread(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countErr != nil {
		return 0, s.countErr
	}

	var n int64
	for _, m := range s.messages {
		if m.RecipientID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) stored() []message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]message.Message(nil), s.messages...)
}

const testSecret = "gateway-test-secret"

// testUsers seeds the directory for most tests.
var testUsers = []user.User{
	{ID: 1, Name: "Chetna", Email: "chetna@sehra.in", Role: user.RoleClient, Package: "gold"},
	{ID: 2, Name: "Varun Decor", Email: "varun@sehra.in", Role: user.RoleVendor},
	{ID: 3, Name: "Simran", Email: "simran@sehra.in", Role: user.RoleSupervisor},
	{ID: 4, Name: "Asha", Email: "asha@sehra.in", Role: user.RoleAdmin},
	{ID: 5, Name: "Dev", Email: "dev@sehra.in", Role: user.RoleClient, Package: "silver"},
}

func newTestGateway() (*Gateway, *fakeStore, *fakeDirectory) {
	dir := &fakeDirectory{users: testUsers}
	st := &fakeStore{}
	return New(dir, st, testSecret), st, dir
}

// takeEvent pops the next queued event off the connection, failing the test
// if nothing is queued.
func takeEvent(t *testing.T, c *Conn) (string, json.RawMessage) {
	t.Helper()

	select {
	case frame := <-c.send:
		var env envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			t.Fatalf("queued frame is not a valid envelope: %v", err)
		}
		return env.Event, env.Payload
	default:
		t.Fatal("no event queued on connection")
		return "", nil
	}
}

// expectEvent asserts the next queued event has the given name and decodes
// its payload into dst when dst is non-nil.
func expectEvent(t *testing.T, c *Conn, name string, dst any) {
	t.Helper()

	event, payload := takeEvent(t, c)
	if event != name {
		t.Fatalf("expected event %q, got %q", name, event)
	}
	if dst != nil {
		if err := json.Unmarshal(payload, dst); err != nil {
			t.Fatalf("failed to decode %q payload: %v", name, err)
		}
	}
}

// expectNoEvent asserts the connection's queue is empty.
func expectNoEvent(t *testing.T, c *Conn) {
	t.Helper()

	select {
	case frame := <-c.send:
		t.Fatalf("unexpected queued event: %s", frame)
	default:
	}
}

// authed opens a connection and authenticates it as the given email,
// draining the authenticated and unread_count pushes.
func authed(t *testing.T, g *Gateway, email string) *Conn {
	t.Helper()

	c := g.Accept(nil)
	g.Authenticate(c, IdentityClaim{Email: email})

	var result AuthResultPayload
	expectEvent(t, c, EventAuthenticated, &result)
	if !result.Success {
		t.Fatalf("authentication as %s failed", email)
	}
	expectEvent(t, c, EventUnreadCount, nil)

	return c
}
