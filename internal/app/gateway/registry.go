package gateway

import (
	"sync"

	"sehra/internal/app/user"
)

// registry is the connection index: every live connection by id, plus the
// per-user sets used for fan-out. add, bind and remove are atomic with
// respect to concurrent fan-out reads; a reader never observes a connection
// mid-removal.
type registry struct {
	mu     sync.RWMutex
	conns  map[string]*Conn
	byUser map[int64]map[string]*Conn
}

func newRegistry() *registry {
	return &registry{
		conns:  make(map[string]*Conn),
		byUser: make(map[int64]map[string]*Conn),
	}
}

// add registers a new, unauthenticated connection.
func (r *registry) add(c *Conn) {
	r.mu.Lock()
	r.conns[c.id] = c
	r.mu.Unlock()
}

// bind attaches c to u's live set and records the identity on the connection
// in one critical section, detaching any previous binding first
// (re-authentication rebinds in place). Index and identity always move
// together; remove can trust whatever identity it reads.
func (r *registry) bind(c *Conn, u user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, authed := c.Identity(); authed && prev.ID != u.ID {
		if set, ok := r.byUser[prev.ID]; ok {
			delete(set, c.id)
			if len(set) == 0 {
				delete(r.byUser, prev.ID)
			}
		}
	}

	set, ok := r.byUser[u.ID]
	if !ok {
		set = make(map[string]*Conn)
		r.byUser[u.ID] = set
	}
	set[c.id] = c

	c.bind(u)
}

// remove drops c from every index. It reports whether the connection was
// still registered, so callers can close resources exactly once; removing an
// already-removed connection is a no-op.
func (r *registry) remove(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[c.id]; !ok {
		return false
	}
	delete(r.conns, c.id)

	if u, authed := c.Identity(); authed {
		if set, ok := r.byUser[u.ID]; ok {
			delete(set, c.id)
			if len(set) == 0 {
				delete(r.byUser, u.ID)
			}
		}
	}

	return true
}

// connsFor returns a snapshot of userID's live connections.
func (r *registry) connsFor(userID int64) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.byUser[userID]
	if len(set) == 0 {
		return nil
	}

	conns := make([]*Conn, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	return conns
}

// all returns a snapshot of every live connection.
func (r *registry) all() []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	return conns
}
