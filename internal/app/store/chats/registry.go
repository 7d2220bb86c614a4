// internal/app/store/chats/registry.go
package chats

import (
	"sync"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/google/uuid"
)

// Registry holds live chat sessions by id. Sessions exist only in memory and
// end when evicted or deleted.
type Registry struct {
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session  *generation.ChatSession
	lastUsed time.Time
}

// New returns an empty registry. now may be nil.
func New(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{now: now, sessions: make(map[string]*entry)}
}

// Add registers s and returns its new id.
func (r *Registry) Add(s *generation.ChatSession) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{session: s, lastUsed: r.now()}
	return id
}

// Get returns the session for id and marks it used.
func (r *Registry) Get(id string) (*generation.ChatSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.session, true
}

// Delete ends the session for id. It reports whether one existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle drops sessions unused for longer than threshold. Sessions with a
// turn in flight are kept.
func (r *Registry) EvictIdle(threshold time.Duration) int {
	cutoff := r.now().Add(-threshold)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) && !e.session.Busy() {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
