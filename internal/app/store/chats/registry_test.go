package chats_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/store/chats"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSession() *generation.ChatSession {
	return generation.New(nil, "", nil).NewChatSession(context.Background())
}

func TestAddGetDelete(t *testing.T) {
	r := chats.New(nil)
	s := newSession()
	id := r.Add(s)

	got, ok := r.Get(id)
	if !ok || got != s {
		t.Fatalf("Get(%q) = %v, %v", id, got, ok)
	}
	if !r.Delete(id) {
		t.Error("Delete returned false for live session")
	}
	if _, ok := r.Get(id); ok {
		t.Error("session still present after Delete")
	}
	if r.Delete(id) {
		t.Error("second Delete returned true")
	}
}

func TestEvictIdle(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := chats.New(c.now)

	stale := r.Add(newSession())
	c.advance(20 * time.Minute)
	fresh := r.Add(newSession())
	c.advance(15 * time.Minute)

	if n := r.EvictIdle(30 * time.Minute); n != 1 {
		t.Fatalf("EvictIdle = %d, want 1", n)
	}
	if _, ok := r.Get(stale); ok {
		t.Error("stale session survived")
	}
	if _, ok := r.Get(fresh); !ok {
		t.Error("fresh session evicted")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestGetRefreshesLastUse(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := chats.New(c.now)
	id := r.Add(newSession())

	c.advance(25 * time.Minute)
	r.Get(id)
	c.advance(25 * time.Minute)

	if n := r.EvictIdle(30 * time.Minute); n != 0 {
		t.Errorf("EvictIdle = %d, want 0 for recently used session", n)
	}
}
