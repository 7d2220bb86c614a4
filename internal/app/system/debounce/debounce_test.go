package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/system/debounce"
	"github.com/dalemusser/npoconnect/internal/app/system/debounce/debouncetest"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) publish(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, v)
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

const window = 300 * time.Millisecond

func TestRapidInputPublishesOnlyLast(t *testing.T) {
	clock := debouncetest.NewClock()
	rec := &recorder{}
	d := debounce.New(window, rec.publish, debounce.WithClock(clock))

	for _, v := range []string{"g", "gr", "gre", "gree", "green"} {
		d.Push(v)
		clock.Advance(100 * time.Millisecond)
	}
	if got := rec.values(); len(got) != 0 {
		t.Fatalf("published before quiet period: %v", got)
	}

	clock.Advance(window)
	if diff := cmp.Diff([]string{"green"}, rec.values()); diff != "" {
		t.Errorf("published values mismatch (-want +got):\n%s", diff)
	}
}

func TestSpacedInputPublishesEach(t *testing.T) {
	clock := debouncetest.NewClock()
	rec := &recorder{}
	d := debounce.New(window, rec.publish, debounce.WithClock(clock))

	for _, v := range []string{"a", "b", "c"} {
		d.Push(v)
		clock.Advance(window + 50*time.Millisecond)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, rec.values()); diff != "" {
		t.Errorf("published values mismatch (-want +got):\n%s", diff)
	}
}

func TestAtMostOneArmedTimer(t *testing.T) {
	clock := debouncetest.NewClock()
	d := debounce.New(window, func(string) {}, debounce.WithClock(clock))

	for i := 0; i < 5; i++ {
		d.Push("x")
		if n := clock.Armed(); n != 1 {
			t.Fatalf("after push %d: armed timers = %d, want 1", i, n)
		}
	}
	if !d.Pending() {
		t.Error("Pending() = false, want true")
	}
	clock.Advance(window)
	if d.Pending() {
		t.Error("Pending() = true after publish, want false")
	}
}

func TestFinalValuePublishedWhenInputStops(t *testing.T) {
	clock := debouncetest.NewClock()
	rec := &recorder{}
	d := debounce.New(window, rec.publish, debounce.WithClock(clock))

	d.Push("sun")
	clock.Advance(window - time.Millisecond)
	if len(rec.values()) != 0 {
		t.Fatal("published too early")
	}
	clock.Advance(time.Millisecond)
	if diff := cmp.Diff([]string{"sun"}, rec.values()); diff != "" {
		t.Errorf("published values mismatch (-want +got):\n%s", diff)
	}
}

func TestStopCancelsPending(t *testing.T) {
	clock := debouncetest.NewClock()
	rec := &recorder{}
	d := debounce.New(window, rec.publish, debounce.WithClock(clock))

	d.Push("pending")
	d.Stop()
	clock.Advance(2 * window)
	d.Push("after-stop")
	clock.Advance(2 * window)

	if got := rec.values(); len(got) != 0 {
		t.Errorf("published after Stop: %v", got)
	}
}

// A timer whose callback was already released when the value was superseded
// must not publish the stale value.
func TestSupersededCallbackIsDiscarded(t *testing.T) {
	var fns []func()
	clock := clockFunc(func(d time.Duration, f func()) debounce.Timer {
		fns = append(fns, f)
		return noopTimer{}
	})
	rec := &recorder{}
	d := debounce.New(window, rec.publish, debounce.WithClock(clock))

	d.Push("old")
	d.Push("new")
	fns[0]() // stale timer fires anyway
	fns[1]()

	if diff := cmp.Diff([]string{"new"}, rec.values()); diff != "" {
		t.Errorf("published values mismatch (-want +got):\n%s", diff)
	}
}

func TestRealClockNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := make(chan string, 1)
	d := debounce.New(10*time.Millisecond, func(v string) { done <- v })
	d.Push("a")
	d.Push("b")

	select {
	case v := <-done:
		if v != "b" {
			t.Errorf("published %q, want %q", v, "b")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("value never published")
	}
	d.Stop()
}

type clockFunc func(d time.Duration, f func()) debounce.Timer

func (c clockFunc) AfterFunc(d time.Duration, f func()) debounce.Timer { return c(d, f) }

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }
