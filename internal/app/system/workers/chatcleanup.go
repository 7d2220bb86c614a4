// internal/app/system/workers/chatcleanup.go
package workers

import (
	"sync"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/store/chats"
	"go.uber.org/zap"
)

// ChatCleanup is a background worker that ends idle chat sessions.
type ChatCleanup struct {
	chats         *chats.Registry
	log           *zap.Logger
	interval      time.Duration
	idleThreshold time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

// NewChatCleanup creates a new chat cleanup worker.
//
// Parameters:
//   - registry: the live chat sessions
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idleThreshold: how long a session may go unused before it is ended (e.g., 30 minutes)
func NewChatCleanup(registry *chats.Registry, logger *zap.Logger, interval, idleThreshold time.Duration) *ChatCleanup {
	return &ChatCleanup{
		chats:         registry,
		log:           logger,
		interval:      interval,
		idleThreshold: idleThreshold,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *ChatCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("chat cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_threshold", w.idleThreshold))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ChatCleanup) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("chat cleanup worker stopped")
}

func (w *ChatCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep ends idle sessions once and returns how many were removed.
func (w *ChatCleanup) Sweep() int {
	count := w.chats.EvictIdle(w.idleThreshold)
	if count > 0 {
		w.log.Info("ended idle chat sessions",
			zap.Int("count", count),
			zap.Int("remaining", w.chats.Len()))
	}
	return count
}
