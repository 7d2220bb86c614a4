// Package timeouts holds the timeout values used with context.WithTimeout
// around I/O in handlers, workers and the CLI.
//
//   - Ping: health checks and connectivity verification
//   - Short: task store reads and writes
//   - Generation: one blocking completion call
//   - Chat: one streamed chat turn, first chunk to last
//
// Values can be changed at startup with Configure or ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing       = 2 * time.Second
	DefaultShort      = 5 * time.Second
	DefaultGeneration = 90 * time.Second
	DefaultChat       = 3 * time.Minute
)

var mu sync.RWMutex

var (
	ping       = DefaultPing
	short      = DefaultShort
	generation = DefaultGeneration
	chat       = DefaultChat
)

func get(v *time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return *v
}

// Ping returns the timeout for health checks.
func Ping() time.Duration { return get(&ping) }

// Short returns the timeout for task store reads and writes.
func Short() time.Duration { return get(&short) }

// Generation returns the timeout for a blocking completion (proposal,
// monthly report, donor matching).
func Generation() time.Duration { return get(&generation) }

// Chat returns the timeout for one streamed chat turn.
func Chat() time.Duration { return get(&chat) }

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping       time.Duration
	Short      time.Duration
	Generation time.Duration
	Chat       time.Duration
}

func (c Config) targets() []struct {
	val time.Duration
	dst *time.Duration
} {
	return []struct {
		val time.Duration
		dst *time.Duration
	}{
		{c.Ping, &ping},
		{c.Short, &short},
		{c.Generation, &generation},
		{c.Chat, &chat},
	}
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call it during startup before
// handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	for _, t := range cfg.targets() {
		if t.val > 0 {
			*t.dst = t.val
		}
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	generation = DefaultGeneration
	chat = DefaultChat
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_GENERATION and
// TIMEOUT_CHAT (Go durations such as "2s" or "3m"). Unset or invalid values
// are skipped. Returns the number of timeouts configured.
func ConfigureFromEnv() int {
	vars := []struct {
		env string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_SHORT", &short},
		{"TIMEOUT_GENERATION", &generation},
		{"TIMEOUT_CHAT", &chat},
	}

	mu.Lock()
	defer mu.Unlock()
	configured := 0
	for _, v := range vars {
		s := os.Getenv(v.env)
		if s == "" {
			continue
		}
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			*v.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:       ping,
		Short:      short,
		Generation: generation,
		Chat:       chat,
	}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context ended because the deadline passed.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Generation(), h.Log, "proposal generation")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
