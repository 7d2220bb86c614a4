package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if got := Generation(); got != DefaultGeneration {
		t.Errorf("Generation() = %v, want %v", got, DefaultGeneration)
	}
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping() = %v, want %v", got, DefaultPing)
	}
}

func TestConfigureIgnoresZero(t *testing.T) {
	Reset()
	defer Reset()

	Configure(Config{Generation: 2 * time.Minute})
	if got := Generation(); got != 2*time.Minute {
		t.Errorf("Generation() = %v, want 2m", got)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short() = %v, want default %v", got, DefaultShort)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	Reset()
	defer Reset()

	t.Setenv("TIMEOUT_CHAT", "45s")
	t.Setenv("TIMEOUT_SHORT", "not-a-duration")
	t.Setenv("TIMEOUT_PING", "-1s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() = %d, want 1", n)
	}
	cur := Current()
	if cur.Chat != 45*time.Second {
		t.Errorf("Chat = %v, want 45s", cur.Chat)
	}
	if cur.Short != DefaultShort || cur.Ping != DefaultPing {
		t.Errorf("invalid values applied: %+v", cur)
	}
}
