// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Task store backends.
const (
	TaskStoreMongo  = "mongo"
	TaskStoreMemory = "memory"
)

// AppConfig holds NPO Connect's configuration. WAFFLE's CoreConfig covers
// ports, TLS, logging and environment; everything here is app-specific.
type AppConfig struct {
	// MongoDB connection configuration (task store)
	MongoURI      string
	MongoDatabase string
	TaskStore     string // "mongo" or "memory"

	// Chat session cookie
	SessionKey  string // blank: random per process
	SessionName string

	// Completion endpoint. A blank key disables the AI tools.
	APIKey string
	Model  string

	// Directory
	DatasetPath string // blank: embedded dataset
	PageSize    int

	// Chat session lifecycle
	ChatIdleTimeout   time.Duration
	ChatSweepInterval time.Duration

	// GenerationRateLimit is the number of generation requests allowed per
	// client per minute; 0 disables the limit.
	GenerationRateLimit int
	// TrustProxyHeaders keys the rate limit by forwarding headers.
	TrustProxyHeaders bool

	CORSAllowedOrigins []string
}
