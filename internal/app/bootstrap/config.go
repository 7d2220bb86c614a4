// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
	"github.com/dalemusser/npoconnect/internal/app/system/paging"
	"github.com/dalemusser/npoconnect/internal/app/system/session"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// APIKeyEnv is the variable the browser build read its key from. It is
// consulted when genai_api_key is blank.
const APIKeyEnv = "API_KEY"

// appConfigKeys are loaded via WAFFLE's config system from config files
// (mongo_uri), environment variables (NPOCONNECT_MONGO_URI) or flags
// (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "npo_connect", Desc: "MongoDB database name"},
	{Name: "task_store", Default: TaskStoreMongo, Desc: "Calendar task store: 'mongo' or 'memory'"},

	{Name: "session_key", Default: "", Desc: "Session signing key (blank: random per process)"},
	{Name: "session_name", Default: session.DefaultName, Desc: "Session cookie name"},

	{Name: "genai_api_key", Default: "", Desc: "Gemini API key (falls back to $API_KEY)"},
	{Name: "genai_model", Default: aiclient.DefaultModel, Desc: "Gemini model name"},

	{Name: "dataset_path", Default: "", Desc: "YAML organization dataset (blank: embedded)"},
	{Name: "page_size", Default: paging.PageSize, Desc: "Directory results per page"},

	{Name: "chat_idle_timeout", Default: "30m", Desc: "End chat sessions idle for this long"},
	{Name: "chat_sweep_interval", Default: "1m", Desc: "How often idle chat sessions are swept"},
	{Name: "generation_rate_limit", Default: 20, Desc: "Generation requests per client per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Key rate limits by X-Forwarded-For/X-Real-IP (only behind a proxy that sets them)"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma separated CORS origins"},
}

// LoadConfig loads WAFFLE core config and app-specific config with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "NPOCONNECT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),
		TaskStore:     strings.ToLower(strings.TrimSpace(appValues.String("task_store"))),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),

		APIKey: appValues.String("genai_api_key"),
		Model:  appValues.String("genai_model"),

		DatasetPath: appValues.String("dataset_path"),
		PageSize:    appValues.Int("page_size"),

		ChatIdleTimeout:     appValues.Duration("chat_idle_timeout", 30*time.Minute),
		ChatSweepInterval:   appValues.Duration("chat_sweep_interval", time.Minute),
		GenerationRateLimit: appValues.Int("generation_rate_limit"),
		TrustProxyHeaders:   appValues.Bool("trust_proxy_headers"),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
	}

	if appCfg.APIKey == "" {
		appCfg.APIKey = os.Getenv(APIKeyEnv)
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects settings the app cannot start with. A missing API
// key is not one of them: the AI tools are disabled instead.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	switch appCfg.TaskStore {
	case TaskStoreMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
		}
		if appCfg.MongoDatabase == "" {
			errs = append(errs, errors.New("mongo_database is required when task_store is mongo"))
		}
	case TaskStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("task_store must be %q or %q, got %q", TaskStoreMongo, TaskStoreMemory, appCfg.TaskStore))
	}

	if appCfg.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", appCfg.PageSize))
	}
	if appCfg.ChatIdleTimeout <= 0 || appCfg.ChatSweepInterval <= 0 {
		errs = append(errs, errors.New("chat_idle_timeout and chat_sweep_interval must be positive"))
	}
	if appCfg.GenerationRateLimit < 0 {
		errs = append(errs, fmt.Errorf("generation_rate_limit must not be negative, got %d", appCfg.GenerationRateLimit))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
