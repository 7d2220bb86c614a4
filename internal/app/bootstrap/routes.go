// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"slices"

	calendarfeature "github.com/dalemusser/npoconnect/internal/app/features/calendar"
	chatfeature "github.com/dalemusser/npoconnect/internal/app/features/chat"
	errorsfeature "github.com/dalemusser/npoconnect/internal/app/features/errors"
	healthfeature "github.com/dalemusser/npoconnect/internal/app/features/health"
	organizationsfeature "github.com/dalemusser/npoconnect/internal/app/features/organizations"
	toolsfeature "github.com/dalemusser/npoconnect/internal/app/features/tools"
	"github.com/dalemusser/npoconnect/internal/app/system/session"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the JSON API router. It runs after Startup, so
// the shared services are in place.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	s, err := deps.currentServices()
	if err != nil {
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := session.NewManager(appCfg.SessionKey, appCfg.SessionName, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	return newRouter(s, sessionMgr, appCfg, logger), nil
}

func newRouter(s *services, sessionMgr *session.Manager, appCfg AppConfig, logger *zap.Logger) http.Handler {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(s.tasks, s.orgs.Len(), s.gen.Configured(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Directory browsing
	orgHandler := organizationsfeature.NewHandler(s.orgs, appCfg.PageSize, errLog, logger)
	r.Mount("/directory", organizationsfeature.Routes(orgHandler))

	// Dashboard tools
	toolsHandler := toolsfeature.NewHandler(s.gen, errLog, logger)
	r.Mount("/tools", toolsfeature.Routes(toolsHandler, s.limiter))

	chatHandler := chatfeature.NewHandler(s.gen, s.chats, sessionMgr, appCfg.CORSAllowedOrigins, errLog, logger)
	r.Mount("/chat", chatfeature.Routes(chatHandler))

	calendarHandler := calendarfeature.NewHandler(s.tasks, errLog, logger)
	r.Mount("/calendar", calendarfeature.Routes(calendarHandler))

	c := cors.New(corsOptions(appCfg.CORSAllowedOrigins))
	return c.Handler(r)
}

// corsOptions allows credentialed requests from the configured origins. A
// wildcard list echoes the request origin: credentialed responses may not
// carry "Access-Control-Allow-Origin: *".
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: true,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		opts.AllowOriginFunc = func(origin string) bool { return origin != "" }
	} else {
		opts.AllowedOrigins = origins
	}
	return opts
}
