// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/dataset"
	"github.com/dalemusser/npoconnect/internal/app/store/chats"
	"github.com/dalemusser/npoconnect/internal/app/store/tasks"
	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/ratelimit"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"github.com/dalemusser/npoconnect/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// services are built once by Startup and shared with BuildHandler and
// Shutdown through DBDeps.
type services struct {
	orgs    *dataset.Provider
	gen     *generation.Orchestrator
	tasks   *tasks.Store
	chats   *chats.Registry
	cleanup *workers.ChatCleanup
	limiter *ratelimit.Limiter
}

// Startup loads the directory, connects the completion client and starts the
// chat cleanup worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	s, err := newServices(ctx, appCfg, deps, logger)
	if err != nil {
		return err
	}
	s.cleanup.Start()

	if err := deps.setServices(s); err != nil {
		s.cleanup.Stop()
		if s.limiter != nil {
			s.limiter.Stop()
		}
		return err
	}
	return nil
}

func newServices(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*services, error) {
	orgs, err := dataset.Load(appCfg.DatasetPath)
	if err != nil {
		logger.Error("loading dataset failed", zap.String("path", appCfg.DatasetPath), zap.Error(err))
		return nil, err
	}
	logger.Info("dataset loaded", zap.Int("organizations", orgs.Len()))

	s := &services{
		orgs:  orgs,
		gen:   newOrchestrator(ctx, appCfg, logger),
		chats: chats.New(nil),
	}

	loadCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), logger, "task load")
	s.tasks = tasks.Open(loadCtx, deps.KV, logger)
	cancel()

	s.cleanup = workers.NewChatCleanup(s.chats, logger, appCfg.ChatSweepInterval, appCfg.ChatIdleTimeout)
	if appCfg.GenerationRateLimit > 0 {
		s.limiter = ratelimit.New(appCfg.GenerationRateLimit, time.Minute,
			ratelimit.TrustProxyHeaders(appCfg.TrustProxyHeaders))
	}
	return s, nil
}

// newOrchestrator never fails: without a usable client the AI tools are
// disabled and answer with the configuration error.
func newOrchestrator(ctx context.Context, appCfg AppConfig, logger *zap.Logger) *generation.Orchestrator {
	if appCfg.APIKey == "" {
		logger.Error("configuration error; AI tools disabled", zap.Error(generation.ErrNotConfigured))
		return generation.New(nil, appCfg.Model, logger)
	}
	client, err := aiclient.NewGenAI(ctx, appCfg.APIKey, appCfg.Model)
	if err != nil {
		logger.Error("creating Gemini client failed; AI tools disabled", zap.Error(err))
		return generation.New(nil, appCfg.Model, logger)
	}
	logger.Info("AI tools enabled", zap.String("model", client.Model()))
	return generation.New(client, appCfg.Model, logger)
}
