package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/teemow/inboxpilot/internal/calendar"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/gmail"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/pipeline"
	"github.com/teemow/inboxpilot/internal/search"
	"github.com/teemow/inboxpilot/internal/server"
	"github.com/teemow/inboxpilot/internal/slack"
	"github.com/teemow/inboxpilot/internal/store"
)

// app bundles the configuration, capability clients, record store, and
// pipeline a command runs against. Capabilities without credentials are
// left nil so the pipeline degrades instead of failing at startup.
type app struct {
	cfg  config.Config
	log  logging.Logger
	pipe *pipeline.Pipeline

	st            *store.Store
	provider      *instrumentation.Provider
	metricsServer *server.MetricsServer
}

// newApp loads configuration, opens the record store, and constructs
// every capability whose credentials are present.
func newApp(ctx context.Context) (*app, error) {
	slogger := logging.Setup(os.Stderr, flagLogLevel, flagLogFormat)
	log := logging.NewSlogAdapter(slogger)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagAccount != "" {
		cfg.Mail.Account = flagAccount
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		provider: provider,
	}

	if flagMetrics && provider.Enabled() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    flagMetricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to create metrics server: %w", err)
		}
		a.metricsServer = metricsServer
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", logging.Err(err))
			}
		}()
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	a.st = st

	deps := pipeline.Deps{
		Records: st,
		Metrics: provider.Metrics(),
		Audit:   instrumentation.NewAuditLoggerWithConfig(slogger, instrConfig.AuditLogging),
		Logger:  log,
	}

	if gmail.HasTokenForAccount(cfg.Mail.Account) {
		// Client construction refreshes the cached token.
		mailClient, err := gmail.NewClientForAccount(ctx, cfg.Mail.Account)
		if err != nil {
			provider.Metrics().RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
			a.Close(ctx)
			return nil, fmt.Errorf("failed to create mail client: %w", err)
		}
		provider.Metrics().RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
		deps.Mail = mailClient
	} else {
		log.Warn("mail capability unavailable, run 'inboxpilot auth' first",
			"account", cfg.Mail.Account)
	}

	if calendar.HasTokenForAccount(cfg.Mail.Account) {
		calClient, err := calendar.NewClientForAccount(ctx, cfg.Mail.Account)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to create calendar client: %w", err)
		}
		deps.Scheduler = calClient
	} else {
		log.Warn("calendar capability unavailable, run 'inboxpilot auth' first",
			"account", cfg.Mail.Account)
	}

	llmClient, err := llm.NewClient(cfg.LLM.Endpoint, llm.Options{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		log.Warn("text generation capability unavailable", logging.Err(err))
	} else {
		deps.Generator = llmClient
	}

	if cfg.SearchConfigured() {
		searchClient, err := search.NewClient(ctx, cfg.Search.APIKey, cfg.Search.EngineID)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		deps.Searcher = searchClient
	} else {
		log.Warn("search capability unavailable, set " + config.EnvSearchAPIKey +
			" and " + config.EnvSearchEngine + " to enable grounded drafting")
	}

	if cfg.SlackConfigured() {
		slackClient, err := slack.NewClient(cfg.Slack.Token, cfg.Slack.Channel)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to create slack client: %w", err)
		}
		deps.Notifier = slackClient
	} else {
		log.Warn("notification capability unavailable, set " + config.EnvSlackToken + " to enable")
	}

	pipe, err := pipeline.New(deps, pipeline.Config{
		Account:       cfg.Mail.Account,
		CalendarID:    cfg.Calendar.CalendarID,
		TimeZone:      cfg.Calendar.TimeZone,
		SearchResults: 5,
		Suggestions:   3,
	})
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.pipe = pipe

	return a, nil
}

// Close tears the app down in reverse construction order.
func (a *app) Close(ctx context.Context) {
	if a.st != nil {
		if err := a.st.Close(); err != nil {
			a.log.Warn("failed to close record store", logging.Err(err))
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.log.Warn("failed to shut down metrics server", logging.Err(err))
		}
	}
	if a.provider != nil {
		if err := a.provider.Shutdown(ctx); err != nil {
			a.log.Warn("failed to shut down instrumentation", logging.Err(err))
		}
	}
}
