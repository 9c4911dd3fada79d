package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingua-api/internal/api"
	"github.com/phrazzld/lingua-api/internal/config"
	"github.com/phrazzld/lingua-api/internal/content"
	"github.com/phrazzld/lingua-api/internal/conversation"
	"github.com/phrazzld/lingua-api/internal/events"
	"github.com/phrazzld/lingua-api/internal/generation"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/observability"
	"github.com/phrazzld/lingua-api/internal/phrasebank"
	"github.com/phrazzld/lingua-api/internal/platform/gemini"
	"github.com/phrazzld/lingua-api/internal/platform/postgres"
	"github.com/phrazzld/lingua-api/internal/speech"
)

// dependencies are the externally created resources handed to
// newApplication. A nil generator means the Gemini client is built from
// config; a nil db runs without the phrase database.
type dependencies struct {
	db          *sql.DB
	generator   generation.TextGenerator
	synthesizer generation.SpeechSynthesizer
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	metrics      *observability.Metrics
	eventEmitter *events.InMemoryEventEmitter
	sessions     *conversation.Store
	engine       *conversation.Engine
	content      *content.Service
	speech       *speech.Service
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, deps dependencies) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      deps.db,
		metrics: observability.NewMetrics(observability.DefaultNamespace),
	}

	if deps.generator == nil || deps.synthesizer == nil {
		client, err := gemini.New(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		if deps.generator == nil {
			deps.generator = client
		}
		if deps.synthesizer == nil {
			deps.synthesizer = client
		}
		logger.Info("Gemini client initialized",
			"text_model", cfg.LLM.TextModel,
			"vision_model", cfg.LLM.VisionModel)
	}
	instrumented := app.metrics.Instrument(deps.generator, deps.synthesizer)

	var err error
	app.content, err = content.NewService(instrumented, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}
	app.speech, err = speech.NewService(instrumented, instrumented, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech service: %w", err)
	}

	pool, err := loadPhrasePool(ctx, cfg, deps.db, logger)
	if err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(app.metrics)
	app.eventEmitter.RegisterHandler(events.HandlerFunc(func(ctx context.Context, e *events.Event) error {
		logger.DebugContext(ctx, "conversation event",
			"event_type", e.Type,
			"conversation_id", e.SessionID,
			"language", e.Language,
			"turn", e.Turn,
			"reason", e.Reason)
		return nil
	}))

	app.sessions = conversation.NewStore(
		conversation.StoreConfig{
			TTL:         cfg.Conversation.SessionTTL(),
			MaxSessions: cfg.Conversation.MaxSessions,
		},
		conversation.WithEvictHook(conversation.EvictionPublisher(app.eventEmitter, logger)),
	)
	app.metrics.RegisterActiveSessions(observability.DefaultNamespace, app.sessions.Len)

	opts := []conversation.EngineOption{
		conversation.WithEmitter(app.eventEmitter),
		conversation.WithLogger(logger),
		conversation.WithGreetingOpening(cfg.Conversation.OpenWithGreeting),
	}
	if cfg.Conversation.EnrichmentEnabled {
		opts = append(opts, conversation.WithEnricher(
			content.NewPhraseEnricher(app.content),
			cfg.Conversation.EnrichmentTimeout()))
	}
	app.engine = conversation.NewEngine(app.sessions, pool, opts...)

	logger.Info("application initialized successfully")
	return app, nil
}

// loadPhrasePool merges the built-in phrase bank with the optional file and
// database, and fails if any supported language is left without phrases.
func loadPhrasePool(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) (*conversation.PhrasePool, error) {
	opts := phrasebank.Options{File: cfg.Conversation.PhrasesFile}
	if db != nil {
		opts.Source = postgres.NewPhraseStore(db, logger)
	}

	bank, err := phrasebank.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrase bank: %w", err)
	}

	codes := language.Codes()
	pool := conversation.NewPhrasePool(bank.Resolve(codes))
	if err := pool.Validate(codes); err != nil {
		return nil, err
	}
	return pool, nil
}

// router builds the HTTP handler for the application.
func (app *application) router() http.Handler {
	maxUpload := app.config.Server.MaxUploadBytes()

	var db api.Pinger
	if app.db != nil {
		db = app.db
	}

	return api.NewRouter(api.RouterConfig{
		Logger:            app.logger,
		Conversation:      api.NewConversationHandler(app.engine, app.logger),
		Content:           api.NewContentHandler(app.content, app.logger, maxUpload),
		Speech:            api.NewSpeechHandler(app.speech, app.logger, maxUpload),
		General:           api.NewGeneralHandler(app.sessions.Len, db),
		Metrics:           app.metrics.Handler(),
		MetricsMiddleware: app.metrics.Middleware,
	})
}

// Run starts the session janitor and the HTTP server and blocks until ctx
// is cancelled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	app.sessions.StartJanitor(ctx, app.config.Conversation.JanitorInterval())

	err := app.startHTTPServer(ctx, app.router())
	app.cleanup()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.sessions != nil {
		app.sessions.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
