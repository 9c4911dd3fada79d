package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/lingua-api/internal/api/middleware"
	"github.com/phrazzld/lingua-api/internal/api/shared"
)

const defaultRequestTimeout = 3 * time.Minute

// RouterConfig holds the handlers and cross-cutting pieces the router mounts.
// Metrics and MetricsMiddleware are optional.
type RouterConfig struct {
	Logger            *slog.Logger
	Conversation      *ConversationHandler
	Content           *ContentHandler
	Speech            *SpeechHandler
	General           *GeneralHandler
	Metrics           http.Handler
	MetricsMiddleware func(http.Handler) http.Handler
	// RequestTimeout bounds every request; model calls with retries can be slow.
	RequestTimeout time.Duration
}

// NewRouter builds the chi router with every route mounted.
func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.General == nil {
		cfg.General = NewGeneralHandler(nil, nil)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.TraceMiddleware(cfg.Logger))
	r.Use(middleware.RequestLogger)
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware)
	}
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", cfg.General.Root)
	r.Get("/languages", cfg.General.Languages)
	r.Get("/health", cfg.General.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	if h := cfg.Conversation; h != nil {
		r.Route("/conversation", func(r chi.Router) {
			r.Post("/start", h.Start)
			r.Post("/reply", h.Reply)
		})
	}

	if h := cfg.Speech; h != nil {
		r.Post("/transcribe", h.Transcribe)
		r.Post("/synthesize", h.Synthesize)
	}

	if h := cfg.Content; h != nil {
		r.Route("/writing", func(r chi.Router) {
			r.Post("/generate-prompt", h.GenerateWritingPrompt)
			r.Post("/evaluate", h.EvaluateWriting)
		})
		r.Route("/dictionary", func(r chi.Router) {
			r.Post("/search", h.SearchWord)
			r.Post("/detect-image", h.DetectImage)
		})
		r.Route("/flashcards", func(r chi.Router) {
			r.Post("/generate", h.GenerateFlashcards)
			r.Post("/validate", h.ValidateFlashcard)
		})
		r.Route("/roleplay", func(r chi.Router) {
			r.Post("/generate-scenario", h.GenerateRoleplayScenario)
			r.Post("/evaluate-response", h.EvaluateRoleplay)
		})
		r.Post("/story/generate-story", h.GenerateStory)
		r.Post("/dialogue/generate-dialogue", h.GenerateDialogue)
		r.Post("/listening/generate-practice", h.GenerateListeningPractice)
	}

	return r
}
