package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/redact"
)

// Version is reported by GET /.
const Version = "2.0.0"

const healthCheckTimeout = 2 * time.Second

// Pinger checks a backing dependency such as the database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// GeneralHandler serves service information and health.
type GeneralHandler struct {
	activeSessions func() int
	db             Pinger
}

// NewGeneralHandler creates a GeneralHandler. activeSessions and db may be nil.
func NewGeneralHandler(activeSessions func() int, db Pinger) *GeneralHandler {
	if activeSessions == nil {
		activeSessions = func() int { return 0 }
	}
	return &GeneralHandler{activeSessions: activeSessions, db: db}
}

// Root handles GET /.
func (h *GeneralHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"name":        "Lingua API",
		"description": "Language learning practice: conversation, writing, dictionary, flashcards and more",
		"version":     Version,
		"endpoints": map[string]string{
			"languages":    "/languages",
			"conversation": "/conversation",
			"transcribe":   "/transcribe",
			"synthesize":   "/synthesize",
			"writing":      "/writing",
			"dictionary":   "/dictionary",
			"flashcards":   "/flashcards",
			"roleplay":     "/roleplay",
			"story":        "/story",
			"dialogue":     "/dialogue",
			"listening":    "/listening",
		},
	})
}

// Languages handles GET /languages.
func (h *GeneralHandler) Languages(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, newLanguagesResponse())
}

// Health handles GET /health. It reports 503 when the configured database
// does not answer a ping.
func (h *GeneralHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", ActiveSessions: h.activeSessions()}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("health check: database ping failed", redact.ErrorAttr(err))
			resp.Status = "degraded"
			resp.Database = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}
