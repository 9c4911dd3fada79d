package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
)

// SpeechHandler serves speech-to-text and text-to-speech.
type SpeechHandler struct {
	service        SpeechService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewSpeechHandler creates a SpeechHandler. maxUploadBytes caps audio
// uploads; zero means 20 MiB.
func NewSpeechHandler(service SpeechService, logger *slog.Logger, maxUploadBytes int64) *SpeechHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("speech service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &SpeechHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "speech_handler")),
		maxUploadBytes: maxUploadBytes,
	}
}

// Transcribe handles POST /transcribe with a multipart audio_file and an
// optional language form field.
func (h *SpeechHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	audio, err := readUpload(w, r, "audio_file", h.maxUploadBytes)
	if err != nil {
		respondUploadError(w, r, "audio_file", err)
		return
	}
	lang := orDefault(r.FormValue("language"), language.Default)

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("transcribing audio",
		slog.String("content_type", audio.contentType),
		slog.Int("bytes", len(audio.data)),
		slog.String("language", lang))

	result, err := h.service.Transcribe(r.Context(), audio.data, audio.contentType, lang)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Synthesize handles POST /synthesize.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}

	result, err := h.service.Synthesize(r.Context(), req.Text, req.Language)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
