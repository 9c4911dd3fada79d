package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/content"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
)

// ContentHandler serves the generated practice material: writing,
// dictionary, flashcards, roleplay, story, dialogue and listening.
type ContentHandler struct {
	service        ContentService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewContentHandler creates a ContentHandler. maxUploadBytes caps image
// uploads; zero means 20 MiB.
func NewContentHandler(service ContentService, logger *slog.Logger, maxUploadBytes int64) *ContentHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("content service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &ContentHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "content_handler")),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ContentHandler) respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, data)
}

// GenerateWritingPrompt handles POST /writing/generate-prompt?language=.
func (h *ContentHandler) GenerateWritingPrompt(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GenerateWritingPrompt(r.Context(), queryLanguage(r, language.Default))
	h.respond(w, r, result, err)
}

// EvaluateWriting handles POST /writing/evaluate.
func (h *ContentHandler) EvaluateWriting(w http.ResponseWriter, r *http.Request) {
	var req WritingEvaluationRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	result, err := h.service.EvaluateWriting(r.Context(), req.Prompt, req.UserResponse, orDefault(req.Language, language.Default))
	h.respond(w, r, result, err)
}

// SearchWord handles POST /dictionary/search?word=&language=.
func (h *ContentHandler) SearchWord(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word: required field")
		return
	}
	result, err := h.service.SearchWord(r.Context(), word, queryLanguage(r, language.Default))
	h.respond(w, r, result, err)
}

// DetectImage handles POST /dictionary/detect-image with a multipart image
// and an optional language form field.
func (h *ContentHandler) DetectImage(w http.ResponseWriter, r *http.Request) {
	img, err := readUpload(w, r, "image", h.maxUploadBytes)
	if err != nil {
		respondUploadError(w, r, "image", err)
		return
	}
	lang := orDefault(r.FormValue("language"), language.Default)

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("detecting image",
		slog.String("filename", img.filename),
		slog.Int("bytes", len(img.data)),
		slog.String("language", lang))

	result, err := h.service.DetectImage(r.Context(), img.data, img.filename, lang)
	h.respond(w, r, result, err)
}

// GenerateFlashcards handles POST /flashcards/generate?language=.
func (h *ContentHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GenerateFlashcards(r.Context(), queryLanguage(r, language.Default))
	h.respond(w, r, result, err)
}

// ValidateFlashcard handles POST /flashcards/validate. It never calls the model.
func (h *ContentHandler) ValidateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req FlashcardValidationRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardValidationResponse{
		Matches: content.ValidateFlashcard(req.Word, req.UserResponse),
	})
}

// GenerateRoleplayScenario handles POST /roleplay/generate-scenario?language=.
func (h *ContentHandler) GenerateRoleplayScenario(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GenerateRoleplayScenario(r.Context(), queryLanguage(r, language.Default))
	h.respond(w, r, result, err)
}

// EvaluateRoleplay handles POST /roleplay/evaluate-response.
func (h *ContentHandler) EvaluateRoleplay(w http.ResponseWriter, r *http.Request) {
	var req RoleplayEvaluationRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	result, err := h.service.EvaluateRoleplay(r.Context(), content.RoleplayAnswer{
		Scenario:           req.Scenario,
		QuestionInLanguage: req.QuestionInLanguage,
		QuestionEnglish:    req.QuestionEnglish,
		Response:           req.UserResponse,
		Language:           orDefault(req.Language, language.Default),
	})
	h.respond(w, r, result, err)
}

// GenerateStory handles POST /story/generate-story.
func (h *ContentHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	var req StoryRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	result, err := h.service.GenerateStory(r.Context(), req.Topic, orDefault(req.Language, StoryDefaultLanguage))
	h.respond(w, r, result, err)
}

// GenerateDialogue handles POST /dialogue/generate-dialogue.
func (h *ContentHandler) GenerateDialogue(w http.ResponseWriter, r *http.Request) {
	var req DialogueRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	result, err := h.service.GenerateDialogue(r.Context(), req.Scenario, orDefault(req.Language, language.Default))
	h.respond(w, r, result, err)
}

// GenerateListeningPractice handles POST /listening/generate-practice.
func (h *ContentHandler) GenerateListeningPractice(w http.ResponseWriter, r *http.Request) {
	var req ListeningRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	result, err := h.service.GenerateListeningPractice(r.Context(), req.Topic, orDefault(req.Language, StoryDefaultLanguage))
	h.respond(w, r, result, err)
}
