package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
)

// ConversationHandler serves sequential conversation practice.
type ConversationHandler struct {
	service ConversationService
	logger  *slog.Logger
}

// NewConversationHandler creates a ConversationHandler.
func NewConversationHandler(service ConversationService, logger *slog.Logger) *ConversationHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("conversation service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationHandler{
		service: service,
		logger:  logger.With(slog.String("component", "conversation_handler")),
	}
}

// Start handles POST /conversation/start?language=<code>.
func (h *ConversationHandler) Start(w http.ResponseWriter, r *http.Request) {
	lang := queryLanguage(r, language.Default)

	result, err := h.service.Start(r.Context(), lang)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ConversationStartResponse{
		ConversationID: result.ConversationID,
		AIMessage:      result.Message,
	})
}

// Reply handles POST /conversation/reply.
func (h *ConversationHandler) Reply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ConversationReplyRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.service.Reply(r.Context(), req.ConversationID, orDefault(req.Language, language.Default), req.UserMessage)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("conversation reply handled",
		slog.String("conversation_id", req.ConversationID),
		slog.Bool("matched", result.Matched),
		slog.Int("turn", result.Turn))

	shared.RespondWithJSON(w, r, http.StatusOK, ConversationReplyResponse{
		AIMessage:         result.Message,
		ConversationEnded: result.Ended,
	})
}
