package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/content"
	"github.com/phrazzld/lingua-api/internal/conversation"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/speech"
)

// Client-facing messages.
const (
	MsgConversationNotFound = "Conversation not found. Please start a new conversation."
	MsgConversationBusy     = "Conversation is busy. Please try again."
	MsgInvalidRequest       = "Invalid request format"
	MsgUnexpected           = "An unexpected error occurred"
	MsgEmptyAudio           = "Empty audio file"
	MsgEmptyText            = "Text cannot be empty"
	MsgUploadTooLarge       = "Uploaded file is too large"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Anything
// it does not recognise, including every model failure, is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, conversation.ErrNotFound),
		errors.Is(err, conversation.ErrSessionEnded):
		return http.StatusNotFound

	case errors.Is(err, conversation.ErrSessionBusy):
		return http.StatusConflict

	case errors.Is(err, language.ErrUnsupported),
		errors.Is(err, content.ErrInvalidInput),
		errors.Is(err, speech.ErrEmptyAudio),
		errors.Is(err, speech.ErrEmptyText),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes upstream error text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	switch {
	case errors.Is(err, conversation.ErrNotFound),
		errors.Is(err, conversation.ErrSessionEnded):
		return MsgConversationNotFound

	case errors.Is(err, conversation.ErrSessionBusy):
		return MsgConversationBusy

	case errors.Is(err, language.ErrUnsupported):
		return language.UnsupportedMessage()

	case errors.Is(err, speech.ErrEmptyAudio):
		return MsgEmptyAudio

	case errors.Is(err, speech.ErrEmptyText):
		return MsgEmptyText

	case errors.Is(err, content.ErrInvalidInput),
		errors.Is(err, shared.ErrEmptyBody):
		return MsgInvalidRequest

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// SanitizeValidationError turns validator output into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
