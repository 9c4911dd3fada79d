package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/lingua-api/internal/api/shared"
	"github.com/phrazzld/lingua-api/internal/content"
	"github.com/phrazzld/lingua-api/internal/conversation"
	"github.com/phrazzld/lingua-api/internal/generation"
	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/speech"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    MsgUnexpected,
		},
		{
			name:           "unknown conversation",
			err:            fmt.Errorf("lookup: %w", conversation.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedMsg:    MsgConversationNotFound,
		},
		{
			name:           "ended conversation",
			err:            conversation.ErrSessionEnded,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    MsgConversationNotFound,
		},
		{
			name:           "busy conversation",
			err:            fmt.Errorf("%w: abc", conversation.ErrSessionBusy),
			expectedStatus: http.StatusConflict,
			expectedMsg:    MsgConversationBusy,
		},
		{
			name:           "unsupported language",
			err:            language.Validate("xx-XX"),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    language.UnsupportedMessage(),
		},
		{
			name:           "invalid content input",
			err:            fmt.Errorf("%w: topic cannot be empty", content.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgInvalidRequest,
		},
		{
			name:           "empty audio",
			err:            speech.ErrEmptyAudio,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgEmptyAudio,
		},
		{
			name:           "empty text",
			err:            speech.ErrEmptyText,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgEmptyText,
		},
		{
			name:           "empty body",
			err:            shared.ErrEmptyBody,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgInvalidRequest,
		},
		{
			name:           "enrichment failure",
			err:            fmt.Errorf("%w: %w", conversation.ErrEnrichmentFailed, generation.ErrContentBlocked),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    MsgUnexpected,
		},
		{
			name:           "model failure",
			err:            fmt.Errorf("story: %w", generation.ErrTransientFailure),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    MsgUnexpected,
		},
		{
			name:           "plain error",
			err:            errors.New("pq: password authentication failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    MsgUnexpected,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedMsg, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(StoryRequest{})
	assert.Equal(t, "Invalid topic: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("Key: 'X' Error: something")))
}
