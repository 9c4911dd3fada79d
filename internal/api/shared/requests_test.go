package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     error
		errContains string
	}{
		{name: "valid json", requestBody: `{"name": "test", "age": 30}`},
		{name: "invalid json", requestBody: `{"name": "test", "age": 30,}`, errContains: "invalid character"},
		{name: "empty body", requestBody: "", wantErr: ErrEmptyBody},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))

			var got payload
			err := DecodeJSON(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, payload{Name: "test", Age: 30}, got)
			}
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		Text     string `validate:"required"`
		Language string `validate:"required"`
	}

	assert.NoError(t, ValidateRequest(request{Text: "hola", Language: "es-ES"}))

	err := ValidateRequest(request{Text: "hola"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Language", verrs[0].Field())

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}

func TestValidateRequestUsesJSONNames(t *testing.T) {
	type request struct {
		UserMessage string `json:"user_message" validate:"required"`
	}

	var verrs validator.ValidationErrors
	require.True(t, errors.As(ValidateRequest(request{}), &verrs))
	assert.Equal(t, "user_message", verrs[0].Field())
}
