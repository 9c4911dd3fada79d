package language

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedTable(t *testing.T) {
	t.Parallel()

	langs := Supported()
	require.Len(t, langs, 20, "the supported table has exactly 20 entries")
	assert.Equal(t, "en-US", langs[0].Code)
	assert.Equal(t, "no-NO", langs[len(langs)-1].Code)

	// Mutating the copy must not leak into the table
	langs[0].Code = "xx-XX"
	assert.True(t, IsSupported("en-US"))
	assert.False(t, IsSupported("xx-XX"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "tagalog", code: "tl-PH"},
		{name: "default", code: Default},
		{name: "unknown", code: "xx-XX", wantErr: true},
		{name: "case sensitive", code: "EN-us", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.code)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupported))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	name, ok := Name("tl-PH")
	assert.True(t, ok)
	assert.Equal(t, "Tagalog", name)

	_, ok = Name("xx-XX")
	assert.False(t, ok)
	assert.Equal(t, "the target language", NameOr("xx-XX", "the target language"))
}

func TestUnsupportedMessage(t *testing.T) {
	t.Parallel()

	msg := UnsupportedMessage()
	assert.True(t, strings.HasPrefix(msg, "Unsupported language. Supported: en-US, es-ES, fr-FR"))
	assert.True(t, strings.HasSuffix(msg, "sv-SE, no-NO"))
}
