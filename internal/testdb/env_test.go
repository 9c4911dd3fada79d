package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL(t *testing.T) {
	t.Setenv(EnvTestDatabaseURL, "")
	t.Setenv(EnvDatabaseURL, "")
	assert.Empty(t, DatabaseURL())

	t.Setenv(EnvDatabaseURL, "postgres://fallback")
	assert.Equal(t, "postgres://fallback", DatabaseURL())

	t.Setenv(EnvTestDatabaseURL, "postgres://preferred")
	assert.Equal(t, "postgres://preferred", DatabaseURL())
}

func TestRequired(t *testing.T) {
	for value, want := range map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"1":     true,
		"true":  true,
	} {
		t.Setenv(EnvRequireTestDatabase, value)
		assert.Equal(t, want, Required(), "value %q", value)
	}
}

func TestOpenSkipsWithoutDatabase(t *testing.T) {
	t.Setenv(EnvTestDatabaseURL, "")
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvRequireTestDatabase, "")

	skipped := false
	t.Run("inner", func(t *testing.T) {
		defer func() { skipped = t.Skipped() }()
		Open(t)
	})
	assert.True(t, skipped)
}
