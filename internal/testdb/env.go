package testdb

import "os"

// Environment variables read by the package.
const (
	EnvTestDatabaseURL     = "LINGUA_TEST_DATABASE_URL" // Preferred
	EnvDatabaseURL         = "DATABASE_URL"
	EnvRequireTestDatabase = "LINGUA_REQUIRE_TEST_DATABASE"
)

// DatabaseURL returns the URL of the test database, or "" when none is set.
func DatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Required reports whether a missing test database should fail tests rather
// than skip them.
func Required() bool {
	switch os.Getenv(EnvRequireTestDatabase) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
