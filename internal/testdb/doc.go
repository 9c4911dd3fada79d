// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests call Open, which skips the test when no database is configured and
// otherwise returns a migrated connection that is reset when the test ends.
// WithTx runs a function inside a transaction that is always rolled back, so
// tests can write freely without affecting each other:
//
//	db := testdb.Open(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    // use tx
//	})
//
// The database URL comes from LINGUA_TEST_DATABASE_URL, falling back to
// DATABASE_URL. Set LINGUA_REQUIRE_TEST_DATABASE to turn a missing URL into
// a test failure, which CI jobs with a database service should do.
package testdb
