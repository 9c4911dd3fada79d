package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/lingua-api/internal/phrasebank"
)

// DBTX is implemented by both *sql.DB and *sql.Tx, so store code can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PhraseStore persists conversation phrases. It is a phrasebank.Source, so a
// configured store contributes to the bank at startup.
type PhraseStore interface {
	phrasebank.Source

	// SavePhrases stores records, skipping questions and statements that
	// already exist and replacing a language's greeting. It returns the
	// number of rows written.
	SavePhrases(ctx context.Context, records []phrasebank.Record) (int, error)

	// CountPhrases returns the number of stored phrases per language.
	CountPhrases(ctx context.Context) (map[string]int, error)
}
