package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lingua-api/internal/phrasebank"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/platform/postgres"
	"github.com/phrazzld/lingua-api/internal/store"
	"github.com/phrazzld/lingua-api/internal/testdb"
)

func TestPhraseStoreIntegration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	s := postgres.NewPhraseStore(db, logger.Discard())
	records := []phrasebank.Record{
		{Language: "it-IT", Kind: phrasebank.KindGreeting, Text: "Ciao!"},
		{Language: "it-IT", Kind: phrasebank.KindQuestion, Text: "Ti piace cucinare?"},
		{Language: "it-IT", Kind: phrasebank.KindQuestion, Text: "Ti piace cucinare?"},
	}
	written, err := s.SavePhrases(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	written, err = s.SavePhrases(ctx, []phrasebank.Record{
		{Language: "it-IT", Kind: phrasebank.KindGreeting, Text: "Come stai?"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, written, "greeting is replaced")

	loaded, err := s.LoadPhrases(ctx)
	require.NoError(t, err)
	bank, err := phrasebank.FromRecords(loaded)
	require.NoError(t, err)
	assert.Equal(t, "Come stai?", bank.Languages["it-IT"].Greeting)
	assert.Equal(t, []string{"Ti piace cucinare?"}, bank.Languages["it-IT"].Questions)

	counts, err := s.CountPhrases(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"it-IT": 2}, counts)
}

func TestPhraseConstraintsIntegration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	const insert = `INSERT INTO conversation_phrases (id, language, kind, text) VALUES ($1, $2, $3, $4)`

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(ctx, insert, uuid.New(), "de-DE", "greeting", "Hallo!")
		require.NoError(t, err)

		_, err = tx.ExecContext(ctx, insert, uuid.New(), "de-DE", "greeting", "Guten Tag!")
		assert.True(t, errors.Is(postgres.MapError(err), store.ErrDuplicate), "one greeting per language: %v", err)
	})

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(ctx, insert, uuid.New(), "de-DE", "question", "   ")
		assert.True(t, errors.Is(postgres.MapError(err), store.ErrInvalidEntity), "blank text: %v", err)
	})

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversation_phrases`).Scan(&n))
	assert.Zero(t, n, "test transactions are rolled back")
}
