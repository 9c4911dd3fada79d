package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/lingua-api/internal/language"
	"github.com/phrazzld/lingua-api/internal/phrasebank"
	"github.com/phrazzld/lingua-api/internal/store"
)

const (
	loadPhrasesQuery = `
		SELECT language, kind, text
		FROM conversation_phrases
		ORDER BY language, kind, created_at, text`

	insertPhraseQuery = `
		INSERT INTO conversation_phrases (id, language, kind, text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (language, kind, text) DO NOTHING`

	upsertGreetingQuery = `
		INSERT INTO conversation_phrases (id, language, kind, text)
		VALUES ($1, $2, 'greeting', $3)
		ON CONFLICT (language) WHERE kind = 'greeting'
		DO UPDATE SET text = EXCLUDED.text, updated_at = NOW()
		WHERE conversation_phrases.text <> EXCLUDED.text`

	countPhrasesQuery = `
		SELECT language, COUNT(*)
		FROM conversation_phrases
		GROUP BY language`
)

// PhraseStore implements store.PhraseStore on PostgreSQL.
type PhraseStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.PhraseStore = (*PhraseStore)(nil)

// NewPhraseStore creates a PhraseStore using db.
func NewPhraseStore(db *sql.DB, logger *slog.Logger) *PhraseStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PhraseStore{db: db, logger: logger.With("component", "phrase_store")}
}

// LoadPhrases returns every stored phrase.
func (s *PhraseStore) LoadPhrases(ctx context.Context) ([]phrasebank.Record, error) {
	rows, err := s.db.QueryContext(ctx, loadPhrasesQuery)
	if err != nil {
		return nil, store.NewStoreError("phrase", "load", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var records []phrasebank.Record
	for rows.Next() {
		var r phrasebank.Record
		if err := rows.Scan(&r.Language, &r.Kind, &r.Text); err != nil {
			return nil, store.NewStoreError("phrase", "load", "scan failed", MapError(err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("phrase", "load", "iteration failed", MapError(err))
	}

	s.logger.DebugContext(ctx, "loaded phrases", "count", len(records))
	return records, nil
}

// SavePhrases writes records in a single transaction. Every record is
// validated before anything is written.
func (s *PhraseStore) SavePhrases(ctx context.Context, records []phrasebank.Record) (int, error) {
	clean := make([]phrasebank.Record, len(records))
	for i, r := range records {
		r.Text = strings.TrimSpace(r.Text)
		if err := validateRecord(r); err != nil {
			return 0, store.NewStoreError("phrase", "save", fmt.Sprintf("record %d", i+1), err)
		}
		clean[i] = r
	}

	written := 0
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, r := range clean {
			n, err := savePhrase(ctx, tx, r)
			if err != nil {
				return store.NewStoreError("phrase", "save", r.Language+" "+r.Kind, MapError(err))
			}
			written += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "saved phrases", "submitted", len(records), "written", written)
	return written, nil
}

// CountPhrases returns the number of stored phrases per language.
func (s *PhraseStore) CountPhrases(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, countPhrasesQuery)
	if err != nil {
		return nil, store.NewStoreError("phrase", "count", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, store.NewStoreError("phrase", "count", "scan failed", MapError(err))
		}
		counts[code] = n
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("phrase", "count", "iteration failed", MapError(err))
	}
	return counts, nil
}

func savePhrase(ctx context.Context, db store.DBTX, r phrasebank.Record) (int, error) {
	var (
		res sql.Result
		err error
	)
	if r.Kind == phrasebank.KindGreeting {
		res, err = db.ExecContext(ctx, upsertGreetingQuery, uuid.New(), r.Language, r.Text)
	} else {
		res, err = db.ExecContext(ctx, insertPhraseQuery, uuid.New(), r.Language, r.Kind, r.Text)
	}
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

func validateRecord(r phrasebank.Record) error {
	if err := language.Validate(r.Language); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	switch r.Kind {
	case phrasebank.KindGreeting, phrasebank.KindQuestion, phrasebank.KindStatement:
	default:
		return fmt.Errorf("%w: unknown phrase kind %q", store.ErrInvalidEntity, r.Kind)
	}
	if r.Text == "" {
		return fmt.Errorf("%w: phrase text cannot be empty", store.ErrInvalidEntity)
	}
	return nil
}
