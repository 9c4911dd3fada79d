// Package phrasebank loads the practice phrases that feed the conversation
// phrase pool. Phrases come from an embedded YAML bank, an optional override
// file and an optional external Source such as Postgres; the banks are merged
// and then resolved for every supported language.
package phrasebank

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/lingua-api/internal/conversation"
)

//go:embed phrases.yaml
var defaultBank []byte

// ErrInvalidBank is returned for phrase data that cannot be used.
var ErrInvalidBank = errors.New("invalid phrase bank")

// Kind names as stored in files and databases.
const (
	KindGreeting  = "greeting"
	KindQuestion  = "question"
	KindStatement = "statement"
)

// Entry holds one language's phrases.
type Entry struct {
	Greeting   string   `yaml:"greeting,omitempty"`
	Questions  []string `yaml:"questions,omitempty"`
	Statements []string `yaml:"statements,omitempty"`
}

// Bank is a set of per-language phrase entries. Languages with no entry of
// their own, or with an empty field, borrow it from Fallback.
type Bank struct {
	Fallback  string           `yaml:"fallback,omitempty"`
	Languages map[string]Entry `yaml:"languages"`
}

// Record is a single phrase row as kept by an external Source.
type Record struct {
	Language string
	Kind     string
	Text     string
}

// Source supplies extra phrase records, for example from a database.
type Source interface {
	LoadPhrases(ctx context.Context) ([]Record, error)
}

// Options selects where phrases are loaded from besides the embedded bank.
type Options struct {
	// File is an optional YAML bank merged over the defaults.
	File string
	// Source is an optional record source merged last.
	Source Source
}

// Default returns the embedded bank.
func Default() (*Bank, error) {
	return Parse(defaultBank)
}

// Parse decodes a YAML bank.
func Parse(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if b.Languages == nil {
		b.Languages = make(map[string]Entry)
	}
	if b.Fallback != "" {
		if _, ok := b.Languages[b.Fallback]; !ok {
			return nil, fmt.Errorf("%w: fallback language %q has no entry", ErrInvalidBank, b.Fallback)
		}
	}
	return &b, nil
}

// LoadFile reads and decodes a YAML bank from path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase file %s: %w", path, err)
	}
	return Parse(data)
}

// FromRecords groups records into a bank. Unknown kinds are rejected.
func FromRecords(records []Record) (*Bank, error) {
	b := &Bank{Languages: make(map[string]Entry)}
	for _, r := range records {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		e := b.Languages[r.Language]
		switch r.Kind {
		case KindGreeting:
			e.Greeting = text
		case KindQuestion:
			e.Questions = append(e.Questions, text)
		case KindStatement:
			e.Statements = append(e.Statements, text)
		default:
			return nil, fmt.Errorf("%w: unknown phrase kind %q", ErrInvalidBank, r.Kind)
		}
		b.Languages[r.Language] = e
	}
	return b, nil
}

// Records flattens the bank into records, greeting first, in a stable order.
func (b *Bank) Records() []Record {
	var out []Record
	for _, code := range slices.Sorted(maps.Keys(b.Languages)) {
		e := b.Languages[code]
		if e.Greeting != "" {
			out = append(out, Record{Language: code, Kind: KindGreeting, Text: e.Greeting})
		}
		for _, q := range e.Questions {
			out = append(out, Record{Language: code, Kind: KindQuestion, Text: q})
		}
		for _, s := range e.Statements {
			out = append(out, Record{Language: code, Kind: KindStatement, Text: s})
		}
	}
	return out
}

// Merge returns a new bank with the overlays applied in order. An overlay's
// greeting replaces the base greeting; its questions and statements are
// appended. A non-empty overlay fallback replaces the base fallback.
func Merge(base *Bank, overlays ...*Bank) *Bank {
	out := &Bank{Fallback: base.Fallback, Languages: make(map[string]Entry, len(base.Languages))}
	for code, e := range base.Languages {
		out.Languages[code] = Entry{
			Greeting:   e.Greeting,
			Questions:  append([]string(nil), e.Questions...),
			Statements: append([]string(nil), e.Statements...),
		}
	}

	for _, overlay := range overlays {
		if overlay == nil {
			continue
		}
		if overlay.Fallback != "" {
			out.Fallback = overlay.Fallback
		}
		for code, e := range overlay.Languages {
			cur := out.Languages[code]
			if e.Greeting != "" {
				cur.Greeting = e.Greeting
			}
			cur.Questions = append(cur.Questions, e.Questions...)
			cur.Statements = append(cur.Statements, e.Statements...)
			out.Languages[code] = cur
		}
	}
	return out
}

// Resolve produces the phrase lists for each code, filling gaps from the
// fallback language. Questions and statements fall back together so a
// language never mixes its own questions with borrowed statements.
func (b *Bank) Resolve(codes []string) map[string]conversation.LanguagePhrases {
	fallback := b.Languages[b.Fallback]

	out := make(map[string]conversation.LanguagePhrases, len(codes))
	for _, code := range codes {
		e, ok := b.Languages[code]
		lp := conversation.LanguagePhrases{
			Greeting:   e.Greeting,
			Questions:  e.Questions,
			Statements: e.Statements,
		}
		if !ok || lp.Greeting == "" {
			lp.Greeting = fallback.Greeting
		}
		if len(lp.Questions) == 0 && len(lp.Statements) == 0 {
			lp.Questions = fallback.Questions
			lp.Statements = fallback.Statements
		}
		out[code] = lp
	}
	return out
}

// Load builds the merged bank from the embedded defaults and opts.
func Load(ctx context.Context, opts Options) (*Bank, error) {
	bank, err := Default()
	if err != nil {
		return nil, err
	}

	var overlays []*Bank
	if opts.File != "" {
		fileBank, err := LoadFile(opts.File)
		if err != nil {
			return nil, err
		}
		overlays = append(overlays, fileBank)
	}

	if opts.Source != nil {
		records, err := opts.Source.LoadPhrases(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load phrases from source: %w", err)
		}
		srcBank, err := FromRecords(records)
		if err != nil {
			return nil, err
		}
		overlays = append(overlays, srcBank)
	}

	return Merge(bank, overlays...), nil
}
