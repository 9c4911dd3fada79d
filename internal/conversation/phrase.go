package conversation

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

// Kind classifies a practice phrase.
type Kind int

const (
	KindQuestion Kind = iota
	KindStatement
)

// QuestionWeight is the probability that a draw targets a question rather than
// a statement.
const QuestionWeight = 0.6

func (k Kind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindStatement:
		return "statement"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) other() Kind {
	if k == KindQuestion {
		return KindStatement
	}
	return KindQuestion
}

// Phrase is a single practice prompt in the target language.
type Phrase struct {
	Text string
	Kind Kind
}

// LanguagePhrases is the raw material for one language's pool.
type LanguagePhrases struct {
	Greeting   string
	Questions  []string
	Statements []string
}

// Rand is the randomness a pool draws from. The top-level functions of
// math/rand/v2 are used when none is supplied.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type languagePool struct {
	greeting string
	phrases  [2][]Phrase
	// canonical form -> position within phrases[kind]
	index map[string]phraseRef
}

type phraseRef struct {
	kind Kind
	pos  int
}

func (lp *languagePool) size() int {
	return len(lp.phrases[KindQuestion]) + len(lp.phrases[KindStatement])
}

// PhrasePool is the read-only, language-partitioned set of practice phrases.
// It is safe for concurrent use once built.
type PhrasePool struct {
	langs map[string]*languagePool
	rng   Rand
}

// PoolOption configures a PhrasePool.
type PoolOption func(*PhrasePool)

// WithRand makes the pool draw from r. Useful for deterministic tests.
func WithRand(r Rand) PoolOption {
	return func(p *PhrasePool) {
		p.rng = r
	}
}

// NewPhrasePool builds a pool from per-language phrase lists. Phrases whose
// canonical form is empty or already present for that language are skipped,
// so every phrase in a language pool is distinct by canonical form.
func NewPhrasePool(src map[string]LanguagePhrases, opts ...PoolOption) *PhrasePool {
	p := &PhrasePool{
		langs: make(map[string]*languagePool, len(src)),
		rng:   globalRand{},
	}
	for _, opt := range opts {
		opt(p)
	}

	for code, lp := range src {
		pool := &languagePool{
			greeting: strings.TrimSpace(lp.Greeting),
			index:    make(map[string]phraseRef, len(lp.Questions)+len(lp.Statements)),
		}
		add := func(kind Kind, texts []string) {
			for _, text := range texts {
				text = strings.TrimSpace(text)
				canon := Normalize(text)
				if canon == "" {
					continue
				}
				if _, dup := pool.index[canon]; dup {
					continue
				}
				pool.index[canon] = phraseRef{kind: kind, pos: len(pool.phrases[kind])}
				pool.phrases[kind] = append(pool.phrases[kind], Phrase{Text: text, Kind: kind})
			}
		}
		add(KindQuestion, lp.Questions)
		add(KindStatement, lp.Statements)
		p.langs[code] = pool
	}

	return p
}

// Validate returns ErrConfiguration naming every language in codes that has
// no question or statement to draw from.
func (p *PhrasePool) Validate(codes []string) error {
	var missing []string
	for _, code := range codes {
		if p.Size(code) == 0 {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: no phrases for %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Size returns the number of distinct phrases available for language.
func (p *PhrasePool) Size(language string) int {
	lp, ok := p.langs[language]
	if !ok {
		return 0
	}
	return lp.size()
}

// Greeting returns the language's opening greeting, if one is configured.
func (p *PhrasePool) Greeting(language string) (Phrase, bool) {
	lp, ok := p.langs[language]
	if !ok || lp.greeting == "" {
		return Phrase{}, false
	}
	return Phrase{Text: lp.greeting, Kind: KindQuestion}, true
}

// DrawKind picks a phrase kind with the configured question weight.
func (p *PhrasePool) DrawKind() Kind {
	return drawKind(p.rng)
}

func drawKind(r Rand) Kind {
	if r.Float64() < QuestionWeight {
		return KindQuestion
	}
	return KindStatement
}

// NewDeck returns fresh per-session selection state for language, with every
// phrase of the pool still unused.
func (p *PhrasePool) NewDeck(language string) (*Deck, error) {
	lp, ok := p.langs[language]
	if !ok || lp.size() == 0 {
		return nil, fmt.Errorf("%w: no phrases for %s", ErrConfiguration, language)
	}

	d := &Deck{pool: lp, rng: p.rng}
	for k := range lp.phrases {
		d.unused[k] = make([]int, len(lp.phrases[k]))
		for i := range d.unused[k] {
			d.unused[k][i] = i
		}
	}
	return d, nil
}

// NextPhrase selects the next phrase for a session that has already been
// asked the given texts. Unused phrases are preferred; once every phrase of
// the language has been asked, any phrase may repeat.
func (p *PhrasePool) NextPhrase(language string, asked []string) (Phrase, error) {
	d, err := p.NewDeck(language)
	if err != nil {
		return Phrase{}, err
	}
	for _, text := range asked {
		d.MarkUsed(text)
	}
	return d.Draw(), nil
}

// Deck tracks which phrases of a language pool a single session has not yet
// been asked. It is not safe for concurrent use; a Session guards its deck
// with its own mutex.
type Deck struct {
	pool   *languagePool
	rng    Rand
	unused [2][]int
}

// Remaining returns how many phrases have not been drawn or marked used.
func (d *Deck) Remaining() int {
	return len(d.unused[KindQuestion]) + len(d.unused[KindStatement])
}

// Exhausted reports whether every phrase of the pool has been used.
func (d *Deck) Exhausted() bool {
	return d.Remaining() == 0
}

// DrawKind picks a phrase kind with the configured question weight.
func (d *Deck) DrawKind() Kind {
	return drawKind(d.rng)
}

// Draw selects a phrase: a weighted kind choice, then a uniform choice among
// the unused phrases of that kind, falling back to the other kind when the
// chosen one is used up. An exhausted deck draws uniformly from the whole
// pool, so phrases repeat.
func (d *Deck) Draw() Phrase {
	kind := d.DrawKind()
	if ph, ok := d.take(kind); ok {
		return ph
	}
	if ph, ok := d.take(kind.other()); ok {
		return ph
	}

	i := d.rng.IntN(d.pool.size())
	questions := d.pool.phrases[KindQuestion]
	if i < len(questions) {
		return questions[i]
	}
	return d.pool.phrases[KindStatement][i-len(questions)]
}

// MarkUsed removes text from the unused set if it belongs to the pool.
// Text outside the pool, such as a greeting or an enriched phrase, is ignored.
func (d *Deck) MarkUsed(text string) {
	ref, ok := d.pool.index[Normalize(text)]
	if !ok {
		return
	}
	u := d.unused[ref.kind]
	for i, pos := range u {
		if pos == ref.pos {
			d.removeAt(ref.kind, i)
			return
		}
	}
}

func (d *Deck) take(kind Kind) (Phrase, bool) {
	u := d.unused[kind]
	if len(u) == 0 {
		return Phrase{}, false
	}
	i := d.rng.IntN(len(u))
	pos := u[i]
	d.removeAt(kind, i)
	return d.pool.phrases[kind][pos], true
}

// removeAt swap-removes the i-th unused entry of kind.
func (d *Deck) removeAt(kind Kind, i int) {
	u := d.unused[kind]
	last := len(u) - 1
	u[i] = u[last]
	d.unused[kind] = u[:last]
}
