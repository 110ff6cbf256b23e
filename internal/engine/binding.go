// Package engine owns the process-wide handle to the romanization engine.
//
// The handle is built lazily on first use and then reused by every
// invocation served by the same process, so warm Lambda containers never
// pay the engine start-up cost twice.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/text/unicode/norm"

	"github.com/pricofy/uroman-gateway/internal/domain"
	"github.com/pricofy/uroman-gateway/internal/langhint"
	"github.com/pricofy/uroman-gateway/internal/logging"
)

// Engine is a constructed romanization engine.
// Implementations must be safe for sequential use from any goroutine.
type Engine interface {
	Romanize(ctx context.Context, text, langCode string) (string, error)
	Version() string
}

// Factory constructs an Engine. It is called until it succeeds once.
type Factory func(ctx context.Context) (Engine, error)

// Option configures a Binding.
type Option func(*Binding)

// WithNormalization toggles NFC normalization of engine input.
func WithNormalization(enabled bool) Option {
	return func(b *Binding) {
		b.normalize = enabled
	}
}

// WithLogger sets the binding logger.
func WithLogger(log logging.Logger) Option {
	return func(b *Binding) {
		b.log = log
	}
}

// Binding lazily constructs and holds the engine handle.
type Binding struct {
	factory   Factory
	normalize bool
	log       logging.Logger

	mu     sync.Mutex
	handle atomic.Pointer[handle]
}

type handle struct {
	engine Engine
}

// NewBinding returns a Binding that builds its engine with factory on first use.
func NewBinding(factory Factory, opts ...Option) *Binding {
	b := &Binding{
		factory:   factory,
		normalize: true,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Get returns the engine, constructing it if this is the first use.
// A failed construction is not cached; the next call tries again.
func (b *Binding) Get(ctx context.Context) (Engine, error) {
	if h := b.handle.Load(); h != nil {
		return h.engine, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if h := b.handle.Load(); h != nil {
		return h.engine, nil
	}

	e, err := b.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("failed to initialize engine: factory returned no engine")
	}

	b.handle.Store(&handle{engine: e})
	b.log.Info("engine initialized", "version", e.Version())
	return e, nil
}

// Initialized reports whether the handle has been constructed.
func (b *Binding) Initialized() bool {
	return b.handle.Load() != nil
}

// Transliterate romanizes text. Empty input returns "" without touching the engine.
func (b *Binding) Transliterate(ctx context.Context, text, langHint string) (string, error) {
	if text == "" {
		return "", nil
	}

	e, err := b.Get(ctx)
	if err != nil {
		return "", err
	}

	input := text
	if b.normalize {
		input = norm.NFC.String(text)
	}
	lang, _ := langhint.Normalize(langHint)

	out, err := e.Romanize(ctx, input, lang)
	if err != nil {
		return "", err
	}
	return out, nil
}

// TransliterateBatch romanizes texts in order, one engine call per item.
// The first failure aborts the batch; partial results are never returned.
func (b *Binding) TransliterateBatch(ctx context.Context, texts []string, langHint string) ([]string, error) {
	results := make([]string, 0, len(texts))
	for i, text := range texts {
		out, err := b.Transliterate(ctx, text, langHint)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		results = append(results, out)
	}
	return results, nil
}

// Version returns the engine version, or "unknown" when it cannot be determined.
func (b *Binding) Version(ctx context.Context) string {
	e, err := b.Get(ctx)
	if err != nil {
		b.log.Error(err, "engine unavailable for version lookup")
		return domain.UnknownVersion
	}
	if v := e.Version(); v != "" {
		return v
	}
	return domain.UnknownVersion
}

// Sample is a warm-up input.
type Sample struct {
	Text     string
	LangCode string
}

// DefaultSamples cover the most common scripts.
var DefaultSamples = []Sample{
	{Text: "Hello"},
	{Text: "Привет", LangCode: "rus"},
	{Text: "你好", LangCode: "zho"},
	{Text: "مرحبا", LangCode: "ara"},
	{Text: "नमस्ते", LangCode: "hin"},
}

// Warm initializes the engine and runs samples through it.
// Sample failures are logged and ignored; only initialization errors are returned.
func (b *Binding) Warm(ctx context.Context, samples []Sample) error {
	if _, err := b.Get(ctx); err != nil {
		return err
	}
	for _, s := range samples {
		if _, err := b.Transliterate(ctx, s.Text, s.LangCode); err != nil {
			b.log.Debug("warm-up sample failed", "lang", s.LangCode, "error", err.Error())
		}
	}
	return nil
}
