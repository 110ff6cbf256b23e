// Package enginetest provides a deterministic in-memory engine for tests.
package enginetest

import (
	"context"
	"errors"
	"sync"

	"github.com/pricofy/uroman-gateway/internal/engine"
)

// Table pins romanizations for the scripts used across tests.
var Table = map[string]string{
	"Привет мир": "Privet mir",
	"Привет":     "Privet",
	"你好":         "Nihao",
	"Hello":      "Hello",
	"مرحبا":      "mrhba",
}

// ErrFail is returned for texts listed in Fake.FailOn.
var ErrFail = errors.New("engine exploded")

// Fake romanizes from Table and echoes unknown input.
type Fake struct {
	FailOn  map[string]bool
	Release string
	Panic   bool

	mu    sync.Mutex
	calls []Call
}

// Call records one Romanize invocation.
type Call struct {
	Text     string
	LangCode string
}

// Romanize implements engine.Engine.
func (f *Fake) Romanize(_ context.Context, text, langCode string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Text: text, LangCode: langCode})
	f.mu.Unlock()

	if f.Panic {
		panic("fake engine panic")
	}
	if f.FailOn[text] {
		return "", ErrFail
	}
	if out, ok := Table[text]; ok {
		return out, nil
	}
	return text, nil
}

// Version implements engine.Engine.
func (f *Fake) Version() string {
	return f.Release
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Binding wraps f in an engine.Binding with a factory that always succeeds.
func Binding(f *Fake) *engine.Binding {
	return engine.NewBinding(func(context.Context) (engine.Engine, error) {
		return f, nil
	})
}

// FailingBinding returns a Binding whose factory always fails with err.
func FailingBinding(err error) *engine.Binding {
	return engine.NewBinding(func(context.Context) (engine.Engine, error) {
		return nil, err
	})
}
