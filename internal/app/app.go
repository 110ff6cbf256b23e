// Package app wires configuration, logging, the engine binding and the
// handlers into the services used by the process entry points.
package app

import (
	"context"
	"fmt"

	"github.com/pricofy/uroman-gateway/internal/config"
	"github.com/pricofy/uroman-gateway/internal/engine"
	"github.com/pricofy/uroman-gateway/internal/engine/execengine"
	"github.com/pricofy/uroman-gateway/internal/engine/lambdaengine"
	"github.com/pricofy/uroman-gateway/internal/handler"
	"github.com/pricofy/uroman-gateway/internal/logging"
	"github.com/pricofy/uroman-gateway/internal/platform"
	"github.com/pricofy/uroman-gateway/internal/protocol"
)

// App holds the process-wide components.
type App struct {
	Config     *config.Config
	Log        logging.Logger
	Binding    *engine.Binding
	Operations *handler.Handler
	Protocol   *protocol.Handler
}

// New builds the App with the engine selected by cfg.
func New(cfg *config.Config, log logging.Logger) (*App, error) {
	return NewWithFactory(cfg, log, EngineFactory(cfg))
}

// NewWithFactory builds the App around a custom engine factory. The engine
// itself is constructed lazily on first use.
func NewWithFactory(cfg *config.Config, log logging.Logger, factory engine.Factory) (*App, error) {
	binding := engine.NewBinding(factory,
		engine.WithNormalization(cfg.NormalizeInput),
		engine.WithLogger(log),
	)
	ops := handler.New(binding, log)

	proto, err := protocol.New(ops, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build protocol handler: %w", err)
	}

	return &App{
		Config:     cfg,
		Log:        log,
		Binding:    binding,
		Operations: ops,
		Protocol:   proto,
	}, nil
}

// Services returns the handlers shared by every platform adapter.
func (a *App) Services() platform.Services {
	return platform.Services{
		Operations: a.Operations,
		Protocol:   a.Protocol,
		Log:        a.Log,
	}
}

// EngineFactory returns the constructor for the configured engine backend.
func EngineFactory(cfg *config.Config) engine.Factory {
	switch cfg.Engine {
	case config.EngineLambda:
		return func(ctx context.Context) (engine.Engine, error) {
			e, err := lambdaengine.New(ctx, cfg.EngineFunction, cfg.EngineVersion)
			if err != nil {
				return nil, err
			}
			return e, nil
		}
	case config.EngineExec:
		return func(context.Context) (engine.Engine, error) {
			e, err := execengine.New(cfg.EngineCommand, cfg.EngineVersion)
			if err != nil {
				return nil, err
			}
			return e, nil
		}
	default:
		return func(context.Context) (engine.Engine, error) {
			return nil, fmt.Errorf("unknown engine backend %q", cfg.Engine)
		}
	}
}

// NewLogger returns the logger for cfg: human-readable in development,
// JSON otherwise.
func NewLogger(cfg *config.Config) logging.Logger {
	if cfg.IsDevelopment() {
		return logging.NewDevelopment()
	}
	return logging.NewProduction(cfg.LogLevel)
}
