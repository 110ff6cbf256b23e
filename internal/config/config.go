// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/pricofy/uroman-gateway/internal/platform"
)

// Request modes.
const (
	ModeHTTP = "http"
	ModeMCP  = "mcp"
)

// Engine backends.
const (
	EngineExec   = "exec"
	EngineLambda = "lambda"
)

// Config is the process configuration.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL"   envDefault:"info"`

	Platform string `env:"ROMANIZER_PLATFORM" envDefault:"gateway"`
	Mode     string `env:"ROMANIZER_MODE"     envDefault:"http"`

	Engine         string `env:"ROMANIZER_ENGINE"          envDefault:"exec"`
	EngineCommand  string `env:"ROMANIZER_ENGINE_COMMAND"  envDefault:"uroman"`
	EngineFunction string `env:"ROMANIZER_ENGINE_FUNCTION"`
	EngineVersion  string `env:"ROMANIZER_ENGINE_VERSION"`
	NormalizeInput bool   `env:"ROMANIZER_NORMALIZE_INPUT" envDefault:"true"`

	AllowedOrigin string `env:"ROMANIZER_ALLOWED_ORIGIN" envDefault:"*"`
	MaxBodyBytes  int64  `env:"ROMANIZER_MAX_BODY_BYTES" envDefault:"1048576"`
	Addr          string `env:"ROMANIZER_ADDR"           envDefault:":8080"`

	// FunctionName is set by the Lambda runtime and used for warmup self-invokes.
	FunctionName string `env:"AWS_LAMBDA_FUNCTION_NAME"`

	// Kind is the validated Platform.
	Kind platform.Kind `env:"-"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes enumerated settings and checks their combinations.
// An edge platform fails with *platform.UnsupportedError.
func (c *Config) Validate() error {
	kind, err := platform.ParseKind(c.Platform)
	if err != nil {
		return err
	}
	c.Kind = kind

	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	switch c.Mode {
	case ModeHTTP, ModeMCP:
	default:
		return fmt.Errorf("invalid ROMANIZER_MODE %q (want http or mcp)", c.Mode)
	}

	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	switch c.Engine {
	case EngineExec:
		if strings.TrimSpace(c.EngineCommand) == "" {
			return fmt.Errorf("ROMANIZER_ENGINE_COMMAND is required for the exec engine")
		}
	case EngineLambda:
		if strings.TrimSpace(c.EngineFunction) == "" {
			return fmt.Errorf("ROMANIZER_ENGINE_FUNCTION is required for the lambda engine")
		}
	default:
		return fmt.Errorf("invalid ROMANIZER_ENGINE %q (want exec or lambda)", c.Engine)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("ROMANIZER_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// IsDevelopment reports whether the process runs outside production.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return false
	}
	return true
}
