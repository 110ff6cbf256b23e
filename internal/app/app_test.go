package app

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/pricofy/uroman-gateway/internal/config"
	"github.com/pricofy/uroman-gateway/internal/domain"
	"github.com/pricofy/uroman-gateway/internal/engine"
	"github.com/pricofy/uroman-gateway/internal/engine/enginetest"
	"github.com/pricofy/uroman-gateway/internal/logging"
	"github.com/pricofy/uroman-gateway/internal/platform"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:    "test",
		Kind:           platform.KindDirect,
		Mode:           config.ModeHTTP,
		Engine:         config.EngineExec,
		EngineCommand:  "uroman",
		NormalizeInput: true,
		AllowedOrigin:  "*",
		MaxBodyBytes:   platform.DefaultMaxBodyBytes,
	}
}

func TestNewWithFactory_Wiring(t *testing.T) {
	f := &enginetest.Fake{Release: "1.3.1"}
	a, err := NewWithFactory(testConfig(), logging.Discard(), func(context.Context) (engine.Engine, error) {
		return f, nil
	})
	if err != nil {
		t.Fatalf("NewWithFactory() unexpected error: %v", err)
	}
	if a.Binding.Initialized() {
		t.Fatal("engine constructed before first use")
	}

	direct := platform.NewDirect(a.Services())
	resp := direct.HandleHTTP(context.Background(), json.RawMessage(`{"text":"Привет","lang_code":"rus"}`))

	var res domain.SingleResult
	if err := json.Unmarshal(resp, &res); err != nil {
		t.Fatal(err)
	}
	if res.Romanized != "Privet" {
		t.Errorf("Romanized = %q, want Privet", res.Romanized)
	}
	if !a.Binding.Initialized() {
		t.Error("engine not constructed after first request")
	}

	mcpResp := direct.HandleProtocol(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","method":"tools/list","id":1}`))
	if !strings.Contains(string(mcpResp), "romanize_batch") {
		t.Errorf("tools/list response = %s", mcpResp)
	}
}

func TestEngineFactory_Exec(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	cfg := testConfig()
	cfg.EngineCommand = "cat"
	cfg.EngineVersion = "test"

	e, err := EngineFactory(cfg)(context.Background())
	if err != nil {
		t.Fatalf("factory unexpected error: %v", err)
	}
	if e.Version() != "test" {
		t.Errorf("Version() = %q, want test", e.Version())
	}
}

func TestEngineFactory_MissingCommand(t *testing.T) {
	cfg := testConfig()
	cfg.EngineCommand = "definitely-not-a-romanizer-binary"

	e, err := EngineFactory(cfg)(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if e != nil {
		t.Errorf("factory returned a non-nil engine alongside an error")
	}
}

func TestEngineFactory_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Engine = "python"

	if _, err := EngineFactory(cfg)(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
