// Package execengine runs the uroman command-line tool as the romanization engine.
package execengine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand is the uroman CLI looked up on PATH.
const DefaultCommand = "uroman"

// Engine invokes the uroman CLI once per text: the text on stdin and the
// romanization on stdout. An optional language code is passed as "-l <code>".
type Engine struct {
	path    string
	args    []string
	version string
}

// New resolves command (a program followed by fixed arguments, e.g.
// "/opt/uroman/bin/uroman --no-caching") and returns an Engine reporting version.
func New(command, version string) (*Engine, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{DefaultCommand}
	}

	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", fields[0], err)
	}

	return &Engine{
		path:    path,
		args:    fields[1:],
		version: version,
	}, nil
}

// Romanize runs the CLI for a single text.
func (e *Engine) Romanize(ctx context.Context, text, langCode string) (string, error) {
	args := append([]string{}, e.args...)
	if langCode != "" {
		args = append(args, "-l", langCode)
	}

	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("uroman failed: %w", err)
		}
		return "", fmt.Errorf("uroman failed: %w: %s", err, msg)
	}

	// The CLI terminates every input line with a newline; only strip the one
	// it adds when the input itself did not end with one.
	out := stdout.String()
	if !strings.HasSuffix(text, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out, nil
}

// Version returns the configured engine version.
func (e *Engine) Version() string {
	return e.version
}
