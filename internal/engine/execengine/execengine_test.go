package execengine

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestNew_MissingCommand(t *testing.T) {
	_, err := New("definitely-not-a-real-uroman-binary", "1.0")
	if err == nil {
		t.Fatal("New() should fail for a missing command")
	}
	if !strings.Contains(err.Error(), "failed to locate") {
		t.Errorf("New() error = %q, want locate failure", err.Error())
	}
}

func TestRomanize_PassesTextThroughStdin(t *testing.T) {
	requireCommand(t, "cat")

	e, err := New("cat", "test")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "Privet mir", "Privet mir"},
		{"trailing newline kept", "abc\n", "abc\n"},
		{"multi line", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Romanize(context.Background(), tt.input, "")
			if err != nil {
				t.Fatalf("Romanize() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Romanize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if e.Version() != "test" {
		t.Errorf("Version() = %q, want %q", e.Version(), "test")
	}
}

func TestRomanize_LangCodeIsPassedAsFlag(t *testing.T) {
	requireCommand(t, "echo")

	// echo prints its arguments instead of romanizing stdin.
	e, err := New("echo", "")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	got, err := e.Romanize(context.Background(), "ignored", "rus")
	if err != nil {
		t.Fatalf("Romanize() unexpected error: %v", err)
	}
	if got != "-l rus" {
		t.Errorf("Romanize() = %q, want %q", got, "-l rus")
	}
}

func TestRomanize_CommandFailure(t *testing.T) {
	requireCommand(t, "false")

	e, err := New("false", "")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if _, err := e.Romanize(context.Background(), "x", ""); err == nil {
		t.Fatal("Romanize() should fail when the command exits non-zero")
	}
}
