package internals

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Config
	}{
		{
			name:     "empty document keeps defaults",
			input:    "",
			expected: DefaultConfig(),
		},
		{
			name: "overrides",
			input: `
prompt: "monkey> "
fail_fast: true
max_call_depth: 50
log_level: debug
color: NEVER
`,
			expected: Config{
				Prompt:       "monkey> ",
				FailFast:     true,
				MaxCallDepth: 50,
				LogLevel:     "debug",
				Color:        ColorNever,
			},
		},
	}

	for _, tt := range tests {
		cfg, err := DecodeConfig(strings.NewReader(tt.input))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if diff := deep.Equal(cfg, tt.expected); diff != nil {
			t.Errorf("%s: %v", tt.name, diff)
		}
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	inputs := []string{
		"unknown_key: 1",
		"max_call_depth: -1",
		"color: purple",
		"log_level: loud",
		"prompt: [",
	}

	for _, input := range inputs {
		if _, err := DecodeConfig(strings.NewReader(input)); err == nil {
			t.Errorf("input %q: expected an error", input)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monkey.yaml")
	if err := os.WriteFile(path, []byte("prompt: \"$ \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if cfg.Prompt != "$ " {
		t.Errorf("expected prompt %q, got %q", "$ ", cfg.Prompt)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("an explicit missing config should fail")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", slog.Int("depth", 2))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "depth=2") {
		t.Errorf("info record missing: %q", out)
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected unknown level error")
	}
}
