package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	t.Cleanup(func() { SetVersion("", "", "") })

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{"graphview 1.0.0", "commit: abc123", "built: 2024-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "triangle.png")
	graph := filepath.Join("..", "graphfile", "testdata", "triangle.json")

	tests := []struct {
		name string
		args []string
	}{
		{"immediate", []string{"render", graph, "-o", out, "--width", "120", "--height", "90"}},
		{"batched", []string{"render", "--graph", graph, "-o", out, "--width", "120", "--height", "90", "--batch", "1", "--fps", "0"}},
		{"hull moving", []string{"render", graph, "-o", out, "--width", "120", "--height", "90", "--hull", "--moving", "-v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Remove(out)
			if log, err := execute(t, tt.args...); err != nil {
				t.Fatalf("render: %v\n%s", err, log)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output is empty")
			}
		})
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no graph", []string{"render"}},
		{"missing file", []string{"render", "missing.json"}},
		{"bad size", []string{"render", filepath.Join("..", "graphfile", "testdata", "triangle.json"), "--width", "0"}},
		{"bad settings", []string{"render", filepath.Join("..", "graphfile", "testdata", "triangle.json"), "--settings", "missing.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
