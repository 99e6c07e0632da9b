package commands

import (
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	want := []string{"view", "add", "move", "status", "transition", "remove", "conflicts",
		"metrics", "report", "watch", "ui", "key", "info", "mcp", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("missing command %q: %v", name, err)
		}
	}
	for alias, name := range map[string]string{"get": "view", "rm": "remove", "stats": "metrics"} {
		cmd, _, err := root.Find([]string{alias})
		if err != nil || cmd.Name() != name {
			t.Fatalf("alias %q resolved to %v (%v), want %s", alias, cmd, err, name)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct{ in, fallback, want string }{
		{"", "/mcp", "/mcp"},
		{"mcp", "/x", "/mcp"},
		{" /metrics ", "", "/metrics"},
	}
	for _, tc := range tests {
		if got := normalizePath(tc.in, tc.fallback); got != tc.want {
			t.Fatalf("normalizePath(%q, %q) = %q, want %q", tc.in, tc.fallback, got, tc.want)
		}
	}
}
