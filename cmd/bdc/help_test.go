package main

import (
	"strings"
	"testing"
)

func TestColorizeHelpOutput(t *testing.T) {
	plain := `Usage:
  bdc [command]

Available Commands:
  list        List issues
  show        Show one issue

Flags:
      --socket string   daemon socket path
`
	out := colorizeHelpOutput(plain)

	if !strings.Contains(out, "\x1b[") {
		t.Fatal("colorized help contains no ANSI escapes")
	}
	// "Usage:" is left unstyled; section headers and command names are not.
	if !strings.Contains(out, "Usage:\n") {
		t.Error("Usage: header was restyled")
	}
	for _, want := range []string{"Available Commands:", "Flags:", "list", "string"} {
		if !strings.Contains(out, want) {
			t.Errorf("colorized help lost %q", want)
		}
	}
}
