package cli

import (
	"bytes"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	return executeCommandWithInput("", args...)
}

// executeCommandWithInput runs a command feeding input on stdin.
func executeCommandWithInput(input string, args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"serve", "invite", "list", "show", "health", "config", "version"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q command", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	if root.PersistentFlags().Lookup("server") == nil {
		t.Fatal("expected --server flag to exist")
	}
}

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestShowRejectsNonNumericID(t *testing.T) {
	_, err := executeCommand("show", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid date ID") {
		t.Fatalf("err = %v, want invalid date ID", err)
	}
}

func TestListRejectsArgs(t *testing.T) {
	if _, err := executeCommand("list", "extra"); err == nil {
		t.Fatal("expected error for extra argument")
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != Version {
		t.Errorf("output = %q, want %q", out, Version)
	}
}

func TestServeRejectsUnknownStore(t *testing.T) {
	_, err := executeCommand("serve", "--env-file", "", "--store", "postgres")
	if err == nil || !strings.Contains(err.Error(), "unknown store driver") {
		t.Fatalf("err = %v, want unknown store driver", err)
	}
}
