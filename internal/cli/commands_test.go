package cli

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/evcraddock/date-invite/internal/submission"
)

func seed(t *testing.T, store submission.Store, dates ...string) []*submission.Submission {
	t.Helper()
	var out []*submission.Submission
	for _, d := range dates {
		s, err := store.Create(context.Background(), submission.Payload{
			SelectedDate: d,
			PhoneNumber:  "123456789",
			Activities:   []string{"Dinner 🍝"},
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, s)
	}
	return out
}

func TestListCommand(t *testing.T) {
	store := startAPI(t)
	seed(t, store, "2025-06-01", "2025-06-02")

	out, err := executeCommand("list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"2025-06-01", "2025-06-02", "Dinner 🍝", "Total: 2 dates"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListCommandJSON(t *testing.T) {
	store := startAPI(t)
	seed(t, store, "2025-06-01")

	out, err := executeCommand("list", "--format", "json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var subs []submission.Submission
	if err := json.Unmarshal([]byte(out), &subs); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(subs) != 1 || subs[0].SelectedDate != "2025-06-01" {
		t.Errorf("subs = %+v", subs)
	}
}

func TestShowCommand(t *testing.T) {
	store := startAPI(t)
	created := seed(t, store, "2025-06-01")[0]

	out, err := executeCommand("show", strconv.FormatInt(created.ID, 10))
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Date #" + strconv.FormatInt(created.ID, 10), "2025-06-01", "123 456 789", "Dinner 🍝"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandNotFound(t *testing.T) {
	startAPI(t)

	_, err := executeCommand("show", "999999")
	if err == nil || err.Error() != "Date not found" {
		t.Fatalf("err = %v, want Date not found", err)
	}
}

func TestHealthCommand(t *testing.T) {
	startAPI(t)

	out, err := executeCommand("health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "✓ Server is running!") {
		t.Errorf("output = %q", out)
	}
}

func TestHealthCommandUnreachable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	out, err := executeCommand("health", "--server", url)
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !strings.Contains(out, "cannot reach server") {
		t.Errorf("output = %q", out)
	}
}
