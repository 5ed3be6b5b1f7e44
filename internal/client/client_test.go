package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evcraddock/date-invite/internal/submission"
)

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestSaveDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/save-date" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var p submission.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.PhoneNumber != "123456789" || p.SelectedDate != "2025-06-01" {
			t.Errorf("payload = %+v", p)
		}
		writeJSON(t, w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Date saved successfully! ❤️",
			"data": submission.Submission{
				ID:           1748736000000,
				SelectedDate: p.SelectedDate,
				PhoneNumber:  p.PhoneNumber,
				Activities:   p.Activities,
				CreatedAt:    time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	sub, err := c.SaveDate(context.Background(), submission.Payload{
		SelectedDate: "2025-06-01",
		PhoneNumber:  "123456789",
		Activities:   []string{"Bowling 🎳"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if sub.ID != 1748736000000 {
		t.Errorf("id = %d", sub.ID)
	}
	if len(sub.Activities) != 1 || sub.Activities[0] != "Bowling 🎳" {
		t.Errorf("activities = %v", sub.Activities)
	}
}

func TestSaveDateValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid phone number format. Expected 9 digits.",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SaveDate(context.Background(), submission.Payload{SelectedDate: "2025-06-01", PhoneNumber: "12345"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "Invalid phone number format. Expected 9 digits." {
		t.Errorf("message = %q", apiErr.Error())
	}
}

func TestListDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dates" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"count":   2,
			"data": []submission.Submission{
				{ID: 1, SelectedDate: "2025-06-01", PhoneNumber: "123456789"},
				{ID: 2, SelectedDate: "2025-06-02", PhoneNumber: "987654321"},
			},
		})
	}))
	defer srv.Close()

	subs, err := New(srv.URL).ListDates(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d, want 2", len(subs))
	}
	if subs[1].PhoneNumber != "987654321" {
		t.Errorf("second = %+v", subs[1])
	}
}

func TestGetDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dates/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    submission.Submission{ID: 42, SelectedDate: "2025-06-01"},
		})
	}))
	defer srv.Close()

	sub, err := New(srv.URL).GetDate(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.ID != 42 {
		t.Errorf("id = %d", sub.ID)
	}
}

func TestGetDateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Date not found",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetDate(context.Background(), 999999)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 APIError", err)
	}
}

func TestHealth(t *testing.T) {
	ts := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"message":   "Server is running! ❤️",
			"timestamp": ts,
		})
	}))
	defer srv.Close()

	h, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !h.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", h.Timestamp, ts)
	}
	if h.Message != "Server is running! ❤️" {
		t.Errorf("message = %q", h.Message)
	}
}

func TestServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListDates(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "server error: Internal Server Error" {
		t.Errorf("err = %q", err.Error())
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New("").BaseURL(); got != DefaultBaseURL {
		t.Errorf("base = %q, want %q", got, DefaultBaseURL)
	}
	if got := New("https://dates.example.com/").BaseURL(); got != "https://dates.example.com" {
		t.Errorf("base = %q", got)
	}
}
