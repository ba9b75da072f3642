package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFillHandler_RejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/fill", nil)
	w := httptest.NewRecorder()
	fillHandler(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestFillHandler_OptionsIsCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/fill", nil)
	w := httptest.NewRecorder()
	fillHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS header: %v", w.Header())
	}
}

func TestFillHandler_RejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/fill", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	fillHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFillHandler_SolvesOpenThreeByThree(t *testing.T) {
	body := `{
		"size": 3,
		"skeleton": "open",
		"baseWords": ["SOD", "PAY", "ARE", "SPA", "OAR", "DYE"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/fill", strings.NewReader(body))
	w := httptest.NewRecorder()
	fillHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp FillResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got failure %q (error %q)", resp.Failure, resp.Error)
	}
	if len(resp.Words) != 6 {
		t.Errorf("got %d words, want 6: %v", len(resp.Words), resp.Words)
	}
}

func TestFillHandler_UnknownSkeletonReportsError(t *testing.T) {
	body := `{"size": 5, "skeleton": "does-not-exist"}`
	req := httptest.NewRequest(http.MethodPost, "/fill", strings.NewReader(body))
	w := httptest.NewRecorder()
	fillHandler(w, req)

	var resp FillResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected failure for an unregistered skeleton")
	}
	if resp.Error == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestFillEventsHandler_ClosesWhenClientDisconnects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/fill/events?id=run-1", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	cancel() // simulate the client going away before the handler even starts
	fillEventsHandler(w, req)

	if w.Header().Get("Content-Type") != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", w.Header().Get("Content-Type"))
	}
}

func TestBroadcaster_BroadcastOnlyReachesMatchingRun(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("run-a")
	other := b.Register("run-b")

	b.Broadcast("run-a", "hello")

	select {
	case msg := <-a.ch:
		if msg != "hello" {
			t.Errorf("got %q, want %q", msg, "hello")
		}
	default:
		t.Fatal("expected run-a's client to receive the broadcast")
	}

	select {
	case msg := <-other.ch:
		t.Fatalf("run-b's client should not have received anything, got %q", msg)
	default:
	}
}
