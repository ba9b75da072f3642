package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestRestOracle_Request_ParsesWordsAndUppercases(t *testing.T) {
	var gotPattern, gotExclude string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotPattern = q.Get("pattern")
		gotExclude = q.Get("exclude")
		json.NewEncoder(w).Encode(restWordList{Words: []string{"cat", "dog"}})
	}))
	defer server.Close()

	o := NewRestOracle(server.URL, "")
	words, err := o.Request(context.Background(), "C.T", 5, map[string]bool{"RAT": true})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if len(words) != 2 || words[0] != "CAT" || words[1] != "DOG" {
		t.Errorf("words = %v, want [CAT DOG]", words)
	}
	if gotPattern != "C.T" {
		t.Errorf("server saw pattern %q, want C.T", gotPattern)
	}
	if gotExclude != "RAT" {
		t.Errorf("server saw exclude %q, want RAT", gotExclude)
	}
}

func TestRestOracle_Request_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	o := NewRestOracle(server.URL, "")
	if _, err := o.Request(context.Background(), "C.T", 5, nil); err == nil {
		t.Errorf("expected an error from a 500 response")
	}
}

func TestRestOracle_Request_SendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(restWordList{})
	}))
	defer server.Close()

	o := NewRestOracle(server.URL, "secret-token")
	if _, err := o.Request(context.Background(), "C.T", 5, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization header = %q, want Bearer secret-token", gotAuth)
	}
}

func TestRestOracle_BaseURLIsUsedAsIs(t *testing.T) {
	o := NewRestOracle("http://example.invalid/words", "")
	u, err := url.Parse(o.baseURL)
	if err != nil || u.Path != "/words" {
		t.Fatalf("unexpected baseURL handling: %v %v", u, err)
	}
}
