package menu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const feedBody = `[{"month": 1, "days": [15, 16], "higawari": ["soba", "curry"]}]`

func TestClientFetch(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second, 0, -1, zap.NewNop())

	menus, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(menus) != 1 || menus[0].Month != 1 || len(menus[0].Days) != 2 {
		t.Errorf("Fetch returned %+v", menus)
	}

	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestClientFetchCaches(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second, 0, time.Hour, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background()); err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
	}

	if hits != 1 {
		t.Errorf("server hit %d times with warm cache, want 1", hits)
	}

	c.ClearCache()

	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch after ClearCache failed: %v", err)
	}

	if hits != 2 {
		t.Errorf("server hit %d times after ClearCache, want 2", hits)
	}
}

func TestClientFetchRetriesOnServerError(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second, 1, -1, zap.NewNop())

	menus, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(menus) != 1 {
		t.Errorf("Fetch returned %d records, want 1", len(menus))
	}

	if hits != 2 {
		t.Errorf("server hit %d times, want 2", hits)
	}
}

func TestClientFetchExhaustsRetries(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second, 1, -1, zap.NewNop())

	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch succeeded against a failing server")
	}

	if hits != 2 {
		t.Errorf("server hit %d times, want 2", hits)
	}
}

func TestClientFetchDoesNotRetryDecodeErrors(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[{"days": [1], "higawari": ["a"]}]`)) // month missing
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second, 3, -1, zap.NewNop())

	_, err := c.Fetch(context.Background())

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Fetch error = %v, want *DecodeError", err)
	}

	if hits != 1 {
		t.Errorf("server hit %d times for a decode error, want 1", hits)
	}
}

func TestClientFetchHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second, 5, -1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch error = %v, want context.Canceled", err)
	}
}
