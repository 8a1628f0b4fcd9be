package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"EmojiFM/config"
)

type fakeSpotify struct {
	tokenCalls  int64
	searchCalls int64

	tokenStatus  int
	searchStatus int
	expiresIn    int64
	tracks       []map[string]interface{}

	lastAuth   string
	lastBearer string
	lastQuery  map[string]string
}

func newFakeSpotify() *fakeSpotify {
	return &fakeSpotify{
		tokenStatus:  http.StatusOK,
		searchStatus: http.StatusOK,
		expiresIn:    3600,
	}
}

func (f *fakeSpotify) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.tokenCalls, 1)
		f.lastAuth = r.Header.Get("Authorization")
		if r.FormValue("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": fmt.Sprintf("token-%d", atomic.LoadInt64(&f.tokenCalls)),
			"token_type":   "Bearer",
			"expires_in":   f.expiresIn,
		})
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.searchCalls, 1)
		f.lastBearer = r.Header.Get("Authorization")
		f.lastQuery = map[string]string{
			"q":      r.URL.Query().Get("q"),
			"type":   r.URL.Query().Get("type"),
			"limit":  r.URL.Query().Get("limit"),
			"market": r.URL.Query().Get("market"),
		}
		if f.searchStatus != http.StatusOK {
			w.WriteHeader(f.searchStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"tracks": map[string]interface{}{"items": f.tracks},
		})
	})
	return mux
}

func newTestClient(serverURL string) *Client {
	return NewClient(&config.Config{
		SpotifyAuthURL:      serverURL + "/api/token",
		SpotifyAPIURL:       serverURL,
		SpotifyClientID:     "test-id",
		SpotifyClientSecret: "test-secret",
		SpotifyMarket:       "ES",
		SpotifyTimeout:      5 * time.Second,
	})
}

func TestSearchMapsTracks(t *testing.T) {
	fake := newFakeSpotify()
	fake.tracks = []map[string]interface{}{
		{
			"id":      "t1",
			"name":    "First Song",
			"artists": []map[string]string{{"name": "First Artist"}, {"name": "Featured"}},
			"external_urls": map[string]string{
				"spotify": "https://open.spotify.com/track/t1",
			},
			"preview_url": "https://p.scdn.co/t1",
		},
		{
			"id":          "t2",
			"name":        "No Preview",
			"artists":     []map[string]string{{"name": "Second Artist"}},
			"preview_url": "null",
		},
	}
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	songs := client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")

	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	first := songs[0]
	if first.ID != "t1" || first.Name != "First Song" || first.Artist != "First Artist" {
		t.Errorf("unexpected mapping: %+v", first)
	}
	if first.SpotifyURL != "https://open.spotify.com/track/t1" {
		t.Errorf("unexpected spotify url %q", first.SpotifyURL)
	}
	if first.SourceGenre != "Pop" {
		t.Errorf("expected SourceGenre Pop, got %q", first.SourceGenre)
	}
	if songs[1].PreviewURL != "" {
		t.Errorf(`expected "null" preview normalized to empty, got %q`, songs[1].PreviewURL)
	}

	if fake.lastQuery["q"] != "genre:Pop" || fake.lastQuery["type"] != "track" || fake.lastQuery["limit"] != "10" {
		t.Errorf("unexpected search query params: %v", fake.lastQuery)
	}
	if fake.lastQuery["market"] != "ES" {
		t.Errorf("expected default market ES, got %q", fake.lastQuery["market"])
	}
	if !strings.HasPrefix(fake.lastAuth, "Basic ") {
		t.Errorf("token request missing basic auth, got %q", fake.lastAuth)
	}
	if fake.lastBearer != "Bearer token-1" {
		t.Errorf("search request missing bearer token, got %q", fake.lastBearer)
	}
}

func TestSearchExplicitMarket(t *testing.T) {
	fake := newFakeSpotify()
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	client.Search(context.Background(), "genre:Rock", "track", 5, "US", "Rock")

	if fake.lastQuery["market"] != "US" {
		t.Errorf("expected explicit market US, got %q", fake.lastQuery["market"])
	}
}

func TestTokenReusedAcrossSearches(t *testing.T) {
	fake := newFakeSpotify()
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	for i := 0; i < 3; i++ {
		client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")
	}

	if got := atomic.LoadInt64(&fake.tokenCalls); got != 1 {
		t.Errorf("expected 1 token exchange for 3 searches, got %d", got)
	}
	if got := atomic.LoadInt64(&fake.searchCalls); got != 3 {
		t.Errorf("expected 3 search calls, got %d", got)
	}
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	fake := newFakeSpotify()
	// Shorter than the safety margin, so the token is already considered
	// expired by the next call.
	fake.expiresIn = 1
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")
	client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")

	if got := atomic.LoadInt64(&fake.tokenCalls); got != 2 {
		t.Errorf("expected a fresh token exchange per search, got %d", got)
	}
	if fake.lastBearer != "Bearer token-2" {
		t.Errorf("expected second search to use refreshed token, got %q", fake.lastBearer)
	}
}

func TestSearchTokenFailureReturnsEmpty(t *testing.T) {
	fake := newFakeSpotify()
	fake.tokenStatus = http.StatusUnauthorized
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	songs := client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")

	if songs == nil || len(songs) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", songs)
	}
	if got := atomic.LoadInt64(&fake.searchCalls); got != 0 {
		t.Errorf("search endpoint should not be hit without a token, got %d calls", got)
	}
}

func TestSearchAPIFailureReturnsEmpty(t *testing.T) {
	fake := newFakeSpotify()
	fake.searchStatus = http.StatusInternalServerError
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	songs := client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")

	if songs == nil || len(songs) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", songs)
	}
}

func TestSearchUnreachableServerReturnsEmpty(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	songs := client.Search(context.Background(), "genre:Pop", "track", 10, "", "Pop")

	if songs == nil || len(songs) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", songs)
	}
}

func TestSearchNonTrackTypeReturnsEmpty(t *testing.T) {
	fake := newFakeSpotify()
	fake.tracks = []map[string]interface{}{{"id": "t1", "name": "X"}}
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	client := newTestClient(ts.URL)
	songs := client.Search(context.Background(), "genre:Pop", "album", 10, "", "Pop")

	if len(songs) != 0 {
		t.Fatalf("expected no songs for non-track item type, got %d", len(songs))
	}
}
