package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchShortQuerySkipsGateway(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, time.Second)

	// "東京" is two runes but six bytes; the threshold counts runes.
	for _, query := range []string{"", "M", "Mu", "東京"} {
		places, err := client.Search(context.Background(), query)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", query, err)
		}
		if len(places) != 0 {
			t.Errorf("Search(%q) = %d places, want 0", query, len(places))
		}
	}

	if calls != 0 {
		t.Errorf("gateway called %d times for short queries, want 0", calls)
	}
}

func TestSearchThreeRuneQueryReachesGateway(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, time.Second)

	if _, err := client.Search(context.Background(), "東京都"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("gateway called %d times for a three-rune query, want 1", calls)
	}
}

func TestSearchParsesPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Mumbai" {
			t.Errorf("query param q = %q, want Mumbai", got)
		}
		w.Write([]byte(`[
			{"display_name":"Mumbai, Maharashtra, India","lat":"19.0760","lon":"72.8777"},
			{"display_name":"Mumbai Suburban","lat":"19.1136","lon":"72.8697"},
			{"display_name":"Bad Row","lat":"not-a-number","lon":"72.0"}
		]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, time.Second)

	places, err := client.Search(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// The row with an unparseable coordinate is dropped.
	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	if places[0].DisplayName != "Mumbai, Maharashtra, India" {
		t.Errorf("display name = %q", places[0].DisplayName)
	}
	if places[0].Lat != 19.0760 || places[0].Lon != 72.8777 {
		t.Errorf("coords = %v,%v", places[0].Lat, places[0].Lon)
	}
}

func TestSearchGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, time.Second)

	if _, err := client.Search(context.Background(), "Mumbai"); err == nil {
		t.Fatal("expected error on gateway failure")
	}
}
