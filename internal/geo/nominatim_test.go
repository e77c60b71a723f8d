package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"parkflow/internal/geo"
)

func TestNominatim_Reverse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		w.Write([]byte(`{"display_name":"Banani, Dhaka, Bangladesh"}`))
	}))
	defer srv.Close()

	client := geo.NewNominatimClient(srv.URL)
	address, err := client.Reverse(context.Background(), 23.79, 90.40)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if address != "Banani, Dhaka, Bangladesh" {
		t.Errorf("unexpected address %q", address)
	}
}

func TestNominatim_Reverse_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := geo.NewNominatimClient(srv.URL)
	if _, err := client.Reverse(context.Background(), 23.79, 90.40); err == nil {
		t.Fatal("expected error")
	}
}

func TestNominatim_Suggest_ParsesAndFilters(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Gulshan" {
			t.Errorf("unexpected query %q", got)
		}
		w.Write([]byte(`[
			{"lat":"23.7925","lon":"90.4078","display_name":"Gulshan 1"},
			{"lat":"not-a-number","lon":"90.41","display_name":"garbage"},
			{"lat":"123.0","lon":"90.41","display_name":"out of range"}
		]`))
	}))
	defer srv.Close()

	client := geo.NewNominatimClient(srv.URL)
	points, err := client.Suggest(context.Background(), "Gulshan", 5)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected bad candidates to be filtered, got %d", len(points))
	}
	if points[0].Address != "Gulshan 1" || points[0].Lat != 23.7925 {
		t.Errorf("unexpected point %+v", points[0])
	}
}
