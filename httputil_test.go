package powermix

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchCatalog(t *testing.T) {
	csv, err := os.ReadFile("testdata/energy_data.csv")
	if err != nil {
		t.Fatal(err)
	}
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/energy.csv" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Write(csv)
	}))
	defer srv.Close()

	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	client := &http.Client{Transport: &diskCache{
		base: http.DefaultTransport,
		dir:  t.TempDir(),
		now:  func() time.Time { return day },
	}}

	for range 2 {
		c, err := fetchCatalog(client, srv.URL+"/data/energy.csv", "", "USD")
		if err != nil {
			t.Fatalf("fetchCatalog() failed: %v", err)
		}
		if c.Len() != 6 {
			t.Errorf("Len() = %d, want 6", c.Len())
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	day = day.AddDate(0, 0, 1)
	if _, err := fetchCatalog(client, srv.URL+"/data/energy.csv", "", "USD"); err != nil {
		t.Fatalf("fetchCatalog() failed: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times after a day, want 2", hits.Load())
	}

	if _, err := fetchCatalog(client, srv.URL+"/missing.csv", "", "USD"); err == nil {
		t.Error("fetchCatalog() of a missing file succeeded")
	}
}

func TestIsURL(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{"https://example.com/energy.csv", true},
		{"http://localhost:8080/energy.json", true},
		{"energy.csv", false},
		{"./http/energy.csv", false},
	}
	for _, tc := range testCases {
		if got := isURL(tc.path); got != tc.want {
			t.Errorf("isURL(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
