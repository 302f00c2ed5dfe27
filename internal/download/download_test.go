package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("not really a png"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/figures/knight.png?v=2"
	path, err := Fetch(context.Background(), srv.Client(), url, dir)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "knight-") || filepath.Ext(path) != ".png" {
		t.Errorf("saved path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "not really a png" {
		t.Errorf("saved data = %q, %v", data, err)
	}

	again, err := Fetch(context.Background(), srv.Client(), url, dir)
	if err != nil || again != path {
		t.Errorf("second Fetch() = %q, %v; want %q", again, err, path)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestFetchExtensionFromContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	path, err := Fetch(context.Background(), srv.Client(), srv.URL+"/img/123", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if filepath.Ext(path) != ".webp" {
		t.Errorf("path = %q, want .webp", path)
	}
}

func TestFetchCachesExtensionlessURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/avatar/42"
	path, err := Fetch(context.Background(), srv.Client(), url, dir)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if filepath.Ext(path) != ".jpg" {
		t.Errorf("path = %q, want .jpg", path)
	}
	again, err := Fetch(context.Background(), srv.Client(), url, dir)
	if err != nil || again != path {
		t.Errorf("second Fetch() = %q, %v; want %q", again, err, path)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/a.png", true},
		{"http://example.com/a.png", true},
		{"assets/figures/a.png", false},
		{"/abs/a.png", false},
		{"ftp://example.com/a.png", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.ref); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if _, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.png", dir); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("404 error = %v", err)
	}
	if _, err := Fetch(context.Background(), srv.Client(), srv.URL+"/page", dir); err == nil || !strings.Contains(err.Error(), "not an image") {
		t.Errorf("html error = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed fetches left files: %v", entries)
	}
}

func TestCachePathDistinct(t *testing.T) {
	a := CachePath("https://a.example/x/knight.png", "c")
	b := CachePath("https://b.example/x/knight.png", "c")
	if a == b {
		t.Errorf("same cache path %q for different URLs", a)
	}
}
