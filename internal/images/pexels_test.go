package images

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("Authorization = %q, want %q", got, "test-key")
		}
		q := r.URL.Query()
		if got := q.Get("query"); got != "ocean currents" {
			t.Errorf("query = %q, want %q", got, "ocean currents")
		}
		if got := q.Get("per_page"); got != "1" {
			t.Errorf("per_page = %q, want %q", got, "1")
		}
		if got := q.Get("orientation"); got != "landscape" {
			t.Errorf("orientation = %q, want %q", got, "landscape")
		}
		if got := q.Get("size"); got != "medium" {
			t.Errorf("size = %q, want %q", got, "medium")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photos":[{"src":{"large":"https://images.example.com/photo.jpg"}}]}`))
	}))
	defer server.Close()

	client := NewPexelsClient("test-key")
	client.baseURL = server.URL

	url, err := client.Search(t.Context(), "ocean currents")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if url != "https://images.example.com/photo.jpg" {
		t.Errorf("Search() = %q, want photo URL", url)
	}
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photos":[]}`))
	}))
	defer server.Close()

	client := NewPexelsClient("test-key")
	client.baseURL = server.URL

	if _, err := client.Search(t.Context(), "nothing"); err == nil {
		t.Error("Search() expected error for empty result set")
	}
}

func TestSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewPexelsClient("bad-key")
	client.baseURL = server.URL

	_, err := client.Search(t.Context(), "anything")
	if err == nil {
		t.Fatal("Search() expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "pexels api error") {
		t.Errorf("Search() error = %v, want api error", err)
	}
}

func TestDownload(t *testing.T) {
	imageData := append([]byte{0xFF, 0xD8, 0xFF}, bytes.Repeat([]byte{0x42}, 200)...)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(imageData)
	}))
	defer server.Close()

	client := NewPexelsClient("test-key")

	data, err := client.Download(t.Context(), server.URL)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if !bytes.Equal(data, imageData) {
		t.Errorf("Download() returned %d bytes, want %d", len(data), len(imageData))
	}
}

func TestDownloadRejectsNonImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not a photo</html>"))
	}))
	defer server.Close()

	client := NewPexelsClient("test-key")

	_, err := client.Download(t.Context(), server.URL)
	if err == nil {
		t.Fatal("Download() expected error for non-image content type")
	}
	if !strings.Contains(err.Error(), "invalid content type") {
		t.Errorf("Download() error = %v, want content type error", err)
	}
}
