package cantus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDirSourcePrefersDocx(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Christ Arose.docx", "Christ Arose.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := NewDirSource(dir)
	got, err := s.Resolve(context.Background(), "Christ Arose")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if filepath.Ext(got) != ".docx" {
		t.Errorf("resolved %q, want the .docx", got)
	}
}

func TestDirSourceFallsBackThroughExtensions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Hallelujah.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewDirSource(dir)
	got, err := s.Resolve(context.Background(), "Hallelujah")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if filepath.Ext(got) != ".html" {
		t.Errorf("resolved %q, want the .html", got)
	}
}

func TestDirSourceNotFound(t *testing.T) {
	s := NewDirSource(t.TempDir())
	_, err := s.Resolve(context.Background(), "No Such Song")
	if !errors.Is(err, ErrSongNotFound) {
		t.Errorf("err = %v, want ErrSongNotFound", err)
	}
}

func TestHTTPSourceDownloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("lyric bytes"))
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL + "/songs/%s.docx")
	path, err := s.Resolve(context.Background(), "Christ Arose")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != "lyric bytes" {
		t.Errorf("downloaded %q", data)
	}
	if filepath.Ext(path) != ".docx" {
		t.Errorf("temp file %q should keep the URL extension", path)
	}
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL + "/%s.docx")
	s.backoff = time.Millisecond
	path, err := s.Resolve(context.Background(), "song")
	if err != nil {
		t.Fatalf("Resolve failed after retries: %v", err)
	}
	defer os.Remove(path)
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestHTTPSourceNotFoundDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL + "/%s.docx")
	s.backoff = time.Millisecond
	_, err := s.Resolve(context.Background(), "missing")
	if !errors.Is(err, ErrSongNotFound) {
		t.Errorf("err = %v, want ErrSongNotFound", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}
