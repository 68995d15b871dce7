package cantus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrSongNotFound is returned when a song name cannot be resolved to a
// lyric document.
var ErrSongNotFound = errors.New("song not found")

// Source resolves a song name to a local lyric document.
type Source interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// lyricExtensions are the document extensions a DirSource tries, in
// order of preference.
var lyricExtensions = []string{".docx", ".doc", ".html", ".htm", ".png", ".jpg", ".jpeg", ".tif", ".tiff"}

// DirSource resolves songs against a directory of lyric files named
// after the song title.
type DirSource struct {
	dir string
}

// NewDirSource returns a Source reading from the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Resolve returns the path of the first existing file named after the
// song with a recognized extension.
func (s *DirSource) Resolve(_ context.Context, name string) (string, error) {
	for _, ext := range lyricExtensions {
		p := filepath.Join(s.dir, name+ext)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no lyric file for %q in %s", ErrSongNotFound, name, s.dir)
}

// HTTPSource resolves songs by downloading them from a URL template in
// which %s is replaced with the escaped song name. Downloads land in
// temp files that the caller does not need to manage; transient
// failures are retried.
type HTTPSource struct {
	urlTemplate string
	client      *http.Client
	retries     int
	backoff     time.Duration
}

// NewHTTPSource returns a Source downloading from the given URL
// template, e.g. "https://lyrics.example.com/songs/%s.docx".
func NewHTTPSource(urlTemplate string) *HTTPSource {
	return &HTTPSource{
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: 30 * time.Second},
		retries:     3,
		backoff:     time.Second,
	}
}

// Resolve downloads the song's document to a temp file and returns its
// path. A 404 maps to ErrSongNotFound; 5xx responses and transport
// errors are retried.
func (s *HTTPSource) Resolve(ctx context.Context, name string) (string, error) {
	target := fmt.Sprintf(s.urlTemplate, url.PathEscape(name))

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * s.backoff):
			}
		}
		path, retryable, err := s.download(ctx, target)
		if err == nil {
			return path, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("downloading %q: %w", name, lastErr)
}

func (s *HTTPSource) download(ctx context.Context, target string) (path string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, fmt.Errorf("%w: %s", ErrSongNotFound, target)
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("server error: %s", resp.Status)
	case resp.StatusCode >= 400:
		return "", false, fmt.Errorf("request failed: %s", resp.Status)
	}

	ext := filepath.Ext(target)
	if ext == "" {
		ext = ".docx"
	}
	out := filepath.Join(os.TempDir(), "cantus-"+uuid.NewString()+ext)
	f, err := os.Create(out)
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(out)
		return "", true, fmt.Errorf("reading response: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("closing temp file: %w", err)
	}
	return out, false, nil
}
