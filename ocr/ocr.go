//go:build ocr

// Package ocr reads scanned lyric sheets (PNG, JPEG, TIFF) by running
// them through the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// OCR support is compiled in with the "ocr" build tag; without it the
// stub implementation returns ErrOCRNotEnabled.
package ocr

import (
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/cantus/lyric"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string
// (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeImage performs OCR on image data. Narrow scans are upscaled
// first so small hymnal type stays legible to the engine. Returns the
// recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	prepared, err := prepareImage(imageData)
	if err != nil {
		return "", fmt.Errorf("preparing image: %w", err)
	}
	if err := c.client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ReadFile recognizes a scanned lyric sheet and returns its text as
// lyric paragraphs.
func (c *Client) ReadFile(filename string) ([]lyric.Paragraph, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	text, err := c.RecognizeImage(data)
	if err != nil {
		return nil, err
	}
	return Paragraphs(text), nil
}
