package cantus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrConverterUnavailable is returned when the external document
// converter cannot be run.
var ErrConverterUnavailable = errors.New("document converter unavailable")

// Converter turns a legacy .doc lyric file into a .docx the reader can
// open, returning the path of the converted file.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// SofficeConverter shells out to LibreOffice for .doc conversion.
type SofficeConverter struct {
	binary string
}

// NewSofficeConverter returns a Converter running the given soffice
// binary ("soffice" when empty).
func NewSofficeConverter(binary string) *SofficeConverter {
	if binary == "" {
		binary = "soffice"
	}
	return &SofficeConverter{binary: binary}
}

// Convert runs soffice headless and returns the path of the produced
// .docx, written next to the input.
func (c *SofficeConverter) Convert(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(c.binary); err != nil {
		return "", fmt.Errorf("%w: %s not found in PATH", ErrConverterUnavailable, c.binary)
	}

	outDir := filepath.Dir(path)
	cmd := exec.CommandContext(ctx, c.binary,
		"--headless", "--convert-to", "docx", "--outdir", outDir, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("converting %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	converted := filepath.Join(outDir, base+".docx")
	if _, err := os.Stat(converted); err != nil {
		return "", fmt.Errorf("converting %s: output %s missing: %w", path, converted, err)
	}
	return converted, nil
}
