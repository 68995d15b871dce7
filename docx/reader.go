// Package docx provides DOCX (Office Open XML) lyric-document parsing.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/tsawler/cantus/lyric"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.ReadCloser
	document  *documentXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}
	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}
	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// parseDocument parses word/document.xml.
func (r *Reader) parseDocument() error {
	data, err := r.readFile("word/document.xml")
	if err != nil {
		return err
	}
	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.document = &doc
	return nil
}

// readFile reads a file from the ZIP archive by name.
func (r *Reader) readFile(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// Paragraphs returns the document's paragraphs as lyric paragraphs,
// preserving per-run tri-state italics.
func (r *Reader) Paragraphs() []lyric.Paragraph {
	if r.document == nil || r.document.Body == nil {
		return nil
	}
	out := make([]lyric.Paragraph, 0, len(r.document.Body.Paragraphs))
	for _, p := range r.document.Body.Paragraphs {
		var para lyric.Paragraph
		for _, run := range p.Runs {
			lr := lyric.Run{Text: run.Text}
			if run.Props != nil && run.Props.Italic != nil {
				v := run.Props.Italic.enabled()
				lr.Italic = &v
			}
			para.Runs = append(para.Runs, lr)
		}
		out = append(out, para)
	}
	return out
}
