// Package lyric turns formatted lyric-document paragraphs into a flat,
// ordered stream of display lines.
//
// The input is a sequence of paragraphs, each a sequence of text runs with
// an italic flag, as produced by the docx, htmldoc, and ocr readers. The
// output is a LineStream: trimmed lyric lines in document order, with
// structural section labels ("Hymnal #3", "Verse 2", "Chorus") removed and
// blank paragraphs preserved as empty-text spacing markers.
package lyric

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoLyrics is returned when a document contains no lyric content after
// filtering (empty, whitespace-only, or section labels only). Callers are
// expected to skip the song and continue.
var ErrNoLyrics = errors.New("lyric: no lyric content")

// Run is one contiguous run of text with a single emphasis state.
// Italic is tri-state in the source formats; nil means unspecified and is
// treated as not italic.
type Run struct {
	Text   string
	Italic *bool
}

// Emphasized reports whether the run is explicitly italic.
func (r Run) Emphasized() bool {
	return r.Italic != nil && *r.Italic
}

// Paragraph is an ordered sequence of runs. A paragraph whose runs hold no
// visible text represents an explicit blank line in the source document.
type Paragraph struct {
	Runs []Run
}

// Text returns the concatenated run text of the paragraph.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Line is one display line of lyric text. An empty Text marks a preserved
// blank-line separator.
type Line struct {
	Text     string
	Emphasis bool
}

// Blank reports whether the line is a blank-separator marker.
func (l Line) Blank() bool {
	return l.Text == ""
}

// LineStream is an ordered sequence of lines. Order always equals the
// source document's reading order.
type LineStream []Line

// structural section labels that must never appear as lyric content
var markerPattern = regexp.MustCompile(`(?i)^(hymnal\s*#\d+|verse\s+\d+|chorus)$`)

// IsStructuralMarker reports whether a trimmed paragraph is a section
// label rather than lyric content.
func IsStructuralMarker(text string) bool {
	return markerPattern.MatchString(strings.TrimSpace(text))
}

// Extract flattens paragraphs into a LineStream.
//
// Blank paragraphs are preserved as one empty Line each so the classifier
// can see explicit spacing, but consecutive blanks collapse to one and
// leading/trailing blanks are dropped. Runs containing embedded line
// breaks split into one Line per non-empty sub-line, each inheriting the
// run's emphasis. Returns ErrNoLyrics when nothing survives filtering.
func Extract(paragraphs []Paragraph) (LineStream, error) {
	var lines LineStream

	appendBlank := func() {
		// no leading blanks, no doubled blanks
		if len(lines) == 0 || lines[len(lines)-1].Blank() {
			return
		}
		lines = append(lines, Line{})
	}

	for _, para := range paragraphs {
		full := strings.TrimSpace(para.Text())
		if full == "" {
			appendBlank()
			continue
		}
		if IsStructuralMarker(full) {
			continue
		}
		for _, run := range para.Runs {
			for _, sub := range splitRunText(run.Text) {
				lines = append(lines, Line{Text: sub, Emphasis: run.Emphasized()})
			}
		}
	}

	// trailing blank markers carry no information
	for len(lines) > 0 && lines[len(lines)-1].Blank() {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return nil, ErrNoLyrics
	}
	return lines, nil
}

// splitRunText splits a run's text on embedded line breaks, trimming each
// piece and dropping empties.
func splitRunText(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\v", "\n")

	var out []string
	for _, piece := range strings.Split(text, "\n") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
