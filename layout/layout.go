// Package layout renders classified lyric segments into styled text
// boxes on a two-column slide, and carries the two sibling slide
// decorations: order-of-service hymn-title insertion and the service
// date annotation.
package layout

import (
	"github.com/tsawler/cantus/pptx"
)

// Box is the fixed rectangular placement target for one slide half's
// content, tagged with the side it occupies.
type Box struct {
	Left   pptx.EMU
	Top    pptx.EMU
	Width  pptx.EMU
	Height pptx.EMU
	Side   pptx.Side
}

// StyleSpec is the character formatting applied to one class of text.
type StyleSpec struct {
	Font   string
	Size   pptx.Points
	Bold   bool
	Italic bool
	Align  pptx.Alignment
}

// runFormat converts the spec to a pptx run format, with the italic flag
// overridable per run by the line's emphasis.
func (s StyleSpec) runFormat(italic bool) pptx.RunFormat {
	return pptx.RunFormat{
		Font:   s.Font,
		Size:   s.Size,
		Bold:   s.Bold,
		Italic: s.Italic || italic,
	}
}

// Styles groups the three default text classes.
type Styles struct {
	Title  StyleSpec
	Body   StyleSpec
	Footer StyleSpec
}

// DefaultStyles returns the standard bulletin styles for a font family:
// bold title, plain body, small footer, all left-aligned.
func DefaultStyles(font string, bodySize pptx.Points) Styles {
	return Styles{
		Title:  StyleSpec{Font: font, Size: bodySize, Bold: true, Align: pptx.AlignLeft},
		Body:   StyleSpec{Font: font, Size: bodySize, Align: pptx.AlignLeft},
		Footer: StyleSpec{Font: font, Size: 5, Align: pptx.AlignLeft},
	}
}
