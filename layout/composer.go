package layout

import (
	"errors"
	"strconv"

	"github.com/tsawler/cantus/pptx"
	"github.com/tsawler/cantus/segment"
)

// pageNumberGap separates the title from its page number.
const pageNumberGap = "    "

// spacing constants, in points
const (
	titleSpaceAfter  pptx.Points = 12
	footerSpaceAbove pptx.Points = 12
)

// ErrNoSegments is returned when Compose is handed nothing to render;
// the slide side is left untouched.
var ErrNoSegments = errors.New("layout: no segments to compose")

// Composer renders segments into slide text boxes.
type Composer struct {
	Styles Styles
}

// NewComposer returns a composer using the given styles.
func NewComposer(styles Styles) *Composer {
	return &Composer{Styles: styles}
}

// Compose clears the box's side of the slide and renders the segments
// into exactly one new text box there. pageNumber is appended to the
// title paragraph when greater than zero. The clear happens only once
// content is confirmed, so a degenerate segment list leaves the slide
// untouched. Composing the same inputs twice yields content-identical
// results.
func (c *Composer) Compose(slide *pptx.Slide, box Box, segs []segment.Segment, pageNumber int) error {
	if !hasContent(segs) {
		return ErrNoSegments
	}

	slide.ClearSide(box.Side)
	tb := slide.AddTextBox(box.Left, box.Top, box.Width, box.Height)

	for _, seg := range segs {
		switch seg.Kind {
		case segment.Title:
			c.composeTitle(tb, seg, pageNumber)
		case segment.Body:
			c.composeVerse(tb, seg)
		case segment.BlankSeparator:
			tb.AddParagraph()
		case segment.Footer:
			c.composeFooter(tb, seg)
		}
	}
	return nil
}

// hasContent reports whether any Body or Footer segment carries lines.
func hasContent(segs []segment.Segment) bool {
	for _, seg := range segs {
		if (seg.Kind == segment.Body || seg.Kind == segment.Footer) && len(seg.Lines) > 0 {
			return true
		}
	}
	return false
}

// composeTitle renders the title paragraph, with the page number as a
// plain run in the same paragraph after a whitespace separator run.
func (c *Composer) composeTitle(tb *pptx.TextBox, seg segment.Segment, pageNumber int) {
	p := tb.AddParagraph()
	p.SetAlignment(c.Styles.Title.Align)
	p.SetSpaceAfter(titleSpaceAfter)

	title := ""
	if len(seg.Lines) > 0 {
		title = seg.Lines[0].Text
	}
	p.AddRun(title, c.Styles.Title.runFormat(false))
	if pageNumber > 0 {
		plain := c.Styles.Title.runFormat(false)
		plain.Bold = false
		p.AddRun(pageNumberGap, plain)
		p.AddRun(strconv.Itoa(pageNumber), plain)
	}
}

// composeVerse renders one Body segment as a single paragraph, its lines
// joined by explicit line breaks, each run's italic taken verbatim from
// the line's emphasis.
func (c *Composer) composeVerse(tb *pptx.TextBox, seg segment.Segment) {
	p := tb.AddParagraph()
	p.SetAlignment(c.Styles.Body.Align)
	p.SetSpaceBefore(0)
	p.SetSpaceAfter(0)
	for i, line := range seg.Lines {
		if i > 0 {
			p.AddBreak()
		}
		p.AddRun(line.Text, c.Styles.Body.runFormat(line.Emphasis))
	}
}

// composeFooter renders each attribution line as its own small-type
// paragraph, detached from the body by extra leading space.
func (c *Composer) composeFooter(tb *pptx.TextBox, seg segment.Segment) {
	for i, line := range seg.Lines {
		p := tb.AddParagraph()
		p.SetAlignment(c.Styles.Footer.Align)
		if i == 0 {
			p.SetSpaceBefore(footerSpaceAbove)
		}
		p.SetSpaceAfter(0)
		p.AddRun(line.Text, c.Styles.Footer.runFormat(line.Emphasis))
	}
}
