// Package segment groups extracted lyric lines into semantic segments:
// a synthesized title, verse/chorus bodies, blank separators, and a
// trailing attribution footer.
//
// Classification is heuristic rather than grammatical. Verse boundaries
// come from terminal punctuation and short refrain lines, footers from a
// digit-plus-punctuation pattern extended backward through attribution
// text. Classify is a pure function: the same lines and title always
// yield the same segments.
package segment

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/cantus/lyric"
)

// Kind identifies the semantic role of a segment.
type Kind int

const (
	// Title is synthesized from the requested song title, never
	// extracted from the document.
	Title Kind = iota
	// Body is one verse or chorus block of lyric lines.
	Body
	// BlankSeparator requests one empty paragraph of vertical space.
	BlankSeparator
	// Footer holds trailing copyright/authorship lines.
	Footer
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Title:
		return "title"
	case Body:
		return "body"
	case BlankSeparator:
		return "separator"
	case Footer:
		return "footer"
	default:
		return "unknown"
	}
}

// Segment is a classified, ordered group of lines sharing one role.
// BlankSeparator segments carry no lines.
type Segment struct {
	Kind  Kind
	Lines []lyric.Line
}

var foldCaser = cases.Fold()

// foldEqual reports caseless equality of two already-trimmed strings.
func foldEqual(a, b string) bool {
	return foldCaser.String(a) == foldCaser.String(b)
}

// Classify turns a line stream into an ordered segment list.
//
// The first line is dropped when it caselessly equals the trimmed title,
// since the title is rendered separately. Attribution lines are peeled
// off the tail into a Footer segment. The remaining body is cut into
// verse Body segments by the boundary predicates, with BlankSeparator
// segments inserted after exclamatory or short-line breaks and across
// preserved blank markers where the emphasis state drops.
func Classify(lines lyric.LineStream, title string) []Segment {
	segments := []Segment{{Kind: Title, Lines: []lyric.Line{{Text: title}}}}

	body := append(lyric.LineStream(nil), lines...)

	// duplicate-title suppression
	if len(body) > 0 && foldEqual(body[0].Text, strings.TrimSpace(title)) {
		body = body[1:]
	}

	body, footer := splitFooter(body)

	segments = append(segments, classifyBody(body, len(footer) > 0)...)

	if len(footer) > 0 {
		segments = append(segments, Segment{Kind: Footer, Lines: footer})
	}
	return segments
}

// splitFooter peels attribution lines off the tail of the stream.
// The scan runs backward: the seed line must look like a copyright or
// hymnal reference (a digit plus a comma or period), earlier lines join
// while they match an attribution pattern, and blank markers met along
// the way are discarded outright.
func splitFooter(lines lyric.LineStream) (body, footer lyric.LineStream) {
	end := len(lines)
	for end > 0 && lines[end-1].Blank() {
		end--
	}
	if end == 0 {
		return nil, nil
	}
	if !isFooterSeed(lines[end-1]) {
		return lines[:end], nil
	}

	footer = lyric.LineStream{lines[end-1]}
	i := end - 2
	for i >= 0 {
		if lines[i].Blank() {
			// interior blanks vanish: not footer, not body
			i--
			continue
		}
		if !isAttribution(lines[i]) {
			break
		}
		footer = append(lyric.LineStream{lines[i]}, footer...)
		i--
	}
	return lines[:i+1], footer
}

// classifyBody walks the body lines accumulating a verse buffer and
// emitting it at each declared boundary. footerFollows suppresses the
// trailing separator that would otherwise sit right above the footer.
func classifyBody(lines lyric.LineStream, footerFollows bool) []Segment {
	var segments []Segment
	var verse []lyric.Line

	flush := func() {
		if len(verse) > 0 {
			segments = append(segments, Segment{Kind: Body, Lines: verse})
			verse = nil
		}
	}
	separate := func() {
		if len(segments) > 0 && segments[len(segments)-1].Kind == BlankSeparator {
			return
		}
		segments = append(segments, Segment{Kind: BlankSeparator})
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if line.Blank() {
			// preserved blank marker: always a paragraph break, and a
			// visible gap when an emphasized refrain ends here
			prev, prevOK := lastLine(verse, segments)
			next, nextOK := nextContent(lines, i+1)
			flush()
			if prevOK && nextOK && EmphasisDropped(prev, next) {
				separate()
			}
			continue
		}

		verse = append(verse, line)

		last := i == len(lines)-1
		if !last && !EndsWithTerminalPunctuation(line) && !IsShortNonColonLine(line) {
			continue
		}

		flush()
		if WantsTrailingGap(line) && !(last && footerFollows) {
			separate()
		}
	}
	flush()
	return segments
}

// lastLine returns the most recent content line, from the open verse
// buffer or the already-emitted segments.
func lastLine(verse []lyric.Line, segments []Segment) (lyric.Line, bool) {
	if len(verse) > 0 {
		return verse[len(verse)-1], true
	}
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i].Kind == Body && len(segments[i].Lines) > 0 {
			return segments[i].Lines[len(segments[i].Lines)-1], true
		}
	}
	return lyric.Line{}, false
}

// nextContent returns the next non-blank line at or after position i.
func nextContent(lines lyric.LineStream, i int) (lyric.Line, bool) {
	for ; i < len(lines); i++ {
		if !lines[i].Blank() {
			return lines[i], true
		}
	}
	return lyric.Line{}, false
}
