package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/cantus/pptx"
)

// HymnMarker is the order-of-service placeholder token. Paragraphs
// beginning with it are rewritten with the actual hymn titles.
const HymnMarker = "HYMN"

// hymnColumnWidth is the total character width a marker-plus-title entry
// is padded to, so the page-number column after it lines up.
const hymnColumnWidth = 60

// markerSuffixWidth is reserved after the padded entry for that column.
const markerSuffixWidth = 5

var parenthetical = regexp.MustCompile(`\s*\(.*?\)`)

// FormatHymnTitle strips any parenthesized subtitle and wraps the title
// in typographic quotation marks.
func FormatHymnTitle(title string) string {
	clean := strings.TrimSpace(parenthetical.ReplaceAllString(title, ""))
	return "“" + clean + "”"
}

// InsertHymnTitles rewrites the HYMN-marker paragraphs on the slide's
// left half with the given titles, in top-to-bottom shape order. Each
// entry keeps the bold marker, pads with spaces to a fixed column, then
// carries the quoted, subtitle-stripped title. Substitution stops when
// the titles run out; surplus marker paragraphs are left untouched.
// Returns the number of paragraphs rewritten.
func InsertHymnTitles(slide *pptx.Slide, midpoint pptx.EMU, titles []string, style StyleSpec) int {
	inserted := 0
	for _, sh := range slide.Shapes() {
		if !sh.HasText() {
			continue
		}
		if x, _, ok := sh.Offset(); ok && x >= midpoint {
			continue
		}
		for _, p := range sh.Paragraphs() {
			if inserted >= len(titles) {
				return inserted
			}
			if !strings.HasPrefix(strings.TrimSpace(p.Text()), HymnMarker) {
				continue
			}
			quoted := FormatHymnTitle(titles[inserted])
			padding := hymnColumnWidth - len([]rune(quoted)) - markerSuffixWidth
			if padding < 1 {
				padding = 1
			}

			marker := style.runFormat(false)
			marker.Bold = true

			p.Clear()
			p.AddRun(HymnMarker+strings.Repeat(" ", padding), marker)
			p.AddRun(quoted, style.runFormat(false))
			inserted++
		}
	}
	return inserted
}
