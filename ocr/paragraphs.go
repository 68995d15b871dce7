package ocr

import (
	"strings"

	"github.com/tsawler/cantus/lyric"
)

// Paragraphs converts recognized page text into lyric paragraphs: one
// paragraph per line, with blank lines preserved as blank paragraphs.
// Recognition carries no character styling, so italics stay
// unspecified.
func Paragraphs(text string) []lyric.Paragraph {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")
	var out []lyric.Paragraph
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			out = append(out, lyric.Paragraph{})
			continue
		}
		out = append(out, lyric.Paragraph{Runs: []lyric.Run{{Text: line}}})
	}
	return out
}
