package segment

import (
	"regexp"
	"strings"

	"github.com/tsawler/cantus/lyric"
)

// Boundary and footer detection predicates. Each rule is a standalone
// function so it can be tested and replaced on its own instead of living
// inside the classifier walk.

// EndsWithTerminalPunctuation reports whether a line ends a sentence:
// '.', '!' or '?'.
func EndsWithTerminalPunctuation(l lyric.Line) bool {
	t := strings.TrimSpace(l.Text)
	if t == "" {
		return false
	}
	switch t[len(t)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// IsShortNonColonLine reports whether a line is a short refrain-style
// break: at most two words, not ending in ':' or ';' (which would instead
// announce the lines that follow).
func IsShortNonColonLine(l lyric.Line) bool {
	t := strings.TrimSpace(l.Text)
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, ":") || strings.HasSuffix(t, ";") {
		return false
	}
	return len(strings.Fields(t)) <= 2
}

// EmphasisDropped reports a transition from an emphasized (sung refrain)
// line to a plain one.
func EmphasisDropped(prev, next lyric.Line) bool {
	return prev.Emphasis && !next.Emphasis
}

// WantsTrailingGap reports whether a verse ending on this line should be
// followed by vertical space: exclamatory endings and short refrain
// lines read as hard stops.
func WantsTrailingGap(l lyric.Line) bool {
	return strings.HasSuffix(strings.TrimSpace(l.Text), "!") || IsShortNonColonLine(l)
}

var (
	yearPattern   = regexp.MustCompile(`\b\d{4}\b`)
	byWordPattern = regexp.MustCompile(`(?i)\bby\s+\w+`)
)

// isFooterSeed reports whether the last content line of a document looks
// like a copyright or hymnal reference: at least one digit together with
// a comma or period. Known limitation: an ordinary lyric line quoting a
// number can satisfy this.
func isFooterSeed(l lyric.Line) bool {
	t := l.Text
	return strings.ContainsAny(t, "0123456789") && strings.ContainsAny(t, ",.")
}

// isAttribution reports whether a line reads as authorship or licensing
// text, extending a detected footer backward.
func isAttribution(l lyric.Line) bool {
	t := l.Text
	lower := strings.ToLower(t)
	switch {
	case strings.ContainsRune(t, '©'):
		return true
	case strings.Contains(lower, "ccli"):
		return true
	case strings.Contains(lower, "public domain"):
		return true
	case strings.Contains(lower, "words and music"):
		return true
	case strings.Contains(lower, "translated"):
		return true
	case yearPattern.MatchString(t):
		return true
	case byWordPattern.MatchString(t):
		return true
	}
	return false
}
