package lyric

import (
	"errors"
	"testing"
)

func italic(b bool) *bool { return &b }

// para builds a single-run paragraph.
func para(text string, ital bool) Paragraph {
	return Paragraph{Runs: []Run{{Text: text, Italic: italic(ital)}}}
}

func texts(lines LineStream) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestExtractBasic(t *testing.T) {
	lines, err := Extract([]Paragraph{
		para("Amazing grace, how sweet the sound", false),
		para("That saved a wretch like me!", false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Amazing grace, how sweet the sound",
		"That saved a wretch like me!",
	}
	got := texts(lines)
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractFiltersStructuralMarkers(t *testing.T) {
	markers := []string{
		"Hymnal #3",
		"hymnal #127",
		"Verse 2",
		"VERSE 10",
		"Chorus",
		"chorus",
		"  Chorus  ",
	}
	var paras []Paragraph
	for _, m := range markers {
		paras = append(paras, para(m, false))
	}
	paras = append(paras, para("Real lyric line", false))

	lines, err := Extract(paras)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Text != "Real lyric line" {
		t.Errorf("markers leaked into output: %v", texts(lines))
	}
}

func TestExtractDoesNotFilterMarkerLikeContent(t *testing.T) {
	// "Chorus of angels" is lyric content, not a bare section label.
	lines, err := Extract([]Paragraph{para("Chorus of angels sing", false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
}

func TestExtractPreservesOneBlankMarker(t *testing.T) {
	lines, err := Extract([]Paragraph{
		para("First verse line", false),
		{}, // blank paragraph
		{}, // consecutive blank collapses
		para("Second verse line", false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"First verse line", "", "Second verse line"}
	got := texts(lines)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !lines[1].Blank() {
		t.Error("middle line should be a blank marker")
	}
}

func TestExtractDropsLeadingAndTrailingBlanks(t *testing.T) {
	lines, err := Extract([]Paragraph{
		{},
		para("Only line", false),
		{},
		{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("got %v, want single line", texts(lines))
	}
}

func TestExtractSplitsEmbeddedBreaks(t *testing.T) {
	lines, err := Extract([]Paragraph{
		{Runs: []Run{{Text: "Line one\nLine two\n\n  Line three  ", Italic: italic(true)}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Line one", "Line two", "Line three"}
	got := texts(lines)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, l := range lines {
		if l.Text != want[i] {
			t.Errorf("line %d = %q, want %q", i, l.Text, want[i])
		}
		if !l.Emphasis {
			t.Errorf("line %d lost the run's emphasis", i)
		}
	}
}

func TestExtractMixedEmphasisWithinParagraph(t *testing.T) {
	lines, err := Extract([]Paragraph{
		{Runs: []Run{
			{Text: "Plain part\n", Italic: nil},
			{Text: "Sung refrain", Italic: italic(true)},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Emphasis {
		t.Error("unspecified italic must be treated as false")
	}
	if !lines[1].Emphasis {
		t.Error("italic run lost emphasis")
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	cases := [][]Paragraph{
		nil,
		{},
		{{}, {}},
		{para("   ", false)},
		{para("Verse 1", false), para("Chorus", false)},
	}
	for i, paras := range cases {
		lines, err := Extract(paras)
		if !errors.Is(err, ErrNoLyrics) {
			t.Errorf("case %d: err = %v, want ErrNoLyrics", i, err)
		}
		if len(lines) != 0 {
			t.Errorf("case %d: got %v, want empty stream", i, texts(lines))
		}
	}
}

func TestExtractNeverEmitsWhitespaceOnlyLines(t *testing.T) {
	lines, err := Extract([]Paragraph{
		{Runs: []Run{{Text: "  Real  "}, {Text: "   \n   "}}},
		{Runs: []Run{{Text: "\t"}}},
		para("Tail", false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, l := range lines {
		if !l.Blank() && l.Text != "" && l.Text != trimmed(l.Text) {
			t.Errorf("line %d not trimmed: %q", i, l.Text)
		}
		if l.Text != "" && trimmed(l.Text) == "" {
			t.Errorf("line %d is whitespace-only content: %q", i, l.Text)
		}
	}
}

func trimmed(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
