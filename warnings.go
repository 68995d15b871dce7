package cantus

import "strings"

// Warning records a non-fatal problem encountered while generating a
// deck, typically a song that could not be placed. The run continues
// and the affected slide half is left as it was in the template.
type Warning struct {
	Song    string // song name as given in the order, if applicable
	Message string
}

func (w Warning) String() string {
	if w.Song == "" {
		return w.Message
	}
	return w.Song + ": " + w.Message
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
