package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/cantus/pptx"
)

// NextSunday returns the first date on or after t whose weekday is
// Sunday, at the same clock time.
func NextSunday(t time.Time) time.Time {
	for t.Weekday() != time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// FormatServiceDate renders a date with the long month name and no
// zero padding on the day, e.g. "April 6, 2025".
func FormatServiceDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", t.Month(), t.Day(), t.Year())
}

// AnnotateServiceDate finds the first paragraph on the slide whose text
// begins with label and replaces it with the label followed by the next
// upcoming Sunday relative to now. Reports whether a paragraph was
// rewritten.
func AnnotateServiceDate(slide *pptx.Slide, label string, now time.Time, style StyleSpec) bool {
	date := FormatServiceDate(NextSunday(now))
	for _, sh := range slide.Shapes() {
		if !sh.HasText() {
			continue
		}
		for _, p := range sh.Paragraphs() {
			if !strings.HasPrefix(strings.TrimSpace(p.Text()), label) {
				continue
			}
			p.Clear()
			p.AddRun(label+" "+date, style.runFormat(false))
			return true
		}
	}
	return false
}
