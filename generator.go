package cantus

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/cantus/docx"
	"github.com/tsawler/cantus/htmldoc"
	"github.com/tsawler/cantus/layout"
	"github.com/tsawler/cantus/lyric"
	"github.com/tsawler/cantus/ocr"
	"github.com/tsawler/cantus/pptx"
	"github.com/tsawler/cantus/segment"
)

// now is swapped out in tests to pin the service date.
var now = time.Now

func (b *Builder) warn(song, format string, args ...any) {
	w := Warning{Song: song, Message: fmt.Sprintf(format, args...)}
	b.warnings = append(b.warnings, w)
	b.logger.Warn(w.Message, "song", song)
}

// run executes the full pipeline against the configured template and
// writes the result to output. Per-song failures become warnings; only
// config, template, and save errors abort the run.
func (b *Builder) run(ctx context.Context, output string) ([]Warning, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	b.warnings = nil

	deck, err := pptx.Open(b.cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}

	b.annotateDate(deck)
	b.insertHymnTitles(deck)

	composer := layout.NewComposer(b.cfg.Styles())
	for _, a := range b.cfg.Assignments {
		if err := ctx.Err(); err != nil {
			return b.warnings, err
		}
		b.placeSong(ctx, deck, composer, a)
	}

	if err := deck.Save(output); err != nil {
		return b.warnings, fmt.Errorf("saving deck: %w", err)
	}
	b.logger.Info("deck written", "output", output, "warnings", len(b.warnings))
	return b.warnings, nil
}

// annotateDate rewrites the service-date label on the date slide with
// the upcoming Sunday.
func (b *Builder) annotateDate(deck *pptx.Deck) {
	slide, err := deck.Slide(b.cfg.DateSlide)
	if err != nil {
		b.warn("", "date slide %d: %v", b.cfg.DateSlide, err)
		return
	}
	style := layout.StyleSpec{Font: b.cfg.Font, Size: b.cfg.DateFontSize, Bold: true}
	if !layout.AnnotateServiceDate(slide, b.cfg.DateLabel, now(), style) {
		b.warn("", "date slide %d: label %q not found", b.cfg.DateSlide, b.cfg.DateLabel)
		return
	}
	b.logger.Info("service date set", "date", layout.FormatServiceDate(layout.NextSunday(now())))
}

// insertHymnTitles fills the order-of-service HYMN markers with the
// run's song titles.
func (b *Builder) insertHymnTitles(deck *pptx.Deck) {
	slide, err := deck.Slide(b.cfg.HymnSlide)
	if err != nil {
		b.warn("", "hymn slide %d: %v", b.cfg.HymnSlide, err)
		return
	}
	style := layout.StyleSpec{Font: b.cfg.Font, Size: b.cfg.FontSize}
	n := layout.InsertHymnTitles(slide, deck.Midpoint(), b.songs, style)
	b.logger.Info("hymn titles inserted", "count", n)
}

// placeSong runs one assignment end to end. Every failure is recorded
// as a warning and leaves the assigned slide half untouched.
func (b *Builder) placeSong(ctx context.Context, deck *pptx.Deck, composer *layout.Composer, a Assignment) {
	if a.SongIndex >= len(b.songs) {
		b.warn("", "slide %d/%s: song position %d not filled (only %d songs given)",
			a.SlideIndex, a.Side, a.SongIndex, len(b.songs))
		return
	}
	song := b.songs[a.SongIndex]
	log := b.logger.With("song", song, "slide", a.SlideIndex, "side", a.Side)

	path, err := b.source.Resolve(ctx, song)
	if err != nil {
		b.warn(song, "resolving lyrics: %v", err)
		return
	}

	paragraphs, err := b.readParagraphs(ctx, path)
	if err != nil {
		b.warn(song, "reading %s: %v", filepath.Base(path), err)
		return
	}

	lines, err := lyric.Extract(paragraphs)
	if err != nil {
		b.warn(song, "extracting lyrics: %v", err)
		return
	}
	segments := segment.Classify(lines, song)

	slide, err := deck.Slide(a.SlideIndex)
	if err != nil {
		b.warn(song, "slide %d: %v", a.SlideIndex, err)
		return
	}
	page := b.cfg.PageNumber(a.SlideIndex, a.Side)
	if err := composer.Compose(slide, b.cfg.BoxFor(a.Side), segments, page); err != nil {
		b.warn(song, "composing slide %d/%s: %v", a.SlideIndex, a.Side, err)
		return
	}
	log.Info("song placed", "segments", len(segments), "page", page)
}

// readParagraphs opens a lyric document by extension. Legacy .doc files
// go through the configured converter first; images go through OCR.
func (b *Builder) readParagraphs(ctx context.Context, path string) ([]lyric.Paragraph, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".doc" {
		converted, err := b.converter.Convert(ctx, path)
		if err != nil {
			return nil, err
		}
		path = converted
		ext = ".docx"
	}

	switch ext {
	case ".docx":
		r, err := docx.Open(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.Paragraphs(), nil
	case ".html", ".htm":
		r, err := htmldoc.Open(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.Paragraphs(), nil
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		client, err := ocr.New()
		if err != nil {
			return nil, err
		}
		defer client.Close()
		return client.ReadFile(path)
	default:
		return nil, fmt.Errorf("unsupported lyric document type %q", ext)
	}
}
