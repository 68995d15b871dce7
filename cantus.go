// Package cantus assembles worship-bulletin slide decks from plain-text
// song-lyric documents.
//
// It opens a two-column PPTX template, resolves each assigned song
// through a lyric source, extracts and classifies the lyric lines, and
// composes them into the designated half of the designated slide,
// together with the order-of-service hymn titles and the upcoming
// Sunday's date.
//
// Basic usage:
//
//	warnings, err := cantus.New(cantus.DefaultConfig()).
//	    Songs("Because He Lives", "Christ Arose").
//	    Generate(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cantus.FormatWarnings(warnings))
//	}
//
// Per-song failures (a song that cannot be resolved, converted, or
// extracted) never abort a run; they surface as warnings and the
// affected slide half is left untouched. The lower-level lyric,
// segment, layout, and pptx packages are also available directly.
package cantus

import (
	"context"
	"log/slog"
)

// Builder configures and runs one bulletin generation. Chain methods
// return the same builder; call Generate to run.
type Builder struct {
	cfg       Config
	songs     []string
	source    Source
	converter Converter
	logger    *slog.Logger
	warnings  []Warning
}

// New returns a Builder for the given configuration. The default song
// order, lyric source, and converter come from the configuration and
// can be overridden on the chain.
func New(cfg Config) *Builder {
	return &Builder{
		cfg:       cfg,
		songs:     cfg.DefaultOrder,
		source:    NewDirSource(cfg.Lyrics),
		converter: NewSofficeConverter(cfg.Converter),
		logger:    slog.Default(),
	}
}

// Songs sets the song order used by the assignment table.
func (b *Builder) Songs(order ...string) *Builder {
	b.songs = order
	return b
}

// WithSource overrides where lyric documents are resolved from.
func (b *Builder) WithSource(s Source) *Builder {
	b.source = s
	return b
}

// WithConverter overrides the legacy .doc converter.
func (b *Builder) WithConverter(c Converter) *Builder {
	b.converter = c
	return b
}

// WithLogger sets the logger used for per-song progress and skips.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Generate runs the full pipeline and writes the output deck to the
// configured output path.
func (b *Builder) Generate(ctx context.Context) ([]Warning, error) {
	return b.run(ctx, b.cfg.Output)
}

// GenerateTo runs the full pipeline and writes the output deck to the
// given path instead of the configured one.
func (b *Builder) GenerateTo(ctx context.Context, output string) ([]Warning, error) {
	return b.run(ctx, output)
}
