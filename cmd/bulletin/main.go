// Command bulletin generates a worship-bulletin slide deck from a PPTX
// template and a set of song-lyric documents.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tsawler/cantus"
)

const version = "1.0.0"

// CLI defines the command-line interface for bulletin.
var CLI struct {
	Config  string `short:"c" help:"Path to YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Generate GenerateCmd `cmd:"" default:"1" help:"Generate the bulletin deck"`
	Validate ValidateCmd `cmd:"" help:"Check config, template, and song resolution without writing"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

func loadConfig() (cantus.Config, error) {
	if CLI.Config == "" {
		return cantus.DefaultConfig(), nil
	}
	return cantus.LoadConfig(CLI.Config)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GenerateCmd generates the bulletin deck.
type GenerateCmd struct {
	Output string   `short:"o" help:"Output .pptx path (overrides config)" type:"path"`
	Songs  []string `help:"Song order, comma separated (skips the interactive prompt)"`
	Prompt bool     `help:"Prompt for each song position, pre-filled with the default order"`
}

func (c *GenerateCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	songs := c.Songs
	if len(songs) == 0 {
		songs = cfg.DefaultOrder
	}
	source := cantus.NewDirSource(cfg.Lyrics)
	if c.Prompt {
		songs, err = promptSongs(songs, cfg.SongsRequired(), source)
		if err != nil {
			return err
		}
	}
	if len(songs) < cfg.SongsRequired() {
		return fmt.Errorf("assignment table needs %d songs, only %d given", cfg.SongsRequired(), len(songs))
	}

	b := cantus.New(cfg).Songs(songs...).WithSource(source).WithLogger(logger)

	ctx := context.Background()
	var warnings []cantus.Warning
	if c.Output != "" {
		warnings, err = b.GenerateTo(ctx, c.Output)
	} else {
		warnings, err = b.Generate(ctx)
	}
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		fmt.Fprintf(os.Stderr, "Completed with %d warning(s):\n%s\n", len(warnings), cantus.FormatWarnings(warnings))
	}
	return nil
}

// promptSongs asks for each song position on stdin, offering the
// current order as the default and re-prompting until the entered name
// resolves in the source.
func promptSongs(defaults []string, required int, source cantus.Source) ([]string, error) {
	scanner := bufio.NewScanner(os.Stdin)
	songs := make([]string, 0, required)

	for i := 0; i < required; i++ {
		def := ""
		if i < len(defaults) {
			def = defaults[i]
		}
		for {
			if def != "" {
				fmt.Printf("Song %d [%s]: ", i+1, def)
			} else {
				fmt.Printf("Song %d: ", i+1)
			}
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("reading song order: %w", err)
				}
				return nil, fmt.Errorf("song order input ended early")
			}
			name := strings.TrimSpace(scanner.Text())
			if name == "" {
				name = def
			}
			if name == "" {
				fmt.Println("A song name is required.")
				continue
			}
			if _, err := source.Resolve(context.Background(), name); err != nil {
				fmt.Printf("Cannot find lyrics for %q: %v\n", name, err)
				continue
			}
			songs = append(songs, name)
			break
		}
	}
	return songs, nil
}

// ValidateCmd checks the configuration without writing anything.
type ValidateCmd struct {
	Songs []string `help:"Song order to validate (defaults to the config order)"`
}

func (c *ValidateCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Template); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	songs := c.Songs
	if len(songs) == 0 {
		songs = cfg.DefaultOrder
	}
	if len(songs) < cfg.SongsRequired() {
		return fmt.Errorf("assignment table needs %d songs, only %d given", cfg.SongsRequired(), len(songs))
	}

	source := cantus.NewDirSource(cfg.Lyrics)
	missing := 0
	for _, name := range songs {
		if _, err := source.Resolve(context.Background(), name); err != nil {
			fmt.Printf("  [MISS] %s\n", name)
			missing++
			continue
		}
		fmt.Printf("  [OK]   %s\n", name)
	}
	if missing > 0 {
		return fmt.Errorf("%d song(s) did not resolve", missing)
	}
	fmt.Println("Configuration is valid.")
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("bulletin v%s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bulletin"),
		kong.Description("Generate worship-bulletin slide decks from lyric documents."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "bulletin: %v\n", err)
		os.Exit(1)
	}
}
