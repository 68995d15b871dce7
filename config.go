package cantus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/cantus/layout"
	"github.com/tsawler/cantus/pptx"
)

// Assignment maps one song-order position onto one half of one slide.
type Assignment struct {
	SlideIndex int       `yaml:"slide"`
	Side       pptx.Side `yaml:"side"`
	SongIndex  int       `yaml:"song"`
}

// Config holds everything one bulletin run needs: file locations, type
// styling, box geometry, and the slide/side/song assignment table.
type Config struct {
	Template  string `yaml:"template"`
	Output    string `yaml:"output"`
	Lyrics    string `yaml:"lyrics"`
	Converter string `yaml:"converter"`

	Font         string      `yaml:"font"`
	FontSize     pptx.Points `yaml:"font_size"`
	FooterSize   pptx.Points `yaml:"footer_size"`
	DateFontSize pptx.Points `yaml:"date_font_size"`

	BoxTop      float64 `yaml:"box_top"`    // inches
	BoxWidth    float64 `yaml:"box_width"`  // inches
	BoxHeight   float64 `yaml:"box_height"` // inches
	LeftMargin  float64 `yaml:"left_margin"`
	RightMargin float64 `yaml:"right_margin"`

	DefaultOrder []string     `yaml:"default_order"`
	Assignments  []Assignment `yaml:"assignments"`

	// PageNumbers is keyed "slide/side", e.g. "2/left": 6.
	PageNumbers map[string]int `yaml:"page_numbers"`

	HymnSlide int    `yaml:"hymn_slide"`
	DateSlide int    `yaml:"date_slide"`
	DateLabel string `yaml:"date_label"`
}

// DefaultConfig returns the standing bulletin configuration.
func DefaultConfig() Config {
	return Config{
		Template:  "BulletinTemplate.pptx",
		Output:    "Updated_Bulletin.pptx",
		Lyrics:    "lyrics",
		Converter: "soffice",

		Font:         "Montserrat",
		FontSize:     12,
		FooterSize:   5,
		DateFontSize: 10,

		BoxTop:      0.1,
		BoxWidth:    4.8,
		BoxHeight:   7,
		LeftMargin:  0.1,
		RightMargin: 5.0,

		DefaultOrder: []string{
			"Because He Lives",
			"A Mighty Fortress is Our God",
			"Christ the Lord is Risen Today",
			"Christ Arose",
			"See What a Morning (Resurrection Hymn)",
		},
		Assignments: []Assignment{
			{SlideIndex: 3, Side: pptx.SideLeft, SongIndex: 1},
			{SlideIndex: 3, Side: pptx.SideRight, SongIndex: 2},
			{SlideIndex: 2, Side: pptx.SideLeft, SongIndex: 3},
			{SlideIndex: 1, Side: pptx.SideRight, SongIndex: 4},
			{SlideIndex: 2, Side: pptx.SideRight, SongIndex: 0},
		},
		PageNumbers: map[string]int{
			"1/right": 7,
			"2/left":  6,
			"2/right": 3,
			"3/left":  4,
			"3/right": 5,
		},
		HymnSlide: 1,
		DateSlide: 0,
		DateLabel: "Corporate Worship Service:",
	}
}

// LoadConfig reads a YAML configuration file over the defaults, so a
// file only needs to state what differs.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural mistakes.
func (c Config) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("config: template path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output path is required")
	}
	for i, a := range c.Assignments {
		if !a.Side.Valid() {
			return fmt.Errorf("config: assignment %d has invalid side %q", i, a.Side)
		}
		if a.SlideIndex < 0 || a.SongIndex < 0 {
			return fmt.Errorf("config: assignment %d has negative index", i)
		}
	}
	return nil
}

// SongsRequired returns how many songs the assignment table consumes.
func (c Config) SongsRequired() int {
	max := 0
	for _, a := range c.Assignments {
		if a.SongIndex+1 > max {
			max = a.SongIndex + 1
		}
	}
	return max
}

// PageNumber returns the page number for a slide half, or 0 when none
// is assigned.
func (c Config) PageNumber(slideIndex int, side pptx.Side) int {
	return c.PageNumbers[fmt.Sprintf("%d/%s", slideIndex, side)]
}

// BoxFor returns the layout box for one half of a slide.
func (c Config) BoxFor(side pptx.Side) layout.Box {
	left := c.LeftMargin
	if side == pptx.SideRight {
		left = c.RightMargin
	}
	return layout.Box{
		Left:   pptx.Inches(left),
		Top:    pptx.Inches(c.BoxTop),
		Width:  pptx.Inches(c.BoxWidth),
		Height: pptx.Inches(c.BoxHeight),
		Side:   side,
	}
}

// Styles returns the text styles the configuration describes.
func (c Config) Styles() layout.Styles {
	styles := layout.DefaultStyles(c.Font, c.FontSize)
	if c.FooterSize > 0 {
		styles.Footer.Size = c.FooterSize
	}
	return styles
}
