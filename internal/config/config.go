package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the rendering and narration configuration for a project.
type Config struct {
	Version int          `yaml:"version"`
	Video   VideoConfig  `yaml:"video"`
	Text    TextConfig   `yaml:"text"`
	Box     BoxConfig    `yaml:"box"`
	Speech  SpeechConfig `yaml:"speech"`
}

// VideoConfig contains frame sizing, framerate, and codec information.
type VideoConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Codec      string `yaml:"codec"`
	AudioCodec string `yaml:"audio_codec"`
}

// TextConfig describes how segment text is drawn on the frame.
type TextConfig struct {
	FontFile string `yaml:"font_file"`
	FontSize int    `yaml:"font_size"`
	Color    string `yaml:"color"`
	MarginPx int    `yaml:"margin_px"`
}

// BoxConfig controls the translucent backing rectangle behind the text.
type BoxConfig struct {
	Color     string  `yaml:"color"`
	Opacity   float64 `yaml:"opacity"`
	PaddingPx int     `yaml:"padding_px"`
}

// SpeechConfig holds narration synthesis and timing parameters.
type SpeechConfig struct {
	Language       string  `yaml:"language"`
	Slow           *bool   `yaml:"slow,omitempty"`
	WordsPerMinute float64 `yaml:"words_per_minute"`
	MinDurationSec float64 `yaml:"min_duration_s"`
}

// SlowValue returns the effective slow-speech flag applying defaults.
func (s SpeechConfig) SlowValue() bool {
	if s.Slow == nil {
		return false
	}
	return *s.Slow
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Video: VideoConfig{
			Width:      1920,
			Height:     1080,
			FPS:        24,
			Codec:      "libx264",
			AudioCodec: "aac",
		},
		Text: TextConfig{
			FontFile: "",
			FontSize: 60,
			Color:    "#ffffff",
			MarginPx: 100,
		},
		Box: BoxConfig{
			Color:     "#000000",
			Opacity:   0.5,
			PaddingPx: 20,
		},
		Speech: SpeechConfig{
			Language:       "en",
			Slow:           boolPtr(false),
			WordsPerMinute: 150,
			MinDurationSec: 2.0,
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Video.Width == 0 {
		c.Video.Width = defaults.Video.Width
	}
	if c.Video.Height == 0 {
		c.Video.Height = defaults.Video.Height
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = defaults.Video.FPS
	}
	if c.Video.Codec == "" {
		c.Video.Codec = defaults.Video.Codec
	}
	if c.Video.AudioCodec == "" {
		c.Video.AudioCodec = defaults.Video.AudioCodec
	}
	if c.Text.FontSize == 0 {
		c.Text.FontSize = defaults.Text.FontSize
	}
	if c.Text.Color == "" {
		c.Text.Color = defaults.Text.Color
	}
	if c.Text.MarginPx == 0 {
		c.Text.MarginPx = defaults.Text.MarginPx
	}
	if c.Box.Color == "" {
		c.Box.Color = defaults.Box.Color
	}
	if c.Box.Opacity == 0 {
		c.Box.Opacity = defaults.Box.Opacity
	}
	if c.Box.PaddingPx == 0 {
		c.Box.PaddingPx = defaults.Box.PaddingPx
	}
	if c.Speech.Language == "" {
		c.Speech.Language = defaults.Speech.Language
	}
	if c.Speech.Slow == nil {
		c.Speech.Slow = boolPtr(false)
	}
	if c.Speech.WordsPerMinute == 0 {
		c.Speech.WordsPerMinute = defaults.Speech.WordsPerMinute
	}
	if c.Speech.MinDurationSec == 0 {
		c.Speech.MinDurationSec = defaults.Speech.MinDurationSec
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

// Save writes the YAML encoding of the configuration to path.
func (c Config) Save(path string) error {
	buf, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func boolPtr(v bool) *bool {
	return &v
}
