package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
)

// KeyboardConfig stores the keyboard geometry. Black key sizes are
// fractions of the white key width and of the widget height.
type KeyboardConfig struct {
	KeyCount       int     `json:"key_count"`
	BaseNote       uint8   `json:"base_note"`
	BlackKeyWidth  float32 `json:"black_key_width"`
	BlackKeyHeight float32 `json:"black_key_height"`
	ShowLabels     bool    `json:"show_labels"`
}

// MIDIConfig controls how key events are encoded and which incoming
// channel is mirrored onto the keys
type MIDIConfig struct {
	Channel          uint8 `json:"channel"`           // 0-15
	Velocity         uint8 `json:"velocity"`          // 1-127
	HighlightChannel int   `json:"highlight_channel"` // 0-15, or -1 for any channel
}

// WindowConfig is the initial window size
type WindowConfig struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Config holds application configuration
type Config struct {
	Keyboard KeyboardConfig `json:"keyboard"`
	MIDI     MIDIConfig     `json:"midi"`
	Window   WindowConfig   `json:"window"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	kb := keyboard.DefaultConfig()
	return &Config{
		Keyboard: KeyboardConfig{
			KeyCount:       kb.KeyCount,
			BaseNote:       kb.BaseNote,
			BlackKeyWidth:  kb.BlackKeyWidth,
			BlackKeyHeight: kb.BlackKeyHeight,
			ShowLabels:     kb.ShowLabels,
		},
		MIDI: MIDIConfig{
			Velocity:         100,
			HighlightChannel: -1,
		},
		Window: WindowConfig{
			Width:  610,
			Height: 200,
		},
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-piano"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path. Missing fields keep their defaults and
// out-of-range values are pulled into range rather than rejected.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	kb := c.KeyboardConfig().Normalize()
	c.Keyboard.KeyCount = kb.KeyCount
	c.Keyboard.BlackKeyWidth = kb.BlackKeyWidth
	c.Keyboard.BlackKeyHeight = kb.BlackKeyHeight

	c.MIDI.Channel &= 0x0F
	if c.MIDI.Velocity == 0 || c.MIDI.Velocity > 127 {
		c.MIDI.Velocity = 100
	}
	if c.MIDI.HighlightChannel > 15 || c.MIDI.HighlightChannel < -1 {
		c.MIDI.HighlightChannel = -1
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window = Default().Window
	}
}

// KeyboardConfig converts the stored settings into a keyboard configuration
func (c *Config) KeyboardConfig() keyboard.Config {
	return keyboard.Config{
		KeyCount:       c.Keyboard.KeyCount,
		BaseNote:       c.Keyboard.BaseNote,
		BlackKeyWidth:  c.Keyboard.BlackKeyWidth,
		BlackKeyHeight: c.Keyboard.BlackKeyHeight,
		ShowLabels:     c.Keyboard.ShowLabels,
	}
}
