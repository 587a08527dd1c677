// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the card pager settings from an HJSON file
// and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hjson/hjson-go"
	"golang.org/x/image/colornames"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "CARDPAGER_"

// Config holds the card pager settings. Lengths are in dp.
type Config struct {
	// Margin is the distance between the screen edges and a card.
	Margin float32 `json:"margin" env:"MARGIN"`
	// Spacing is the gap between cards.
	Spacing float32 `json:"spacing" env:"SPACING"`
	// Threshold is the release velocity in dp per second below which
	// a drag snaps to the nearest card regardless of direction.
	Threshold float32 `json:"threshold" env:"THRESHOLD"`
	// Top is the distance between the window top and the cards.
	Top        float32 `json:"top" env:"TOP"`
	Cards      int     `json:"cards" env:"CARDS"`
	Background string  `json:"background" env:"BACKGROUND"`
	Card       string  `json:"card" env:"CARD"`
	// StatePath is the SQLite database remembering the last card.
	// Empty disables it.
	StatePath string `json:"state-path" env:"STATE_PATH"`
}

// Default returns the settings of the original layout.
func Default() Config {
	return Config{
		Margin:     32,
		Spacing:    16,
		Threshold:  0,
		Top:        40,
		Cards:      10,
		Background: "green",
		Card:       "red",
	}
}

// Load returns the default settings overridden by the HJSON file at
// path, if path is not empty, and then by the environment.
func Load(path string) (Config, error) {
	conf := Default()
	if path != "" {
		if err := conf.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&conf, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// HJSON decodes into generic values only; round trip through
	// JSON to fill the struct while keeping defaults for absent keys.
	var mdat map[string]interface{}
	if err := hjson.Unmarshal(data, &mdat); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	data, err = json.Marshal(mdat)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Margin < 0:
		return fmt.Errorf("config: negative margin %g", c.Margin)
	case c.Spacing < 0:
		return fmt.Errorf("config: negative spacing %g", c.Spacing)
	case c.Threshold < 0:
		return fmt.Errorf("config: negative threshold %g", c.Threshold)
	case c.Top < 0:
		return fmt.Errorf("config: negative top inset %g", c.Top)
	case c.Cards < 1:
		return fmt.Errorf("config: need at least one card, got %d", c.Cards)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if _, err := ParseColor(c.Card); err != nil {
		return fmt.Errorf("config: card: %w", err)
	}
	return nil
}

// ParseColor resolves an SVG color name, such as "green", or a
// #rrggbb hex triplet.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
