package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const appName = "coverscroll"

// Layout and header mode names accepted in the config file.
const (
	LayoutSingle   = "single"
	LayoutTwoPanel = "two_panel"

	HeaderIntermediate = "intermediate"
	HeaderOpenSquare   = "open_square"
)

type Config struct {
	// DefaultFolder is opened when no album is given and none was opened before.
	DefaultFolder string `koanf:"default_folder"`

	Scroller ScrollerConfig `koanf:"scroller"`
	Theme    ThemeConfig    `koanf:"theme"`
}

// ScrollerConfig holds the scroll surface dimensions and physics.
type ScrollerConfig struct {
	UnitsPerRow      int     `koanf:"units_per_row"`      // engine units per terminal row (default: 8)
	MinHeaderRows    int     `koanf:"min_header_rows"`    // fully collapsed header (default: 3)
	TransparentRows  int     `koanf:"transparent_rows"`   // spacer above the sheet at rest; 0 = a third of the terminal
	TouchSlop        int     `koanf:"touch_slop"`         // units of motion before a drag starts (default: 4)
	MinFlingVelocity float64 `koanf:"min_fling_velocity"` // units/s (default: 50)
	MaxFlingVelocity float64 `koanf:"max_fling_velocity"` // units/s (default: 8000)
	RefreshRate      int     `koanf:"refresh_rate"`       // frames per second (1-240, default: 60)
	Density          float64 `koanf:"density"`            // units per density-independent unit (default: 1)

	ExitMs     int `koanf:"exit_ms"`     // scroll-off animation (default: 300)
	HeaderMs   int `koanf:"header_ms"`   // expand/collapse animation (default: 300)
	EntranceMs int `koanf:"entrance_ms"` // entrance animation (default: 300)

	Layout         string `koanf:"layout"`          // "single" or "two_panel" (default: "single")
	HeaderMode     string `koanf:"header_mode"`     // "intermediate" or "open_square" (default: "intermediate")
	OpenFullscreen bool   `koanf:"open_fullscreen"` // entrance closes the spacer
}

// ExitDuration returns the scroll-off animation duration.
func (s ScrollerConfig) ExitDuration() time.Duration {
	return time.Duration(s.ExitMs) * time.Millisecond
}

// HeaderDuration returns the expand/collapse animation duration.
func (s ScrollerConfig) HeaderDuration() time.Duration {
	return time.Duration(s.HeaderMs) * time.Millisecond
}

// EntranceDuration returns the entrance animation duration.
func (s ScrollerConfig) EntranceDuration() time.Duration {
	return time.Duration(s.EntranceMs) * time.Millisecond
}

// ThemeConfig holds colors as "#rrggbb" strings.
type ThemeConfig struct {
	Tint     string `koanf:"tint"`     // header tint; empty = average cover color
	Backdrop string `koanf:"backdrop"` // dimmed area behind the sheet (default: "#000000")
	Accent   string `koanf:"accent"`   // title gradient end (default: "#a78bfa")
	// HideGradient starts with the shade under the title turned off.
	HideGradient bool `koanf:"hide_gradient"`
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths())
}

// LoadFrom reads the given config files in order, later files overriding
// earlier ones. Missing files are skipped.
func LoadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}
	cfg.Scroller.Layout = strings.ToLower(strings.TrimSpace(cfg.Scroller.Layout))
	cfg.Scroller.HeaderMode = strings.ToLower(strings.TrimSpace(cfg.Scroller.HeaderMode))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/coverscroll/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetScrollerConfig returns the scroller configuration with defaults applied.
func (c *Config) GetScrollerConfig() ScrollerConfig {
	cfg := c.Scroller

	if cfg.UnitsPerRow < 2 {
		cfg.UnitsPerRow = 8
	}
	if cfg.MinHeaderRows <= 0 {
		cfg.MinHeaderRows = 3
	}
	if cfg.TransparentRows < 0 {
		cfg.TransparentRows = 0
	}
	if cfg.TouchSlop <= 0 {
		cfg.TouchSlop = 4
	}
	if cfg.MinFlingVelocity <= 0 {
		cfg.MinFlingVelocity = 50
	}
	if cfg.MaxFlingVelocity <= cfg.MinFlingVelocity {
		cfg.MaxFlingVelocity = 8000
	}
	if cfg.RefreshRate <= 0 || cfg.RefreshRate > 240 {
		cfg.RefreshRate = 60
	}
	if cfg.Density <= 0 {
		cfg.Density = 1
	}
	if cfg.ExitMs <= 0 {
		cfg.ExitMs = 300
	}
	if cfg.HeaderMs <= 0 {
		cfg.HeaderMs = 300
	}
	if cfg.EntranceMs <= 0 {
		cfg.EntranceMs = 300
	}
	if cfg.Layout != LayoutTwoPanel {
		cfg.Layout = LayoutSingle
	}
	if cfg.HeaderMode != HeaderOpenSquare {
		cfg.HeaderMode = HeaderIntermediate
	}

	return cfg
}

// GetThemeConfig returns the theme with defaults applied. Colors that do
// not parse as "#rrggbb" fall back to their defaults; an invalid tint
// falls back to the cover color.
func (c *Config) GetThemeConfig() ThemeConfig {
	cfg := c.Theme

	if !isHexColor(cfg.Tint) {
		cfg.Tint = ""
	}
	if !isHexColor(cfg.Backdrop) {
		cfg.Backdrop = "#000000"
	}
	if !isHexColor(cfg.Accent) {
		cfg.Accent = "#a78bfa"
	}

	return cfg
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := colorful.Hex(s)
	return err == nil
}
