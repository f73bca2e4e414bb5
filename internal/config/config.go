// Package config loads the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Every field has a default, so a missing
// file or a partial file is fine.
type Config struct {
	Data struct {
		Source string `yaml:"source"`  // CSV path or URL used when nothing was imported yet
		DBPath string `yaml:"db_path"` // SQLite database
	} `yaml:"data"`
	Charts Charts `yaml:"charts"`
	Colors Colors `yaml:"colors"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

// Charts sizes the SVG charts.
type Charts struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	MarginTop    int     `yaml:"margin_top"`
	MarginRight  int     `yaml:"margin_right"`
	MarginBottom int     `yaml:"margin_bottom"`
	MarginLeft   int     `yaml:"margin_left"`
	BandPadding  float64 `yaml:"band_padding"`

	PieRadius      float64 `yaml:"pie_radius"`
	InnerRatio     float64 `yaml:"inner_ratio"`
	OuterRatio     float64 `yaml:"outer_ratio"`
	LabelThreshold float64 `yaml:"label_threshold"`

	CellSize int `yaml:"cell_size"`
}

// Colors holds hex colours.
type Colors struct {
	HeatLow  string   `yaml:"heat_low"`
	HeatHigh string   `yaml:"heat_high"`
	Bar      string   `yaml:"bar"`
	Line     string   `yaml:"line"`
	Palette  []string `yaml:"palette"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Charts = Charts{
		Width:          720,
		Height:         320,
		MarginTop:      20,
		MarginRight:    50,
		MarginBottom:   30,
		MarginLeft:     40,
		BandPadding:    0.2,
		PieRadius:      160,
		InnerRatio:     0.5,
		OuterRatio:     0.8,
		LabelThreshold: 0.01,
		CellSize:       36,
	}
	c.Colors = Colors{
		HeatLow:  "#ebedf0",
		HeatHigh: "#216e39",
		Bar:      "#6C63FF",
		Line:     "#FF6B6B",
		Palette:  []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"},
	}
	c.Server.Addr = ":8080"
	if p, err := DefaultDBPath(); err == nil {
		c.Data.DBPath = p
	}
	return c
}

// Load reads path over the defaults. An empty path tries DefaultPath and falls back
// to the defaults when that file does not exist.
func Load(path string) (Config, error) {
	c := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return c, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects geometry that cannot be drawn.
func (c Config) Validate() error {
	ch := c.Charts
	for name, r := range map[string]float64{
		"inner_ratio":     ch.InnerRatio,
		"outer_ratio":     ch.OuterRatio,
		"label_threshold": ch.LabelThreshold,
	} {
		if r <= 0 || r > 1 {
			return fmt.Errorf("charts.%s must be in (0, 1], got %v", name, r)
		}
	}
	if ch.InnerRatio >= ch.OuterRatio {
		return fmt.Errorf("charts.inner_ratio (%v) must be below outer_ratio (%v)", ch.InnerRatio, ch.OuterRatio)
	}
	if ch.BandPadding < 0 || ch.BandPadding >= 1 {
		return fmt.Errorf("charts.band_padding must be in [0, 1), got %v", ch.BandPadding)
	}
	if ch.Width <= ch.MarginLeft+ch.MarginRight || ch.Height <= ch.MarginTop+ch.MarginBottom {
		return fmt.Errorf("charts: %dx%d leaves no room inside the margins", ch.Width, ch.Height)
	}
	if len(c.Colors.Palette) == 0 {
		return errors.New("colors.palette must not be empty")
	}
	return nil
}

// DefaultPath returns ~/.config/playtally/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "playtally", "config.yaml"), nil
}

// DefaultDBPath returns ~/.config/playtally/playtally.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "playtally", "playtally.db"), nil
}
