package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette is one colour scheme. Values are anything lipgloss.Color accepts
// (ANSI index or hex).
type Palette struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Muted      string `yaml:"muted"`
	Accent     string `yaml:"accent"`
	Border     string `yaml:"border"`
	Active     string `yaml:"active"`
	Positive   string `yaml:"positive"`
	Negative   string `yaml:"negative"`
	Star       string `yaml:"star"`
	StatusFg   string `yaml:"status_fg"`
	StatusBg   string `yaml:"status_bg"`
}

// Skin pairs a dark and a light palette. The theme toggle switches between them.
type Skin struct {
	Name  string  `yaml:"name"`
	Dark  Palette `yaml:"dark"`
	Light Palette `yaml:"light"`
}

// DefaultSkin mirrors the colours of the web dashboard: green for gains,
// red for losses, orange accents.
func DefaultSkin() Skin {
	return Skin{
		Name: "default",
		Dark: Palette{
			Foreground: "#E6E6E6",
			Background: "#141414",
			Muted:      "#7A7A7A",
			Accent:     "#F7931E",
			Border:     "#3A3A3A",
			Active:     "#F7931E",
			Positive:   "#00FF88",
			Negative:   "#FF4757",
			Star:       "#FFD43B",
			StatusFg:   "#FFFFFF",
			StatusBg:   "#1F2A44",
		},
		Light: Palette{
			Foreground: "#1E1E1E",
			Background: "#FAFAFA",
			Muted:      "#6B6B6B",
			Accent:     "#D9730D",
			Border:     "#C8C8C8",
			Active:     "#D9730D",
			Positive:   "#0A8F4E",
			Negative:   "#D62839",
			Star:       "#C99A00",
			StatusFg:   "#1E1E1E",
			StatusBg:   "#DDE3EE",
		},
	}
}

var currentSkin = DefaultSkin()

// InitializeSkin loads <configDir>/skins/<name>.yml over the default skin.
// "default" and "" keep the built-in colours. Missing palette entries fall
// back to the default value.
func InitializeSkin(name, configDir string) error {
	currentSkin = DefaultSkin()
	if name == "" || name == "default" {
		return nil
	}

	skin, err := LoadSkin(filepath.Join(configDir, "skins", name+".yml"))
	if err != nil {
		return err
	}
	currentSkin = skin
	return nil
}

// LoadSkin reads a skin file, filling empty colours from DefaultSkin.
func LoadSkin(path string) (Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Skin{}, fmt.Errorf("read skin: %w", err)
	}

	var skin Skin
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return Skin{}, fmt.Errorf("parse skin %s: %w", path, err)
	}

	base := DefaultSkin()
	skin.Dark = skin.Dark.withDefaults(base.Dark)
	skin.Light = skin.Light.withDefaults(base.Light)
	if skin.Name == "" {
		skin.Name = filepath.Base(path)
	}
	return skin, nil
}

func (p Palette) withDefaults(d Palette) Palette {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Palette{
		Foreground: pick(p.Foreground, d.Foreground),
		Background: pick(p.Background, d.Background),
		Muted:      pick(p.Muted, d.Muted),
		Accent:     pick(p.Accent, d.Accent),
		Border:     pick(p.Border, d.Border),
		Active:     pick(p.Active, d.Active),
		Positive:   pick(p.Positive, d.Positive),
		Negative:   pick(p.Negative, d.Negative),
		Star:       pick(p.Star, d.Star),
		StatusFg:   pick(p.StatusFg, d.StatusFg),
		StatusBg:   pick(p.StatusBg, d.StatusBg),
	}
}

// styles holds the lipgloss styles derived from one palette.
type styles struct {
	palette Palette

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Muted         lipgloss.Style
	Accent        lipgloss.Style
	Positive      lipgloss.Style
	Negative      lipgloss.Style
	Star          lipgloss.Style
	Section       lipgloss.Style
	ActiveSection lipgloss.Style
	Cursor        lipgloss.Style
	Status        lipgloss.Style
	Error         lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Positive: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Positive)),
		Negative: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Negative)),
		Star:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Star)),
		Section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		ActiveSection: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Active)).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.StatusFg)).
			Background(lipgloss.Color(p.StatusBg)),
		Error: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Negative)),
	}
}

// stylesFor returns the styles of the active skin for the given theme.
func stylesFor(dark bool) styles {
	if dark {
		return newStyles(currentSkin.Dark)
	}
	return newStyles(currentSkin.Light)
}

// changeStyle colours a signed value: zero and gains are positive.
func (s styles) changeStyle(negative bool) lipgloss.Style {
	if negative {
		return s.Negative
	}
	return s.Positive
}
