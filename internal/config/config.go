// Package config loads the TOML file that configures a token field host.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tokenfield/buffer"
	"github.com/iw2rmb/tokenfield/editor"
)

// Token describes how tokens look. Setting both prefix and suffix to ""
// turns decoration off.
type Token struct {
	Prefix     string `toml:"prefix"`
	Suffix     string `toml:"suffix"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

type Composition struct {
	Anchor string `toml:"anchor"`
	// CancelOnSpace ends the composition when a space is typed into it.
	CancelOnSpace bool `toml:"cancel-on-space"`
}

type Style struct {
	Text string  `toml:"text"`
	Link string  `toml:"link"`
	Font string  `toml:"font"`
	Kern float64 `toml:"kern"`
}

type Editing struct {
	SmartQuotes  bool `toml:"smart-quotes"`
	HistoryLimit int  `toml:"history-limit"`
}

type Log struct {
	Debug bool   `toml:"debug"`
	Path  string `toml:"path"`
}

type Config struct {
	Token       Token       `toml:"token"`
	Composition Composition `toml:"composition"`
	Style       Style       `toml:"style"`
	Editing     Editing     `toml:"editing"`
	Log         Log         `toml:"log"`
}

func Default() Config {
	return Config{
		Token: Token{
			Prefix:     " ",
			Suffix:     " ",
			Foreground: "#FFFFFF",
			Background: "#00AEEF",
		},
		Composition: Composition{
			Anchor: "@",
		},
		Style: Style{
			Text: "#242424",
			Link: "#00AEEF",
			Font: "body",
			Kern: 3,
		},
		Editing: Editing{
			SmartQuotes:  true,
			HistoryLimit: 1000,
		},
	}
}

// DefaultPath returns the config file location: $TOKENFIELD_CONFIG, then
// $XDG_CONFIG_HOME/tokenfield/config.toml, then ~/.config/tokenfield/config.toml.
func DefaultPath() (string, error) {
	if v := os.Getenv("TOKENFIELD_CONFIG"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tokenfield", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tokenfield", "config.toml"), nil
}

// Load reads path over Default. An empty path means DefaultPath. A missing
// file yields the defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Composition.Anchor == "" {
		cfg.Composition.Anchor = Default().Composition.Anchor
	}
	return cfg, nil
}

// EditorConfig maps the file settings onto a controller configuration. Host,
// Clipboard and Logger are left for the caller.
func (c Config) EditorConfig() editor.Config {
	kern := c.Style.Kern
	if kern == 0 {
		kern = -1
	}
	return editor.Config{
		Decoration:   editor.Decoration{Prefix: c.Token.Prefix, Suffix: c.Token.Suffix},
		NoDecoration: c.Token.Prefix == "" && c.Token.Suffix == "",
		Style: buffer.StyleConfig{
			Text:      lipgloss.Color(c.Style.Text),
			Link:      lipgloss.Color(c.Style.Link),
			Font:      c.Style.Font,
			TokenKern: kern,
		},
		DisableSmartQuotes: !c.Editing.SmartQuotes,
		HistoryLimit:       c.Editing.HistoryLimit,
	}
}

// TokenColors returns the configured token colors.
func (c Config) TokenColors() buffer.TokenColors {
	return buffer.TokenColors{
		Foreground: lipgloss.Color(c.Token.Foreground),
		Background: lipgloss.Color(c.Token.Background),
	}
}
