package editor

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield/buffer"
	"github.com/iw2rmb/tokenfield/internal/grapheme"
)

// Decoration wraps a token's display text.
type Decoration struct {
	Prefix string
	Suffix string
}

// DefaultDecoration surrounds token text with one space on each side.
func DefaultDecoration() Decoration {
	return Decoration{Prefix: " ", Suffix: " "}
}

func (d Decoration) apply(text string) string {
	return d.Prefix + text + d.Suffix
}

// Config configures a Controller.
type Config struct {
	// Initial text. It carries no tokens.
	Text string

	// Zero value: DefaultDecoration, unless NoDecoration is set.
	Decoration Decoration

	// NoDecoration inserts token text as given, ignoring Decoration.
	NoDecoration bool

	// Forwarded to buffer.Options. When both token insets are zero they
	// default to the decoration's prefix and suffix lengths.
	Style              buffer.StyleConfig
	Quotes             buffer.QuoteStyle
	DisableSmartQuotes bool
	HistoryLimit       int

	// Host receives notifications. Nil means NopHost.
	Host Host

	// Clipboard backs Copy, Cut and PasteFromClipboard. Optional.
	Clipboard Clipboard

	// NewReference returns a fresh token reference. Default: random UUID.
	NewReference func() string

	// Nil means zap.NewNop().
	Logger *zap.Logger
}

func normalizeConfig(cfg Config) Config {
	switch {
	case cfg.NoDecoration:
		cfg.Decoration = Decoration{}
	case cfg.Decoration == (Decoration{}):
		cfg.Decoration = DefaultDecoration()
	}
	if cfg.Style.TokenInsetLeading == 0 && cfg.Style.TokenInsetTrailing == 0 {
		cfg.Style.TokenInsetLeading = grapheme.Count(cfg.Decoration.Prefix)
		cfg.Style.TokenInsetTrailing = grapheme.Count(cfg.Decoration.Suffix)
	}
	if cfg.Host == nil {
		cfg.Host = NopHost{}
	}
	if cfg.NewReference == nil {
		cfg.NewReference = uuid.NewString
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
