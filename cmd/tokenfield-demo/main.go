package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/iw2rmb/tokenfield"
	"github.com/iw2rmb/tokenfield/internal/config"
	"github.com/iw2rmb/tokenfield/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: $TOKENFIELD_CONFIG or ~/.config/tokenfield/config.toml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(tokenfield.Version())
		return
	}

	if err := run(*configPath, *debug); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	log := zap.NewNop()
	if cfg.Log.Path != "" {
		l, closeLog, err := logger.New(logger.Options{Debug: debug || cfg.Log.Debug, Path: cfg.Log.Path})
		if err != nil {
			return err
		}
		defer closeLog()
		log = l
	}
	log.Info("starting", zap.String("version", tokenfield.Version()))

	r := lipgloss.NewRenderer(os.Stdout, termenv.WithColorCache(true))
	p := tea.NewProgram(newModel(cfg, r, log, systemClipboard{}), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
