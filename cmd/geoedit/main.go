package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/config"
	"geoedit/internal/logging"
	"geoedit/internal/tui"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	closer, err := logging.Init(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	var m tui.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(cfg, os.Args[1])
	} else {
		m = tui.New(cfg)
	}
	defer m.Close()

	logging.L().Info().Str("dir", cfg.OpenDir).Msg("starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logging.L().Error().Err(err).Msg("program exited")
		log.Fatal(err)
	}
}
