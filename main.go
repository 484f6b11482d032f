// compy TUI - A terminal chat client for the Compy AI product search.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/compy-tui/internal/assistant"
	"github.com/jeranaias/compy-tui/internal/config"
	"github.com/jeranaias/compy-tui/internal/logging"
	"github.com/jeranaias/compy-tui/internal/suggest"
	"github.com/jeranaias/compy-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/compy/config.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("compy %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Info().
		Str("version", Version).
		Str("endpoint", cfg.API.BaseURL).
		Msg("starting compy")

	client := assistant.New(cfg.API.BaseURL).
		WithMaxToolSteps(cfg.API.MaxToolSteps).
		WithLogger(logging.Component(logger, "assistant"))

	// The suggestion bus is scoped to this composition: the welcome screen
	// publishes on it, and the subscription below feeds selections back
	// into the program as messages.
	bus := suggest.NewBus()

	model := chat.New(client, bus, cfg.UI.ShowSuggestions, logging.Component(logger, "chat"))
	program := tea.NewProgram(model, tea.WithAltScreen())

	unsubscribe := bus.Subscribe(func(text string) {
		program.Send(chat.SuggestionMsg{Text: text})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info().Msg("compy stopped")
}
