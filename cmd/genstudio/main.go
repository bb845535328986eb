package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"genstudio/cli"
	"genstudio/internal/app"
	"genstudio/internal/tui"
	"genstudio/internal/ui"
)

func main() {
	// Optional; the environment wins over .env.
	godotenv.Load()

	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if cfg.Serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := a.Serve(ctx); err != nil {
			ui.Error("Error: %v", err)
			os.Exit(1)
		}
		return
	}

	// Modes that print to stdout should not run the TUI.
	if cfg.DryRun || cfg.NoAnimation {
		summary, err := a.Execute()
		if err != nil {
			ui.Error("Error: %v", err)
			os.Exit(1)
		}
		ui.PrintSummary(summary)
		return
	}

	model := tui.New(a)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
