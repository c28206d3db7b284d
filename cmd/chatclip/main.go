package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sorrel-io/chatclip/chatclip"
	"github.com/sorrel-io/chatclip/cli"
	"github.com/sorrel-io/chatclip/internal/tui"
	"github.com/sorrel-io/chatclip/model"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := chatclip.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Stdout mode prints the result directly and must not run the TUI;
	// --no-animation skips it too.
	if cfg.Stdout || cfg.NoAnimation {
		summary, err := app.Execute()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printSummary(cfg, summary)
		return
	}

	p := tea.NewProgram(tui.New(app))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(cfg *cli.Config, summary model.Summary) {
	if cfg.Stdout {
		if summary.Output != "" {
			fmt.Println(summary.Output)
		}
		if summary.Message != "" {
			fmt.Fprintln(os.Stderr, summary.Message)
		}
		return
	}
	if summary.Message != "" {
		fmt.Println(summary.Message)
	}
	if summary.Wrote {
		fmt.Println("Converted markup written to clipboard.")
	}
}
