package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Workspace   string
	Model       string
	Listen      string
	Serve       bool
	Debounce    time.Duration
	DryRun      bool
	NoSandbox   bool
	NoAnimation bool

	// Prompt is the positional prompt text, empty when the prompt comes
	// from stdin or the clipboard.
	Prompt string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.StringVarP(&cfg.Workspace, "workspace", "w", "workspace", "Directory the generated project is written to.")
	pflag.StringVarP(&cfg.Model, "model", "m", "", "Generation model name (defaults to the built-in model).")
	pflag.StringVarP(&cfg.Listen, "listen", "l", "127.0.0.1:7420", "Address the studio server listens on in serve mode.")
	pflag.BoolVarP(&cfg.Serve, "serve", "s", false, "Run the studio server with the live preview and inspector.")
	pflag.DurationVar(&cfg.Debounce, "debounce", 0, "Quiet period for batching design edits (default 500ms).")
	pflag.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print the extracted files without writing the workspace.")
	pflag.BoolVar(&cfg.NoSandbox, "no-sandbox", false, "Skip the local dev-server sandbox in serve mode.")
	pflag.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the loading spinner.")

	pflag.Usage = func() {
		fmt.Println("Usage: genstudio [flags] [prompt]")
		fmt.Println("\nGenerate a project from a prompt, or pipe an LLM response to extract it.")
		fmt.Println("\nExamples:")
		fmt.Println("  genstudio \"build a todo app\"")
		fmt.Println("  pbpaste | genstudio -w ./app")
		fmt.Println("  genstudio --serve -w ./app")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if cfg.Serve && cfg.DryRun {
		return nil, fmt.Errorf("error: --serve and --dry-run are mutually exclusive")
	}

	cfg.Prompt = strings.TrimSpace(strings.Join(pflag.Args(), " "))
	return cfg, nil
}
