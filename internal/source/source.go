package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"genstudio/internal/ui"

	"github.com/atotto/clipboard"
)

// Provider retrieves a pasted model response for extract-only runs.
type Provider struct{}

// New creates a new Provider.
func New() *Provider {
	return &Provider{}
}

// Piped reports whether stdin carries piped content.
func (p *Provider) Piped() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// GetContent retrieves content from stdin (if piped) or the clipboard.
func (p *Provider) GetContent() (string, error) {
	if p.Piped() {
		ui.Header("--- Reading from stdin ---")
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	ui.Header("--- Reading from clipboard ---")
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. Nothing to process.")
		return "", nil
	}
	return content, nil
}
