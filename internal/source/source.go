// Package source retrieves the payload the CLI operates on.
package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable indicates no clipboard utility was found.
var ErrClipboardUnavailable = fmt.Errorf("clipboard unavailable: install xclip, xsel, or wl-clipboard")

// Provider determines and retrieves the source content.
type Provider struct {
	stdin *os.File
}

// New creates a Provider reading from the process stdin.
func New() *Provider {
	return &Provider{stdin: os.Stdin}
}

// GetContent retrieves content from stdin (if piped) or the clipboard.
// An empty clipboard yields an empty string, not an error.
func (p *Provider) GetContent() (string, error) {
	stat, _ := p.stdin.Stat()
	isPiped := (stat.Mode() & os.ModeCharDevice) == 0

	if isPiped {
		content, err := io.ReadAll(p.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	return content, nil
}

// WriteClipboard writes text back to the system clipboard.
func WriteClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
