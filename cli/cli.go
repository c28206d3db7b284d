package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Stdout      bool
	Plain       bool
	Escape      bool
	NoAnimation bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	// Define flags
	pflag.BoolVarP(&cfg.Stdout, "stdout", "o", false, "Print the converted markup to stdout instead of writing it back to the clipboard.")
	pflag.BoolVarP(&cfg.Plain, "plain", "p", false, "Treat the payload as already-plain text and pass it through unconverted.")
	pflag.BoolVar(&cfg.Escape, "escape", false, "Backslash-escape markup punctuation in converted text.")
	pflag.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the spinner and print the summary directly.")

	pflag.Usage = func() {
		fmt.Println("Usage: chatclip [flags]")
		fmt.Println("\nConvert rich clipboard content (or piped HTML) to canonical markup.")
		fmt.Println("\nExample: xclip -o -t text/html | chatclip -o")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	// Plain mode never escapes; the payload is not touched at all.
	if cfg.Plain && cfg.Escape {
		return nil, fmt.Errorf("error: --plain and --escape are mutually exclusive")
	}

	return cfg, nil
}
