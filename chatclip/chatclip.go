package chatclip

import (
	"fmt"
	"runtime/debug"

	"github.com/sorrel-io/chatclip/cli"
	"github.com/sorrel-io/chatclip/internal/markup"
	"github.com/sorrel-io/chatclip/internal/source"
	"github.com/sorrel-io/chatclip/model"
)

// App orchestrates the entire application logic.
type App struct {
	cfg      *cli.Config
	provider *source.Provider
	conv     *markup.Converter
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	if cfg == nil {
		cfg = &cli.Config{}
	}
	return &App{
		cfg:      cfg,
		provider: source.New(),
		conv:     markup.New(markup.Options{EscapePunctuation: cfg.Escape}),
	}, nil
}

// Execute runs the conversion based on parsed flags.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	content, err := a.provider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if content == "" {
		return model.Summary{Message: "Source is empty. Nothing to convert."}, nil
	}

	output := content
	if !a.cfg.Plain {
		output, err = a.conv.ConvertString(content)
		if err != nil {
			return model.Summary{}, fmt.Errorf("failed to convert payload: %w", err)
		}
		if output == "" {
			return model.Summary{Message: "Payload had no convertible content."}, nil
		}
	}

	if a.cfg.Stdout {
		return model.Summary{Output: output}, nil
	}

	if err := source.WriteClipboard(output); err != nil {
		return model.Summary{}, err
	}
	return model.Summary{Output: output, Wrote: true}, nil
}
