package chatclip

import (
	"fmt"

	"github.com/sorrel-io/chatclip/internal/clip"
	"github.com/sorrel-io/chatclip/internal/document"
	"github.com/sorrel-io/chatclip/internal/markup"
	"github.com/sorrel-io/chatclip/internal/selection"
)

// Config for using chatclip as a library.
type Config struct {
	// Backslash-escape markup punctuation in converted text.
	Escape bool
}

// Message is one feed entry for CopySelection: a message in document
// order with its recipient group, sender, and markdown source.
type Message struct {
	ID       int64
	Group    string
	Sender   string
	Markdown string
}

// CopyPayload is the replacement clipboard content for a multi-block
// copy.
type CopyPayload struct {
	// Markdown is the canonical text form of the copied blocks.
	Markdown string
	// HTML is the tree the platform clipboard should observe.
	HTML string
	// Start and End are the ids of the first and last block copied.
	Start, End int64
	// ForceMultiBlock reports that boundary resolution had to walk
	// across non-content rows.
	ForceMultiBlock bool
}

// Convert turns a rich clipboard fragment into canonical markup text.
func Convert(fragment string, config Config) (string, error) {
	conv := markup.New(markup.Options{EscapePunctuation: config.Escape})
	return conv.ConvertString(fragment)
}

// CopySelection renders msgs into a feed, resolves sel against it, and
// builds the copy replacement payload. Each element of sel is one
// platform selection range given as a start/end row-index pair. A nil
// payload with a nil error means the selection resolves inside a single
// block (or not at all) and the caller should let native copy proceed.
func CopySelection(msgs []Message, sel [][2]int, config Config) (*CopyPayload, error) {
	feedMsgs := make([]document.Message, len(msgs))
	for i, m := range msgs {
		feedMsgs[i] = document.Message{ID: m.ID, Group: m.Group, Sender: m.Sender, Markdown: m.Markdown}
	}
	feed, err := document.NewFeed(feedMsgs)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed: %w", err)
	}

	ranges := make([]selection.Range, len(sel))
	for i, s := range sel {
		ranges[i] = selection.Range{Start: selection.Anchor{Row: s[0]}, End: selection.Anchor{Row: s[1]}}
	}

	conv := markup.New(markup.Options{EscapePunctuation: config.Escape})
	copier := clip.NewCopier(feed, feed, conv)
	result, err := copier.Copy(ranges, nil)
	if err != nil || result == nil {
		return nil, err
	}

	return &CopyPayload{
		Markdown:        result.Markdown,
		HTML:            result.HTML,
		Start:           int64(*result.Range.Start),
		End:             int64(*result.Range.End),
		ForceMultiBlock: result.Range.ForceMultiBlock,
	}, nil
}
