// Package assemble builds the synthetic content tree for a resolved
// block range: each block's content prefixed with its sender, with
// recipient-group headers inserted wherever the group changes.
package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/sorrel-io/chatclip/internal/document"
	"github.com/sorrel-io/chatclip/internal/selection"
)

var collapseSpace = regexp.MustCompile(`\s+`)

// Assemble walks the blocks from rng.Start to rng.End inclusive and
// returns a container node holding their combined content in document
// order. Every block contributes exactly one subtree, prefixed with
// "<sender>: ". A bold group header is inserted before each block whose
// group differs from the previous one; if any header was inserted, the
// starting group's header is prepended as well, so the first group is
// labeled whenever more than one group appears. A single-group range
// gets no headers.
func Assemble(rng selection.Resolved, store document.Store) (*html.Node, error) {
	if rng.Start == nil || rng.End == nil {
		return nil, document.ErrEmptyRange
	}
	if *rng.End < *rng.Start {
		return nil, document.ErrBadRange
	}

	blocks := store.Between(*rng.Start, *rng.End)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("blocks %d..%d: %w", *rng.Start, *rng.End, document.ErrUnknownBlock)
	}

	container := document.NewElement("div")
	headerInserted := false
	for i, b := range blocks {
		if i > 0 && b.Group != blocks[i-1].Group {
			container.AppendChild(groupHeader(b.Group))
			headerInserted = true
		}
		container.AppendChild(blockContent(b))
	}

	if headerInserted {
		container.InsertBefore(groupHeader(blocks[0].Group), container.FirstChild)
	}
	return container, nil
}

// blockContent clones a block's content tree and prefixes its first
// child with the sender attribution.
func blockContent(b *document.Block) *html.Node {
	content := document.CloneTree(b.Content)
	prefix := document.NewText(b.Sender + ": ")

	first := content.FirstChild
	switch {
	case first == nil:
		content.AppendChild(prefix)
	case first.Type == html.ElementNode:
		first.InsertBefore(prefix, first.FirstChild)
	default:
		content.InsertBefore(prefix, first)
	}
	return content
}

// groupHeader builds the synthetic header node for a recipient group:
// a paragraph holding the whitespace-collapsed group label in bold.
func groupHeader(g document.GroupID) *html.Node {
	label := collapseSpace.ReplaceAllString(strings.TrimSpace(string(g)), " ")

	strong := document.NewElement("strong")
	strong.AppendChild(document.NewText(label))
	p := document.NewElement("p")
	p.AppendChild(strong)
	return p
}
