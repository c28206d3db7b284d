package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderer matches the host dialect: GFM covers strikethrough, tables,
// and bare-URL autolinking.
var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown renders message markdown to a content tree the way the
// host renderer would: markdown to HTML, then parsed into a single
// container node whose children are the rendered elements.
func RenderMarkdown(source string) (*html.Node, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return ParseFragment(buf.String())
}

// ParseFragment parses an HTML fragment into a container node. The
// fragment is parsed in a body context, so stray table parts or list
// items are normalised the way a platform clipboard payload would be.
func ParseFragment(fragment string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	container := NewElement("div")
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// RenderHTML serialises a content tree's children back to an HTML string.
func RenderHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}

// NewElement creates a detached element node with the given tag.
func NewElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// CloneTree deep-copies a node and its children. The copy is detached
// from any parent, so it can be grafted into a synthetic tree without
// touching the source document.
func CloneTree(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneTree(c))
	}
	return clone
}
