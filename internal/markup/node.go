package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses clipboard HTML in a body context and wraps the
// resulting nodes in an anonymous container.
func ParseFragment(fragment string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse clipboard fragment: %w", err)
	}
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// IsSingleImage reports whether a payload consists of exactly one image
// element and nothing else meaningful. Such payloads belong to the
// host's upload handler, not the converter.
func IsSingleImage(root *html.Node) bool {
	for {
		only := onlyElementChild(root)
		if only == nil {
			return false
		}
		if isTag(only, "img") {
			return true
		}
		if isTag(only, "a") || hasClass(only, PreviewImageClass) {
			root = only
			continue
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func hasClassPrefix(n *html.Node, prefix string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// onlyElementChild returns n's single element child when every other
// child is whitespace-only text, or nil.
func onlyElementChild(n *html.Node) *html.Node {
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if only != nil {
				return nil
			}
			only = c
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		}
	}
	return only
}

// rawText concatenates all descendant text without any conversion.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// inCode reports whether a node sits inside a code or pre element, where
// text must be preserved verbatim.
func inCode(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.Data == "code" || p.Data == "pre") {
			return true
		}
	}
	return false
}

// isTag reports whether n is an element with one of the given tags.
func isTag(n *html.Node, tags ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// backtickRuns returns the set of maximal backtick run lengths in s.
func backtickRuns(s string) map[int]bool {
	runs := make(map[int]bool)
	run := 0
	for _, r := range s {
		if r == '`' {
			run++
			continue
		}
		if run > 0 {
			runs[run] = true
			run = 0
		}
	}
	if run > 0 {
		runs[run] = true
	}
	return runs
}

// longestBacktickRun returns the length of the longest backtick run.
func longestBacktickRun(s string) int {
	longest := 0
	for n := range backtickRuns(s) {
		if n > longest {
			longest = n
		}
	}
	return longest
}
