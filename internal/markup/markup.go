// Package markup converts rich content trees into the canonical
// lightweight markup dialect. Conversion is rule based: an ordered table
// of (predicate, renderer) pairs is tried per node and the first match
// wins, with a generic fallback for tags no explicit rule claims.
package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Options configures a Converter. The zero value is the canonical
// configuration.
type Options struct {
	// EscapePunctuation enables backslash-escaping of markup punctuation
	// in converted text. Off by default: escaped punctuation is visible
	// noise in the target dialect, and code content stays unambiguous
	// through fence and backtick collision handling instead.
	EscapePunctuation bool
}

// rule is one conversion rule: Applies decides whether the rule claims a
// node, Render produces its markup from the already-converted children.
type rule struct {
	Name    string
	Applies func(n *html.Node) bool
	Render  func(c *conversion, n *html.Node, children string) string
}

// Converter turns content trees into canonical markup text. A Converter
// is immutable after construction and safe for concurrent use; every
// Convert call works on fresh state.
type Converter struct {
	opts  Options
	rules []rule
}

// New creates a Converter with the default rule table.
func New(opts Options) *Converter {
	return &Converter{opts: opts, rules: defaultRules()}
}

// Convert renders a content tree to markup text. The input node itself
// is treated as an anonymous container; only its children are rendered.
func (cv *Converter) Convert(root *html.Node) string {
	root = unwrap(root)
	c := &conversion{opts: cv.opts, rules: cv.rules, root: root}
	return postProcess(c.children(root))
}

// ConvertString parses an HTML fragment and converts it.
func (cv *Converter) ConvertString(fragment string) (string, error) {
	root, err := ParseFragment(fragment)
	if err != nil {
		return "", err
	}
	return cv.Convert(root), nil
}

// conversion is the per-call state: the options, the rule table, and the
// full input root so rules can inspect the whole payload (duplicate-link
// suppression needs it).
type conversion struct {
	opts  Options
	rules []rule
	root  *html.Node
}

func (c *conversion) children(n *html.Node) string {
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		b.WriteString(c.convert(ch))
	}
	return b.String()
}

func (c *conversion) convert(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return c.text(n)
	case html.ElementNode:
		kids := c.children(n)
		for _, r := range c.rules {
			if r.Applies(n) {
				return r.Render(c, n, kids)
			}
		}
		return c.fallback(n, kids)
	default:
		return ""
	}
}

var wsRun = regexp.MustCompile(`\s+`)

// blockContainers are tags whose direct text children are formatting
// whitespace from the serialiser, not content.
var blockContainers = map[string]bool{
	"ul": true, "ol": true, "blockquote": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true,
}

func (c *conversion) text(n *html.Node) string {
	if inCode(n) {
		return n.Data
	}
	if n.Parent != nil && blockContainers[n.Parent.Data] && strings.TrimSpace(n.Data) == "" {
		return ""
	}
	s := wsRun.ReplaceAllString(n.Data, " ")
	if c.opts.EscapePunctuation {
		s = escape(s)
	}
	return s
}

// unwrap strips a single presentational wrapper: when the whole input is
// one element with no meaningful siblings and that element is not a
// protected structural tag, only its inner content is converted.
func unwrap(root *html.Node) *html.Node {
	protected := map[string]bool{"pre": true, "ul": true, "ol": true, "a": true, "code": true}
	for {
		only := onlyElementChild(root)
		if only == nil || protected[only.Data] {
			return root
		}
		root = only
	}
}

var (
	trailingWS  = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	escMarker   = regexp.MustCompile(`(?m)^(\W* {0,3})(\d+)\\\. `)
	blankBefore = regexp.MustCompile(`\n\n+( *(?:[*+-]|\d+\.) )`)
)

// postProcess cleans up the fully converted text. List markers get their
// periods unescaped (escaping is only needed mid-paragraph), and the
// blank line before a list marker is collapsed so adjacent items are not
// artificially separated.
func postProcess(s string) string {
	s = trailingWS.ReplaceAllString(s, "")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = escMarker.ReplaceAllString(s, "${1}${2}. ")
	s = blankBefore.ReplaceAllString(s, "\n$1")
	return strings.TrimSpace(s)
}

var (
	escChars  = strings.NewReplacer(`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`, `~`, `\~`)
	escNumber = regexp.MustCompile(`^( {0,3}\d+)\. `)
)

// escape backslash-escapes markup punctuation in plain text. Only used
// when Options.EscapePunctuation is set.
func escape(s string) string {
	s = escChars.Replace(s)
	return escNumber.ReplaceAllString(s, `$1\. `)
}
