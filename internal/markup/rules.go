package markup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// PreviewImageClass marks a wrapper holding the rendered preview of a
// link that appears elsewhere in the same payload.
const PreviewImageClass = "message-inline-image"

// defaultRules returns the conversion rule table in priority order.
// Explicit overrides come first; anything unclaimed goes through the
// generic fallback.
func defaultRules() []rule {
	return []rule{
		{
			Name: "drop",
			Applies: func(n *html.Node) bool {
				return isTag(n, "style", "script", "noscript", "head", "title", "meta", "link", "svg")
			},
			Render: func(*conversion, *html.Node, string) string { return "" },
		},
		{
			Name: "strikethrough",
			Applies: func(n *html.Node) bool {
				return isTag(n, "del", "s", "strike")
			},
			Render: func(_ *conversion, _ *html.Node, children string) string {
				return "~~" + children + "~~"
			},
		},
		{
			// Rendered math carries no recoverable source notation.
			// Dropping it beats emitting garbled glyph soup.
			Name: "math",
			Applies: func(n *html.Node) bool {
				return isTag(n, "math") || hasClassPrefix(n, "katex")
			},
			Render: func(*conversion, *html.Node, string) string { return "" },
		},
		{Name: "anchor", Applies: isAnchor, Render: renderAnchor},
		{
			Name:    "list-item",
			Applies: func(n *html.Node) bool { return isTag(n, "li") },
			Render:  renderListItem,
		},
		{
			Name:    "preview-image",
			Applies: func(n *html.Node) bool { return n.Type == html.ElementNode && hasClass(n, PreviewImageClass) },
			Render:  renderPreviewImage,
		},
		{
			Name:    "image",
			Applies: func(n *html.Node) bool { return isTag(n, "img") },
			Render:  renderImage,
		},
		{Name: "code-block", Applies: isCodeBlock, Render: renderCodeBlock},
		{
			Name: "inline-code",
			Applies: func(n *html.Node) bool {
				return isTag(n, "code", "tt", "kbd") && !(n.Parent != nil && isTag(n.Parent, "pre"))
			},
			Render: func(_ *conversion, n *html.Node, _ string) string {
				return inlineCode(strings.TrimSuffix(rawText(n), "\n"))
			},
		},
	}
}

func isAnchor(n *html.Node) bool {
	return isTag(n, "a") && attr(n, "href") != ""
}

// renderAnchor collapses redundant links: a link whose visible text is
// its own target becomes the bare URL, and a link wrapping only an image
// becomes just the image.
func renderAnchor(_ *conversion, n *html.Node, children string) string {
	href := attr(n, "href")
	if img := onlyElementChild(n); img != nil && isTag(img, "img") {
		// Formatting whitespace around the inner image would otherwise
		// double up with the text around the anchor.
		return strings.TrimSpace(children)
	}
	if strings.TrimSpace(children) == href {
		return href
	}
	return "[" + children + "](" + href + ")"
}

// renderListItem prefixes an item with its marker and re-indents
// continuation lines by two spaces. Ordered parents number items from
// their declared start offset.
func renderListItem(_ *conversion, n *html.Node, children string) string {
	body := strings.TrimLeft(children, "\n")
	body = strings.TrimRight(body, "\n")
	body = itemBlanks.ReplaceAllString(body, "\n\n")
	body = strings.ReplaceAll(body, "\n", "\n  ")

	prefix := "* "
	if parent := n.Parent; parent != nil && isTag(parent, "ol") {
		start := 1
		if s, err := strconv.Atoi(attr(parent, "start")); err == nil {
			start = s
		}
		pos := 0
		for sib := parent.FirstChild; sib != nil && sib != n; sib = sib.NextSibling {
			if isTag(sib, "li") {
				pos++
			}
		}
		prefix = fmt.Sprintf("%d. ", start+pos)
	}

	out := prefix + body
	if n.NextSibling != nil {
		out += "\n"
	}
	return out
}

// renderPreviewImage suppresses a rendered link preview when the
// generating link for the same target is present elsewhere in the
// payload; otherwise the preview converts as a plain image.
func renderPreviewImage(c *conversion, n *html.Node, children string) string {
	if href := previewHref(n); href != "" && hasGeneratingLink(c.root, href) {
		return ""
	}
	return children
}

// previewHref finds the target a preview wrapper stands for: the inner
// link's href, or the inner image's source.
func previewHref(n *html.Node) string {
	var href string
	var walk func(*html.Node) bool
	walk = func(m *html.Node) bool {
		if isAnchor(m) {
			href = attr(m, "href")
			return true
		}
		if isTag(m, "img") && attr(m, "src") != "" {
			href = attr(m, "src")
			return true
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(n)
	return href
}

// hasGeneratingLink reports whether the payload contains a link to href
// outside any preview wrapper.
func hasGeneratingLink(root *html.Node, href string) bool {
	var found bool
	var walk func(n *html.Node, inPreview bool)
	walk = func(n *html.Node, inPreview bool) {
		if found {
			return
		}
		if n.Type == html.ElementNode && hasClass(n, PreviewImageClass) {
			inPreview = true
		}
		if !inPreview && isAnchor(n) && attr(n, "href") == href {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inPreview)
		}
	}
	walk(root, false)
	return found
}

var (
	titleWS    = regexp.MustCompile(`\s*\n\s*`)
	itemBlanks = regexp.MustCompile(`\n{3,}`)
)

// renderImage emits an image as a titled link. Custom pictographs with a
// textual fallback emit that text verbatim.
func renderImage(_ *conversion, n *html.Node, _ string) string {
	if hasClass(n, "emoji") && attr(n, "alt") != "" {
		return attr(n, "alt")
	}
	src := attr(n, "src")
	if src == "" {
		src = attr(n, "href")
	}
	if src == "" {
		return attr(n, "alt")
	}
	title := attr(n, "title")
	if title == "" {
		title = attr(n, "alt")
	}
	title = titleWS.ReplaceAllString(title, "\n")
	return "[" + title + "](" + src + ")"
}

func isCodeBlock(n *html.Node) bool {
	if !isTag(n, "pre") {
		return false
	}
	code := onlyElementChild(n)
	return code != nil && isTag(code, "code")
}

// renderCodeBlock emits single-line code inline and multi-line code
// fenced. Inline delimiters grow past any backtick run inside the code;
// fences grow past the longest fence-character run, with a minimum of
// three.
func renderCodeBlock(_ *conversion, n *html.Node, _ string) string {
	code := onlyElementChild(n)
	content := rawText(code)

	trimmed := strings.TrimSuffix(content, "\n")
	if !strings.Contains(trimmed, "\n") {
		return inlineCode(trimmed)
	}

	fence := strings.Repeat("`", max(3, longestBacktickRun(content)+1))
	return "\n\n" + fence + codeLanguage(n, code) + "\n" + trimmed + "\n" + fence + "\n\n"
}

// codeLanguage extracts the language tag from a language-marker class or
// the highlighted-code language attribute.
func codeLanguage(pre, code *html.Node) string {
	for _, n := range []*html.Node{code, pre} {
		for _, f := range strings.Fields(attr(n, "class")) {
			if lang, ok := strings.CutPrefix(f, "language-"); ok {
				return lang
			}
		}
	}
	for _, n := range []*html.Node{code, pre, pre.Parent} {
		if n == nil {
			continue
		}
		if lang := attr(n, "data-code-language"); lang != "" {
			return strings.TrimSpace(lang)
		}
	}
	return ""
}

// inlineCode wraps code in the fewest consecutive backticks that do not
// collide with a run inside the code. Padding spaces are added only when
// the code starts with a backtick or both starts and ends with a space.
func inlineCode(code string) string {
	runs := backtickRuns(code)
	width := 1
	for runs[width] {
		width++
	}
	delim := strings.Repeat("`", width)

	pad := ""
	if strings.HasPrefix(code, "`") ||
		(len(code) > 0 && strings.HasPrefix(code, " ") && strings.HasSuffix(code, " ")) {
		pad = " "
	}
	return delim + pad + code + pad + delim
}
