package markup

import (
	"strings"

	"golang.org/x/net/html"
)

var headingLevel = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// fallback is the generic tag conversion used when no explicit rule
// claims a node.
func (c *conversion) fallback(n *html.Node, children string) string {
	if level, ok := headingLevel[n.Data]; ok {
		return "\n\n" + strings.Repeat("#", level) + " " + strings.TrimSpace(children) + "\n\n"
	}

	switch n.Data {
	case "p":
		return "\n\n" + strings.TrimSpace(children) + "\n\n"
	case "strong", "b":
		if strings.TrimSpace(children) == "" {
			return children
		}
		return "**" + children + "**"
	case "em", "i":
		if strings.TrimSpace(children) == "" {
			return children
		}
		return "*" + children + "*"
	case "br":
		return "\n"
	case "hr":
		return "\n\n---\n\n"
	case "blockquote":
		quoted := blankRuns.ReplaceAllString(strings.TrimSpace(children), "\n\n")
		return "\n\n" + quoteLines(quoted) + "\n\n"
	case "ul", "ol":
		return "\n\n" + strings.Trim(children, "\n") + "\n\n"
	case "pre":
		// A pre without a lone code child still renders verbatim.
		return "\n\n" + strings.TrimSuffix(rawText(n), "\n") + "\n\n"
	case "table":
		return "\n\n" + strings.Trim(children, "\n") + "\n\n"
	case "thead", "tbody", "tfoot":
		return children
	case "tr":
		return strings.TrimRight(children, "\t") + "\n"
	case "td", "th":
		return strings.TrimSpace(children) + "\t"
	case "div", "section", "article":
		return "\n" + children + "\n"
	default:
		return children
	}
}

// quoteLines prefixes every line with the quote marker.
func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
