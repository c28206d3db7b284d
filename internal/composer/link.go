package composer

import (
	"net/url"
	"strings"
)

// IsURL reports whether text is a single bare http or https URL.
func IsURL(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\n") {
		return false
	}
	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LinkResolver recognises URLs that have an internal cross-reference
// shorthand. Shorthand returns the shorthand syntax for a URL, or empty
// when the URL is not an internal reference.
type LinkResolver interface {
	Shorthand(rawURL string) string
}

// RefResolver resolves links into this deployment's group/topic
// shorthand. A conversation link of the form
// <base>/#narrow/channel/<group>/topic/<topic> becomes "#<group> > <topic>".
type RefResolver struct {
	base *url.URL
}

// NewRefResolver creates a resolver for the deployment at baseURL.
func NewRefResolver(baseURL string) (*RefResolver, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &RefResolver{base: base}, nil
}

// Shorthand implements LinkResolver.
func (r *RefResolver) Shorthand(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	if u.Host != r.base.Host || u.Scheme != r.base.Scheme {
		return ""
	}

	parts := strings.Split(strings.Trim(u.Fragment, "/"), "/")
	if len(parts) != 5 || parts[0] != "narrow" || parts[1] != "channel" || parts[3] != "topic" {
		return ""
	}
	group := decodeSlug(parts[2])
	topic := decodeSlug(parts[4])
	if group == "" || topic == "" {
		return ""
	}
	return "#" + group + " > " + topic
}

// decodeSlug reverses the renderer's slug encoding, which writes spaces
// as dots.
func decodeSlug(slug string) string {
	return strings.ReplaceAll(slug, ".", " ")
}
