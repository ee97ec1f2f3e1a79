// Package urlnorm turns user input and raw hrefs into absolute crawlable URLs.
package urlnorm

import (
	"net/url"
	"strings"
)

// Normalize prefixes https:// unless raw already carries an http:// or https://
// scheme, in any case. Nothing else is checked; a malformed host fails later, at
// fetch time.
func Normalize(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}

// ResolveLink resolves href against base. ok is false when either side does not
// parse or the result is not an http(s) URL.
func ResolveLink(base, href string) (string, bool) {
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	abs := b.ResolveReference(h)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}
