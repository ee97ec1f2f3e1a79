package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"example.com":          "https://example.com",
		"example.com/contact":  "https://example.com/contact",
		"http://example.com":   "http://example.com",
		"https://example.com/": "https://example.com/",
		"not a host":           "https://not a host",
		"httpbin.org":          "https://httpbin.org",
		"httpstat.us/200":      "https://httpstat.us/200",
		"HTTPS://example.com":  "HTTPS://example.com",
		"Http://x.test":        "Http://x.test",
	}
	for in, exp := range cases {
		assert.Equal(t, exp, Normalize(in), "normalize %q", in)
	}
}

func TestResolveLink(t *testing.T) {
	base := "https://example.com/team/index.html"
	cases := []struct {
		href string
		exp  string
		ok   bool
	}{
		{"/contact", "https://example.com/contact", true},
		{"about.html", "https://example.com/team/about.html", true},
		{"../jobs", "https://example.com/jobs", true},
		{"//cdn.example.org/x", "https://cdn.example.org/x", true},
		{"http://other.org", "http://other.org", true},
		{"?page=2", "https://example.com/team/index.html?page=2", true},
		{"mailto:a@b.com", "", false},
		{"javascript:void(0)", "", false},
		{"ftp://files.example.com", "", false},
		{"http://[::1", "", false},
		{"HTTPS://other.org/x", "https://other.org/x", true},
		{"httpfoo:bar", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveLink(base, tc.href)
		assert.Equal(t, tc.ok, ok, "href %q", tc.href)
		assert.Equal(t, tc.exp, got, "href %q", tc.href)
	}
}
