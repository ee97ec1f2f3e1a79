package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	text := "Contact: a@b.com and c@d.org, again a@b.com. Sales: Sales.Team+eu@mail.example-shop.co.uk"
	got := Extract(text, "")
	assert.ElementsMatch(t, []string{"a@b.com", "c@d.org", "Sales.Team+eu@mail.example-shop.co.uk"}, got.Slice())
}

func TestExtractRejectsNonMatches(t *testing.T) {
	text := "user@localhost, @example.com, name@host.c, plain text, 42@1.23"
	assert.Empty(t, Extract(text, ""))
}

func TestExtractCaseSensitive(t *testing.T) {
	got := Extract("Bob@Example.com bob@example.com", "")
	assert.Len(t, got, 2)
}

func TestExtractEveryResultMatches(t *testing.T) {
	text := "<a href=\"mailto:info@site.io\">info@site.io</a> x_y%z@q-1.net; broken@@x.com"
	for e := range Extract(text, "") {
		assert.True(t, Match(e), "%q does not match the pattern", e)
	}
}

func TestExtractDomainFilter(t *testing.T) {
	text := "a@example.com b@notexample.com c@example.org d@d.org"

	got := Extract(text, "example.com")
	assert.ElementsMatch(t, []string{"a@example.com", "b@notexample.com"}, got.Slice())

	got = Extract(text, "d.org")
	assert.ElementsMatch(t, []string{"d@d.org"}, got.Slice())

	got = Extract(text, "le.com")
	assert.ElementsMatch(t, []string{"a@example.com", "b@notexample.com"}, got.Slice())
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("x@y.com"))
	assert.False(t, Match("x@y.com trailing"))
	assert.False(t, Match("x@y"))
}
