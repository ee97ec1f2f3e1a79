package page

import (
	"bufio"
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ReadHTML() io.Reader {
	f, err := os.Open("../../../tests/test.html")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	h := bytes.Buffer{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		h.WriteString(sc.Text())
	}
	return &h
}

func TestNewPage(t *testing.T) {
	l := zap.NewExample()
	page, err := NewPage(ReadHTML(), l)
	require.NoError(t, err)
	assert.NotNil(t, page, "fail to get new page")
}

func TestText(t *testing.T) {
	l := zap.NewExample()
	page, err := NewPage(ReadHTML(), l)
	require.NoError(t, err)

	text := page.Text()
	assert.Contains(t, text, "Write to sales@example-1.com or support@example-2.ru")
	assert.NotContains(t, text, "<p>")
	assert.NotContains(t, text, "mailto:", "attribute values are not text")
}

func TestLinks(t *testing.T) {
	l := zap.NewExample()
	page, err := NewPage(ReadHTML(), l)
	require.NoError(t, err)

	exp := []string{
		"http://example-1.com",
		"https://example-2.ru",
		"http://example-3.gov",
		"https://telegram.org/contact",
	}
	got := page.Links("https://telegram.org/about")
	assert.Equal(t, exp, got, "Test failed. Expect: %v, got: %v", exp, got)
}

func TestLinksKeepDuplicates(t *testing.T) {
	l := zap.NewExample()
	html := `<a href="/a">1</a><a href="/a">2</a><a href="https://x.test/a">3</a>`
	page, err := NewPage(strings.NewReader(html), l)
	require.NoError(t, err)

	got := page.Links("https://x.test/")
	assert.Equal(t, []string{"https://x.test/a", "https://x.test/a", "https://x.test/a"}, got)
}
