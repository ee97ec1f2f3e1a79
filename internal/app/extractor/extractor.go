// Package extractor finds email addresses in page text.
package extractor

import (
	"regexp"
	"strings"

	"emailcrawler/internal/usecase"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Extract returns every distinct address in text. A non-empty domainFilter keeps
// only addresses ending with it; the comparison is a plain string suffix, so
// "le.com" also keeps "someone@example.com".
func Extract(text, domainFilter string) usecase.EmailSet {
	set := usecase.NewEmailSet()
	for _, m := range emailPattern.FindAllString(text, -1) {
		if domainFilter != "" && !strings.HasSuffix(m, domainFilter) {
			continue
		}
		set.Add(m)
	}
	return set
}

// Match reports whether s is exactly one address.
func Match(s string) bool {
	loc := emailPattern.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}
