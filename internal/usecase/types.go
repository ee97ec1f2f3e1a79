package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RenderMode string

const (
	Static   RenderMode = "static"
	Rendered RenderMode = "rendered"
)

// Label is the human readable name shown next to a result.
func (m RenderMode) Label() string {
	if m == Rendered {
		return "Rendered"
	}
	return "Static"
}

type SeedRequest struct {
	URL          string     `validate:"required"`
	Depth        int        `validate:"min=1"`
	DomainFilter string     `validate:"omitempty"`
	Mode         RenderMode `validate:"oneof=static rendered"`
}

var (
	ErrMissingURL     = errors.New("missing url")
	ErrInvalidRequest = errors.New("invalid request")
)

var validate = validator.New()

func (r SeedRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrMissingURL
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// FetchError is a failed page fetch that aborted a crawl.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type EmailSet map[string]struct{}

func NewEmailSet(emails ...string) EmailSet {
	s := make(EmailSet, len(emails))
	for _, e := range emails {
		s[e] = struct{}{}
	}
	return s
}

func (s EmailSet) Add(email string) {
	s[email] = struct{}{}
}

func (s EmailSet) Union(other EmailSet) {
	for e := range other {
		s[e] = struct{}{}
	}
}

func (s EmailSet) Has(email string) bool {
	_, ok := s[email]
	return ok
}

// Slice returns the members in no particular order.
func (s EmailSet) Slice() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	return out
}

// CrawlResult carries either the emails found or the error that aborted the crawl.
type CrawlResult struct {
	URL     string
	Emails  EmailSet
	Visited int
	Err     error
}

func (r CrawlResult) OK() bool {
	return r.Err == nil
}

type HistoryRecord struct {
	ID     int64
	URL    string
	Emails string
}

// EmailList splits the stored comma-joined emails.
func (h HistoryRecord) EmailList() []string {
	if h.Emails == "" {
		return nil
	}
	return strings.Split(h.Emails, ",")
}
