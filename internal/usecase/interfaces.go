package usecase

import "context"

//go:generate mockgen -destination=../../mocks/mock_usecase.go -package=mocks emailcrawler/internal/usecase Crawler,HistoryStore

// Fetcher returns the raw content of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Page interface {
	Text() string
	Links(base string) []string
}

type Crawler interface {
	Crawl(ctx context.Context, req SeedRequest) CrawlResult
	IncDefaultDepth(delta int32)
	DefaultDepth() int
}

type HistoryStore interface {
	Append(ctx context.Context, url string, emails []string) error
	Latest(ctx context.Context, n int) ([]HistoryRecord, error)
	Close() error
}
