package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"emailcrawler/internal/app/extractor"
	"emailcrawler/internal/app/page"
	"emailcrawler/internal/app/urlnorm"
	"emailcrawler/internal/usecase"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type crawler struct {
	static       usecase.Fetcher
	rendered     usecase.Fetcher
	logger       *zap.Logger
	concurrency  int
	defaultDepth int32
}

// NewCrawler wires the static and rendered fetchers. concurrency bounds the
// fetches running at once inside one round; 1 keeps rounds strictly sequential.
func NewCrawler(static, rendered usecase.Fetcher, logger *zap.Logger, defaultDepth int32, concurrency int) *crawler {
	if concurrency < 1 {
		concurrency = 1
	}
	if defaultDepth < 1 {
		defaultDepth = 1
	}
	return &crawler{
		static:       static,
		rendered:     rendered,
		logger:       logger,
		concurrency:  concurrency,
		defaultDepth: defaultDepth,
	}
}

// crawlState is owned by a single Crawl call.
type crawlState struct {
	mu      sync.Mutex
	visited map[string]struct{}
	emails  usecase.EmailSet
}

// claim marks url visited and reports whether the caller should fetch it.
func (s *crawlState) claim(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visited[url]; ok {
		return false
	}
	s.visited[url] = struct{}{}
	return true
}

func (s *crawlState) addEmails(found usecase.EmailSet) {
	s.mu.Lock()
	s.emails.Union(found)
	s.mu.Unlock()
}

func (s *crawlState) visitedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visited)
}

// Crawl runs up to req.Depth rounds from the seed. A zero Depth or Mode takes the
// crawler defaults. The first fetch failure aborts the crawl and is returned in
// CrawlResult.Err with no emails.
func (c *crawler) Crawl(ctx context.Context, req usecase.SeedRequest) usecase.CrawlResult {
	if req.Depth == 0 {
		req.Depth = c.DefaultDepth()
	}
	if req.Mode == "" {
		req.Mode = usecase.Static
	}
	if err := req.Validate(); err != nil {
		c.logger.Warn("invalid seed request", zap.Error(err))
		return usecase.CrawlResult{URL: req.URL, Err: err}
	}

	seed := urlnorm.Normalize(req.URL)
	fetcher, depth := c.static, req.Depth
	if req.Mode == usecase.Rendered {
		// rendering is single page only
		fetcher, depth = c.rendered, 1
	}

	st := &crawlState{
		visited: make(map[string]struct{}),
		emails:  usecase.NewEmailSet(),
	}
	frontier := []string{seed}
	for round := 1; round <= depth; round++ {
		if len(frontier) == 0 {
			logMsg := fmt.Sprintf("frontier empty before round %d, stop", round)
			c.logger.Debug(logMsg)
			break
		}
		next, err := c.round(ctx, st, fetcher, req, frontier)
		if err != nil {
			c.logger.Error("crawl aborted", zap.String("seed", seed), zap.Int("round", round), zap.Error(err))
			return usecase.CrawlResult{URL: seed, Visited: st.visitedCount(), Err: err}
		}
		logMsg := fmt.Sprintf("round %d done: %d urls fetched so far, %d links queued", round, st.visitedCount(), len(next))
		c.logger.Debug(logMsg)
		frontier = next
	}

	c.logger.Info("crawl finished",
		zap.String("seed", seed),
		zap.Int("visited", st.visitedCount()),
		zap.Int("emails", len(st.emails)))
	return usecase.CrawlResult{URL: seed, Emails: st.emails, Visited: st.visitedCount()}
}

// round fetches every unvisited url of frontier and returns the links found, in
// frontier order then document order. Once a fetch fails no further url of the
// round is claimed or fetched.
func (c *crawler) round(ctx context.Context, st *crawlState, f usecase.Fetcher, req usecase.SeedRequest, frontier []string) ([]string, error) {
	links := make([][]string, len(frontier))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, url := range frontier {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if !st.claim(url) {
				logMsg := fmt.Sprintf("url %s is already in visited", url)
				c.logger.Debug(logMsg)
				return nil
			}
			content, err := f.Fetch(gctx, url)
			if err != nil {
				var fe *usecase.FetchError
				if !errors.As(err, &fe) {
					err = &usecase.FetchError{URL: url, Err: err}
				}
				return err
			}
			found, pageLinks, err := c.scrape(content, url, req)
			if err != nil {
				return &usecase.FetchError{URL: url, Err: err}
			}
			st.addEmails(found)
			links[i] = pageLinks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var next []string
	for _, l := range links {
		next = append(next, l...)
	}
	return next, nil
}

// scrape pulls emails and links out of fetched content. Rendered content is
// matched as raw HTML and never followed.
func (c *crawler) scrape(content, url string, req usecase.SeedRequest) (usecase.EmailSet, []string, error) {
	if req.Mode == usecase.Rendered {
		return extractor.Extract(content, req.DomainFilter), nil, nil
	}
	p, err := page.NewPage(strings.NewReader(content), c.logger)
	if err != nil {
		return nil, nil, err
	}
	return extractor.Extract(p.Text(), req.DomainFilter), p.Links(url), nil
}

func (c *crawler) IncDefaultDepth(delta int32) {
	d := atomic.AddInt32(&c.defaultDepth, delta)
	logMsg := fmt.Sprintf("new default depth: %d", d)
	c.logger.Debug(logMsg)
}

func (c *crawler) DefaultDepth() int {
	return int(atomic.LoadInt32(&c.defaultDepth))
}
