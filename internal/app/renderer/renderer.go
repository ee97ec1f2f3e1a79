// Package renderer fetches pages through a headless Chrome so client side
// scripts can populate the document before it is read.
package renderer

import (
	"context"
	"fmt"
	"time"

	"emailcrawler/internal/usecase"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Acquire starts a browser bound to ctx. The returned cancel func shuts it down.
type Acquire func(ctx context.Context) (context.Context, context.CancelFunc)

type renderFunc func(ctx context.Context, url string, settle time.Duration) (string, error)

type renderer struct {
	settle  time.Duration
	timeout time.Duration
	logger  *zap.Logger
	acquire Acquire
	render  renderFunc
}

// NewRenderer returns a Fetcher that spends one browser per call.
func NewRenderer(settle, timeout time.Duration, userAgent string, logger *zap.Logger) usecase.Fetcher {
	logger.Debug("new renderer initialize")
	return &renderer{
		settle:  settle,
		timeout: timeout,
		logger:  logger,
		acquire: ChromeAcquire(userAgent),
		render:  renderChrome,
	}
}

// ChromeAcquire launches a fresh headless Chrome process per call.
func ChromeAcquire(userAgent string) Acquire {
	return func(ctx context.Context) (context.Context, context.CancelFunc) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		if userAgent != "" {
			opts = append(opts, chromedp.UserAgent(userAgent))
		}
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
		return browserCtx, func() {
			cancelBrowser()
			cancelAlloc()
		}
	}
}

func renderChrome(ctx context.Context, url string, settle time.Duration) (string, error) {
	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	return html, err
}

// Fetch loads url, waits for the settle delay and returns the rendered HTML.
// The browser is released on every return path.
func (r *renderer) Fetch(ctx context.Context, url string) (string, error) {
	select {
	case <-ctx.Done():
		r.logger.Debug("context done in render")
		return "", &usecase.FetchError{URL: url, Err: ctx.Err()}
	default:
	}

	browserCtx, release := r.acquire(ctx)
	defer func() {
		release()
		r.logger.Debug("browser released", zap.String("url", url))
	}()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	html, err := r.render(timeoutCtx, url, r.settle)
	if err != nil {
		r.logger.Error("render error", zap.String("url", url), zap.Error(err))
		return "", &usecase.FetchError{URL: url, Err: fmt.Errorf("browser automation failed: %w", err)}
	}
	logMsg := fmt.Sprintf("rendered %s: %d bytes", url, len(html))
	r.logger.Debug(logMsg)
	return html, nil
}
