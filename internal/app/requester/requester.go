package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"emailcrawler/internal/usecase"

	"go.uber.org/zap"
)

type requester struct {
	cl        *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewRequester returns the static Fetcher. rt may be nil for the default transport.
func NewRequester(timeout time.Duration, userAgent string, logger *zap.Logger, rt http.RoundTripper) usecase.Fetcher {
	logger.Debug("new requester initialize")
	return requester{
		cl: &http.Client{
			Timeout:   timeout,
			Transport: rt,
		},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch returns the response body whatever the status code is.
func (r requester) Fetch(ctx context.Context, url string) (string, error) {
	select {
	case <-ctx.Done():
		r.logger.Debug("context done in fetch")
		return "", &usecase.FetchError{URL: url, Err: ctx.Err()}
	default:
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logMsg := fmt.Sprintf("error by get new request, url: %s", url)
		r.logger.Error(logMsg, zap.Error(err))
		return "", &usecase.FetchError{URL: url, Err: err}
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	resp, err := r.cl.Do(req)
	if err != nil {
		r.logger.Error("http.client error", zap.Error(err))
		return "", &usecase.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.Error("read body error", zap.Error(err))
		return "", &usecase.FetchError{URL: url, Err: err}
	}
	logMsg := fmt.Sprintf("fetched %s: status %d, %d bytes", url, resp.StatusCode, len(body))
	r.logger.Debug(logMsg)
	return string(body), nil
}
