package renderer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"emailcrawler/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBrowser struct {
	acquired atomic.Int32
	released atomic.Int32
}

type browserKey struct{}

func (b *fakeBrowser) acquire(ctx context.Context) (context.Context, context.CancelFunc) {
	id := b.acquired.Add(1)
	ctx, cancel := context.WithCancel(context.WithValue(ctx, browserKey{}, id))
	return ctx, func() {
		cancel()
		b.released.Add(1)
	}
}

func newTestRenderer(b *fakeBrowser, render renderFunc) *renderer {
	return &renderer{
		settle:  10 * time.Millisecond,
		timeout: time.Second,
		logger:  zap.NewExample(),
		acquire: b.acquire,
		render:  render,
	}
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer(3*time.Second, 30*time.Second, "", zap.NewExample())
	assert.NotNil(t, r)
}

func TestFetchReleasesOnSuccess(t *testing.T) {
	b := &fakeBrowser{}
	var gotSettle time.Duration
	r := newTestRenderer(b, func(ctx context.Context, url string, settle time.Duration) (string, error) {
		gotSettle = settle
		return "<html><body>js@example.com</body></html>", nil
	})

	html, err := r.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Contains(t, html, "js@example.com")
	assert.Equal(t, 10*time.Millisecond, gotSettle)
	assert.Equal(t, int32(1), b.acquired.Load())
	assert.Equal(t, int32(1), b.released.Load())
}

func TestFetchReleasesOnFailure(t *testing.T) {
	b := &fakeBrowser{}
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	r := newTestRenderer(b, func(ctx context.Context, url string, settle time.Duration) (string, error) {
		return "", boom
	})

	_, err := r.Fetch(context.Background(), "https://unknown.invalid")
	require.Error(t, err)
	var fe *usecase.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "https://unknown.invalid", fe.URL)
	assert.ErrorIs(t, err, boom, "teardown must not mask the fetch error")
	assert.Equal(t, int32(1), b.released.Load())
}

func TestFetchIndependentBrowsers(t *testing.T) {
	b := &fakeBrowser{}
	var mu sync.Mutex
	seen := map[int32]bool{}
	r := newTestRenderer(b, func(ctx context.Context, url string, settle time.Duration) (string, error) {
		mu.Lock()
		seen[ctx.Value(browserKey{}).(int32)] = true
		mu.Unlock()
		return "<html></html>", nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Fetch(context.Background(), "https://example.com")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 4)
	assert.Equal(t, int32(4), b.released.Load())
}

func TestFetchCancelledSkipsBrowser(t *testing.T) {
	b := &fakeBrowser{}
	r := newTestRenderer(b, func(ctx context.Context, url string, settle time.Duration) (string, error) {
		t.Fatal("render called")
		return "", nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Fetch(ctx, "https://example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, b.acquired.Load())
}

func TestFetchChrome(t *testing.T) {
	if _, err := exec.LookPath("google-chrome"); err != nil {
		if _, err := exec.LookPath("chromium"); err != nil {
			t.Skip("no chrome binary available")
		}
	}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><body><div id="c"></div>
<script>setTimeout(function(){document.getElementById("c").textContent="late@example.com"}, 50)</script>
</body></html>`)
	}))
	defer s.Close()

	r := NewRenderer(500*time.Millisecond, 30*time.Second, "", zap.NewExample())
	html, err := r.Fetch(context.Background(), s.URL)
	require.NoError(t, err)
	assert.Contains(t, html, ">late@example.com<")
}
