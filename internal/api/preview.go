package api

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// PreviewFetcher debounces preview-count requests. Rapid-fire filter edits
// collapse into one request after a quiet period, and a response is applied
// only while its request is still the newest one: stale completions are
// dropped rather than overwriting fresher data.
type PreviewFetcher struct {
	client *Client
	delay  time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewPreviewFetcher(client *Client, delay time.Duration) *PreviewFetcher {
	return &PreviewFetcher{client: client, delay: delay}
}

// Request schedules a preview-count fetch for the given combination,
// superseding any pending one. apply runs with the result once the debounce
// window passes, unless a newer Request arrived in the meantime.
func (f *PreviewFetcher) Request(ctx context.Context, categorySlug string, filters url.Values, apply func(count int, err error)) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.delay, func() {
		count, err := f.client.PreviewCount(ctx, categorySlug, filters)

		f.mu.Lock()
		stale := gen != f.gen
		f.mu.Unlock()
		if stale {
			return
		}
		apply(count, err)
	})
	f.mu.Unlock()
}

// Stop cancels any pending fetch.
func (f *PreviewFetcher) Stop() {
	f.mu.Lock()
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()
}
