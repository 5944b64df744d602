package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/totelabel/pkg/cache"
)

const fetchTimeout = 10 * time.Second

// Thumbs fetches item images over HTTP, scales them down to thumbnail
// size, and keeps the encoded result in a cache keyed by URL. Decoded
// images are additionally memoized in memory for the run, since the
// layout engine measures and draws every unit at least twice.
type Thumbs struct {
	ctx    context.Context
	client *http.Client
	cache  cache.Cache
	logger *log.Logger
	sizePx int
	memo   map[string]image.Image
	misses map[string]bool
}

// NewThumbs creates a thumbnail provider. The context bounds every HTTP
// fetch made during the run.
func NewThumbs(ctx context.Context, c cache.Cache, sizePx int, logger *log.Logger) *Thumbs {
	return &Thumbs{
		ctx:    ctx,
		client: &http.Client{Timeout: fetchTimeout},
		cache:  c,
		logger: logger,
		sizePx: sizePx,
		memo:   make(map[string]image.Image),
		misses: make(map[string]bool),
	}
}

// Provide resolves a URL to a thumbnail image. Failures are remembered
// so a bad URL costs one fetch attempt per run, not one per draw.
func (t *Thumbs) Provide(url string) (image.Image, bool) {
	if url == "" {
		return nil, false
	}
	if img, ok := t.memo[url]; ok {
		return img, true
	}
	if t.misses[url] {
		return nil, false
	}

	img, err := t.resolve(url)
	if err != nil {
		t.logger.Debug("Thumbnail unavailable", "url", url, "error", err)
		t.misses[url] = true
		return nil, false
	}
	t.memo[url] = img
	return img, true
}

func (t *Thumbs) resolve(url string) (image.Image, error) {
	key := "thumb:" + url

	if data, ok, err := t.cache.Get(t.ctx, key); err == nil && ok {
		img, derr := imaging.Decode(bytes.NewReader(data))
		if derr == nil {
			return img, nil
		}
		// Corrupt entry, refetch.
		_ = t.cache.Delete(t.ctx, key)
	}

	data, err := t.fetch(url)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = imaging.Fit(img, t.sizePx, t.sizePx, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	if err := t.cache.Set(t.ctx, key, buf.Bytes()); err != nil {
		t.logger.Debug("Failed to cache thumbnail", "url", url, "error", err)
	}
	return img, nil
}

// fetch downloads the image bytes, retrying transient failures. Server
// errors and network errors are retryable, client errors are not.
func (t *Thumbs) fetch(url string) ([]byte, error) {
	var data []byte
	err := cache.RetryWithBackoff(t.ctx, func() error {
		req, err := http.NewRequestWithContext(t.ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := t.client.Do(req)
		if err != nil {
			return cache.Retryable(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return cache.Retryable(fmt.Errorf("server returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %s", resp.Status)
		}

		body, err := readAll(resp)
		if err != nil {
			return cache.Retryable(err)
		}
		data = body
		return nil
	})
	return data, err
}

func readAll(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
