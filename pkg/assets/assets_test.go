package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/totelabel/pkg/cache"
)

func testLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestQRProvider(t *testing.T) {
	provide := NewQR(256)

	img, ok := provide("https://tote.example/A1")
	if !ok {
		t.Fatal("expected QR image for valid payload")
	}
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Errorf("expected 256x256 image, got %v", img.Bounds())
	}

	if _, ok := provide(""); ok {
		t.Error("expected absence for empty payload")
	}
}

func TestNoImage(t *testing.T) {
	if _, ok := NoImage("anything"); ok {
		t.Error("NoImage must always report absence")
	}
}

func TestThumbsFetchAndScale(t *testing.T) {
	data := pngBytes(t, 200, 100)
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	thumbs := NewThumbs(context.Background(), cache.NewNullCache(), 50, testLogger())

	img, ok := thumbs.Provide(server.URL + "/item.png")
	if !ok {
		t.Fatal("expected thumbnail")
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 25 {
		t.Errorf("expected 50x25 thumbnail (aspect preserved), got %v", img.Bounds())
	}

	// Second call must come from the in-memory memo.
	if _, ok := thumbs.Provide(server.URL + "/item.png"); !ok {
		t.Fatal("expected memoized thumbnail")
	}
	if hits != 1 {
		t.Errorf("expected 1 fetch, got %d", hits)
	}
}

func TestThumbsUsesCacheAcrossProviders(t *testing.T) {
	data := pngBytes(t, 80, 80)
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	fileCache, err := cache.NewFileCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	url := server.URL + "/box.png"

	first := NewThumbs(context.Background(), fileCache, 50, testLogger())
	if _, ok := first.Provide(url); !ok {
		t.Fatal("expected thumbnail on first run")
	}

	second := NewThumbs(context.Background(), fileCache, 50, testLogger())
	if _, ok := second.Provide(url); !ok {
		t.Fatal("expected thumbnail on second run")
	}
	if hits != 1 {
		t.Errorf("expected cache to absorb the second run, got %d fetches", hits)
	}
}

func TestThumbsClientErrorNotRetried(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	thumbs := NewThumbs(context.Background(), cache.NewNullCache(), 50, testLogger())

	if _, ok := thumbs.Provide(server.URL + "/missing.png"); ok {
		t.Fatal("expected absence for 404")
	}
	if hits != 1 {
		t.Errorf("404 must not be retried, got %d fetches", hits)
	}

	// The failure is remembered for the rest of the run.
	if _, ok := thumbs.Provide(server.URL + "/missing.png"); ok {
		t.Fatal("expected remembered absence")
	}
	if hits != 1 {
		t.Errorf("remembered miss must not refetch, got %d fetches", hits)
	}
}

func TestThumbsEmptyURL(t *testing.T) {
	thumbs := NewThumbs(context.Background(), cache.NewNullCache(), 50, testLogger())
	if _, ok := thumbs.Provide(""); ok {
		t.Error("expected absence for empty URL")
	}
}
