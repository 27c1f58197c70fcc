package emojiart

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestURLFetcherHTTP(t *testing.T) {
	data := testPNG(t, 12, 7)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bg.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	f := NewURLFetcher(5 * time.Second)
	img, err := f.Fetch(context.Background(), srv.URL+"/bg.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("bounds = %v, want 12x7", b)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("404 did not fail")
	}
}

func TestURLFetcherFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	if err := os.WriteFile(path, testPNG(t, 3, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewURLFetcher(time.Second)
	for _, u := range []string{path, "file://" + path} {
		img, err := f.Fetch(context.Background(), u)
		if err != nil {
			t.Fatalf("Fetch(%q): %v", u, err)
		}
		if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 4 {
			t.Errorf("Fetch(%q) bounds = %v", u, b)
		}
	}
}

func TestURLFetcherErrors(t *testing.T) {
	f := NewURLFetcher(time.Second)
	if _, err := f.Fetch(context.Background(), "ftp://example.com/a.png"); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("ftp error = %v, want ErrUnsupportedScheme", err)
	}
	notImage := filepath.Join(t.TempDir(), "x.png")
	os.WriteFile(notImage, []byte("not an image"), 0o644)
	if _, err := f.Fetch(context.Background(), notImage); err == nil {
		t.Error("decoding garbage succeeded")
	}
	if _, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("missing file succeeded")
	}
}

// gatedFetcher blocks each fetch until its gate is closed.
type gatedFetcher struct {
	gates map[string]chan struct{}
	fail  map[string]bool
}

func (f *gatedFetcher) Fetch(ctx context.Context, rawURL string) (image.Image, error) {
	select {
	case <-f.gates[rawURL]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.fail[rawURL] {
		return nil, errors.New("fetch failed")
	}
	return image.NewRGBA(image.Rect(0, 0, len(rawURL), 1)), nil
}

func waitQueued(t *testing.T, l *AsyncLoader, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(l.results) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d results", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAsyncLoaderDiscardsStale(t *testing.T) {
	f := &gatedFetcher{gates: map[string]chan struct{}{
		"a":  make(chan struct{}),
		"bb": make(chan struct{}),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewAsyncLoader(ctx, f, 0, zerolog.Nop())

	doc := NewDocument()
	doc.SetBackgroundLoader(l)
	doc.SetBackgroundURL("a")
	doc.SetBackgroundURL("bb")

	close(f.gates["a"])
	waitQueued(t, l, 1)
	if n := l.Deliver(doc); n != 0 {
		t.Errorf("applied %d stale results", n)
	}
	if doc.BackgroundImage() != nil {
		t.Fatal("image set from stale fetch")
	}

	close(f.gates["bb"])
	waitQueued(t, l, 1)
	if n := l.Deliver(doc); n != 1 {
		t.Fatalf("applied %d, want 1", n)
	}
	if doc.BackgroundSize() != (Size{2, 1}) {
		t.Errorf("size = %v, want image for bb", doc.BackgroundSize())
	}
}

func TestAsyncLoaderFailureLeavesImageUnset(t *testing.T) {
	f := &gatedFetcher{
		gates: map[string]chan struct{}{"a": make(chan struct{})},
		fail:  map[string]bool{"a": true},
	}
	close(f.gates["a"])
	l := NewAsyncLoader(context.Background(), f, 0, zerolog.Nop())
	doc := NewDocument()
	doc.SetBackgroundLoader(l)
	doc.SetBackgroundURL("a")

	waitQueued(t, l, 1)
	if n := l.Deliver(doc); n != 0 {
		t.Errorf("applied %d, want 0", n)
	}
	if doc.BackgroundImage() != nil || doc.BackgroundURL() != "a" {
		t.Error("failed fetch changed the document")
	}
}

func TestAsyncLoaderTimeout(t *testing.T) {
	f := &gatedFetcher{gates: map[string]chan struct{}{"a": make(chan struct{})}}
	l := NewAsyncLoader(context.Background(), f, 10*time.Millisecond, zerolog.Nop())
	doc := NewDocument()
	doc.SetBackgroundLoader(l)
	doc.SetBackgroundURL("a")

	waitQueued(t, l, 1)
	r := <-l.results
	if !errors.Is(r.err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", r.err)
	}
}

func TestAsyncLoaderDeliverEmpty(t *testing.T) {
	l := NewAsyncLoader(context.Background(), &gatedFetcher{}, 0, zerolog.Nop())
	if n := l.Deliver(NewDocument()); n != 0 {
		t.Errorf("Deliver on empty queue = %d", n)
	}
}
