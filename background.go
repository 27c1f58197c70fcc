package emojiart

import (
	"context"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	// Register decoders beyond the standard gif/jpeg/png.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Fetcher retrieves and decodes the image behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (image.Image, error)
}

// ErrUnsupportedScheme is returned for URLs no fetcher knows how to open.
var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// maxImageBytes caps how much of a response body is decoded.
const maxImageBytes = 64 << 20

// URLFetcher opens http, https and file URLs. Plain paths without a scheme
// are treated as local files.
type URLFetcher struct {
	Client *http.Client
}

// NewURLFetcher returns a fetcher whose HTTP requests time out after timeout.
func NewURLFetcher(timeout time.Duration) *URLFetcher {
	return &URLFetcher{Client: &http.Client{Timeout: timeout}}
}

// Fetch implements Fetcher.
func (f *URLFetcher) Fetch(ctx context.Context, rawURL string) (image.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse background url %q", rawURL)
	}
	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, u.String())
	case "file", "":
		return decodeFile(u.Path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedScheme, "%q", u.Scheme)
	}
}

func (f *URLFetcher) fetchHTTP(ctx context.Context, rawURL string) (image.Image, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", rawURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("get %s: status %s", rawURL, resp.Status)
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", rawURL)
	}
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open background")
	}
	defer f.Close()
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// fetchResult is one completed fetch waiting to be delivered.
type fetchResult struct {
	url string
	img image.Image
	err error
}

// AsyncLoader runs fetches on background goroutines and hands completions
// back through Deliver, which the host calls from its event loop. Completions
// for URLs that are no longer current are discarded by the Document.
type AsyncLoader struct {
	ctx     context.Context
	fetcher Fetcher
	timeout time.Duration
	results chan fetchResult
	log     zerolog.Logger
}

// NewAsyncLoader creates a loader. Fetches are bound to ctx and, when
// timeout is positive, to a per-fetch deadline.
func NewAsyncLoader(ctx context.Context, fetcher Fetcher, timeout time.Duration, log zerolog.Logger) *AsyncLoader {
	return &AsyncLoader{
		ctx:     ctx,
		fetcher: fetcher,
		timeout: timeout,
		results: make(chan fetchResult, 8),
		log:     log,
	}
}

// Load implements BackgroundLoader.
func (l *AsyncLoader) Load(rawURL string) {
	l.log.Debug().Str("url", rawURL).Msg("fetching background")
	go func() {
		ctx := l.ctx
		if l.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}
		img, err := l.fetcher.Fetch(ctx, rawURL)
		select {
		case l.results <- fetchResult{url: rawURL, img: img, err: err}:
		case <-l.ctx.Done():
		}
	}()
}

// Deliver applies every completed fetch to doc without blocking and returns
// how many results were applied.
func (l *AsyncLoader) Deliver(doc *Document) int {
	applied := 0
	for {
		select {
		case r := <-l.results:
			if r.err != nil {
				l.log.Warn().Err(r.err).Str("url", r.url).Msg("background fetch failed")
			}
			if doc.ResolveBackground(r.url, r.img, r.err) {
				applied++
			} else if r.err == nil {
				l.log.Debug().Str("url", r.url).Msg("discarded stale background")
			}
		default:
			return applied
		}
	}
}
