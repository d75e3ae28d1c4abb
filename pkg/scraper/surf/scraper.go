package surf

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/enetx/g"
	"github.com/enetx/surf"
	"github.com/pkg/errors"
)

// Scraper fetches pages with a client impersonating a desktop Chrome
// (TLS fingerprint and headers included).
type Scraper struct {
	timeout time.Duration
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := s.getClient()
	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return nil, errors.WithStack(resp.Err())
	}

	res := resp.Ok()

	if statusCode := int(res.StatusCode); statusCode != http.StatusOK {
		defer res.Body.Reader.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body.Reader, 4e+6))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return nil, errors.WithStack(&scraper.StatusError{StatusCode: statusCode, Body: body})
	}

	return res.Body.Reader, nil
}

func (s *Scraper) getClient() *surf.Client {
	builder := surf.NewClient().
		Builder()

	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		builder = builder.Proxy(proxy)
	}

	builder = builder.Impersonate().RandomOS().Chrome().
		Timeout(s.timeout).
		Session()

	return builder.Build()
}

func NewScraper(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Scraper{timeout: timeout}
}

var _ scraper.Scraper = &Scraper{}
