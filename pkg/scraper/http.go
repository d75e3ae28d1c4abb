package scraper

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type HTTPScraper struct {
	client  *http.Client
	headers http.Header
}

type HTTPScraperOptionFunc func(s *HTTPScraper)

func WithUserAgent(userAgent string) HTTPScraperOptionFunc {
	return func(s *HTTPScraper) {
		s.headers.Set("User-Agent", userAgent)
	}
}

func WithHeader(key, value string) HTTPScraperOptionFunc {
	return func(s *HTTPScraper) {
		s.headers.Set(key, value)
	}
}

// Get implements scraper.Scraper.
func (s *HTTPScraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for key, values := range s.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if res.StatusCode != http.StatusOK {
		defer res.Body.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body, 4e+6)) // Restrict to 4MB
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return nil, errors.WithStack(&StatusError{StatusCode: res.StatusCode, Body: body})
	}

	return res.Body, nil
}

func NewHTTPScraper(client *http.Client, funcs ...HTTPScraperOptionFunc) *HTTPScraper {
	s := &HTTPScraper{
		client:  client,
		headers: http.Header{},
	}

	s.headers.Set("User-Agent", DefaultUserAgent)

	for _, fn := range funcs {
		fn(s)
	}

	return s
}

var _ Scraper = &HTTPScraper{}
