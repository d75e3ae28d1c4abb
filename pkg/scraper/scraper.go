package scraper

import (
	"context"
	"io"
)

type Scraper interface {
	// Get returns the body of a 200 response. Any other status yields a *StatusError.
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}
