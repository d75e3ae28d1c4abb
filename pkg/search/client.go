package search

import "context"

// Client queries an image search provider. An empty result set with a nil
// error means the provider had nothing to offer for the query.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

type Result struct {
	// URL of the full resolution image, either http(s) or a base64 data URI.
	URL          string
	ThumbnailURL string
	PageURL      string
	Title        string
}
