package google

import (
	"context"
	"log/slog"

	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/pkg/errors"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Client implements the search.Client interface using the image search mode
// of the Google Custom Search API.
type Client struct {
	apiKey string
	cx     string
	opts   []option.ClientOption
}

// Search implements the search.Client interface.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(c.apiKey)}, c.opts...)

	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "executing image search", slog.String("query", query))

	call := service.Cse.List().
		Q(query).
		Cx(c.cx).
		SearchType("image").
		Num(10).
		Context(ctx)

	res, err := call.Do()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var results []search.Result
	for _, item := range res.Items {
		if item.Link == "" {
			continue
		}

		result := search.Result{
			URL:   item.Link,
			Title: item.Title,
		}

		if item.Image != nil {
			result.ThumbnailURL = item.Image.ThumbnailLink
			result.PageURL = item.Image.ContextLink
		}

		results = append(results, result)
	}

	return results, nil
}

// NewClient creates a new Google Custom Search API client. Extra options
// (endpoint, http client) are appended after the API key.
func NewClient(apiKey, cx string, opts ...option.ClientOption) *Client {
	return &Client{
		apiKey: apiKey,
		cx:     cx,
		opts:   opts,
	}
}

var _ search.Client = &Client{}
