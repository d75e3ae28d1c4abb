package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

var ErrNoResult = errors.New("no search result")

// FirstImageURL returns the URL of the first result, in provider order,
// carrying a non-empty image URL.
func FirstImageURL(ctx context.Context, client Client, query string) (string, error) {
	results, err := client.Search(ctx, query)
	if err != nil {
		return "", errors.WithStack(err)
	}

	for _, r := range results {
		if url := strings.TrimSpace(r.URL); url != "" {
			slog.DebugContext(ctx, "found candidate image", slog.String("url", url), slog.Int("candidates", len(results)))
			return url, nil
		}
	}

	return "", errors.WithStack(ErrNoResult)
}
