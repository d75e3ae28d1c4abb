package meta

import (
	"context"
	"log/slog"

	se "github.com/bornholm/imagefetcher/pkg/search"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Client queries its clients one after the other and returns the results of
// the first one producing any. Clients failing along the way are only
// reported if no client produced a result.
type Client struct {
	clients []se.Client
}

// Search implements search.Client.
func (s *Client) Search(ctx context.Context, search string) ([]se.Result, error) {
	var aggregatedErr error

	for i, engine := range s.clients {
		results, err := engine.Search(ctx, search)
		if err != nil {
			slog.DebugContext(ctx, "search client failed", slog.Int("client", i), slog.Any("error", err))
			aggregatedErr = multierror.Append(aggregatedErr, errors.WithStack(err))
			continue
		}

		if len(results) > 0 {
			return results, nil
		}
	}

	if aggregatedErr != nil {
		return nil, aggregatedErr
	}

	return nil, nil
}

func NewClient(clients ...se.Client) *Client {
	return &Client{
		clients: clients,
	}
}

var _ se.Client = &Client{}
