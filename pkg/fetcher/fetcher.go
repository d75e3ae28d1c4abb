package fetcher

import (
	"context"
	"log/slog"

	"github.com/bornholm/imagefetcher/internal/logx"
	"github.com/bornholm/imagefetcher/pkg/loader"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/pkg/errors"
)

type ObserverFunc func(ctx context.Context, state State)

type Fetcher struct {
	client   search.Client
	loader   *loader.Loader
	observer ObserverFunc
}

type OptionFunc func(f *Fetcher)

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn ObserverFunc) OptionFunc {
	return func(f *Fetcher) {
		f.observer = fn
	}
}

func WithLoader(l *loader.Loader) OptionFunc {
	return func(f *Fetcher) {
		f.loader = l
	}
}

// Resolve returns the first candidate image URL for query.
func (f *Fetcher) Resolve(ctx context.Context, query string) (string, error) {
	url, err := search.FirstImageURL(ctx, f.client, query)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return url, nil
}

// Fetch resolves query and loads the resulting candidate. It never returns
// an error: every failure is described by the outcome.
func (f *Fetcher) Fetch(ctx context.Context, query string) *Outcome {
	ctx = logx.WithAttrs(ctx, slog.String("query", query))

	outcome := &Outcome{Query: query}

	f.transition(ctx, StateIdle)
	f.transition(ctx, StateResolving)

	url, err := f.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, search.ErrNoResult) {
			outcome.Status = StatusNotFound
			f.transition(ctx, StateNotFound)
			return outcome
		}

		outcome.Status = StatusError
		outcome.Err = err
		outcome.Message = "Error searching image: " + errors.Cause(err).Error()
		f.transition(ctx, StateFailed)
		return outcome
	}

	outcome.URL = url

	f.transition(ctx, StateFound)
	f.transition(ctx, StateLoading)

	img, err := f.loader.Load(ctx, url)
	switch {
	case err == nil:
		outcome.Status = StatusFound
		outcome.Image = img
		f.transition(ctx, StateDisplaying)

	case errors.Is(err, loader.ErrTooSmall):
		outcome.Status = StatusTooSmall
		f.transition(ctx, StateRejected)

	case errors.Is(err, loader.ErrNotFound):
		outcome.Status = StatusNotFound
		outcome.Err = err
		f.transition(ctx, StateNotFound)

	default:
		outcome.Status = StatusError
		outcome.Err = err
		outcome.Message = "Error loading image: " + errors.Cause(err).Error()
		slog.WarnContext(ctx, "could not load image", slog.String("url", url), slog.Any("error", err))
		f.transition(ctx, StateFailed)
	}

	return outcome
}

func (f *Fetcher) transition(ctx context.Context, state State) {
	slog.DebugContext(ctx, "pipeline state", slog.String("state", string(state)))

	if f.observer != nil {
		f.observer(ctx, state)
	}
}

func NewFetcher(client search.Client, funcs ...OptionFunc) *Fetcher {
	f := &Fetcher{
		client: client,
		loader: loader.NewLoader(nil),
	}

	for _, fn := range funcs {
		fn(f)
	}

	return f
}
