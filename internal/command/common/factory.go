package common

import (
	"net/http"
	"net/url"

	"github.com/bornholm/imagefetcher/pkg/fetcher"
	"github.com/bornholm/imagefetcher/pkg/loader"
	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/bornholm/imagefetcher/pkg/scraper/chromedp"
	"github.com/bornholm/imagefetcher/pkg/scraper/surf"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/bornholm/imagefetcher/pkg/search/bing"
	"github.com/bornholm/imagefetcher/pkg/search/duckduckgo"
	"github.com/bornholm/imagefetcher/pkg/search/google"
	"github.com/bornholm/imagefetcher/pkg/search/meta"
	"github.com/bornholm/imagefetcher/pkg/search/searx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// NewScraper creates the scraper selected on the command line. The returned
// function releases its resources.
func NewScraper(ctx *cli.Context) (scraper.Scraper, func(), error) {
	noop := func() {}

	switch name := ctx.String("scraper"); name {
	case ScraperHTTP, "":
		return newHTTPScraper(ctx), noop, nil

	case ScraperSurf:
		return surf.NewScraper(ctx.Duration("timeout")), noop, nil

	case ScraperChromedp:
		s, err := chromedp.NewScraper(ctx.Bool("headless"))
		if err != nil {
			return nil, noop, errors.Wrap(err, "could not start chrome")
		}

		return s, s.Close, nil

	default:
		return nil, noop, errors.Errorf("unknown scraper '%s'", name)
	}
}

func newHTTPScraper(ctx *cli.Context) *scraper.HTTPScraper {
	client := &http.Client{Timeout: ctx.Duration("timeout")}
	return scraper.NewHTTPScraper(client, scraper.WithUserAgent(ctx.String("user-agent")))
}

// rawScraper returns s unless it renders pages, in which case it cannot
// retrieve raw bytes (images, json) and a plain http scraper is used instead.
func rawScraper(ctx *cli.Context, s scraper.Scraper) scraper.Scraper {
	if _, renders := s.(*chromedp.Scraper); renders {
		return newHTTPScraper(ctx)
	}

	return s
}

func NewSearchClient(ctx *cli.Context, s scraper.Scraper) (search.Client, error) {
	switch name := ctx.String("provider"); name {
	case ProviderBing, "":
		return bing.NewClient(s), nil

	case ProviderDuckDuckGo:
		return newDuckDuckGoClient(ctx, s), nil

	case ProviderGoogle:
		return newGoogleClient(ctx)

	case ProviderSearx:
		return newSearxClient(ctx, s)

	case ProviderMeta:
		clients := []search.Client{
			bing.NewClient(s),
			newDuckDuckGoClient(ctx, s),
		}

		if ctx.String("google-api-key") != "" {
			googleClient, err := newGoogleClient(ctx)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			clients = append(clients, googleClient)
		}

		searxClient, err := newSearxClient(ctx, s)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		clients = append(clients, searxClient)

		return meta.NewClient(clients...), nil

	default:
		return nil, errors.Errorf("unknown provider '%s'", name)
	}
}

// newDuckDuckGoClient keeps s for the token page but reads the JSON results
// endpoint with a scraper returning the raw response body.
func newDuckDuckGoClient(ctx *cli.Context, s scraper.Scraper) *duckduckgo.Client {
	return duckduckgo.NewClient(s, duckduckgo.WithJSONScraper(rawScraper(ctx, s)))
}

func newGoogleClient(ctx *cli.Context) (*google.Client, error) {
	apiKey := ctx.String("google-api-key")
	cx := ctx.String("google-cx")

	if apiKey == "" || cx == "" {
		return nil, errors.New("google provider requires --google-api-key and --google-cx")
	}

	return google.NewClient(apiKey, cx), nil
}

func newSearxClient(ctx *cli.Context, s scraper.Scraper) (*searx.Client, error) {
	options := []searx.OptionFunc{
		searx.WithUserAgent(ctx.String("user-agent")),
		searx.WithScraper(rawScraper(ctx, s)),
	}

	if rawURL := ctx.String("searx-url"); rawURL != "" {
		instanceURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid searx url '%s'", rawURL)
		}

		options = append(options, searx.WithInstance(instanceURL))
	}

	return searx.NewClient(options...), nil
}

// NewFetcher assembles the pipeline from the command line flags.
func NewFetcher(ctx *cli.Context, funcs ...fetcher.OptionFunc) (*fetcher.Fetcher, func(), error) {
	s, release, err := NewScraper(ctx)
	if err != nil {
		return nil, release, errors.WithStack(err)
	}

	client, err := NewSearchClient(ctx, s)
	if err != nil {
		release()
		return nil, func() {}, errors.WithStack(err)
	}

	funcs = append([]fetcher.OptionFunc{fetcher.WithLoader(loader.NewLoader(rawScraper(ctx, s)))}, funcs...)

	return fetcher.NewFetcher(client, funcs...), release, nil
}
