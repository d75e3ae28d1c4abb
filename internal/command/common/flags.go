package common

import (
	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/urfave/cli/v2"
)

const (
	ProviderBing       = "bing"
	ProviderDuckDuckGo = "duckduckgo"
	ProviderGoogle     = "google"
	ProviderSearx      = "searx"
	ProviderMeta       = "meta"

	ScraperHTTP     = "http"
	ScraperSurf     = "surf"
	ScraperChromedp = "chromedp"
)

func QueryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "query",
		Required: true,
		Aliases:  []string{"q"},
		EnvVars:  []string{"IMAGEFETCHER_QUERY"},
		Usage:    "The image search query",
	}
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Value:   ProviderBing,
			Aliases: []string{"p"},
			EnvVars: []string{"IMAGEFETCHER_PROVIDER"},
			Usage:   "The image search provider (bing, duckduckgo, google, searx or meta)",
		},
		&cli.StringFlag{
			Name:    "scraper",
			Value:   ScraperHTTP,
			EnvVars: []string{"IMAGEFETCHER_SCRAPER"},
			Usage:   "The page retrieval backend (http, surf or chromedp)",
		},
		&cli.StringFlag{
			Name:    "user-agent",
			Value:   scraper.DefaultUserAgent,
			EnvVars: []string{"IMAGEFETCHER_USER_AGENT"},
			Usage:   "The User-Agent header sent by the http scraper",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			EnvVars: []string{"IMAGEFETCHER_TIMEOUT"},
			Usage:   "The http client timeout, none if zero",
		},
		&cli.BoolFlag{
			Name:    "headless",
			Value:   true,
			EnvVars: []string{"IMAGEFETCHER_HEADLESS"},
			Usage:   "Run the chromedp scraper without a visible browser window",
		},
		&cli.StringFlag{
			Name:    "google-api-key",
			EnvVars: []string{"IMAGEFETCHER_GOOGLE_API_KEY"},
			Usage:   "The Google Custom Search API key",
		},
		&cli.StringFlag{
			Name:    "google-cx",
			EnvVars: []string{"IMAGEFETCHER_GOOGLE_CX"},
			Usage:   "The Google Programmable Search Engine identifier",
		},
		&cli.StringFlag{
			Name:    "searx-url",
			EnvVars: []string{"IMAGEFETCHER_SEARX_URL"},
			Usage:   "The searx instance url, picked from searx.space if empty",
		},
	}
}
