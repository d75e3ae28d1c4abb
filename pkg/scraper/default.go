package scraper

import (
	"net/http"
)

// DefaultUserAgent is sent by HTTPScraper unless overridden. Image search
// providers alter or reject responses for clients without a browser identity.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

var defaultScraper Scraper = NewHTTPScraper(http.DefaultClient)

func DefaultScraper() Scraper {
	return defaultScraper
}
