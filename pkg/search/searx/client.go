package searx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"
)

const DefaultInstancesURL = "https://searx.space/data/instances.json"

// imageEngines are the searx engines backing the "images" category. An
// instance is only considered if one of them is healthy.
var imageEngines = []string{"bing images", "google images", "duckduckgo images", "qwant images"}

type Client struct {
	instanceURL  *url.URL
	instancesURL string
	userAgent    string
	transport    http.RoundTripper
	scraper      scraper.Scraper
}

type OptionFunc func(c *Client)

// WithInstance pins the searx instance. Without it, an instance is picked
// from the public instance list on every search.
func WithInstance(instanceURL *url.URL) OptionFunc {
	return func(c *Client) {
		c.instanceURL = instanceURL
	}
}

func WithInstancesURL(instancesURL string) OptionFunc {
	return func(c *Client) {
		c.instancesURL = instancesURL
	}
}

func WithUserAgent(userAgent string) OptionFunc {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(c *Client) {
		c.transport = transport
	}
}

func WithScraper(s scraper.Scraper) OptionFunc {
	return func(c *Client) {
		c.scraper = s
	}
}

func (c *Client) getInstanceURL(ctx context.Context) (*url.URL, error) {
	if c.instanceURL != nil {
		return c.instanceURL, nil
	}

	body, err := c.scraper.Get(ctx, c.instancesURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer body.Close()

	var instances Instances
	if err := json.NewDecoder(body).Decode(&instances); err != nil {
		return nil, errors.WithStack(err)
	}

	var bestInstance *Instance
	var bestURL string

	for url, inst := range instances.Instances {
		if inst.HTTP.StatusCode != http.StatusOK || inst.NetworkType != "normal" || inst.Timing.Search.SuccessPercentage < 80 {
			continue
		}

		if !hasHealthyImageEngine(inst) {
			continue
		}

		if bestInstance == nil || bestInstance.Timing.Search.All.Mean > inst.Timing.Search.All.Mean {
			bestURL = url
			bestInstance = &inst
		}
	}

	if bestInstance == nil {
		return nil, errors.New("no available instance")
	}

	instanceURL, err := url.Parse(bestURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instanceURL, nil
}

func hasHealthyImageEngine(inst Instance) bool {
	for _, name := range imageEngines {
		engine, exists := inst.Engines[name]
		if exists && engine.ErrorRate <= 50 {
			return true
		}
	}

	return false
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	serverURL, err := c.getInstanceURL(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	searchURL := serverURL.JoinPath("/search")

	params := searchURL.Query()
	params.Set("q", query)
	params.Set("categories", "images")
	searchURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "executing searx image search", slog.String("url", searchURL.String()))

	var (
		results    []search.Result
		statusCode int
	)

	collector := colly.NewCollector(
		colly.UserAgent(c.userAgent),
	)

	if c.transport != nil {
		collector.WithTransport(c.transport)
	}

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
		r.Headers.Set("Cache-Control", "no-cache")
	})

	collector.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	collector.OnHTML(".result-images", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.ChildAttr("a[href]", "href"))
		if href == "" {
			return
		}

		results = append(results, search.Result{
			URL:          absoluteURL(e, href),
			ThumbnailURL: absoluteURL(e, e.ChildAttr("img", "src")),
			PageURL:      e.ChildAttr("a.result-images-source, .result-url a", "href"),
			Title:        strings.TrimSpace(e.ChildText(".title, h4")),
		})
	})

	err = collector.Visit(searchURL.String())

	if statusCode != 0 && statusCode != http.StatusOK {
		slog.DebugContext(ctx, "unexpected search response status", slog.Int("status", statusCode))
		return nil, nil
	}

	if err != nil {
		return nil, errors.WithStack(err)
	}

	return results, nil
}

func absoluteURL(e *colly.HTMLElement, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	return e.Request.AbsoluteURL(href)
}

func NewClient(funcs ...OptionFunc) *Client {
	client := &Client{
		instancesURL: DefaultInstancesURL,
		userAgent:    scraper.DefaultUserAgent,
		scraper:      scraper.DefaultScraper(),
	}

	for _, fn := range funcs {
		fn(client)
	}

	return client
}

var _ search.Client = &Client{}
