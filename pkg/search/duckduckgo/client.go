package duckduckgo

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	ErrCaptcha = errors.New("captcha challenge")
	ErrNoToken = errors.New("could not find search token")
)

var vqdPattern = regexp.MustCompile(`vqd=["']?([\d-]+)`)

const DefaultBaseURL = "https://duckduckgo.com"

// Client searches images on DuckDuckGo. Image results are served by a JSON
// endpoint which requires a token ("vqd") embedded in the regular search page.
type Client struct {
	scraper     scraper.Scraper
	jsonScraper scraper.Scraper
	baseURL     string
}

func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	token, err := c.getToken(ctx, query)
	if err != nil {
		if _, ok := scraper.IsStatus(err); ok {
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	imagesURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	imagesURL = imagesURL.JoinPath("/i.js")

	params := imagesURL.Query()
	params.Set("q", query)
	params.Set("o", "json")
	params.Set("l", "wt-wt")
	params.Set("vqd", token)
	params.Set("p", "1")
	imagesURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "fetching duckduckgo image results", slog.String("url", imagesURL.String()))

	body, err := c.jsonScraper.Get(ctx, imagesURL.String())
	if err != nil {
		if statusErr, ok := scraper.IsStatus(err); ok {
			slog.DebugContext(ctx, "unexpected search response status", slog.Int("status", statusErr.StatusCode))
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !gjson.ValidBytes(data) {
		return nil, errors.Errorf("unexpected image results payload:\n%s", truncate(string(data), 512))
	}

	var results []search.Result

	gjson.GetBytes(data, "results").ForEach(func(_, item gjson.Result) bool {
		imageURL := strings.TrimSpace(item.Get("image").String())
		if imageURL == "" {
			return true
		}

		results = append(results, search.Result{
			URL:          imageURL,
			ThumbnailURL: item.Get("thumbnail").String(),
			PageURL:      item.Get("url").String(),
			Title:        item.Get("title").String(),
		})

		return true
	})

	return results, nil
}

func (c *Client) getToken(ctx context.Context, query string) (string, error) {
	pageURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.WithStack(err)
	}

	params := pageURL.Query()
	params.Set("q", query)
	params.Set("iax", "images")
	params.Set("ia", "images")
	pageURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "scraping duckduckgo search token", slog.String("url", pageURL.String()))

	body, err := c.scraper.Get(ctx, pageURL.String())
	if err != nil {
		return "", errors.WithStack(err)
	}

	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if doc.Find("#challenge-form").Length() > 0 {
		return "", errors.WithStack(ErrCaptcha)
	}

	html, err := doc.Html()
	if err != nil {
		return "", errors.WithStack(err)
	}

	matches := vqdPattern.FindStringSubmatch(html)
	if len(matches) < 2 {
		return "", errors.WithStack(ErrNoToken)
	}

	return matches[1], nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}

type OptionFunc func(c *Client)

func WithBaseURL(baseURL string) OptionFunc {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithJSONScraper sets the scraper used for the JSON results endpoint. It
// must return the raw response body, which rules out page rendering scrapers.
func WithJSONScraper(s scraper.Scraper) OptionFunc {
	return func(c *Client) {
		c.jsonScraper = s
	}
}

func NewClient(scraper scraper.Scraper, funcs ...OptionFunc) *Client {
	client := &Client{
		scraper: scraper,
		baseURL: DefaultBaseURL,
	}

	for _, fn := range funcs {
		fn(client)
	}

	if client.jsonScraper == nil {
		client.jsonScraper = client.scraper
	}

	return client
}

var _ search.Client = &Client{}
