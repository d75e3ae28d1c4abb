package bing

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "https://www.bing.com/images/search"

type Client struct {
	scraper scraper.Scraper
	baseURL string
	marker  Marker
}

type OptionFunc func(c *Client)

func WithBaseURL(baseURL string) OptionFunc {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithMarker(marker Marker) OptionFunc {
	return func(c *Client) {
		c.marker = marker
	}
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	searchURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	params := searchURL.Query()
	params.Set("q", query)
	searchURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "scraping bing image results", slog.String("url", searchURL.String()))

	body, err := c.scraper.Get(ctx, searchURL.String())
	if err != nil {
		if statusErr, ok := scraper.IsStatus(err); ok {
			slog.DebugContext(ctx, "unexpected search response status", slog.Int("status", statusErr.StatusCode))
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	defer body.Close()

	return c.parse(ctx, body)
}

func (c *Client) parse(ctx context.Context, r io.Reader) ([]search.Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var results []search.Result

	doc.Find("a." + c.marker.Class).Each(func(i int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.AttrOr(c.marker.Attr, ""))
		if raw == "" {
			return
		}

		if !gjson.Valid(raw) {
			slog.DebugContext(ctx, "ignoring anchor with malformed metadata", slog.Int("index", i))
			return
		}

		metadata := gjson.Parse(raw)
		if !metadata.IsObject() {
			slog.DebugContext(ctx, "ignoring anchor with non-object metadata", slog.Int("index", i))
			return
		}

		imageURL := strings.TrimSpace(metadata.Get(c.marker.Field).String())
		if imageURL == "" {
			return
		}

		results = append(results, search.Result{
			URL:          imageURL,
			ThumbnailURL: c.optional(metadata, c.marker.ThumbnailField),
			PageURL:      c.optional(metadata, c.marker.PageField),
			Title:        c.optional(metadata, c.marker.TitleField),
		})
	})

	return results, nil
}

func (c *Client) optional(metadata gjson.Result, field string) string {
	if field == "" {
		return ""
	}

	return strings.TrimSpace(metadata.Get(field).String())
}

func NewClient(scraper scraper.Scraper, funcs ...OptionFunc) *Client {
	client := &Client{
		scraper: scraper,
		baseURL: DefaultBaseURL,
		marker:  DefaultMarker,
	}

	for _, fn := range funcs {
		fn(client)
	}

	return client
}

var _ search.Client = &Client{}
