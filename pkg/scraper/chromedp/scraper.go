package chromedp

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	cu "github.com/Davincible/chromedp-undetected"
)

// Scraper renders pages in a (possibly headless) Chrome instance and returns
// the resulting DOM as HTML. Useful when result anchors are injected by scripts.
type Scraper struct {
	chromeCtx    context.Context
	cancelChrome context.CancelFunc
}

// Get implements scraper.Scraper. Each call runs in its own tab, closed when
// the call returns or ctx is done.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	var html string

	tabCtx, cancelTab := chromedp.NewContext(s.chromeCtx)
	defer cancelTab()

	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	resp, err := chromedp.RunResponse(tabCtx,
		chromedp.Navigate(url),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := checkResponse(resp); err != nil {
		return nil, errors.WithStack(err)
	}

	err = chromedp.Run(tabCtx,
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			res, err := dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			html = res

			return nil
		}),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return io.NopCloser(bytes.NewBufferString(html)), nil
}

func checkResponse(resp *network.Response) error {
	if resp == nil {
		return nil
	}

	if resp.Status != 200 {
		return &scraper.StatusError{StatusCode: int(resp.Status)}
	}

	return nil
}

func (s *Scraper) Close() {
	s.cancelChrome()
}

func NewScraper(headless bool) (*Scraper, error) {
	options := []cu.Option{}
	if headless {
		options = append(options, cu.WithHeadless())
	}

	if httpProxy := os.Getenv("HTTP_PROXY"); httpProxy != "" {
		options = append(options, cu.WithChromeFlags(chromedp.ProxyServer(httpProxy)))
	}

	chromeCtx, cancelChrome, err := cu.New(cu.NewConfig(options...))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Scraper{
		chromeCtx:    chromeCtx,
		cancelChrome: cancelChrome,
	}, nil
}

var _ scraper.Scraper = &Scraper{}
