package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bornholm/imagefetcher/pkg/loader"
	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/bornholm/imagefetcher/pkg/search/bing"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

func TestFetchFromResultPage(t *testing.T) {
	var buff bytes.Buffer
	if err := imaging.Encode(&buff, imaging.New(12, 8, color.White), imaging.JPEG); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/images/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		fmt.Fprintf(w, `<html><body>
			<a class="iusc" m='{"murl":'>truncated</a>
			<a class="iusc" m='{"murl":"%[1]s/white.jpg"}'>first</a>
			<a class="iusc" m='{"murl":"%[1]s/other.jpg"}'>second</a>
		</body></html>`, server.URL)
	})

	mux.HandleFunc("/white.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(buff.Bytes())
	})

	s := scraper.NewHTTPScraper(server.Client())

	fetcher := NewFetcher(
		bing.NewClient(s, bing.WithBaseURL(server.URL+"/images/search")),
		WithLoader(loader.NewLoader(s)),
	)

	outcome := fetcher.Fetch(context.Background(), "white rectangle")
	if !outcome.Found() {
		t.Fatalf("expected an image, got status %q (%+v)", outcome.Status, outcome.Err)
	}

	if e, g := server.URL+"/white.jpg", outcome.URL; e != g {
		t.Errorf("url: expected %q, got %q", e, g)
	}

	if e, g := "jpeg", outcome.Image.Format; e != g {
		t.Errorf("format: expected %q, got %q", e, g)
	}

	if e, g := 12, outcome.Image.Width(); e != g {
		t.Errorf("width: expected %d, got %d", e, g)
	}

	if e, g := 8, outcome.Image.Height(); e != g {
		t.Errorf("height: expected %d, got %d", e, g)
	}
}
