package chromedp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/chromedp/cdproto/network"
	"github.com/pkg/errors"
)

func TestCheckResponse(t *testing.T) {
	if err := checkResponse(nil); err != nil {
		t.Errorf("expected no error for a missing response, got %v", err)
	}

	if err := checkResponse(&network.Response{Status: 200}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	err := checkResponse(&network.Response{Status: 404})

	statusErr, ok := scraper.IsStatus(err)
	if !ok {
		t.Fatalf("expected a status error, got %v", err)
	}

	if e, g := 404, statusErr.StatusCode; e != g {
		t.Errorf("expected status %d, got %d", e, g)
	}
}

func newChromeScraper(t *testing.T) *Scraper {
	t.Helper()

	if os.Getenv("IMAGEFETCHER_CHROME_TESTS") == "" {
		t.Skip("set IMAGEFETCHER_CHROME_TESTS to run tests against a local chrome")
	}

	s, err := NewScraper(true)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Cleanup(s.Close)

	return s
}

func TestScraperConcurrentGet(t *testing.T) {
	s := newChromeScraper(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Slow pages overlap with the others
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><body><p>page %s</p></body></html>", r.URL.Query().Get("id"))
	}))
	defer server.Close()

	const total = 4

	var wg sync.WaitGroup
	errs := make(chan error, total)

	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			body, err := s.Get(context.Background(), fmt.Sprintf("%s/?id=%d", server.URL, id))
			if err != nil {
				errs <- errors.WithStack(err)
				return
			}

			defer body.Close()

			data, err := io.ReadAll(body)
			if err != nil {
				errs <- errors.WithStack(err)
				return
			}

			if expected := fmt.Sprintf("page %d", id); !strings.Contains(string(data), expected) {
				errs <- errors.Errorf("expected %q in page, got %q", expected, data)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("%+v", err)
	}
}

func TestScraperGetCanceled(t *testing.T) {
	s := newChromeScraper(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()

	if _, err := s.Get(ctx, server.URL); err == nil {
		t.Fatalf("expected an error when the context is done")
	}

	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("expected Get to return after cancellation, took %s", elapsed)
	}

	// The browser must remain usable after a canceled call
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ok.Close()

	body, err := s.Get(context.Background(), ok.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	body.Close()
}
