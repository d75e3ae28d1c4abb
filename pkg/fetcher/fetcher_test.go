package fetcher

import (
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/bornholm/imagefetcher/pkg/loader"
	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

type stubClient struct {
	urls []string
	err  error
}

func (c *stubClient) Search(ctx context.Context, query string) ([]search.Result, error) {
	if c.err != nil {
		return nil, c.err
	}

	results := make([]search.Result, 0, len(c.urls))
	for _, u := range c.urls {
		results = append(results, search.Result{URL: u})
	}

	return results, nil
}

func dataURI(t *testing.T, width, height int) string {
	t.Helper()

	uri, err := loader.EncodeDataURI(imaging.New(width, height, color.Black), "png")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return uri
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/garbage.jpg":
			w.Write([]byte("definitely not a jpeg"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	type testCase struct {
		Name            string
		Client          *stubClient
		ExpectedStatus  Status
		ExpectedStates  []State
		ExpectedMessage string
	}

	testCases := []testCase{
		{
			Name:           "found",
			Client:         &stubClient{urls: []string{dataURI(t, 4, 3), dataURI(t, 1, 1)}},
			ExpectedStatus: StatusFound,
			ExpectedStates: []State{StateIdle, StateResolving, StateFound, StateLoading, StateDisplaying},
		},
		{
			Name:           "no search result",
			Client:         &stubClient{},
			ExpectedStatus: StatusNotFound,
			ExpectedStates: []State{StateIdle, StateResolving, StateNotFound},
		},
		{
			Name:           "degenerate image",
			Client:         &stubClient{urls: []string{dataURI(t, 1, 1), dataURI(t, 4, 3)}},
			ExpectedStatus: StatusTooSmall,
			ExpectedStates: []State{StateIdle, StateResolving, StateFound, StateLoading, StateRejected},
		},
		{
			Name:           "remote image missing",
			Client:         &stubClient{urls: []string{server.URL + "/missing.jpg"}},
			ExpectedStatus: StatusNotFound,
			ExpectedStates: []State{StateIdle, StateResolving, StateFound, StateLoading, StateNotFound},
		},
		{
			Name:            "remote image undecodable",
			Client:          &stubClient{urls: []string{server.URL + "/garbage.jpg"}},
			ExpectedStatus:  StatusError,
			ExpectedStates:  []State{StateIdle, StateResolving, StateFound, StateLoading, StateFailed},
			ExpectedMessage: "Error loading image: could not decode image",
		},
		{
			Name:            "search failure",
			Client:          &stubClient{err: errors.New("connection reset")},
			ExpectedStatus:  StatusError,
			ExpectedStates:  []State{StateIdle, StateResolving, StateFailed},
			ExpectedMessage: "Error searching image: connection reset",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var states []State

			fetcher := NewFetcher(tc.Client,
				WithLoader(loader.NewLoader(scraper.NewHTTPScraper(server.Client()))),
				WithObserver(func(ctx context.Context, state State) {
					states = append(states, state)
				}),
			)

			outcome := fetcher.Fetch(context.Background(), "black square")

			if e, g := tc.ExpectedStatus, outcome.Status; e != g {
				t.Errorf("status: expected %q, got %q (err: %v)", e, g, outcome.Err)
			}

			if e, g := tc.ExpectedStates, states; !reflect.DeepEqual(e, g) {
				t.Errorf("states: expected %v, got %v", e, g)
			}

			if !states[len(states)-1].Terminal() {
				t.Errorf("last state %q is not terminal", states[len(states)-1])
			}

			if e, g := tc.ExpectedStatus == StatusFound, outcome.Found(); e != g {
				t.Errorf("found: expected %v, got %v", e, g)
			}

			if tc.ExpectedMessage != "" && !strings.HasPrefix(outcome.Message, tc.ExpectedMessage) {
				t.Errorf("message: expected prefix %q, got %q", tc.ExpectedMessage, outcome.Message)
			}

			if outcome.Caption() == "" {
				t.Errorf("expected a caption")
			}
		})
	}
}

func TestFetchImageDimensions(t *testing.T) {
	fetcher := NewFetcher(&stubClient{urls: []string{dataURI(t, 2, 2)}})

	outcome := fetcher.Fetch(context.Background(), "square")
	if !outcome.Found() {
		t.Fatalf("expected an image, got status %q (%v)", outcome.Status, outcome.Err)
	}

	if e, g := 2, outcome.Image.Width(); e != g {
		t.Errorf("width: expected %d, got %d", e, g)
	}

	if e, g := 2, outcome.Image.Height(); e != g {
		t.Errorf("height: expected %d, got %d", e, g)
	}

	if e, g := "Image of square", outcome.Caption(); e != g {
		t.Errorf("caption: expected %q, got %q", e, g)
	}
}
