package loader

import (
	"bytes"
	"context"
	"image"
	"io"
	"log/slog"

	"github.com/bornholm/imagefetcher/pkg/scraper"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Register codecs not provided by imaging
	_ "golang.org/x/image/webp"
)

// MinDimension is the smallest width and height accepted. Smaller images are
// tracking pixels or placeholders.
const MinDimension = 2

// Image is a successfully decoded image.
type Image struct {
	image.Image
	Format string
}

func (i *Image) Width() int {
	return i.Bounds().Dx()
}

func (i *Image) Height() int {
	return i.Bounds().Dy()
}

type Loader struct {
	scraper scraper.Scraper
}

// Load decodes src, either a base64 data URI or a remote URL. Every failure
// is reported as an error matching one of ErrNotFound, ErrFetch, ErrDecode
// or ErrTooSmall.
func (l *Loader) Load(ctx context.Context, src string) (*Image, error) {
	var (
		data []byte
		err  error
	)

	if IsDataURI(src) {
		slog.DebugContext(ctx, "decoding inline image", slog.Int("length", len(src)))
		data, err = decodeDataURI(src)
	} else {
		slog.DebugContext(ctx, "fetching remote image", slog.String("url", src))
		data, err = l.fetch(ctx, src)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "image decoded", slog.String("format", img.Format), slog.Int("width", img.Width()), slog.Int("height", img.Height()))

	return img, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := l.scraper.Get(ctx, url)
	if err != nil {
		if statusErr, ok := scraper.IsStatus(err); ok {
			return nil, wrap(ErrNotFound, statusErr)
		}

		return nil, wrap(ErrFetch, err)
	}

	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, wrap(ErrFetch, err)
	}

	return data, nil
}

// Decode decodes raw image bytes and rejects degenerate images.
func Decode(data []byte) (*Image, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, wrap(ErrDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, wrap(ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinDimension || bounds.Dy() < MinDimension {
		return nil, errors.Wrapf(ErrTooSmall, "%dx%d", bounds.Dx(), bounds.Dy())
	}

	return &Image{Image: img, Format: format}, nil
}

// NewLoader creates a loader fetching remote images with s, or with the
// default scraper when s is nil.
func NewLoader(s scraper.Scraper) *Loader {
	if s == nil {
		s = scraper.DefaultScraper()
	}

	return &Loader{scraper: s}
}
