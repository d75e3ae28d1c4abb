package fetcher

import (
	"fmt"

	"github.com/bornholm/imagefetcher/pkg/loader"
)

// Outcome is the result of one pipeline run. Image is only set when Status
// is StatusFound.
type Outcome struct {
	Query  string
	URL    string
	Image  *loader.Image
	Status Status
	// Message is a human readable diagnostic, set when Status is StatusError.
	Message string
	Err     error
}

func (o *Outcome) Found() bool {
	return o.Status == StatusFound && o.Image != nil
}

// Caption returns the text a hosting surface displays alongside (or instead
// of) the image.
func (o *Outcome) Caption() string {
	switch o.Status {
	case StatusFound:
		return fmt.Sprintf("Image of %s", o.Query)
	case StatusTooSmall:
		return "The image is too small to display or could not be loaded."
	case StatusError:
		return o.Message
	default:
		return "No image found. Please try again."
	}
}
