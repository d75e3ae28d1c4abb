package scraper

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response http status %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatus reports whether err is, or wraps, a *StatusError.
func IsStatus(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}

	return nil, false
}
