package loader

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when the remote server answers with a non 200 status.
	ErrNotFound = errors.New("image not found")
	// ErrFetch wraps transport failures while retrieving a remote image.
	ErrFetch = errors.New("could not fetch image")
	// ErrDecode wraps invalid base64 payloads and undecodable image data.
	ErrDecode = errors.New("could not decode image")
	// ErrTooSmall is returned for decoded images of 1 pixel or less in either dimension.
	ErrTooSmall = errors.New("image too small")
)

type wrappedError struct {
	kind  error
	cause error
}

func (e *wrappedError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *wrappedError) Is(target error) bool {
	return target == e.kind
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

func wrap(kind error, cause error) error {
	return errors.WithStack(&wrappedError{kind: kind, cause: cause})
}
