package loader

import (
	"bytes"
	"encoding/base64"
	"image"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

const dataURIPrefix = "data:image"

var dataURIHeader = regexp.MustCompile(`^data:image/.+;base64,`)

// IsDataURI reports whether src is an inline image rather than a remote URL.
func IsDataURI(src string) bool {
	return strings.HasPrefix(src, dataURIPrefix)
}

func decodeDataURI(src string) ([]byte, error) {
	payload := dataURIHeader.ReplaceAllString(src, "")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some providers strip the padding
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
			return raw, nil
		}

		return nil, wrap(ErrDecode, err)
	}

	return data, nil
}

// EncodeDataURI encodes img with the given format ("png", "jpeg", "gif",
// "bmp" or "tiff") as a base64 data URI.
func EncodeDataURI(img image.Image, format string) (string, error) {
	imgFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return "", errors.WithStack(err)
	}

	var buff bytes.Buffer
	if err := imaging.Encode(&buff, img, imgFormat); err != nil {
		return "", errors.WithStack(err)
	}

	var sb strings.Builder

	sb.WriteString("data:image/")
	sb.WriteString(strings.ToLower(imgFormat.String()))
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(buff.Bytes()))

	return sb.String(), nil
}
