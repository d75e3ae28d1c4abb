package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/imagefetcher/pkg/fetcher"
	"github.com/bornholm/imagefetcher/pkg/search"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type handlers struct {
	fetcher *fetcher.Fetcher
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// image responds with the first image found for the "q" parameter, encoded
// in its original format when possible and as PNG otherwise.
func (h *handlers) image(c *gin.Context) {
	query, ok := queryParam(c)
	if !ok {
		return
	}

	outcome := h.fetcher.Fetch(c.Request.Context(), query)

	switch outcome.Status {
	case fetcher.StatusFound:
	case fetcher.StatusTooSmall:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": outcome.Status, "message": outcome.Caption()})
		return
	case fetcher.StatusError:
		c.JSON(http.StatusBadGateway, gin.H{"status": outcome.Status, "message": outcome.Caption()})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"status": outcome.Status, "message": outcome.Caption()})
		return
	}

	format, contentType := encoding(outcome.Image.Format)

	var buff bytes.Buffer
	if err := imaging.Encode(&buff, outcome.Image, format); err != nil {
		slog.ErrorContext(c.Request.Context(), "could not encode image", slog.Any("error", errors.WithStack(err)))
		c.JSON(http.StatusInternalServerError, gin.H{"status": fetcher.StatusError, "message": err.Error()})
		return
	}

	if !strings.HasPrefix(outcome.URL, "data:") {
		c.Header("X-Image-Source", outcome.URL)
	}

	c.Data(http.StatusOK, contentType, buff.Bytes())
}

func (h *handlers) resolve(c *gin.Context) {
	query, ok := queryParam(c)
	if !ok {
		return
	}

	url, err := h.fetcher.Resolve(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, search.ErrNoResult) {
			c.JSON(http.StatusNotFound, gin.H{"status": fetcher.StatusNotFound})
			return
		}

		slog.ErrorContext(c.Request.Context(), "could not resolve image", slog.Any("error", err))
		c.JSON(http.StatusBadGateway, gin.H{"status": fetcher.StatusError, "message": errors.Cause(err).Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func queryParam(c *gin.Context) (string, bool) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'q' parameter"})
		return "", false
	}

	return query, true
}

func encoding(format string) (imaging.Format, string) {
	switch format {
	case "jpeg":
		return imaging.JPEG, "image/jpeg"
	case "gif":
		return imaging.GIF, "image/gif"
	default:
		return imaging.PNG, "image/png"
	}
}
